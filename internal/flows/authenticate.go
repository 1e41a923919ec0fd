package flows

import (
	"context"
	"strings"
)

// AuthenticateMetrics carries metric IDs needed by the authentication gate.
type AuthenticateMetrics struct {
	Rejected int
}

// AuthenticateEvents carries audit event names used by the gate.
type AuthenticateEvents struct {
	Rejected string
}

// AuthenticateErrors carries host-level sentinel errors used by the gate.
type AuthenticateErrors struct {
	EngineNotReady  error
	Unauthenticated error
}

// AuthenticateDeps captures gate dependencies. The gate performs no writes.
type AuthenticateDeps struct {
	// Scheme is the expected authorization scheme, "Bearer".
	Scheme string

	Resolve      func(context.Context, string) (*FlowClaims, error)
	FindIdentity func(context.Context, string) (*FlowIdentity, error)

	MetricInc func(int)
	EmitAudit func(context.Context, string, bool, string, string, error, func() map[string]string)

	Metrics AuthenticateMetrics
	Events  AuthenticateEvents
	Errors  AuthenticateErrors
}

// RunAuthenticate is the per-request gate: parse the raw Authorization
// value, resolve the token against the cache, then re-fetch the identity to
// catch accounts deleted or suspended since issuance. Every failure — header
// shape, unknown token, store outage, missing identity — normalizes to the
// injected Unauthenticated sentinel. Store outages deny access, never allow.
func RunAuthenticate(ctx context.Context, rawHeader string, deps AuthenticateDeps) (*FlowIdentity, error) {
	if deps.MetricInc == nil {
		deps.MetricInc = func(int) {}
	}
	if deps.EmitAudit == nil {
		deps.EmitAudit = func(context.Context, string, bool, string, string, error, func() map[string]string) {}
	}
	if deps.Resolve == nil || deps.FindIdentity == nil {
		return nil, deps.Errors.EngineNotReady
	}

	token, ok := schemeToken(rawHeader, deps.Scheme)
	if !ok {
		// Malformed header: rejected before any store is contacted.
		deps.MetricInc(deps.Metrics.Rejected)
		return nil, deps.Errors.Unauthenticated
	}

	claims, err := deps.Resolve(ctx, token)
	if err != nil {
		deps.MetricInc(deps.Metrics.Rejected)
		deps.EmitAudit(ctx, deps.Events.Rejected, false, "", "", err, func() map[string]string {
			return map[string]string{
				"reason": "token_not_resolvable",
			}
		})
		return nil, deps.Errors.Unauthenticated
	}

	identity, err := deps.FindIdentity(ctx, claims.UserID)
	if err != nil {
		deps.MetricInc(deps.Metrics.Rejected)
		deps.EmitAudit(ctx, deps.Events.Rejected, false, claims.UserID, "", err, func() map[string]string {
			return map[string]string{
				"reason": "identity_lookup_failed",
			}
		})
		return nil, deps.Errors.Unauthenticated
	}
	if identity == nil {
		deps.MetricInc(deps.Metrics.Rejected)
		deps.EmitAudit(ctx, deps.Events.Rejected, false, claims.UserID, "", nil, func() map[string]string {
			return map[string]string{
				"reason": "identity_gone",
			}
		})
		return nil, deps.Errors.Unauthenticated
	}

	return identity, nil
}

func schemeToken(rawHeader, scheme string) (string, bool) {
	if rawHeader == "" {
		return "", false
	}

	parts := strings.Fields(rawHeader)
	if len(parts) != 2 || parts[0] != scheme {
		return "", false
	}

	return parts[1], true
}
