package flows

import (
	"context"
	"errors"

	"github.com/MrEthical07/sessiongate/session"
)

// ResolveMetrics carries metric IDs needed by the resolve flow.
type ResolveMetrics struct {
	ResolveHit       int
	ResolveMiss      int
	StoreUnavailable int
}

// ResolveErrors carries host-level sentinel errors used by the resolve flow.
type ResolveErrors struct {
	EngineNotReady   error
	TokenInvalid     error
	StoreUnavailable error
}

// ResolveDeps captures token-resolution dependencies. The flow touches the
// token cache only; the durable record store has no read path here.
type ResolveDeps struct {
	GetEntry func(context.Context, string) (*session.Entry, error)

	// EntryMissing reports the cache's not-found sentinel (redis.Nil).
	EntryMissing     error
	RedisUnavailable error

	MetricInc func(int)
	Warn      func(string, ...any)

	Metrics ResolveMetrics
	Errors  ResolveErrors
}

// RunResolve looks a token up in the cache. A miss never distinguishes
// never-issued, revoked, evicted, and passively expired tokens.
func RunResolve(ctx context.Context, token string, deps ResolveDeps) (*FlowClaims, error) {
	if deps.MetricInc == nil {
		deps.MetricInc = func(int) {}
	}
	if deps.Warn == nil {
		deps.Warn = func(string, ...any) {}
	}
	if deps.GetEntry == nil {
		return nil, deps.Errors.EngineNotReady
	}
	if token == "" {
		deps.MetricInc(deps.Metrics.ResolveMiss)
		return nil, deps.Errors.TokenInvalid
	}

	entry, err := deps.GetEntry(ctx, token)
	if err != nil {
		if deps.RedisUnavailable != nil && errors.Is(err, deps.RedisUnavailable) {
			deps.MetricInc(deps.Metrics.StoreUnavailable)
			return nil, deps.Errors.StoreUnavailable
		}
		if deps.EntryMissing != nil && errors.Is(err, deps.EntryMissing) {
			deps.MetricInc(deps.Metrics.ResolveMiss)
			return nil, deps.Errors.TokenInvalid
		}
		// Undecodable payloads deny access rather than guessing.
		deps.Warn("sessiongate: corrupt cache entry treated as invalid token")
		deps.MetricInc(deps.Metrics.ResolveMiss)
		return nil, deps.Errors.TokenInvalid
	}

	deps.MetricInc(deps.Metrics.ResolveHit)
	return &FlowClaims{
		UserID: entry.UserID,
		Role:   entry.Role,
	}, nil
}
