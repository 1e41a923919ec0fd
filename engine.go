package sessiongate

import (
	"context"
	"log"
	"time"

	internalaudit "github.com/MrEthical07/sessiongate/internal/audit"
	"github.com/MrEthical07/sessiongate/internal/flows"
	"github.com/MrEthical07/sessiongate/session"
)

// Engine is the session manager: it orchestrates issuance, FIFO eviction,
// revocation, and validation across the token cache and the durable record
// store. Engine instances are immutable after [Builder.Build] and safe for
// concurrent use.
type Engine struct {
	config       Config
	sessionStore *session.Store
	records      RecordStore
	verifier     CredentialVerifier
	identities   IdentityStore
	audit        *internalaudit.Dispatcher
	metrics      *Metrics
	flowDeps     flows.Deps
}

// Close drains the audit dispatcher. Call it at process stop.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped reports audit events dropped under dispatcher backpressure.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot returns a point-in-time copy of all counters.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters: map[MetricID]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

func (e *Engine) warn(format string, args ...any) {
	log.Printf(format, args...)
}

// Login verifies the credentials, issues a fresh opaque token, and enforces
// the per-user session cap: when the user's list overflows, the oldest live
// token is evicted in the same atomic cache script that appended the new
// one. A durable record is written best-effort — its failure degrades the
// audit trail, never the login.
//
// Returns [ErrInvalidCredentials] for an unknown email and a wrong password
// alike, and [ErrStoreUnavailable] when a backing store cannot be reached.
func (e *Engine) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}

	result, err := flows.RunLogin(ctx, email, password, e.flowDeps.Login)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token: result.Token,
		Identity: Identity{
			ID:    result.Identity.ID,
			Email: result.Identity.Email,
			Name:  result.Identity.Name,
			Role:  result.Identity.Role,
		},
	}, nil
}

// Logout revokes a token: cache entry, session-list membership, durable
// record. It is idempotent — revoking an already-dead token acks again
// without further state change. Returns [ErrStoreUnavailable] only when the
// cache cannot be reached; durable-record delete failures are logged and
// absorbed.
func (e *Engine) Logout(ctx context.Context, token, userID string) error {
	if e == nil {
		return ErrEngineNotReady
	}
	return flows.RunLogout(ctx, token, userID, e.flowDeps.Logout)
}

// Resolve maps a live token to its identity snapshot with a single cache
// lookup. The durable record store is never consulted. A miss returns
// [ErrTokenInvalid]; never-issued, revoked, evicted, and passively expired
// tokens are indistinguishable.
func (e *Engine) Resolve(ctx context.Context, token string) (*Claims, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}

	claims, err := flows.RunResolve(ctx, token, e.flowDeps.Resolve)
	if err != nil {
		return nil, err
	}

	return &Claims{
		UserID: claims.UserID,
		Role:   claims.Role,
	}, nil
}

// Authenticate is the per-request gate: it parses the raw Authorization
// value, resolves the token, and re-fetches the identity to catch accounts
// deleted or suspended since issuance. Every failure — including a cache
// outage — returns [ErrUnauthenticated]; the gate fails closed.
func (e *Engine) Authenticate(ctx context.Context, rawHeader string) (*Identity, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}

	identity, err := flows.RunAuthenticate(ctx, rawHeader, e.flowDeps.Authenticate)
	if err != nil {
		return nil, err
	}

	return &Identity{
		ID:    identity.ID,
		Email: identity.Email,
		Name:  identity.Name,
		Role:  identity.Role,
	}, nil
}

// ActiveSessions returns the user's live tokens in issuance order, oldest
// first. Tokens that expired passively may still appear until a newer login
// pushes them past the cap; the list key itself is never swept.
func (e *Engine) ActiveSessions(ctx context.Context, userID string) ([]string, error) {
	if e == nil || e.sessionStore == nil {
		return nil, ErrEngineNotReady
	}

	tokens, err := e.sessionStore.SessionTokens(ctx, userID)
	if err != nil {
		e.metricInc(MetricStoreUnavailable)
		return nil, ErrStoreUnavailable
	}
	return tokens, nil
}

// Ping reports token-cache availability and round-trip latency.
func (e *Engine) Ping(ctx context.Context) (time.Duration, error) {
	if e == nil || e.sessionStore == nil {
		return 0, ErrEngineNotReady
	}

	latency, err := e.sessionStore.Ping(ctx)
	if err != nil {
		return latency, ErrStoreUnavailable
	}
	return latency, nil
}
