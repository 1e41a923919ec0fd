package flows

import (
	"context"
	"time"

	"github.com/MrEthical07/sessiongate/session"
)

// LoginResult is the flow-local login response shape.
type LoginResult struct {
	Token    string
	Identity FlowIdentity
	Evicted  string
}

// LoginMetrics carries metric IDs needed by the login flow.
type LoginMetrics struct {
	LoginSuccess        int
	LoginFailure        int
	SessionCreated      int
	SessionEvicted      int
	StoreUnavailable    int
	RecordWriteFailure  int
	RecordDeleteFailure int
}

// LoginEvents carries audit event names used by the login flow.
type LoginEvents struct {
	LoginSuccess       string
	LoginFailure       string
	SessionEvicted     string
	RecordWriteFailed  string
	RecordDeleteFailed string
}

// LoginErrors carries host-level sentinel errors used by the login flow.
type LoginErrors struct {
	EngineNotReady     error
	InvalidCredentials error
	StoreUnavailable   error
}

// LoginDeps captures issuance dependencies.
type LoginDeps struct {
	MaxSessions int
	TokenTTL    time.Duration

	Now func() time.Time

	VerifyCredentials func(context.Context, string, string) (*FlowIdentity, error)
	NewToken          func() string

	PushSession func(context.Context, string, string, int) (int, string, error)
	SaveEntry   func(context.Context, *session.Entry, time.Duration) error
	DeleteEntry func(context.Context, string) error

	InsertRecord func(context.Context, string, string, time.Time) error
	DeleteRecord func(context.Context, string) error

	MetricInc func(int)
	EmitAudit func(context.Context, string, bool, string, string, error, func() map[string]string)
	Warn      func(string, ...any)

	Metrics LoginMetrics
	Events  LoginEvents
	Errors  LoginErrors
}

// RunLogin executes the issuance flow as one logically atomic unit per user:
// verify credentials, generate a fresh token, push it onto the user's list
// (evicting the oldest on overflow inside the same Redis script), write the
// cache entry, then write the durable record best-effort.
func RunLogin(ctx context.Context, email, password string, deps LoginDeps) (*LoginResult, error) {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.MetricInc == nil {
		deps.MetricInc = func(int) {}
	}
	if deps.EmitAudit == nil {
		deps.EmitAudit = func(context.Context, string, bool, string, string, error, func() map[string]string) {}
	}
	if deps.Warn == nil {
		deps.Warn = func(string, ...any) {}
	}
	if deps.VerifyCredentials == nil ||
		deps.NewToken == nil ||
		deps.PushSession == nil ||
		deps.SaveEntry == nil ||
		deps.DeleteEntry == nil {
		return nil, deps.Errors.EngineNotReady
	}

	identity, err := deps.VerifyCredentials(ctx, email, password)
	if err != nil {
		deps.MetricInc(deps.Metrics.StoreUnavailable)
		deps.EmitAudit(ctx, deps.Events.LoginFailure, false, "", "", deps.Errors.StoreUnavailable, func() map[string]string {
			return map[string]string{
				"identifier": email,
				"reason":     "verifier_error",
			}
		})
		return nil, deps.Errors.StoreUnavailable
	}
	if identity == nil {
		// Unknown email and wrong password are deliberately identical here.
		deps.MetricInc(deps.Metrics.LoginFailure)
		deps.EmitAudit(ctx, deps.Events.LoginFailure, false, "", "", deps.Errors.InvalidCredentials, func() map[string]string {
			return map[string]string{
				"identifier": email,
			}
		})
		return nil, deps.Errors.InvalidCredentials
	}

	token := deps.NewToken()
	now := deps.Now()

	// The entry goes in before the list push. If a concurrent login evicts
	// this token immediately after the push, its DeleteEntry must find the
	// entry already present, otherwise the eviction would leave a live
	// orphan behind.
	entry := &session.Entry{
		Token:     token,
		UserID:    identity.ID,
		Role:      identity.Role,
		CreatedAt: now.Unix(),
	}
	if err := deps.SaveEntry(ctx, entry, deps.TokenTTL); err != nil {
		deps.MetricInc(deps.Metrics.StoreUnavailable)
		deps.EmitAudit(ctx, deps.Events.LoginFailure, false, identity.ID, token, deps.Errors.StoreUnavailable, nil)
		return nil, deps.Errors.StoreUnavailable
	}

	_, evicted, err := deps.PushSession(ctx, identity.ID, token, deps.MaxSessions)
	if err != nil {
		// The entry was written but never joined the list; remove it so the
		// failed login leaves nothing resolvable.
		_ = deps.DeleteEntry(ctx, token)
		deps.MetricInc(deps.Metrics.StoreUnavailable)
		deps.EmitAudit(ctx, deps.Events.LoginFailure, false, identity.ID, "", deps.Errors.StoreUnavailable, nil)
		return nil, deps.Errors.StoreUnavailable
	}

	if evicted != "" {
		// The script already removed the evicted token from the list. Its
		// cache entry must go too, or a revoked token would keep resolving.
		if err := deps.DeleteEntry(ctx, evicted); err != nil {
			deps.MetricInc(deps.Metrics.StoreUnavailable)
			deps.EmitAudit(ctx, deps.Events.LoginFailure, false, identity.ID, evicted, deps.Errors.StoreUnavailable, nil)
			return nil, deps.Errors.StoreUnavailable
		}
		if deps.DeleteRecord != nil {
			if err := deps.DeleteRecord(ctx, evicted); err != nil {
				deps.MetricInc(deps.Metrics.RecordDeleteFailure)
				deps.EmitAudit(ctx, deps.Events.RecordDeleteFailed, false, identity.ID, evicted, err, nil)
				deps.Warn("sessiongate: durable record delete failed for evicted token")
			}
		}
		deps.MetricInc(deps.Metrics.SessionEvicted)
		deps.EmitAudit(ctx, deps.Events.SessionEvicted, true, identity.ID, evicted, nil, nil)
	}

	if deps.InsertRecord != nil {
		// Durability is best-effort: a failed insert degrades the audit
		// trail but the session stays usable.
		if err := deps.InsertRecord(ctx, token, identity.ID, now); err != nil {
			deps.MetricInc(deps.Metrics.RecordWriteFailure)
			deps.EmitAudit(ctx, deps.Events.RecordWriteFailed, false, identity.ID, token, err, nil)
			deps.Warn("sessiongate: durable record insert failed, session unaudited")
		}
	}

	deps.MetricInc(deps.Metrics.LoginSuccess)
	deps.MetricInc(deps.Metrics.SessionCreated)
	deps.EmitAudit(ctx, deps.Events.LoginSuccess, true, identity.ID, token, nil, nil)

	return &LoginResult{
		Token:    token,
		Identity: *identity,
		Evicted:  evicted,
	}, nil
}
