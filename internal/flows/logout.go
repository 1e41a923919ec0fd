package flows

import "context"

// LogoutMetrics carries metric IDs needed by the logout flow.
type LogoutMetrics struct {
	Logout              int
	StoreUnavailable    int
	RecordDeleteFailure int
}

// LogoutEvents carries audit event names used by the logout flow.
type LogoutEvents struct {
	Logout             string
	RecordDeleteFailed string
}

// LogoutErrors carries host-level sentinel errors used by the logout flow.
type LogoutErrors struct {
	EngineNotReady   error
	StoreUnavailable error
}

// LogoutDeps captures revocation dependencies.
type LogoutDeps struct {
	DeleteEntry   func(context.Context, string) error
	RemoveSession func(context.Context, string, string) error
	DeleteRecord  func(context.Context, string) error

	MetricInc func(int)
	EmitAudit func(context.Context, string, bool, string, string, error, func() map[string]string)
	Warn      func(string, ...any)

	Metrics LogoutMetrics
	Events  LogoutEvents
	Errors  LogoutErrors
}

// RunLogout revokes a token: cache entry, list membership, durable record.
// Every step tolerates the token already being gone, so a second call on the
// same token acks without further state change.
func RunLogout(ctx context.Context, token, userID string, deps LogoutDeps) error {
	if deps.MetricInc == nil {
		deps.MetricInc = func(int) {}
	}
	if deps.EmitAudit == nil {
		deps.EmitAudit = func(context.Context, string, bool, string, string, error, func() map[string]string) {}
	}
	if deps.Warn == nil {
		deps.Warn = func(string, ...any) {}
	}
	if deps.DeleteEntry == nil || deps.RemoveSession == nil {
		return deps.Errors.EngineNotReady
	}

	if err := deps.DeleteEntry(ctx, token); err != nil {
		deps.MetricInc(deps.Metrics.StoreUnavailable)
		return deps.Errors.StoreUnavailable
	}

	if err := deps.RemoveSession(ctx, userID, token); err != nil {
		deps.MetricInc(deps.Metrics.StoreUnavailable)
		return deps.Errors.StoreUnavailable
	}

	if deps.DeleteRecord != nil {
		if err := deps.DeleteRecord(ctx, token); err != nil {
			deps.MetricInc(deps.Metrics.RecordDeleteFailure)
			deps.EmitAudit(ctx, deps.Events.RecordDeleteFailed, false, userID, token, err, nil)
			deps.Warn("sessiongate: durable record delete failed on logout")
		}
	}

	deps.MetricInc(deps.Metrics.Logout)
	deps.EmitAudit(ctx, deps.Events.Logout, true, userID, token, nil, nil)

	return nil
}
