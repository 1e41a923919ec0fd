package sessiongate

import "errors"

var (
	// ErrInvalidCredentials is returned by Login for both an unknown email
	// and a wrong password. The two causes are deliberately
	// indistinguishable so callers cannot probe for account existence.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthenticated is the single rejection returned by Authenticate:
	// missing header, malformed scheme, unknown/expired/revoked token, and
	// unresolvable identity all normalize to it.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrTokenInvalid is returned by Resolve when the token has no live
	// cache entry. Never issued, revoked, evicted, and passively expired
	// look identical.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrStoreUnavailable is the service-level error for an unreachable or
	// timed-out backing store. Login and Logout surface it; Authenticate
	// converts it to ErrUnauthenticated (fail closed).
	ErrStoreUnavailable = errors.New("backing store unavailable")
	// ErrEngineNotReady is returned when an Engine method is called on an
	// engine that was not constructed through Builder.Build.
	ErrEngineNotReady = errors.New("engine not initialized")
)
