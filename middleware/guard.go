package middleware

import (
	"context"
	"net/http"

	"github.com/MrEthical07/sessiongate"
)

type identityContextKey struct{}

// IdentityFromContext returns the identity injected by [Guard] for the
// current request.
func IdentityFromContext(ctx context.Context) (*sessiongate.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey{}).(*sessiongate.Identity)
	return identity, ok
}

// Guard wraps protected handlers. Every request passes its Authorization
// header through Engine.Authenticate before reaching downstream handlers;
// rejected requests answer 401 and never see the inner handler.
func Guard(engine *sessiongate.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Error(w, "unauthenticated", http.StatusUnauthorized)
				return
			}

			identity, err := engine.Authenticate(r.Context(), r.Header.Get("Authorization"))
			if err != nil {
				http.Error(w, "unauthenticated", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), identityContextKey{}, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
