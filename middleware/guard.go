package middleware

import (
	"context"
	"net/http"
	"strings"

	goGate "github.com/MrEthical07/goGate"
)

// CookieName is the session cookie carrying the opaque token.
const CookieName = "gogate_session"

type userContextKey struct{}

// FailureHandler renders an authentication or authorization failure. A nil
// handler falls back to a plain 401 response.
type FailureHandler func(w http.ResponseWriter, r *http.Request, err error)

// UserFromContext describes the userfromcontext operation and its observable behavior.
//
// UserFromContext may return an error when input validation, dependency calls, or security checks fail.
// UserFromContext does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func UserFromContext(ctx context.Context) (*goGate.AuthenticatedUser, bool) {
	user, ok := ctx.Value(userContextKey{}).(*goGate.AuthenticatedUser)
	return user, ok
}

// Guard authenticates the request through the engine. A request without a
// resolvable, live session token never reaches the wrapped handler; a
// successful resolution renews the session (sliding expiration) and makes
// the user available via [UserFromContext].
func Guard(engine *goGate.Engine, onFailure FailureHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				fail(w, r, onFailure, goGate.ErrEngineNotReady)
				return
			}

			user, err := engine.Authenticate(requestContext(r), TokenFromRequest(r))
			if err != nil {
				fail(w, r, onFailure, err)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole layers the strict role equality check on top of [Guard]. It
// must run inside a Guard-wrapped chain; a missing context user is treated
// as unauthenticated. On mismatch the wrapped handler is never invoked.
func RequireRole(engine *goGate.Engine, role goGate.Role, onFailure FailureHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				fail(w, r, onFailure, goGate.ErrUnauthenticated)
				return
			}

			if err := engine.Authorize(requestContext(r), user, role); err != nil {
				fail(w, r, onFailure, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// TokenFromRequest extracts the presented session token: the session cookie
// when present, otherwise an Authorization Bearer value. Returns "" when the
// request carries neither.
func TokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return bearerToken(r.Header.Get("Authorization"))
}

func bearerToken(value string) string {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return ""
	}
	return value[len(bearer):]
}

func requestContext(r *http.Request) context.Context {
	host := r.RemoteAddr
	if idx := strings.LastIndex(host, ":"); idx > 0 {
		host = host[:idx]
	}
	return goGate.WithClientIP(r.Context(), host)
}

func fail(w http.ResponseWriter, r *http.Request, onFailure FailureHandler, err error) {
	if onFailure != nil {
		onFailure(w, r, err)
		return
	}
	http.Error(w, "unauthorized", http.StatusUnauthorized)
}
