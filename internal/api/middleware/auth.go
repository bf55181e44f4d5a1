package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/zatekoja/hospitalmanagement/backend/internal/domain/entities"
)

type contextKey string

const sessionContextKey contextKey = "session"

// SessionResolver resolves an opaque token to an authenticated session.
type SessionResolver interface {
	Get(ctx context.Context, token string) (*entities.Session, error)
}

// AuthMiddleware gates requests on an established session and, optionally,
// on the session's role. Identity is injected into the request context so
// business logic never reads ambient session state.
type AuthMiddleware struct {
	sessions   SessionResolver
	cookieName string
}

// NewAuthMiddleware creates a new auth middleware.
func NewAuthMiddleware(sessions SessionResolver, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		sessions:   sessions,
		cookieName: cookieName,
	}
}

// RequireSession rejects requests without a valid session with 401.
func (m *AuthMiddleware) RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := m.resolve(w, r)
		if !ok {
			return
		}
		next(w, r.WithContext(ContextWithSession(r.Context(), session)))
	}
}

// RequireRole rejects requests without a valid session (401) or whose
// session role does not match (403).
func (m *AuthMiddleware) RequireRole(role entities.Role, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := m.resolve(w, r)
		if !ok {
			return
		}
		if session.Role != role {
			writeJSONError(w, http.StatusForbidden, "insufficient role")
			return
		}
		next(w, r.WithContext(ContextWithSession(r.Context(), session)))
	}
}

func (m *AuthMiddleware) resolve(w http.ResponseWriter, r *http.Request) (*entities.Session, bool) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		writeJSONError(w, http.StatusUnauthorized, "authentication required")
		return nil, false
	}

	session, err := m.sessions.Get(r.Context(), cookie.Value)
	if err != nil {
		writeJSONError(w, http.StatusUnauthorized, "authentication required")
		return nil, false
	}

	return session, true
}

// ContextWithSession returns a context carrying the session.
func ContextWithSession(ctx context.Context, session *entities.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, session)
}

// SessionFromContext returns the session attached by the auth middleware,
// or nil for anonymous requests.
func SessionFromContext(ctx context.Context) *entities.Session {
	session, _ := ctx.Value(sessionContextKey).(*entities.Session)
	return session
}

func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
