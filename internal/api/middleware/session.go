package middleware

import (
	"context"
	"net/http"

	"satay/internal/domain"
	"satay/pkg/logger"
	"satay/pkg/session"
)

const SessionCookieName = "satay_session"

const (
	AdminLoginPath  = "/admin/login?error=unauthorized"
	MemberLoginPath = "/login?error=unauthorized"
)

type contextKey string

const sessionContextKey contextKey = "session"

// SessionFromContext guard'ı geçen isteğin oturum verisini döner.
func SessionFromContext(ctx context.Context) (*session.Data, bool) {
	data, ok := ctx.Value(sessionContextKey).(*session.Data)
	return data, ok
}

type SessionGuard struct {
	store  session.Store
	logger logger.Logger
}

func NewSessionGuard(store session.Store, logger logger.Logger) *SessionGuard {
	return &SessionGuard{
		store:  store,
		logger: logger,
	}
}

func (g *SessionGuard) RequireAdmin(next http.Handler) http.Handler {
	return g.requireRole(domain.UserRoleAdmin, AdminLoginPath, next)
}

func (g *SessionGuard) RequireMember(next http.Handler) http.Handler {
	return g.requireRole(domain.UserRoleMember, MemberLoginPath, next)
}

func (g *SessionGuard) requireRole(role, loginPath string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			http.Redirect(w, r, loginPath, http.StatusSeeOther)
			return
		}

		data, err := g.store.Get(r.Context(), cookie.Value)
		if err != nil {
			if err != session.ErrSessionNotFound {
				g.logger.Error("Oturum doğrulanamadı", map[string]interface{}{"error": err.Error()})
			}
			http.Redirect(w, r, loginPath, http.StatusSeeOther)
			return
		}

		if data.UserID == 0 || data.Role != role {
			http.Redirect(w, r, loginPath, http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, data)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
