package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"satay/internal/domain"
	"satay/pkg/logger"
	"satay/pkg/session"
)

type fakeSessionStore struct {
	sessions map[string]session.Data
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]session.Data)}
}

func (s *fakeSessionStore) Create(ctx context.Context, data session.Data) (string, error) {
	id := "sess-" + data.Role
	s.sessions[id] = data
	return id, nil
}

func (s *fakeSessionStore) Get(ctx context.Context, sessionID string) (*session.Data, error) {
	data, ok := s.sessions[sessionID]
	if !ok {
		return nil, session.ErrSessionNotFound
	}
	return &data, nil
}

func (s *fakeSessionStore) Destroy(ctx context.Context, sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

func (s *fakeSessionStore) Ping(ctx context.Context) error {
	return nil
}

func newTestGuard(store session.Store) *SessionGuard {
	return NewSessionGuard(store, logger.New(logger.ErrorLevel, nil))
}

func okHandler(sawSession *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := SessionFromContext(r.Context()); ok {
			*sawSession = true
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAdminWithoutCookieRedirects(t *testing.T) {
	guard := newTestGuard(newFakeSessionStore())

	sawSession := false
	handler := guard.RequireAdmin(okHandler(&sawSession))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, AdminLoginPath, rec.Header().Get("Location"))
	require.False(t, sawSession)
}

func TestRequireAdminWithUnknownSessionRedirects(t *testing.T) {
	guard := newTestGuard(newFakeSessionStore())

	sawSession := false
	handler := guard.RequireAdmin(okHandler(&sawSession))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "yok"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.False(t, sawSession)
}

func TestRequireAdminRejectsMemberRole(t *testing.T) {
	store := newFakeSessionStore()
	sessionID, err := store.Create(context.Background(), session.Data{UserID: 5, Role: domain.UserRoleMember})
	require.NoError(t, err)

	guard := newTestGuard(store)

	sawSession := false
	handler := guard.RequireAdmin(okHandler(&sawSession))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sessionID})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, AdminLoginPath, rec.Header().Get("Location"))
	require.False(t, sawSession)
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	store := newFakeSessionStore()
	sessionID, err := store.Create(context.Background(), session.Data{UserID: 1, Role: domain.UserRoleAdmin})
	require.NoError(t, err)

	guard := newTestGuard(store)

	sawSession := false
	handler := guard.RequireAdmin(okHandler(&sawSession))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sessionID})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, sawSession)
}

// Rol eşitliği birebir aranır; admin oturumu member sayfasından geçemez.
func TestRequireMemberRejectsAdminRole(t *testing.T) {
	store := newFakeSessionStore()
	sessionID, err := store.Create(context.Background(), session.Data{UserID: 1, Role: domain.UserRoleAdmin})
	require.NoError(t, err)

	guard := newTestGuard(store)

	sawSession := false
	handler := guard.RequireMember(okHandler(&sawSession))

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sessionID})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, MemberLoginPath, rec.Header().Get("Location"))
	require.False(t, sawSession)
}
