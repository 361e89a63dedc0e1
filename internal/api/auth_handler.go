package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"satay/internal/api/middleware"
	"satay/internal/domain"
	"satay/pkg/logger"
	"satay/pkg/metrics"
	"satay/pkg/session"
)

type AuthHandler struct {
	userService domain.UserService
	sessions    session.Store
	logger      logger.Logger
}

func NewAuthHandler(userService domain.UserService, sessions session.Store, logger logger.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		sessions:    sessions,
		logger:      logger,
	}
}

type registerRequest struct {
	FullName string  `json:"full_name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Phone    *string `json:"phone_number"`
	Address  *string `json:"address"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type resultResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	OrderID *int64 `json:"order_id,omitempty"`
	Role    string `json:"role,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("İstek gövdesi decode edilemedi", map[string]interface{}{"error": err.Error()})
		http.Error(w, "Geçersiz istek gövdesi", http.StatusBadRequest)
		return
	}

	// Kayıt formundan gelen herkes member olur; admin kullanıcılar
	// yönetim tarafında oluşturulur.
	_, err := h.userService.Register(req.FullName, req.Email, req.Password, domain.UserRoleMember, req.Phone, req.Address)
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyRegistered) {
			writeJSON(w, http.StatusConflict, resultResponse{Success: false, Message: domain.ErrEmailAlreadyRegistered.Error()})
			return
		}
		h.logger.Error("Kayıt hatası", map[string]interface{}{"error": err.Error()})
		writeJSON(w, http.StatusInternalServerError, resultResponse{Success: false, Message: "kayıt yapılamadı"})
		return
	}

	writeJSON(w, http.StatusCreated, resultResponse{Success: true, Message: "kayıt başarılı"})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("İstek gövdesi decode edilemedi", map[string]interface{}{"error": err.Error()})
		http.Error(w, "Geçersiz istek gövdesi", http.StatusBadRequest)
		return
	}

	user, err := h.userService.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, resultResponse{Success: false, Message: domain.ErrInvalidCredentials.Error()})
			return
		}
		h.logger.Error("Giriş hatası", map[string]interface{}{"error": err.Error()})
		writeJSON(w, http.StatusInternalServerError, resultResponse{Success: false, Message: "giriş yapılamadı"})
		return
	}

	sessionID, err := h.sessions.Create(r.Context(), session.Data{UserID: user.ID, Role: user.Role})
	if err != nil {
		h.logger.Error("Oturum oluşturulamadı", map[string]interface{}{"user_id": user.ID, "error": err.Error()})
		writeJSON(w, http.StatusInternalServerError, resultResponse{Success: false, Message: "giriş yapılamadı"})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	metrics.ActiveSessions.Inc()

	writeJSON(w, http.StatusOK, resultResponse{Success: true, Message: "giriş başarılı", Role: user.Role})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.SessionCookieName)
	if err == nil {
		if err := h.sessions.Destroy(r.Context(), cookie.Value); err != nil {
			h.logger.Error("Oturum sonlandırılamadı", map[string]interface{}{"error": err.Error()})
		} else {
			metrics.ActiveSessions.Dec()
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	writeJSON(w, http.StatusOK, resultResponse{Success: true, Message: "çıkış yapıldı"})
}

func (h *AuthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/register", h.Register)
	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.HandleFunc("POST /api/auth/logout", h.Logout)
}
