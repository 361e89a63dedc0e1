package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"satay/internal/api/middleware"
	"satay/internal/domain"
	"satay/pkg/logger"
)

type UserHandler struct {
	service domain.UserService
	logger  logger.Logger
}

func NewUserHandler(service domain.UserService, logger logger.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger,
	}
}

type updateProfileRequest struct {
	FullName string  `json:"full_name"`
	Phone    *string `json:"phone_number"`
	Address  *string `json:"address"`
}

type changePasswordRequest struct {
	NewPassword string `json:"new_password"`
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "Oturum bulunamadı", http.StatusUnauthorized)
		return
	}

	user, err := h.service.GetUserByID(sess.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			http.Error(w, domain.ErrUserNotFound.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error("Kullanıcı bulunamadı", map[string]interface{}{"id": sess.UserID, "error": err.Error()})
		http.Error(w, "kullanıcı bulunamadı", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "Oturum bulunamadı", http.StatusUnauthorized)
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("İstek gövdesi decode edilemedi", map[string]interface{}{"error": err.Error()})
		http.Error(w, "Geçersiz istek gövdesi", http.StatusBadRequest)
		return
	}

	if err := h.service.UpdateProfile(sess.UserID, req.FullName, req.Phone, req.Address); err != nil {
		h.logger.Error("Profil güncelleme hatası", map[string]interface{}{"id": sess.UserID, "error": err.Error()})
		writeJSON(w, http.StatusInternalServerError, resultResponse{Success: false, Message: "profil güncellenemedi"})
		return
	}

	writeJSON(w, http.StatusOK, resultResponse{Success: true, Message: "profil güncellendi"})
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "Oturum bulunamadı", http.StatusUnauthorized)
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("İstek gövdesi decode edilemedi", map[string]interface{}{"error": err.Error()})
		http.Error(w, "Geçersiz istek gövdesi", http.StatusBadRequest)
		return
	}

	if err := h.service.ChangePassword(sess.UserID, req.NewPassword); err != nil {
		h.logger.Error("Şifre değiştirme hatası", map[string]interface{}{"id": sess.UserID, "error": err.Error()})
		writeJSON(w, http.StatusInternalServerError, resultResponse{Success: false, Message: "şifre değiştirilemedi"})
		return
	}

	writeJSON(w, http.StatusOK, resultResponse{Success: true, Message: "şifre değiştirildi"})
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	role := r.URL.Query().Get("role")

	users, err := h.service.ListUsers(role)
	if err != nil {
		h.logger.Error("Kullanıcı listeleme hatası", map[string]interface{}{"error": err.Error()})
		http.Error(w, "kullanıcılar listelenemedi", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Geçersiz ID formatı", http.StatusBadRequest)
		return
	}

	user, err := h.service.GetUserByID(id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			http.Error(w, domain.ErrUserNotFound.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error("Kullanıcı bulunamadı", map[string]interface{}{"id": id, "error": err.Error()})
		http.Error(w, "kullanıcı bulunamadı", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Geçersiz ID formatı", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteUser(id); err != nil {
		h.logger.Error("Kullanıcı silme hatası", map[string]interface{}{"id": id, "error": err.Error()})
		http.Error(w, "kullanıcı silinemedi", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) RegisterRoutes(mux *http.ServeMux, guard *middleware.SessionGuard) {
	mux.Handle("GET /api/users/me", guard.RequireMember(http.HandlerFunc(h.Me)))
	mux.Handle("PUT /api/users/profile", guard.RequireMember(http.HandlerFunc(h.UpdateProfile)))
	mux.Handle("PUT /api/users/password", guard.RequireMember(http.HandlerFunc(h.ChangePassword)))

	mux.Handle("GET /api/admin/users", guard.RequireAdmin(http.HandlerFunc(h.ListUsers)))
	mux.Handle("GET /api/admin/users/{id}", guard.RequireAdmin(http.HandlerFunc(h.GetUserByID)))
	mux.Handle("DELETE /api/admin/users/{id}", guard.RequireAdmin(http.HandlerFunc(h.DeleteUser)))
}
