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

type OrderHandler struct {
	service domain.OrderService
	logger  logger.Logger
}

func NewOrderHandler(service domain.OrderService, logger logger.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger,
	}
}

type createOrderRequest struct {
	Items         []domain.OrderLine `json:"items"`
	PaymentMethod string             `json:"payment_method"`
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "Oturum bulunamadı", http.StatusUnauthorized)
		return
	}

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("İstek gövdesi decode edilemedi", map[string]interface{}{"error": err.Error()})
		http.Error(w, "Geçersiz istek gövdesi", http.StatusBadRequest)
		return
	}

	order, err := h.service.CreateOrder(sess.UserID, req.Items, req.PaymentMethod)
	if err != nil {
		h.logger.Error("Sipariş oluşturma hatası", map[string]interface{}{"user_id": sess.UserID, "error": err.Error()})
		writeJSON(w, http.StatusInternalServerError, resultResponse{Success: false, Message: "sipariş oluşturulamadı"})
		return
	}

	writeJSON(w, http.StatusCreated, resultResponse{Success: true, Message: "sipariş oluşturuldu", OrderID: &order.ID})
}

func (h *OrderHandler) GetOwnOrders(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "Oturum bulunamadı", http.StatusUnauthorized)
		return
	}

	orders, err := h.service.GetUserOrders(sess.UserID)
	if err != nil {
		h.logger.Error("Sipariş listeleme hatası", map[string]interface{}{"user_id": sess.UserID, "error": err.Error()})
		http.Error(w, "siparişler listelenemedi", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// GetOwnOrderDetails başkasının siparişini sızdırmamak için sahiplik
// tutmayan siparişe not-found döner.
func (h *OrderHandler) GetOwnOrderDetails(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "Oturum bulunamadı", http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Geçersiz ID formatı", http.StatusBadRequest)
		return
	}

	order, err := h.service.GetOrderDetails(id)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			http.Error(w, domain.ErrOrderNotFound.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error("Sipariş detay hatası", map[string]interface{}{"id": id, "error": err.Error()})
		http.Error(w, "sipariş bulunamadı", http.StatusInternalServerError)
		return
	}

	if order.UserID != sess.UserID {
		http.Error(w, domain.ErrOrderNotFound.Error(), http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) GetOrderDetails(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Geçersiz ID formatı", http.StatusBadRequest)
		return
	}

	order, err := h.service.GetOrderDetails(id)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			http.Error(w, domain.ErrOrderNotFound.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error("Sipariş detay hatası", map[string]interface{}{"id": id, "error": err.Error()})
		http.Error(w, "sipariş bulunamadı", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) GetAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.GetAllOrders()
	if err != nil {
		h.logger.Error("Sipariş listeleme hatası", map[string]interface{}{"error": err.Error()})
		http.Error(w, "siparişler listelenemedi", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) RegisterRoutes(mux *http.ServeMux, guard *middleware.SessionGuard) {
	mux.Handle("POST /api/orders", guard.RequireMember(http.HandlerFunc(h.CreateOrder)))
	mux.Handle("GET /api/orders", guard.RequireMember(http.HandlerFunc(h.GetOwnOrders)))
	mux.Handle("GET /api/orders/{id}", guard.RequireMember(http.HandlerFunc(h.GetOwnOrderDetails)))

	mux.Handle("GET /api/admin/orders", guard.RequireAdmin(http.HandlerFunc(h.GetAllOrders)))
	mux.Handle("GET /api/admin/orders/{id}", guard.RequireAdmin(http.HandlerFunc(h.GetOrderDetails)))
}
