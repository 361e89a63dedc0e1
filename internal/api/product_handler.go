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

type ProductHandler struct {
	service domain.ProductService
	logger  logger.Logger
}

func NewProductHandler(service domain.ProductService, logger logger.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

type adjustStockRequest struct {
	Delta int64 `json:"delta"`
}

func (h *ProductHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	var categoryID *int64

	if categoryStr := r.URL.Query().Get("category_id"); categoryStr != "" {
		id, err := strconv.ParseInt(categoryStr, 10, 64)
		if err != nil {
			http.Error(w, "Geçersiz kategori ID formatı", http.StatusBadRequest)
			return
		}
		categoryID = &id
	}

	products, err := h.service.GetProducts(categoryID)
	if err != nil {
		h.logger.Error("Ürün listeleme hatası", map[string]interface{}{"error": err.Error()})
		http.Error(w, "ürünler listelenemedi", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Geçersiz ID formatı", http.StatusBadRequest)
		return
	}

	product, err := h.service.GetProductByID(id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			http.Error(w, domain.ErrProductNotFound.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error("Ürün bulunamadı", map[string]interface{}{"id": id, "error": err.Error()})
		http.Error(w, "ürün bulunamadı", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories()
	if err != nil {
		h.logger.Error("Kategori listeleme hatası", map[string]interface{}{"error": err.Error()})
		http.Error(w, "kategoriler listelenemedi", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, categories)
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var product domain.Product

	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		h.logger.Error("İstek gövdesi decode edilemedi", map[string]interface{}{"error": err.Error()})
		http.Error(w, "Geçersiz istek gövdesi", http.StatusBadRequest)
		return
	}

	if err := h.service.CreateProduct(&product); err != nil {
		h.logger.Error("Ürün oluşturma hatası", map[string]interface{}{"error": err.Error()})
		writeJSON(w, http.StatusInternalServerError, resultResponse{Success: false, Message: "ürün oluşturulamadı"})
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Geçersiz ID formatı", http.StatusBadRequest)
		return
	}

	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		h.logger.Error("İstek gövdesi decode edilemedi", map[string]interface{}{"error": err.Error()})
		http.Error(w, "Geçersiz istek gövdesi", http.StatusBadRequest)
		return
	}
	product.ID = id

	if err := h.service.UpdateProduct(&product); err != nil {
		h.logger.Error("Ürün güncelleme hatası", map[string]interface{}{"id": id, "error": err.Error()})
		writeJSON(w, http.StatusInternalServerError, resultResponse{Success: false, Message: "ürün güncellenemedi"})
		return
	}

	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Geçersiz ID formatı", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteProduct(id); err != nil {
		h.logger.Error("Ürün silme hatası", map[string]interface{}{"id": id, "error": err.Error()})
		http.Error(w, "ürün silinemedi", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Geçersiz ID formatı", http.StatusBadRequest)
		return
	}

	var req adjustStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("İstek gövdesi decode edilemedi", map[string]interface{}{"error": err.Error()})
		http.Error(w, "Geçersiz istek gövdesi", http.StatusBadRequest)
		return
	}

	if err := h.service.AdjustStock(id, req.Delta); err != nil {
		h.logger.Error("Stok güncelleme hatası", map[string]interface{}{"id": id, "error": err.Error()})
		writeJSON(w, http.StatusInternalServerError, resultResponse{Success: false, Message: "stok güncellenemedi"})
		return
	}

	writeJSON(w, http.StatusOK, resultResponse{Success: true, Message: "stok güncellendi"})
}

func (h *ProductHandler) RegisterRoutes(mux *http.ServeMux, guard *middleware.SessionGuard) {
	mux.HandleFunc("GET /api/products", h.GetProducts)
	mux.HandleFunc("GET /api/products/{id}", h.GetProductByID)
	mux.HandleFunc("GET /api/categories", h.ListCategories)

	mux.Handle("POST /api/admin/products", guard.RequireAdmin(http.HandlerFunc(h.CreateProduct)))
	mux.Handle("PUT /api/admin/products/{id}", guard.RequireAdmin(http.HandlerFunc(h.UpdateProduct)))
	mux.Handle("DELETE /api/admin/products/{id}", guard.RequireAdmin(http.HandlerFunc(h.DeleteProduct)))
	mux.Handle("PATCH /api/admin/products/{id}/stock", guard.RequireAdmin(http.HandlerFunc(h.AdjustStock)))
}
