package api

import (
	"database/sql"
	"net/http"
	"time"

	"satay/pkg/logger"
	"satay/pkg/session"
)

type HealthHandler struct {
	db       *sql.DB
	sessions session.Store
	logger   logger.Logger
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

func NewHealthHandler(db *sql.DB, sessions session.Store, logger logger.Logger) *HealthHandler {
	return &HealthHandler{
		db:       db,
		sessions: sessions,
		logger:   logger,
	}
}

func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	services := make(map[string]string)
	status := "healthy"

	if err := h.db.PingContext(r.Context()); err != nil {
		h.logger.Error("Veritabanı sağlık kontrolü başarısız", map[string]interface{}{"error": err.Error()})
		services["database"] = "unhealthy"
		status = "degraded"
	} else {
		services["database"] = "healthy"
	}

	if err := h.sessions.Ping(r.Context()); err != nil {
		h.logger.Error("Oturum deposu sağlık kontrolü başarısız", map[string]interface{}{"error": err.Error()})
		services["session_store"] = "unhealthy"
		status = "degraded"
	} else {
		services["session_store"] = "healthy"
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	writeJSON(w, statusCode, HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Services:  services,
	})
}

func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.HealthCheck)
}
