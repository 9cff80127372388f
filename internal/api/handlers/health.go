package handlers

import (
	"net/http"

	"github.com/go-chi/render"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

func NewHealthHandler(db *gorm.DB, logger *zap.SugaredLogger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		logger: logger,
	}
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	DBState string `json:"dbState"`
}

func (rd *HealthResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// Check reports whether the backend can reach the database. A failed ping
// degrades to a warning; only the inability to obtain a connection handle
// is treated as an error.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	sqlDB, err := h.db.DB()
	if err != nil {
		h.logger.Errorw("health check failed", "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.Render(w, r, &HealthResponse{
			Status:  "error",
			Message: "Backend error: " + err.Error(),
			DBState: "error",
		})
		return
	}

	if err := sqlDB.PingContext(r.Context()); err != nil {
		h.logger.Warnw("database ping failed", "error", err)
		render.Render(w, r, &HealthResponse{
			Status:  "warning",
			Message: "Backend is online but database is unreachable",
			DBState: "disconnected",
		})
		return
	}

	render.Render(w, r, &HealthResponse{
		Status:  "ok",
		Message: "Backend is online and connected to the database",
		DBState: "connected",
	})
}

type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (rd *StatusResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// Status is the bare liveness banner on / and /api.
func (h *HealthHandler) Status(w http.ResponseWriter, r *http.Request) {
	render.Render(w, r, &StatusResponse{
		Status:  "ok",
		Message: "Pressroom API is running",
	})
}
