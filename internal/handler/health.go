package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"
)

// HealthHandler reports service liveness and storage reachability.
type HealthHandler struct {
	db      *sql.DB
	backend string
}

// NewHealthHandler creates a new health handler. backend names the spatial
// strategy selected at startup.
func NewHealthHandler(db *sql.DB, backend string) *HealthHandler {
	return &HealthHandler{db: db, backend: backend}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := "ok"
	code := http.StatusOK
	if err := h.db.PingContext(ctx); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	WriteJSON(w, code, map[string]string{
		"status":          status,
		"spatial_backend": h.backend,
	})
}
