package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/store"
)

type HealthHandler struct {
	store   store.Store
	started time.Time
}

func NewHealthHandler(s store.Store) *HealthHandler {
	return &HealthHandler{store: s, started: time.Now()}
}

// Health reports liveness and whether the store answers.
func (h *HealthHandler) Health(c *gin.Context) {
	status, code := "ok", http.StatusOK
	if _, err := h.store.Find(c.Request.Context(), store.Admins, store.Filter{"id": -1}); err != nil {
		status, code = "degraded", http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status": status,
		"uptime": time.Since(h.started).Round(time.Second).String(),
	})
}
