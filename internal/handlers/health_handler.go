package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/serenity-studio/yoga-scheduler/internal/store"
	"github.com/serenity-studio/yoga-scheduler/internal/timezone"
)

type HealthHandler struct {
	backend store.Backend
}

func NewHealthHandler(backend store.Backend) *HealthHandler {
	return &HealthHandler{backend: backend}
}

// Check reads the collection once to prove the storage path works.
func (h *HealthHandler) Check(c *gin.Context) {
	all, err := h.backend.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       "healthy",
		"reservations": len(all),
		"timestamp":    timezone.Now(),
	})
}
