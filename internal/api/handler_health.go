package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetHealth reports liveness and the active storage backend.
func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "storage": h.backend})
}
