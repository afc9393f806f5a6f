package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func registerHealthRoutes(r *gin.Engine, h *handler) {
	r.GET("/api/health", h.handleHealth)
}

func (h *handler) handleHealth(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
