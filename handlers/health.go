package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports service health
// @Summary      Health check
// @Description  Returns service status and whether the analytics database is reachable
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]interface{} "Health status"
// @Router       /health [get]
func (h *Handlers) HealthHandler(c *gin.Context) {
	dbConnected := h.sqlService != nil && h.sqlService.IsConnected()

	c.JSON(http.StatusOK, gin.H{
		"status":             "ok",
		"database_connected": dbConnected,
	})
}
