package handlers

import (
	"log"
	"net/http"
	"strconv"

	"storepulse/config"

	"github.com/gin-gonic/gin"
)

// AuditHandler lists recent query audit records
// @Summary      List query audit records
// @Description  Returns the most recent analytics requests with the SQL that was generated, validated, and executed (or rejected)
// @Tags         Analytics
// @Produce      json
// @Param        limit  query     int  false  "Maximum number of records (default 50)"
// @Success      200    {array}   models.QueryAuditRecord
// @Failure      500    {object}  map[string]string "Internal server error"
// @Router       /api/analytics/audit [get]
func (h *Handlers) AuditHandler(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	records, err := h.db.ListAuditRecords(limit)
	if err != nil {
		log.Printf("[AUDIT HANDLER] Error listing audit records: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load audit records"})
		return
	}

	c.JSON(http.StatusOK, records)
}

// SchemaHandler returns the schema context text
// @Summary      Get the queryable schema description
// @Description  Returns the versioned schema description that the SQL generator is prompted with
// @Tags         Analytics
// @Produce      plain
// @Success      200  {string}  string  "Schema description"
// @Router       /api/analytics/schema [get]
func (h *Handlers) SchemaHandler(c *gin.Context) {
	c.String(http.StatusOK, config.SchemaContext)
}
