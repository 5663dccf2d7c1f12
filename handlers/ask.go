package handlers

import (
	"log"
	"net/http"

	"storepulse/models"
	"storepulse/validation"

	"github.com/gin-gonic/gin"
)

// AskHandler answers a natural-language business question
// @Summary      Ask an analytics question
// @Description  Translates the question into a safe read-only SQL query, executes it, and returns rows with a chart hint and insights. Pipeline failures are reported inside the response body, not as HTTP errors.
// @Tags         Analytics
// @Accept       json
// @Produce      json
// @Param        request  body      models.AskRequest  true  "Question with optional prior conversation turns"
// @Param        save     query     string             false "Save the result set as a file (json or csv)"
// @Success      200      {object}  models.AnalysisResponse "Analysis result"
// @Failure      400      {object}  map[string]string       "Invalid request"
// @Router       /api/analytics/ask [post]
func (h *Handlers) AskHandler(c *gin.Context) {
	var req models.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if !validation.IsValidQuestion(req.Question) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "請輸入有意義的問題"})
		return
	}

	log.Printf("[ASK HANDLER] Question: %s (%d prior turns)", req.Question, len(req.Conversation))

	response := h.engine.Ask(c.Request.Context(), req.Question, req.Conversation)

	if format := c.Query("save"); format != "" && response.Error == "" && len(response.Rows) > 0 {
		response.SavedFile = h.saveResult(response, format)
	}

	c.JSON(http.StatusOK, response)
}

func (h *Handlers) saveResult(response *models.AnalysisResponse, format string) string {
	if h.sqlService == nil {
		return ""
	}
	storage := h.sqlService.GetResultsStorage()
	if storage == nil {
		return ""
	}

	result := &models.ResultSet{
		Columns: response.Columns,
		Rows:    make([][]interface{}, len(response.Rows)),
	}
	for i, row := range response.Rows {
		result.Rows[i] = row.Values
	}

	var filename string
	var err error
	if format == "csv" {
		filename, err = storage.SaveResultAsCSV(result)
	} else {
		filename, err = storage.SaveResultAsJSON(result, response.SQL)
	}
	if err != nil {
		log.Printf("[ASK HANDLER] Error saving result file: %v", err)
		return ""
	}
	return filename
}
