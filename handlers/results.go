package handlers

import (
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// ListResultFilesHandler lists saved result files
// @Summary      List saved result files
// @Description  Returns metadata for every result set exported as JSON or CSV
// @Tags         Results
// @Produce      json
// @Success      200  {array}   models.ResultFileInfo
// @Failure      500  {object}  map[string]string "Internal server error"
// @Router       /api/results/files [get]
func (h *Handlers) ListResultFilesHandler(c *gin.Context) {
	if h.sqlService == nil || h.sqlService.GetResultsStorage() == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Results storage is unavailable"})
		return
	}

	files, err := h.sqlService.GetResultsStorage().ListResultFiles()
	if err != nil {
		log.Printf("[RESULTS HANDLER] Error listing result files: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list result files"})
		return
	}

	c.JSON(http.StatusOK, files)
}

// GetResultFileHandler reads one saved result file
// @Summary      Get a saved result file
// @Description  Returns the content of a previously exported result set
// @Tags         Results
// @Produce      json
// @Param        filename  path      string  true  "Result file name"
// @Success      200       {object}  models.ResultFile
// @Failure      404       {object}  map[string]string "File not found"
// @Router       /api/results/file/{filename} [get]
func (h *Handlers) GetResultFileHandler(c *gin.Context) {
	if h.sqlService == nil || h.sqlService.GetResultsStorage() == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Results storage is unavailable"})
		return
	}

	// Base strips any path traversal out of the parameter.
	filename := filepath.Base(c.Param("filename"))

	result, err := h.sqlService.GetResultsStorage().GetResultFile(filename)
	if err != nil {
		log.Printf("[RESULTS HANDLER] Error reading result file %s: %v", filename, err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Result file not found"})
		return
	}

	c.JSON(http.StatusOK, result)
}
