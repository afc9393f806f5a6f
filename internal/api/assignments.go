package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mfenderov/docscan/internal/upload"
	"github.com/mfenderov/docscan/pkg/models"
)

func registerAssignmentRoutes(r *gin.Engine, h *handler) {
	g := r.Group("/assignment")
	g.POST("/scan", h.handleScan)
	g.GET("/document/:id", h.handleGetDocument)
	g.GET("/history/:email", h.handleHistory)
	g.GET("/documents/:email", h.handleHistory)
}

// handleScan accepts a multipart upload with fields "email" and "document".
func (h *handler) handleScan(c *gin.Context) {
	email := c.PostForm("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	file, err := c.FormFile("document")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	if file.Size > h.maxUploadBytes {
		respondError(c, fmt.Errorf("%w: file exceeds %d bytes", models.ErrInvalidInput, h.maxUploadBytes))
		return
	}

	f, err := file.Open()
	if err != nil {
		respondError(c, fmt.Errorf("failed to open upload: %w", err))
		return
	}
	defer f.Close()

	content, err := upload.Read(file.Filename, file.Header.Get("Content-Type"), f, h.maxUploadBytes)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.engine.Scan(c.Request.Context(), email, file.Filename, content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *handler) handleGetDocument(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
		return
	}
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	view, err := h.engine.View(c.Request.Context(), id, email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *handler) handleHistory(c *gin.Context) {
	entries, err := h.engine.History(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}
