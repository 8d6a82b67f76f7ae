package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shivamkr-03/plantGuardAI/models"
	"github.com/shivamkr-03/plantGuardAI/services"
)

type HistoryHandler struct {
	historyService services.HistoryService
}

func NewHistoryHandler(historyService services.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// Save is the explicit history-write endpoint. Unlike the prediction path,
// a storage failure here is reported truthfully as an error.
func (h *HistoryHandler) Save(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var req models.CreateHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "label required"})
		return
	}

	entry := services.NewHistoryEntry{
		Label:      req.Label,
		Confidence: req.Confidence,
		Treatment:  req.Treatment,
		Metadata:   req.Metadata,
	}
	saved, err := h.historyService.Record(c.Request.Context(), userID, entry)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "entry": saved.AsResponse()})
}

func (h *HistoryHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	entries, err := h.historyService.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entries)
}
