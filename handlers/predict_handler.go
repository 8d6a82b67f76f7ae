package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shivamkr-03/plantGuardAI/inference"
	"github.com/shivamkr-03/plantGuardAI/middleware"
	"github.com/shivamkr-03/plantGuardAI/services"
)

// Multipart uploads are read fully into memory; 10 MiB is plenty for photos.
const maxUploadBytes = 10 << 20

type PredictHandler struct {
	predictService services.PredictService
}

func NewPredictHandler(predictService services.PredictService) *PredictHandler {
	return &PredictHandler{predictService: predictService}
}

func (h *PredictHandler) Predict(c *gin.Context) {
	file, _, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image file sent. Use form field 'image'."})
		return
	}
	defer file.Close()

	imageBytes, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image upload."})
		return
	}

	response, err := h.predictService.Predict(c.Request.Context(), imageBytes, middleware.IdentityFrom(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrModelUnavailable):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Model not loaded on server."})
		case errors.Is(err, inference.ErrDecode):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot open image: " + err.Error()})
		case errors.Is(err, services.ErrInference):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Model prediction failed: " + err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, response)
}
