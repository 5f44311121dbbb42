package handlers

import (
	"errors"
	"log"
	"net/http"

	"vehicle-forecast-api/services"

	"github.com/gin-gonic/gin"
)

type PredictionHandler struct {
	forecasts *services.ForecastService
}

func NewPredictionHandler(forecasts *services.ForecastService) *PredictionHandler {
	return &PredictionHandler{forecasts: forecasts}
}

type PredictRequest struct {
	Year *int `json:"year"`
}

func (h *PredictionHandler) Predict(c *gin.Context) {
	var req PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Year == nil || *req.Year == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Year is required"})
		return
	}

	result, err := h.forecasts.Predict(c.Request.Context(), *req.Year)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrWrongDataSource):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrNoHistoricalData):
			c.JSON(http.StatusBadRequest, gin.H{"error": "No historical data available"})
		default:
			log.Printf("prediction for year=%d failed: %v", *req.Year, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to calculate prediction"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
