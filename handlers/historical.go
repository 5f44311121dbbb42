package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"vehicle-forecast-api/models"
	"vehicle-forecast-api/services"

	"github.com/gin-gonic/gin"
)

type HistoricalHandler struct {
	records *services.HistoricalService
	sources *services.DataSourceService
}

func NewHistoricalHandler(records *services.HistoricalService, sources *services.DataSourceService) *HistoricalHandler {
	return &HistoricalHandler{records: records, sources: sources}
}

type CreateRecordRequest struct {
	Tahun *int   `json:"tahun" binding:"required"`
	Mobil *int64 `json:"mobil" binding:"required,min=0"`
	Motor *int64 `json:"motor" binding:"required,min=0"`
}

type UpdateRecordRequest struct {
	Mobil *int64 `json:"mobil" binding:"required,min=0"`
	Motor *int64 `json:"motor" binding:"required,min=0"`
}

type HistoricalResponse struct {
	Data   []models.HistoricalRecord `json:"data"`
	Source string                    `json:"source"`
}

func (h *HistoricalHandler) List(c *gin.Context) {
	r, err := ParseYearRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.sources.RequireDatabase(c.Request.Context()); err != nil {
		if errors.Is(err, services.ErrWrongDataSource) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("resolve data source failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch historical data"})
		return
	}

	rows, err := h.records.List(c.Request.Context())
	if err != nil {
		log.Printf("list historical data failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch historical data"})
		return
	}

	c.JSON(http.StatusOK, HistoricalResponse{Data: r.Apply(rows), Source: models.DatabaseSource})
}

func (h *HistoricalHandler) Create(c *gin.Context) {
	var req CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tahun, mobil and motor are required; counts must not be negative"})
		return
	}

	rec, err := h.records.Create(c.Request.Context(), models.HistoricalRecord{
		Tahun: *req.Tahun,
		Mobil: *req.Mobil,
		Motor: *req.Motor,
	})
	if err != nil {
		var dup *services.DuplicateYearError
		switch {
		case errors.As(err, &dup), errors.Is(err, services.ErrInvalidRecord):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Printf("create historical data tahun=%d failed: %v", *req.Tahun, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create data"})
		}
		return
	}

	c.JSON(http.StatusCreated, rec)
}

func (h *HistoricalHandler) Update(c *gin.Context) {
	tahun, ok := yearParam(c)
	if !ok {
		return
	}

	var req UpdateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mobil and motor are required; counts must not be negative"})
		return
	}

	rec, err := h.records.Update(c.Request.Context(), tahun, *req.Mobil, *req.Motor)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRecord) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		// A missing year is reported like any other store failure.
		log.Printf("update historical data tahun=%d failed: %v", tahun, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update data"})
		return
	}

	c.JSON(http.StatusOK, rec)
}

func (h *HistoricalHandler) Delete(c *gin.Context) {
	tahun, ok := yearParam(c)
	if !ok {
		return
	}

	if err := h.records.Delete(c.Request.Context(), tahun); err != nil {
		log.Printf("delete historical data tahun=%d failed: %v", tahun, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("data for year %d deleted", tahun),
	})
}

func yearParam(c *gin.Context) (int, bool) {
	tahun, err := strconv.Atoi(c.Param("tahun"))
	if err != nil || tahun <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return 0, false
	}
	return tahun, true
}
