package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"vehicle-forecast-api/services"

	"github.com/gin-gonic/gin"
)

type DataSourceHandler struct {
	sources *services.DataSourceService
}

func NewDataSourceHandler(sources *services.DataSourceService) *DataSourceHandler {
	return &DataSourceHandler{sources: sources}
}

type SwitchSourceRequest struct {
	SourceName string `json:"sourceName" binding:"required"`
}

func (h *DataSourceHandler) List(c *gin.Context) {
	sources, err := h.sources.List(c.Request.Context())
	if err != nil {
		log.Printf("list data sources failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch data sources"})
		return
	}
	c.JSON(http.StatusOK, sources)
}

func (h *DataSourceHandler) Switch(c *gin.Context) {
	var req SwitchSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sourceName is required"})
		return
	}

	active, err := h.sources.Switch(c.Request.Context(), req.SourceName)
	if err != nil {
		if errors.Is(err, services.ErrInvalidSourceName) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "sourceName is required"})
			return
		}
		if errors.Is(err, services.ErrDataSourceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("data source %q not found", req.SourceName)})
			return
		}
		log.Printf("switch data source to %q failed: %v", req.SourceName, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to switch data source"})
		return
	}

	log.Printf("active data source switched to %s", active)
	c.JSON(http.StatusOK, gin.H{"success": true, "activeSource": active})
}
