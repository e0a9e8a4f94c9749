package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/projecthub/project-tracking-api/internal/dto"
	"github.com/projecthub/project-tracking-api/internal/services"
)

type DashboardHandler struct {
	reportService *services.ReportService
}

func NewDashboardHandler(reportService *services.ReportService) *DashboardHandler {
	return &DashboardHandler{
		reportService: reportService,
	}
}

// GetStats returns the dashboard counters
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.reportService.DashboardStats(time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardStatsDTO(*stats))
}
