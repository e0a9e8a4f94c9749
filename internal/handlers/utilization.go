package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/projecthub/project-tracking-api/internal/dto"
	apierrors "github.com/projecthub/project-tracking-api/internal/errors"
	"github.com/projecthub/project-tracking-api/internal/services"
	"github.com/projecthub/project-tracking-api/internal/utils"
)

type UtilizationHandler struct {
	utilizationService *services.UtilizationService
}

func NewUtilizationHandler(utilizationService *services.UtilizationService) *UtilizationHandler {
	return &UtilizationHandler{
		utilizationService: utilizationService,
	}
}

// GetWeeklyUtilization returns the snapshot history as chart data
func (h *UtilizationHandler) GetWeeklyUtilization(c *gin.Context) {
	series, err := h.utilizationService.Series(time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToChartSeriesDTO(*series))
}

// CaptureWeeklyUtilization measures the week containing the reference date
// (default today; ?date=YYYY-MM-DD overrides) and upserts its snapshot.
// Re-running within the same week replaces the row.
func (h *UtilizationHandler) CaptureWeeklyUtilization(c *gin.Context) {
	referenceDate := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := utils.ParseDate(dateStr)
		if err != nil {
			apierrors.BadRequest(c, err.Error())
			return
		}
		referenceDate = parsed
	}

	snapshot, err := h.utilizationService.Capture(referenceDate)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"snapshot": dto.ToSnapshotDTO(*snapshot),
		"message":  "Weekly utilization snapshot captured",
	})
}
