package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/projecthub/project-tracking-api/internal/dto"
	"github.com/projecthub/project-tracking-api/internal/services"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// GetProjectReport returns the printable project report.
// ?include_allocations=true adds the per-project allocation breakdown.
func (h *ReportHandler) GetProjectReport(c *gin.Context) {
	includeAllocations := c.Query("include_allocations") == "true"

	report, err := h.reportService.ProjectReport(time.Now(), includeAllocations)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectReportDTO(*report))
}
