package handlers

import (
	stderrors "errors"
	"log"

	"github.com/gin-gonic/gin"
	apierrors "github.com/projecthub/project-tracking-api/internal/errors"
	"github.com/projecthub/project-tracking-api/internal/services"
)

// respondServiceError translates service errors into API responses. Anything
// outside the known taxonomy is treated as a store failure: logged in full,
// surfaced as a generic error so internals do not leak. A failed read is
// therefore always distinguishable from an empty result.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case stderrors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, "Project not found")
	case stderrors.Is(err, services.ErrResourceNotFound):
		apierrors.NotFound(c, "Resource not found")
	case stderrors.Is(err, services.ErrMilestoneNotFound):
		apierrors.NotFound(c, "Milestone not found")
	case stderrors.Is(err, services.ErrMissingProjectFields),
		stderrors.Is(err, services.ErrInvalidProjectStatus),
		stderrors.Is(err, services.ErrInvalidDateRange),
		stderrors.Is(err, services.ErrInvalidRagStatus),
		stderrors.Is(err, services.ErrMissingResourceFields),
		stderrors.Is(err, services.ErrAllocationOutOfRange),
		stderrors.Is(err, services.ErrMissingMilestoneFields),
		stderrors.Is(err, services.ErrInvalidMilestoneStatus),
		stderrors.Is(err, services.ErrProgressOutOfRange),
		stderrors.Is(err, services.ErrNoFieldsToUpdate):
		apierrors.BadRequest(c, err.Error())
	default:
		log.Printf("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
		apierrors.InternalError(c, "")
	}
}
