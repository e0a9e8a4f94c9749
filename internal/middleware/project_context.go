package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// RequireProjectID validates the :id URL parameter on project routes and
// stores the parsed ID in the context. Existence checks stay in the service
// layer.
func RequireProjectID() gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr := c.Param("id")
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid project ID",
			})
			c.Abort()
			return
		}

		c.Set("project_id", id)
		c.Next()
	}
}

// GetProjectID retrieves the parsed project ID from the context
func GetProjectID(c *gin.Context) (uint64, bool) {
	value, exists := c.Get("project_id")
	if !exists {
		return 0, false
	}
	id, ok := value.(uint64)
	return id, ok
}
