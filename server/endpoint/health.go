package endpoint

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/depbatch/observability"
)

// Health returns a handler that reports service health including the status
// of every checker. A down component turns the response into a 503.
func Health(serviceName, version string, checkers ...observability.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := observability.NewServiceHealth(serviceName, version)
		for _, ch := range checkers {
			health.AddComponent(ch.CheckHealth(c.Request.Context()))
		}

		status := http.StatusOK
		if health.Status == observability.HealthStatusDown {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, health)
	}
}
