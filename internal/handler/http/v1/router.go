package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all API v1 routes. The auth middleware guards
// everything except the health check.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup, auth gin.HandlerFunc) {
	reports := api.Group("/reports", auth)
	{
		reports.POST("", h.createReport)
		reports.GET("", h.listReports)
		reports.GET("/similar", h.findSimilar)
		reports.GET("/stats", h.getStats)
		reports.GET("/:id", h.getReport)
		reports.PUT("/:id", h.updateReport)
		reports.DELETE("/:id", h.deleteReport)
		reports.POST("/:id/confirmations", h.confirmReport)
	}

	api.GET("/system/health", h.healthCheck)
}
