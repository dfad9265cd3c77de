package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	// Маршрут Health-check
	router.GET("/", h.healthCheck)

	api := router.Group("/api")
	{
		// Прием инцидента: изображение + метка зоны
		api.POST("/detect_and_report", h.detectAndReport)
		// Агрегированные отчеты для аналитики и тепловой карты
		api.GET("/get_reports", h.getReports)
	}
}
