package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/ovsienko/campus_cleanliness_monitoring/internal/config"
	"github.com/ovsienko/campus_cleanliness_monitoring/internal/models"
	"github.com/ovsienko/campus_cleanliness_monitoring/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	incidentService service.IncidentService
	logger          *logrus.Logger
	validate        *validator.Validate
	cfg             *config.Config
}

func NewHandler(incidentService service.IncidentService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		incidentService: incidentService,
		logger:          logger,
		validate:        validator.New(),
		cfg:             cfg,
	}
}

// @Summary Report a cleanliness incident
// @Description Upload an evidence image with an optional location tag, run classification and register the incident.
// @Tags Incidents
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Evidence image"
// @Param location_id formData string false "Location tag" default(Unknown Zone)
// @Success 201 {object} DetectAndReportResponse
// @Failure 400 {object} map[string]string "Image file missing or validation error"
// @Failure 500 {object} map[string]string "Classification or persistence failure"
// @Failure 503 {object} map[string]string "Incident storage unavailable"
// @Router /detect_and_report [post]
func (h *Handler) detectAndReport(c *gin.Context) {
	log := h.logger.WithField("method", "detectAndReport")

	fileHeader, err := c.FormFile("image")
	if err != nil {
		log.WithError(err).Warn("Request without image file")
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrMissingImage.Error()})
		return
	}

	form := DetectAndReportForm{
		// Зона по умолчанию, если клиент не передал location_id
		LocationID: c.DefaultPostForm("location_id", models.DefaultLocation),
	}
	if err := h.validate.Struct(form); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	image, err := fileHeader.Open()
	if err != nil {
		log.WithError(err).Error("Failed to open uploaded image")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image file"})
		return
	}
	defer image.Close()

	report, err := h.incidentService.DetectAndReport(c.Request.Context(), image, form.LocationID)
	if err != nil {
		h.respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToDetectionResponse(report))
}

// @Summary Get aggregated incident reports
// @Description Get summary metrics, per-type counts, hourly histogram and per-location heatmap over all incidents.
// @Tags Reports
// @Produce json
// @Success 200 {object} ReportResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Failure 503 {object} map[string]string "Incident storage unavailable"
// @Router /get_reports [get]
func (h *Handler) getReports(c *gin.Context) {
	log := h.logger.WithField("method", "getReports")

	report, err := h.incidentService.GetReports(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToReportResponse(report))
}

// @Summary Get application health status
// @Description Liveness check, verifies the incident storage connection
// @Tags System
// @Produce plain
// @Success 200 {string} string "Status message"
// @Failure 500 {string} string "Storage connection failed"
// @Router / [get]
func (h *Handler) healthCheck(c *gin.Context) {
	if err := h.incidentService.Ping(c.Request.Context()); err != nil {
		h.logger.WithField("method", "healthCheck").WithError(err).Error("Storage ping failed")
		c.String(http.StatusInternalServerError, "Incident storage connection failed. Check server logs and DATABASE_URL.")
		return
	}
	c.String(http.StatusOK, "Campus Cleanliness Monitoring API is running.")
}

// respondServiceError сопоставляет ошибки сервиса с HTTP-статусами
func (h *Handler) respondServiceError(c *gin.Context, log *logrus.Entry, err error) {
	switch {
	case errors.Is(err, service.ErrStorageUnavailable):
		log.WithError(err).Error("Incident storage unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database unavailable"})
	case errors.Is(err, service.ErrInference):
		log.WithError(err).Error("Classification failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": service.ErrInference.Error()})
	case errors.Is(err, service.ErrPersistence):
		log.WithError(err).Error("Persistence failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": service.ErrPersistence.Error()})
	default:
		log.WithError(err).Error("Unexpected service error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
