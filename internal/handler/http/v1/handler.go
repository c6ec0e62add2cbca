package v1

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/elias3446/reporta/internal/config"
	"github.com/elias3446/reporta/internal/models"
	"github.com/elias3446/reporta/internal/service"
	"github.com/elias3446/reporta/internal/submission"
)

type Handler struct {
	reportService service.ReportService
	uploader      submission.Uploader
	logger        *logrus.Logger
	validate      *validator.Validate
	cfg           *config.Config
}

func NewHandler(reportService service.ReportService, uploader submission.Uploader, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		reportService: reportService,
		uploader:      uploader,
		logger:        logger,
		validate:      validator.New(),
		cfg:           cfg,
	}
}

// @Summary Create a new report
// @Description Create a new incident report. Unless skip_similar_check is set, a similarity search runs first; when possible duplicates exist the response is 409 with the candidate list and no report is created. Requires API key.
// @Tags Reports
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param report body CreateReportRequest true "Report creation request"
// @Success 201 {object} ReportResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} SimilarReportsResponse "Similar reports found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports [post]
func (h *Handler) createReport(c *gin.Context) {
	var input CreateReportRequest
	log := h.logger.WithField("method", "createReport")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	images := make([][]byte, 0, len(input.Images))
	for _, encoded := range input.Images {
		data, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			log.WithError(err).Warn("Failed to decode image payload")
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image payload"})
			return
		}
		images = append(images, data)
	}

	location := locationDTOToModel(input.Location)
	draft := submission.Draft{
		Title:          input.Title,
		Description:    input.Description,
		CategoryID:     input.CategoryID,
		TypeID:         input.TypeID,
		Priority:       input.Priority,
		Visibility:     input.Visibility,
		AssignedTo:     input.AssignedTo,
		ReporterID:     input.ReporterID,
		ReporterName:   input.ReporterName,
		ReporterAvatar: input.ReporterAvatar,
		Location:       &location,
		Images:         images,
	}

	opts := []submission.Option{
		submission.WithProgress(func(msg string) {
			log.Info(msg)
		}),
	}
	if input.SkipSimilarCheck {
		opts = append(opts, submission.SkipSimilarCheck())
	}

	flow := submission.NewFlow(h.reportService, h.reportService, h.reportService, h.uploader, h.logger, draft, opts...)

	if err := flow.Submit(c.Request.Context()); err != nil {
		if errors.Is(err, submission.ErrTitleRequired) || errors.Is(err, submission.ErrLocationRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.WithError(err).Error("Report submission failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create report"})
		return
	}

	if flow.State() == submission.StateAwaitingGateDecision {
		c.JSON(http.StatusConflict, SimilarReportsResponse{
			Message:    "similar reports found near this location",
			Candidates: candidatesToResponses(flow.Candidates()),
		})
		return
	}

	c.JSON(http.StatusCreated, modelToReportResponse(flow.Result()))
}

// @Summary List reports
// @Description Get a paginated list of reports, newest first. Requires API key.
// @Tags Reports
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Number of items per page" default(10)
// @Success 200 {array} ReportResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports [get]
func (h *Handler) listReports(c *gin.Context) {
	log := h.logger.WithField("method", "listReports")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))

	reports, err := h.reportService.ListReports(c.Request.Context(), page, pageSize)
	if err != nil {
		log.WithError(err).Error("Failed to list reports from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, modelsToReportResponses(reports))
}

// @Summary Get report by ID
// @Description Get a single report by its ID. Requires API key.
// @Tags Reports
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Report ID"
// @Success 200 {object} ReportResponse
// @Failure 400 {object} map[string]string "Invalid report ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Report not found"
// @Router /reports/{id} [get]
func (h *Handler) getReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report ID"})
		return
	}
	log := h.logger.WithField("method", "getReport").WithField("id", id)

	report, err := h.reportService.GetReport(c.Request.Context(), id)
	if err != nil {
		log.WithError(err).Warn("Failed to get report from service")
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}
	c.JSON(http.StatusOK, modelToReportResponse(report))
}

// @Summary Update an existing report
// @Description Update an existing report by ID. Requires API key.
// @Tags Reports
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Report ID"
// @Param report body UpdateReportRequest true "Report update request"
// @Success 200 "OK"
// @Failure 400 {object} map[string]string "Invalid report ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports/{id} [put]
func (h *Handler) updateReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report ID"})
		return
	}
	log := h.logger.WithField("method", "updateReport").WithField("id", id)

	var input UpdateReportRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	model := updateDTOToReportModel(input)
	model.ID = id

	if err := h.reportService.UpdateReport(c.Request.Context(), model); err != nil {
		log.WithError(err).Error("Failed to update report in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update report"})
		return
	}
	c.Status(http.StatusOK)
}

// @Summary Delete a report
// @Description Soft-delete a report by its ID. The record is kept but excluded from listings and similarity searches. Requires API key.
// @Tags Reports
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Report ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid report ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports/{id} [delete]
func (h *Handler) deleteReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report ID"})
		return
	}
	log := h.logger.WithField("method", "deleteReport").WithField("id", id)

	if err := h.reportService.DeleteReport(c.Request.Context(), id); err != nil {
		log.WithError(err).Error("Failed to delete report in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete report"})
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Find similar reports
// @Description Find existing reports near a coordinate, within a radius and look-back window, ordered nearest first. Requires API key.
// @Tags Reports
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param latitude query number true "Latitude"
// @Param longitude query number true "Longitude"
// @Param user_id query string true "ID of the user running the check"
// @Param radius_m query int false "Search radius in meters" default(100)
// @Param lookback_h query int false "Look-back window in hours" default(24)
// @Param category_id query string false "Category filter"
// @Param type_id query string false "Type filter"
// @Success 200 {array} CandidateResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports/similar [get]
func (h *Handler) findSimilar(c *gin.Context) {
	log := h.logger.WithField("method", "findSimilar")

	lat, latErr := strconv.ParseFloat(c.Query("latitude"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("longitude"), 64)
	if latErr != nil || lonErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "latitude and longitude are required"})
		return
	}

	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	q := models.SimilarQuery{
		Latitude:  lat,
		Longitude: lon,
	}
	if radius, err := strconv.Atoi(c.Query("radius_m")); err == nil {
		q.RadiusMeters = radius
	}
	if lookback, err := strconv.Atoi(c.Query("lookback_h")); err == nil {
		q.LookbackHours = lookback
	}
	if raw := c.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category_id"})
			return
		}
		q.CategoryID = &id
	}
	if raw := c.Query("type_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid type_id"})
			return
		}
		q.TypeID = &id
	}

	candidates, err := h.reportService.FindSimilarReports(c.Request.Context(), userID, q)
	if err != nil {
		log.WithError(err).Error("Failed to find similar reports in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, candidatesToResponses(candidates))
}

// @Summary Confirm an existing report
// @Description Record that the acting user also witnessed the event of an existing report. Confirming the same report twice with one user does not grow the count. Requires API key.
// @Tags Reports
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Report ID"
// @Param confirmation body ConfirmReportRequest true "Confirmation request"
// @Success 200 {object} ConfirmReportResponse
// @Failure 400 {object} map[string]string "Invalid report ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Report not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports/{id}/confirmations [post]
func (h *Handler) confirmReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report ID"})
		return
	}
	log := h.logger.WithField("method", "confirmReport").WithField("id", id)

	var input ConfirmReportRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	count, err := h.reportService.ConfirmReport(c.Request.Context(), id, input.UserID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
			return
		}
		log.WithError(err).Error("Failed to confirm report in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to confirm report"})
		return
	}

	c.JSON(http.StatusOK, ConfirmReportResponse{
		ReportID:          id,
		UserID:            input.UserID,
		ConfirmationCount: count,
	})
}

// @Summary Get duplicate-detection statistics
// @Description Get the number of distinct users that ran a similarity check inside the configured time window. Requires API key.
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} StatsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports/stats [get]
func (h *Handler) getStats(c *gin.Context) {
	log := h.logger.WithField("method", "getStats")

	userCount, err := h.reportService.GetStats(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to get stats from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, StatsResponse{UserCount: userCount})
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
