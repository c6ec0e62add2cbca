package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/elias3446/reporta/internal/config"
	"github.com/elias3446/reporta/internal/models"
	"github.com/elias3446/reporta/internal/webhook"
)

//go:generate mockgen -source=report.go -destination=mocks/mock_report.go -package=mocks

// ReportRepository defines the persistence contract for reports.
type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Report, error)
	Update(ctx context.Context, report *models.Report) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListReports(ctx context.Context, page, pageSize int) ([]*models.Report, error)
	FindSimilar(ctx context.Context, q models.SimilarQuery) ([]*models.CandidateReport, error)
	Confirm(ctx context.Context, reportID uuid.UUID, userID string) (bool, error)
	ConfirmationCount(ctx context.Context, reportID uuid.UUID) (int, error)
	SaveSimilarCheck(ctx context.Context, check *models.SimilarCheck) error
	GetSimilarCheckStats(ctx context.Context, minutes int) (int, error)
	GetReportFromCache(ctx context.Context, id uuid.UUID) (*models.Report, error)
	SetReportCache(ctx context.Context, report *models.Report) error
	InvalidateReportCache(ctx context.Context, id uuid.UUID) error
}

// ReportService defines the business logic contract for report management.
type ReportService interface {
	CreateReport(ctx context.Context, report *models.Report) error
	GetReport(ctx context.Context, id uuid.UUID) (*models.Report, error)
	UpdateReport(ctx context.Context, report *models.Report) error
	DeleteReport(ctx context.Context, id uuid.UUID) error
	ListReports(ctx context.Context, page, pageSize int) ([]*models.Report, error)
	FindSimilarReports(ctx context.Context, userID string, q models.SimilarQuery) ([]*models.CandidateReport, error)
	ConfirmReport(ctx context.Context, reportID uuid.UUID, userID string) (int, error)
	GetStats(ctx context.Context) (int, error)
}

type reportService struct {
	repo      ReportRepository
	logger    *logrus.Logger
	cfg       *config.Config
	publisher webhook.EventPublisher
}

func NewReportService(repo ReportRepository, logger *logrus.Logger, cfg *config.Config, publisher webhook.EventPublisher) ReportService {
	return &reportService{
		repo:      repo,
		logger:    logger,
		cfg:       cfg,
		publisher: publisher,
	}
}

// CreateReport persists a new report and publishes a creation event.
func (s *reportService) CreateReport(ctx context.Context, report *models.Report) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "report",
		"method":  "CreateReport",
		"title":   report.Title,
	})
	log.Info("Attempting to create a new report")

	if report.Status == "" {
		report.Status = models.StatusOpen
	}
	if report.Priority == "" {
		report.Priority = models.PriorityMedium
	}
	if report.Images == nil {
		report.Images = []string{}
	}

	if err := s.repo.Create(ctx, report); err != nil {
		log.WithError(err).Error("Failed to create report in repository")
		return fmt.Errorf("service: could not create report: %w", err)
	}

	event := webhook.Event{
		Type:      webhook.EventReportCreated,
		ReportID:  report.ID.String(),
		UserID:    report.ReporterID,
		Timestamp: time.Now().UTC(),
		Report:    report,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		// Delivery is best effort; the report itself is already persisted.
		log.WithError(err).Warn("Failed to publish report.created event")
	}

	log.WithField("report_id", report.ID).Info("Report created successfully")
	return nil
}

// GetReport fetches a report, going through the Redis cache first.
func (s *reportService) GetReport(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "report",
		"method":    "GetReport",
		"report_id": id,
	})
	log.Info("Fetching report by ID")

	cached, err := s.repo.GetReportFromCache(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to read report cache")
	}
	if cached != nil {
		log.Debug("Report served from cache")
		return cached, nil
	}

	report, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Error("Failed to get report from repository")
		return nil, fmt.Errorf("service: could not get report: %w", err)
	}

	if err := s.repo.SetReportCache(ctx, report); err != nil {
		log.WithError(err).Warn("Failed to cache report")
	}

	log.Info("Report fetched successfully")
	return report, nil
}

// UpdateReport updates an existing report.
func (s *reportService) UpdateReport(ctx context.Context, report *models.Report) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "report",
		"method":    "UpdateReport",
		"report_id": report.ID,
	})
	log.Info("Attempting to update report")

	existing, err := s.repo.GetByID(ctx, report.ID)
	if err != nil {
		log.WithError(err).Warn("Attempted to update a non-existent report")
		return fmt.Errorf("service: report with id %s not found for update: %w", report.ID, err)
	}

	existing.Title = report.Title
	existing.Description = report.Description
	existing.CategoryID = report.CategoryID
	existing.TypeID = report.TypeID
	existing.Priority = report.Priority
	existing.Status = report.Status
	existing.Visibility = report.Visibility
	existing.AssignedTo = report.AssignedTo
	existing.Images = report.Images
	existing.Location = report.Location

	if err := s.repo.Update(ctx, existing); err != nil {
		log.WithError(err).Error("Failed to update report in repository")
		return fmt.Errorf("service: could not update report: %w", err)
	}

	if err := s.repo.InvalidateReportCache(ctx, report.ID); err != nil {
		log.WithError(err).Warn("Failed to invalidate report cache")
	}

	log.Info("Report updated successfully")
	return nil
}

// DeleteReport soft-deletes a report.
func (s *reportService) DeleteReport(ctx context.Context, id uuid.UUID) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "report",
		"method":    "DeleteReport",
		"report_id": id,
	})
	log.Info("Attempting to delete report")

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		log.WithError(err).Warn("Attempted to delete a non-existent report")
		return fmt.Errorf("service: report with id %s not found for delete: %w", id, err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		log.WithError(err).Error("Failed to delete report in repository")
		return fmt.Errorf("service: could not delete report: %w", err)
	}

	if err := s.repo.InvalidateReportCache(ctx, id); err != nil {
		log.WithError(err).Warn("Failed to invalidate report cache")
	}

	log.Info("Report deleted successfully")
	return nil
}

// ListReports returns a page of reports.
func (s *reportService) ListReports(ctx context.Context, page, pageSize int) ([]*models.Report, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":   "report",
		"method":    "ListReports",
		"page":      page,
		"page_size": pageSize,
	})
	log.Info("Listing reports")

	reports, err := s.repo.ListReports(ctx, page, pageSize)
	if err != nil {
		log.WithError(err).Error("Failed to list reports from repository")
		return nil, fmt.Errorf("service: could not list reports: %w", err)
	}

	log.WithField("count", len(reports)).Info("Reports listed successfully")
	return reports, nil
}

// FindSimilarReports runs a similarity search around a coordinate and
// records the check for stats. Zero or negative radius and look-back
// values fall back to the configured defaults; candidates keep the
// repository ordering (nearest first).
func (s *reportService) FindSimilarReports(ctx context.Context, userID string, q models.SimilarQuery) ([]*models.CandidateReport, error) {
	if q.RadiusMeters <= 0 {
		q.RadiusMeters = s.cfg.SimilarRadiusMeters
	}
	if q.LookbackHours <= 0 {
		q.LookbackHours = s.cfg.SimilarLookbackHours
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":  "report",
		"method":   "FindSimilarReports",
		"user_id":  userID,
		"radius_m": q.RadiusMeters,
	})
	log.Info("Searching for similar reports")

	candidates, err := s.repo.FindSimilar(ctx, q)
	if err != nil {
		log.WithError(err).Error("Failed to find similar reports")
		return nil, fmt.Errorf("service: failed to find similar reports: %w", err)
	}

	check := &models.SimilarCheck{
		UserID:          userID,
		Latitude:        q.Latitude,
		Longitude:       q.Longitude,
		CandidatesFound: len(candidates),
	}
	if err := s.repo.SaveSimilarCheck(ctx, check); err != nil {
		// The check record is an audit row; losing it must not fail the search.
		log.WithError(err).Warn("Failed to save similar check record")
	}

	log.WithField("candidates", len(candidates)).Info("Similar report search completed")
	return candidates, nil
}

// ConfirmReport records that userID also witnessed the event of reportID
// and returns the resulting confirmation count. Confirming the same
// report twice with the same user is a no-op: the count does not grow and
// no error is returned.
func (s *reportService) ConfirmReport(ctx context.Context, reportID uuid.UUID, userID string) (int, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "report",
		"method":    "ConfirmReport",
		"report_id": reportID,
		"user_id":   userID,
	})
	log.Info("Confirming report")

	if _, err := s.repo.GetByID(ctx, reportID); err != nil {
		log.WithError(err).Warn("Attempted to confirm a non-existent report")
		return 0, fmt.Errorf("service: report with id %s not found for confirm: %w", reportID, err)
	}

	created, err := s.repo.Confirm(ctx, reportID, userID)
	if err != nil {
		log.WithError(err).Error("Failed to confirm report in repository")
		return 0, fmt.Errorf("service: could not confirm report: %w", err)
	}

	count, err := s.repo.ConfirmationCount(ctx, reportID)
	if err != nil {
		log.WithError(err).Error("Failed to count confirmations")
		return 0, fmt.Errorf("service: could not count confirmations: %w", err)
	}

	if created {
		event := webhook.Event{
			Type:      webhook.EventReportConfirmed,
			ReportID:  reportID.String(),
			UserID:    userID,
			Timestamp: time.Now().UTC(),
		}
		if err := s.publisher.Publish(ctx, event); err != nil {
			log.WithError(err).Warn("Failed to publish report.confirmed event")
		}
	} else {
		log.Info("User already confirmed this report")
	}

	log.WithField("confirmation_count", count).Info("Report confirmation completed")
	return count, nil
}

// GetStats returns the number of distinct users that ran a similarity
// check inside the configured time window.
func (s *reportService) GetStats(ctx context.Context) (int, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "report",
		"method":  "GetStats",
	})
	log.Info("Fetching similar check stats")

	count, err := s.repo.GetSimilarCheckStats(ctx, s.cfg.StatsTimeWindowMinutes)
	if err != nil {
		log.WithError(err).Error("Failed to get stats from repository")
		return 0, fmt.Errorf("service: could not get stats: %w", err)
	}
	return count, nil
}
