package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/elias3446/reporta/internal/models"
	"github.com/elias3446/reporta/internal/service"
)

type ReportRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
}

func NewReportRepository(db *pgxpool.Pool, redisClient *redis.Client) service.ReportRepository {
	return &ReportRepository{
		db:          db,
		redisClient: redisClient,
	}
}

const reportColumns = `
	id,
	title,
	description,
	category_id,
	type_id,
	priority,
	status,
	visibility,
	assigned_to,
	reporter_id,
	reporter_name,
	reporter_avatar,
	images,
	ST_Y(location::geometry) as latitude,
	ST_X(location::geometry) as longitude,
	address,
	reference_point,
	building,
	floor,
	room,
	additional_info,
	created_at,
	updated_at`

func scanReport(row pgx.Row) (*models.Report, error) {
	report := &models.Report{}
	err := row.Scan(
		&report.ID,
		&report.Title,
		&report.Description,
		&report.CategoryID,
		&report.TypeID,
		&report.Priority,
		&report.Status,
		&report.Visibility,
		&report.AssignedTo,
		&report.ReporterID,
		&report.ReporterName,
		&report.ReporterAvatar,
		&report.Images,
		&report.Location.Latitude,
		&report.Location.Longitude,
		&report.Location.Address,
		&report.Location.ReferencePoint,
		&report.Location.Building,
		&report.Location.Floor,
		&report.Location.Room,
		&report.Location.AdditionalInfo,
		&report.CreatedAt,
		&report.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return report, nil
}

// Create inserts a new report record.
func (r *ReportRepository) Create(ctx context.Context, report *models.Report) error {
	query := `
		INSERT INTO reports (
			title, description, category_id, type_id, priority, status, visibility,
			assigned_to, reporter_id, reporter_name, reporter_avatar, images,
			location, address, reference_point, building, floor, room, additional_info
		)
		VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			ST_SetSRID(ST_MakePoint($13, $14), 4326), $15, $16, $17, $18, $19, $20
		) RETURNING id, created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		report.Title,
		report.Description,
		report.CategoryID,
		report.TypeID,
		report.Priority,
		report.Status,
		report.Visibility,
		report.AssignedTo,
		report.ReporterID,
		report.ReporterName,
		report.ReporterAvatar,
		report.Images,
		report.Location.Longitude,
		report.Location.Latitude,
		report.Location.Address,
		report.Location.ReferencePoint,
		report.Location.Building,
		report.Location.Floor,
		report.Location.Room,
		report.Location.AdditionalInfo,
	).Scan(&report.ID, &report.CreatedAt, &report.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

// GetByID returns a report by its UUID.
func (r *ReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1;`

	report, err := scanReport(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("report with id %s not found", id)
		}
		return nil, fmt.Errorf("failed to get report by id: %w", err)
	}
	return report, nil
}

// Update rewrites a report's mutable fields.
func (r *ReportRepository) Update(ctx context.Context, report *models.Report) error {
	query := `
		UPDATE reports SET
			title = $1,
			description = $2,
			category_id = $3,
			type_id = $4,
			priority = $5,
			status = $6,
			visibility = $7,
			assigned_to = $8,
			images = $9,
			location = ST_SetSRID(ST_MakePoint($10, $11), 4326),
			address = $12,
			reference_point = $13,
			building = $14,
			floor = $15,
			room = $16,
			additional_info = $17,
			updated_at = NOW()
		WHERE id = $18;
	`
	cmdTag, err := r.db.Exec(ctx, query,
		report.Title,
		report.Description,
		report.CategoryID,
		report.TypeID,
		report.Priority,
		report.Status,
		report.Visibility,
		report.AssignedTo,
		report.Images,
		report.Location.Longitude,
		report.Location.Latitude,
		report.Location.Address,
		report.Location.ReferencePoint,
		report.Location.Building,
		report.Location.Floor,
		report.Location.Room,
		report.Location.AdditionalInfo,
		report.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update report: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("report with id %s not found for update", report.ID)
	}
	return nil
}

// Delete marks a report as deleted. The record is kept for audit purposes.
func (r *ReportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE reports SET
			status = 'deleted',
			updated_at = NOW()
		WHERE id = $1 AND status != 'deleted';
	`
	cmdTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("report with id %s not found for delete", id)
	}
	return nil
}

// ListReports returns non-deleted reports, newest first, with pagination.
func (r *ReportRepository) ListReports(ctx context.Context, page, pageSize int) ([]*models.Report, error) {
	offset := (page - 1) * pageSize

	query := `SELECT ` + reportColumns + `
		FROM reports
		WHERE status != 'deleted'
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;`

	rows, err := r.db.Query(ctx, query, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	reports := make([]*models.Report, 0)
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return reports, nil
}

// FindSimilar returns reports within the given radius of a coordinate,
// created inside the look-back window, nearest first. Each candidate
// carries its distance from the input coordinate and the number of
// distinct users that already confirmed it. The submitting user's own
// prior reports are not excluded.
func (r *ReportRepository) FindSimilar(ctx context.Context, q models.SimilarQuery) ([]*models.CandidateReport, error) {
	query := `
		SELECT
			r.id,
			r.title,
			r.description,
			r.created_at,
			ST_Distance(
				r.location,
				ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography
			) as distance_meters,
			(SELECT COUNT(*) FROM report_confirmations c WHERE c.report_id = r.id) as confirmation_count,
			r.images,
			r.reporter_name,
			r.reporter_avatar,
			r.priority,
			r.status
		FROM reports r
		WHERE
			r.status != 'deleted'
			AND ST_DWithin(
				r.location,
				ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography,
				$3
			)
			AND r.created_at >= NOW() - ($4 * INTERVAL '1 hour')
			AND ($5::uuid IS NULL OR r.category_id = $5)
			AND ($6::uuid IS NULL OR r.type_id = $6)
		ORDER BY distance_meters ASC;
	`
	rows, err := r.db.Query(ctx, query,
		q.Longitude, q.Latitude, q.RadiusMeters, q.LookbackHours, q.CategoryID, q.TypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find similar reports: %w", err)
	}
	defer rows.Close()

	candidates := make([]*models.CandidateReport, 0)
	for rows.Next() {
		candidate := &models.CandidateReport{}
		err := rows.Scan(
			&candidate.ID,
			&candidate.Name,
			&candidate.Description,
			&candidate.CreatedAt,
			&candidate.DistanceMeters,
			&candidate.ConfirmationCount,
			&candidate.Images,
			&candidate.ReporterName,
			&candidate.ReporterAvatar,
			&candidate.Priority,
			&candidate.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate row in FindSimilar: %w", err)
		}
		candidates = append(candidates, candidate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration in FindSimilar: %w", err)
	}
	return candidates, nil
}

// Confirm records that userID also witnessed the event of reportID.
// The (report_id, user_id) primary key makes repeated confirmations by
// one user a no-op: the returned bool is false when the pair already
// existed, and the confirmation count never double-counts.
func (r *ReportRepository) Confirm(ctx context.Context, reportID uuid.UUID, userID string) (bool, error) {
	query := `
		INSERT INTO report_confirmations (report_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (report_id, user_id) DO NOTHING;
	`
	cmdTag, err := r.db.Exec(ctx, query, reportID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to confirm report: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// ConfirmationCount returns the number of distinct users that confirmed a report.
func (r *ReportRepository) ConfirmationCount(ctx context.Context, reportID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM report_confirmations WHERE report_id = $1;`

	var count int
	if err := r.db.QueryRow(ctx, query, reportID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count confirmations: %w", err)
	}
	return count, nil
}

// SaveSimilarCheck persists the record of one similarity search.
func (r *ReportRepository) SaveSimilarCheck(ctx context.Context, check *models.SimilarCheck) error {
	query := `
		INSERT INTO similar_checks (user_id, location, candidates_found)
		VALUES ($1, ST_SetSRID(ST_MakePoint($2, $3), 4326), $4) RETURNING id, checked_at;
	`
	err := r.db.QueryRow(ctx, query,
		check.UserID,
		check.Longitude,
		check.Latitude,
		check.CandidatesFound,
	).Scan(&check.ID, &check.CheckedAt)
	if err != nil {
		return fmt.Errorf("failed to save similar check: %w", err)
	}
	return nil
}

// GetSimilarCheckStats returns the number of distinct users that ran a
// similarity search inside the last N minutes.
func (r *ReportRepository) GetSimilarCheckStats(ctx context.Context, minutes int) (int, error) {
	query := `
		SELECT COUNT(DISTINCT user_id)
		FROM similar_checks
		WHERE checked_at >= NOW() - ($1 * INTERVAL '1 minute');
	`
	var count int
	err := r.db.QueryRow(ctx, query, minutes).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get similar check stats: %w", err)
	}
	return count, nil
}

// GetReportFromCache tries to fetch a report from Redis. A nil report
// with nil error means a cache miss.
func (r *ReportRepository) GetReportFromCache(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	key := fmt.Sprintf("report:%s", id.String())
	val, err := r.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get report from cache: %w", err)
	}

	report := &models.Report{}
	if err := json.Unmarshal(val, report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report from cache: %w", err)
	}
	return report, nil
}

// SetReportCache stores a report in Redis.
func (r *ReportRepository) SetReportCache(ctx context.Context, report *models.Report) error {
	key := fmt.Sprintf("report:%s", report.ID.String())
	val, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, key, val, 5*time.Minute).Err(); err != nil {
		return fmt.Errorf("failed to set report in cache: %w", err)
	}
	return nil
}

// InvalidateReportCache removes a report from the Redis cache.
func (r *ReportRepository) InvalidateReportCache(ctx context.Context, id uuid.UUID) error {
	key := fmt.Sprintf("report:%s", id.String())
	if err := r.redisClient.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate report cache: %w", err)
	}
	return nil
}
