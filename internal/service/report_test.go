package service

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/elias3446/reporta/internal/config"
	"github.com/elias3446/reporta/internal/models"
	"github.com/elias3446/reporta/internal/service/mocks"
	"github.com/elias3446/reporta/internal/webhook"
	webhook_mocks "github.com/elias3446/reporta/internal/webhook/mocks"
)

// newTestReportService builds the service with mocked repository and publisher.
func newTestReportService(t *testing.T) (*reportService, *mocks.MockReportRepository, *webhook_mocks.MockEventPublisher) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockReportRepository(ctrl)
	publisherMock := webhook_mocks.NewMockEventPublisher(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{
		SimilarRadiusMeters:    100,
		SimilarLookbackHours:   24,
		StatsTimeWindowMinutes: 60,
	}

	svc := NewReportService(repoMock, logger, cfg, publisherMock)
	return svc.(*reportService), repoMock, publisherMock
}

func TestGetReport_Success_FromCache(t *testing.T) {
	svc, repoMock, _ := newTestReportService(t)
	ctx := context.Background()
	reportID := uuid.New()
	expectedReport := &models.Report{
		ID:    reportID,
		Title: "Cached report",
	}

	repoMock.EXPECT().
		GetReportFromCache(ctx, reportID).
		Return(expectedReport, nil).
		Times(1)

	report, err := svc.GetReport(ctx, reportID)

	require.NoError(t, err)
	assert.Equal(t, expectedReport, report)
}

func TestGetReport_Success_FromDB(t *testing.T) {
	svc, repoMock, _ := newTestReportService(t)
	ctx := context.Background()
	reportID := uuid.New()
	expectedReport := &models.Report{
		ID:    reportID,
		Title: "Report from DB",
	}

	repoMock.EXPECT().
		GetReportFromCache(ctx, reportID).
		Return(nil, nil).
		Times(1)
	repoMock.EXPECT().
		GetByID(ctx, reportID).
		Return(expectedReport, nil).
		Times(1)
	repoMock.EXPECT().
		SetReportCache(ctx, expectedReport).
		Return(nil).
		Times(1)

	report, err := svc.GetReport(ctx, reportID)

	require.NoError(t, err)
	assert.Equal(t, expectedReport, report)
}

func TestGetReport_NotFound(t *testing.T) {
	svc, repoMock, _ := newTestReportService(t)
	ctx := context.Background()
	reportID := uuid.New()
	dbError := fmt.Errorf("not found")

	repoMock.EXPECT().
		GetReportFromCache(ctx, reportID).
		Return(nil, nil).
		Times(1)
	repoMock.EXPECT().
		GetByID(ctx, reportID).
		Return(nil, dbError).
		Times(1)

	report, err := svc.GetReport(ctx, reportID)

	require.Error(t, err)
	assert.Nil(t, report)
	assert.ErrorContains(t, err, "could not get report")
}

func TestCreateReport_Success(t *testing.T) {
	svc, repoMock, publisherMock := newTestReportService(t)
	ctx := context.Background()
	reportToCreate := &models.Report{
		Title:      "New pothole",
		ReporterID: "user-1",
	}

	repoMock.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, r *models.Report) error {
			r.ID = uuid.New()
			return nil
		}).Times(1)

	publisherMock.EXPECT().
		Publish(ctx, gomock.Any()).
		Do(func(ctx context.Context, event webhook.Event) {
			assert.Equal(t, webhook.EventReportCreated, event.Type)
			assert.Equal(t, "user-1", event.UserID)
		}).Return(nil).Times(1)

	err := svc.CreateReport(ctx, reportToCreate)

	require.NoError(t, err)
	assert.Equal(t, models.StatusOpen, reportToCreate.Status)
	assert.Equal(t, models.PriorityMedium, reportToCreate.Priority)
	assert.NotEqual(t, uuid.Nil, reportToCreate.ID)
}

func TestCreateReport_PublishFailureIsNotFatal(t *testing.T) {
	svc, repoMock, publisherMock := newTestReportService(t)
	ctx := context.Background()
	reportToCreate := &models.Report{Title: "New pothole"}

	repoMock.EXPECT().Create(ctx, gomock.Any()).Return(nil).Times(1)
	publisherMock.EXPECT().
		Publish(ctx, gomock.Any()).
		Return(fmt.Errorf("queue unavailable")).
		Times(1)

	err := svc.CreateReport(ctx, reportToCreate)

	require.NoError(t, err)
}

func TestUpdateReport_Success(t *testing.T) {
	svc, repoMock, _ := newTestReportService(t)
	ctx := context.Background()
	reportID := uuid.New()
	reportToUpdate := &models.Report{
		ID:    reportID,
		Title: "Updated title",
	}
	existingReport := &models.Report{
		ID:    reportID,
		Title: "Old title",
	}

	repoMock.EXPECT().GetByID(ctx, reportID).Return(existingReport, nil).Times(1)
	repoMock.EXPECT().Update(ctx, gomock.Any()).Return(nil).Times(1)
	repoMock.EXPECT().InvalidateReportCache(ctx, reportID).Return(nil).Times(1)

	err := svc.UpdateReport(ctx, reportToUpdate)

	require.NoError(t, err)
}

func TestUpdateReport_NotFound(t *testing.T) {
	svc, repoMock, _ := newTestReportService(t)
	ctx := context.Background()
	reportID := uuid.New()
	reportToUpdate := &models.Report{ID: reportID}
	repoError := fmt.Errorf("not found")

	repoMock.EXPECT().GetByID(ctx, reportID).Return(nil, repoError).Times(1)

	err := svc.UpdateReport(ctx, reportToUpdate)

	require.Error(t, err)
	assert.ErrorContains(t, err, "not found for update")
}

func TestDeleteReport_Success(t *testing.T) {
	svc, repoMock, _ := newTestReportService(t)
	ctx := context.Background()
	reportID := uuid.New()
	existingReport := &models.Report{ID: reportID}

	repoMock.EXPECT().GetByID(ctx, reportID).Return(existingReport, nil).Times(1)
	repoMock.EXPECT().Delete(ctx, reportID).Return(nil).Times(1)
	repoMock.EXPECT().InvalidateReportCache(ctx, reportID).Return(nil).Times(1)

	err := svc.DeleteReport(ctx, reportID)

	require.NoError(t, err)
}

func TestDeleteReport_NotFound(t *testing.T) {
	svc, repoMock, _ := newTestReportService(t)
	ctx := context.Background()
	reportID := uuid.New()
	repoError := fmt.Errorf("not found")

	repoMock.EXPECT().GetByID(ctx, reportID).Return(nil, repoError).Times(1)

	err := svc.DeleteReport(ctx, reportID)

	require.Error(t, err)
	assert.ErrorContains(t, err, "not found for delete")
}

func TestListReports_Success(t *testing.T) {
	svc, repoMock, _ := newTestReportService(t)
	ctx := context.Background()
	page, pageSize := 1, 10
	expectedReports := []*models.Report{
		{ID: uuid.New(), Title: "Report 1"},
		{ID: uuid.New(), Title: "Report 2"},
	}

	repoMock.EXPECT().ListReports(ctx, page, pageSize).Return(expectedReports, nil).Times(1)

	reports, err := svc.ListReports(ctx, page, pageSize)

	require.NoError(t, err)
	assert.Equal(t, expectedReports, reports)
}

func TestFindSimilarReports_AppliesDefaults(t *testing.T) {
	svc, repoMock, _ := newTestReportService(t)
	ctx := context.Background()
	userID := "user-123"
	found := []*models.CandidateReport{
		{ID: uuid.New(), Name: "Broken light", DistanceMeters: 12},
	}

	repoMock.EXPECT().
		FindSimilar(ctx, gomock.Any()).
		Do(func(ctx context.Context, q models.SimilarQuery) {
			// Zero values fall back to the configured radius and look-back.
			assert.Equal(t, 100, q.RadiusMeters)
			assert.Equal(t, 24, q.LookbackHours)
		}).Return(found, nil).Times(1)
	repoMock.EXPECT().
		SaveSimilarCheck(ctx, gomock.Any()).
		Do(func(ctx context.Context, check *models.SimilarCheck) {
			assert.Equal(t, userID, check.UserID)
			assert.Equal(t, 1, check.CandidatesFound)
		}).Return(nil).Times(1)

	candidates, err := svc.FindSimilarReports(ctx, userID, models.SimilarQuery{
		Latitude:  -0.18,
		Longitude: -78.46,
	})

	require.NoError(t, err)
	assert.Equal(t, found, candidates)
}

func TestFindSimilarReports_CheckSaveFailureIsNotFatal(t *testing.T) {
	svc, repoMock, _ := newTestReportService(t)
	ctx := context.Background()

	repoMock.EXPECT().
		FindSimilar(ctx, gomock.Any()).
		Return([]*models.CandidateReport{}, nil).
		Times(1)
	repoMock.EXPECT().
		SaveSimilarCheck(ctx, gomock.Any()).
		Return(fmt.Errorf("insert failed")).
		Times(1)

	candidates, err := svc.FindSimilarReports(ctx, "user-123", models.SimilarQuery{})

	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestConfirmReport_FirstConfirmation(t *testing.T) {
	svc, repoMock, publisherMock := newTestReportService(t)
	ctx := context.Background()
	reportID := uuid.New()
	userID := "user-123"

	repoMock.EXPECT().GetByID(ctx, reportID).Return(&models.Report{ID: reportID}, nil).Times(1)
	repoMock.EXPECT().Confirm(ctx, reportID, userID).Return(true, nil).Times(1)
	repoMock.EXPECT().ConfirmationCount(ctx, reportID).Return(3, nil).Times(1)
	publisherMock.EXPECT().
		Publish(ctx, gomock.Any()).
		Do(func(ctx context.Context, event webhook.Event) {
			assert.Equal(t, webhook.EventReportConfirmed, event.Type)
			assert.Equal(t, reportID.String(), event.ReportID)
		}).Return(nil).Times(1)

	count, err := svc.ConfirmReport(ctx, reportID, userID)

	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestConfirmReport_RepeatedConfirmationDoesNotDoubleCount(t *testing.T) {
	svc, repoMock, publisherMock := newTestReportService(t)
	ctx := context.Background()
	reportID := uuid.New()
	userID := "user-123"

	// Stub backend enforcing (report_id, user_id) uniqueness: the first
	// confirm inserts, the second is a conflict no-op.
	confirmed := map[string]bool{}
	repoMock.EXPECT().GetByID(ctx, reportID).Return(&models.Report{ID: reportID}, nil).Times(2)
	repoMock.EXPECT().
		Confirm(ctx, reportID, userID).
		DoAndReturn(func(ctx context.Context, id uuid.UUID, user string) (bool, error) {
			key := id.String() + "/" + user
			if confirmed[key] {
				return false, nil
			}
			confirmed[key] = true
			return true, nil
		}).Times(2)
	repoMock.EXPECT().
		ConfirmationCount(ctx, reportID).
		DoAndReturn(func(ctx context.Context, id uuid.UUID) (int, error) {
			return len(confirmed), nil
		}).Times(2)
	// Only the first confirmation publishes an event.
	publisherMock.EXPECT().Publish(ctx, gomock.Any()).Return(nil).Times(1)

	first, err := svc.ConfirmReport(ctx, reportID, userID)
	require.NoError(t, err)

	second, err := svc.ConfirmReport(ctx, reportID, userID)
	require.NoError(t, err)

	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
}

func TestConfirmReport_NotFound(t *testing.T) {
	svc, repoMock, _ := newTestReportService(t)
	ctx := context.Background()
	reportID := uuid.New()

	repoMock.EXPECT().GetByID(ctx, reportID).Return(nil, fmt.Errorf("no rows")).Times(1)

	count, err := svc.ConfirmReport(ctx, reportID, "user-123")

	require.Error(t, err)
	assert.Zero(t, count)
	assert.ErrorContains(t, err, "not found for confirm")
}

func TestGetStats_Success(t *testing.T) {
	svc, repoMock, _ := newTestReportService(t)
	ctx := context.Background()
	expectedUserCount := 42

	repoMock.EXPECT().GetSimilarCheckStats(ctx, svc.cfg.StatsTimeWindowMinutes).Return(expectedUserCount, nil).Times(1)

	count, err := svc.GetStats(ctx)

	require.NoError(t, err)
	assert.Equal(t, expectedUserCount, count)
}
