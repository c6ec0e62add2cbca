package submission

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

	"github.com/elias3446/reporta/internal/models"
	"github.com/elias3446/reporta/internal/submission/mocks"
)

type flowMocks struct {
	checker  *mocks.MockProximityChecker
	confirm  *mocks.MockConfirmer
	creator  *mocks.MockCreator
	uploader *mocks.MockUploader
}

// newTestFlow builds a Flow with mocked collaborators and a silent logger.
func newTestFlow(t *testing.T, draft Draft, opts ...Option) (*Flow, flowMocks) {
	ctrl := gomock.NewController(t)
	m := flowMocks{
		checker:  mocks.NewMockProximityChecker(ctrl),
		confirm:  mocks.NewMockConfirmer(ctrl),
		creator:  mocks.NewMockCreator(ctrl),
		uploader: mocks.NewMockUploader(ctrl),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	flow := NewFlow(m.checker, m.confirm, m.creator, m.uploader, logger, draft, opts...)
	return flow, m
}

func validDraft() Draft {
	return Draft{
		Title:        "Broken light",
		Description:  "Street light is out",
		ReporterID:   "user-123",
		ReporterName: "Test User",
		Location: &models.Location{
			Latitude:  -0.1807,
			Longitude: -78.4678,
			Address:   "Av. Amazonas 123",
		},
	}
}

func candidate(id uuid.UUID) *models.CandidateReport {
	return &models.CandidateReport{
		ID:                id,
		Name:              "Broken light",
		DistanceMeters:    42.5,
		ConfirmationCount: 2,
		Priority:          models.PriorityMedium,
		Status:            models.StatusOpen,
	}
}

func TestSubmit_TitleTooShort(t *testing.T) {
	draft := validDraft()
	draft.Title = " x "
	flow, _ := newTestFlow(t, draft)

	err := flow.Submit(context.Background())

	require.ErrorIs(t, err, ErrTitleRequired)
	assert.Equal(t, StateIdle, flow.State())
}

func TestSubmit_LocationMissing(t *testing.T) {
	draft := validDraft()
	draft.Location = nil
	flow, _ := newTestFlow(t, draft)

	err := flow.Submit(context.Background())

	require.ErrorIs(t, err, ErrLocationRequired)
	assert.Equal(t, StateIdle, flow.State())
}

func TestSubmit_NoCandidates_CreatesDirectly(t *testing.T) {
	flow, m := newTestFlow(t, validDraft())
	ctx := context.Background()

	// Empty candidate list: the gate never opens, creation runs right away.
	m.checker.EXPECT().
		FindSimilarReports(ctx, "user-123", gomock.Any()).
		Return([]*models.CandidateReport{}, nil).
		Times(1)
	m.creator.EXPECT().
		CreateReport(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, r *models.Report) error {
			r.ID = uuid.New()
			return nil
		}).Times(1)

	err := flow.Submit(ctx)

	require.NoError(t, err)
	assert.Equal(t, StateDone, flow.State())
	assert.Empty(t, flow.Candidates())
	require.NotNil(t, flow.Result())
	assert.Equal(t, "Broken light", flow.Result().Title)
}

func TestSubmit_CheckerFails_CreatesAnyway(t *testing.T) {
	flow, m := newTestFlow(t, validDraft())
	ctx := context.Background()

	// A failed proximity check must never block creation.
	m.checker.EXPECT().
		FindSimilarReports(ctx, "user-123", gomock.Any()).
		Return(nil, fmt.Errorf("connection refused")).
		Times(1)
	m.creator.EXPECT().CreateReport(ctx, gomock.Any()).Return(nil).Times(1)

	err := flow.Submit(ctx)

	require.NoError(t, err)
	assert.Equal(t, StateDone, flow.State())
}

func TestSubmit_CandidatesFound_GateOpens(t *testing.T) {
	flow, m := newTestFlow(t, validDraft())
	ctx := context.Background()
	existing := candidate(uuid.New())

	m.checker.EXPECT().
		FindSimilarReports(ctx, "user-123", gomock.Any()).
		Return([]*models.CandidateReport{existing}, nil).
		Times(1)
	m.creator.EXPECT().CreateReport(gomock.Any(), gomock.Any()).Times(0)

	err := flow.Submit(ctx)

	require.NoError(t, err)
	assert.Equal(t, StateAwaitingGateDecision, flow.State())
	require.Len(t, flow.Candidates(), 1)
	assert.Equal(t, existing.ID, flow.Candidates()[0].ID)
}

func TestConfirmExisting_Success(t *testing.T) {
	flow, m := newTestFlow(t, validDraft())
	ctx := context.Background()
	existingID := uuid.New()

	m.checker.EXPECT().
		FindSimilarReports(ctx, "user-123", gomock.Any()).
		Return([]*models.CandidateReport{candidate(existingID)}, nil).
		Times(1)
	m.confirm.EXPECT().
		ConfirmReport(ctx, existingID, "user-123").
		Return(3, nil).
		Times(1)
	// No new report is created when the user confirms an existing one.
	m.creator.EXPECT().CreateReport(gomock.Any(), gomock.Any()).Times(0)

	require.NoError(t, flow.Submit(ctx))
	require.Equal(t, StateAwaitingGateDecision, flow.State())

	err := flow.ConfirmExisting(ctx, existingID, "user-123")

	require.NoError(t, err)
	assert.Equal(t, StateDone, flow.State())
	assert.Nil(t, flow.Result())
	assert.Empty(t, flow.Candidates())
}

func TestConfirmExisting_Failure_GateStaysOpen(t *testing.T) {
	flow, m := newTestFlow(t, validDraft())
	ctx := context.Background()
	existingID := uuid.New()

	m.checker.EXPECT().
		FindSimilarReports(ctx, "user-123", gomock.Any()).
		Return([]*models.CandidateReport{candidate(existingID)}, nil).
		Times(1)
	m.confirm.EXPECT().
		ConfirmReport(ctx, existingID, "user-123").
		Return(0, fmt.Errorf("backend unavailable")).
		Times(1)

	require.NoError(t, flow.Submit(ctx))

	err := flow.ConfirmExisting(ctx, existingID, "user-123")

	require.Error(t, err)
	assert.Equal(t, StateAwaitingGateDecision, flow.State())
	assert.Len(t, flow.Candidates(), 1)
}

func TestConfirmExisting_UnknownCandidate(t *testing.T) {
	flow, m := newTestFlow(t, validDraft())
	ctx := context.Background()

	m.checker.EXPECT().
		FindSimilarReports(ctx, "user-123", gomock.Any()).
		Return([]*models.CandidateReport{candidate(uuid.New())}, nil).
		Times(1)
	m.confirm.EXPECT().ConfirmReport(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	require.NoError(t, flow.Submit(ctx))

	err := flow.ConfirmExisting(ctx, uuid.New(), "user-123")

	require.ErrorIs(t, err, ErrUnknownCandidate)
	assert.Equal(t, StateAwaitingGateDecision, flow.State())
}

func TestConfirmExisting_WithoutOpenGate(t *testing.T) {
	flow, _ := newTestFlow(t, validDraft())

	err := flow.ConfirmExisting(context.Background(), uuid.New(), "user-123")

	require.ErrorIs(t, err, ErrGateNotOpen)
}

func TestConfirmExisting_AfterDone(t *testing.T) {
	flow, m := newTestFlow(t, validDraft())
	ctx := context.Background()
	existingID := uuid.New()

	m.checker.EXPECT().
		FindSimilarReports(ctx, "user-123", gomock.Any()).
		Return([]*models.CandidateReport{candidate(existingID)}, nil).
		Times(1)
	m.confirm.EXPECT().ConfirmReport(ctx, existingID, "user-123").Return(3, nil).Times(1)

	require.NoError(t, flow.Submit(ctx))
	require.NoError(t, flow.ConfirmExisting(ctx, existingID, "user-123"))

	// A second confirm of the resolved flow is rejected without another call.
	err := flow.ConfirmExisting(ctx, existingID, "user-123")
	require.ErrorIs(t, err, ErrGateNotOpen)
}

func TestContinueCreating_CreatesNewReport(t *testing.T) {
	flow, m := newTestFlow(t, validDraft())
	ctx := context.Background()
	existingID := uuid.New()
	newID := uuid.New()

	m.checker.EXPECT().
		FindSimilarReports(ctx, "user-123", gomock.Any()).
		Return([]*models.CandidateReport{candidate(existingID)}, nil).
		Times(1)
	m.creator.EXPECT().
		CreateReport(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, r *models.Report) error {
			r.ID = newID
			return nil
		}).Times(1)

	require.NoError(t, flow.Submit(ctx))
	require.Equal(t, StateAwaitingGateDecision, flow.State())

	err := flow.ContinueCreating(ctx)

	require.NoError(t, err)
	assert.Equal(t, StateDone, flow.State())
	assert.Empty(t, flow.Candidates())
	require.NotNil(t, flow.Result())
	assert.Equal(t, newID, flow.Result().ID)
	assert.NotEqual(t, existingID, flow.Result().ID)
}

func TestDismiss_RearmsProximityCheck(t *testing.T) {
	flow, m := newTestFlow(t, validDraft())
	ctx := context.Background()

	// Two submissions, two checks: dismissal must not skip the second one
	// even though the draft did not change.
	m.checker.EXPECT().
		FindSimilarReports(ctx, "user-123", gomock.Any()).
		Return([]*models.CandidateReport{candidate(uuid.New())}, nil).
		Times(1)
	m.checker.EXPECT().
		FindSimilarReports(ctx, "user-123", gomock.Any()).
		Return([]*models.CandidateReport{}, nil).
		Times(1)
	m.creator.EXPECT().CreateReport(ctx, gomock.Any()).Return(nil).Times(1)

	require.NoError(t, flow.Submit(ctx))
	require.Equal(t, StateAwaitingGateDecision, flow.State())

	flow.Dismiss()
	assert.Equal(t, StateIdle, flow.State())
	assert.Empty(t, flow.Candidates())

	require.NoError(t, flow.Submit(ctx))
	assert.Equal(t, StateDone, flow.State())
}

func TestSubmit_SkipSimilarCheck(t *testing.T) {
	flow, m := newTestFlow(t, validDraft(), SkipSimilarCheck())
	ctx := context.Background()

	m.checker.EXPECT().FindSimilarReports(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	m.creator.EXPECT().CreateReport(ctx, gomock.Any()).Return(nil).Times(1)

	require.NoError(t, flow.Submit(ctx))
	assert.Equal(t, StateDone, flow.State())
}

func TestSubmit_UploadsImagesSequentially(t *testing.T) {
	draft := validDraft()
	draft.Images = [][]byte{[]byte("img-a"), []byte("img-b"), []byte("img-c")}

	var progress []string
	flow, m := newTestFlow(t, draft, WithProgress(func(msg string) {
		progress = append(progress, msg)
	}))
	ctx := context.Background()

	m.checker.EXPECT().
		FindSimilarReports(ctx, "user-123", gomock.Any()).
		Return(nil, nil).
		Times(1)

	// Uploads must start one at a time, each only after the previous resolved.
	var uploaded []string
	first := m.uploader.EXPECT().
		Upload(ctx, []byte("img-a"), "reports").
		DoAndReturn(func(context.Context, []byte, string) (string, error) {
			uploaded = append(uploaded, "a")
			return "https://media.local/reports/a.jpg", nil
		})
	second := m.uploader.EXPECT().
		Upload(ctx, []byte("img-b"), "reports").
		DoAndReturn(func(context.Context, []byte, string) (string, error) {
			uploaded = append(uploaded, "b")
			return "https://media.local/reports/b.jpg", nil
		})
	third := m.uploader.EXPECT().
		Upload(ctx, []byte("img-c"), "reports").
		DoAndReturn(func(context.Context, []byte, string) (string, error) {
			uploaded = append(uploaded, "c")
			return "https://media.local/reports/c.jpg", nil
		})
	gomock.InOrder(first, second, third)

	m.creator.EXPECT().
		CreateReport(ctx, gomock.Any()).
		Do(func(_ context.Context, r *models.Report) {
			assert.Equal(t, []string{
				"https://media.local/reports/a.jpg",
				"https://media.local/reports/b.jpg",
				"https://media.local/reports/c.jpg",
			}, r.Images)
		}).Return(nil).Times(1)

	require.NoError(t, flow.Submit(ctx))

	assert.Equal(t, []string{"a", "b", "c"}, uploaded)
	assert.Equal(t, []string{
		"Uploading image 1 of 3",
		"Uploading image 2 of 3",
		"Uploading image 3 of 3",
	}, progress)
}

func TestSubmit_UploadFailureAbortsBeforePersist(t *testing.T) {
	draft := validDraft()
	draft.Images = [][]byte{[]byte("img-a"), []byte("img-b")}
	flow, m := newTestFlow(t, draft)
	ctx := context.Background()

	m.checker.EXPECT().
		FindSimilarReports(ctx, "user-123", gomock.Any()).
		Return(nil, nil).
		Times(1)
	m.uploader.EXPECT().
		Upload(ctx, []byte("img-a"), "reports").
		Return("https://media.local/reports/a.jpg", nil).
		Times(1)
	m.uploader.EXPECT().
		Upload(ctx, []byte("img-b"), "reports").
		Return("", fmt.Errorf("bucket unavailable")).
		Times(1)
	m.creator.EXPECT().CreateReport(gomock.Any(), gomock.Any()).Times(0)

	err := flow.Submit(ctx)

	require.Error(t, err)
	assert.ErrorContains(t, err, "upload image 2 of 2")
	assert.Equal(t, StateFailed, flow.State())
}

func TestSubmit_RetryAfterFailureKeepsDraft(t *testing.T) {
	flow, m := newTestFlow(t, validDraft())
	ctx := context.Background()

	m.checker.EXPECT().
		FindSimilarReports(ctx, "user-123", gomock.Any()).
		Return(nil, nil).
		Times(1)
	m.creator.EXPECT().
		CreateReport(ctx, gomock.Any()).
		Return(fmt.Errorf("insert failed")).
		Times(1)
	m.creator.EXPECT().
		CreateReport(ctx, gomock.Any()).
		Do(func(_ context.Context, r *models.Report) {
			// The draft survived the failure untouched.
			assert.Equal(t, "Broken light", r.Title)
		}).Return(nil).Times(1)

	require.Error(t, flow.Submit(ctx))
	assert.Equal(t, StateFailed, flow.State())

	require.NoError(t, flow.Submit(ctx))
	assert.Equal(t, StateDone, flow.State())
}

func TestSubmit_AfterDoneIsRejected(t *testing.T) {
	flow, m := newTestFlow(t, validDraft())
	ctx := context.Background()

	m.checker.EXPECT().
		FindSimilarReports(ctx, "user-123", gomock.Any()).
		Return(nil, nil).
		Times(1)
	m.creator.EXPECT().CreateReport(ctx, gomock.Any()).Return(nil).Times(1)

	require.NoError(t, flow.Submit(ctx))

	err := flow.Submit(ctx)
	require.ErrorIs(t, err, ErrFlowFinished)
}

func TestSubmit_WhileGateOpenIsRejected(t *testing.T) {
	flow, m := newTestFlow(t, validDraft())
	ctx := context.Background()

	m.checker.EXPECT().
		FindSimilarReports(ctx, "user-123", gomock.Any()).
		Return([]*models.CandidateReport{candidate(uuid.New())}, nil).
		Times(1)

	require.NoError(t, flow.Submit(ctx))

	err := flow.Submit(ctx)
	require.ErrorIs(t, err, ErrGateNotOpen)
}
