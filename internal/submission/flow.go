package submission

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/elias3446/reporta/internal/models"
)

//go:generate mockgen -source=flow.go -destination=mocks/mock_flow.go -package=mocks

// State of a report submission attempt.
type State string

const (
	StateIdle                 State = "idle"
	StateCheckingProximity    State = "checking_proximity"
	StateAwaitingGateDecision State = "awaiting_gate_decision"
	StateSubmitting           State = "submitting"
	StateDone                 State = "done"
	StateFailed               State = "failed"
)

var (
	ErrTitleRequired    = errors.New("a title of at least 2 characters is required")
	ErrLocationRequired = errors.New("a location must be selected")
	ErrGateNotOpen      = errors.New("no gate decision is pending")
	ErrConfirmInFlight  = errors.New("a confirmation is already in progress")
	ErrSubmitInFlight   = errors.New("a submission is already in progress")
	ErrUnknownCandidate = errors.New("candidate is not part of the open gate")
	ErrFlowFinished     = errors.New("submission flow already finished")
)

// ProximityChecker finds existing reports near a coordinate.
type ProximityChecker interface {
	FindSimilarReports(ctx context.Context, userID string, q models.SimilarQuery) ([]*models.CandidateReport, error)
}

// Confirmer records that a user witnessed an existing report.
type Confirmer interface {
	ConfirmReport(ctx context.Context, reportID uuid.UUID, userID string) (int, error)
}

// Creator persists a new report.
type Creator interface {
	CreateReport(ctx context.Context, report *models.Report) error
}

// Uploader stores raw image data and returns a public URL.
type Uploader interface {
	Upload(ctx context.Context, data []byte, folder string) (string, error)
}

// Draft is the report being composed, owned by one submission attempt.
// Draft data survives every failure path so the user can retry.
type Draft struct {
	Title          string
	Description    string
	CategoryID     *uuid.UUID
	TypeID         *uuid.UUID
	Priority       string
	Visibility     string
	AssignedTo     string
	ReporterID     string
	ReporterName   string
	ReporterAvatar string
	Location       *models.Location
	Images         [][]byte
}

// Flow drives one report-creation attempt through the similar-report
// gate: validate, check proximity once, suspend on candidates, then
// resolve to either a confirmation of an existing report or a new
// record. A Flow belongs to a single submission attempt and is not safe
// for concurrent use.
type Flow struct {
	checker  ProximityChecker
	confirm  Confirmer
	creator  Creator
	uploader Uploader
	logger   *logrus.Logger

	// progress receives human-readable upload progress messages
	// ("Uploading image 1 of 3"). Optional.
	progress func(msg string)

	draft        Draft
	state        State
	candidates   []*models.CandidateReport
	checked      bool
	isConfirming bool
	isSubmitting bool
	result       *models.Report
}

// Option configures a Flow.
type Option func(*Flow)

// WithProgress registers a sink for upload progress messages.
func WithProgress(fn func(msg string)) Option {
	return func(f *Flow) {
		f.progress = fn
	}
}

// SkipSimilarCheck marks the proximity check as already resolved, so
// Submit goes straight to creation. Used when the user saw the gate on a
// previous attempt and explicitly chose to continue.
func SkipSimilarCheck() Option {
	return func(f *Flow) {
		f.checked = true
	}
}

func NewFlow(checker ProximityChecker, confirm Confirmer, creator Creator, uploader Uploader, logger *logrus.Logger, draft Draft, opts ...Option) *Flow {
	f := &Flow{
		checker:  checker,
		confirm:  confirm,
		creator:  creator,
		uploader: uploader,
		logger:   logger,
		draft:    draft,
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// State returns the current flow state.
func (f *Flow) State() State {
	return f.state
}

// Candidates returns the open gate's candidate list, in server order.
func (f *Flow) Candidates() []*models.CandidateReport {
	return f.candidates
}

// Result returns the created report once the flow reached Done via the
// creation path. It is nil when the flow resolved by confirming an
// existing report.
func (f *Flow) Result() *models.Report {
	return f.result
}

// Submit starts or retries the submission. When no proximity check ran
// yet for the current draft, one is performed first; if it yields
// candidates the flow suspends in AwaitingGateDecision and the caller
// must resolve the gate via ConfirmExisting, ContinueCreating or
// Dismiss. A failed proximity check never blocks creation: it is logged
// and treated as an empty candidate list.
func (f *Flow) Submit(ctx context.Context) error {
	switch f.state {
	case StateDone:
		return ErrFlowFinished
	case StateAwaitingGateDecision:
		return ErrGateNotOpen
	}
	if f.isSubmitting {
		return ErrSubmitInFlight
	}

	if len(strings.TrimSpace(f.draft.Title)) < 2 {
		return ErrTitleRequired
	}
	if f.draft.Location == nil {
		return ErrLocationRequired
	}

	log := f.logger.WithFields(logrus.Fields{
		"flow":     "submission",
		"reporter": f.draft.ReporterID,
	})

	if !f.checked {
		f.state = StateCheckingProximity
		candidates, err := f.checker.FindSimilarReports(ctx, f.draft.ReporterID, models.SimilarQuery{
			Latitude:   f.draft.Location.Latitude,
			Longitude:  f.draft.Location.Longitude,
			CategoryID: f.draft.CategoryID,
			TypeID:     f.draft.TypeID,
		})
		f.checked = true
		if err != nil {
			// Proximity failures must never block report creation.
			log.WithError(err).Warn("Similar report check failed, proceeding with creation")
			candidates = nil
		}

		if len(candidates) > 0 {
			f.candidates = candidates
			f.state = StateAwaitingGateDecision
			log.WithField("candidates", len(candidates)).Info("Similar reports found, awaiting gate decision")
			return nil
		}
	}

	return f.create(ctx)
}

// ConfirmExisting resolves the gate by recording that the acting user
// also witnessed the event of candidateID. On success the flow is Done
// and no new report is created. On failure the gate stays open so the
// user may retry or continue creating.
func (f *Flow) ConfirmExisting(ctx context.Context, candidateID uuid.UUID, actingUserID string) error {
	if f.state != StateAwaitingGateDecision {
		return ErrGateNotOpen
	}
	if f.isConfirming {
		return ErrConfirmInFlight
	}

	known := false
	for _, c := range f.candidates {
		if c.ID == candidateID {
			known = true
			break
		}
	}
	if !known {
		return ErrUnknownCandidate
	}

	f.isConfirming = true
	defer func() { f.isConfirming = false }()

	log := f.logger.WithFields(logrus.Fields{
		"flow":      "submission",
		"candidate": candidateID,
		"user":      actingUserID,
	})

	if _, err := f.confirm.ConfirmReport(ctx, candidateID, actingUserID); err != nil {
		log.WithError(err).Error("Failed to confirm existing report, gate stays open")
		return fmt.Errorf("confirm existing report: %w", err)
	}

	f.candidates = nil
	f.state = StateDone
	log.Info("Existing report confirmed, no new report created")
	return nil
}

// ContinueCreating resolves the gate by discarding all candidates and
// proceeding to report creation without further proximity checks.
func (f *Flow) ContinueCreating(ctx context.Context) error {
	if f.state != StateAwaitingGateDecision {
		return ErrGateNotOpen
	}
	if f.isConfirming {
		return ErrConfirmInFlight
	}

	f.candidates = nil
	return f.create(ctx)
}

// Dismiss closes the gate without a decision. The proximity check is
// re-armed so the next Submit runs a fresh check; a dismissed gate must
// not let an unchecked submission slip through.
func (f *Flow) Dismiss() {
	if f.state != StateAwaitingGateDecision {
		return
	}
	f.candidates = nil
	f.checked = false
	f.state = StateIdle
}

func (f *Flow) create(ctx context.Context) error {
	f.state = StateSubmitting
	f.isSubmitting = true
	defer func() { f.isSubmitting = false }()

	log := f.logger.WithFields(logrus.Fields{
		"flow":     "submission",
		"reporter": f.draft.ReporterID,
	})

	// Images upload one at a time, each before the record is persisted.
	urls := make([]string, 0, len(f.draft.Images))
	total := len(f.draft.Images)
	for i, data := range f.draft.Images {
		f.reportProgress(fmt.Sprintf("Uploading image %d of %d", i+1, total))
		url, err := f.uploader.Upload(ctx, data, "reports")
		if err != nil {
			f.state = StateFailed
			log.WithError(err).Error("Image upload failed, submission aborted")
			return fmt.Errorf("upload image %d of %d: %w", i+1, total, err)
		}
		urls = append(urls, url)
	}

	report := &models.Report{
		Title:          strings.TrimSpace(f.draft.Title),
		Description:    f.draft.Description,
		CategoryID:     f.draft.CategoryID,
		TypeID:         f.draft.TypeID,
		Priority:       f.draft.Priority,
		Visibility:     f.draft.Visibility,
		AssignedTo:     f.draft.AssignedTo,
		ReporterID:     f.draft.ReporterID,
		ReporterName:   f.draft.ReporterName,
		ReporterAvatar: f.draft.ReporterAvatar,
		Images:         urls,
		Location:       *f.draft.Location,
	}

	if err := f.creator.CreateReport(ctx, report); err != nil {
		f.state = StateFailed
		log.WithError(err).Error("Failed to persist report")
		return fmt.Errorf("create report: %w", err)
	}

	f.result = report
	f.state = StateDone
	log.WithField("report_id", report.ID).Info("Report submission completed")
	return nil
}

func (f *Flow) reportProgress(msg string) {
	if f.progress != nil {
		f.progress(msg)
	}
}
