// Package submission runs the final step: validate, score locally, call the scoring
// service once and pick the result view.
package submission

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"wellness-eligibility/internal/analytics"
	"wellness-eligibility/internal/attribution"
	apperrors "wellness-eligibility/internal/common/errors"
	"wellness-eligibility/internal/common/logger"
	"wellness-eligibility/internal/common/metrics"
	"wellness-eligibility/internal/common/observability"
	"wellness-eligibility/internal/form"
	"wellness-eligibility/internal/models"
	"wellness-eligibility/internal/scoring"

	"github.com/google/uuid"
)

type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseValidating Phase = "validating"
	PhaseSubmitting Phase = "submitting"
	PhaseDone       Phase = "done"
)

// Session is the form being submitted. Complete must clear the saved session.
type Session interface {
	Answers() models.Answers
	Complete(ctx context.Context)
}

// Remote is the scoring service.
type Remote interface {
	Enabled() bool
	Submit(ctx context.Context, a models.Answers, attr attribution.Params) (*models.RemoteVerdict, error)
}

// AttributionSource yields the captured marketing parameters.
type AttributionSource interface {
	Load(ctx context.Context) attribution.Params
}

// Outcome is everything a result view needs.
type Outcome struct {
	View    models.ResultView
	Answers models.Answers
	Local   models.EligibilityResult
	Verdict *models.RemoteVerdict

	// Notice is set for the network-error view.
	Notice   *apperrors.Notice
	Duration time.Duration
}

type Coordinator struct {
	engine      *scoring.Engine
	remote      Remote
	attribution AttributionSource
	events      analytics.Emitter
	otel        *observability.Observability
	errHandler  *apperrors.ErrorHandler
	logger      logger.Logger

	inFlight atomic.Bool
	mu       sync.Mutex
	phase    Phase
	now      func() time.Time
}

func NewCoordinator(
	engine *scoring.Engine,
	remote Remote,
	attr AttributionSource,
	events analytics.Emitter,
	otel *observability.Observability,
	log logger.Logger,
) *Coordinator {
	log = logger.ForComponent(log, "submission")
	if engine == nil {
		engine = scoring.NewEngine(log)
	}
	return &Coordinator{
		engine:      engine,
		remote:      remote,
		attribution: attr,
		events:      events,
		otel:        otel,
		errHandler:  apperrors.NewErrorHandler(log),
		logger:      log,
		phase:       PhaseIdle,
		now:         time.Now,
	}
}

// Phase returns where the current (or last) submission is.
func (c *Coordinator) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

func (c *Coordinator) setPhase(p Phase) {
	c.mu.Lock()
	from := c.phase
	c.phase = p
	c.mu.Unlock()
	c.logger.Debug("submission phase", map[string]interface{}{"from": string(from), "to": string(p)})
}

// Submit runs the final step. A second call while one is running returns
// SUBMISSION_IN_FLIGHT without side effects. Validation failures return
// STEP_INCOMPLETE or SUBMISSION_VALIDATION_FAILED and leave the session intact.
// Every other path ends in a terminal Outcome and clears the saved session.
func (c *Coordinator) Submit(ctx context.Context, s Session) (*Outcome, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		c.logger.Warn("submission already in flight", nil)
		return nil, apperrors.NewSubmissionInFlightError()
	}
	defer c.inFlight.Store(false)

	start := c.now()
	c.setPhase(PhaseValidating)

	answers := s.Answers()
	if err := c.validate(answers); err != nil {
		metrics.ValidationFailures.WithLabelValues("submission").Inc()
		c.setPhase(PhaseIdle)
		return nil, err
	}

	local := c.engine.Evaluate(answers)
	attr := c.loadAttribution(ctx)

	out := &Outcome{Answers: answers, Local: local, View: models.ViewLocal}

	if c.remote != nil && c.remote.Enabled() {
		c.setPhase(PhaseSubmitting)
		verdict, err := c.remote.Submit(ctx, answers, attr)
		switch {
		case err != nil:
			notice := c.errHandler.Handle("submit", err)
			out.View = models.ViewNetworkError
			out.Notice = &notice
		case verdict != nil && verdict.Status != "":
			verdict.SubmissionID = c.newSubmissionID()
			out.View = models.ViewStatus
			out.Verdict = verdict
		default:
			c.logger.Info("scoring service returned no status, using local result", nil)
		}
	}

	s.Complete(ctx)
	out.Duration = c.now().Sub(start)
	c.setPhase(PhaseDone)

	c.record(ctx, out, attr)
	return out, nil
}

func (c *Coordinator) validate(a models.Answers) error {
	if !form.ValidateStep(models.MaxStep, a) {
		return apperrors.NewStepIncompleteError(models.MaxStep)
	}
	if res := form.ValidateSubmission(a); !res.Valid {
		c.logger.Info("submission rejected by validation", map[string]interface{}{"failures": len(res.Errors)})
		return apperrors.NewSubmissionValidationError(res.GetErrorMessages())
	}
	return nil
}

func (c *Coordinator) loadAttribution(ctx context.Context) attribution.Params {
	if c.attribution == nil {
		return attribution.Params{}
	}
	return c.attribution.Load(ctx)
}

// newSubmissionID is for display only: WEL-<unix millis>-<8 hex>.
func (c *Coordinator) newSubmissionID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("WEL-%d-%s", c.now().UnixMilli(), suffix)
}

func (c *Coordinator) record(ctx context.Context, out *Outcome, attr attribution.Params) {
	view := string(out.View)
	metrics.Submissions.WithLabelValues(view).Inc()
	c.otel.RecordSubmission(ctx, view)
	c.otel.RecordSubmissionDuration(ctx, out.Duration, view)

	fields := map[string]interface{}{
		"view":         view,
		"local_score":  out.Local.Score,
		"local_status": string(out.Local.Status),
		"duration_ms":  out.Duration.Milliseconds(),
	}
	if out.Verdict != nil {
		fields["remote_status"] = out.Verdict.Status
		fields["submission_id"] = out.Verdict.SubmissionID
	}
	c.logger.Info("submission finished", fields)

	if c.events == nil {
		return
	}
	if out.View == models.ViewNetworkError {
		props := map[string]interface{}{"error_code": string(out.Notice.Code)}
		attr.MergeInto(props)
		c.events.Emit(ctx, analytics.EventSubmissionFailed, props)
		return
	}

	props := map[string]interface{}{
		"view":         view,
		"local_score":  out.Local.Score,
		"local_status": string(out.Local.Status),
	}
	if out.Verdict != nil {
		props["remote_status"] = out.Verdict.Status
	}
	attr.MergeInto(props)
	c.events.Emit(ctx, analytics.EventSubmitted, props)
}
