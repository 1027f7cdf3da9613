// Package form holds the in-progress answers, the step cursor and the restore gate.
package form

import (
	"context"
	"errors"

	"wellness-eligibility/internal/analytics"
	apperrors "wellness-eligibility/internal/common/errors"
	"wellness-eligibility/internal/common/logger"
	"wellness-eligibility/internal/common/metrics"
	"wellness-eligibility/internal/models"
)

// ErrNoRestorePending is returned by AcceptRestore/DeclineRestore when there is nothing to decide.
var ErrNoRestorePending = errors.New("form: no saved session awaiting a decision")

// Persister is the saved-session store.
type Persister interface {
	Save(ctx context.Context, a models.Answers, step int) error
	Load(ctx context.Context) (*models.PersistedSession, error)
	Clear(ctx context.Context) error
}

// State is one user's form session. It is not safe for concurrent use; the single
// front-end driving it is the only writer.
type State struct {
	answers models.Answers
	step    int

	mounted bool
	pending *models.PersistedSession

	store  Persister
	events analytics.Emitter
	logger logger.Logger
}

func NewState(store Persister, events analytics.Emitter, log logger.Logger) *State {
	return &State{
		answers: models.DefaultAnswers(),
		step:    models.MinStep,
		store:   store,
		events:  events,
		logger:  logger.ForComponent(log, "form"),
	}
}

// Answers returns a copy of the current answers.
func (s *State) Answers() models.Answers { return s.answers.Clone() }

func (s *State) Step() int { return s.step }

// RestorePending reports whether a saved session is waiting for AcceptRestore or DeclineRestore.
func (s *State) RestorePending() bool { return s.pending != nil }

// PendingSession returns a copy of the saved session on offer, or nil.
func (s *State) PendingSession() *models.PersistedSession {
	if s.pending == nil {
		return nil
	}
	cp := *s.pending
	cp.Answers = s.pending.Answers.Clone()
	return &cp
}

// Mount looks for a saved session once per State. It returns true when a restore
// decision is now required. Storage failures are logged and treated as no saved session.
func (s *State) Mount(ctx context.Context) bool {
	if s.mounted {
		return false
	}
	s.mounted = true

	session, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn("saved session unavailable", map[string]interface{}{"error": err})
		return false
	}
	if session == nil {
		return false
	}

	s.pending = session
	s.logger.Info("saved session found", map[string]interface{}{"step": session.Step})
	return true
}

// AcceptRestore copies the saved session in.
func (s *State) AcceptRestore(ctx context.Context) error {
	if s.pending == nil {
		return ErrNoRestorePending
	}
	s.answers = s.pending.Answers.Clone()
	s.step = s.pending.Step
	s.pending = nil

	s.logger.Info("saved session restored", map[string]interface{}{"step": s.step})
	s.emit(ctx, analytics.EventFormRestored, map[string]interface{}{"step": s.step})
	return nil
}

// DeclineRestore discards the saved session and starts over.
func (s *State) DeclineRestore(ctx context.Context) error {
	if s.pending == nil {
		return ErrNoRestorePending
	}
	s.pending = nil
	s.startFresh(ctx)
	return nil
}

// Update merges a partial set of answers keyed by camelCase field name.
func (s *State) Update(ctx context.Context, patch map[string]interface{}) error {
	if s.pending != nil {
		return apperrors.NewRestorePendingError()
	}

	next := s.answers.Clone()
	if err := applyPatch(&next, patch); err != nil {
		return err
	}
	s.answers = next
	s.persist(ctx)
	return nil
}

// Advance moves to the next step when the current one is complete. On the last step
// it validates and stays put.
func (s *State) Advance(ctx context.Context) error {
	if s.pending != nil {
		return apperrors.NewRestorePendingError()
	}

	from := s.step
	if !ValidateStep(from, s.answers) {
		metrics.ValidationFailures.WithLabelValues("step").Inc()
		s.logger.Debug("step incomplete", map[string]interface{}{"step": from})
		return apperrors.NewStepIncompleteError(from)
	}

	if from == models.StepLocations {
		s.raiseTotalEmployees()
	}
	if from < models.MaxStep {
		s.step = from + 1
		metrics.StepTransitions.WithLabelValues("forward").Inc()
		s.logger.Info("step advanced", map[string]interface{}{"from": from, "to": s.step})
	}

	s.emit(ctx, analytics.EventStepCompleted, map[string]interface{}{"step": from})
	s.persist(ctx)
	return nil
}

// Retreat moves back one step, never below the first.
func (s *State) Retreat(ctx context.Context) error {
	if s.pending != nil {
		return apperrors.NewRestorePendingError()
	}
	if s.step > models.MinStep {
		from := s.step
		s.step--
		metrics.StepTransitions.WithLabelValues("backward").Inc()
		s.logger.Info("step retreated", map[string]interface{}{"from": from, "to": s.step})
	}
	s.persist(ctx)
	return nil
}

// Reset restores defaults and clears any saved session.
func (s *State) Reset(ctx context.Context) error {
	if s.pending != nil {
		return apperrors.NewRestorePendingError()
	}
	s.startFresh(ctx)
	return nil
}

// Complete ends the session after a terminal result: storage is cleared and
// the in-memory answers return to defaults.
func (s *State) Complete(ctx context.Context) {
	s.clearStore(ctx)
	s.answers = models.DefaultAnswers()
	s.step = models.MinStep
}

func (s *State) startFresh(ctx context.Context) {
	s.clearStore(ctx)
	s.answers = models.DefaultAnswers()
	s.step = models.MinStep
	s.logger.Info("form started fresh", nil)
	s.emit(ctx, analytics.EventFormStartedFresh, nil)
}

// raiseTotalEmployees lifts totalEmployees to the head count entered across locations,
// capped at the maximum. It never lowers the value.
func (s *State) raiseTotalEmployees() {
	located := s.answers.LocationEmployees()
	if located > models.MaxTotalEmployees {
		located = models.MaxTotalEmployees
	}
	if located > s.answers.TotalEmployees {
		s.logger.Info("total employees raised to location head count", map[string]interface{}{
			"from": s.answers.TotalEmployees,
			"to":   located,
		})
		s.answers.TotalEmployees = located
	}
}

func (s *State) persist(ctx context.Context) {
	if !s.answers.IsMeaningful() {
		return
	}
	if err := s.store.Save(ctx, s.answers, s.step); err != nil {
		s.logger.Warn("failed to save session", map[string]interface{}{"error": err})
	}
}

func (s *State) clearStore(ctx context.Context) {
	if err := s.store.Clear(ctx); err != nil {
		s.logger.Warn("failed to clear saved session", map[string]interface{}{"error": err})
	}
}

func (s *State) emit(ctx context.Context, name string, props map[string]interface{}) {
	if s.events != nil {
		s.events.Emit(ctx, name, props)
	}
}
