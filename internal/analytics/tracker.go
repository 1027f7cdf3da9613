// Package analytics forwards form and submission events to one or more external sinks.
package analytics

import (
	"context"
	"time"

	apperrors "wellness-eligibility/internal/common/errors"
	"wellness-eligibility/internal/common/logger"

	"github.com/google/uuid"
)

// Event names.
const (
	EventStepCompleted    = "form_step_completed"
	EventFormRestored     = "form_restored"
	EventFormStartedFresh = "form_started_fresh"
	EventSubmitted        = "eligibility_submitted"
	EventSubmissionFailed = "eligibility_submission_failed"
)

// Event is one emitted analytics record.
type Event struct {
	ID         string                 `json:"id"`
	Name       string                 `json:"event"`
	Properties map[string]interface{} `json:"properties,omitempty"`
	OccurredAt time.Time              `json:"occurredAt"`
}

// Sink delivers events to one destination.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, event Event) error
}

// Emitter is what the form and submission flow depend on.
type Emitter interface {
	Emit(ctx context.Context, name string, props map[string]interface{})
}

// Tracker fans an event out to every sink. Delivery failures are logged and dropped.
type Tracker struct {
	sinks  []Sink
	logger logger.Logger
	now    func() time.Time
}

func NewTracker(log logger.Logger, sinks ...Sink) *Tracker {
	return &Tracker{
		sinks:  sinks,
		logger: logger.ForComponent(log, "analytics"),
		now:    time.Now,
	}
}

func (t *Tracker) Emit(ctx context.Context, name string, props map[string]interface{}) {
	event := Event{
		ID:         uuid.New().String(),
		Name:       name,
		Properties: copyProps(props),
		OccurredAt: t.now().UTC(),
	}

	for _, sink := range t.sinks {
		if err := sink.Deliver(ctx, event); err != nil {
			stdErr := apperrors.NewAnalyticsEmitFailedError(sink.Name(), err)
			t.logger.Warn("analytics event dropped", map[string]interface{}{
				"event":     name,
				"sink":      sink.Name(),
				"errorCode": string(stdErr.Code),
				"error":     err,
			})
		}
	}
}

// Sinks returns the configured sink names.
func (t *Tracker) Sinks() []string {
	names := make([]string, len(t.sinks))
	for i, s := range t.sinks {
		names[i] = s.Name()
	}
	return names
}

func copyProps(props map[string]interface{}) map[string]interface{} {
	if len(props) == 0 {
		return nil
	}
	out := make(map[string]interface{}, len(props))
	for k, v := range props {
		out[k] = v
	}
	return out
}
