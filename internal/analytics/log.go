package analytics

import (
	"context"

	"wellness-eligibility/internal/common/logger"
)

// LogSink writes events to the structured log.
type LogSink struct {
	logger logger.Logger
}

func NewLogSink(log logger.Logger) *LogSink {
	return &LogSink{logger: logger.ForComponent(log, "analytics.log")}
}

func (s *LogSink) Name() string { return "log" }

func (s *LogSink) Deliver(_ context.Context, event Event) error {
	s.logger.Info("analytics event", map[string]interface{}{
		"eventId":    event.ID,
		"event":      event.Name,
		"properties": event.Properties,
	})
	return nil
}
