package analytics

import (
	"context"
	"fmt"

	"wellness-eligibility/internal/common/config"
	"wellness-eligibility/internal/common/logger"
)

// FromConfig builds a Tracker with every sink listed in cfg.Sinks.
func FromConfig(ctx context.Context, cfg config.AnalyticsConfig, log logger.Logger) (*Tracker, error) {
	var sinks []Sink

	for _, name := range cfg.Sinks {
		switch name {
		case "log":
			sinks = append(sinks, NewLogSink(log))
		case "sns":
			client, err := NewSNSClient(ctx, cfg.SNS.Region)
			if err != nil {
				return nil, err
			}
			sinks = append(sinks, NewSNSSink(client, cfg.SNS.TopicARN))
		case "elasticsearch":
			client, err := NewElasticsearchClient(cfg.Elasticsearch)
			if err != nil {
				return nil, err
			}
			sinks = append(sinks, NewElasticsearchSink(client, cfg.Elasticsearch.Index))
		default:
			return nil, fmt.Errorf("analytics: unknown sink %q", name)
		}
	}

	return NewTracker(log, sinks...), nil
}
