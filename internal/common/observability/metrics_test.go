package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *metric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestObservability_RecordsSubmissions(t *testing.T) {
	reader := metric.NewManualReader()
	obs := NewWithReader(reader, "test")
	defer obs.Shutdown()

	ctx := context.Background()
	obs.RecordSubmission(ctx, "status")
	obs.RecordSubmission(ctx, "status")
	obs.RecordSubmissionDuration(ctx, 120*time.Millisecond, "status")

	got := collect(t, reader)

	counter, ok := got["eligibility.submissions"]
	require.True(t, ok)
	sum, ok := counter.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(2), sum.DataPoints[0].Value)

	hist, ok := got["eligibility.submission.duration"]
	require.True(t, ok)
	h, ok := hist.Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, h.DataPoints, 1)
	assert.Equal(t, uint64(1), h.DataPoints[0].Count)
}

func TestObservability_NilSafe(t *testing.T) {
	var obs *Observability
	assert.NotPanics(t, func() {
		obs.RecordSubmission(context.Background(), "local")
		obs.RecordSubmissionDuration(context.Background(), time.Second, "local")
		obs.Shutdown()
	})
}
