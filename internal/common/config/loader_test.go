package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
app:
  name: checker
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "checker", cfg.App.Name)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "default", cfg.Storage.Namespace)
	assert.NotEmpty(t, cfg.Storage.SQLite.Path)
	assert.Equal(t, 30000, cfg.ScoringAPI.Timeout)
	assert.Equal(t, []string{"log"}, cfg.Analytics.Sinks)
	assert.Equal(t, "eligibility-events", cfg.Analytics.Elasticsearch.Index)
}

func TestLoadFromFile_ExpandsEnvPlaceholders(t *testing.T) {
	t.Setenv("TEST_SCORING_KEY", "secret-key")
	path := writeConfig(t, `
scoring_api:
  url: http://scoring.local/submit
  api_key: ${TEST_SCORING_KEY}
  timeout: 1500
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "secret-key", cfg.ScoringAPI.APIKey)
	assert.Equal(t, 1500*time.Millisecond, GetDuration(cfg.ScoringAPI.Timeout))
}

func TestLoadFromFile_EnvOverridesEmptyValues(t *testing.T) {
	t.Setenv("SCORING_API_URL", "http://from-env/submit")
	path := writeConfig(t, `
app:
  name: checker
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env/submit", cfg.ScoringAPI.URL)
}

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name: "unknown storage driver",
			body: `
storage:
  driver: postgres
`,
			wantErr: "storage.driver",
		},
		{
			name: "redis without address",
			body: `
storage:
  driver: redis
`,
			wantErr: "storage.redis.address",
		},
		{
			name: "unknown sink",
			body: `
analytics:
  sinks: [log, kafka]
`,
			wantErr: "unknown sink",
		},
		{
			name: "sns without topic",
			body: `
analytics:
  sinks: [sns]
`,
			wantErr: "topic_arn",
		},
		{
			name: "elasticsearch without addresses",
			body: `
analytics:
  sinks: [elasticsearch]
`,
			wantErr: "addresses",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestAnalyticsConfig_HasSink(t *testing.T) {
	a := AnalyticsConfig{Sinks: []string{"log", "sns"}}
	assert.True(t, a.HasSink("sns"))
	assert.False(t, a.HasSink("elasticsearch"))
}
