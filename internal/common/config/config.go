// internal/common/config/config.go
package config

// Config is the main application configuration struct.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Storage    StorageConfig    `mapstructure:"storage"`
	ScoringAPI ScoringAPIConfig `mapstructure:"scoring_api"`
	Analytics  AnalyticsConfig  `mapstructure:"analytics"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Skin       SkinConfig       `mapstructure:"skin"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// StorageConfig selects the durable key-value backend holding the saved session.
type StorageConfig struct {
	Driver    string       `mapstructure:"driver"` // sqlite | redis
	Namespace string       `mapstructure:"namespace"`
	SQLite    SQLiteConfig `mapstructure:"sqlite"`
	Redis     RedisConfig  `mapstructure:"redis"`
}

type SQLiteConfig struct {
	Path        string `mapstructure:"path"`
	BusyTimeout int    `mapstructure:"busy_timeout"` // milliseconds
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// ScoringAPIConfig points at the remote eligibility scoring endpoint. An empty URL means
// submissions are never sent and the local result is shown.
type ScoringAPIConfig struct {
	URL     string `mapstructure:"url"`
	APIKey  string `mapstructure:"api_key"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

// AnalyticsConfig lists the event sinks to fan out to.
type AnalyticsConfig struct {
	Sinks []string `mapstructure:"sinks"` // log | sns | elasticsearch

	SNS struct {
		TopicARN string `mapstructure:"topic_arn"`
		Region   string `mapstructure:"region"`
	} `mapstructure:"sns"`

	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	Index     string   `mapstructure:"index"`
}

type MetricsConfig struct {
	Address string `mapstructure:"address"`
}

// SkinConfig is consumed by the presentation layer only.
type SkinConfig struct {
	Name         string   `mapstructure:"name"`
	Title        string   `mapstructure:"title"`
	PrimaryColor string   `mapstructure:"primary_color"`
	AccentColor  string   `mapstructure:"accent_color"`
	Width        int      `mapstructure:"width"`
	StepLabels   []string `mapstructure:"step_labels"`
}

// HasSink reports whether the named analytics sink is enabled.
func (a AnalyticsConfig) HasSink(name string) bool {
	for _, s := range a.Sinks {
		if s == name {
			return true
		}
	}
	return false
}
