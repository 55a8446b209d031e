package fetch

import "time"

// SourceConfig is the file and environment form of the source settings.
type SourceConfig struct {
	// Endpoint is the GraphQL URL of the source system.
	Endpoint string `mapstructure:"endpoint" default:"https://canvas.instructure.com/api/graphql"`
	// AccessToken is the bearer token for the source API.
	AccessToken string `mapstructure:"access_token" default:""`
	// TermID scopes inventory queries to one enrollment term.
	TermID int `mapstructure:"term_id" default:"0"`
	// PageSize is the number of records requested per page.
	PageSize int `mapstructure:"page_size" default:"100"`
	// MaxAttempts caps the attempts per page.
	MaxAttempts int `mapstructure:"max_attempts" default:"3"`
	// RetryDelayMs is the first backoff interval between attempts. Zero retries immediately.
	RetryDelayMs int `mapstructure:"retry_delay_ms" default:"0"`
	// RetryMaxDelayMs caps the backoff interval.
	RetryMaxDelayMs int `mapstructure:"retry_max_delay_ms" default:"30000"`
	// TimeoutSeconds bounds a single page request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// InitialCursor resumes pagination from a stored continuation token.
	InitialCursor string `mapstructure:"initial_cursor" default:""`
}

// FetchConfig converts the settings into a Fetcher configuration.
func (c SourceConfig) FetchConfig() Config {
	return Config{
		PageSize:      c.PageSize,
		MaxAttempts:   c.MaxAttempts,
		InitialCursor: c.InitialCursor,
		RetryDelay:    time.Duration(c.RetryDelayMs) * time.Millisecond,
		RetryMaxDelay: time.Duration(c.RetryMaxDelayMs) * time.Millisecond,
	}
}

// Timeout returns the per-request timeout.
func (c SourceConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
