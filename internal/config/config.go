package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Slack    SlackConfig    `yaml:"slack"`
	LLM      LLMConfig      `yaml:"llm"`
	Capture  CaptureConfig  `yaml:"capture"`
	Digest   DigestConfig   `yaml:"digest"`
	Security SecurityConfig `yaml:"security"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// SlackConfig holds Slack app credentials.
// An empty SigningSecret disables webhook signature verification.
type SlackConfig struct {
	SigningSecret string `yaml:"signing_secret" env:"SLACK_SIGNING_SECRET"`
	BotToken      string `yaml:"bot_token"      env:"SLACK_BOT_TOKEN"`
	DigestChannel string `yaml:"digest_channel" env:"SLACK_DIGEST_CHANNEL_ID"`
	APIURL        string `yaml:"api_url"        env:"SLACK_API_URL"`
}

// LLMConfig holds Anthropic API settings.
type LLMConfig struct {
	APIKey         string        `yaml:"api_key"         env:"ANTHROPIC_API_KEY"`
	BaseURL        string        `yaml:"base_url"        env:"ANTHROPIC_BASE_URL"`
	ClassifyModel  string        `yaml:"classify_model"  env:"LLM_CLASSIFY_MODEL"  env-default:"claude-opus-4-5-20251101"`
	SummarizeModel string        `yaml:"summarize_model" env:"LLM_SUMMARIZE_MODEL" env-default:"claude-sonnet-4-20250514"`
	MaxTokens      int           `yaml:"max_tokens"      env:"LLM_MAX_TOKENS"      env-default:"500"`
	Timeout        time.Duration `yaml:"timeout"         env:"LLM_TIMEOUT"         env-default:"30s"`
}

// CaptureConfig holds capture pipeline settings.
type CaptureConfig struct {
	ConfidenceThreshold float64       `yaml:"confidence_threshold" env:"CAPTURE_CONFIDENCE_THRESHOLD" env-default:"0.6"`
	PendingTTL          time.Duration `yaml:"pending_ttl"          env:"CAPTURE_PENDING_TTL"          env-default:"5m"`
	PipelineTimeout     time.Duration `yaml:"pipeline_timeout"     env:"CAPTURE_PIPELINE_TIMEOUT"     env-default:"60s"`
}

// DigestConfig holds digest and weekly review settings.
type DigestConfig struct {
	StalledAfterDays int `yaml:"stalled_after_days" env:"DIGEST_STALLED_AFTER_DAYS" env-default:"7"`
	LookbackDays     int `yaml:"lookback_days"      env:"DIGEST_LOOKBACK_DAYS"      env-default:"7"`
}

// SecurityConfig holds shared secrets and webhook rate limits.
// Empty secrets leave the corresponding endpoints open.
type SecurityConfig struct {
	CronSecret       string  `yaml:"cron_secret"        env:"CRON_SECRET"`
	AdminSecret      string  `yaml:"admin_secret"       env:"ADMIN_SECRET"`
	WebhookRateLimit float64 `yaml:"webhook_rate_limit" env:"WEBHOOK_RATE_LIMIT" env-default:"20"`
	WebhookBurst     int     `yaml:"webhook_burst"      env:"WEBHOOK_BURST"      env-default:"40"`
}
