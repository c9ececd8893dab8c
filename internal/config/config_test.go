package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// validEnv sets the minimum required env vars for a valid config.
func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/testdb")
}

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"

database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 4

log:
  level: "debug"
  format: "text"

slack:
  signing_secret: "8f742231b10e8888abcd99yyyzzz85a5"
  bot_token: "xoxb-test"
  digest_channel: "C0DIGEST"

llm:
  api_key: "sk-ant-test"
  classify_model: "claude-test"
  max_tokens: 800

capture:
  confidence_threshold: 0.75
  pending_ttl: "2m"

digest:
  stalled_after_days: 14

security:
  cron_secret: "cron"
  admin_secret: "admin"
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Server
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server.read_timeout = %v, want %v", cfg.Server.ReadTimeout, 5*time.Second)
	}

	// Database
	if cfg.Database.MaxConns != 4 {
		t.Errorf("database.max_conns = %d, want 4", cfg.Database.MaxConns)
	}

	// Slack
	if cfg.Slack.BotToken != "xoxb-test" {
		t.Errorf("slack.bot_token = %q", cfg.Slack.BotToken)
	}
	if cfg.Slack.DigestChannel != "C0DIGEST" {
		t.Errorf("slack.digest_channel = %q", cfg.Slack.DigestChannel)
	}

	// LLM
	if cfg.LLM.ClassifyModel != "claude-test" {
		t.Errorf("llm.classify_model = %q", cfg.LLM.ClassifyModel)
	}
	if cfg.LLM.SummarizeModel != "claude-sonnet-4-20250514" {
		t.Errorf("llm.summarize_model = %q, want default", cfg.LLM.SummarizeModel)
	}
	if cfg.LLM.MaxTokens != 800 {
		t.Errorf("llm.max_tokens = %d, want 800", cfg.LLM.MaxTokens)
	}

	// Capture
	if cfg.Capture.ConfidenceThreshold != 0.75 {
		t.Errorf("capture.confidence_threshold = %v, want 0.75", cfg.Capture.ConfidenceThreshold)
	}
	if cfg.Capture.PendingTTL != 2*time.Minute {
		t.Errorf("capture.pending_ttl = %v, want 2m", cfg.Capture.PendingTTL)
	}

	// Digest
	if cfg.Digest.StalledAfterDays != 14 {
		t.Errorf("digest.stalled_after_days = %d, want 14", cfg.Digest.StalledAfterDays)
	}
	if cfg.Digest.LookbackDays != 7 {
		t.Errorf("digest.lookback_days = %d, want 7 (default)", cfg.Digest.LookbackDays)
	}

	// Log
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "debug")
	}

	if w := cfg.Warnings(); len(w) != 0 {
		t.Errorf("expected no warnings, got %v", w)
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("CAPTURE_CONFIDENCE_THRESHOLD", "0.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("server.port = %d, want 3000 (ENV override)", cfg.Server.Port)
	}
	if cfg.Capture.ConfidenceThreshold != 0.5 {
		t.Errorf("capture.confidence_threshold = %v, want 0.5 (ENV override)", cfg.Capture.ConfidenceThreshold)
	}
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	validEnv(t)

	t.Setenv("CONFIG_PATH", "")
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080 (default)", cfg.Server.Port)
	}
	if cfg.Capture.ConfidenceThreshold != 0.6 {
		t.Errorf("capture.confidence_threshold = %v, want 0.6 (default)", cfg.Capture.ConfidenceThreshold)
	}
	if cfg.Capture.PendingTTL != 5*time.Minute {
		t.Errorf("capture.pending_ttl = %v, want 5m (default)", cfg.Capture.PendingTTL)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, `{{{invalid yaml`)
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"threshold zero", func(c *Config) { c.Capture.ConfidenceThreshold = 0 }, ""},
		{"threshold one", func(c *Config) { c.Capture.ConfidenceThreshold = 1 }, ""},
		{"empty dsn", func(c *Config) { c.Database.DSN = " " }, "database.dsn"},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"threshold negative", func(c *Config) { c.Capture.ConfidenceThreshold = -0.1 }, "confidence_threshold"},
		{"threshold above one", func(c *Config) { c.Capture.ConfidenceThreshold = 1.01 }, "confidence_threshold"},
		{"zero pending ttl", func(c *Config) { c.Capture.PendingTTL = 0 }, "pending_ttl"},
		{"zero pipeline timeout", func(c *Config) { c.Capture.PipelineTimeout = 0 }, "pipeline_timeout"},
		{"pending ttl not above timeout", func(c *Config) { c.Capture.PendingTTL = c.Capture.PipelineTimeout }, "must exceed pipeline_timeout"},
		{"zero max tokens", func(c *Config) { c.LLM.MaxTokens = 0 }, "llm.max_tokens"},
		{"zero llm timeout", func(c *Config) { c.LLM.Timeout = 0 }, "llm.timeout"},
		{"zero stalled days", func(c *Config) { c.Digest.StalledAfterDays = 0 }, "stalled_after_days"},
		{"zero lookback", func(c *Config) { c.Digest.LookbackDays = 0 }, "lookback_days"},
		{"zero burst", func(c *Config) { c.Security.WebhookBurst = 0 }, "webhook rate limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestWarnings_MissingSigningSecret(t *testing.T) {
	cfg := validConfig()
	cfg.Slack.SigningSecret = ""

	warnings := cfg.Warnings()
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", warnings)
	}
	if !strings.Contains(warnings[0], "signing_secret") {
		t.Errorf("unexpected warning %q", warnings[0])
	}
}

// validConfig returns a Config that passes all validation checks and has no warnings.
func validConfig() Config {
	return Config{
		Server:   ServerConfig{Port: 8080},
		Database: DatabaseConfig{DSN: "postgres://u:p@localhost:5432/testdb"},
		Slack: SlackConfig{
			SigningSecret: "secret",
			BotToken:      "xoxb-test",
		},
		LLM: LLMConfig{
			APIKey:    "sk-ant-test",
			MaxTokens: 500,
			Timeout:   30 * time.Second,
		},
		Capture: CaptureConfig{
			ConfidenceThreshold: 0.6,
			PendingTTL:          5 * time.Minute,
			PipelineTimeout:     time.Minute,
		},
		Digest: DigestConfig{StalledAfterDays: 7, LookbackDays: 7},
		Security: SecurityConfig{
			CronSecret:       "cron",
			AdminSecret:      "admin",
			WebhookRateLimit: 20,
			WebhookBurst:     40,
		},
	}
}
