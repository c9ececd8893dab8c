package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database.dsn is required")
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if err := c.Capture.validate(); err != nil {
		return fmt.Errorf("capture: %w", err)
	}

	if c.LLM.MaxTokens <= 0 {
		return fmt.Errorf("llm.max_tokens must be > 0 (got %d)", c.LLM.MaxTokens)
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("llm.timeout must be > 0 (got %s)", c.LLM.Timeout)
	}

	if c.Digest.StalledAfterDays <= 0 {
		return fmt.Errorf("digest.stalled_after_days must be > 0 (got %d)", c.Digest.StalledAfterDays)
	}
	if c.Digest.LookbackDays <= 0 {
		return fmt.Errorf("digest.lookback_days must be > 0 (got %d)", c.Digest.LookbackDays)
	}

	if c.Security.WebhookRateLimit <= 0 || c.Security.WebhookBurst <= 0 {
		return fmt.Errorf("security: webhook rate limit and burst must be > 0")
	}

	return nil
}

func (c *CaptureConfig) validate() error {
	if c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 1 {
		return fmt.Errorf("confidence_threshold must be in [0, 1] (got %v)", c.ConfidenceThreshold)
	}
	if c.PendingTTL <= 0 {
		return fmt.Errorf("pending_ttl must be > 0 (got %s)", c.PendingTTL)
	}
	if c.PipelineTimeout <= 0 {
		return fmt.Errorf("pipeline_timeout must be > 0 (got %s)", c.PipelineTimeout)
	}
	if c.PendingTTL <= c.PipelineTimeout {
		return fmt.Errorf("pending_ttl must exceed pipeline_timeout (got %s <= %s)", c.PendingTTL, c.PipelineTimeout)
	}
	return nil
}

// Warnings lists settings that are valid but unsafe for production.
func (c *Config) Warnings() []string {
	var warnings []string
	if c.Slack.SigningSecret == "" {
		warnings = append(warnings, "slack.signing_secret is empty: webhook signatures are not verified")
	}
	if c.Slack.BotToken == "" {
		warnings = append(warnings, "slack.bot_token is empty: replies and reactions will fail")
	}
	if c.LLM.APIKey == "" {
		warnings = append(warnings, "llm.api_key is empty: classification will fail")
	}
	if c.Security.CronSecret == "" {
		warnings = append(warnings, "security.cron_secret is empty: cron endpoints are unauthenticated")
	}
	if c.Security.AdminSecret == "" {
		warnings = append(warnings, "security.admin_secret is empty: admin and dashboard endpoints are unauthenticated")
	}
	return warnings
}
