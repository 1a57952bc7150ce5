package config

import "strings"

func (c *Config) normalize() {
	c.Webhook.URL = strings.TrimSpace(c.Webhook.URL)
	c.Webhook.Secret = strings.TrimSpace(c.Webhook.Secret)
	if c.Webhook.TimeoutSeconds == 0 {
		c.Webhook.TimeoutSeconds = defaultWebhookTimeoutSeconds
	}

	c.Card.Language = strings.TrimSpace(c.Card.Language)
	if c.Card.Language == "" {
		c.Card.Language = defaultCardLanguage
	}

	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
}
