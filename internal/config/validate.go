package config

import (
	"errors"
	"fmt"
	"net/url"

	"golang.org/x/text/language"
)

var allowedLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

var allowedLogFormats = map[string]struct{}{
	"console": {},
	"json":    {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateWebhook(); err != nil {
		return err
	}
	if err := c.validateCard(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateWebhook() error {
	if c.Webhook.URL != "" {
		parsed, err := url.Parse(c.Webhook.URL)
		if err != nil {
			return fmt.Errorf("webhook.url is not a valid URL: %w", err)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return errors.New("webhook.url must use http or https")
		}
		if parsed.Host == "" {
			return errors.New("webhook.url must include a host")
		}
	}
	if c.Webhook.TimeoutSeconds < 0 {
		return errors.New("webhook.timeout_seconds must be >= 0")
	}
	return nil
}

func (c *Config) validateCard() error {
	if _, err := language.Parse(c.Card.Language); err != nil {
		return fmt.Errorf("card.language is not a valid BCP 47 tag: %w", err)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if _, ok := allowedLogLevels[c.Logging.Level]; !ok {
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level)
	}
	if _, ok := allowedLogFormats[c.Logging.Format]; !ok {
		return fmt.Errorf("logging.format must be console or json (got %q)", c.Logging.Format)
	}
	return nil
}
