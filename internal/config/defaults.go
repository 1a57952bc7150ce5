package config

const (
	defaultWebhookTimeoutSeconds = 10
	defaultCardLanguage          = "zh"
	defaultLogLevel              = "info"
	defaultLogFormat             = "console"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Webhook: Webhook{
			TimeoutSeconds: defaultWebhookTimeoutSeconds,
		},
		Card: Card{
			Language: defaultCardLanguage,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
