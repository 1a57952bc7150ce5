// Package notifier delivers finished cards to a Lark custom-bot webhook,
// signing requests when a secret is configured and retrying transient
// transport failures.
package notifier
