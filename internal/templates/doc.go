// Package templates provides pre-built workflow notification cards. Each
// factory is a fixed composition of card builder calls parameterized by
// business fields; the header color follows the event's semantic status.
package templates
