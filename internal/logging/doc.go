// Package logging constructs the slog loggers used across larknotify: a
// console handler for interactive use and a JSON handler for machine
// consumption.
package logging
