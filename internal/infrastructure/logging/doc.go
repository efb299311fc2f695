// Package logging provides structured logging for dmxcore built on log/slog.
//
// Every component logs through a *Logger carrying default service/version
// attributes; use With to scope a logger to a component.
package logging
