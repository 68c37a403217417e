// Package logging provides structured logging for cliform.
//
// It wraps a zap logger behind package-level functions. Logging is silent by
// default so curated TUI output stays clean; set the CLIFORM_LOG_LEVEL
// environment variable to "debug", "info", "warn", or "error" to enable
// console output. The serve command initializes logging from its configured
// level instead, falling back to the same environment variable.
//
// All functions are safe for concurrent use.
package logging
