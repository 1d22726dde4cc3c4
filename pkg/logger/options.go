package logger

import (
	"io"
	"log/slog"
)

// Option adjusts the configuration of a logger built by New.
type Option func(*config)

// WithDebug lowers the level to Debug. With false the level stays at Info.
func WithDebug(debug bool) Option {
	return func(c *config) {
		if debug {
			c.level = slog.LevelDebug
		} else {
			c.level = slog.LevelInfo
		}
	}
}

// WithPretty selects the charmbracelet/log handler, used for terminal-facing
// command output.
func WithPretty(pretty bool) Option {
	return func(c *config) {
		c.pretty = pretty
	}
}

// WithJSON selects slog's JSON handler, used for machine-readable log files.
func WithJSON(json bool) Option {
	return func(c *config) {
		c.json = json
	}
}

// WithSource adds the caller's file:line to every record.
func WithSource(source bool) Option {
	return func(c *config) {
		c.source = source
	}
}

// WithWriter replaces the default os.Stdout destination.
func WithWriter(w io.Writer) Option {
	return WithWriters(w)
}

// WithWriters fans output out to several destinations through io.MultiWriter.
func WithWriters(w ...io.Writer) Option {
	return func(c *config) {
		c.writers = w
	}
}
