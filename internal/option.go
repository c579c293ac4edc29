package internal

import (
	"io"
	"log/slog"
)

// Option is a functional option for configuring the application.
type Option func(*App)

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *App) {
		a.config = cfg
	}
}

// WithIO replaces the terminal streams used for prompts, output and logs.
func WithIO(in io.Reader, out, errOut io.Writer) Option {
	return func(a *App) {
		a.in = in
		a.out = out
		a.errOut = errOut
	}
}

// WithLogger sets the logger instead of the default JSON handler on errOut.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// WithVersion sets the version reported by the MCP server.
func WithVersion(version string) Option {
	return func(a *App) {
		a.version = version
	}
}

// WithColor toggles syntax highlighting and box styling.
func WithColor(enabled bool) Option {
	return func(a *App) {
		a.color = enabled
	}
}
