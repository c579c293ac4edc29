package internal

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/codevault/internal/highlight"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App       ApplicationConfig `yaml:"app"`
	Store     StoreConfig       `yaml:"store"`
	Index     IndexConfig       `yaml:"index"`
	Export    ExportConfig      `yaml:"export"`
	Highlight HighlightConfig   `yaml:"highlight"`
	Auth      AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Store.Validate(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if err := c.Index.Validate(); err != nil {
		return fmt.Errorf("index: %w", err)
	}
	if err := c.Export.Validate(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := c.Highlight.Validate(); err != nil {
		return fmt.Errorf("highlight: %w", err)
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// StoreConfig locates the JSON snippet collection.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the store configuration.
func (c *StoreConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// IndexConfig holds the SQLite search index location.
type IndexConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the index configuration.
func (c *IndexConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// ExportConfig holds the default export destination.
type ExportConfig struct {
	Dir string `yaml:"dir"`
}

// Validate validates the export configuration.
func (c *ExportConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Dir, validation.Required),
	)
}

// HighlightConfig selects the chroma style and terminal formatter.
type HighlightConfig struct {
	Style     string `yaml:"style"`
	Formatter string `yaml:"formatter"`
}

// Validate validates the highlight configuration.
func (c *HighlightConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Style, validation.Required, validation.In(toAny(highlight.StyleNames())...)),
		validation.Field(&c.Formatter, validation.Required, validation.In(toAny(highlight.FormatterNames())...)),
	)
}

// AuthConfig holds authentication configuration for the HTTP API.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local use.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelWarn,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Store: StoreConfig{
			Path: "data/codevault.json",
		},
		Index: IndexConfig{
			Path: "data/codevault.db",
		},
		Export: ExportConfig{
			Dir: "snippet_exports",
		},
		Highlight: HighlightConfig{
			Style:     highlight.DefaultStyle,
			Formatter: highlight.DefaultFormatter,
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}

func toAny(names []string) []any {
	out := make([]any, len(names))
	for i, n := range names {
		out[i] = n
	}
	return out
}
