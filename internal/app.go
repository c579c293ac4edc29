// Package internal wires configuration, storage, rendering and transports
// into the codevault commands.
package internal

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/starford/codevault/internal/highlight"
	"github.com/starford/codevault/internal/index"
	"github.com/starford/codevault/internal/prompt"
	"github.com/starford/codevault/internal/render"
	"github.com/starford/codevault/internal/snippetservice"
	"github.com/starford/codevault/internal/store"
)

// App holds the collaborators shared by every command.
type App struct {
	config  *Config
	logger  *slog.Logger
	in      io.Reader
	out     io.Writer
	errOut  io.Writer
	version string
	color   bool

	store    *store.Store
	renderer *render.Renderer
	prompter *prompt.Prompter
	svc      *snippetservice.Service
	db       *index.DB
}

// New builds an App from opts. The search index is opened on first use.
func New(opts ...Option) (*App, error) {
	app := &App{
		in:      os.Stdin,
		out:     os.Stdout,
		errOut:  os.Stderr,
		version: "dev",
		color:   true,
	}
	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	cfg := app.config

	if app.logger == nil {
		app.logger = slog.New(slog.NewJSONHandler(app.errOut, &slog.HandlerOptions{
			Level: cfg.App.LogLevel,
		}))
	}

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}
	app.store = st

	var hl render.Highlighter
	theme := render.PlainTheme()
	if app.color {
		hl = highlight.New(cfg.Highlight.Style, cfg.Highlight.Formatter)
		theme = render.DefaultTheme()
	}
	app.renderer = render.New(hl, theme)
	app.prompter = prompt.New(app.in, app.out)
	app.svc = snippetservice.NewService(st, nil, app.logger)

	app.logger.Debug("Configuration loaded",
		slog.String("store_path", st.Path()),
		slog.String("index_path", cfg.Index.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	return app, nil
}

// Close releases the search index, if it was opened.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

// indexed returns a service backed by the SQLite index, opening it once.
func (a *App) indexed() (*snippetservice.Service, error) {
	if a.db != nil {
		return a.svc, nil
	}
	path := a.config.Index.Path
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create index dir: %w", err)
	}
	db, err := index.Open(path)
	if err != nil {
		return nil, fmt.Errorf("init index: %w", err)
	}
	a.db = db
	a.svc = snippetservice.NewService(a.store, db, a.logger)
	return a.svc, nil
}
