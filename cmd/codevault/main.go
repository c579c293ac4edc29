package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/codevault/internal"
	"github.com/starford/codevault/internal/filter"
	"github.com/starford/codevault/internal/resolve"
	pkgconfig "github.com/starford/codevault/pkg/config"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

type action func(ctx context.Context, cmd *cli.Command, app *internal.App) error

// withApp loads the configuration, builds the App and closes it afterwards.
func withApp(fn action, opts ...internal.Option) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg := internal.NewDefaultConfig()
		if err := pkgconfig.LoadOptional(cmd.String("config"), cfg); err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}

		color := internal.ColorEnabled(os.Stdout, cmd.Bool("no-color"), os.Getenv("NO_COLOR"))
		base := []internal.Option{
			internal.WithConfig(cfg),
			internal.WithVersion(version),
			internal.WithColor(color),
		}
		app, err := internal.New(append(base, opts...)...)
		if err != nil {
			return err
		}
		defer app.Close()

		return fn(ctx, cmd, app)
	}
}

func filterFlags(withKeyword bool) []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{Name: "tag", Aliases: []string{"t"}, Usage: "comma-separated tag terms"},
		&cli.StringFlag{Name: "language", Aliases: []string{"l"}, Usage: "comma-separated language terms"},
		&cli.StringFlag{Name: "id", Usage: "exact snippet ID"},
	}
	if withKeyword {
		flags = append(flags, &cli.StringFlag{Name: "keyword", Aliases: []string{"k"}, Usage: "comma-separated terms matched against tag, description and code"})
	}
	return flags
}

func queryFrom(cmd *cli.Command) (filter.Query, error) {
	q := filter.Query{
		Tag:      cmd.String("tag"),
		Language: cmd.String("language"),
		Keyword:  cmd.String("keyword"),
	}
	if raw := cmd.String("id"); raw != "" {
		id, err := filter.ParseID(raw)
		if err != nil {
			return q, err
		}
		q.ID = &id
	}
	return q, nil
}

var yesFlag = &cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "skip the confirmation prompt"}

func commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "capture",
			Usage: "Store a new snippet; the code is read from stdin unless --code is given",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "tag", Aliases: []string{"t"}, Usage: "snippet tag", Required: true},
				&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "one-line description"},
				&cli.StringFlag{Name: "language", Aliases: []string{"l"}, Usage: "language used for highlighting and export"},
				&cli.StringFlag{Name: "code", Usage: "code body (default: read stdin until EOF)"},
			},
			Action: withApp(func(ctx context.Context, cmd *cli.Command, app *internal.App) error {
				return app.Capture(ctx, internal.CaptureArgs{
					Tag:         cmd.String("tag"),
					Description: cmd.String("description"),
					Language:    cmd.String("language"),
					Code:        cmd.String("code"),
				})
			}),
		},
		{
			Name:  "view",
			Usage: "Show snippets, optionally filtered",
			Flags: append(filterFlags(true),
				&cli.BoolFlag{Name: "summary", Aliases: []string{"s"}, Usage: "omit the code"},
			),
			Action: withApp(func(ctx context.Context, cmd *cli.Command, app *internal.App) error {
				q, err := queryFrom(cmd)
				if err != nil {
					return err
				}
				return app.View(ctx, q, cmd.Bool("summary"))
			}),
		},
		{
			Name:  "copy",
			Usage: "Print the code of one snippet",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "id", Usage: "snippet ID", Required: true},
			},
			Action: withApp(func(ctx context.Context, cmd *cli.Command, app *internal.App) error {
				id, err := filter.ParseID(cmd.String("id"))
				if err != nil {
					return err
				}
				return app.Copy(ctx, id)
			}),
		},
		{
			Name:  "edit",
			Usage: "Edit a snippet selected by --id or --tag",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "id", Usage: "snippet ID"},
				&cli.StringFlag{Name: "tag", Aliases: []string{"t"}, Usage: "tag substring; asks when several snippets match"},
			},
			Action: withApp(func(ctx context.Context, cmd *cli.Command, app *internal.App) error {
				sel := resolve.Selector{Tag: cmd.String("tag")}
				if raw := cmd.String("id"); raw != "" {
					id, err := filter.ParseID(raw)
					if err != nil {
						return err
					}
					sel.ID = &id
				}
				return app.Edit(ctx, sel)
			}),
		},
		{
			Name:  "delete",
			Usage: "Delete snippets by ID",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "id", Usage: "comma-separated snippet IDs", Required: true},
				yesFlag,
			},
			Action: withApp(func(ctx context.Context, cmd *cli.Command, app *internal.App) error {
				ids, err := filter.ParseIDs(cmd.String("id"))
				if err != nil {
					return err
				}
				return app.Delete(ctx, ids, cmd.Bool("yes"))
			}),
		},
		{
			Name:  "export",
			Usage: "Write matching snippets to <dir>/<id>.<ext>",
			Flags: append(filterFlags(true),
				&cli.StringFlag{Name: "dir", Usage: "destination directory (default from config)"},
				yesFlag,
			),
			Action: withApp(func(ctx context.Context, cmd *cli.Command, app *internal.App) error {
				q, err := queryFrom(cmd)
				if err != nil {
					return err
				}
				return app.Export(ctx, q, cmd.String("dir"), cmd.Bool("yes"))
			}),
		},
		{
			Name:   "languages",
			Usage:  "List the languages available for highlighting",
			Action: withApp(func(ctx context.Context, _ *cli.Command, app *internal.App) error { return app.Languages(ctx) }),
		},
		{
			Name:      "search",
			Usage:     "Full-text search over tags, descriptions and code",
			ArgsUsage: "<query>",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "limit", Value: 20, Usage: "maximum number of hits"},
			},
			Action: withApp(func(ctx context.Context, cmd *cli.Command, app *internal.App) error {
				return app.Search(ctx, strings.Join(cmd.Args().Slice(), " "), int(cmd.Int("limit")))
			}),
		},
		{
			Name:  "serve",
			Usage: "Run the read-only HTTP API with live change events",
			Action: withApp(func(ctx context.Context, _ *cli.Command, app *internal.App) error {
				return app.Serve(ctx)
			}, internal.WithIO(os.Stdin, os.Stdout, os.Stdout)),
		},
		{
			Name:   "mcp",
			Usage:  "Serve the snippet tools over MCP stdio",
			Action: withApp(func(ctx context.Context, _ *cli.Command, app *internal.App) error { return app.ServeMCP(ctx) }),
		},
	}
}

func main() {
	cmd := &cli.Command{
		Name:    "codevault",
		Usage:   "Personal code-snippet manager",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file (optional)",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "disable highlighting and styling",
			},
		},
		Commands: commands(),
	}

	os.Exit(internal.Report(os.Stderr, cmd.Run(context.Background(), os.Args)))
}
