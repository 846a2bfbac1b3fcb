package console

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/magicalhair/citas/internal/app"
	"github.com/magicalhair/citas/internal/config"
	"github.com/urfave/cli/v2"
)

// withConsole loads configuration, wires dependencies and hands a Console to fn.
func withConsole(fn func(ctx context.Context, c *Console) error) cli.ActionFunc {
	return func(cCtx *cli.Context) error {
		cfg, err := config.Load(cCtx.String("config"))
		if err != nil {
			return err
		}
		if dir := cCtx.String("dir"); dir != "" {
			cfg.Export.Dir = dir
		}
		deps, err := app.BuildDependencies(cCtx.Context, cfg)
		if err != nil {
			return err
		}
		defer deps.Close()

		c := New(deps.CitaService, deps.Exporter, deps.TsvRenderer, cCtx.App.Reader, cCtx.App.Writer)
		return fn(cCtx.Context, c)
	}
}

func serve(cCtx *cli.Context) error {
	cfg, err := config.Load(cCtx.String("config"))
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cCtx.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, err := app.BuildDependencies(ctx, cfg)
	if err != nil {
		return err
	}
	defer deps.Close()

	return app.NewApplication(cfg, deps).Run(ctx)
}

// Commands returns the CLI surface of the application.
func Commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:   "serve",
			Usage:  "run the booking HTTP server",
			Action: serve,
		},
		{
			Name:  "export",
			Usage: "export all appointments to a tab-separated file",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "dir", Usage: "directory for the export file (overrides export.dir)"},
			},
			Action: withConsole(func(ctx context.Context, c *Console) error {
				return c.Export(ctx)
			}),
		},
		{
			Name:  "count",
			Usage: "print the number of stored appointments",
			Action: withConsole(func(ctx context.Context, c *Console) error {
				return c.Count(ctx)
			}),
		},
		{
			Name:  "clear",
			Usage: "delete every stored appointment (asks for confirmation)",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "do not ask for confirmation"},
			},
			Action: func(cCtx *cli.Context) error {
				return withConsole(func(ctx context.Context, c *Console) error {
					return c.Clear(ctx, cCtx.Bool("yes"))
				})(cCtx)
			},
		},
		{
			Name:  "filter",
			Usage: "print appointments between two dates (inclusive)",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "from", Required: true, Usage: "first day, YYYY-MM-DD"},
				&cli.StringFlag{Name: "to", Required: true, Usage: "last day, YYYY-MM-DD"},
			},
			Action: func(cCtx *cli.Context) error {
				return withConsole(func(ctx context.Context, c *Console) error {
					return c.Filter(ctx, cCtx.String("from"), cCtx.String("to"))
				})(cCtx)
			},
		},
		{
			Name:  "list",
			Usage: "print all stored appointments",
			Action: withConsole(func(ctx context.Context, c *Console) error {
				return c.List(ctx)
			}),
		},
	}
}
