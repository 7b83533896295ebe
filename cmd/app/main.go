package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/phonebook/internal"
	"github.com/starford/phonebook/internal/phonebook"
	pkgconfig "github.com/starford/phonebook/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	configPath := cmd.String("config")

	cfg := internal.NewDefaultConfig()
	if cmd.IsSet("config") {
		if err := pkgconfig.Load(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
		return cfg, nil
	}
	if _, err := pkgconfig.LoadOptional(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// withConfig adapts an internal entry point to a cli action.
func withConfig(run func(ctx context.Context, cmd *cli.Command, opts ...internal.Option) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return run(ctx, cmd, internal.WithConfig(cfg), internal.WithPrompter(newTerminalPrompter(cmd.Bool("yes"))))
	}
}

var yesFlag = &cli.BoolFlag{
	Name:    "yes",
	Aliases: []string{"y"},
	Usage:   "Answer yes to every confirmation",
}

func main() {
	cmd := &cli.Command{
		Name:  "phonebook",
		Usage: "Phonebook directory service and clients",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Run the directory service (REST API, events, health checks)",
				Action: withConfig(func(ctx context.Context, _ *cli.Command, opts ...internal.Option) error {
					return internal.Run(ctx, opts...)
				}),
			},
			{
				Name:  "tui",
				Usage: "Open the interactive terminal phonebook",
				Action: withConfig(func(ctx context.Context, _ *cli.Command, opts ...internal.Option) error {
					return internal.RunTUI(ctx, opts...)
				}),
			},
			{
				Name:  "mcp",
				Usage: "Serve the phonebook as MCP tools over stdio",
				Action: withConfig(func(ctx context.Context, _ *cli.Command, opts ...internal.Option) error {
					return internal.RunMCP(ctx, opts...)
				}),
			},
			{
				Name:  "list",
				Usage: "Print contacts, optionally filtered by name",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "filter", Aliases: []string{"f"}, Usage: "Case-insensitive name fragment"},
				},
				Action: withConfig(func(ctx context.Context, cmd *cli.Command, opts ...internal.Option) error {
					return internal.List(ctx, cmd.String("filter"), opts...)
				}),
			},
			{
				Name:      "add",
				Usage:     "Add a contact or replace the number of an existing one",
				ArgsUsage: "NAME NUMBER",
				Flags:     []cli.Flag{yesFlag},
				Action: withConfig(func(ctx context.Context, cmd *cli.Command, opts ...internal.Option) error {
					if cmd.NArg() != 2 {
						return errors.New("add: expected NAME NUMBER")
					}
					return internal.Add(ctx, cmd.Args().Get(0), cmd.Args().Get(1), opts...)
				}),
			},
			{
				Name:      "delete",
				Usage:     "Delete the contact with the given name",
				ArgsUsage: "NAME",
				Flags:     []cli.Flag{yesFlag},
				Action: withConfig(func(ctx context.Context, cmd *cli.Command, opts ...internal.Option) error {
					if cmd.NArg() != 1 {
						return errors.New("delete: expected NAME")
					}
					return internal.Delete(ctx, cmd.Args().Get(0), opts...)
				}),
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, phonebook.ErrMissingField) {
			os.Exit(2)
		}
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
