package ui

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

const positionalUsage = "usage: mtfks <pattern> <path> <n_workers> <mode>\nmode: 0 = plain keyword, 1 = regex"

func overrideConfig(cfg Config, ctx *cli.Context) Config {
	if ctx.String("Pattern") != "" {
		cfg.Pattern = ctx.String("Pattern")
	}
	if ctx.String("Root") != "" {
		cfg.Root = ctx.String("Root")
	}
	if ctx.Int("Workers") != 0 {
		cfg.Workers = ctx.Int("Workers")
	}
	if ctx.Bool("Regexp") {
		cfg.Regexp = true
	}
	if ctx.Bool("NoColor") {
		cfg.NoColor = true
	}
	if ctx.Bool("Verbose") {
		cfg.Verbose = true
	}

	return cfg
}

// applyPositionals maps the positional invocation onto the config:
// <pattern> <path> <n_workers> <mode>. No arguments at all is also fine
// (the config file or flags supply the values); anything else is a
// malformed invocation.
func applyPositionals(cfg Config, args []string) (Config, error) {
	if len(args) == 0 {
		return cfg, nil
	}
	if len(args) != 4 {
		return cfg, fmt.Errorf("expected 4 arguments, got %d", len(args))
	}

	cfg.Pattern = args[0]
	cfg.Root = args[1]

	workers, err := strconv.Atoi(args[2])
	if err != nil {
		return cfg, fmt.Errorf("n_workers: %w", err)
	}
	if workers <= 0 {
		workers = 1
	}
	cfg.Workers = workers

	mode, err := strconv.Atoi(args[3])
	if err != nil {
		return cfg, fmt.Errorf("mode: %w", err)
	}
	cfg.Regexp = mode != 0

	return cfg, nil
}

func PrepareConsoleApp() (app *cli.App) {

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "Pattern",
			Aliases: []string{"p"},
			Usage:   "what to search for (a literal substring, or a regular expression with --Regexp)",
		},
		&cli.StringFlag{
			Name:    "Root",
			Aliases: []string{"r"},
			Usage:   "the directory tree to scan",
		},
		&cli.IntFlag{
			Name:    "Workers",
			Aliases: []string{"w"},
			Usage:   "sets the number of concurrent scan workers (defaults to the number of cores)",
		},
		&cli.BoolFlag{
			Name:    "Regexp",
			Aliases: []string{"E"},
			Usage:   "treat the pattern as a regular expression",
		},
		&cli.BoolFlag{
			Name:  "NoColor",
			Usage: "disable ANSI colors on the match output",
		},
		&cli.BoolFlag{
			Name:    "Verbose",
			Aliases: []string{"v"},
			Usage:   "log scan lifecycle details to stderr",
		},
	}

	app = &cli.App{
		Name:      "mtfks",
		Usage:     "multi-threaded file keyword/regex search",
		UsageText: positionalUsage,
		Flags:     flags,
		Action: func(ctx *cli.Context) error {
			cfg, err := LoadConfig(true)
			if err != nil {
				return err
			}
			cfg = overrideConfig(cfg, ctx)

			cfg, err = applyPositionals(cfg, ctx.Args().Slice())
			if err != nil {
				return cli.Exit(fmt.Sprintf("%s\n%s", err, positionalUsage), 2)
			}

			err = cfg.Validate()
			if err != nil {
				return err
			}

			return Run(cfg)
		},
		Commands: []*cli.Command{
			{
				Name:        "gen",
				Flags:       flags,
				Description: "Generates config to stdOut.",
				Action: func(ctx *cli.Context) error {
					cfg := overrideConfig(DefaultCfg, ctx)
					if cfg.Pattern == "" {
						cfg.Pattern = "<PUT YOUR PATTERN>"
					}
					yamlData, err := yaml.Marshal(&cfg)
					if err != nil {
						return err
					}
					fmt.Print(string(yamlData))
					return nil
				},
			},
		},
	}

	return
}
