// Command ifempty-gen writes IfEmpty methods for types that declare an
// IsEmpty() bool predicate. It is meant to be run by go generate:
//
//	//go:generate go run github.com/amp-labs/ifempty/cmd/ifempty-gen
//
// Types annotated with //ifempty:generate are picked up automatically;
// others can be named with --type.
package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/amp-labs/ifempty/build"
	"github.com/amp-labs/ifempty/generator"
	"github.com/amp-labs/ifempty/logger"
	"github.com/amp-labs/ifempty/startup"
	"github.com/samber/lo"
	"go.uber.org/multierr"
)

// CLI holds the command line. The generation settings can also come from
// the environment, so one env file can serve many go:generate lines.
type CLI struct {
	Dirs    []string `arg:"" optional:"" default:"." type:"existingdir" help:"Package directories to process."`
	Type    []string `short:"t" sep:"," env:"IFEMPTY_TYPES" help:"Types to generate for, in addition to annotated ones."`
	Output  string   `short:"o" env:"IFEMPTY_OUTPUT" default:"${output}" help:"Name of the generated file."`
	Check   bool     `env:"IFEMPTY_CHECK" help:"Verify that every type declares IsEmpty() bool before generating."`
	DryRun  bool     `short:"n" help:"Print the generated source instead of writing it."`
	Workers int      `help:"Directories processed in parallel (default IFEMPTY_WORKERS or the number of CPUs)."`
	EnvFile []string `type:"existingfile" help:"Env files (.env, .yaml, .json) to load before reading settings."`
	Verbose bool     `short:"v" help:"Log at debug level regardless of LOG_LEVEL."`

	Version kong.VersionFlag `help:"Print the version and exit."`

	out io.Writer `kong:"-"`
}

func (c *CLI) config() generator.Config {
	return generator.Config{
		Types:   c.Type,
		Output:  c.Output,
		Check:   c.Check,
		Workers: c.Workers,
	}
}

func (c *CLI) loggingOptions() []logger.Option {
	if !c.Verbose {
		return nil
	}

	return []logger.Option{logger.WithMinLevel(slog.LevelDebug)}
}

// Run generates (or with --dry-run, prints) the IfEmpty file for each directory.
func (c *CLI) Run(ctx context.Context) error {
	gen := generator.New(c.config())
	log := logger.Get(ctx)

	if c.DryRun {
		out := c.out
		if out == nil {
			out = os.Stdout
		}

		for _, dir := range c.Dirs {
			result, err := gen.Package(ctx, dir)
			if err != nil {
				return err
			}

			if result.Source == nil {
				continue
			}

			if _, err := out.Write(result.Source); err != nil {
				return err
			}
		}

		return nil
	}

	results, err := gen.Run(ctx, c.Dirs...)

	log.Debug("finished",
		"dirs", len(c.Dirs),
		"written", lo.CountBy(results, func(r *generator.Result) bool {
			return r != nil && r.Written
		}))

	return err
}

func parse(args []string) (*CLI, error) {
	var cli CLI

	parser, err := kong.New(&cli,
		kong.Name("ifempty-gen"),
		kong.Description("Generate IfEmpty methods for types with an IsEmpty() bool predicate."),
		kong.UsageOnError(),
		kong.Vars{
			"version": build.Get().String(),
			"output":  generator.DefaultOutput,
		},
	)
	if err != nil {
		return nil, err
	}

	if _, err := parser.Parse(args); err != nil {
		parser.FatalIfErrorf(err)
	}

	return &cli, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := startup.ConfigureEnvironment(ctx); err != nil {
		logger.Fatal("error loading env files", "error", err)
	}

	cli, err := parse(os.Args[1:])
	if err != nil {
		logger.Fatal("error building command line parser", "error", err)
	}

	// Env-backed flags are resolved during parsing, so files named on the
	// command line need a second pass.
	if len(cli.EnvFile) > 0 {
		if err := startup.ConfigureEnvironmentFromFiles(ctx, cli.EnvFile); err != nil {
			logger.Fatal("error loading env files", "error", err)
		}

		if cli, err = parse(os.Args[1:]); err != nil {
			logger.Fatal("error building command line parser", "error", err)
		}
	}

	ctx = logger.WithLogger(ctx, logger.ConfigureLogging(ctx, "ifempty-gen", cli.loggingOptions()...))

	if gofile, ok := os.LookupEnv("GOFILE"); ok {
		ctx = logger.WithLogger(ctx, logger.Get(ctx).With("gofile", gofile))
	}

	if err := cli.Run(ctx); err != nil {
		for _, e := range multierr.Errors(err) {
			logger.Get(ctx).Error("ifempty-gen failed", "error", e)
		}

		stop()
		os.Exit(1)
	}
}
