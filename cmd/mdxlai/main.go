// Command mdxlai migrates reference documents into bilingual MDX content.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ZaguanLabs/mdxlai"
	"github.com/ZaguanLabs/mdxlai/config"
)

// Build-time variables (can be overridden with ldflags)
var (
	version   = mdxlai.Version
	commit    = mdxlai.GitCommit
	buildDate = mdxlai.BuildDate
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// app carries the global flags shared by all subcommands.
type app struct {
	configPath string
	logLevel   string
	stdout     io.Writer
	stderr     io.Writer
}

// load reads the configuration and builds the logger for a command.
func (a *app) load() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, nil, err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}

	logger := slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))
	return cfg, logger, nil
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   mdxlai.Name,
		Short: mdxlai.Description,
		Long: `mdxlai turns reference documents into English and Chinese MDX pages:
frontmatter, body translation with cached results, ad placement and
file naming, plus format fixing, table checks and sitemap generation.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file (default: $"+config.PathEnv+" or "+config.DefaultPath+")")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	root.AddCommand(
		newMigrateCmd(a),
		newFixCmd(a),
		newCheckCmd(a),
		newSitemapCmd(a),
		newInitCmd(a),
		newCacheCmd(a),
		newVersionCmd(a),
	)

	return root
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "%s %s\n", mdxlai.Name, version)
			if commit != "unknown" && commit != "" {
				fmt.Fprintf(a.stdout, "  commit:  %s\n", commit)
			}
			if buildDate != "unknown" && buildDate != "" {
				fmt.Fprintf(a.stdout, "  built:   %s\n", buildDate)
			}
		},
	}
}
