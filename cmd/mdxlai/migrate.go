package main

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ZaguanLabs/mdxlai"
	"github.com/ZaguanLabs/mdxlai/config"
	"github.com/ZaguanLabs/mdxlai/pipeline"
	"github.com/ZaguanLabs/mdxlai/provider"
)

func newMigrateCmd(a *app) *cobra.Command {
	var toolNames []string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Translate source documents into English and Chinese MDX",
		Long: `Reads every .mdx file in each tool's source directory and writes an
English and a Chinese variant. Translations are cached; the cache is
saved after each tool.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := a.load()
			if err != nil {
				return err
			}

			tools, err := selectTools(cfg.PipelineTools(), toolNames)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, closeStore, err := openCache(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer closeStore()

			translator := mdxlai.NewTranslator(newProvider(cfg),
				mdxlai.WithCache(store),
				mdxlai.WithRetryConfig(cfg.RetryPolicy()),
				mdxlai.WithLogger(logger))

			p := pipeline.New(translator,
				pipeline.WithLogger(logger),
				pipeline.WithBrandTerms(cfg.Markdown.BrandTerms),
				pipeline.WithChunkSize(cfg.Markdown.ChunkSize))

			logger.Info("migration started",
				slog.String("provider", cfg.Provider.Name),
				slog.String("cache", cfg.Cache.Backend),
				slog.Int("tools", len(tools)))

			results, err := p.Run(ctx, tools)
			for _, r := range results {
				fmt.Fprintf(a.stdout, "%s: %d migrated, %d failed, %d fallbacks\n",
					r.Tool, r.Files, r.Failed, r.Fallbacks)
			}
			return err
		},
	}

	cmd.Flags().StringSliceVar(&toolNames, "tool", nil, "Only migrate these tools (comma-separated)")

	return cmd
}

// newProvider builds the configured translation backend, rate limited
// when a request rate is set.
func newProvider(cfg *config.Config) mdxlai.Provider {
	var p mdxlai.Provider
	switch cfg.Provider.Name {
	case config.ProviderOpenAI:
		p = provider.NewOpenAIProvider(provider.OpenAIConfig{
			APIKey:      cfg.Provider.APIKey,
			Model:       cfg.Provider.Model,
			Temperature: cfg.Provider.Temperature,
			BaseURL:     cfg.Provider.BaseURL,
		})
	default:
		p = provider.NewGoogleProvider(provider.GoogleConfig{
			Endpoint: cfg.Provider.Endpoint,
			Timeout:  cfg.Provider.Timeout,
		})
	}

	if cfg.RateLimit.RequestsPerMinute > 0 {
		p = mdxlai.NewRateLimitedProvider(p, mdxlai.RateLimitConfig{
			RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
			BurstSize:         cfg.RateLimit.Burst,
		})
	}
	return p
}

// selectTools keeps the tools named in names, in configuration order.
// No names selects every tool.
func selectTools(tools []pipeline.Tool, names []string) ([]pipeline.Tool, error) {
	if len(names) == 0 {
		return tools, nil
	}

	known := make([]string, 0, len(tools))
	for _, t := range tools {
		known = append(known, t.Name)
	}
	for _, n := range names {
		if !slices.Contains(known, n) {
			return nil, fmt.Errorf("unknown tool %q (configured: %s)", n, strings.Join(known, ", "))
		}
	}

	var selected []pipeline.Tool
	for _, t := range tools {
		if slices.Contains(names, t.Name) {
			selected = append(selected, t)
		}
	}
	return selected, nil
}
