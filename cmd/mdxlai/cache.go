package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/ZaguanLabs/mdxlai"
	"github.com/ZaguanLabs/mdxlai/cache"
	"github.com/ZaguanLabs/mdxlai/config"
)

// openCache opens the configured translation store. The returned func
// releases it.
func openCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (mdxlai.TranslationCache, func(), error) {
	ttl := int(cfg.Cache.TTL / time.Second)

	switch cfg.Cache.Backend {
	case config.CacheMemory:
		return cache.NewInMemoryCache(ttl), func() {}, nil
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			URL:       cfg.Cache.RedisURL,
			TTL:       ttl,
			KeyPrefix: cfg.Cache.KeyPrefix,
		})
		if err != nil {
			return nil, nil, err
		}
		return rc, func() { _ = rc.Close() }, nil
	default:
		return cache.LoadFileCache(cfg.Cache.Path, logger), func() {}, nil
	}
}

func newCacheCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Export or import the translation cache",
	}
	cmd.AddCommand(newCacheExportCmd(a), newCacheImportCmd(a))
	return cmd
}

func newCacheExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write the translation cache to a JSON export file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := a.load()
			if err != nil {
				return err
			}

			store, closeStore, err := openCache(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer closeStore()

			lister, ok := store.(cache.EntryLister)
			if !ok {
				return fmt.Errorf("cache backend %q cannot list its entries", cfg.Cache.Backend)
			}

			n, err := cache.NewExporter(lister).ExportToFile(args[0], map[string]string{
				"generator": mdxlai.UserAgent(),
				"backend":   cfg.Cache.Backend,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "exported %d entries to %s\n", n, args[0])
			return nil
		},
	}
}

func newCacheImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Load a JSON export file into the translation cache",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := a.load()
			if err != nil {
				return err
			}

			store, closeStore, err := openCache(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer closeStore()

			res, err := cache.NewImporter(store).ImportFromFile(args[0])
			if err != nil {
				return err
			}

			if saver, ok := store.(mdxlai.Saver); ok {
				if err := saver.Save(); err != nil {
					return fmt.Errorf("saving cache: %w", err)
				}
			}

			fmt.Fprintf(a.stdout, "imported %d entries (%d failed) from %s\n", res.Imported, res.Failed, args[0])
			return nil
		},
	}
}
