package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/ZaguanLabs/mdxlai/config"
	"github.com/ZaguanLabs/mdxlai/mdx"
)

func newFixCmd(a *app) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "fix [dir...]",
		Short: "Repair common MDX formatting problems in place",
		Long: `Rewrites every .mdx file under the given directories (default: the
parent of each tool's output directories) so it parses as MDX: HTML
comments, glued component tags and code fences, anchors and bare
angle-bracket words.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := a.load()
			if err != nil {
				return err
			}

			roots := args
			if len(roots) == 0 {
				roots = toolRoots(cfg)
			}

			var (
				changed int
				errs    []error
			)
			for _, root := range roots {
				files, err := mdx.ListFiles(root, true)
				if err != nil {
					errs = append(errs, fmt.Errorf("listing %s: %w", root, err))
					continue
				}
				for _, file := range files {
					ok, err := fixFile(file, dryRun)
					if err != nil {
						logger.Warn("fix failed", slog.String("file", file), slog.String("error", err.Error()))
						errs = append(errs, err)
						continue
					}
					if ok {
						changed++
						fmt.Fprintln(a.stdout, file)
					}
				}
			}

			verb := "fixed"
			if dryRun {
				verb = "would fix"
			}
			fmt.Fprintf(a.stdout, "%s %d file(s)\n", verb, changed)
			return errors.Join(errs...)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Only list the files that would change")

	return cmd
}

// fixFile applies mdx.FixFormat to path and reports whether it changed.
func fixFile(path string, dryRun bool) (bool, error) {
	data, err := os.ReadFile(path) // #nosec G304 - walking the content tree
	if err != nil {
		return false, err
	}

	fixed := mdx.FixFormat(string(data))
	if fixed == string(data) {
		return false, nil
	}
	if dryRun {
		return true, nil
	}
	if err := os.WriteFile(path, []byte(fixed), 0o644); err != nil { // #nosec G306 - content is public
		return false, err
	}
	return true, nil
}

// toolRoots returns the distinct parent directories of every tool output,
// e.g. content/codex for content/codex/en and content/codex/zh.
func toolRoots(cfg *config.Config) []string {
	var roots []string
	for _, t := range cfg.Tools {
		for _, dir := range []string{t.English, t.Chinese} {
			root := filepath.Dir(filepath.Clean(dir))
			if !slices.Contains(roots, root) {
				roots = append(roots, root)
			}
		}
	}
	return roots
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [dir...]",
		Short: "Check GFM tables in MDX files for column mismatches",
		Long: `Scans every .mdx file under the given directories (default: the
sitemap content directory) and reports tables whose rows do not match
the header's column count. Fenced code is ignored.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := a.load()
			if err != nil {
				return err
			}

			roots := args
			if len(roots) == 0 {
				roots = []string{cfg.Sitemap.ContentDir}
			}

			var (
				scanned int
				issues  []string
			)
			for _, root := range roots {
				files, err := mdx.ListFiles(root, true)
				if err != nil {
					return fmt.Errorf("reading content directory: %w", err)
				}
				for _, file := range files {
					data, err := os.ReadFile(file) // #nosec G304 - walking the content tree
					if err != nil {
						return fmt.Errorf("reading %s: %w", file, err)
					}
					scanned++
					for _, issue := range mdx.CheckTables(string(data)) {
						issues = append(issues, fmt.Sprintf("%s:%s", file, issue))
					}
				}
			}

			if len(issues) > 0 {
				fmt.Fprintln(a.stderr, "MDX table structure check failed:")
				for _, issue := range issues {
					fmt.Fprintf(a.stderr, "- %s\n", issue)
				}
				return fmt.Errorf("%d table issue(s) found", len(issues))
			}

			fmt.Fprintf(a.stdout, "MDX table structure check passed (%d files).\n", scanned)
			return nil
		},
	}
}

func newSitemapCmd(a *app) *cobra.Command {
	var output, siteURL string

	cmd := &cobra.Command{
		Use:   "sitemap",
		Short: "Generate sitemap.xml from the content tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := a.load()
			if err != nil {
				return err
			}
			if output == "" {
				output = cfg.Sitemap.Output
			}
			if siteURL == "" {
				siteURL = cfg.Sitemap.SiteURL
			}

			paths, err := mdx.CollectPaths(cfg.Sitemap.ContentDir, cfg.Sitemap.Boards, cfg.Sitemap.Locales)
			if err != nil {
				return err
			}

			data, err := mdx.BuildSitemap(siteURL, paths, time.Now())
			if err != nil {
				return fmt.Errorf("rendering sitemap: %w", err)
			}

			if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil { // #nosec G306 - sitemap is public
				return err
			}

			logger.Debug("sitemap written", slog.String("path", output), slog.Int("urls", len(paths)))
			fmt.Fprintf(a.stdout, "Generated sitemap with %d URLs at %s\n", len(paths), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: sitemap.output from config)")
	cmd.Flags().StringVar(&siteURL, "site-url", "", "Site base URL (default: sitemap.site_url from config)")

	return cmd
}

func newInitCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Write the default configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultPath
			if len(args) == 1 {
				path = args[0]
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			f, err := os.Create(path) // #nosec G304 - user-specified output
			if err != nil {
				return err
			}
			if err := config.Default().WriteYAML(f); err != nil {
				_ = f.Close()
				return fmt.Errorf("writing %s: %w", path, err)
			}
			if err := f.Close(); err != nil {
				return err
			}

			fmt.Fprintf(a.stdout, "wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	return cmd
}
