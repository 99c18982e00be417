package mdx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// DefaultSiteURL is the public docs site.
const DefaultSiteURL = "https://www.aicodinghub.dev"

// Board maps a content directory to its route under /docs.
type Board struct {
	Dir   string `yaml:"dir"`
	Route string `yaml:"route"`
}

// DefaultBoards lists the documentation boards of the site.
var DefaultBoards = []Board{
	{Dir: "claude-code", Route: "claude"},
	{Dir: "gemini-cli", Route: "gemini"},
	{Dir: "opencode", Route: "opencode"},
	{Dir: "codex", Route: "codex"},
	{Dir: "playbook", Route: "playbook"},
}

// DefaultLocales are the locale subdirectories scanned for documents.
var DefaultLocales = []string{"zh", "en"}

// StaticPaths are always present in the sitemap.
var StaticPaths = []string{"/", "/privacy", "/terms"}

// CollectPaths returns the sorted, de-duplicated site paths for every
// document under contentDir/<board>/<locale>. A document's slug comes from
// its frontmatter, or from its file name when absent.
func CollectPaths(contentDir string, boards []Board, locales []string) ([]string, error) {
	seen := make(map[string]struct{})
	for _, p := range StaticPaths {
		seen[p] = struct{}{}
	}

	for _, board := range boards {
		for _, locale := range locales {
			files, err := ListFiles(filepath.Join(contentDir, board.Dir, locale), false)
			if err != nil {
				return nil, err
			}
			for _, file := range files {
				data, err := os.ReadFile(file) // #nosec G304 - walking the content tree
				if err != nil {
					return nil, fmt.Errorf("reading %s: %w", file, err)
				}
				slug := strings.TrimSpace(Parse(string(data)).Frontmatter[KeySlug])
				if slug == "" {
					slug = FileSlug(file)
				}
				seen["/docs/"+board.Route+"/"+slug] = struct{}{}
			}
		}
	}

	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, nil
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// BuildSitemap renders paths as a sitemap.org urlset. The root is daily,
// articles under /docs/<board>/ weekly and everything else monthly.
func BuildSitemap(siteURL string, paths []string, now time.Time) ([]byte, error) {
	siteURL = strings.TrimSuffix(siteURL, "/")
	lastMod := now.UTC().Format(time.RFC3339)

	set := urlSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, p := range paths {
		freq, priority := "monthly", "0.6"
		switch {
		case p == "/":
			freq, priority = "daily", "1.0"
		case strings.HasPrefix(p, "/docs/") && len(strings.Split(p, "/")) >= 4:
			freq, priority = "weekly", "0.9"
		}
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        siteURL + p,
			LastMod:    lastMod,
			ChangeFreq: freq,
			Priority:   priority,
		})
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return nil, fmt.Errorf("encoding sitemap: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
