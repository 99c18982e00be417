// Package config loads the mdxlai run configuration from a YAML file and
// environment variables.
package config

import (
	"io"
	"log/slog"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ZaguanLabs/mdxlai"
	"github.com/ZaguanLabs/mdxlai/mdx"
	"github.com/ZaguanLabs/mdxlai/pipeline"
)

// Provider names.
const (
	ProviderGoogle = "google"
	ProviderOpenAI = "openai"
)

// Cache backends.
const (
	CacheFile   = "file"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config is the root configuration.
type Config struct {
	Provider  ProviderConfig  `yaml:"provider"`
	Retry     RetryConfig     `yaml:"retry"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Cache     CacheConfig     `yaml:"cache"`
	Markdown  MarkdownConfig  `yaml:"markdown"`
	Tools     []ToolConfig    `yaml:"tools"`
	Sitemap   SitemapConfig   `yaml:"sitemap"`
	Log       LogConfig       `yaml:"log"`
}

// ProviderConfig selects and configures the translation backend.
type ProviderConfig struct {
	Name        string        `yaml:"name"                  env:"MDXLAI_PROVIDER"    env-default:"google"`
	APIKey      string        `yaml:"api_key,omitempty"     env:"OPENAI_API_KEY"`
	Model       string        `yaml:"model"                 env:"MDXLAI_MODEL"       env-default:"gpt-4o-mini"`
	Temperature float32       `yaml:"temperature"           env:"MDXLAI_TEMPERATURE" env-default:"0.3"`
	BaseURL     string        `yaml:"base_url,omitempty"    env:"MDXLAI_BASE_URL"`
	Endpoint    string        `yaml:"endpoint,omitempty"    env:"MDXLAI_GOOGLE_ENDPOINT"`
	Timeout     time.Duration `yaml:"timeout"               env:"MDXLAI_TIMEOUT"     env-default:"20s"`
}

// RetryConfig holds the per-request retry policy.
type RetryConfig struct {
	Attempts  int           `yaml:"attempts"   env:"MDXLAI_RETRY_ATTEMPTS"   env-default:"4"`
	BaseDelay time.Duration `yaml:"base_delay" env:"MDXLAI_RETRY_BASE_DELAY" env-default:"700ms"`
	MaxDelay  time.Duration `yaml:"max_delay"  env:"MDXLAI_RETRY_MAX_DELAY"  env-default:"10s"`
}

// RateLimitConfig paces provider calls. Zero requests per minute disables it.
type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute" env:"MDXLAI_RATE_LIMIT" env-default:"0"`
	Burst             int `yaml:"burst"               env:"MDXLAI_RATE_BURST" env-default:"1"`
}

// CacheConfig selects the translation store.
type CacheConfig struct {
	Backend   string        `yaml:"backend"    env:"MDXLAI_CACHE"            env-default:"file"`
	Path      string        `yaml:"path"       env:"MDXLAI_CACHE_PATH"       env-default:"scripts/.translation_cache.json"`
	RedisURL  string        `yaml:"redis_url"  env:"MDXLAI_REDIS_URL"        env-default:"redis://localhost:6379"`
	KeyPrefix string        `yaml:"key_prefix" env:"MDXLAI_REDIS_KEY_PREFIX" env-default:"mdxlai:"`
	TTL       time.Duration `yaml:"ttl"        env:"MDXLAI_CACHE_TTL"        env-default:"0s"`
}

// MarkdownConfig tunes body translation.
type MarkdownConfig struct {
	ChunkSize  int      `yaml:"chunk_size"  env:"MDXLAI_CHUNK_SIZE"  env-default:"800"`
	BrandTerms []string `yaml:"brand_terms" env:"MDXLAI_BRAND_TERMS" env-default:"Codex,Gemini,OpenAI"`
}

// ToolConfig is one documentation set to migrate.
type ToolConfig struct {
	Name              string   `yaml:"name"`
	Source            string   `yaml:"source"`
	English           string   `yaml:"english"`
	Chinese           string   `yaml:"chinese"`
	ItalicizeCaptions bool     `yaml:"italicize_captions"`
	CaptionMarkers    []string `yaml:"caption_markers,omitempty"`
}

// SitemapConfig drives the sitemap command.
type SitemapConfig struct {
	SiteURL    string      `yaml:"site_url"    env:"MDXLAI_SITE_URL"    env-default:"https://www.aicodinghub.dev"`
	ContentDir string      `yaml:"content_dir" env:"MDXLAI_CONTENT_DIR" env-default:"content"`
	Output     string      `yaml:"output"      env:"MDXLAI_SITEMAP"     env-default:"public/sitemap.xml"`
	Locales    []string    `yaml:"locales"     env:"MDXLAI_LOCALES"     env-default:"zh,en"`
	Boards     []mdx.Board `yaml:"boards"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

// DefaultTools are the documentation sets migrated when none are configured.
func DefaultTools() []ToolConfig {
	return []ToolConfig{
		{
			Name:    "gemini-cli",
			Source:  "Reference Document/Gemini Cli",
			English: "content/gemini-cli/en",
			Chinese: "content/gemini-cli/zh",
		},
		{
			Name:              "codex",
			Source:            "Reference Document/Codex",
			English:           "content/codex/en",
			Chinese:           "content/codex/zh",
			ItalicizeCaptions: true,
		},
	}
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	return &Config{
		Provider: ProviderConfig{
			Name:        ProviderGoogle,
			Model:       "gpt-4o-mini",
			Temperature: 0.3,
			Timeout:     20 * time.Second,
		},
		Retry: RetryConfig{
			Attempts:  4,
			BaseDelay: 700 * time.Millisecond,
			MaxDelay:  10 * time.Second,
		},
		RateLimit: RateLimitConfig{Burst: 1},
		Cache: CacheConfig{
			Backend:   CacheFile,
			Path:      "scripts/.translation_cache.json",
			RedisURL:  "redis://localhost:6379",
			KeyPrefix: "mdxlai:",
		},
		Markdown: MarkdownConfig{
			ChunkSize:  800,
			BrandTerms: append([]string(nil), mdxlai.DefaultBrandTerms...),
		},
		Tools: DefaultTools(),
		Sitemap: SitemapConfig{
			SiteURL:    mdx.DefaultSiteURL,
			ContentDir: "content",
			Output:     "public/sitemap.xml",
			Locales:    append([]string(nil), mdx.DefaultLocales...),
			Boards:     append([]mdx.Board(nil), mdx.DefaultBoards...),
		},
		Log: LogConfig{Level: "info"},
	}
}

// WriteYAML encodes c as a YAML document. The API key is never written.
func (c *Config) WriteYAML(w io.Writer) error {
	out := *c
	out.Provider.APIKey = ""

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&out); err != nil {
		return err
	}
	return enc.Close()
}

// RetryPolicy converts the retry settings for the translator.
func (c *Config) RetryPolicy() mdxlai.RetryConfig {
	return mdxlai.RetryConfig{
		MaxAttempts: c.Retry.Attempts,
		BaseDelay:   c.Retry.BaseDelay,
		MaxDelay:    c.Retry.MaxDelay,
	}
}

// PipelineTools converts the tool list for the pipeline. Caption
// italics without explicit markers use the Codex markers.
func (c *Config) PipelineTools() []pipeline.Tool {
	tools := make([]pipeline.Tool, 0, len(c.Tools))
	for _, t := range c.Tools {
		tool := pipeline.Tool{
			Name:       t.Name,
			SourceDir:  t.Source,
			EnglishDir: t.English,
			ChineseDir: t.Chinese,
		}
		if t.ItalicizeCaptions {
			tool.CaptionMarkers = t.CaptionMarkers
			if len(tool.CaptionMarkers) == 0 {
				tool.CaptionMarkers = mdx.CodexCaptionMarkers
			}
		}
		tools = append(tools, tool)
	}
	return tools
}

// SlogLevel returns the configured level, defaulting to info.
func (l LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}
