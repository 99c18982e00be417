package config

import (
	"fmt"
	"log/slog"
)

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Provider.validate(); err != nil {
		return fmt.Errorf("provider: %w", err)
	}

	if c.Retry.Attempts < 1 {
		return fmt.Errorf("retry.attempts must be >= 1 (got %d)", c.Retry.Attempts)
	}
	if c.Retry.BaseDelay < 0 {
		return fmt.Errorf("retry.base_delay must be >= 0 (got %v)", c.Retry.BaseDelay)
	}

	if c.RateLimit.RequestsPerMinute < 0 {
		return fmt.Errorf("rate_limit.requests_per_minute must be >= 0 (got %d)", c.RateLimit.RequestsPerMinute)
	}

	if err := c.Cache.validate(); err != nil {
		return fmt.Errorf("cache: %w", err)
	}

	if c.Markdown.ChunkSize <= 0 {
		return fmt.Errorf("markdown.chunk_size must be > 0 (got %d)", c.Markdown.ChunkSize)
	}

	if err := validateTools(c.Tools); err != nil {
		return fmt.Errorf("tools: %w", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}

	return nil
}

func (p *ProviderConfig) validate() error {
	switch p.Name {
	case ProviderGoogle:
	case ProviderOpenAI:
		if p.APIKey == "" {
			return fmt.Errorf("openai requires an API key (OPENAI_API_KEY)")
		}
	default:
		return fmt.Errorf("unknown provider %q (want %s or %s)", p.Name, ProviderGoogle, ProviderOpenAI)
	}
	if p.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", p.Timeout)
	}
	return nil
}

func (c *CacheConfig) validate() error {
	switch c.Backend {
	case CacheMemory:
	case CacheFile:
		if c.Path == "" {
			return fmt.Errorf("file backend requires a path")
		}
	case CacheRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("redis backend requires redis_url")
		}
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	if c.TTL < 0 {
		return fmt.Errorf("ttl must be >= 0 (got %v)", c.TTL)
	}
	return nil
}

func validateTools(tools []ToolConfig) error {
	seen := make(map[string]bool, len(tools))
	for i, t := range tools {
		if t.Name == "" {
			return fmt.Errorf("[%d]: name is required", i)
		}
		if seen[t.Name] {
			return fmt.Errorf("%s: duplicate name", t.Name)
		}
		seen[t.Name] = true

		if t.Source == "" || t.English == "" || t.Chinese == "" {
			return fmt.Errorf("%s: source, english and chinese dirs are required", t.Name)
		}
	}
	return nil
}
