package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/ZaguanLabs/mdxlai/mdx"
)

// DefaultPath is the config file read when no path is given.
const DefaultPath = "mdxlai.yaml"

// PathEnv names the environment variable that overrides DefaultPath.
const PathEnv = "MDXLAI_CONFIG"

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
// The file is path, else $MDXLAI_CONFIG, else DefaultPath. A missing
// DefaultPath is not an error; configuration then comes from ENV and
// defaults only.
func Load(path string) (*Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		path = os.Getenv(PathEnv)
		explicit = path != ""
	}
	if !explicit {
		path = DefaultPath
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	cfg.fillLists()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// fillLists applies defaults to the list sections that env-default
// tags cannot express.
func (c *Config) fillLists() {
	if len(c.Tools) == 0 {
		c.Tools = DefaultTools()
	}
	if len(c.Sitemap.Boards) == 0 {
		c.Sitemap.Boards = append([]mdx.Board(nil), mdx.DefaultBoards...)
	}
}
