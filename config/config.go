// Package config loads rfpdraft settings from a YAML file, a .env file and
// RFPDRAFT_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gaurav-prasanna/rfpdraft/core"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no --config flag is given. A missing file is fine.
const DefaultPath = "rfpdraft.yaml"

type Config struct {
	API struct {
		BaseURL   string        `yaml:"base_url"`
		Endpoint  string        `yaml:"endpoint"`
		Timeout   time.Duration `yaml:"timeout"`
		UserAgent string        `yaml:"user_agent"`
	} `yaml:"api"`
	Server struct {
		Addr           string   `yaml:"addr"`
		MaxUploadMB    int      `yaml:"max_upload_mb"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`
	Style core.DocumentStyle `yaml:"style"`
	Log   struct {
		Mode string `yaml:"mode"`
	} `yaml:"log"`
}

// Default returns the built-in configuration.
func Default() *Config {
	var cfg Config
	cfg.API.BaseURL = "https://rfp-me-backend.onrender.com"
	cfg.API.Endpoint = "/process_rfp"
	cfg.API.Timeout = 120 * time.Second
	cfg.Server.Addr = ":8080"
	cfg.Server.MaxUploadMB = 10
	cfg.Server.AllowedOrigins = []string{"*"}
	cfg.Style = core.DefaultStyle()
	cfg.Log.Mode = "development"
	return &cfg
}

// Load reads path over the defaults, then applies environment overrides.
// An empty path or a missing file leaves the defaults in place.
func Load(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := Default()

	// 2. Load YAML config
	if path != "" {
		file, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal(file, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	// 3. Override with Environment Variables if present
	if v := os.Getenv("RFPDRAFT_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("RFPDRAFT_API_ENDPOINT"); v != "" {
		cfg.API.Endpoint = v
	}
	if v := os.Getenv("RFPDRAFT_API_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("RFPDRAFT_API_TIMEOUT: %w", err)
		}
		cfg.API.Timeout = d
	}
	if v := os.Getenv("RFPDRAFT_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("RFPDRAFT_MAX_UPLOAD_MB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("RFPDRAFT_MAX_UPLOAD_MB: %w", err)
		}
		cfg.Server.MaxUploadMB = n
	}
	if v := os.Getenv("RFPDRAFT_LOG_MODE"); v != "" {
		cfg.Log.Mode = v
	}

	cfg.Style = cfg.Style.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	parsed, err := url.Parse(c.API.BaseURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return fmt.Errorf("invalid api.base_url: %q (must include http(s) scheme and host)", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout)
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("server.max_upload_mb must be positive, got %d", c.Server.MaxUploadMB)
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		return fmt.Errorf("server.addr is required")
	}
	return nil
}

// MaxUploadBytes is the upload size limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Server.MaxUploadMB) << 20
}
