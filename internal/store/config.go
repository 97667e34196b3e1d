package store

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		ListenAddr      string        `yaml:"listen_addr"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		RequestTimeout  time.Duration `yaml:"request_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
		CacheControl    string        `yaml:"cache_control"`
	} `yaml:"server"`
	Dataset struct {
		UseLocal  bool          `yaml:"use_local"`
		LocalPath string        `yaml:"local_path"`
		RemoteURL string        `yaml:"remote_url"`
		CacheTTL  time.Duration `yaml:"cache_ttl"`
	} `yaml:"dataset"`
	Search struct {
		FuzzyLimit      int    `yaml:"fuzzy_limit"`
		SuggestionLimit int    `yaml:"suggestion_limit"`
		CompanyIndexURL string `yaml:"company_index_url"`
	} `yaml:"search"`
	HTTP struct {
		Timeout     time.Duration `yaml:"timeout"`
		MaxAttempts int           `yaml:"max_attempts"`
		InitialWait time.Duration `yaml:"initial_wait"`
		MaxWait     time.Duration `yaml:"max_wait"`
		LogRequests bool          `yaml:"log_requests"`
	} `yaml:"http"`
	Report struct {
		OutputDir string `yaml:"output_dir"`
		Format    string `yaml:"format"`
	} `yaml:"report"`
}

// DefaultConfig returns a config with every default filled in.
func DefaultConfig() *Config {
	var c Config
	c.applyDefaults()
	return &c
}

func (c *Config) applyDefaults() {
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = ":8080"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 60 * time.Second
	}
	if c.Server.RequestTimeout == 0 {
		c.Server.RequestTimeout = 30 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Server.CacheControl == "" {
		c.Server.CacheControl = "public, max-age=604800, s-maxage=604800, immutable"
	}

	if c.Dataset.LocalPath == "" {
		c.Dataset.LocalPath = "data/financial-database.json"
	}
	if c.Dataset.CacheTTL == 0 {
		c.Dataset.CacheTTL = 30 * time.Minute
	}

	if c.Search.FuzzyLimit == 0 {
		c.Search.FuzzyLimit = 5
	}
	if c.Search.SuggestionLimit == 0 {
		c.Search.SuggestionLimit = 10
	}

	if c.HTTP.Timeout == 0 {
		c.HTTP.Timeout = 30 * time.Second
	}
	if c.HTTP.MaxAttempts == 0 {
		c.HTTP.MaxAttempts = 3
	}
	if c.HTTP.InitialWait == 0 {
		c.HTTP.InitialWait = time.Second
	}
	if c.HTTP.MaxWait == 0 {
		c.HTTP.MaxWait = 5 * time.Second
	}

	if c.Report.OutputDir == "" {
		c.Report.OutputDir = "reports"
	}
	if c.Report.Format == "" {
		c.Report.Format = "text"
	}
}

// ApplyEnv overrides config values from the deployment environment.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("USE_LOCAL_DATABASE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Dataset.UseLocal = b
		}
	}
	if v := os.Getenv("FINANCIAL_DATABASE_URL"); v != "" {
		c.Dataset.RemoteURL = v
	}
	if v := os.Getenv("COMPANY_INDEX_URL"); v != "" {
		c.Search.CompanyIndexURL = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.Server.ListenAddr = v
	}
}

func (c *Config) Validate() error {
	if !c.Dataset.UseLocal && c.Dataset.RemoteURL == "" {
		return errors.New("dataset.remote_url is required unless dataset.use_local is true")
	}
	if c.Dataset.UseLocal && c.Dataset.LocalPath == "" {
		return errors.New("dataset.local_path cannot be empty when dataset.use_local is true")
	}
	if c.Dataset.CacheTTL < 0 {
		return fmt.Errorf("dataset.cache_ttl must not be negative, got %s", c.Dataset.CacheTTL)
	}
	if c.Search.FuzzyLimit < 1 {
		return fmt.Errorf("search.fuzzy_limit must be at least 1, got %d", c.Search.FuzzyLimit)
	}
	if c.HTTP.MaxAttempts < 1 {
		return fmt.Errorf("http.max_attempts must be at least 1, got %d", c.HTTP.MaxAttempts)
	}
	switch c.Report.Format {
	case "text", "json", "csv":
	default:
		return fmt.Errorf("report.format must be 'text', 'json', or 'csv', got '%s'", c.Report.Format)
	}
	return nil
}

// LoadConfig reads path, applies defaults and environment overrides, and
// validates the result. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	var c Config
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	c.applyDefaults()
	c.ApplyEnv()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}
