// Package config loads extractor settings from defaults, an optional YAML file,
// a .env file and environment variables, in that order of precedence (last wins).
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL   = "https://sisgvarmazenamento.blob.core.windows.net/prd/PublicacaoPortal/Arquivos"
	DefaultOutputDir = "resultados"
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "camara-gastos/1.0 (github.com/pfrederiksen/camara-gastos)"
)

type Config struct {
	// Portal
	BaseURL   string        `yaml:"base_url"`
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`

	// Output
	OutputDir string `yaml:"output_dir"`
	WriteXLSX bool   `yaml:"xlsx"`

	// Ledger database; empty disables it
	LedgerPath string `yaml:"ledger_path"`

	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		BaseURL:   DefaultBaseURL,
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
		OutputDir: DefaultOutputDir,
		WriteXLSX: true,
		LogLevel:  "info",
	}
}

// Load builds the configuration. path names an optional YAML file; an empty path
// skips it. A .env file in the working directory is loaded if present.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	// Missing .env is not an error
	_ = godotenv.Load()

	cfg.BaseURL = getEnv("GASTOS_BASE_URL", cfg.BaseURL)
	cfg.OutputDir = getEnv("GASTOS_OUTPUT_DIR", cfg.OutputDir)
	cfg.UserAgent = getEnv("GASTOS_USER_AGENT", cfg.UserAgent)
	cfg.LedgerPath = getEnv("GASTOS_LEDGER_PATH", cfg.LedgerPath)
	cfg.LogLevel = getEnv("GASTOS_LOG_LEVEL", cfg.LogLevel)

	var err error
	if cfg.Timeout, err = getEnvDuration("GASTOS_TIMEOUT", cfg.Timeout); err != nil {
		return nil, err
	}
	if cfg.WriteXLSX, err = getEnvBool("GASTOS_XLSX", cfg.WriteXLSX); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if u, err := url.Parse(c.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errors = append(errors, fmt.Sprintf("invalid base URL '%s': must be an http(s) URL", c.BaseURL))
	}

	if c.Timeout <= 0 {
		errors = append(errors, fmt.Sprintf("invalid timeout %s: must be positive", c.Timeout))
	}

	if strings.TrimSpace(c.OutputDir) == "" {
		errors = append(errors, "output directory must not be empty")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}
	return nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d, nil
	}
	// bare numbers are seconds
	secs, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s '%s': %w", key, v, err)
	}
	return time.Duration(secs) * time.Second, nil
}

func getEnvBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s '%s': %w", key, v, err)
	}
	return b, nil
}
