// Package config provides configuration loading for the job assistant.
// Values come from the environment (optionally seeded by a .env file loaded
// in main) and may be overridden by a JSON config file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Defaults.
const (
	DefaultModel         = "gemini-1.5-flash"
	DefaultMaxAgeDays    = 30
	DefaultMaxCandidates = 20
	DefaultMaxRanked     = 15
)

// Config holds everything the composition root needs to wire the service.
// Credential fields are optional: their absence removes the corresponding
// fetch strategy or collaborator instead of causing an error.
type Config struct {
	// LLM
	GeminiAPIKey string `json:"gemini_api_key,omitempty"` // GEMINI_API_KEY
	Model        string `json:"model,omitempty"`          // GEMINI_MODEL

	// Fetching
	ScraperAPIKey  string `json:"scraper_api_key,omitempty"` // SCRAPER_API_KEY (rendering proxy)
	BrowserlessURL string `json:"browserless_url,omitempty"` // BROWSERLESS_URL (remote CDP websocket)
	UseBrowser     bool   `json:"use_browser,omitempty"`     // USE_BROWSER (local headless Chrome)
	UseStealth     bool   `json:"use_stealth,omitempty"`     // USE_STEALTH (anti-detection patch)

	// Profile lookup
	DatabaseURL string `json:"database_url,omitempty"` // DATABASE_URL

	// Discovery
	MaxAgeDays int `json:"max_age_days,omitempty"` // MAX_AGE_DAYS (recency cutoff)

	// Logging
	LogJSON bool `json:"log_json,omitempty"` // LOG_JSON
	Verbose bool `json:"verbose,omitempty"`  // VERBOSE
}

// FromEnv builds a Config from environment variables.
func FromEnv() *Config {
	return &Config{
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		Model:          envOr("GEMINI_MODEL", DefaultModel),
		ScraperAPIKey:  os.Getenv("SCRAPER_API_KEY"),
		BrowserlessURL: os.Getenv("BROWSERLESS_URL"),
		UseBrowser:     envBool("USE_BROWSER", true),
		UseStealth:     envBool("USE_STEALTH", true),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		MaxAgeDays:     envInt("MAX_AGE_DAYS", DefaultMaxAgeDays),
		LogJSON:        envBool("LOG_JSON", false),
		Verbose:        envBool("VERBOSE", false),
	}
}

// LoadFile reads a JSON config file. A missing path is the caller's decision,
// not an error here.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

// Merge returns a copy of c with empty fields filled from defaults.
// File values win over environment values when both are set.
func (c *Config) Merge(defaults *Config) *Config {
	result := *c
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.ScraperAPIKey == "" {
		result.ScraperAPIKey = defaults.ScraperAPIKey
	}
	if result.BrowserlessURL == "" {
		result.BrowserlessURL = defaults.BrowserlessURL
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.MaxAgeDays == 0 {
		result.MaxAgeDays = defaults.MaxAgeDays
	}
	result.UseBrowser = result.UseBrowser || defaults.UseBrowser
	result.UseStealth = result.UseStealth || defaults.UseStealth
	result.LogJSON = result.LogJSON || defaults.LogJSON
	result.Verbose = result.Verbose || defaults.Verbose
	return &result
}

// Validate checks value ranges. Missing credentials are not validation
// failures; workflows degrade per strategy availability.
func (c *Config) Validate() error {
	if c.MaxAgeDays < 0 {
		return fmt.Errorf("config error: 'max_age_days' must be non-negative")
	}
	if c.Model == "" {
		return fmt.Errorf("config error: 'model' must not be empty")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
