package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/jonathan/job-assistant/internal/assistant"
	"github.com/jonathan/job-assistant/internal/config"
	"github.com/jonathan/job-assistant/internal/discover"
	"github.com/jonathan/job-assistant/internal/fetch"
	"github.com/jonathan/job-assistant/internal/llm"
	"github.com/jonathan/job-assistant/internal/logger"
	"github.com/jonathan/job-assistant/internal/profile"
	"github.com/jonathan/job-assistant/internal/scrape"
)

// app bundles the wired collaborators for one command invocation.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	fetcher *fetch.Fetcher

	closers []func()
}

func loadConfig() (*config.Config, error) {
	cfg := config.FromEnv()
	if configFile != "" {
		fileCfg, err := config.LoadFile(configFile)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg.Merge(cfg)
	}
	if jsonLog {
		cfg.LogJSON = true
	}
	if verbose {
		cfg.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newApp wires config, logger and the fetcher shared by every command.
func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.LogJSON, cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	fetcher := fetch.New(fetch.Options{
		ScraperAPIKey:  cfg.ScraperAPIKey,
		BrowserlessURL: cfg.BrowserlessURL,
		UseBrowser:     cfg.UseBrowser,
		UseStealth:     cfg.UseStealth,
	}, log)

	a := &app{cfg: cfg, log: log, fetcher: fetcher}
	a.closers = append(a.closers, func() { _ = log.Sync() })
	return a, nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func (a *app) scraper() *scrape.Scraper {
	return scrape.New(a.fetcher, a.log)
}

func (a *app) aggregator() *discover.Aggregator {
	adapters := []discover.Adapter{
		discover.NewZipRecruiter(a.fetcher, a.cfg.MaxAgeDays, a.log),
		discover.NewLinkedIn(a.fetcher, a.cfg.MaxAgeDays, a.log),
		discover.NewIndeed(a.fetcher, a.cfg.MaxAgeDays, a.log),
	}
	return discover.NewAggregator(adapters, a.cfg.MaxAgeDays, a.log)
}

// service wires the full assistant. The LLM client requires GEMINI_API_KEY;
// the profile store is attached only when DATABASE_URL is set.
func (a *app) service(ctx context.Context) (*assistant.Service, error) {
	if a.cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}
	client, err := llm.NewGeminiClient(ctx, a.cfg.GeminiAPIKey, a.cfg.Model)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() { _ = client.Close() })

	var profiles profile.Lookup
	if a.cfg.DatabaseURL != "" {
		store, err := profile.Connect(ctx, a.cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, store.Close)
		profiles = store
	}

	return assistant.NewService(a.scraper(), a.aggregator(), client, profiles, a.cfg.Model, a.log), nil
}

// writeJSON emits v as indented JSON to path, or stdout when path is empty.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	if path == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

func readTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
