// Package scrape resolves a job posting URL into description text by driving
// the fetch strategy chain and the extractor, with site-aware ordering.
package scrape

import (
	"context"

	"go.uber.org/zap"

	"github.com/jonathan/job-assistant/internal/extract"
	"github.com/jonathan/job-assistant/internal/fetch"
)

// minDescriptionLength is the shortest extracted text accepted as a real job
// description. Shorter extractions are usually cookie banners or nav residue.
const minDescriptionLength = 200

// Result is the terminal value of a scrape call. Not mutated after creation.
type Result struct {
	Success bool         `json:"success"`
	Text    string       `json:"text,omitempty"`
	Method  fetch.Method `json:"method,omitempty"`
	Error   string       `json:"error,omitempty"`
	URL     string       `json:"url"`
}

// failureRemedy names the missing configuration so the caller can surface an
// actionable message to an end user.
const failureRemedy = "Could not extract job description. Ensure BROWSERLESS_URL is set " +
	"(wss://chrome.browserless.io?token=YOUR_TOKEN) or SCRAPER_API_KEY is configured, " +
	"or paste the job description manually."

// Scraper composes the fetcher and extractor.
type Scraper struct {
	fetcher *fetch.Fetcher
	log     *zap.Logger
}

// New creates a Scraper. A nil logger disables logging.
func New(fetcher *fetch.Fetcher, log *zap.Logger) *Scraper {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scraper{fetcher: fetcher, log: log}
}

// Scrape fetches and extracts a job description. Sites known to require
// JavaScript are rendered first, with direct HTTP as a last resort (which
// typically hits an auth wall and fails cleanly); other sites try the cheap
// direct fetch first.
func (s *Scraper) Scrape(ctx context.Context, url string) Result {
	site := extract.DetectSite(url)
	needsJS := extract.RequiresJS(site)
	s.log.Info("scraping job posting",
		zap.String("url", url),
		zap.String("site", string(site)),
		zap.Bool("needs_js", needsJS))

	var chain []fetch.Strategy
	if needsJS {
		chain = append(s.fetcher.RenderChain(), s.fetcher.DirectStrategy())
	} else {
		chain = append([]fetch.Strategy{s.fetcher.DirectStrategy()}, s.fetcher.RenderChain()...)
	}

	for _, strategy := range chain {
		// Rendering strategies always ask for JavaScript execution, even when
		// the site does not require it; only the direct fetch stays plain.
		text, ok := s.attempt(ctx, strategy, url, renderFlag(strategy.Method, needsJS))
		if ok {
			s.log.Info("scrape succeeded",
				zap.String("method", string(strategy.Method)),
				zap.Int("chars", len(text)))
			return Result{Success: true, Text: text, Method: strategy.Method, URL: url}
		}
	}

	return Result{Success: false, Error: failureRemedy, URL: url}
}

// renderFlag reports whether a strategy should request JavaScript rendering.
func renderFlag(method fetch.Method, needsJS bool) bool {
	return needsJS || method != fetch.MethodDirect
}

// attempt runs one strategy and extracts from its markup. Extraction
// failures (auth wall, empty content, short text) are logged and treated as
// strategy failure so the chain falls through.
func (s *Scraper) attempt(ctx context.Context, strategy fetch.Strategy, url string, renderJS bool) (string, bool) {
	markup, method := s.fetcher.Run(ctx, []fetch.Strategy{strategy}, url, renderJS)
	if markup == "" {
		return "", false
	}

	text, err := extract.Content(markup, url)
	if err != nil {
		s.log.Warn("extraction failed",
			zap.String("method", string(method)),
			zap.String("url", url),
			zap.Error(err))
		return "", false
	}
	if len(text) < minDescriptionLength {
		s.log.Debug("extracted text too short",
			zap.String("method", string(method)),
			zap.Int("chars", len(text)))
		return "", false
	}
	return text, true
}
