// Package fetch acquires raw page markup for a URL using an ordered chain of
// strategies: paid rendering proxy, remote browser, local headless browser,
// and direct HTTP. Fetch failures are expected and recoverable; the chain
// returns empty markup instead of an error so callers can fall through.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Method identifies which acquisition strategy produced the markup.
type Method string

const (
	MethodDirect   Method = "direct"
	MethodHeadless Method = "headless"
	MethodRemote   Method = "remote"
	MethodProxy    Method = "proxy"
)

// Per-strategy timeouts. Rendering needs far more headroom than a plain GET.
const (
	DirectTimeout  = 15 * time.Second
	BrowserTimeout = 45 * time.Second
	ProxyTimeout   = 60 * time.Second
)

// UserAgent is a browser-like user agent; bare Go UAs are blocked by most
// job boards.
const UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// Error describes a single-strategy fetch failure.
type Error struct {
	URL     string
	Method  Method
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch(%s) error for %s: %s: %v", e.Method, e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch(%s) error for %s: %s", e.Method, e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Strategy is one acquisition method. Run returns the raw markup or an error;
// empty markup with a nil error also counts as failure for chain purposes.
type Strategy struct {
	Method Method
	Run    func(ctx context.Context, rawURL string, renderJS bool) (string, error)
}

// Options configures a Fetcher. Empty credential fields remove the
// corresponding strategy from the chain.
type Options struct {
	ScraperAPIKey  string
	ProxyURL       string // override for the rendering proxy endpoint; empty uses ScraperAPI
	BrowserlessURL string
	UseBrowser     bool // allow local headless Chrome
	UseStealth     bool
}

// Fetcher selects and runs acquisition strategies. The embedded http.Client
// is shared across calls for connection pooling and is safe for concurrent
// use.
type Fetcher struct {
	opts   Options
	client *http.Client
	log    *zap.Logger
}

// New creates a Fetcher. A nil logger disables logging.
func New(opts Options, log *zap.Logger) *Fetcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Fetcher{
		opts:   opts,
		client: &http.Client{Timeout: ProxyTimeout},
		log:    log,
	}
}

// Chain returns the strategy order for a generic fetch: proxy when a key is
// configured, then remote browser, then local headless, then direct HTTP.
// The policy is data, so tests can exercise each step in isolation.
func (f *Fetcher) Chain() []Strategy {
	var chain []Strategy
	if f.opts.ScraperAPIKey != "" {
		chain = append(chain, Strategy{Method: MethodProxy, Run: f.proxy})
	}
	if f.opts.BrowserlessURL != "" {
		chain = append(chain, Strategy{Method: MethodRemote, Run: f.remoteBrowser})
	} else if f.opts.UseBrowser {
		chain = append(chain, Strategy{Method: MethodHeadless, Run: f.headlessBrowser})
	}
	chain = append(chain, Strategy{Method: MethodDirect, Run: f.direct})
	return chain
}

// RenderChain returns only the strategies capable of executing JavaScript,
// in preference order.
func (f *Fetcher) RenderChain() []Strategy {
	var chain []Strategy
	if f.opts.ScraperAPIKey != "" {
		chain = append(chain, Strategy{Method: MethodProxy, Run: f.proxy})
	}
	if f.opts.BrowserlessURL != "" {
		chain = append(chain, Strategy{Method: MethodRemote, Run: f.remoteBrowser})
	} else if f.opts.UseBrowser {
		chain = append(chain, Strategy{Method: MethodHeadless, Run: f.headlessBrowser})
	}
	return chain
}

// DirectStrategy returns the plain-HTTP strategy on its own.
func (f *Fetcher) DirectStrategy() Strategy {
	return Strategy{Method: MethodDirect, Run: f.direct}
}

// Fetch runs the generic chain until one strategy yields non-empty markup.
// Returns the markup and the method that produced it, or ("", "") when every
// strategy is exhausted. It never returns an error: acquisition failures are
// recoverable by the caller.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, renderJS bool) (string, Method) {
	return f.Run(ctx, f.Chain(), rawURL, renderJS)
}

// Run iterates an explicit strategy list, logging a warning per failure.
func (f *Fetcher) Run(ctx context.Context, chain []Strategy, rawURL string, renderJS bool) (string, Method) {
	for _, s := range chain {
		markup, err := s.Run(ctx, rawURL, renderJS)
		if err != nil {
			f.log.Warn("fetch strategy failed",
				zap.String("method", string(s.Method)),
				zap.String("url", truncateURL(rawURL)),
				zap.Error(err))
			continue
		}
		if markup == "" {
			f.log.Debug("fetch strategy returned empty markup",
				zap.String("method", string(s.Method)),
				zap.String("url", truncateURL(rawURL)))
			continue
		}
		return markup, s.Method
	}
	return "", ""
}

// direct issues a plain GET with browser-like headers.
func (f *Fetcher) direct(ctx context.Context, rawURL string, _ bool) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", &Error{URL: rawURL, Method: MethodDirect, Message: "invalid URL", Cause: err}
	}

	ctx, cancel := context.WithTimeout(ctx, DirectTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", &Error{URL: rawURL, Method: MethodDirect, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &Error{URL: rawURL, Method: MethodDirect, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{URL: rawURL, Method: MethodDirect, Message: "failed to read response body", Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &Error{URL: rawURL, Method: MethodDirect, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}
	return string(body), nil
}

func truncateURL(u string) string {
	const max = 80
	if len(u) <= max {
		return u
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(u[cut]) {
		cut--
	}
	return u[:cut]
}
