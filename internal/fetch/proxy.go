package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// proxyBase is the ScraperAPI-compatible rendering proxy endpoint. The proxy
// fetches the target URL on our behalf, which sidesteps bot blocking, and
// renders JavaScript when the render flag is forwarded.
const proxyBase = "http://api.scraperapi.com"

func (f *Fetcher) proxy(ctx context.Context, rawURL string, renderJS bool) (string, error) {
	if f.opts.ScraperAPIKey == "" {
		return "", &Error{URL: rawURL, Method: MethodProxy, Message: "no proxy API key configured"}
	}

	base := f.opts.ProxyURL
	if base == "" {
		base = proxyBase
	}

	q := url.Values{}
	q.Set("api_key", f.opts.ScraperAPIKey)
	q.Set("url", rawURL)
	if renderJS {
		q.Set("render", "true")
	}
	apiURL := base + "?" + q.Encode()

	ctx, cancel := context.WithTimeout(ctx, ProxyTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return "", &Error{URL: rawURL, Method: MethodProxy, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &Error{URL: rawURL, Method: MethodProxy, Message: "proxy request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{URL: rawURL, Method: MethodProxy, Message: "failed to read proxy response", Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &Error{URL: rawURL, Method: MethodProxy, Message: fmt.Sprintf("proxy HTTP status %d", resp.StatusCode)}
	}
	return string(body), nil
}
