package fetch

import (
	"context"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// settleDelay gives post-load scripts time to populate the DOM before the
// snapshot. Job boards render listing content well after the load event.
const settleDelay = 3 * time.Second

// stealthScript masks the most common automation tells. Board anti-bot
// checks read navigator.webdriver before serving content.
const stealthScript = `
Object.defineProperty(navigator, 'webdriver', { get: () => undefined });
Object.defineProperty(navigator, 'languages', { get: () => ['en-US', 'en'] });
Object.defineProperty(navigator, 'plugins', { get: () => [1, 2, 3] });
`

// remoteBrowser renders the page through a remote CDP endpoint (Browserless
// or similar) and captures the DOM snapshot.
func (f *Fetcher) remoteBrowser(ctx context.Context, rawURL string, _ bool) (string, error) {
	if f.opts.BrowserlessURL == "" {
		return "", &Error{URL: rawURL, Method: MethodRemote, Message: "no remote browser endpoint configured"}
	}

	allocCtx, cancel := chromedp.NewRemoteAllocator(ctx, f.opts.BrowserlessURL)
	defer cancel()

	html, err := f.render(allocCtx, rawURL)
	if err != nil {
		return "", &Error{URL: rawURL, Method: MethodRemote, Message: "remote rendering failed", Cause: err}
	}
	return html, nil
}

// headlessBrowser renders the page in a local headless Chrome. Requires
// Chrome/Chromium on the host.
func (f *Fetcher) headlessBrowser(ctx context.Context, rawURL string, _ bool) (string, error) {
	if !f.opts.UseBrowser {
		return "", &Error{URL: rawURL, Method: MethodHeadless, Message: "local browser disabled"}
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.Flag("disable-blink-features", "AutomationControlled"),
			chromedp.UserAgent(UserAgent),
		)...,
	)
	defer cancel()

	html, err := f.render(allocCtx, rawURL)
	if err != nil {
		return "", &Error{URL: rawURL, Method: MethodHeadless, Message: "headless rendering failed", Cause: err}
	}
	return html, nil
}

// render runs the shared navigate/settle/capture sequence against an
// allocator context.
func (f *Fetcher) render(allocCtx context.Context, rawURL string) (string, error) {
	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, BrowserTimeout)
	defer cancel()

	actions := []chromedp.Action{
		chromedp.EmulateViewport(1920, 1080),
	}
	if f.opts.UseStealth {
		// Injected before any page script runs, so load-time checks see a
		// patched navigator.
		actions = append(actions, chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(stealthScript).Do(ctx)
			return err
		}))
	}

	var html string
	actions = append(actions,
		chromedp.Navigate(rawURL),
		chromedp.WaitReady("body"),
		chromedp.Sleep(settleDelay),
		chromedp.OuterHTML("html", &html),
	)

	if err := chromedp.Run(browserCtx, actions...); err != nil {
		return "", err
	}
	return html, nil
}
