package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/sirupsen/logrus"
)

// MinContentLength is the shortest extracted posting text trusted from a plain HTTP fetch.
// Anything shorter is probably an unhydrated single-page app.
const MinContentLength = 500

// consentButtons matches the cookie and consent buttons that hide postings on some boards.
const consentButtons = `button[id*="accept"], button[class*="accept"]`

// ShouldUseBrowser reports whether extractedText is too short to be a real posting.
func ShouldUseBrowser(extractedText string) bool {
	return len(strings.TrimSpace(extractedText)) < MinContentLength
}

// BrowserOptions configures headless rendering.
type BrowserOptions struct {
	Timeout time.Duration
	// Settle is how long to wait after the body is ready, for client-side rendering.
	Settle time.Duration
	// ExecPath selects the Chrome binary; empty uses the chromedp lookup.
	ExecPath string
}

// DefaultBrowserOptions returns the options used by BrowserSimple.
func DefaultBrowserOptions() BrowserOptions {
	return BrowserOptions{Timeout: DefaultTimeout, Settle: 3 * time.Second}
}

func (o BrowserOptions) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(DefaultUserAgent),
	)
	if o.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(o.ExecPath))
	}
	return opts
}

// WithBrowser renders url in headless Chrome and returns the resulting HTML.
// Chrome or Chromium must be installed.
func WithBrowser(ctx context.Context, url string, opts BrowserOptions, log logrus.FieldLogger) (string, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	log = log.WithField("url", url)
	log.Debug("starting headless browser")

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts.allocatorOptions()...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, opts.Timeout)
	defer cancelTimeout()

	actions := []chromedp.Action{
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
	}
	if opts.Settle > 0 {
		actions = append(actions, chromedp.Sleep(opts.Settle))
	}

	var html string
	actions = append(actions,
		chromedp.ActionFunc(func(ctx context.Context) error {
			// a missing consent button is the normal case
			_ = chromedp.Click(consentButtons, chromedp.NodeVisible, chromedp.AtLeast(0)).Do(ctx)
			return nil
		}),
		chromedp.OuterHTML("html", &html),
	)

	if err := chromedp.Run(browserCtx, actions...); err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}

	log.WithField("bytes", len(html)).Debug("rendered HTML")
	return html, nil
}

// BrowserSimple is WithBrowser with DefaultBrowserOptions.
func BrowserSimple(ctx context.Context, url string, log logrus.FieldLogger) (string, error) {
	return WithBrowser(ctx, url, DefaultBrowserOptions(), log)
}
