// Package fetch - browser.go renders the registration page in a headless browser. The course
// grid is built client-side, so a plain GET often returns an empty shell.
package fetch

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// DefaultSettleDelay is how long the page is given to finish rendering after the grid appears.
const DefaultSettleDelay = 2 * time.Second

// ShouldUseBrowser returns true if the fetched HTML has no course grid yet.
func ShouldUseBrowser(html string) bool {
	return !HasCourseGrid(html)
}

// WithBrowser renders a page in a headless browser and returns the rendered HTML.
// Requires Chrome/Chromium to be installed on the system.
func WithBrowser(ctx context.Context, url string, opts *Options, verbose bool) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if verbose {
		log.Printf("[BROWSER] Starting headless browser for: %s", url)
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(userAgent),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	headers := network.Headers{}
	if opts.Cookie != "" {
		headers["Cookie"] = opts.Cookie
	}
	for key, value := range opts.Headers {
		headers[key] = value
	}

	var html string
	err := chromedp.Run(browserCtx,
		network.Enable(),
		network.SetExtraHTTPHeaders(headers),
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.WaitVisible(CourseSelector, chromedp.ByQuery),
		chromedp.Sleep(DefaultSettleDelay),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}

	if verbose {
		log.Printf("[BROWSER] Rendered HTML: %d bytes", len(html))
	}

	return html, nil
}

// Page fetches url over HTTP and, when useBrowser is set and the response has no course grid,
// renders it in a headless browser instead.
func Page(ctx context.Context, url string, opts *Options, useBrowser bool, verbose bool) (string, error) {
	result, err := URL(ctx, url, opts)
	if err != nil {
		if !useBrowser {
			return "", err
		}
		if verbose {
			log.Printf("[VERBOSE] HTTP fetch failed (%v), trying browser", err)
		}
		return WithBrowser(ctx, url, opts, verbose)
	}
	if verbose {
		log.Printf("[VERBOSE] Fetched HTML: %d bytes", len(result.HTML))
	}

	if useBrowser && ShouldUseBrowser(result.HTML) {
		if verbose {
			log.Printf("[VERBOSE] No course grid in response, falling back to browser rendering...")
		}
		return WithBrowser(ctx, url, opts, verbose)
	}
	return result.HTML, nil
}
