package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/Smarter-Poker/tournament-scraper/app/fetch"
)

// Challenge pages are served instead of content when the target's anti-bot
// layer flags the browser. Retrying an active challenge is futile.
var challengeMarkers = []string{
	"Just a moment",
	"cf-error",
	"cf-challenge",
	"Checking your browser",
}

var chromePaths = []string{
	"/usr/bin/google-chrome",
	"/usr/bin/google-chrome-stable",
	"/usr/bin/chromium-browser",
	"/usr/bin/chromium",
}

// Driver drives a headless browser for targets that render their schedule
// client-side or sit behind Cloudflare. One browser process serves the whole
// run; each venue gets a fresh tab so cookies and state never leak between
// venues.
type Driver struct {
	allocCtx      context.Context
	cancelAlloc   context.CancelFunc
	browserCtx    context.Context
	cancelBrowser context.CancelFunc
	settleDelay   time.Duration
}

type Options struct {
	UserAgent   string
	ChromePath  string
	Headless    bool
	SettleDelay time.Duration
}

func NewDriver(ctx context.Context, opts Options) (*Driver, error) {
	execPath := opts.ChromePath
	if execPath == "" {
		execPath = detectChrome()
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(opts.UserAgent),
	)
	if execPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(execPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	// Launch the browser process eagerly so a broken Chrome install fails the
	// run up front instead of on the first venue.
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	slog.Info("Browser ready", "exec_path", execPath, "headless", opts.Headless)

	return &Driver{
		allocCtx:      allocCtx,
		cancelAlloc:   cancelAlloc,
		browserCtx:    browserCtx,
		cancelBrowser: cancelBrowser,
		settleDelay:   opts.SettleDelay,
	}, nil
}

func (d *Driver) Close() {
	d.cancelBrowser()
	d.cancelAlloc()
}

// FetchHTML navigates a fresh tab to the URL, waits for the page to settle
// and returns the rendered markup. The tab is closed on every path.
func (d *Driver) FetchHTML(ctx context.Context, url string, timeout time.Duration) (string, error) {
	tabCtx, closeTab := chromedp.NewContext(d.browserCtx)
	defer closeTab()

	runCtx, cancel := context.WithTimeout(tabCtx, timeout)
	defer cancel()

	// Honor caller cancellation alongside the navigation timeout.
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-runCtx.Done():
		}
	}()

	var html string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(d.settleDelay),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fetch.ErrTimeout
		}
		return "", fmt.Errorf("failed to render %s: %w", url, err)
	}

	if IsChallengePage(html) {
		return "", fetch.ErrBlocked
	}

	return html, nil
}

// IsChallengePage reports whether rendered markup is a bot challenge rather
// than venue content.
func IsChallengePage(html string) bool {
	for _, marker := range challengeMarkers {
		if strings.Contains(html, marker) {
			return true
		}
	}
	return false
}

func detectChrome() string {
	for _, path := range chromePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
