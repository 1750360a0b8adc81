// Package rod renders staff directory pages in headless Chrome.
package rod

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fwojciec/staffdir"
	"golang.org/x/sync/semaphore"
)

// Ensure Fetcher implements staffdir.Fetcher at compile time.
var _ staffdir.Fetcher = (*Fetcher)(nil)

const (
	// DefaultNavigationTimeout bounds navigation and the load event.
	DefaultNavigationTimeout = 30 * time.Second

	// DefaultRenderTimeout bounds the wait for the directory markup to appear.
	DefaultRenderTimeout = 15 * time.Second

	// DefaultMaxConcurrentPages bounds the number of open tabs.
	DefaultMaxConcurrentPages = 4
)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager *BrowserManager
	sem     *semaphore.Weighted
	closed  atomic.Bool

	fetchTimeout       time.Duration
	navigationTimeout  time.Duration
	renderTimeout      time.Duration
	maxConcurrentPages int64
	recycleAfter       int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout bounds a whole fetch. Zero means only the caller's
// context bounds it.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.fetchTimeout = d
	}
}

// WithNavigationTimeout bounds navigation and the load event.
func WithNavigationTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.navigationTimeout = d
	}
}

// WithRenderTimeout bounds the wait for the wait selector. Zero disables the wait.
func WithRenderTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.renderTimeout = d
	}
}

// WithMaxConcurrentPages bounds the number of pages open at once.
func WithMaxConcurrentPages(n int64) Option {
	return func(f *Fetcher) {
		f.maxConcurrentPages = n
	}
}

// WithRecycleAfter sets the number of pages after which the browser is
// restarted.
func WithRecycleAfter(n int64) Option {
	return func(f *Fetcher) {
		f.recycleAfter = n
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		navigationTimeout:  DefaultNavigationTimeout,
		renderTimeout:      DefaultRenderTimeout,
		maxConcurrentPages: DefaultMaxConcurrentPages,
		recycleAfter:       DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.maxConcurrentPages < 1 {
		f.maxConcurrentPages = 1
	}

	manager, err := NewBrowserManager(WithMaxPages(f.recycleAfter))
	if err != nil {
		return nil, err
	}
	f.manager = manager
	f.sem = semaphore.NewWeighted(f.maxConcurrentPages)

	return f, nil
}

// Fetch navigates to the URL, waits for waitSelector to match and returns the
// rendered HTML. A page where waitSelector never matches within the render
// timeout is returned as it is at that point.
func (f *Fetcher) Fetch(ctx context.Context, url string, waitSelector string) (string, error) {
	if f.closed.Load() {
		return "", staffdir.Errorf(staffdir.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := f.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer f.sem.Release(1)

	if f.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.fetchTimeout)
		defer cancel()
	}

	tab, release, err := f.manager.NewPage()
	if err != nil {
		return "", err
	}
	defer release()

	page := tab.Context(ctx)

	nav := page
	if f.navigationTimeout > 0 {
		nav = page.Timeout(f.navigationTimeout)
	}
	if err := nav.Navigate(url); err != nil {
		return "", fmt.Errorf("navigating to %s: %w", url, err)
	}
	if err := nav.WaitLoad(); err != nil {
		return "", fmt.Errorf("loading %s: %w", url, err)
	}

	if waitSelector != "" && f.renderTimeout > 0 {
		waiter := page.Timeout(f.renderTimeout)
		_, err := waiter.Element(waitSelector)
		waiter.CancelTimeout()
		// Only the caller's deadline is fatal here.
		if err != nil && ctx.Err() != nil {
			return "", ctx.Err()
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("reading HTML of %s: %w", url, err)
	}

	return html, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}
