package staffdir

import "context"

// Fetcher retrieves rendered HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered directories.
type Fetcher interface {
	// Fetch navigates to the URL, waits for it to render, and returns the HTML.
	// When waitSelector is non-empty, implementations that render JavaScript
	// wait for a matching element before returning; the wait is bounded and a
	// page that never shows one is returned as-is.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string, waitSelector string) (html string, err error)

	// Close releases resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// LinkFinder discovers follow-up directory pages from a rendered page.
type LinkFinder interface {
	// NextPage returns the absolute URL of the page's "next" pagination link.
	// Returns false if the page has none on the same host.
	NextPage(html string, pageURL string) (string, bool)

	// DirectoryLinks returns same-host links that look like further
	// directory pages, in document order without duplicates.
	DirectoryLinks(html string, pageURL string) ([]string, error)
}

// HostLimiter provides per-host rate limiting.
type HostLimiter interface {
	// Wait blocks until the rate limit allows a request to the URL's host.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, rawURL string) error
}
