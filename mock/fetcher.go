package mock

import (
	"context"

	"github.com/fwojciec/staffdir"
)

var _ staffdir.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of staffdir.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string, waitSelector string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string, waitSelector string) (string, error) {
	return f.FetchFn(ctx, url, waitSelector)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ staffdir.LinkFinder = (*LinkFinder)(nil)

// LinkFinder is a mock implementation of staffdir.LinkFinder.
type LinkFinder struct {
	NextPageFn       func(html string, pageURL string) (string, bool)
	DirectoryLinksFn func(html string, pageURL string) ([]string, error)
}

func (f *LinkFinder) NextPage(html string, pageURL string) (string, bool) {
	return f.NextPageFn(html, pageURL)
}

func (f *LinkFinder) DirectoryLinks(html string, pageURL string) ([]string, error) {
	return f.DirectoryLinksFn(html, pageURL)
}

var _ staffdir.HostLimiter = (*HostLimiter)(nil)

// HostLimiter is a mock implementation of staffdir.HostLimiter.
type HostLimiter struct {
	WaitFn func(ctx context.Context, rawURL string) error
}

func (l *HostLimiter) Wait(ctx context.Context, rawURL string) error {
	return l.WaitFn(ctx, rawURL)
}
