// Package scrape orchestrates fetching and extracting staff directory pages,
// following pagination and linked directory pages when asked to.
package scrape

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/staffdir"
	"github.com/fwojciec/staffdir/bloom"
	"golang.org/x/sync/errgroup"
)

// Ensure Scraper implements staffdir.Scraper at compile time.
var _ staffdir.Scraper = (*Scraper)(nil)

const (
	// DefaultMaxPages bounds the pages visited by following pagination,
	// including the start page.
	DefaultMaxPages = 10

	// DefaultMaxSubPages bounds the linked directory pages visited.
	DefaultMaxSubPages = 10

	// DefaultConcurrency bounds concurrent sub-page fetches.
	DefaultConcurrency = 3
)

// Scraper fetches directory pages and extracts their staff records.
type Scraper struct {
	Fetcher     staffdir.Fetcher
	Extractor   staffdir.StaffExtractor
	Selectors   staffdir.SelectorService
	Links       staffdir.LinkFinder
	RateLimiter staffdir.HostLimiter

	// RequireSelector rejects domains without a configured card selector
	// instead of falling back to table extraction.
	RequireSelector bool

	MaxPages    int
	MaxSubPages int
	Concurrency int

	// RetryDelays are the waits between fetch attempts. Nil means
	// DefaultRetryDelays; an empty slice disables retries.
	RetryDelays []time.Duration

	// Progress, if set, receives an event per page.
	Progress ProgressFunc
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressPage ProgressType = iota
	ProgressRetry
	ProgressFailed
)

// ProgressEvent reports progress during a scrape.
type ProgressEvent struct {
	Type    ProgressType
	URL     string
	Records int
	Attempt int
	Error   error
}

// ProgressFunc is a callback for reporting scrape progress.
// It may be called from multiple goroutines.
type ProgressFunc func(event ProgressEvent)

// WaitSelector returns the selector a renderer waits for before extraction:
// any table, or a card when the domain has a card selector.
func WaitSelector(cardSelector string) string {
	if cardSelector == "" {
		return "table"
	}
	return "table, " + cardSelector
}

// Scrape fetches req.URL and returns its staff records, followed by those of
// its pagination pages and linked directory pages when enabled. Only a
// failure of the start page fails the scrape.
func (s *Scraper) Scrape(ctx context.Context, req staffdir.ScrapeRequest) ([]*staffdir.StaffRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	key, err := staffdir.ResolveDomainKey(req.URL)
	if err != nil {
		return nil, err
	}

	cfg, err := s.Selectors.FindSelectorConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading selector configuration: %w", err)
	}

	card := cfg.CardSelector(key)
	if s.RequireSelector && card == "" {
		return nil, staffdir.Errorf(staffdir.EUNSUPPORTED, "Domain not supported.")
	}
	wait := WaitSelector(card)

	maxPages, maxSubPages := s.maxPages(), s.maxSubPages()
	visited := bloom.NewVisited(uint(maxPages+maxSubPages+1), 0.0001)
	visited.SeenURL(req.URL)

	html, err := s.fetch(ctx, req.URL, wait)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", req.URL, err)
	}
	visited.SeenContent(html)

	records, err := s.Extractor.ExtractStaff(html, req.URL, cfg)
	if err != nil {
		return nil, err
	}
	s.report(ProgressEvent{Type: ProgressPage, URL: req.URL, Records: len(records)})

	if req.PaginationEnabled && s.Links != nil {
		records = append(records, s.paginate(ctx, req.URL, html, wait, cfg, visited, maxPages)...)
	}

	if req.InternalNavigationEnabled && s.Links != nil {
		records = append(records, s.navigate(ctx, req.URL, html, wait, cfg, visited, maxSubPages)...)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// paginate follows "next" links from the start page. It stops at the page
// limit, at a page already visited (by URL or content), or at the first
// page that fails.
func (s *Scraper) paginate(ctx context.Context, pageURL, html, wait string, cfg *staffdir.SelectorConfig, visited *bloom.Visited, maxPages int) []*staffdir.StaffRecord {
	var records []*staffdir.StaffRecord

	for page := 1; page < maxPages; page++ {
		next, ok := s.Links.NextPage(html, pageURL)
		if !ok || visited.SeenURL(next) {
			break
		}

		nextHTML, err := s.fetch(ctx, next, wait)
		if err != nil {
			s.report(ProgressEvent{Type: ProgressFailed, URL: next, Error: err})
			break
		}
		if visited.SeenContent(nextHTML) {
			break
		}

		found, err := s.Extractor.ExtractStaff(nextHTML, next, cfg)
		if err != nil {
			s.report(ProgressEvent{Type: ProgressFailed, URL: next, Error: err})
			break
		}
		s.report(ProgressEvent{Type: ProgressPage, URL: next, Records: len(found)})

		records = append(records, found...)
		pageURL, html = next, nextHTML
	}

	return records
}

// navigate fetches the directory pages linked from the start page
// concurrently and returns their records in link order. Failing pages are
// skipped.
func (s *Scraper) navigate(ctx context.Context, pageURL, html, wait string, cfg *staffdir.SelectorConfig, visited *bloom.Visited, maxSubPages int) []*staffdir.StaffRecord {
	links, err := s.Links.DirectoryLinks(html, pageURL)
	if err != nil {
		s.report(ProgressEvent{Type: ProgressFailed, URL: pageURL, Error: err})
		return nil
	}

	var targets []string
	for _, link := range links {
		if len(targets) >= maxSubPages {
			break
		}
		if !visited.SeenURL(link) {
			targets = append(targets, link)
		}
	}

	results := make([][]*staffdir.StaffRecord, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency())

	for i, target := range targets {
		g.Go(func() error {
			subHTML, err := s.fetch(gctx, target, wait)
			if err != nil {
				s.report(ProgressEvent{Type: ProgressFailed, URL: target, Error: err})
				return nil
			}
			if visited.SeenContent(subHTML) {
				return nil
			}

			found, err := s.Extractor.ExtractStaff(subHTML, target, cfg)
			if err != nil {
				s.report(ProgressEvent{Type: ProgressFailed, URL: target, Error: err})
				return nil
			}
			s.report(ProgressEvent{Type: ProgressPage, URL: target, Records: len(found)})

			results[i] = found
			return nil
		})
	}
	_ = g.Wait()

	var records []*staffdir.StaffRecord
	for _, found := range results {
		records = append(records, found...)
	}
	return records
}

// fetch fetches url with rate limiting and retries.
func (s *Scraper) fetch(ctx context.Context, url, wait string) (string, error) {
	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	return FetchWithRetry(ctx, url, func(ctx context.Context, url string) (string, error) {
		if s.RateLimiter != nil {
			if err := s.RateLimiter.Wait(ctx, url); err != nil {
				return "", err
			}
		}
		return s.Fetcher.Fetch(ctx, url, wait)
	}, delays, func(url string, attempt int, err error) {
		s.report(ProgressEvent{Type: ProgressRetry, URL: url, Attempt: attempt, Error: err})
	})
}

func (s *Scraper) report(event ProgressEvent) {
	if s.Progress != nil {
		s.Progress(event)
	}
}

func (s *Scraper) maxPages() int {
	if s.MaxPages <= 0 {
		return DefaultMaxPages
	}
	return s.MaxPages
}

func (s *Scraper) maxSubPages() int {
	if s.MaxSubPages <= 0 {
		return DefaultMaxSubPages
	}
	return s.MaxSubPages
}

func (s *Scraper) concurrency() int {
	if s.Concurrency <= 0 {
		return DefaultConcurrency
	}
	return s.Concurrency
}
