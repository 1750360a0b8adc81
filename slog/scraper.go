package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/staffdir"
)

// Ensure LoggingScraper implements staffdir.Scraper.
var _ staffdir.Scraper = (*LoggingScraper)(nil)

// LoggingScraper wraps a Scraper with logging.
type LoggingScraper struct {
	next   staffdir.Scraper
	logger *slog.Logger
}

// NewLoggingScraper creates a new LoggingScraper.
func NewLoggingScraper(next staffdir.Scraper, logger *slog.Logger) *LoggingScraper {
	return &LoggingScraper{next: next, logger: logger}
}

// Scrape delegates to the wrapped scraper and logs the outcome.
func (s *LoggingScraper) Scrape(ctx context.Context, req staffdir.ScrapeRequest) (records []*staffdir.StaffRecord, err error) {
	defer func(begin time.Time) {
		s.logger.Info("scrape",
			"url", req.URL,
			"paginate", req.PaginationEnabled,
			"navigate", req.InternalNavigationEnabled,
			"count", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Scrape(ctx, req)
}
