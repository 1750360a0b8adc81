package mock

import (
	"context"

	"github.com/fwojciec/staffdir"
)

var _ staffdir.StaffExtractor = (*StaffExtractor)(nil)

// StaffExtractor is a mock implementation of staffdir.StaffExtractor.
type StaffExtractor struct {
	ExtractStaffFn func(html string, pageURL string, cfg *staffdir.SelectorConfig) ([]*staffdir.StaffRecord, error)
}

func (e *StaffExtractor) ExtractStaff(html string, pageURL string, cfg *staffdir.SelectorConfig) ([]*staffdir.StaffRecord, error) {
	return e.ExtractStaffFn(html, pageURL, cfg)
}

var _ staffdir.Scraper = (*Scraper)(nil)

// Scraper is a mock implementation of staffdir.Scraper.
type Scraper struct {
	ScrapeFn func(ctx context.Context, req staffdir.ScrapeRequest) ([]*staffdir.StaffRecord, error)
}

func (s *Scraper) Scrape(ctx context.Context, req staffdir.ScrapeRequest) ([]*staffdir.StaffRecord, error) {
	return s.ScrapeFn(ctx, req)
}

var _ staffdir.RecordWriter = (*RecordWriter)(nil)

// RecordWriter is a mock implementation of staffdir.RecordWriter.
type RecordWriter struct {
	WriteRecordsFn func(ctx context.Context, sourceURL string, records []*staffdir.StaffRecord) error
}

func (w *RecordWriter) WriteRecords(ctx context.Context, sourceURL string, records []*staffdir.StaffRecord) error {
	return w.WriteRecordsFn(ctx, sourceURL, records)
}
