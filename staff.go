package staffdir

import (
	"context"
	"encoding/json"
)

// StaffRecord represents one person found on a staff directory page.
// An empty field means the value was not found; it is encoded as JSON null.
type StaffRecord struct {
	Name     string
	JobTitle string
	Email    string
}

type staffRecordJSON struct {
	Name     *string `json:"name"`
	JobTitle *string `json:"jobTitle"`
	Email    *string `json:"email"`
}

// MarshalJSON encodes empty fields as null.
func (r StaffRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(staffRecordJSON{
		Name:     nullable(r.Name),
		JobTitle: nullable(r.JobTitle),
		Email:    nullable(r.Email),
	})
}

// UnmarshalJSON decodes null fields as empty strings.
func (r *StaffRecord) UnmarshalJSON(data []byte) error {
	var v staffRecordJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = StaffRecord{
		Name:     deref(v.Name),
		JobTitle: deref(v.JobTitle),
		Email:    deref(v.Email),
	}
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// StaffExtractor extracts staff records from a rendered directory page.
type StaffExtractor interface {
	// ExtractStaff parses html and returns the records found on it.
	// The pageURL selects the domain's card selector from cfg; a nil cfg
	// means no domain is configured and only the table heuristics run.
	// Returns EINVALID if pageURL is malformed. An empty result is not an error.
	ExtractStaff(html string, pageURL string, cfg *SelectorConfig) ([]*StaffRecord, error)
}

// ScrapeRequest is a request to scrape one directory URL.
type ScrapeRequest struct {
	URL                       string `json:"url"`
	PaginationEnabled         bool   `json:"paginationEnabled"`
	InternalNavigationEnabled bool   `json:"internalNavigationEnabled"`
}

// Validate returns an error if the request contains invalid fields.
func (r *ScrapeRequest) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "URL is required.")
	}
	return nil
}

// Scraper renders a directory page and extracts its staff records.
type Scraper interface {
	// Scrape fetches the requested URL (and, when enabled, its paginated and
	// linked directory pages) and returns every record found in page order.
	// Returns EINVALID for a malformed URL and EUNSUPPORTED when a card
	// selector is required but none is configured for the domain.
	Scrape(ctx context.Context, req ScrapeRequest) ([]*StaffRecord, error)
}

// RecordWriter exports scraped records.
type RecordWriter interface {
	// WriteRecords writes records scraped from sourceURL.
	WriteRecords(ctx context.Context, sourceURL string, records []*StaffRecord) error
}
