package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/staffdir"
)

// Ensure Extractor implements staffdir.StaffExtractor at compile time.
var _ staffdir.StaffExtractor = (*Extractor)(nil)

// Extract returns the staff records of a rendered directory page.
//
// The domain key of pageURL selects a card selector from cfg. When one is
// configured the card strategy runs first; the table strategy runs only if
// the card strategy found nothing (or no selector is configured). An empty
// result means neither strategy matched and the domain needs configuration.
//
// Returns EINVALID if pageURL is malformed. The document is not modified.
func Extract(doc *goquery.Document, pageURL string, cfg *staffdir.SelectorConfig) ([]*staffdir.StaffRecord, error) {
	key, err := staffdir.ResolveDomainKey(pageURL)
	if err != nil {
		return nil, err
	}

	var records []*staffdir.StaffRecord
	if selector := cfg.CardSelector(key); selector != "" {
		records = ExtractViaSelectors(doc, selector, cfg.NameLadder(), cfg.JobTitleLadder())
	}
	if len(records) == 0 {
		records = ExtractViaTable(doc)
	}

	return records, nil
}

// Extractor implements staffdir.StaffExtractor over raw HTML.
// Extractor holds no state and is safe for concurrent use.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractStaff parses html and extracts its staff records.
func (e *Extractor) ExtractStaff(html string, pageURL string, cfg *staffdir.SelectorConfig) ([]*staffdir.StaffRecord, error) {
	doc, err := ParseHTML(html)
	if err != nil {
		return nil, err
	}

	return Extract(doc, pageURL, cfg)
}
