package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/staffdir"
)

// Ensure SnippetFinder implements staffdir.SnippetFinder at compile time.
var _ staffdir.SnippetFinder = (*SnippetFinder)(nil)

// SnippetFinder proposes the repeating class selectors of a page as staff
// card candidates.
type SnippetFinder struct {
	converter staffdir.Converter

	// MinCount is the number of elements a class must match to be proposed.
	MinCount int

	// MaxHTML caps the length of each snippet's HTML in bytes.
	// Zero means no cap.
	MaxHTML int
}

// NewSnippetFinder creates a SnippetFinder. When converter is non-nil each
// snippet carries a Markdown preview.
func NewSnippetFinder(converter staffdir.Converter) *SnippetFinder {
	return &SnippetFinder{
		converter: converter,
		MinCount:  2,
		MaxHTML:   4000,
	}
}

// FindSnippets returns class selectors whose elements repeat and carry text,
// in order of first occurrence. Each snippet holds the outer HTML of the
// class's first element with text.
func (f *SnippetFinder) FindSnippets(html string, limit int) ([]*staffdir.Snippet, error) {
	doc, err := ParseHTML(html)
	if err != nil {
		return nil, err
	}

	var order []string
	counts := make(map[string]int)
	first := make(map[string]*goquery.Selection)

	doc.Find("body [class]").Each(func(_ int, sel *goquery.Selection) {
		if strings.TrimSpace(sel.Text()) == "" {
			return
		}
		seen := make(map[string]bool)
		for _, class := range strings.Fields(sel.AttrOr("class", "")) {
			if seen[class] || !staffdir.IsPlainClass(class) {
				continue
			}
			seen[class] = true
			if counts[class] == 0 {
				order = append(order, class)
				first[class] = sel
			}
			counts[class]++
		}
	})

	minCount := f.MinCount
	if minCount < 1 {
		minCount = 1
	}

	snippets := make([]*staffdir.Snippet, 0)
	for _, class := range order {
		if counts[class] < minCount {
			continue
		}

		outer, err := goquery.OuterHtml(first[class])
		if err != nil {
			return nil, staffdir.Errorf(staffdir.EINTERNAL, "failed to render snippet: %v", err)
		}

		snippet := &staffdir.Snippet{
			Selector: "." + class,
			Count:    counts[class],
			HTML:     truncate(outer, f.MaxHTML),
		}
		if f.converter != nil {
			// Previews are optional; a failed conversion leaves it empty.
			if preview, err := f.converter.Convert(outer); err == nil {
				snippet.Preview = strings.TrimSpace(preview)
			}
		}
		snippets = append(snippets, snippet)

		if limit > 0 && len(snippets) >= limit {
			break
		}
	}

	return snippets, nil
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
