package staffdir

// Snippet is a candidate repeating element offered to a human picking the
// staff card, name and job title selectors for a new domain.
type Snippet struct {
	// Selector is the class selector that matches the element, e.g. ".staff".
	Selector string `json:"selector"`

	// Count is the number of elements the selector matches.
	Count int `json:"count"`

	// HTML is the outer HTML of the first match.
	HTML string `json:"html"`

	// Preview is a Markdown rendering of HTML, empty if conversion failed.
	Preview string `json:"preview,omitempty"`
}

// SnippetWaitSelector is the render wait used before looking for snippets.
// It matches once the page has classed content in its body, so client-rendered
// directories are hydrated before candidates are counted.
const SnippetWaitSelector = "body [class]"

// SnippetFinder proposes candidate selectors for a page.
type SnippetFinder interface {
	// FindSnippets returns at most limit candidates in document order.
	// A limit of zero or less means no limit.
	FindSnippets(html string, limit int) ([]*Snippet, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an HTML fragment into Markdown.
	Convert(html string) (string, error)
}
