package mock

import "github.com/fwojciec/staffdir"

var _ staffdir.SnippetFinder = (*SnippetFinder)(nil)

// SnippetFinder is a mock implementation of staffdir.SnippetFinder.
type SnippetFinder struct {
	FindSnippetsFn func(html string, limit int) ([]*staffdir.Snippet, error)
}

func (f *SnippetFinder) FindSnippets(html string, limit int) ([]*staffdir.Snippet, error) {
	return f.FindSnippetsFn(html, limit)
}

var _ staffdir.Converter = (*Converter)(nil)

// Converter is a mock implementation of staffdir.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
