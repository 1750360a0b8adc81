// Package htmltomarkdown renders HTML fragments as Markdown previews.
package htmltomarkdown

import (
	"strings"
	"unicode/utf8"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/staffdir"
)

// Ensure Converter implements staffdir.Converter at compile time.
var _ staffdir.Converter = (*Converter)(nil)

// DefaultMaxLength is the default preview length in runes.
const DefaultMaxLength = 500

// Converter wraps html-to-markdown to preview candidate staff cards.
type Converter struct {
	conv      *converter.Converter
	maxLength int
}

// Option configures a Converter.
type Option func(*Converter)

// WithMaxLength caps the preview at n runes. Zero or less disables the cap.
func WithMaxLength(n int) Option {
	return func(c *Converter) {
		c.maxLength = n
	}
}

// NewConverter creates a new Converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
		maxLength: DefaultMaxLength,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert transforms an HTML fragment into Markdown, collapsing runs of blank
// lines and truncating long output with an ellipsis.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", staffdir.Errorf(staffdir.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	result = collapseBlankLines(strings.TrimSpace(result))

	if c.maxLength > 0 && utf8.RuneCountInString(result) > c.maxLength {
		runes := []rune(result)
		result = strings.TrimSpace(string(runes[:c.maxLength])) + "…"
	}

	return result, nil
}

func collapseBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	blank := false
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			if blank {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
