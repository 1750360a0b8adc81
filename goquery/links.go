package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/staffdir"
)

// Ensure LinkFinder implements staffdir.LinkFinder at compile time.
var _ staffdir.LinkFinder = (*LinkFinder)(nil)

// nextSelectors are tried in order when looking for a pagination link.
var nextSelectors = []string{
	`a[rel~="next"][href]`,
	`link[rel~="next"][href]`,
	`li.next a[href]`,
	`.next a[href]`,
	`a.next[href]`,
	`.pagination-next a[href]`,
	`a.pagination-next[href]`,
}

// nextTexts are anchor texts treated as "next page" links.
var nextTexts = map[string]bool{
	"next":      true,
	"next page": true,
	"next »":    true,
	"next ›":    true,
	"next >":    true,
	"›":         true,
	"»":         true,
}

// DefaultDirectoryKeywords are the words that mark a link as a directory page.
var DefaultDirectoryKeywords = []string{"staff", "directory", "faculty", "department", "contact"}

// LinkFinder discovers pagination and directory links in rendered pages.
type LinkFinder struct {
	// Keywords mark a link as a directory page when found in its URL or text.
	Keywords []string
}

// NewLinkFinder creates a LinkFinder using DefaultDirectoryKeywords.
func NewLinkFinder() *LinkFinder {
	return &LinkFinder{Keywords: DefaultDirectoryKeywords}
}

// NextPage returns the page's "next" link resolved against pageURL.
// Links to other hosts and links back to the page itself are ignored.
func (f *LinkFinder) NextPage(html string, pageURL string) (string, bool) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", false
	}
	doc, err := ParseHTML(html)
	if err != nil {
		return "", false
	}

	accept := func(sel *goquery.Selection) string {
		href, exists := sel.Attr("href")
		if !exists || href == "" || isNonHTTPLink(href) {
			return ""
		}
		resolved := resolveURL(base, href)
		if resolved == "" || !isSameHost(base, resolved) {
			return ""
		}
		return resolved
	}

	for _, selector := range nextSelectors {
		var next string
		doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			next = accept(sel)
			return next == ""
		})
		if next != "" {
			return next, true
		}
	}

	var next string
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.ToLower(strings.Join(strings.Fields(sel.Text()), " "))
		if !nextTexts[text] {
			return true
		}
		next = accept(sel)
		return next == ""
	})
	return next, next != ""
}

// DirectoryLinks returns same-host links whose URL or anchor text contains one
// of the finder's keywords, in document order with duplicates removed.
// Returns EINVALID if pageURL or html cannot be parsed.
func (f *LinkFinder) DirectoryLinks(html string, pageURL string) ([]string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, staffdir.Errorf(staffdir.EINVALID, "invalid base URL: %v", err)
	}
	doc, err := ParseHTML(html)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var links []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" || isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" || seen[resolved] {
			return
		}

		// Exact host match, subdomains are different sites
		if !isSameHost(base, resolved) {
			return
		}

		if !f.mentionsKeyword(resolved) && !f.mentionsKeyword(sel.Text()) {
			return
		}

		seen[resolved] = true
		links = append(links, resolved)
	})

	return links, nil
}

func (f *LinkFinder) mentionsKeyword(s string) bool {
	s = strings.ToLower(s)
	for _, kw := range f.Keywords {
		if kw != "" && strings.Contains(s, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// resolveURL resolves href against base with the fragment removed.
// Returns empty string if href cannot be parsed or points back at base.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	result := resolved.String()
	self := *base
	self.Fragment = ""
	if result == self.String() {
		return ""
	}
	return result
}

func isSameHost(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, base.Host)
}

// isNonHTTPLink reports whether href uses a scheme that cannot be fetched.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
