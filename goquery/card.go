package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/staffdir"
)

// ExtractViaSelectors returns one record per element matching cardSelector
// that has a name. Names are read from the first name ladder entry present in
// the card, job titles from the first job title ladder entry present.
// Records are returned in document order; the result is never nil.
func ExtractViaSelectors(doc *goquery.Document, cardSelector string, nameLadder, titleLadder []string) []*staffdir.StaffRecord {
	records := make([]*staffdir.StaffRecord, 0)

	doc.Find(cardSelector).Each(func(_ int, card *goquery.Selection) {
		raw, _ := firstMatch(card, nameLadder)
		name := staffdir.CleanName(raw)
		if name == "" {
			return
		}

		jobTitle, _ := firstMatch(card, titleLadder)
		if !staffdir.IsValidJobTitle(jobTitle) {
			jobTitle = ""
		}

		records = append(records, &staffdir.StaffRecord{
			Name:     name,
			JobTitle: jobTitle,
			Email:    cardEmail(card),
		})
	})

	return records
}

// firstMatch returns the trimmed text of the first element found for the
// first ladder entry that matches anything in the card. Later entries are not
// consulted once one matches, even if the match has no text.
func firstMatch(card *goquery.Selection, ladder []string) (string, bool) {
	for _, entry := range ladder {
		found := card.Find(ladderSelector(entry)).First()
		if found.Length() > 0 {
			return strings.TrimSpace(found.Text()), true
		}
	}
	return "", false
}

// cardEmail reads the email from the card's first mailto link, or from the
// card's text when it has none.
func cardEmail(card *goquery.Selection) string {
	if target, ok := mailtoTarget(card); ok {
		return staffdir.NormalizeEmail(target)
	}
	return staffdir.FindEmailAnywhere(strings.TrimSpace(card.Text()))
}

// mailtoTarget returns the address part of the first mailto link in the card.
// The scheme is matched case-insensitively.
func mailtoTarget(card *goquery.Selection) (string, bool) {
	var target string
	var found bool

	card.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		if len(href) < len("mailto:") || !strings.EqualFold(href[:len("mailto:")], "mailto:") {
			return true
		}
		target = strings.TrimSpace(href[len("mailto:"):])
		if unescaped, err := url.PathUnescape(target); err == nil {
			target = unescaped
		}
		found = true
		return false
	})

	return target, found
}
