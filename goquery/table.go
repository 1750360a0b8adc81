package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/staffdir"
)

// ExtractViaTable returns records from generic table markup, one per body row
// with at least one cell. The first cell is the name, the second or third
// cell the job title (whichever is first to hold text without "@"), and the
// email comes from the last cell that contains one. Cell text keeps the line
// breaks a browser would render, so "<br>" separates words. Rows with neither name
// nor email are dropped. The result is never nil.
func ExtractViaTable(doc *goquery.Document) []*staffdir.StaffRecord {
	records := make([]*staffdir.StaffRecord, 0)

	doc.Find("table tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() == 0 {
			return
		}

		texts := make([]string, cells.Length())
		cells.Each(func(i int, cell *goquery.Selection) {
			texts[i] = renderedText(cell)
		})

		name := staffdir.CleanName(texts[0])

		jobTitle := titleCandidate(texts)
		if !staffdir.IsValidJobTitle(jobTitle) {
			jobTitle = ""
		}

		var email string
		for _, text := range texts {
			if found := staffdir.NormalizeEmail(text); found != "" {
				email = found
			}
		}

		if name == "" && email == "" {
			return
		}

		records = append(records, &staffdir.StaffRecord{
			Name:     name,
			JobTitle: jobTitle,
			Email:    email,
		})
	})

	return records
}

// titleCandidate picks the job title column: the second cell, or the third
// when the second is empty or holds an email.
func titleCandidate(texts []string) string {
	for _, i := range []int{1, 2} {
		if i >= len(texts) {
			break
		}
		if texts[i] != "" && !strings.Contains(texts[i], "@") {
			return texts[i]
		}
	}
	return ""
}
