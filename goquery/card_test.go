package goquery_test

import (
	"testing"

	"github.com/fwojciec/staffdir"
	"github.com/fwojciec/staffdir/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractViaSelectors(t *testing.T) {
	t.Parallel()

	nameLadder := []string{"fsFullName", "name"}
	titleLadder := []string{"fsTitles", "position"}

	t.Run("reads name, title and mailto email from each card", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<div class="card">
  <span class="fsFullName">Jane Doe</span>
  <span class="fsTitles">Principal</span>
  <a href="mailto:jane@school.edu">Send mail</a>
</div>
<div class="card">
  <span class="fsFullName">Bob Roe</span>
  <span class="fsTitles">Counselor</span>
  <a href="mailto:bob@school.edu">Send mail</a>
</div>`)

		records := goquery.ExtractViaSelectors(doc, ".card", nameLadder, titleLadder)

		require.Len(t, records, 2)
		assert.Equal(t, &staffdir.StaffRecord{Name: "Jane Doe", JobTitle: "Principal", Email: "jane@school.edu"}, records[0])
		assert.Equal(t, &staffdir.StaffRecord{Name: "Bob Roe", JobTitle: "Counselor", Email: "bob@school.edu"}, records[1])
	})

	t.Run("drops cards without a name", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<div class="card"><span class="fsTitles">Principal</span></div>
<div class="card"><span class="fsFullName">  </span><a href="mailto:x@school.edu">x</a></div>
<div class="card"><span class="fsFullName">Ann Lee</span></div>`)

		records := goquery.ExtractViaSelectors(doc, ".card", nameLadder, titleLadder)

		require.Len(t, records, 1)
		assert.Equal(t, "Ann Lee", records[0].Name)
	})

	t.Run("uses the first ladder entry that matches", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<div class="card">
  <span class="name">Second Choice</span>
  <span class="fsFullName">First Choice</span>
</div>`)

		records := goquery.ExtractViaSelectors(doc, ".card", nameLadder, titleLadder)

		require.Len(t, records, 1)
		assert.Equal(t, "First Choice", records[0].Name)
	})

	t.Run("stops at a matching ladder entry even when it is empty", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<div class="card">
  <span class="fsFullName"></span>
  <span class="name">Fallback Name</span>
</div>`)

		records := goquery.ExtractViaSelectors(doc, ".card", nameLadder, titleLadder)

		assert.Empty(t, records)
	})

	t.Run("removes field labels from names", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<div class="card"><span class="fsFullName">Name  Jane   Doe</span></div>`)

		records := goquery.ExtractViaSelectors(doc, ".card", nameLadder, titleLadder)

		require.Len(t, records, 1)
		assert.Equal(t, "Jane Doe", records[0].Name)
	})

	t.Run("nulls an invalid job title", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<div class="card">
  <span class="fsFullName">Jane Doe</span>
  <span class="fsTitles">TBD</span>
</div>`)

		records := goquery.ExtractViaSelectors(doc, ".card", nameLadder, titleLadder)

		require.Len(t, records, 1)
		assert.Empty(t, records[0].JobTitle)
	})

	t.Run("strips punctuation around a mailto address", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<div class="card">
  <span class="fsFullName">Jane Doe</span>
  <a href="MAILTO:%3Cjane@school.edu%3E">mail</a>
</div>`)

		records := goquery.ExtractViaSelectors(doc, ".card", nameLadder, titleLadder)

		require.Len(t, records, 1)
		assert.Equal(t, "jane@school.edu", records[0].Email)
	})

	t.Run("scans card text when there is no mailto link", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<div class="card">
  <span class="fsFullName">Jane Doe</span>
  <p>Contact: jane.doe@school.edu (preferred)</p>
</div>`)

		records := goquery.ExtractViaSelectors(doc, ".card", nameLadder, titleLadder)

		require.Len(t, records, 1)
		assert.Equal(t, "jane.doe@school.edu", records[0].Email)
	})

	t.Run("leaves the email empty when the mailto has no address", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<div class="card">
  <span class="fsFullName">Jane Doe</span>
  <a href="mailto:">mail</a>
  <p>other@school.edu</p>
</div>`)

		records := goquery.ExtractViaSelectors(doc, ".card", nameLadder, titleLadder)

		require.Len(t, records, 1)
		assert.Empty(t, records[0].Email)
	})

	t.Run("accepts ladder entries that are already selectors", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<div class="card"><h3>Jane Doe</h3><em>Librarian</em></div>`)

		records := goquery.ExtractViaSelectors(doc, ".card", []string{"div > h3"}, []string{"em:first-of-type"})

		require.Len(t, records, 1)
		assert.Equal(t, &staffdir.StaffRecord{Name: "Jane Doe", JobTitle: "Librarian"}, records[0])
	})

	t.Run("returns an empty slice when no card matches", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<p>nothing here</p>`)

		records := goquery.ExtractViaSelectors(doc, ".card", nameLadder, titleLadder)

		assert.NotNil(t, records)
		assert.Empty(t, records)
	})
}
