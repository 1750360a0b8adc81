package goquery_test

import (
	"testing"

	"github.com/fwojciec/staffdir"
	"github.com/fwojciec/staffdir/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractViaTable(t *testing.T) {
	t.Parallel()

	t.Run("reads name, title and email from each row", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<table>
<thead><tr><th>Name</th><th>Title</th><th>Email</th></tr></thead>
<tbody>
<tr><td>John Smith</td><td>Math Teacher</td><td>j.smith@school.edu</td></tr>
<tr><td>Ann Lee</td><td>Nurse</td><td><a href="mailto:alee@school.edu">alee@school.edu</a></td></tr>
</tbody>
</table>`)

		records := goquery.ExtractViaTable(doc)

		require.Len(t, records, 2)
		assert.Equal(t, &staffdir.StaffRecord{Name: "John Smith", JobTitle: "Math Teacher", Email: "j.smith@school.edu"}, records[0])
		assert.Equal(t, &staffdir.StaffRecord{Name: "Ann Lee", JobTitle: "Nurse", Email: "alee@school.edu"}, records[1])
	})

	t.Run("treats line breaks inside cells as word boundaries", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<table><tr><td>Jane<br>Doe</td><td>Teacher</td><td>jane@school.edu<br>555-1234</td></tr></table>`)

		records := goquery.ExtractViaTable(doc)

		require.Len(t, records, 1)
		assert.Equal(t, &staffdir.StaffRecord{Name: "Jane Doe", JobTitle: "Teacher", Email: "jane@school.edu"}, records[0])
	})

	t.Run("treats block elements inside cells as word boundaries", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<table><tr><td><div>Jane</div><div>Doe</div></td><td><p>Counselor</p></td><td><span>jane@school.edu</span><div>Room 12</div></td></tr></table>`)

		records := goquery.ExtractViaTable(doc)

		require.Len(t, records, 1)
		assert.Equal(t, &staffdir.StaffRecord{Name: "Jane Doe", JobTitle: "Counselor", Email: "jane@school.edu"}, records[0])
	})

	t.Run("takes the title from the third cell when the second holds an email", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<table><tr><td>Ann Lee</td><td>alee@school.edu</td><td>Nurse</td></tr></table>`)

		records := goquery.ExtractViaTable(doc)

		require.Len(t, records, 1)
		assert.Equal(t, &staffdir.StaffRecord{Name: "Ann Lee", JobTitle: "Nurse", Email: "alee@school.edu"}, records[0])
	})

	t.Run("takes the title from the third cell when the second is empty", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<table><tr><td>Ann Lee</td><td> </td><td>Nurse</td></tr></table>`)

		records := goquery.ExtractViaTable(doc)

		require.Len(t, records, 1)
		assert.Equal(t, "Nurse", records[0].JobTitle)
	})

	t.Run("keeps the last email of a row", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<table><tr>
<td>Ann Lee</td><td>Nurse</td><td>first@school.edu</td><td>second@school.edu</td>
</tr></table>`)

		records := goquery.ExtractViaTable(doc)

		require.Len(t, records, 1)
		assert.Equal(t, "second@school.edu", records[0].Email)
	})

	t.Run("keeps rows with only an email", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<table><tr><td></td><td></td><td>office@school.edu</td></tr></table>`)

		records := goquery.ExtractViaTable(doc)

		require.Len(t, records, 1)
		assert.Equal(t, &staffdir.StaffRecord{Email: "office@school.edu"}, records[0])
	})

	t.Run("drops rows with neither name nor email", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<table>
<tr><td></td><td>Principal</td></tr>
<tr><th>Header only</th></tr>
<tr><td>Name</td><td>Title</td></tr>
</table>`)

		records := goquery.ExtractViaTable(doc)

		assert.Empty(t, records)
	})

	t.Run("nulls an invalid job title", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<table><tr><td>Ann Lee</td><td>N/A</td></tr></table>`)

		records := goquery.ExtractViaTable(doc)

		require.Len(t, records, 1)
		assert.Empty(t, records[0].JobTitle)
	})

	t.Run("returns an empty slice for a page without tables", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, "")

		records := goquery.ExtractViaTable(doc)

		assert.NotNil(t, records)
		assert.Empty(t, records)
	})
}
