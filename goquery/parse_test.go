package goquery_test

import (
	"testing"

	"github.com/fwojciec/staffdir"
	"github.com/fwojciec/staffdir/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHTML(t *testing.T) {
	t.Parallel()

	t.Run("adds the implied table body", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.ParseHTML(`<table><tr><td>x</td></tr></table>`)

		require.NoError(t, err)
		assert.Equal(t, 1, doc.Find("table tbody tr").Length())
	})
}

func TestValidateSelector(t *testing.T) {
	t.Parallel()

	t.Run("accepts selector groups", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, goquery.ValidateSelector(".staff, div.card > .name"))
	})

	t.Run("rejects empty selectors", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, staffdir.EINVALID, staffdir.ErrorCode(goquery.ValidateSelector("  ")))
	})

	t.Run("rejects malformed selectors", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, staffdir.EINVALID, staffdir.ErrorCode(goquery.ValidateSelector("div[")))
	})
}

func TestValidateSelectorConfig(t *testing.T) {
	t.Parallel()

	t.Run("accepts the default configuration", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, goquery.ValidateSelectorConfig(staffdir.DefaultSelectorConfig()))
	})

	t.Run("rejects a malformed card selector", func(t *testing.T) {
		t.Parallel()

		cfg := staffdir.DefaultSelectorConfig()
		cfg.StaffClasses["broken"] = staffdir.DomainSelector{Domain: "broken", Selector: "div[[["}

		assert.Equal(t, staffdir.EINVALID, staffdir.ErrorCode(goquery.ValidateSelectorConfig(cfg)))
	})
}

func TestValidateSelectorUpdate(t *testing.T) {
	t.Parallel()

	t.Run("accepts class names with a leading dot", func(t *testing.T) {
		t.Parallel()

		upd := staffdir.SelectorUpdate{URL: "https://school.org", StaffClasses: ".card", NameClasses: ".name"}

		assert.NoError(t, goquery.ValidateSelectorUpdate(upd))
	})

	t.Run("rejects a malformed card selector", func(t *testing.T) {
		t.Parallel()

		upd := staffdir.SelectorUpdate{URL: "https://school.org", StaffClasses: "div["}

		assert.Equal(t, staffdir.EINVALID, staffdir.ErrorCode(goquery.ValidateSelectorUpdate(upd)))
	})
}
