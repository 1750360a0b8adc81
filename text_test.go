package staffdir_test

import (
	"testing"

	"github.com/fwojciec/staffdir"
	"github.com/stretchr/testify/assert"
)

func TestCleanName(t *testing.T) {
	t.Parallel()

	t.Run("removes label words", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "John Doe", staffdir.CleanName("John Email Doe"))
	})

	t.Run("removes labels case-insensitively", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Jane Roe", staffdir.CleanName("name Jane Roe PHONE"))
	})

	t.Run("keeps labels embedded in longer words", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Mainor Namesake", staffdir.CleanName("Mainor Namesake"))
	})

	t.Run("collapses whitespace and trims", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Ana Lopez", staffdir.CleanName("  Ana \n\t  Lopez  "))
	})

	t.Run("returns empty for label-only text", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, staffdir.CleanName("Name Title"))
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		in := "Main Office  Phone Lee"
		assert.Equal(t, staffdir.CleanName(in), staffdir.CleanName(in))
	})
}

func TestIsValidJobTitle(t *testing.T) {
	t.Parallel()

	t.Run("accepts plain titles", func(t *testing.T) {
		t.Parallel()

		assert.True(t, staffdir.IsValidJobTitle("Teacher"))
		assert.True(t, staffdir.IsValidJobTitle("Assistant Principal"))
	})

	t.Run("rejects empty", func(t *testing.T) {
		t.Parallel()

		assert.False(t, staffdir.IsValidJobTitle(""))
	})

	t.Run("rejects email addresses", func(t *testing.T) {
		t.Parallel()

		assert.False(t, staffdir.IsValidJobTitle("jane@school.edu"))
	})

	t.Run("rejects placeholders and separators", func(t *testing.T) {
		t.Parallel()

		for _, title := range []string{"TBD", "N/A", "None", "Math/Science", "Who?", "@home"} {
			assert.False(t, staffdir.IsValidJobTitle(title), title)
		}
	})

	t.Run("placeholder check is case-sensitive", func(t *testing.T) {
		t.Parallel()

		assert.True(t, staffdir.IsValidJobTitle("none of the above"))
	})
}

func TestFindEmailToken(t *testing.T) {
	t.Parallel()

	t.Run("returns first token containing an email", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "a@x.org", staffdir.FindEmailToken("write a@x.org or b@y.org"))
	})

	t.Run("returns the whole token", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Email:jane@school.edu", staffdir.FindEmailToken("Email:jane@school.edu"))
	})

	t.Run("splits on any whitespace", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "j.smith@school.edu", staffdir.FindEmailToken("Contact\n\tj.smith@school.edu"))
	})

	t.Run("matches case-insensitively", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "JANE@SCHOOL.EDU", staffdir.FindEmailToken("JANE@SCHOOL.EDU"))
	})

	t.Run("returns empty when nothing matches", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, staffdir.FindEmailToken("no email here @ all"))
	})
}

func TestFindEmailAnywhere(t *testing.T) {
	t.Parallel()

	t.Run("finds an email inside text", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "jane.doe@school.edu", staffdir.FindEmailAnywhere("Contact: jane.doe@school.edu now"))
	})

	t.Run("finds an email glued to a label", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "jane@school.edu", staffdir.FindEmailAnywhere("Email:jane@school.edu"))
	})

	t.Run("returns empty when nothing matches", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, staffdir.FindEmailAnywhere("jane at school dot edu"))
	})
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	t.Run("strips query parameters from mailto targets", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "jane@school.edu", staffdir.NormalizeEmail("jane@school.edu?subject=Hello"))
	})

	t.Run("returns empty for text without email", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, staffdir.NormalizeEmail("Math Teacher"))
	})
}
