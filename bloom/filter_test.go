package bloom_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/fwojciec/staffdir/bloom"
	"github.com/stretchr/testify/assert"
)

func TestVisited_SeenURL(t *testing.T) {
	t.Parallel()

	t.Run("reports URLs recorded before", func(t *testing.T) {
		t.Parallel()

		v := bloom.NewVisited(100, 0.001)

		assert.False(t, v.SeenURL("https://school.org/staff?page=1"))
		assert.True(t, v.SeenURL("https://school.org/staff?page=1"))
		assert.False(t, v.SeenURL("https://school.org/staff?page=2"))
	})

	t.Run("ignores fragments and host case", func(t *testing.T) {
		t.Parallel()

		v := bloom.NewVisited(100, 0.001)

		assert.False(t, v.SeenURL("https://School.org/staff"))
		assert.True(t, v.SeenURL("https://school.org/staff#top"))
	})

	t.Run("is safe for concurrent use", func(t *testing.T) {
		t.Parallel()

		v := bloom.NewVisited(1000, 0.001)

		var wg sync.WaitGroup
		for i := range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				v.SeenURL(fmt.Sprintf("https://school.org/staff/%d", i))
			}()
		}
		wg.Wait()

		count := v.EstimatedCount()
		assert.True(t, count >= 45 && count <= 55, "expected count near 50, got %d", count)
	})
}

func TestVisited_SeenContent(t *testing.T) {
	t.Parallel()

	t.Run("detects repeated page content", func(t *testing.T) {
		t.Parallel()

		v := bloom.NewVisited(100, 0.001)

		assert.False(t, v.SeenContent("<table><tr><td>Jane</td></tr></table>"))
		assert.False(t, v.SeenContent("<table><tr><td>Bob</td></tr></table>"))
		assert.True(t, v.SeenContent("<table><tr><td>Jane</td></tr></table>"))
	})
}
