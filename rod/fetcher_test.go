//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/staffdir"
	"github.com/fwojciec/staffdir/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveHTML(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("waits for a directory rendered by JavaScript", func(t *testing.T) {
		t.Parallel()

		srv := serveHTML(t, `<!DOCTYPE html>
<html><body>
<div id="root">Loading...</div>
<script>
setTimeout(function () {
  document.getElementById('root').innerHTML =
    '<div class="staff"><span class="fsFullName">Jane Doe</span></div>';
}, 300);
</script>
</body></html>`)

		fetcher, err := rod.NewFetcher()
		require.NoError(t, err)
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), srv.URL, "table, .staff")

		require.NoError(t, err)
		assert.Contains(t, html, "Jane Doe")
	})

	t.Run("returns the page as-is when the wait selector never matches", func(t *testing.T) {
		t.Parallel()

		srv := serveHTML(t, `<html><body><p>No directory here</p></body></html>`)

		fetcher, err := rod.NewFetcher(rod.WithRenderTimeout(200 * time.Millisecond))
		require.NoError(t, err)
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), srv.URL, "table, .staff")

		require.NoError(t, err)
		assert.Contains(t, html, "No directory here")
	})

	t.Run("returns the context error when canceled", func(t *testing.T) {
		t.Parallel()

		fetcher, err := rod.NewFetcher()
		require.NoError(t, err)
		defer fetcher.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err = fetcher.Fetch(ctx, "http://127.0.0.1:1", "")

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("times out on a slow page", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(500 * time.Millisecond)
			_, _ = w.Write([]byte(`<html><body>delayed</body></html>`))
		}))
		defer srv.Close()

		fetcher, err := rod.NewFetcher(rod.WithFetchTimeout(100 * time.Millisecond))
		require.NoError(t, err)
		defer fetcher.Close()

		_, err = fetcher.Fetch(context.Background(), srv.URL, "")

		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("returns EINVALID after close", func(t *testing.T) {
		t.Parallel()

		fetcher, err := rod.NewFetcher()
		require.NoError(t, err)
		require.NoError(t, fetcher.Close())

		_, err = fetcher.Fetch(context.Background(), "http://example.com", "")

		assert.Equal(t, staffdir.EINVALID, staffdir.ErrorCode(err))
		assert.Contains(t, staffdir.ErrorMessage(err), "closed")
	})
}

func TestFetcher_Close(t *testing.T) {
	t.Parallel()

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		fetcher, err := rod.NewFetcher()
		require.NoError(t, err)

		require.NoError(t, fetcher.Close())
		require.NoError(t, fetcher.Close())
	})
}
