package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/staffdir"
	"github.com/fwojciec/staffdir/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("delegates to FetchFn", func(t *testing.T) {
		t.Parallel()

		var gotURL, gotWait string
		f := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string, waitSelector string) (string, error) {
				gotURL, gotWait = url, waitSelector
				return "<html></html>", nil
			},
		}

		html, err := f.Fetch(context.Background(), "https://example.com/staff", "table, .card")

		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Equal(t, "https://example.com/staff", gotURL)
		assert.Equal(t, "table, .card", gotWait)
	})
}

func TestSelectorService_ApplySelectorUpdate(t *testing.T) {
	t.Parallel()

	t.Run("delegates to ApplySelectorUpdateFn", func(t *testing.T) {
		t.Parallel()

		var got staffdir.SelectorUpdate
		s := &mock.SelectorService{
			ApplySelectorUpdateFn: func(_ context.Context, upd staffdir.SelectorUpdate) error {
				got = upd
				return nil
			},
		}

		upd := staffdir.SelectorUpdate{URL: "https://www.example.org/staff", StaffClasses: ".card"}
		require.NoError(t, s.ApplySelectorUpdate(context.Background(), upd))
		assert.Equal(t, upd, got)
	})
}
