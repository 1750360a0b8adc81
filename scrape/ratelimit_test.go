package scrape_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/staffdir/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostLimiter(t *testing.T) {
	t.Parallel()

	t.Run("allows the first request immediately", func(t *testing.T) {
		t.Parallel()

		limiter := scrape.NewHostLimiter(10)

		start := time.Now()
		err := limiter.Wait(context.Background(), "https://lausd.net/staff")

		require.NoError(t, err)
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("rate limits requests to the same host", func(t *testing.T) {
		t.Parallel()

		limiter := scrape.NewHostLimiter(10)

		require.NoError(t, limiter.Wait(context.Background(), "https://lausd.net/staff?page=1"))

		start := time.Now()
		err := limiter.Wait(context.Background(), "https://LAUSD.net/staff?page=2")

		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	})

	t.Run("keeps hosts independent", func(t *testing.T) {
		t.Parallel()

		limiter := scrape.NewHostLimiter(10)

		require.NoError(t, limiter.Wait(context.Background(), "https://lausd.net/staff"))

		start := time.Now()
		err := limiter.Wait(context.Background(), "https://www.aisd.net/staff")

		require.NoError(t, err)
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		limiter := scrape.NewHostLimiter(1)
		require.NoError(t, limiter.Wait(context.Background(), "https://lausd.net/"))

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		assert.Error(t, limiter.Wait(ctx, "https://lausd.net/"))
	})
}
