// Package bloom tracks the pages visited during a scrape using Bloom filters.
package bloom

import (
	"encoding/binary"
	"net/url"
	"strings"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/cespare/xxhash/v2"
)

// Visited remembers page URLs and page contents seen during one scrape.
// False positives are possible; false negatives are not.
// Visited is safe for concurrent use.
type Visited struct {
	mu    sync.Mutex
	urls  *bloom.BloomFilter
	pages *bloom.BloomFilter
}

// NewVisited creates a Visited sized for n expected pages with the given
// false positive rate.
func NewVisited(n uint, fpRate float64) *Visited {
	return &Visited{
		urls:  bloom.NewWithEstimates(n, fpRate),
		pages: bloom.NewWithEstimates(n, fpRate),
	}
}

// SeenURL records rawURL and reports whether it was recorded before.
// URLs differing only in fragment or host case are the same page.
func (v *Visited) SeenURL(rawURL string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.urls.TestAndAddString(normalizeURL(rawURL))
}

// SeenContent records the hash of html and reports whether the same content
// was recorded before. Directories that ignore an out-of-range page
// parameter serve the last page again, which this detects.
func (v *Visited) SeenContent(html string) bool {
	var key [8]byte
	binary.BigEndian.PutUint64(key[:], xxhash.Sum64String(html))

	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pages.TestAndAdd(key[:])
}

// EstimatedCount returns the approximate number of URLs recorded.
func (v *Visited) EstimatedCount() uint {
	v.mu.Lock()
	defer v.mu.Unlock()
	return uint(v.urls.ApproximatedSize())
}

func normalizeURL(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return rawURL
	}
	u.Fragment = ""
	u.Host = strings.ToLower(u.Host)
	return u.String()
}
