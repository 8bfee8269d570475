// Package bloom provides source URL deduplication backed by a Bloom filter.
package bloom

import (
	"net/url"
	"strings"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter is a set of normalized URLs.
//
// The exact set is the source of truth. The Bloom filter is a pre-check in
// front of it: a negative answer skips the set lookup, a positive answer
// is confirmed against the set, so a false positive never drops a source.
type Filter struct {
	mu             sync.Mutex
	f              *bloom.BloomFilter
	seen           map[string]struct{}
	falsePositives int
}

// NewFilter creates a Filter sized for n expected URLs with the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f:    bloom.NewWithEstimates(n, fpRate),
		seen: make(map[string]struct{}),
	}
}

// Normalize canonicalizes a URL for comparison: the scheme and host are
// lowercased, the fragment is dropped and a trailing slash is removed
// from non-root paths. Unparseable input is returned trimmed.
func Normalize(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""
	if len(u.Path) > 1 {
		u.Path = strings.TrimSuffix(u.Path, "/")
		u.RawPath = ""
	}
	if u.Path == "/" && u.RawQuery == "" {
		u.Path = ""
	}
	return u.String()
}

// Add adds a URL to the filter.
func (f *Filter) Add(rawURL string) {
	key := Normalize(rawURL)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.add(key)
}

func (f *Filter) add(key string) {
	f.f.AddString(key)
	f.seen[key] = struct{}{}
}

// Test reports whether the URL has been added.
func (f *Filter) Test(rawURL string) bool {
	key := Normalize(rawURL)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.test(key)
}

func (f *Filter) test(key string) bool {
	if !f.f.TestString(key) {
		return false
	}
	_, ok := f.seen[key]
	if !ok {
		f.falsePositives++
	}
	return ok
}

// TestAndAdd adds the URL and reports whether it was already present.
func (f *Filter) TestAndAdd(rawURL string) bool {
	key := Normalize(rawURL)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.test(key) {
		return true
	}
	f.add(key)
	return false
}

// Len returns the exact number of distinct URLs added.
func (f *Filter) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.seen)
}

// FalsePositives returns how many lookups the Bloom pre-check passed that
// the exact set then rejected.
func (f *Filter) FalsePositives() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.falsePositives
}

// EstimatedCount returns the Bloom filter's approximation of Len.
func (f *Filter) EstimatedCount() uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint(f.f.ApproximatedSize())
}
