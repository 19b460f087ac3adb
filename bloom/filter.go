// Package bloom provides probabilistic Message-ID deduplication using Bloom
// filters. A miss means the ID is definitely new; a hit may be a false
// positive, so hits only ever gate optional work (duplicate reporting), not
// correctness.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter for Message-ID deduplication.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds a Message-ID to the filter.
func (f *Filter) Add(id string) {
	f.f.AddString(id)
}

// Test returns true if the Message-ID might have been added.
// False positives are possible; false negatives are not.
func (f *Filter) Test(id string) bool {
	return f.f.TestString(id)
}

// EstimatedCount returns the approximate number of items in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
