// Package bloom provides a probabilistic index of file paths.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// DefaultFalsePositiveRate is the error rate used when indexing a scan root.
const DefaultFalsePositiveRate = 0.01

// Index is a Bloom filter over a fixed set of paths.
type Index struct {
	f *bloom.BloomFilter
	n int
}

// NewIndex creates an Index holding paths with the given false positive
// rate.
func NewIndex(paths []string, fpRate float64) *Index {
	n := uint(len(paths))
	if n == 0 {
		n = 1
	}
	f := bloom.NewWithEstimates(n, fpRate)
	for _, p := range paths {
		f.AddString(p)
	}
	return &Index{f: f, n: len(paths)}
}

// MayContain returns true if path might be indexed.
// False positives are possible; false negatives are not.
func (ix *Index) MayContain(path string) bool {
	return ix.f.TestString(path)
}

// Len returns the number of indexed paths.
func (ix *Index) Len() int {
	return ix.n
}
