package bloom_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/wesber/bloom"
	"github.com/stretchr/testify/assert"
)

func TestIndex_MayContain(t *testing.T) {
	t.Parallel()

	paths := make([]string, 0, 1000)
	for i := range 1000 {
		paths = append(paths, fmt.Sprintf("/p/img/%d.png", i))
	}
	ix := bloom.NewIndex(paths, 0.01)

	assert.Equal(t, 1000, ix.Len())

	// Every indexed path is reported
	for _, p := range paths {
		assert.True(t, ix.MayContain(p), p)
	}

	// Most absent paths are rejected
	var falsePositives int
	for i := range 1000 {
		if ix.MayContain(fmt.Sprintf("/p/missing/%d.png", i)) {
			falsePositives++
		}
	}
	assert.Less(t, falsePositives, 50)
}

func TestIndex_Empty(t *testing.T) {
	t.Parallel()

	ix := bloom.NewIndex(nil, 0.01)

	assert.Equal(t, 0, ix.Len())
	assert.False(t, ix.MayContain("/p/a.png"))
}
