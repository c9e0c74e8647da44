package wesber_test

import (
	"testing"

	"github.com/fwojciec/wesber"
	"github.com/stretchr/testify/assert"
)

func TestFilter_Match(t *testing.T) {
	t.Parallel()

	t.Run("empty filter matches everything", func(t *testing.T) {
		t.Parallel()

		f := wesber.NewFilter()

		assert.True(t, f.Match("background"))
		assert.True(t, f.Match("img"))
		assert.True(t, f.Match(""))
	})

	t.Run("zero value matches everything", func(t *testing.T) {
		t.Parallel()

		var f wesber.Filter

		assert.True(t, f.Match("cursor"))
	})

	t.Run("single name matches only that name", func(t *testing.T) {
		t.Parallel()

		f := wesber.NewFilter("cursor")

		assert.True(t, f.Match("cursor"))
		assert.False(t, f.Match("background"))
		assert.False(t, f.Match("Cursor"))
	})

	t.Run("order and duplicates are irrelevant", func(t *testing.T) {
		t.Parallel()

		a := wesber.NewFilter("link", "iframe", "link")
		b := wesber.NewFilter("iframe", "link")

		for _, name := range []string{"link", "iframe", "img", "script"} {
			assert.Equal(t, b.Match(name), a.Match(name), name)
		}
	})
}
