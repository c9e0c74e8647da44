package scan_test

import (
	"testing"

	"github.com/fwojciec/wesber/scan"
	"github.com/stretchr/testify/assert"
)

func TestTruncatePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		path   string
		maxLen int
		want   string
	}{
		{name: "short path unchanged", path: "a/b.css", maxLen: 20, want: "a/b.css"},
		{name: "keeps the end", path: "site/assets/css/style.css", maxLen: 12, want: "...style.css"},
		{name: "tiny limit", path: "site/a.css", maxLen: 3, want: "sit"},
		{name: "zero limit", path: "site/a.css", maxLen: 0, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, scan.TruncatePath(tt.path, tt.maxLen))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a.css: 3 deps", scan.FormatSummary("a.css", 3, 0))
	assert.Equal(t, "a.css: 3 deps (1 missing)", scan.FormatSummary("a.css", 3, 1))
}
