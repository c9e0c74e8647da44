package scan_test

import (
	"testing"

	"github.com/fwojciec/wesber"
	"github.com/fwojciec/wesber/scan"
	"github.com/stretchr/testify/assert"
)

func TestNewReport(t *testing.T) {
	t.Parallel()

	t.Run("counts dependencies by kind and lists unique missing targets", func(t *testing.T) {
		t.Parallel()

		docs := []*wesber.Result{
			{
				File: "/p/index.html",
				Dependencies: []*wesber.Dependency{
					{File: "a.png", Path: "/p/a.png"},
					{File: "b.png", Path: "/p/b.png", Exists: true},
					{File: "https://x.org/c.js", EntireURI: true},
					{File: "a.png", Path: "/p/a.png"},
				},
			},
			{
				File: "/p/css/style.css",
				Dependencies: []*wesber.Dependency{
					{File: "../a.png", Path: "/p/a.png"},
					{File: "data:image/png;base64,AA==", Base64: true},
					{File: "d.woff", Path: "/p/css/d.woff"},
				},
			},
		}

		r := scan.NewReport(docs)

		assert.Equal(t, 2, r.Documents)
		assert.Equal(t, 7, r.Dependencies)
		assert.Equal(t, 5, r.Local)
		assert.Equal(t, 1, r.Remote)
		assert.Equal(t, 1, r.Inline)
		assert.Equal(t, []string{"/p/a.png", "/p/css/d.woff"}, r.Missing)
		assert.Equal(t, []string{"/p/index.html", "/p/css/style.css"}, r.Referrers["/p/a.png"])
		assert.Equal(t, []string{"/p/css/style.css"}, r.Referrers["/p/css/d.woff"])
	})

	t.Run("empty scan has empty report", func(t *testing.T) {
		t.Parallel()

		r := scan.NewReport(nil)

		assert.Zero(t, r.Documents)
		assert.NotNil(t, r.Missing)
		assert.Empty(t, r.Missing)
	})
}
