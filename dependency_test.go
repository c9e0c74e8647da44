package wesber_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/wesber"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDependency_MarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("remote dependency encodes null path", func(t *testing.T) {
		t.Parallel()

		dep := &wesber.Dependency{
			File:      "https://example.com/font.woff",
			Marker:    "#12345678",
			EntireURI: true,
		}

		b, err := json.Marshal(dep)

		require.NoError(t, err)
		assert.JSONEq(t, `{
			"file": "https://example.com/font.woff",
			"hash": "#12345678",
			"entireUri": true,
			"base64": false,
			"exists": false,
			"path": null
		}`, string(b))
	})

	t.Run("local dependency encodes path", func(t *testing.T) {
		t.Parallel()

		dep := &wesber.Dependency{
			File:   "bg.png",
			Marker: "#abcdef01",
			Exists: true,
			Path:   "/p/bg.png",
		}

		b, err := json.Marshal(dep)

		require.NoError(t, err)
		assert.JSONEq(t, `{
			"file": "bg.png",
			"hash": "#abcdef01",
			"entireUri": false,
			"base64": false,
			"exists": true,
			"path": "/p/bg.png"
		}`, string(b))
	})

	t.Run("empty result encodes empty dependency list", func(t *testing.T) {
		t.Parallel()

		r := &wesber.Result{File: "/p/a.css", Dependencies: []*wesber.Dependency{}}

		b, err := json.Marshal(r)

		require.NoError(t, err)
		assert.Contains(t, string(b), `"dependencies":[]`)
	})
}
