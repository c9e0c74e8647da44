package goquery_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/wesber"
	"github.com/fwojciec/wesber/fs"
	"github.com/fwojciec/wesber/goquery"
	"github.com/fwojciec/wesber/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFS(content string) *mock.FileSystem {
	return &mock.FileSystem{
		ReadFileFn: func(_ context.Context, _ string) (string, error) {
			return content, nil
		},
		IsFileFn: func(string) bool { return false },
	}
}

func files(deps []*wesber.Dependency) []string {
	out := make([]string, 0, len(deps))
	for _, d := range deps {
		out = append(out, d.File)
	}
	return out
}

const page = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <link rel="stylesheet" href="css/style.css">
  <script src="https://cdn.example.com/app.js"></script>
  <script>var s = "<img src='nope.png'>";</script>
</head>
<body>
  <IMG SRC='img/logo.png' alt="Logo">
  <img src="data:image/png;base64,iVBORw0KGgo=">
  <video src=movie.mp4 controls></video>
  <audio src="  "></audio>
  <embed src="flash.swf"/>
  <object data="doc.pdf"></object>
  <a href="page.html">link</a>
</body>
</html>
`

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts every resource-bearing element in document order", func(t *testing.T) {
		t.Parallel()

		// Given a page with assorted resources
		e := goquery.NewExtractor(newFS(page))

		// When extracting it
		got, err := e.Extract(context.Background(), "/site/index.html", wesber.Options{})

		// Then every non-blank reference is recorded in order
		require.NoError(t, err)
		assert.Equal(t, []string{
			"css/style.css",
			"https://cdn.example.com/app.js",
			"img/logo.png",
			"data:image/png;base64,iVBORw0KGgo=",
			"movie.mp4",
			"flash.swf",
			"doc.pdf",
		}, files(got.Dependencies))

		deps := got.Dependencies
		assert.Equal(t, "/site/css/style.css", deps[0].Path)
		assert.True(t, deps[1].EntireURI)
		assert.Empty(t, deps[1].Path)
		assert.Equal(t, "/site/img/logo.png", deps[2].Path)
		assert.True(t, deps[3].Base64)

		// And only the reference values change in the output
		want := page
		for _, r := range []struct{ old, new string }{
			{`href="css/style.css"`, `href="` + deps[0].Marker + `"`},
			{`src="https://cdn.example.com/app.js"`, `src="` + deps[1].Marker + `"`},
			{`SRC='img/logo.png'`, `SRC='` + deps[2].Marker + `'`},
			{`src="data:image/png;base64,iVBORw0KGgo="`, `src="` + deps[3].Marker + `"`},
			{`src=movie.mp4`, `src=` + deps[4].Marker},
			{`src="flash.swf"`, `src="` + deps[5].Marker + `"`},
			{`data="doc.pdf"`, `data="` + deps[6].Marker + `"`},
		} {
			want = strings.Replace(want, r.old, r.new, 1)
		}
		assert.Equal(t, want, got.Replacer)
		assert.Equal(t, page, got.Source)
		assert.Equal(t, wesber.ContentHash(got.Replacer), got.ContentHash)
	})

	t.Run("skips tags outside the resolved list", func(t *testing.T) {
		t.Parallel()

		src := `<img src="x.png">`
		e := goquery.NewExtractor(newFS(src))

		got, err := e.Extract(context.Background(), "/site/index.html", wesber.Options{Resolved: []string{"link"}})

		require.NoError(t, err)
		assert.NotNil(t, got.Dependencies)
		assert.Empty(t, got.Dependencies)
		assert.Equal(t, src, got.Replacer)
	})

	t.Run("extracts resolved tags in order", func(t *testing.T) {
		t.Parallel()

		src := `<link href="a.css"><iframe src="b.htm">`
		e := goquery.NewExtractor(newFS(src))

		got, err := e.Extract(context.Background(), "/site/index.html", wesber.Options{Resolved: []string{"link", "iframe"}})

		require.NoError(t, err)
		assert.Equal(t, []string{"a.css", "b.htm"}, files(got.Dependencies))
		assert.Equal(t,
			`<link href="`+got.Dependencies[0].Marker+`"><iframe src="`+got.Dependencies[1].Marker+`">`,
			got.Replacer)
	})

	t.Run("trims reference values", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor(newFS(`<img src=" x.png ">`))

		got, err := e.Extract(context.Background(), "/site/index.html", wesber.Options{})

		require.NoError(t, err)
		require.Len(t, got.Dependencies, 1)
		assert.Equal(t, "x.png", got.Dependencies[0].File)
		assert.Equal(t, `<img src="`+got.Dependencies[0].Marker+`">`, got.Replacer)
	})

	t.Run("extracts elements inside noscript", func(t *testing.T) {
		t.Parallel()

		// Given fallbacks inside noscript in head and body
		src := `<head><noscript><link href="ns.css" rel="stylesheet"></noscript></head>` +
			`<body><noscript><img src="n.png"></noscript><img src="a.png"></body>`
		e := goquery.NewExtractor(newFS(src))

		// When extracting
		got, err := e.Extract(context.Background(), "/site/index.html", wesber.Options{})

		// Then they are extracted in document order
		require.NoError(t, err)
		assert.Equal(t, []string{"ns.css", "n.png", "a.png"}, files(got.Dependencies))
		assert.Equal(t,
			`<head><noscript><link href="`+got.Dependencies[0].Marker+`" rel="stylesheet"></noscript></head>`+
				`<body><noscript><img src="`+got.Dependencies[1].Marker+`"></noscript><img src="`+got.Dependencies[2].Marker+`"></body>`,
			got.Replacer)
	})

	t.Run("unescapes entities in references", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor(newFS(`<img src="a&amp;b.png">`))

		got, err := e.Extract(context.Background(), "/site/index.html", wesber.Options{})

		require.NoError(t, err)
		require.Len(t, got.Dependencies, 1)
		assert.Equal(t, "a&b.png", got.Dependencies[0].File)
		assert.Equal(t, "/site/a&b.png", got.Dependencies[0].Path)
	})

	t.Run("skips elements without reference", func(t *testing.T) {
		t.Parallel()

		src := `<script>alert(1)</script><link rel="preconnect"><img alt="">`
		e := goquery.NewExtractor(newFS(src))

		got, err := e.Extract(context.Background(), "/site/index.html", wesber.Options{})

		require.NoError(t, err)
		assert.Empty(t, got.Dependencies)
		assert.Equal(t, src, got.Replacer)
	})

	t.Run("repeated targets share a marker", func(t *testing.T) {
		t.Parallel()

		src := `<img src="img/a.png"><img src="./img/a.png"><img src="img/b.png">`
		e := goquery.NewExtractor(newFS(src))

		got, err := e.Extract(context.Background(), "/site/index.html", wesber.Options{})

		require.NoError(t, err)
		require.Len(t, got.Dependencies, 3)
		assert.Equal(t, got.Dependencies[0].Marker, got.Dependencies[1].Marker)
		assert.NotEqual(t, got.Dependencies[0].Marker, got.Dependencies[2].Marker)
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor(newFS(page))

		first, err := e.Extract(context.Background(), "/site/index.html", wesber.Options{})
		require.NoError(t, err)
		second, err := e.Extract(context.Background(), "/site/index.html", wesber.Options{})
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("returns read errors unchanged", func(t *testing.T) {
		t.Parallel()

		readErr := errors.New("disk on fire")
		e := goquery.NewExtractor(&mock.FileSystem{
			ReadFileFn: func(context.Context, string) (string, error) {
				return "", readErr
			},
		})

		_, err := e.Extract(context.Background(), "/site/index.html", wesber.Options{})

		assert.Equal(t, readErr, err)
	})
}

func TestExtractor_Extract_Disk(t *testing.T) {
	t.Parallel()

	t.Run("resolves existence against disk", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "js"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "js", "app.js"), []byte("1"), 0644))
		path := filepath.Join(dir, "index.html")
		src := `<script src="js/app.js"></script><img src="missing.png">`
		require.NoError(t, os.WriteFile(path, []byte(src), 0644))

		got, err := goquery.NewExtractor(fs.NewFileSystem()).Extract(context.Background(), path, wesber.Options{})

		require.NoError(t, err)
		require.Len(t, got.Dependencies, 2)
		assert.True(t, got.Dependencies[0].Exists)
		assert.False(t, got.Dependencies[1].Exists)
		assert.Equal(t, filepath.Join(dir, "missing.png"), got.Dependencies[1].Path)
	})

	t.Run("missing document is not-exist", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "index.html")

		_, err := goquery.NewExtractor(fs.NewFileSystem()).Extract(context.Background(), path, wesber.Options{})

		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
		assert.Contains(t, err.Error(), "no such file or directory")
	})
}
