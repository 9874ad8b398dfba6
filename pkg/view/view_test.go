package view

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdown(t *testing.T) {
	t.Run("renders basic formatting", func(t *testing.T) {
		html := string(Markdown("**bold** and _italic_"))

		assert.Contains(t, html, "<strong>bold</strong>")
		assert.Contains(t, html, "<em>italic</em>")
	})

	t.Run("renders GFM tables", func(t *testing.T) {
		html := string(Markdown("| a | b |\n|---|---|\n| 1 | 2 |"))

		assert.Contains(t, html, "<table>")
	})

	t.Run("does not pass raw HTML through", func(t *testing.T) {
		html := string(Markdown(`<script>alert("x")</script>`))

		assert.NotContains(t, html, "<script>")
	})
}

func TestRenderEmbedded(t *testing.T) {
	renderer, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = renderer.Render(&buf, "error.html", struct {
		Status  int
		Message string
	}{Status: 404, Message: "No such post"})

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "404")
	assert.Contains(t, buf.String(), "No such post")
}

func TestRenderEscapesUserContent(t *testing.T) {
	renderer, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = renderer.Render(&buf, "error.html", struct {
		Status  int
		Message string
	}{Status: 400, Message: `<img src=x onerror=alert(1)>`})

	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "<img src=x")
}

func TestNewFromDir(t *testing.T) {
	t.Run("loads templates from disk", func(t *testing.T) {
		dir := t.TempDir()
		writeTemplate(t, dir, "page.html", "<p>{{.Message}}</p>")

		renderer, err := NewFromDir(dir)
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, renderer.Render(&buf, "page.html", map[string]string{"Message": "hi"}))
		assert.Equal(t, "<p>hi</p>", strings.TrimSpace(buf.String()))
	})

	t.Run("fails on an empty directory", func(t *testing.T) {
		_, err := NewFromDir(t.TempDir())
		assert.Error(t, err)
	})

	t.Run("reload picks up edited templates", func(t *testing.T) {
		dir := t.TempDir()
		writeTemplate(t, dir, "page.html", "before")

		renderer, err := NewFromDir(dir)
		require.NoError(t, err)

		writeTemplate(t, dir, "page.html", "after")
		require.NoError(t, renderer.reload())

		var buf bytes.Buffer
		require.NoError(t, renderer.Render(&buf, "page.html", nil))
		assert.Equal(t, "after", buf.String())
	})
}
