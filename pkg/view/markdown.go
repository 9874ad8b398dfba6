package view

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// Markdown renders a post body as HTML. Raw HTML in the source is not
// passed through, so the result is safe to emit unescaped.
func Markdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		// fall back to the escaped source text
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(buf.String())
}
