// Package view renders the board's HTML pages.
//
// Templates are embedded in the binary; when a template directory is
// configured the renderer loads from disk instead and reloads on file
// change, which keeps template editing round-trips short during
// development.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"sync"
	"time"
)

//go:embed templates/*.html
var templateFiles embed.FS

var funcs = template.FuncMap{
	"markdown":   Markdown,
	"formatTime": formatTime,
}

// Renderer renders named page templates.
type Renderer struct {
	mu   sync.RWMutex
	tmpl *template.Template
	dir  string
}

// New creates a Renderer over the embedded templates.
func New() (*Renderer, error) {
	tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// NewFromDir creates a Renderer that loads templates from disk.
// Combine with Watch for automatic reloads.
func NewFromDir(dir string) (*Renderer, error) {
	r := &Renderer{dir: dir}
	if err := r.reload(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Renderer) reload() error {
	tmpl, err := template.New("").Funcs(funcs).ParseGlob(r.dir + "/*.html")
	if err != nil {
		return fmt.Errorf("failed to parse templates in %s: %w", r.dir, err)
	}

	r.mu.Lock()
	r.tmpl = tmpl
	r.mu.Unlock()
	return nil
}

// Render writes the named template with the given data.
func (r *Renderer) Render(w io.Writer, name string, data interface{}) error {
	r.mu.RLock()
	tmpl := r.tmpl
	r.mu.RUnlock()

	return tmpl.ExecuteTemplate(w, name, data)
}

func formatTime(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}
