// Package view renders the server-side HTML pages. Each page template
// defines a "content" block which is wrapped by the shared base layout.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

var pages = []string{"index", "persons", "update", "error"}

type Renderer struct {
	templates map[string]*template.Template
}

func New() (*Renderer, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := template.ParseFS(templateFS, "templates/base.gohtml", "templates/"+page+".gohtml")
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %q: %w", page, err)
		}
		templates[page] = tmpl
	}
	return &Renderer{templates: templates}, nil
}

// Render executes the named page template. The page is buffered first so a
// template error never produces a half-written response body.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data any) error {
	tmpl, ok := r.templates[page]
	if !ok {
		return fmt.Errorf("unknown template %q", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("failed to render template %q: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
