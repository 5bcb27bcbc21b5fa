// Package views renders console pages and holds the page-side data shaping
// (search filters, chart aggregation, list state).
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/Masterminds/sprig/v3"
	"github.com/otcheredev/hms-console/internal/flash"
	"github.com/otcheredev/hms-console/internal/metrics"
	"github.com/otcheredev/hms-console/internal/router"
)

//go:embed templates/*.html templates/partials/*.html
var templateFS embed.FS

// Page is what every template receives
type Page struct {
	Title         string
	Path          string
	Authenticated bool
	Role          string
	DisplayName   string
	Flashes       []flash.Message
	Refresh       int // seconds; 0 disables the no-script refresh meta tag
	Data          any
}

// Nav returns the navbar entries for the page's role
func (p Page) Nav() []router.Route {
	return router.NavFor(p.Role)
}

// Renderer holds one parsed template set per page
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses the embedded layout, partials and pages
func NewRenderer() (*Renderer, error) {
	funcs := sprig.HtmlFuncMap()
	funcs["yesNo"] = func(b bool) string {
		if b {
			return "Yes"
		}
		return "No"
	}
	funcs["orDash"] = func(v any) any {
		switch x := v.(type) {
		case nil:
			return "—"
		case string:
			if x == "" {
				return "—"
			}
		case int:
			if x == 0 {
				return "—"
			}
		case int64:
			if x == 0 {
				return "—"
			}
		}
		return v
	}

	base, err := template.New("base").Funcs(funcs).ParseFS(templateFS, "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(files))}
	for _, file := range files {
		name := strings.TrimSuffix(path.Base(file), ".html")
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(templateFS, file); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", file, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Has reports whether a page template exists
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

// Render executes page name into w. Output is buffered so a template
// error never leaves a half-written page.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, page Page) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	if page.Title == "" {
		page.Title = router.Title(page.Path)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", page); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}

	metrics.PageRenders.WithLabelValues(name).Inc()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
