// Package render is the default template layer behind frontend.Renderer.
// Templates are embedded; each view model maps to one file under
// templates/. The templating pipeline itself is minimal; styling and
// layout belong to a deployment's own template set.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templatesFS embed.FS

// HTML renders view models through the embedded templates.
type HTML struct {
	tmpl *template.Template
}

// New parses the embedded template set.
func New() (*HTML, error) {
	tmpl := template.New("").Funcs(template.FuncMap{
		// raw marks pre-sanitized HTML as safe for direct injection.
		"raw": func(s string) template.HTML { return template.HTML(s) },
	})
	tmpl, err := tmpl.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("render: parse templates: %w", err)
	}
	return &HTML{tmpl: tmpl}, nil
}

// Render writes the named view with the given status.
func (h *HTML) Render(w http.ResponseWriter, status int, view string, data any) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	return h.tmpl.ExecuteTemplate(w, view+".html", data)
}
