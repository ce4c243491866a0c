package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
)

// PlayerColors are the colors offered for players.
var PlayerColors = []string{"gray", "red", "orange", "yellow", "green", "teal", "blue", "purple", "pink"}

var templateFuncs = template.FuncMap{
	"playerColors": func() []string { return PlayerColors },
	"signed": func(n int) string {
		if n > 0 {
			return fmt.Sprintf("+%d", n)
		}
		return fmt.Sprintf("%d", n)
	},
}

// Renderer executes pages and fragments from one template set.
type Renderer struct {
	templates *template.Template
	logger    *slog.Logger
}

// NewRenderer parses templates/*.html and templates/partials/*.html from fsys.
func NewRenderer(fsys fs.FS, logger *slog.Logger) (*Renderer, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(fsys, "templates/*.html", "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: tmpl, logger: logger}, nil
}

// Render executes the named template with the given status. Output is
// buffered so a template failure turns into a clean 500.
func (rd *Renderer) Render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := rd.templates.ExecuteTemplate(&buf, name, data); err != nil {
		rd.logger.Error("template error", "template", name, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
