package api

import (
	"html/template"
	"io"
	"path/filepath"

	"github.com/labstack/echo/v4"
)

// Renderer plugs html/template into echo for the server-rendered pages.
type Renderer struct {
	templates *template.Template
}

func NewRenderer(dir string) (*Renderer, error) {
	funcs := template.FuncMap{
		"addOne": func(i int) int { return i + 1 },
	}
	templates, err := template.New("").Funcs(funcs).ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: templates}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
