package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = map[Kind]*template.Template{
	KindHome:     parse("templates/home.html"),
	KindProfile:  parse("templates/profile.html"),
	KindNotFound: parse("templates/notfound.html"),
}

func parse(body string) *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/layout.html", body))
}

// Render writes the HTML document for p to w.
// The output is buffered so that w never sees a partially executed template.
func Render(w io.Writer, p Page) error {
	tmpl, ok := pages[p.Kind]
	if !ok {
		return fmt.Errorf("unknown page kind %d", p.Kind)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", p); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}
