package mail

import (
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Template names understood by the renderer.
const (
	TemplateVerifyHTML  = "verify.html.tmpl"
	TemplateVerifyText  = "verify.txt.tmpl"
	TemplateConfirmHTML = "confirm.html.tmpl"
	TemplateConfirmText = "confirm.txt.tmpl"
)

// TemplateRenderer renders a named email template with the given variables.
type TemplateRenderer interface {
	Render(name string, data any) (string, error)
}

// EmailRenderer serves the embedded templates. HTML templates go through
// html/template so injected values are escaped.
type EmailRenderer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

func NewEmailRenderer() (*EmailRenderer, error) {
	html, err := htmltemplate.ParseFS(templateFS, "templates/*.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse html templates: %w", err)
	}
	text, err := texttemplate.ParseFS(templateFS, "templates/*.txt.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse text templates: %w", err)
	}
	return &EmailRenderer{html: html, text: text}, nil
}

func (r *EmailRenderer) Render(name string, data any) (string, error) {
	var sb strings.Builder
	var err error
	if strings.HasSuffix(name, ".html.tmpl") {
		err = r.html.ExecuteTemplate(&sb, name, data)
	} else {
		err = r.text.ExecuteTemplate(&sb, name, data)
	}
	if err != nil {
		return "", fmt.Errorf("render template %s: %w", name, err)
	}
	return sb.String(), nil
}
