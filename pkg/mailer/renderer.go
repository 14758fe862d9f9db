package mailer

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io/fs"
	"path"
	"sync"
	"text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed templates
var embedded embed.FS

// Templates returns the built-in templates.
func Templates() fs.FS {
	sub, _ := fs.Sub(embedded, "templates")
	return sub
}

// Renderer turns templates from a filesystem into HTML and plain text. Parsed
// templates and layouts are cached.
type Renderer struct {
	fsys fs.FS
	md   goldmark.Markdown

	mu        sync.RWMutex
	templates map[string]*parsedTemplate
	layouts   map[string]*htmltemplate.Template
}

type parsedTemplate struct {
	meta map[string]any
	body *template.Template
}

// Rendered is the output of Render.
type Rendered struct {
	Subject string
	HTML    string
	Text    string
}

// NewRenderer reads templates from the root of fsys and layouts from "layouts/".
func NewRenderer(fsys fs.FS) *Renderer {
	return &Renderer{
		fsys:      fsys,
		md:        goldmark.New(goldmark.WithExtensions(extension.Linkify, extension.Table)),
		templates: make(map[string]*parsedTemplate),
		layouts:   make(map[string]*htmltemplate.Template),
	}
}

// Render executes name with data inside layout. The subject comes from the
// "subject" front matter key and is itself a template.
func (r *Renderer) Render(layout, name string, data any) (*Rendered, error) {
	t, err := r.template(name)
	if err != nil {
		return nil, err
	}

	var md bytes.Buffer
	if err := t.body.Execute(&md, data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}

	var content bytes.Buffer
	if err := r.md.Convert(md.Bytes(), &content); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}

	var subject string
	if raw, ok := t.meta["subject"].(string); ok {
		if subject, err = executeString(raw, data); err != nil {
			return nil, fmt.Errorf("%w: %s subject: %v", ErrRenderFailed, name, err)
		}
	}

	l, err := r.layout(layout)
	if err != nil {
		return nil, err
	}

	var html bytes.Buffer
	if err := l.Execute(&html, map[string]any{
		"Subject": subject,
		"Content": htmltemplate.HTML(content.String()), //nolint:gosec // produced by goldmark, which escapes raw HTML
	}); err != nil {
		return nil, fmt.Errorf("%w: layout %s: %v", ErrRenderFailed, layout, err)
	}

	return &Rendered{Subject: subject, HTML: html.String(), Text: md.String()}, nil
}

func (r *Renderer) template(name string) (*parsedTemplate, error) {
	r.mu.RLock()
	t, ok := r.templates[name]
	r.mu.RUnlock()
	if ok {
		return t, nil
	}

	raw, err := fs.ReadFile(r.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	parsed, err := ParseTemplate(raw)
	if err != nil {
		return nil, err
	}
	body, err := template.New(name).Parse(parsed.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}

	t = &parsedTemplate{meta: parsed.Metadata, body: body}
	r.mu.Lock()
	r.templates[name] = t
	r.mu.Unlock()
	return t, nil
}

func (r *Renderer) layout(name string) (*htmltemplate.Template, error) {
	r.mu.RLock()
	l, ok := r.layouts[name]
	r.mu.RUnlock()
	if ok {
		return l, nil
	}

	raw, err := fs.ReadFile(r.fsys, path.Join("layouts", name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrLayoutNotFound, name)
	}
	l, err = htmltemplate.New(name).Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: layout %s: %v", ErrRenderFailed, name, err)
	}

	r.mu.Lock()
	r.layouts[name] = l
	r.mu.Unlock()
	return l, nil
}

func executeString(text string, data any) (string, error) {
	t, err := template.New("").Parse(text)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
