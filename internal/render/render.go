// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the dashboard and
// the public profile pages. Dashboard pages support full-page and HTMX
// partial rendering, detected via the HX-Request header.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"path/filepath"

	"linkhub/internal/middleware"
	"linkhub/internal/session"
	"linkhub/internal/theme"
)

//go:embed templates/dashboard/*.html templates/public/*.html
var templateFS embed.FS

// PageData holds all data passed to dashboard templates.
type PageData struct {
	Title     string         // Page title for <title> tag
	Tab       string         // Active dashboard tab ("links", "appearance", ...)
	Session   *session.Data  // Current user session (nil if unauthenticated)
	CSRFToken string         // CSRF token for forms and HTMX headers
	Data      map[string]any // Page-specific data
	Flash     string         // One-time notification message
	FlashType string         // "success" or "error"
}

// ProfilePageData is what the public profile template and the live
// preview partial consume. Both read only the RenderModel plus the
// pre-rendered bio HTML.
type ProfilePageData struct {
	Model   theme.RenderModel
	BioHTML template.HTML
}

// Renderer handles template parsing and execution.
type Renderer struct {
	dashboard map[string]*template.Template
	public    map[string]*template.Template
	funcMap   template.FuncMap
}

// standalone lists dashboard templates that render as full HTML pages
// without the base layout.
var standalone = map[string]bool{
	"login":      true,
	"signup":     true,
	"2fa_setup":  true,
	"2fa_verify": true,
	"preview":    true,
}

// New parses all templates from the embedded filesystem. When devMode
// is true, page heads load TailwindCSS and HTMX from CDN rather than
// the compiled /static bundle.
func New(devMode bool) (*Renderer, error) {
	r := &Renderer{
		dashboard: make(map[string]*template.Template),
		public:    make(map[string]*template.Template),
		funcMap: template.FuncMap{
			"activeClass": func(current, target string) string {
				if current == target {
					return "border-indigo-500 text-indigo-600"
				}
				return "border-transparent text-gray-500 hover:text-gray-700"
			},
			"deref": func(s *string) string {
				if s == nil {
					return ""
				}
				return *s
			},
			"isDev": func() bool {
				return devMode
			},
			// css marks a computed style value (background, color, font
			// stack) as safe so html/template doesn't mangle it.
			"css": func(s string) template.CSS {
				return template.CSS(s)
			},
		},
	}

	if err := r.parseDir("templates/dashboard", r.dashboard, "templates/dashboard/base.html"); err != nil {
		return nil, err
	}
	if err := r.parseDir("templates/public", r.public, ""); err != nil {
		return nil, err
	}
	return r, nil
}

// parseDir parses every page in dir. When base is non-empty, pages are
// paired with the base layout unless listed as standalone.
func (r *Renderer) parseDir(dir string, dst map[string]*template.Template, base string) error {
	entries, err := templateFS.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read templates %s: %w", dir, err)
	}

	for _, e := range entries {
		if e.IsDir() || e.Name() == "base.html" {
			continue
		}
		name := e.Name()[:len(e.Name())-len(".html")]

		var tmpl *template.Template
		var parseErr error
		if base == "" || standalone[name] {
			tmpl, parseErr = template.New(e.Name()).Funcs(r.funcMap).ParseFS(templateFS, filepath.Join(dir, e.Name()))
		} else {
			tmpl, parseErr = template.New("base.html").Funcs(r.funcMap).ParseFS(templateFS, base, filepath.Join(dir, e.Name()))
		}
		if parseErr != nil {
			return fmt.Errorf("parse template %s: %w", e.Name(), parseErr)
		}
		dst[name] = tmpl
	}
	return nil
}

// Page renders a full dashboard page or an HTMX partial, depending on
// the request headers. For HTMX requests only the "content" block is
// sent.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	tmpl, ok := rn.dashboard[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}

	data.CSRFToken = middleware.CSRFTokenFromCtx(r.Context())
	if data.Session == nil {
		data.Session = middleware.SessionFromCtx(r.Context())
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if isHTMX(r) && !standalone[name] {
		if err := tmpl.ExecuteTemplate(w, "content", data); err != nil {
			http.Error(w, "template error", http.StatusInternalServerError)
		}
		return
	}

	execName := "base.html"
	if standalone[name] {
		execName = name + ".html"
	}
	if err := tmpl.ExecuteTemplate(w, execName, data); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// Preview renders the phone-frame live preview partial.
func (rn *Renderer) Preview(w http.ResponseWriter, data *ProfilePageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := rn.dashboard["preview"].ExecuteTemplate(w, "preview.html", data); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// ProfileHTML renders the public profile page to a buffer so the
// handler can cache the result before writing it out.
func (rn *Renderer) ProfileHTML(data *ProfilePageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := rn.public["profile"].ExecuteTemplate(&buf, "profile.html", data); err != nil {
		return nil, fmt.Errorf("render profile: %w", err)
	}
	return buf.Bytes(), nil
}

// NotFound renders the public not-found page with a 404 status.
func (rn *Renderer) NotFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	rn.executeTo(w, rn.public["notfound"], "notfound.html", nil)
}

func (rn *Renderer) executeTo(w io.Writer, tmpl *template.Template, name string, data any) {
	_ = tmpl.ExecuteTemplate(w, name, data)
}

// isHTMX returns true if the request was made by HTMX.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
