// Danmakuview - Danmaku Frequency Analytics Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/danmakuview

package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/tomtom215/danmakuview/internal/i18n"
	"github.com/tomtom215/danmakuview/internal/models"
	"github.com/tomtom215/danmakuview/internal/notify"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed assets
var assetFS embed.FS

// viewNotFound renders the shell with no routed view.
const viewNotFound = ""

var templateFuncs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}

// Renderer owns one parsed template set per view, each layout + view.
type Renderer struct {
	views map[string]*template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	files := map[string]string{
		ViewMain:     "main.html",
		ViewDanmaku:  "danmaku.html",
		viewNotFound: "notfound.html",
	}
	views := make(map[string]*template.Template, len(files))
	for view, file := range files {
		t, err := template.New("layout.html").Funcs(templateFuncs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+file)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", file, err)
		}
		views[view] = t
	}
	return &Renderer{views: views}, nil
}

// Render executes p into a buffer and writes it with status.
func (rr *Renderer) Render(w http.ResponseWriter, status int, p *page) error {
	t, ok := rr.views[p.View]
	if !ok {
		return fmt.Errorf("no template for view %q", p.View)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, p); err != nil {
		return fmt.Errorf("render %q: %w", p.View, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// assetHandler serves the embedded CSS and JS under BasePath/assets/.
func assetHandler() http.Handler {
	sub, err := fs.Sub(assetFS, "assets")
	if err != nil {
		panic(err) // embed path is fixed at compile time
	}
	return http.StripPrefix(BasePath+"/assets/", http.FileServer(http.FS(sub)))
}

type navItem struct {
	Href   string
	Label  string
	Active bool
}

// page is the data every template receives.
type page struct {
	L             *i18n.Localizer
	View          string
	Base          string
	Path          string
	Query         string
	Nav           []navItem
	Position      notify.Position
	Notifications []notify.Notification
	LiveNotify    bool

	Main    *mainData
	Danmaku *danmakuData
}

type mainData struct {
	Keyword string
	N       int
	Info    *models.DBInfo
	Errors  map[string]string
}

type danmakuData struct {
	N        int
	Items    []models.DanmakuFrequency
	Absent   bool // the analyzer answered without a listing
	Filename string
	Errors   map[string]string
}

// Title returns the document title for the page.
func (p *page) Title() string {
	app := p.L.T("app.title")
	switch p.View {
	case ViewMain:
		return p.L.T("nav.main") + " · " + app
	case ViewDanmaku:
		return p.L.T("nav.danmaku") + " · " + app
	}
	return p.L.T("notfound.title") + " · " + app
}

// PositionClass is the CSS modifier for the notification stack.
func (p *page) PositionClass() string {
	return "toasts--" + strings.ToLower(string(p.Position))
}
