// Danmakuview - Danmaku Frequency Analytics Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/danmakuview

package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/tomtom215/danmakuview/internal/analyzer"
	"github.com/tomtom215/danmakuview/internal/i18n"
	"github.com/tomtom215/danmakuview/internal/logging"
	"github.com/tomtom215/danmakuview/internal/notify"
	"github.com/tomtom215/danmakuview/internal/validation"
)

// defaultFetchCount prefills the fetch form.
const defaultFetchCount = 3

func (s *Server) newPage(w http.ResponseWriter, r *http.Request, view string) *page {
	loc := s.bundle.FromRequest(r)
	nav := make([]navItem, 0, len(Routes))
	for _, route := range Routes {
		key := "nav." + strings.ToLower(route.View)
		nav = append(nav, navItem{Href: route.Href(), Label: loc.T(key), Active: route.View == view})
	}
	var query string
	if r.URL.Query().Get(i18n.QueryParam) != "" {
		query = "?" + i18n.QueryParam + "=" + loc.Lang()
	}
	return &page{
		L:             loc,
		View:          view,
		Base:          BasePath,
		Path:          r.URL.Path,
		Query:         query,
		Nav:           nav,
		Position:      s.center.Position(),
		Notifications: s.flash.Pop(w, r),
		LiveNotify:    s.hub != nil,
	}
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, p *page) {
	if err := s.renderer.Render(w, status, p); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("view", p.View).Msg("failed to render view")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// viewHandler renders the routed view.
func (s *Server) viewHandler(view string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := s.newPage(w, r, view)
		switch view {
		case ViewMain:
			s.loadMain(r, p, &mainData{N: defaultFetchCount})
		case ViewDanmaku:
			n, verr := s.topN(r)
			if verr != nil {
				p.Notifications = append(p.Notifications, s.center.New(notify.TypeWarning, fieldErrors(p.L, verr)["n"]))
			}
			s.loadDanmaku(r, p, &danmakuData{N: n})
		}
		s.render(w, r, http.StatusOK, p)
	}
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	p := s.newPage(w, r, viewNotFound)
	s.render(w, r, http.StatusNotFound, p)
}

// loadMain fills the database summary. A rejected call becomes an inline
// notification; the form still renders.
func (s *Server) loadMain(r *http.Request, p *page, data *mainData) {
	info, err := s.api.DBInfo(r.Context())
	if err != nil {
		p.Notifications = append(p.Notifications, s.center.New(notify.TypeNegative, describeError(p.L, err)))
	}
	data.Info = info
	p.Main = data
}

func (s *Server) loadDanmaku(r *http.Request, p *page, data *danmakuData) {
	items, err := s.api.TopDanmakus(r.Context(), data.N)
	if err != nil {
		p.Notifications = append(p.Notifications,
			s.center.New(notify.TypeNegative, p.L.T("notify.top.failed", describeError(p.L, err))))
	}
	data.Items = items
	data.Absent = err == nil && items == nil
	p.Danmaku = data
}

// topN reads ?n=, falling back to the configured default when missing or
// invalid. The validation error is returned for display.
func (s *Server) topN(r *http.Request) (int, *validation.RequestValidationError) {
	def := s.cfg.UI.DefaultTopN
	raw := r.URL.Query().Get("n")
	if raw == "" {
		return def, nil
	}
	req := validation.TopRequest{N: atoiOrZero(raw)}
	if verr := validation.ValidateStruct(&req); verr != nil {
		return def, verr
	}
	return req.N, nil
}

func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	form := validation.FetchRequest{
		Keyword: r.PostForm.Get("keyword"),
		N:       atoiOrZero(r.PostForm.Get("n")),
	}
	if verr := validation.ValidateStruct(&form); verr != nil {
		p := s.newPage(w, r, ViewMain)
		errs := fieldErrors(p.L, verr)
		p.Notifications = append(p.Notifications, s.center.New(notify.TypeNegative, joinErrors(errs)))
		s.loadMain(r, p, &mainData{Keyword: form.Keyword, N: form.N, Errors: errs})
		s.render(w, r, http.StatusBadRequest, p)
		return
	}

	loc := s.bundle.FromRequest(r)
	var n notify.Notification
	if err := s.api.Fetch(r.Context(), form.Keyword, form.N); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Str("keyword", form.Keyword).Msg("fetch failed")
		n = s.center.Notify(r.Context(), notify.TypeNegative, loc.T("notify.fetch.failed", describeError(loc, err)))
	} else {
		logging.Ctx(r.Context()).Info().Str("keyword", form.Keyword).Int("n", form.N).Msg("fetch completed")
		n = s.center.Notify(r.Context(), notify.TypePositive, loc.T("notify.fetch.ok", form.Keyword))
	}
	s.redirectWith(w, r, routeFor(ViewMain).Href(), n)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	form := validation.ExportRequest{Filename: r.PostForm.Get("filename")}
	if verr := validation.ValidateStruct(&form); verr != nil {
		p := s.newPage(w, r, ViewDanmaku)
		errs := fieldErrors(p.L, verr)
		p.Notifications = append(p.Notifications, s.center.New(notify.TypeNegative, joinErrors(errs)))
		s.loadDanmaku(r, p, &danmakuData{N: s.cfg.UI.DefaultTopN, Filename: form.Filename, Errors: errs})
		s.render(w, r, http.StatusBadRequest, p)
		return
	}

	loc := s.bundle.FromRequest(r)
	var n notify.Notification
	if err := s.api.ExportExcel(r.Context(), form.Filename); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Str("filename", form.Filename).Msg("export failed")
		n = s.center.Notify(r.Context(), notify.TypeNegative, loc.T("notify.export.failed", describeError(loc, err)))
	} else {
		n = s.center.Notify(r.Context(), notify.TypePositive, loc.T("notify.export.ok", form.Filename))
	}
	s.redirectWith(w, r, routeFor(ViewDanmaku).Href(), n)
}

// redirectWith flashes n and sends the browser back to target with 303.
// An explicit locale is carried so the next view keeps it.
func (s *Server) redirectWith(w http.ResponseWriter, r *http.Request, target string, n notify.Notification) {
	if err := s.flash.Set(w, n); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("failed to set flash")
	}
	if r.URL.Query().Get(i18n.QueryParam) != "" {
		target += "?" + i18n.QueryParam + "=" + s.bundle.FromRequest(r).Lang()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) handleWordCloud(w http.ResponseWriter, r *http.Request) {
	img, err := s.api.WordCloud(r.Context())
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("word cloud unavailable")
		http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		return
	}
	if img == nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", img.ContentType)
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Length", strconv.Itoa(len(img.Data)))
	_, _ = w.Write(img.Data)
}

// handleTopDanmakusJSON mirrors the listing for page scripts. An absent
// listing is a success without data.
func (s *Server) handleTopDanmakusJSON(w http.ResponseWriter, r *http.Request) {
	n, verr := s.topN(r)
	if verr != nil {
		apiErr := verr.ToAPIError()
		respondError(w, r, http.StatusBadRequest, ErrCodeValidationFailed, apiErr.Message, apiErr.Details)
		return
	}

	items, err := s.api.TopDanmakus(r.Context(), n)
	if err != nil {
		msg := describeError(s.bundle.FromRequest(r), err)
		respondError(w, r, http.StatusBadGateway, ErrCodeExternalServiceFail, msg, nil)
		return
	}

	meta := newMeta(r)
	if items != nil {
		count := len(items)
		meta.Count = &count
		respondSuccess(w, r, items, meta)
		return
	}
	respondSuccess(w, r, nil, meta)
}

// describeError turns an analyzer failure into a short localized reason.
func describeError(loc *i18n.Localizer, err error) string {
	var se *analyzer.StatusError
	if errors.As(err, &se) {
		return loc.T("notify.analyzer.error", se.StatusCode)
	}
	var te *analyzer.TransportError
	if errors.As(err, &te) {
		return loc.T("notify.analyzer.down")
	}
	return err.Error()
}

// fieldErrors localizes validation failures keyed by form field.
func fieldErrors(loc *i18n.Localizer, verr *validation.RequestValidationError) map[string]string {
	out := make(map[string]string, len(verr.Errors()))
	for _, fe := range verr.Errors() {
		if _, seen := out[fe.Field()]; !seen {
			out[fe.Field()] = loc.FieldError(fe.Field(), fe.Tag(), fe.Param())
		}
	}
	return out
}

func joinErrors(errs map[string]string) string {
	order := []string{"keyword", "n", "filename"}
	parts := make([]string, 0, len(errs))
	for _, field := range order {
		if msg, ok := errs[field]; ok {
			parts = append(parts, msg)
		}
	}
	return strings.Join(parts, "; ")
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
