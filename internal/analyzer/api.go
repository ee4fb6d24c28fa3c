// Danmakuview - Danmaku Frequency Analytics Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/danmakuview

package analyzer

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/danmakuview/internal/logging"
	"github.com/tomtom215/danmakuview/internal/models"
)

// Analyzer API paths, relative to the base URL.
const (
	PathFetch       = "/fetch"
	PathTopDanmakus = "/top_danmakus"
	PathExportExcel = "/export_excel"
	PathDBInfo      = "/db_info"
	PathDBData      = "/db_data"
	PathWordCloud   = "/wordcloud"
)

// API is the operation set views and the CLI use to reach the analyzer.
// Failed calls are returned unchanged from the Requester.
type API struct {
	client Requester
	strict bool
}

// APIOption customizes an API.
type APIOption func(*API)

// WithStrictPayload makes an absent response field a *PayloadError
// wrapping ErrMissingField instead of an absent (nil) result.
func WithStrictPayload() APIOption {
	return func(a *API) { a.strict = true }
}

// NewAPI creates the façade over client.
func NewAPI(client Requester, opts ...APIOption) *API {
	a := &API{client: client}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Fetch asks the analyzer to replace its database with the danmakus of the
// first n videos matching keyword. It returns once the analyzer answers.
func (a *API) Fetch(ctx context.Context, keyword string, n int) error {
	resp, err := a.client.Get(ctx, PathFetch, url.Values{
		"keyword": {keyword},
		"n":       {strconv.Itoa(n)},
	})
	if err != nil {
		return err
	}
	logEnvelope(ctx, PathFetch, resp)
	return nil
}

// TopDanmakus returns the n most frequent danmakus in analyzer order.
//
// A response without top_danmakus (including non-JSON 4xx bodies) yields a
// nil slice and nil error unless the API is strict. An empty listing is a
// non-nil empty slice.
func (a *API) TopDanmakus(ctx context.Context, n int) ([]models.DanmakuFrequency, error) {
	resp, err := a.client.Get(ctx, PathTopDanmakus, url.Values{"n": {strconv.Itoa(n)}})
	if err != nil {
		return nil, err
	}

	raw, ok := lookupField(resp.Body, "top_danmakus")
	if !ok {
		logEnvelope(ctx, PathTopDanmakus, resp)
		return nil, a.missing(PathTopDanmakus, "top_danmakus", resp)
	}

	var items []models.DanmakuFrequency
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, malformed(PathTopDanmakus, "top_danmakus", resp, err)
	}
	return items, nil
}

// ExportExcel asks the analyzer to write its database to filename on the
// analyzer host. Nothing is downloaded.
func (a *API) ExportExcel(ctx context.Context, filename string) error {
	resp, err := a.client.Get(ctx, PathExportExcel, url.Values{"filename": {filename}})
	if err != nil {
		return err
	}
	logEnvelope(ctx, PathExportExcel, resp)
	return nil
}

// DBInfo returns database totals, or nil when the analyzer sent none.
func (a *API) DBInfo(ctx context.Context) (*models.DBInfo, error) {
	resp, err := a.client.Get(ctx, PathDBInfo, nil)
	if err != nil {
		return nil, err
	}
	return decodeObject[models.DBInfo](ctx, a, PathDBInfo, "total_video_count", resp)
}

// DBData returns one page of raw danmakus for bvid. size <= 0 asks for the
// whole video on one page.
func (a *API) DBData(ctx context.Context, bvid string, size, page int) (*models.DBPage, error) {
	resp, err := a.client.Get(ctx, PathDBData, url.Values{
		"bvid": {bvid},
		"size": {strconv.Itoa(size)},
		"page": {strconv.Itoa(page)},
	})
	if err != nil {
		return nil, err
	}
	return decodeObject[models.DBPage](ctx, a, PathDBData, "data", resp)
}

// Image is a binary image returned by the analyzer.
type Image struct {
	ContentType string
	Data        []byte
}

// WordCloud returns the rendered word cloud, or nil when the analyzer
// answered with something other than an image (an empty database, say).
func (a *API) WordCloud(ctx context.Context) (*Image, error) {
	resp, err := a.client.Get(ctx, PathWordCloud, nil)
	if err != nil {
		return nil, err
	}
	mt := resp.MediaType()
	if !strings.HasPrefix(mt, "image/") || len(resp.Body) == 0 {
		logEnvelope(ctx, PathWordCloud, resp)
		return nil, a.missing(PathWordCloud, "image", resp)
	}
	return &Image{ContentType: mt, Data: resp.Body}, nil
}

func (a *API) missing(path, field string, resp *Response) error {
	if !a.strict {
		return nil
	}
	return &PayloadError{
		Endpoint:   strings.Trim(path, "/"),
		Field:      field,
		StatusCode: resp.StatusCode,
		Err:        ErrMissingField,
	}
}

func malformed(path, field string, resp *Response, err error) error {
	return &PayloadError{
		Endpoint:   strings.Trim(path, "/"),
		Field:      field,
		StatusCode: resp.StatusCode,
		Err:        fmt.Errorf("%w: %w", ErrMalformedField, err),
	}
}

// decodeObject decodes the whole body into T when key is present.
func decodeObject[T any](ctx context.Context, a *API, path, key string, resp *Response) (*T, error) {
	if _, ok := lookupField(resp.Body, key); !ok {
		logEnvelope(ctx, path, resp)
		return nil, a.missing(path, key, resp)
	}
	var out T
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return nil, malformed(path, key, resp, err)
	}
	return &out, nil
}

// lookupField returns the raw value of field when body is a JSON object
// holding a non-null value for it.
func lookupField(body []byte, field string) (json.RawMessage, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, false
	}
	raw, ok := obj[field]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, false
	}
	return raw, true
}

// logEnvelope notes analyzer-level failures that arrive on accepted
// statuses. Callers still see a resolved call.
func logEnvelope(ctx context.Context, path string, resp *Response) {
	env, ok := resp.Envelope()
	if !ok || env.OK() {
		return
	}
	logging.Ctx(ctx).Info().
		Str("endpoint", strings.Trim(path, "/")).
		Int("status", resp.StatusCode).
		Int("code", env.Code).
		Str("analyzer_message", env.Message).
		Msg("analyzer reported non-success code")
}
