// Danmakuview - Danmaku Frequency Analytics Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/danmakuview

package analyzer

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"reflect"
	"testing"

	"github.com/tomtom215/danmakuview/internal/models"
)

// recordedRequest captures what the façade sent.
type recordedRequest struct {
	path  string
	query url.Values
}

// fakeBackend answers every request with the given status, content type and body.
func fakeBackend(t *testing.T, status int, contentType, body string) (*API, chan recordedRequest) {
	t.Helper()
	seen := make(chan recordedRequest, 4)
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen <- recordedRequest{path: r.URL.Path, query: r.URL.Query()}
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
	return NewAPI(client), seen
}

func TestAPI_TopDanmakus_Scenario(t *testing.T) {
	t.Parallel()

	api, seen := fakeBackend(t, http.StatusOK, "application/json",
		`{"top_danmakus":[{"danmaku":"lol","count":42},{"danmaku":"gg","count":17},{"danmaku":"nice","count":9}]}`)

	got, err := api.TopDanmakus(context.Background(), 3)
	if err != nil {
		t.Fatalf("TopDanmakus() error = %v", err)
	}

	want := []models.DanmakuFrequency{
		{Danmaku: "lol", Count: 42},
		{Danmaku: "gg", Count: 17},
		{Danmaku: "nice", Count: 9},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopDanmakus() = %+v, want %+v", got, want)
	}

	req := <-seen
	if req.path != "/api/top_danmakus" {
		t.Errorf("path = %q, want /api/top_danmakus", req.path)
	}
	if req.query.Get("n") != "3" {
		t.Errorf("n = %q, want 3", req.query.Get("n"))
	}
}

func TestAPI_TopDanmakus_PreservesOrderAndValues(t *testing.T) {
	t.Parallel()

	// counts deliberately out of order; the façade must not sort
	api, _ := fakeBackend(t, http.StatusOK, "application/json",
		`{"code":0,"message":"success","top_danmakus":[{"danmaku":"a","count":1},{"danmaku":"哈哈哈","count":300},{"danmaku":"b","count":0}]}`)

	got, err := api.TopDanmakus(context.Background(), 3)
	if err != nil {
		t.Fatal(err)
	}
	want := []models.DanmakuFrequency{
		{Danmaku: "a", Count: 1},
		{Danmaku: "哈哈哈", Count: 300},
		{Danmaku: "b", Count: 0},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestAPI_TopDanmakus_EmptyList(t *testing.T) {
	t.Parallel()

	api, _ := fakeBackend(t, http.StatusOK, "application/json", `{"top_danmakus":[]}`)
	got, err := api.TopDanmakus(context.Background(), 5)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected non-nil empty slice, got %#v", got)
	}
}

func TestAPI_TopDanmakus_Absent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"missing field", http.StatusOK, `{"code":0,"message":"success"}`},
		{"null field", http.StatusOK, `{"top_danmakus":null}`},
		{"empty database envelope", http.StatusForbidden, `{"code":1,"message":"empty database"}`},
		{"plain text 400", http.StatusBadRequest, `Bad request`},
		{"not found", http.StatusNotFound, `404: Not Found`},
		{"empty body", http.StatusOK, ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			api, _ := fakeBackend(t, tt.status, "", tt.body)
			got, err := api.TopDanmakus(context.Background(), 3)
			if err != nil {
				t.Fatalf("expected resolve, got %v", err)
			}
			if got != nil {
				t.Errorf("expected absent result, got %+v", got)
			}
		})
	}
}

func TestAPI_TopDanmakus_StrictMissing(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"code":0,"message":"success"}`))
	})
	api := NewAPI(client, WithStrictPayload())

	_, err := api.TopDanmakus(context.Background(), 3)
	var pe *PayloadError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *PayloadError, got %v", err)
	}
	if !errors.Is(err, ErrMissingField) {
		t.Errorf("expected ErrMissingField, got %v", err)
	}
	if pe.Field != "top_danmakus" || pe.Endpoint != "top_danmakus" {
		t.Errorf("unexpected PayloadError %+v", pe)
	}
	if IsRejected(err) {
		t.Error("payload errors are not rejected calls")
	}
}

func TestAPI_TopDanmakus_Malformed(t *testing.T) {
	t.Parallel()

	tests := []string{
		`{"top_danmakus":"lol"}`,
		`{"top_danmakus":{"danmaku":"lol","count":1}}`,
		`{"top_danmakus":[{"danmaku":"lol","count":"many"}]}`,
	}
	for _, body := range tests {
		api, _ := fakeBackend(t, http.StatusOK, "application/json", body)
		got, err := api.TopDanmakus(context.Background(), 1)
		if !errors.Is(err, ErrMalformedField) {
			t.Errorf("body %s: expected ErrMalformedField, got %v (%+v)", body, err, got)
		}
	}
}

func TestAPI_StatusBoundary(t *testing.T) {
	t.Parallel()

	ops := map[string]func(*API) error{
		"fetch": func(a *API) error { return a.Fetch(context.Background(), "lol", 3) },
		"top_danmakus": func(a *API) error {
			_, err := a.TopDanmakus(context.Background(), 3)
			return err
		},
		"export_excel": func(a *API) error { return a.ExportExcel(context.Background(), "out.xlsx") },
	}

	for name, op := range ops {
		t.Run(name+"/404 resolves", func(t *testing.T) {
			t.Parallel()
			api, _ := fakeBackend(t, http.StatusNotFound, "", "not found")
			if err := op(api); err != nil {
				t.Errorf("expected resolve on 404, got %v", err)
			}
		})
		t.Run(name+"/500 rejects", func(t *testing.T) {
			t.Parallel()
			api, _ := fakeBackend(t, http.StatusInternalServerError, "", "ApiException")
			err := op(api)
			var se *StatusError
			if !errors.As(err, &se) {
				t.Fatalf("expected *StatusError on 500, got %v", err)
			}
			if se.StatusCode != http.StatusInternalServerError {
				t.Errorf("StatusCode = %d", se.StatusCode)
			}
			if string(se.Body) != "ApiException" {
				t.Errorf("Body = %q", se.Body)
			}
		})
	}
}

func TestAPI_Fetch_Params(t *testing.T) {
	t.Parallel()

	api, seen := fakeBackend(t, http.StatusOK, "application/json", `{"code":0,"message":"success"}`)
	if err := api.Fetch(context.Background(), "原神 & 崩坏", 5); err != nil {
		t.Fatal(err)
	}
	req := <-seen
	if req.path != "/api/fetch" {
		t.Errorf("path = %q", req.path)
	}
	if req.query.Get("keyword") != "原神 & 崩坏" {
		t.Errorf("keyword = %q", req.query.Get("keyword"))
	}
	if req.query.Get("n") != "5" {
		t.Errorf("n = %q", req.query.Get("n"))
	}
}

func TestAPI_ExportExcel_Params(t *testing.T) {
	t.Parallel()

	api, seen := fakeBackend(t, http.StatusForbidden, "application/json", `{"code":1,"message":"empty database"}`)
	if err := api.ExportExcel(context.Background(), "弹幕 统计.xlsx"); err != nil {
		t.Fatalf("403 envelope should resolve, got %v", err)
	}
	req := <-seen
	if req.path != "/api/export_excel" || req.query.Get("filename") != "弹幕 统计.xlsx" {
		t.Errorf("unexpected request %+v", req)
	}
}

func TestAPI_DBInfo(t *testing.T) {
	t.Parallel()

	api, _ := fakeBackend(t, http.StatusOK, "application/json",
		`{"code":0,"message":"success","total_video_count":2,"video_bvids":["BV1","BV2"],"video_danmaku_count":{"BV1":10,"BV2":5},"total_danmaku_count":15}`)

	info, err := api.DBInfo(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if info.TotalVideoCount != 2 || info.TotalDanmakuCount != 15 {
		t.Errorf("unexpected totals %+v", info)
	}
	if info.VideoDanmakuCount["BV1"] != 10 {
		t.Errorf("BV1 count = %d", info.VideoDanmakuCount["BV1"])
	}

	api, _ = fakeBackend(t, http.StatusNotFound, "", "")
	info, err = api.DBInfo(context.Background())
	if err != nil || info != nil {
		t.Errorf("expected absent info, got %+v, %v", info, err)
	}
}

func TestAPI_DBData(t *testing.T) {
	t.Parallel()

	api, seen := fakeBackend(t, http.StatusOK, "application/json",
		`{"code":0,"message":"success","data":["a","b"],"page_size":2,"page_count":3,"total_count":5}`)

	page, err := api.DBData(context.Background(), "BV1xx", 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(page.Data, []string{"a", "b"}) || page.PageCount != 3 || page.TotalCount != 5 {
		t.Errorf("unexpected page %+v", page)
	}
	req := <-seen
	if req.query.Get("bvid") != "BV1xx" || req.query.Get("size") != "2" || req.query.Get("page") != "1" {
		t.Errorf("unexpected query %v", req.query)
	}

	api, _ = fakeBackend(t, http.StatusForbidden, "application/json", `{"code":2,"message":"bvid does not exist"}`)
	page, err = api.DBData(context.Background(), "nope", 10, 1)
	if err != nil || page != nil {
		t.Errorf("expected absent page, got %+v, %v", page, err)
	}
}

func TestAPI_WordCloud(t *testing.T) {
	t.Parallel()

	png := "\x89PNG\r\n\x1a\nfake"
	api, _ := fakeBackend(t, http.StatusOK, "image/png", png)
	img, err := api.WordCloud(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if img == nil || img.ContentType != "image/png" || string(img.Data) != png {
		t.Errorf("unexpected image %+v", img)
	}

	api, _ = fakeBackend(t, http.StatusForbidden, "application/json", `{"code":1,"message":"empty database"}`)
	img, err = api.WordCloud(context.Background())
	if err != nil || img != nil {
		t.Errorf("expected absent image, got %+v, %v", img, err)
	}
}
