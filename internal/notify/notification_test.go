// Danmakuview - Danmaku Frequency Analytics Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/danmakuview

package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/danmakuview/internal/metrics"
)

type recordingBroadcaster struct {
	got []Notification
}

func (r *recordingBroadcaster) Broadcast(n Notification) { r.got = append(r.got, n) }

func TestCenter_Notify(t *testing.T) {
	rec := &recordingBroadcaster{}
	c := NewCenter("top", 2500*time.Millisecond, rec)

	before := testutil.ToFloat64(metrics.NotificationsSent.WithLabelValues("negative"))
	n := c.Notify(context.Background(), TypeNegative, "导出失败")

	want := Notification{Type: TypeNegative, Message: "导出失败", Position: PositionTop, TimeoutMs: 2500}
	if n != want {
		t.Errorf("Notify() = %+v, want %+v", n, want)
	}
	if len(rec.got) != 1 || rec.got[0] != want {
		t.Errorf("broadcast = %+v", rec.got)
	}
	if got := testutil.ToFloat64(metrics.NotificationsSent.WithLabelValues("negative")) - before; got != 1 {
		t.Errorf("sent counter delta = %v", got)
	}
}

func TestCenter_Defaults(t *testing.T) {
	t.Parallel()

	c := NewCenter("sideways", time.Second, nil)
	if c.Position() != PositionTop {
		t.Errorf("unknown position should default to top, got %q", c.Position())
	}
	if n := c.New(Type("shout"), "m"); n.Type != TypeInfo {
		t.Errorf("unknown type should become info, got %q", n.Type)
	}
	if NewCenter("bottom", time.Second, nil).Position() != PositionBottom {
		t.Error("bottom should be kept")
	}
	// nil hub must not panic
	c.Notify(context.Background(), TypeInfo, "quiet")
}

func TestFlash_RoundTrip(t *testing.T) {
	t.Parallel()

	f := NewFlash([]byte("0123456789abcdef0123456789abcdef"), "/ui")
	ns := []Notification{
		{Type: TypePositive, Message: "已导出到 a.xlsx。", Position: PositionTop, TimeoutMs: 2500},
		{Type: TypeWarning, Message: "second", Position: PositionTop, TimeoutMs: 2500},
	}

	rec := httptest.NewRecorder()
	if err := f.Set(rec, ns...); err != nil {
		t.Fatal(err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != FlashCookieName || cookies[0].Path != "/ui" || !cookies[0].HttpOnly {
		t.Fatalf("unexpected cookies %+v", cookies)
	}

	req := httptest.NewRequest(http.MethodGet, "/ui/danmaku", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	got := f.Pop(rec, req)
	if !reflect.DeepEqual(got, ns) {
		t.Errorf("Pop() = %+v, want %+v", got, ns)
	}
	cleared := rec.Result().Cookies()
	if len(cleared) != 1 || cleared[0].MaxAge >= 0 {
		t.Errorf("Pop should expire the cookie, got %+v", cleared)
	}
}

func TestFlash_RejectsTampering(t *testing.T) {
	t.Parallel()

	signer := NewFlash([]byte("0123456789abcdef0123456789abcdef"), "/")
	other := NewFlash(nil, "/")

	rec := httptest.NewRecorder()
	if err := signer.Set(rec, Notification{Type: TypeInfo, Message: "hi"}); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(rec.Result().Cookies()[0])

	if got := other.Pop(httptest.NewRecorder(), req); got != nil {
		t.Errorf("foreign key should not decode, got %+v", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: FlashCookieName, Value: "garbage"})
	if got := signer.Pop(httptest.NewRecorder(), req); got != nil {
		t.Errorf("garbage cookie should not decode, got %+v", got)
	}

	if got := signer.Pop(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil)); got != nil {
		t.Errorf("no cookie should give nil, got %+v", got)
	}
}
