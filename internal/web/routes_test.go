// Danmakuview - Danmaku Frequency Analytics Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/danmakuview

package web

import "testing"

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path     string
		wantView string
		wantOK   bool
	}{
		{"/ui/main", ViewMain, true},
		{"/ui/danmaku", ViewDanmaku, true},
		{"/ui/nowhere", "", false},
		{"/ui/main/", "", false},
		{"/ui/main/fetch", "", false},
		{"/ui", "", false},
		{"/ui/", "", false},
		{"/", "", false},
		{"/main", "", false},
		{"/danmaku", "", false},
		{"/uimain", "", false},
		{"/ui/MAIN", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			route, ok := Resolve(tt.path)
			if ok != tt.wantOK || route.View != tt.wantView {
				t.Errorf("Resolve(%q) = %+v, %v; want view %q, %v", tt.path, route, ok, tt.wantView, tt.wantOK)
			}
		})
	}
}

func TestRoutesTable(t *testing.T) {
	t.Parallel()

	if len(Routes) != 2 {
		t.Fatalf("expected exactly two routes, got %d", len(Routes))
	}
	seen := map[string]bool{}
	for _, r := range Routes {
		if seen[r.Path] {
			t.Errorf("duplicate path %q", r.Path)
		}
		seen[r.Path] = true
		if got, ok := Resolve(r.Href()); !ok || got != r {
			t.Errorf("Resolve(%q) does not round-trip: %+v", r.Href(), got)
		}
	}
	if routeFor(ViewMain).Href() != "/ui/main" || routeFor(ViewDanmaku).Href() != "/ui/danmaku" {
		t.Error("routeFor returned unexpected hrefs")
	}
}
