// Danmakuview - Danmaku Frequency Analytics Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/danmakuview

package web

import (
	"strings"

	"github.com/tomtom215/danmakuview/internal/config"
)

// BasePath is the history-mode root every view lives under.
const BasePath = config.UIRoot

// View names.
const (
	ViewMain    = "Main"
	ViewDanmaku = "Danmaku"
)

// Route binds a path below BasePath to a view.
type Route struct {
	Path string
	View string
}

// Href returns the absolute URL path of the route.
func (r Route) Href() string {
	return BasePath + r.Path
}

// Routes is the complete, flat route table. There are no parameters,
// guards, redirects or nested children.
var Routes = []Route{
	{Path: "/main", View: ViewMain},
	{Path: "/danmaku", View: ViewDanmaku},
}

// Resolve maps an absolute URL path to its route. Paths outside BasePath,
// BasePath itself and unknown children all report false.
//
//	Resolve("/ui/main")    // {"/main", "Main"}, true
//	Resolve("/ui/nowhere") // Route{}, false
func Resolve(path string) (Route, bool) {
	rest, ok := strings.CutPrefix(path, BasePath)
	if !ok || rest == "" {
		return Route{}, false
	}
	for _, route := range Routes {
		if route.Path == rest {
			return route, true
		}
	}
	return Route{}, false
}

// routeFor returns the route rendering view.
func routeFor(view string) Route {
	for _, route := range Routes {
		if route.View == view {
			return route
		}
	}
	return Route{}
}
