// Danmakuview - Danmaku Frequency Analytics Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/danmakuview

package validation

// FetchRequest is the Main view's fetch form.
type FetchRequest struct {
	Keyword string `form:"keyword" validate:"required"`
	N       int    `form:"n" validate:"min=1"`
}

// TopRequest is the Danmaku view's listing size.
type TopRequest struct {
	N int `form:"n" validate:"min=1"`
}

// ExportRequest is the Danmaku view's export form.
type ExportRequest struct {
	Filename string `form:"filename" validate:"required"`
}

// DBDataRequest selects one page of a video's raw danmakus.
type DBDataRequest struct {
	BVID string `form:"bvid" validate:"required,bvid"`
	Size int    `form:"size" validate:"min=0"`
	Page int    `form:"page" validate:"min=1"`
}
