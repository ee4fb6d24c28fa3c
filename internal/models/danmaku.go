// Danmakuview - Danmaku Frequency Analytics Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/danmakuview

// Package models defines the values exchanged with the analyzer API.
package models

// DanmakuFrequency is one entry of a top-danmaku listing.
// Values are produced by the analyzer and never mutated locally.
type DanmakuFrequency struct {
	Danmaku string `json:"danmaku" yaml:"danmaku"`
	Count   int    `json:"count" yaml:"count"`
}

// TopDanmakusResponse is the body of GET /top_danmakus.
type TopDanmakusResponse struct {
	TopDanmakus []DanmakuFrequency `json:"top_danmakus"`
}

// Analyzer envelope codes. Any code other than CodeSuccess is sent with
// HTTP 403, which still counts as a resolved call.
const (
	CodeSuccess         = 0
	CodeEmptyDatabase   = 1
	CodeUnknownBVID     = 2
	CodeInvalidPage     = 3
	CodeInvalidTopCount = 4
)

// Envelope is the status block the analyzer attaches to JSON replies.
type Envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// OK reports whether the analyzer signalled success.
func (e Envelope) OK() bool {
	return e.Code == CodeSuccess
}

// DBInfo is the body of GET /db_info.
type DBInfo struct {
	TotalVideoCount   int            `json:"total_video_count" yaml:"total_video_count"`
	VideoBVIDs        []string       `json:"video_bvids" yaml:"video_bvids"`
	VideoDanmakuCount map[string]int `json:"video_danmaku_count" yaml:"video_danmaku_count"`
	TotalDanmakuCount int            `json:"total_danmaku_count" yaml:"total_danmaku_count"`
}

// DBPage is one page of raw danmaku text for a single video, the body of
// GET /db_data.
type DBPage struct {
	Data       []string `json:"data" yaml:"data"`
	PageSize   int      `json:"page_size" yaml:"page_size"`
	PageCount  int      `json:"page_count" yaml:"page_count"`
	TotalCount int      `json:"total_count" yaml:"total_count"`
}
