// Danmakuview - Danmaku Frequency Analytics Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/danmakuview

package i18n

import "golang.org/x/text/language"

// translations maps locale to key to printf-style message. Every key must
// exist in zh-CN; Field and FieldError consult that table.
var translations = map[language.Tag]map[string]string{
	ChineseSimplified: {
		"app.title":      "弹幕分析",
		"nav.main":       "获取弹幕",
		"nav.danmaku":    "弹幕统计",
		"notfound.title": "页面不存在",
		"notfound.body":  "没有与 %s 对应的页面。",

		"main.heading":  "获取弹幕",
		"main.keyword":  "关键词",
		"main.count":    "视频数量",
		"main.submit":   "开始获取",
		"main.hint":     "获取会清空并重建分析器的数据库，可能需要较长时间。",
		"main.dbinfo":   "数据库概况",
		"main.videos":   "视频数：%d",
		"main.danmakus": "弹幕总数：%d",
		"main.dbempty":  "数据库为空。",

		"danmaku.heading":         "弹幕统计",
		"danmaku.n":               "显示条数",
		"danmaku.refresh":         "刷新",
		"danmaku.col.rank":        "排名",
		"danmaku.col.text":        "弹幕",
		"danmaku.col.count":       "次数",
		"danmaku.empty":           "暂无数据，请先获取弹幕。",
		"danmaku.absent":          "分析服务没有返回弹幕统计。",
		"danmaku.wordcloud":       "词云",
		"danmaku.export.heading":  "导出 Excel",
		"danmaku.export.filename": "文件名",
		"danmaku.export.submit":   "导出",

		"notify.fetch.ok":       "已获取“%s”的弹幕。",
		"notify.fetch.failed":   "获取弹幕失败：%s",
		"notify.export.ok":      "已导出到 %s。",
		"notify.export.failed":  "导出失败：%s",
		"notify.top.failed":     "加载弹幕统计失败：%s",
		"notify.analyzer.down":  "无法连接分析服务器。",
		"notify.analyzer.error": "分析服务器错误（HTTP %d）。",

		"field.keyword":  "关键词",
		"field.n":        "数量",
		"field.filename": "文件名",
		"field.bvid":     "BV 号",
		"field.size":     "每页条数",
		"field.page":     "页码",

		"validate.required": "%s不能为空",
		"validate.min":      "%s不能小于 %s",
		"validate.max":      "%s不能大于 %s",
		"validate.bvid":     "%s格式不正确",
		"validate.default":  "%s未通过 %s 校验",
	},
	English: {
		"app.title":      "Danmaku Analytics",
		"nav.main":       "Fetch",
		"nav.danmaku":    "Statistics",
		"notfound.title": "Page not found",
		"notfound.body":  "Nothing lives at %s.",

		"main.heading":  "Fetch danmakus",
		"main.keyword":  "Keyword",
		"main.count":    "Videos",
		"main.submit":   "Fetch",
		"main.hint":     "Fetching rebuilds the analyzer database and may take a long time.",
		"main.dbinfo":   "Database",
		"main.videos":   "Videos: %d",
		"main.danmakus": "Danmakus: %d",
		"main.dbempty":  "The database is empty.",

		"danmaku.heading":         "Danmaku statistics",
		"danmaku.n":               "Rows",
		"danmaku.refresh":         "Refresh",
		"danmaku.col.rank":        "#",
		"danmaku.col.text":        "Danmaku",
		"danmaku.col.count":       "Count",
		"danmaku.empty":           "No data yet. Fetch some danmakus first.",
		"danmaku.absent":          "The analyzer returned no statistics.",
		"danmaku.wordcloud":       "Word cloud",
		"danmaku.export.heading":  "Export to Excel",
		"danmaku.export.filename": "Filename",
		"danmaku.export.submit":   "Export",

		"notify.fetch.ok":       "Fetched danmakus for %q.",
		"notify.fetch.failed":   "Fetch failed: %s",
		"notify.export.ok":      "Exported to %s.",
		"notify.export.failed":  "Export failed: %s",
		"notify.top.failed":     "Could not load statistics: %s",
		"notify.analyzer.down":  "The analyzer is unreachable.",
		"notify.analyzer.error": "Analyzer error (HTTP %d).",

		"field.keyword":  "keyword",
		"field.n":        "count",
		"field.filename": "filename",
		"field.bvid":     "BV id",
		"field.size":     "page size",
		"field.page":     "page",

		"validate.required": "%s is required",
		"validate.min":      "%s must be at least %s",
		"validate.max":      "%s must be at most %s",
		"validate.bvid":     "%s is not a valid BV id",
		"validate.default":  "%s failed %s validation",
	},
}
