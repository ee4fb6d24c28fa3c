// Danmakuview - Danmaku Frequency Analytics Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/danmakuview

package i18n

import (
	"net/http/httptest"
	"testing"

	"golang.org/x/text/language"
)

func mustBundle(t *testing.T, locale string) *Bundle {
	t.Helper()
	b, err := New(locale)
	if err != nil {
		t.Fatalf("New(%q) error = %v", locale, err)
	}
	return b
}

func TestNew_InvalidLocale(t *testing.T) {
	t.Parallel()

	if _, err := New("not a locale!"); err == nil {
		t.Error("expected error for invalid locale")
	}
}

func TestBundle_Match(t *testing.T) {
	t.Parallel()

	b := mustBundle(t, "zh-CN")

	tests := []struct {
		name     string
		explicit string
		accept   string
		want     language.Tag
	}{
		{"default", "", "", ChineseSimplified},
		{"accept english", "", "en-GB,en;q=0.9", English},
		{"accept chinese", "", "zh;q=0.9,en;q=0.5", ChineseSimplified},
		{"unsupported accept", "", "fr-FR", ChineseSimplified},
		{"explicit wins", "en", "zh-CN", English},
		{"bad explicit falls through", "??", "en-US", English},
		{"garbage accept", "", ";;;", ChineseSimplified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := b.Match(tt.explicit, tt.accept); got != tt.want {
				t.Errorf("Match(%q, %q) = %v, want %v", tt.explicit, tt.accept, got, tt.want)
			}
		})
	}
}

func TestBundle_DefaultOverride(t *testing.T) {
	t.Parallel()

	b := mustBundle(t, "en-US")
	if b.Default() != English {
		t.Errorf("Default() = %v", b.Default())
	}
	if got := b.Match("", "de-DE"); got != English {
		t.Errorf("unsupported language should fall back to en-US, got %v", got)
	}
	if len(b.Supported()) != 2 {
		t.Errorf("Supported() = %v", b.Supported())
	}
}

func TestLocalizer_T(t *testing.T) {
	t.Parallel()

	b := mustBundle(t, "zh-CN")
	zh := b.Localizer(ChineseSimplified)
	en := b.Localizer(English)

	if got := zh.T("nav.main"); got != "获取弹幕" {
		t.Errorf("zh nav.main = %q", got)
	}
	if got := en.T("nav.danmaku"); got != "Statistics" {
		t.Errorf("en nav.danmaku = %q", got)
	}
	if got := en.T("notify.export.ok", "out.xlsx"); got != "Exported to out.xlsx." {
		t.Errorf("en notify.export.ok = %q", got)
	}
	if got := zh.T("main.videos", 7); got != "视频数：7" {
		t.Errorf("zh main.videos = %q", got)
	}
	if zh.Lang() != "zh-CN" || en.Lang() != "en-US" {
		t.Errorf("Lang() = %q / %q", zh.Lang(), en.Lang())
	}
}

func TestLocalizer_FieldError(t *testing.T) {
	t.Parallel()

	b := mustBundle(t, "zh-CN")
	en := b.Localizer(English)
	zh := b.Localizer(ChineseSimplified)

	if got := en.FieldError("n", "min", "1"); got != "count must be at least 1" {
		t.Errorf("en min = %q", got)
	}
	if got := zh.FieldError("keyword", "required", ""); got != "关键词不能为空" {
		t.Errorf("zh required = %q", got)
	}
	if got := en.FieldError("mystery", "uuid", ""); got != "mystery failed uuid validation" {
		t.Errorf("en default = %q", got)
	}
}

func TestLocalizer_FieldError_EveryRule(t *testing.T) {
	t.Parallel()

	b := mustBundle(t, "zh-CN")

	tests := []struct {
		tag   string
		param string
		zh    string
		en    string
	}{
		{"required", "", "关键词不能为空", "keyword is required"},
		{"bvid", "", "关键词格式不正确", "keyword is not a valid BV id"},
		{"min", "1", "关键词不能小于 1", "keyword must be at least 1"},
		{"max", "9", "关键词不能大于 9", "keyword must be at most 9"},
		{"email", "", "关键词未通过 email 校验", "keyword failed email validation"},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			t.Parallel()
			if got := b.Localizer(ChineseSimplified).FieldError("keyword", tt.tag, tt.param); got != tt.zh {
				t.Errorf("zh = %q, want %q", got, tt.zh)
			}
			if got := b.Localizer(English).FieldError("keyword", tt.tag, tt.param); got != tt.en {
				t.Errorf("en = %q, want %q", got, tt.en)
			}
		})
	}
}

func TestBundle_FromRequest(t *testing.T) {
	t.Parallel()

	b := mustBundle(t, "zh-CN")

	r := httptest.NewRequest("GET", "/ui/main?lang=en-US", nil)
	r.Header.Set("Accept-Language", "zh-CN")
	if got := b.FromRequest(r).Tag(); got != English {
		t.Errorf("query should win, got %v", got)
	}

	r = httptest.NewRequest("GET", "/ui/main", nil)
	if got := b.FromRequest(r).Tag(); got != ChineseSimplified {
		t.Errorf("no hints should give default, got %v", got)
	}
}
