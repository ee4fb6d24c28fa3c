// Danmakuview - Danmaku Frequency Analytics Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/danmakuview

// Package i18n holds the viewer's message catalog and per-request locale
// selection, built on golang.org/x/text.
//
// The configured default locale (zh-CN unless overridden) is both the first
// entry of the matcher and the catalog fallback, so a key missing from a
// language renders in the default instead of as a raw key.
package i18n

import (
	"fmt"
	"net/http"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Supported locales.
var (
	ChineseSimplified = language.MustParse("zh-CN")
	English           = language.MustParse("en-US")
)

// QueryParam overrides Accept-Language when present.
const QueryParam = "lang"

// Bundle is an immutable catalog plus a matcher over its languages.
type Bundle struct {
	catalog   *catalog.Builder
	supported []language.Tag
	matcher   language.Matcher
}

// New builds the catalog with defaultLocale as fallback and first match.
func New(defaultLocale string) (*Bundle, error) {
	def, err := language.Parse(defaultLocale)
	if err != nil {
		return nil, fmt.Errorf("invalid default locale %q: %w", defaultLocale, err)
	}

	supported := []language.Tag{def}
	for _, tag := range []language.Tag{ChineseSimplified, English} {
		if tag != def {
			supported = append(supported, tag)
		}
	}

	fallback := def
	if _, ok := translations[def]; !ok {
		fallback = ChineseSimplified
	}

	b := catalog.NewBuilder(catalog.Fallback(fallback))
	for tag, msgs := range translations {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("catalog %s/%s: %w", tag, key, err)
			}
		}
	}

	return &Bundle{
		catalog:   b,
		supported: supported,
		matcher:   language.NewMatcher(supported),
	}, nil
}

// Default returns the configured default locale.
func (b *Bundle) Default() language.Tag {
	return b.supported[0]
}

// Supported lists the matchable locales, default first.
func (b *Bundle) Supported() []language.Tag {
	out := make([]language.Tag, len(b.supported))
	copy(out, b.supported)
	return out
}

// Match picks a supported locale from an explicit choice and an
// Accept-Language header, in that order.
func (b *Bundle) Match(explicit, acceptLanguage string) language.Tag {
	if explicit != "" {
		if tag, err := language.Parse(explicit); err == nil {
			if _, idx, conf := b.matcher.Match(tag); conf != language.No {
				return b.supported[idx]
			}
		}
	}
	if acceptLanguage != "" {
		if tags, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil && len(tags) > 0 {
			if _, idx, conf := b.matcher.Match(tags...); conf != language.No {
				return b.supported[idx]
			}
		}
	}
	return b.Default()
}

// FromRequest selects the locale for r.
func (b *Bundle) FromRequest(r *http.Request) *Localizer {
	tag := b.Match(r.URL.Query().Get(QueryParam), r.Header.Get("Accept-Language"))
	return b.Localizer(tag)
}

// Localizer returns a printer bound to tag.
func (b *Bundle) Localizer(tag language.Tag) *Localizer {
	return &Localizer{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(b.catalog)),
	}
}

// Localizer formats catalog messages for one locale.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// Tag returns the locale.
func (l *Localizer) Tag() language.Tag { return l.tag }

// Lang returns the BCP 47 string used in the html lang attribute.
func (l *Localizer) Lang() string { return l.tag.String() }

// T formats key with args.
func (l *Localizer) T(key string, args ...interface{}) string {
	return l.printer.Sprintf(key, args...)
}

// Field returns the display name of a form field.
func (l *Localizer) Field(name string) string {
	key := "field." + name
	if _, ok := translations[ChineseSimplified][key]; !ok {
		return name
	}
	return l.T(key)
}

// paramRules are the validation rules whose message shows the rule's
// parameter after the field name.
var paramRules = map[string]bool{
	"min": true,
	"max": true,
}

// FieldError renders a validation failure on field for rule tag.
func (l *Localizer) FieldError(field, tag, param string) string {
	key := "validate." + tag
	if _, ok := translations[ChineseSimplified][key]; !ok {
		return l.T("validate.default", l.Field(field), tag)
	}
	if paramRules[tag] {
		return l.T(key, l.Field(field), param)
	}
	return l.T(key, l.Field(field))
}
