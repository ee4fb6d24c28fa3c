// Danmakuview - Danmaku Frequency Analytics Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/danmakuview

package notify

import (
	"fmt"
	"net/http"

	"github.com/gorilla/securecookie"

	"github.com/tomtom215/danmakuview/internal/logging"
)

// FlashCookieName is the cookie carrying notifications across a redirect.
const FlashCookieName = "danmakuview_flash"

const flashMaxAge = 60 // seconds

// Flash stores notifications in a signed, short-lived cookie.
type Flash struct {
	codec *securecookie.SecureCookie
	path  string
}

// NewFlash signs with hashKey. An empty key gets a random one, which
// invalidates outstanding flashes on restart.
func NewFlash(hashKey []byte, path string) *Flash {
	if len(hashKey) == 0 {
		hashKey = securecookie.GenerateRandomKey(64)
		logging.Debug().Msg("no flash hash key configured, using a random key")
	}
	codec := securecookie.New(hashKey, nil)
	codec.SetSerializer(securecookie.JSONEncoder{})
	codec.MaxAge(flashMaxAge)
	if path == "" {
		path = "/"
	}
	return &Flash{codec: codec, path: path}
}

// Set replaces the pending flash with ns.
func (f *Flash) Set(w http.ResponseWriter, ns ...Notification) error {
	value, err := f.codec.Encode(FlashCookieName, ns)
	if err != nil {
		return fmt.Errorf("encode flash: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Value:    value,
		Path:     f.path,
		MaxAge:   flashMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Pop returns the pending flash and clears it. A missing, expired or
// tampered cookie yields nil.
func (f *Flash) Pop(w http.ResponseWriter, r *http.Request) []Notification {
	cookie, err := r.Cookie(FlashCookieName)
	if err != nil {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Value:    "",
		Path:     f.path,
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	var ns []Notification
	if err := f.codec.Decode(FlashCookieName, cookie.Value, &ns); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("discarding unreadable flash cookie")
		return nil
	}
	return ns
}
