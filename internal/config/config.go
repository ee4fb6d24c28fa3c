// Danmakuview - Danmaku Frequency Analytics Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/danmakuview

// Package config loads danmakuview configuration from built-in defaults, an
// optional YAML file and environment variables, in that order of precedence.
package config

import (
	"fmt"
	"time"
)

// Config is the full application configuration.
type Config struct {
	Analyzer AnalyzerConfig `koanf:"analyzer"`
	Server   ServerConfig   `koanf:"server"`
	UI       UIConfig       `koanf:"ui"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// AnalyzerConfig points at the analyzer backend API.
//
// Environment Variables:
//   - ANALYZER_BASE_URL: API root, every request path is joined under it (default: http://localhost:8080/api/)
//   - ANALYZER_TIMEOUT: per-request timeout (default: 3000000ms)
//   - ANALYZER_CIRCUIT_BREAKER: fail fast after repeated rejections (default: false)
type AnalyzerConfig struct {
	BaseURL        string        `koanf:"base_url"`
	Timeout        time.Duration `koanf:"timeout"`
	CircuitBreaker bool          `koanf:"circuit_breaker"`
}

// ServerConfig holds HTTP server settings for the viewer itself.
type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// UIRoot is the fixed path the viewer's history routes hang under.
const UIRoot = "/ui"

// EntryURL is the address printed at startup for users to open.
func (s ServerConfig) EntryURL() string {
	return fmt.Sprintf("http://%s%s/main", s.Addr(), UIRoot)
}

// UIConfig controls localization and notifications.
type UIConfig struct {
	// Locale is a BCP 47 tag; zh-CN and en-US are shipped.
	Locale string `koanf:"locale"`

	// NotifyPosition is where notifications appear: top or bottom.
	NotifyPosition string `koanf:"notify_position"`

	// NotifyTimeout is how long a notification stays visible.
	NotifyTimeout time.Duration `koanf:"notify_timeout"`

	DefaultTopN int `koanf:"default_top_n"`

	// FlashHashKey signs the flash cookie. A random key is generated per
	// process when empty, which invalidates pending flashes on restart.
	FlashHashKey string `koanf:"flash_hash_key"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration using the layered koanf loader.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
