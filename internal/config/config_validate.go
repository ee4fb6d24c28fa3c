// Danmakuview - Danmaku Frequency Analytics Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/danmakuview

package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/language"
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAnalyzer(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateUI(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateAnalyzer() error {
	if c.Analyzer.BaseURL == "" {
		return fmt.Errorf("ANALYZER_BASE_URL is required")
	}
	if err := validateBaseURL(c.Analyzer.BaseURL, "ANALYZER_BASE_URL"); err != nil {
		return fmt.Errorf("ANALYZER_BASE_URL is invalid: %w", err)
	}
	if c.Analyzer.Timeout <= 0 {
		return fmt.Errorf("ANALYZER_TIMEOUT must be positive, got %v", c.Analyzer.Timeout)
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Host == "" {
		return errors.New("HTTP_HOST is required")
	}
	return nil
}

func (c *Config) validateUI() error {
	if _, err := language.Parse(c.UI.Locale); err != nil {
		return fmt.Errorf("UI_LOCALE %q is not a valid language tag: %w", c.UI.Locale, err)
	}
	switch c.UI.NotifyPosition {
	case "top", "bottom":
	default:
		return fmt.Errorf("UI_NOTIFY_POSITION must be top or bottom, got %q", c.UI.NotifyPosition)
	}
	if c.UI.NotifyTimeout < 0 {
		return fmt.Errorf("UI_NOTIFY_TIMEOUT must not be negative")
	}
	if c.UI.DefaultTopN < 1 {
		return fmt.Errorf("UI_DEFAULT_TOP_N must be positive, got %d", c.UI.DefaultTopN)
	}
	if k := c.UI.FlashHashKey; k != "" && len(k) < 32 {
		return fmt.Errorf("UI_FLASH_HASH_KEY must be at least 32 bytes")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitRequests < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", c.Security.RateLimitRequests)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

// validateBaseURL checks an http(s) API root. Unlike a bare host URL it may
// carry a path such as /api/, but never a query or fragment.
func validateBaseURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}
	if parsedURL.Fragment != "" {
		return fmt.Errorf("%s should not contain a fragment", fieldName)
	}
	return nil
}
