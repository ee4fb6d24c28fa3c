// Danmakuview - Danmaku Frequency Analytics Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/danmakuview

// Package notify delivers toast notifications to the browser.
//
// A Notification reaches the page two ways: live through the websocket Hub
// at /ui/ws, and once through a signed flash cookie that survives the
// redirect after a form action. Both carry the same JSON object, so the
// page script renders them identically.
package notify

import (
	"context"
	"time"

	"github.com/tomtom215/danmakuview/internal/logging"
	"github.com/tomtom215/danmakuview/internal/metrics"
)

// Type is the notification severity.
type Type string

const (
	TypePositive Type = "positive"
	TypeNegative Type = "negative"
	TypeWarning  Type = "warning"
	TypeInfo     Type = "info"
)

// Valid reports whether t is a known type.
func (t Type) Valid() bool {
	switch t {
	case TypePositive, TypeNegative, TypeWarning, TypeInfo:
		return true
	}
	return false
}

// Position is where the page stacks notifications.
type Position string

const (
	PositionTop    Position = "top"
	PositionBottom Position = "bottom"
)

// Notification is one toast.
type Notification struct {
	Type      Type     `json:"type"`
	Message   string   `json:"message"`
	Position  Position `json:"position"`
	TimeoutMs int64    `json:"timeout_ms"`
}

// Broadcaster receives notifications for live delivery.
type Broadcaster interface {
	Broadcast(n Notification)
}

// Center stamps notifications with the configured placement and hands them
// to the hub.
type Center struct {
	position Position
	timeout  time.Duration
	hub      Broadcaster
}

// NewCenter creates a Center. hub may be nil, in which case notifications
// are only built, not broadcast.
func NewCenter(position string, timeout time.Duration, hub Broadcaster) *Center {
	p := Position(position)
	if p != PositionBottom {
		p = PositionTop
	}
	return &Center{position: p, timeout: timeout, hub: hub}
}

// Position returns the configured placement.
func (c *Center) Position() Position { return c.position }

// New builds a notification without sending it.
func (c *Center) New(kind Type, message string) Notification {
	if !kind.Valid() {
		kind = TypeInfo
	}
	return Notification{
		Type:      kind,
		Message:   message,
		Position:  c.position,
		TimeoutMs: c.timeout.Milliseconds(),
	}
}

// Notify builds a notification, broadcasts it and returns it so the
// caller can also flash it.
func (c *Center) Notify(ctx context.Context, kind Type, message string) Notification {
	n := c.New(kind, message)
	metrics.NotificationsSent.WithLabelValues(string(n.Type)).Inc()
	logging.Ctx(ctx).Debug().
		Str("type", string(n.Type)).
		Str("message", n.Message).
		Msg("notification raised")
	if c.hub != nil {
		c.hub.Broadcast(n)
	}
	return n
}
