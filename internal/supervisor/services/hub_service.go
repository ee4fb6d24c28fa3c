// Danmakuview - Danmaku Frequency Analytics Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/danmakuview

package services

import "context"

// ContextHub is satisfied by *notify.Hub.
type ContextHub interface {
	Serve(ctx context.Context) error
}

// NotifyHubService supervises the notification hub. Serve returns ctx.Err()
// on a normal shutdown, after the hub has closed its clients.
type NotifyHubService struct {
	hub  ContextHub
	name string
}

// NewNotifyHubService wraps hub.
func NewNotifyHubService(hub ContextHub) *NotifyHubService {
	return &NotifyHubService{
		hub:  hub,
		name: "notify-hub",
	}
}

// Serve implements suture.Service.
func (n *NotifyHubService) Serve(ctx context.Context) error {
	return n.hub.Serve(ctx)
}

func (n *NotifyHubService) String() string {
	return n.name
}
