// Danmakuview - Danmaku Frequency Analytics Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/danmakuview

// Command danmakuctl drives the danmaku analyzer from a terminal.
//
//	danmakuctl fetch 原神 -n 3
//	danmakuctl top -n 10 -o json
//	danmakuctl export danmakus.xlsx
//	danmakuctl wordcloud -f cloud.png
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/danmakuview/internal/cli"
)

// Version is set at build time.
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := cli.Execute(ctx, Version, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
