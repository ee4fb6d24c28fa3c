// Danmakuview - Danmaku Frequency Analytics Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/danmakuview

package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/tomtom215/danmakuview/internal/validation"
)

// ErrNoWordCloud is returned when the analyzer has no image to give.
var ErrNoWordCloud = errors.New("analyzer returned no word cloud")

func newFetchCommand(a *app) *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "fetch <keyword>",
		Short: "Replace the analyzer database with danmakus for a keyword.",
		Long: `Asks the analyzer to search for keyword and collect the danmakus of the
first n matching videos. The previous database is discarded.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := validation.FetchRequest{Keyword: args[0], N: n}
			if err := validate(&req); err != nil {
				return err
			}
			if err := a.api.Fetch(cmd.Context(), req.Keyword, req.N); err != nil {
				return fmt.Errorf("fetch %q: %w", req.Keyword, err)
			}
			return a.printer.emit(actionResult{Action: "fetch", Target: req.Keyword, OK: true}, func() {
				a.printer.line("%s %s", successColor("Fetched danmakus for"), req.Keyword)
			})
		},
	}
	cmd.Flags().IntVarP(&n, "count", "n", 3, "number of videos to collect")
	return cmd
}

func newTopCommand(a *app) *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "top",
		Short: "List the most frequent danmakus.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := validation.TopRequest{N: n}
			if err := validate(&req); err != nil {
				return err
			}
			items, err := a.api.TopDanmakus(cmd.Context(), req.N)
			if err != nil {
				return fmt.Errorf("top danmakus: %w", err)
			}
			return a.printer.emit(items, func() {
				if items == nil {
					a.printer.line("%s", warningColor("The analyzer sent no listing."))
					return
				}
				if len(items) == 0 {
					a.printer.line("%s", infoColor("No danmakus yet. Run fetch first."))
					return
				}
				a.printer.line("%s", headerColor(fmt.Sprintf("Top %d danmakus", len(items))))
				rows := make([][]string, len(items))
				for i, d := range items {
					rows[i] = []string{strconv.Itoa(i + 1), d.Danmaku, strconv.Itoa(d.Count)}
				}
				a.printer.table([]string{"#", "Danmaku", "Count"}, rows,
					[]int{tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
			})
		},
	}
	cmd.Flags().IntVarP(&n, "count", "n", 10, "number of entries to list")
	return cmd
}

func newExportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <filename>",
		Short: "Export the analyzer database to an Excel file on the analyzer host.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := validation.ExportRequest{Filename: args[0]}
			if err := validate(&req); err != nil {
				return err
			}
			if err := a.api.ExportExcel(cmd.Context(), req.Filename); err != nil {
				return fmt.Errorf("export %q: %w", req.Filename, err)
			}
			return a.printer.emit(actionResult{Action: "export", Target: req.Filename, OK: true}, func() {
				a.printer.line("%s %s", successColor("Export requested:"), req.Filename)
				a.printer.line("%s", detailColor("The file is written on the analyzer host."))
			})
		},
	}
}

func newInfoCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show database totals per video.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info, err := a.api.DBInfo(cmd.Context())
			if err != nil {
				return fmt.Errorf("db info: %w", err)
			}
			return a.printer.emit(info, func() {
				if info == nil || info.TotalVideoCount == 0 {
					a.printer.line("%s", infoColor("The analyzer database is empty."))
					return
				}
				a.printer.line("%s", headerColor(fmt.Sprintf("%d videos, %d danmakus",
					info.TotalVideoCount, info.TotalDanmakuCount)))
				rows := make([][]string, 0, len(info.VideoBVIDs))
				for _, bvid := range info.VideoBVIDs {
					rows = append(rows, []string{bvid, strconv.Itoa(info.VideoDanmakuCount[bvid])})
				}
				a.printer.table([]string{"BVID", "Danmakus"}, rows,
					[]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
			})
		},
	}
}

func newDataCommand(a *app) *cobra.Command {
	var size, page int
	cmd := &cobra.Command{
		Use:   "data <bvid>",
		Short: "Page through the raw danmakus of one video.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := validation.DBDataRequest{BVID: args[0], Size: size, Page: page}
			if err := validate(&req); err != nil {
				return err
			}
			data, err := a.api.DBData(cmd.Context(), req.BVID, req.Size, req.Page)
			if err != nil {
				return fmt.Errorf("db data %s: %w", req.BVID, err)
			}
			return a.printer.emit(data, func() {
				if data == nil || len(data.Data) == 0 {
					a.printer.line("%s", infoColor("No danmakus on this page."))
					return
				}
				offset := 0
				if data.PageSize > 0 {
					offset = (req.Page - 1) * data.PageSize
				}
				rows := make([][]string, len(data.Data))
				for i, text := range data.Data {
					rows[i] = []string{strconv.Itoa(offset + i + 1), text}
				}
				a.printer.table([]string{"#", "Danmaku"}, rows,
					[]int{tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT})
				a.printer.line("%s", detailColor(fmt.Sprintf("page %d of %d, %d danmakus total",
					req.Page, data.PageCount, data.TotalCount)))
			})
		},
	}
	cmd.Flags().IntVar(&size, "size", 50, "page size, 0 for the whole video")
	cmd.Flags().IntVar(&page, "page", 1, "page number, starting at 1")
	return cmd
}

func newWordCloudCommand(a *app) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "wordcloud",
		Short: "Download the rendered word cloud.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			img, err := a.api.WordCloud(cmd.Context())
			if err != nil {
				return fmt.Errorf("word cloud: %w", err)
			}
			if img == nil {
				return ErrNoWordCloud
			}
			if err := os.WriteFile(path, img.Data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			result := struct {
				Path        string `json:"path" yaml:"path"`
				ContentType string `json:"content_type" yaml:"content_type"`
				Bytes       int    `json:"bytes" yaml:"bytes"`
			}{path, img.ContentType, len(img.Data)}
			return a.printer.emit(result, func() {
				a.printer.line("%s %s (%d bytes)", successColor("Saved word cloud to"), path, len(img.Data))
			})
		},
	}
	cmd.Flags().StringVarP(&path, "file", "f", "wordcloud.png", "where to write the image")
	return cmd
}
