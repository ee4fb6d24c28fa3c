// Danmakuview - Danmaku Frequency Analytics Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/danmakuview

package cli

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by --output.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

func validFormat(f string) bool {
	switch f {
	case FormatTable, FormatJSON, FormatYAML:
		return true
	}
	return false
}

// printer writes command results in the selected format. Table output is
// for people; json and yaml emit the raw value for scripts.
type printer struct {
	out    io.Writer
	format string
}

// emit writes v as json or yaml, or calls table for the human format.
func (p *printer) emit(v any, table func()) error {
	switch p.format {
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err = fmt.Fprintln(p.out, string(data))
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(p.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		table()
		return nil
	}
}

func (p *printer) table(header []string, rows [][]string, align []int) {
	tw := tablewriter.NewWriter(p.out)
	tw.SetHeader(header)
	tw.SetBorder(true)
	tw.SetAutoWrapText(false)
	if align != nil {
		tw.SetColumnAlignment(align)
	}
	tw.AppendBulk(rows)
	tw.Render()
}

func (p *printer) line(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// actionResult is the scripted form of fetch and export.
type actionResult struct {
	Action string `json:"action" yaml:"action"`
	Target string `json:"target" yaml:"target"`
	OK     bool   `json:"ok" yaml:"ok"`
}
