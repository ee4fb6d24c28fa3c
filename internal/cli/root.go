// Danmakuview - Danmaku Frequency Analytics Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/danmakuview

// Package cli implements danmakuctl, a command-line client for the danmaku
// analyzer built on the same API façade as the web viewer.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/danmakuview/internal/analyzer"
	"github.com/tomtom215/danmakuview/internal/config"
	"github.com/tomtom215/danmakuview/internal/logging"
	"github.com/tomtom215/danmakuview/internal/models"
	"github.com/tomtom215/danmakuview/internal/validation"
)

// Analyzer is the façade the commands drive.
type Analyzer interface {
	Fetch(ctx context.Context, keyword string, n int) error
	TopDanmakus(ctx context.Context, n int) ([]models.DanmakuFrequency, error)
	ExportExcel(ctx context.Context, filename string) error
	DBInfo(ctx context.Context) (*models.DBInfo, error)
	DBData(ctx context.Context, bvid string, size, page int) (*models.DBPage, error)
	WordCloud(ctx context.Context) (*analyzer.Image, error)
}

type options struct {
	baseURL    string
	timeout    time.Duration
	configPath string
	output     string
	strict     bool
	verbose    bool
}

// app is the state shared by every subcommand once flags are parsed.
type app struct {
	opts    options
	api     Analyzer
	printer *printer
}

// NewRootCommand builds the danmakuctl command tree.
func NewRootCommand(version string) *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "danmakuctl",
		Short: "danmakuctl drives a danmaku analyzer from the terminal.",
		Long: `danmakuctl talks to the danmaku analyzer API: it can collect danmakus
for a keyword, list the most frequent ones, export the database and fetch
the word cloud.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.opts.baseURL, "base-url", "", "analyzer API root (default from config, http://localhost:8080/api/)")
	flags.DurationVar(&a.opts.timeout, "timeout", 0, "per-request timeout (default from config, 50m)")
	flags.StringVar(&a.opts.configPath, "config", "", "config file (default: CONFIG_PATH or config.yaml)")
	flags.StringVarP(&a.opts.output, "output", "o", FormatTable, "output format: table, json or yaml")
	flags.BoolVar(&a.opts.strict, "strict", false, "treat a reply missing its payload as an error")
	flags.BoolVar(&a.opts.verbose, "verbose", false, "log analyzer calls to stderr")

	root.AddCommand(
		newFetchCommand(a),
		newTopCommand(a),
		newExportCommand(a),
		newInfoCommand(a),
		newDataCommand(a),
		newWordCloudCommand(a),
	)
	return root
}

// setup loads configuration, applies flag overrides and builds the API.
func (a *app) setup(cmd *cobra.Command) error {
	if !validFormat(a.opts.output) {
		return fmt.Errorf("unknown output format %q (want table, json or yaml)", a.opts.output)
	}
	a.printer = &printer{out: cmd.OutOrStdout(), format: a.opts.output}

	level := "warn"
	if a.opts.verbose {
		level = "debug"
	}
	logging.Init(logging.Config{
		Level:     level,
		Format:    "console",
		Timestamp: true,
		Output:    cmd.ErrOrStderr(),
	})

	var (
		cfg *config.Config
		err error
	)
	if a.opts.configPath != "" {
		cfg, err = config.LoadFile(a.opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("base-url") {
		cfg.Analyzer.BaseURL = a.opts.baseURL
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Analyzer.Timeout = a.opts.timeout
	}

	client, err := analyzer.NewClient(&cfg.Analyzer)
	if err != nil {
		return err
	}

	var apiOpts []analyzer.APIOption
	if a.opts.strict {
		apiOpts = append(apiOpts, analyzer.WithStrictPayload())
	}
	if cfg.Analyzer.CircuitBreaker {
		a.api = analyzer.NewAPI(analyzer.NewCircuitBreakerClient(client), apiOpts...)
	} else {
		a.api = analyzer.NewAPI(client, apiOpts...)
	}
	return nil
}

// Execute runs danmakuctl with args and returns the process exit code.
// Errors are printed in red to stderr.
func Execute(ctx context.Context, version string, args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand(version)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, errorColor("Error:"), describe(err))
		return 1
	}
	return 0
}

// describe turns analyzer failures into one readable line.
func describe(err error) string {
	var statusErr *analyzer.StatusError
	var transportErr *analyzer.TransportError
	var verr *validation.RequestValidationError
	switch {
	case errors.As(err, &statusErr):
		return fmt.Sprintf("analyzer answered HTTP %d on %s", statusErr.StatusCode, statusErr.Endpoint)
	case errors.As(err, &transportErr):
		return fmt.Sprintf("analyzer unreachable: %v", transportErr.Err)
	case errors.As(err, &verr):
		return "invalid arguments: " + verr.Error()
	default:
		return err.Error()
	}
}

// validate wraps ValidateStruct so a nil result stays an untyped nil.
func validate(v any) error {
	if verr := validation.ValidateStruct(v); verr != nil {
		return verr
	}
	return nil
}
