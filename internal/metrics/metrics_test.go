// Danmakuview - Danmaku Frequency Analytics Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/danmakuview

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

// histogramSamples reads the sample count and sum of one histogram series.
func histogramSamples(t *testing.T, o prometheus.Observer) (uint64, float64) {
	t.Helper()
	metric, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T is not a metric", o)
	}
	var m io_prometheus_client.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	h := m.GetHistogram()
	return h.GetSampleCount(), h.GetSampleSum()
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/ui/main", "200"))

	RecordAPIRequest("GET", "/ui/main", 200, 15*time.Millisecond)
	RecordAPIRequest("GET", "/ui/main", 200, 20*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/ui/main", "200"))
	if after-before != 2 {
		t.Errorf("expected counter to grow by 2, grew by %v", after-before)
	}
}

func TestRecordAPIRequest_ObservesDuration(t *testing.T) {
	series := APIRequestDuration.WithLabelValues("POST", "/ui/danmaku/export")
	countBefore, sumBefore := histogramSamples(t, series)

	RecordAPIRequest("POST", "/ui/danmaku/export", 303, 250*time.Millisecond)

	count, sum := histogramSamples(t, series)
	if count-countBefore != 1 {
		t.Errorf("expected one new sample, got %d", count-countBefore)
	}
	if d := sum - sumBefore; d < 0.249 || d > 0.251 {
		t.Errorf("expected 0.25s observed, got %v", d)
	}
}

func TestRecordAnalyzerCall(t *testing.T) {
	tests := []struct {
		endpoint string
		outcome  string
	}{
		{"top_danmakus", OutcomeAccepted},
		{"fetch", OutcomeRejected},
		{"export_excel", OutcomeTransport},
		{"fetch", OutcomeTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.endpoint+"_"+tt.outcome, func(t *testing.T) {
			c := AnalyzerRequestsTotal.WithLabelValues(tt.endpoint, tt.outcome)
			before := testutil.ToFloat64(c)
			RecordAnalyzerCall(tt.endpoint, tt.outcome, time.Second)
			if got := testutil.ToFloat64(c) - before; got != 1 {
				t.Errorf("expected +1, got %v", got)
			}
		})
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("expected %v active, got %v", before+1, got)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("expected %v active, got %v", before, got)
	}
}
