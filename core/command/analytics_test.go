package command_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/dmitrymomot/smartcommand/core/command"
)

var trackedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func decodeRecords(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var records []map[string]any
	for line := range strings.SplitSeq(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var record map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &record))
		records = append(records, record)
	}
	return records
}

func TestLogAnalytics(t *testing.T) {
	t.Parallel()

	t.Run("writes lifecycle events at configured level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		a := command.NewLogAnalytics(log, slog.LevelDebug)

		a.TrackStart("save", trackedAt)
		a.TrackComplete("save", trackedAt)
		a.TrackError("save", errors.New("disk full"), trackedAt)

		records := decodeRecords(t, &buf)
		require.Len(t, records, 3)

		assert.Equal(t, "command started", records[0]["msg"])
		assert.Equal(t, "command completed", records[1]["msg"])
		assert.Equal(t, "command failed", records[2]["msg"])
		assert.Equal(t, "disk full", records[2]["error"])
		assert.Equal(t, "started", records[0]["event"])
		assert.Equal(t, "completed", records[1]["event"])
		assert.Equal(t, "failed", records[2]["event"])

		for _, r := range records {
			assert.Equal(t, "DEBUG", r["level"])
			assert.Equal(t, "save", r["command"])
			assert.Equal(t, trackedAt.Format(time.RFC3339), r["timestamp"])
		}
	})

	t.Run("events below handler level are dropped", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
		a := command.NewLogAnalytics(log, slog.LevelDebug)

		a.TrackStart("save", trackedAt)

		assert.Empty(t, buf.String())
		assert.Equal(t, slog.LevelDebug, a.Level())
	})
}

func TestSwallowAnalytics(t *testing.T) {
	t.Parallel()

	var a command.Analytics = command.SwallowAnalytics{}
	assert.NotPanics(t, func() {
		a.TrackStart("x", trackedAt)
		a.TrackComplete("x", trackedAt)
		a.TrackError("x", errors.New("e"), trackedAt)
	})
}

func findSum(t *testing.T, rm metricdata.ResourceMetrics, name string) metricdata.Sum[int64] {
	t.Helper()

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "metric %s is not an int64 sum", name)
			return sum
		}
	}
	require.Failf(t, "metric not found", "metric %s not found", name)
	return metricdata.Sum[int64]{}
}

func TestMetricsAnalytics(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	a, err := command.NewMetricsAnalytics(provider.Meter("test"))
	require.NoError(t, err)

	a.TrackStart("save", trackedAt)
	a.TrackComplete("save", trackedAt)
	a.TrackStart("save", trackedAt)
	a.TrackError("save", errors.New("disk full"), trackedAt)
	a.TrackStart("save", trackedAt)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	commandAttrs := attribute.NewSet(attribute.String("command", "save"))

	started := findSum(t, rm, "smartcommand.command.started")
	require.Len(t, started.DataPoints, 1)
	assert.Equal(t, int64(3), started.DataPoints[0].Value)
	assert.True(t, started.DataPoints[0].Attributes.Equals(&commandAttrs))

	completed := findSum(t, rm, "smartcommand.command.completed")
	require.Len(t, completed.DataPoints, 1)
	assert.Equal(t, int64(1), completed.DataPoints[0].Value)

	failed := findSum(t, rm, "smartcommand.command.failed")
	require.Len(t, failed.DataPoints, 1)
	assert.Equal(t, int64(1), failed.DataPoints[0].Value)
	failedAttrs := attribute.NewSet(
		attribute.String("command", "save"),
		attribute.String("error.type", "*errors.errorString"),
	)
	assert.True(t, failed.DataPoints[0].Attributes.Equals(&failedAttrs))

	inflight := findSum(t, rm, "smartcommand.command.inflight")
	require.Len(t, inflight.DataPoints, 1)
	assert.Equal(t, int64(1), inflight.DataPoints[0].Value)
	assert.False(t, inflight.IsMonotonic)
}

func TestPrometheusAnalytics(t *testing.T) {
	t.Parallel()

	t.Run("counts events per command", func(t *testing.T) {
		t.Parallel()

		reg := prometheus.NewRegistry()
		a, err := command.NewPrometheusAnalytics(reg, "app")
		require.NoError(t, err)

		a.TrackStart("save", trackedAt)
		a.TrackComplete("save", trackedAt)
		a.TrackStart("save", trackedAt)
		a.TrackError("save", errors.New("x"), trackedAt.Add(time.Second))

		count, err := testutil.GatherAndCount(reg, "app_command_events_total")
		require.NoError(t, err)
		assert.Equal(t, 3, count)

		mfs, err := reg.Gather()
		require.NoError(t, err)
		values := map[string]float64{}
		for _, mf := range mfs {
			for _, m := range mf.GetMetric() {
				key := mf.GetName()
				for _, l := range m.GetLabel() {
					key += "|" + l.GetValue()
				}
				switch {
				case m.GetCounter() != nil:
					values[key] = m.GetCounter().GetValue()
				case m.GetGauge() != nil:
					values[key] = m.GetGauge().GetValue()
				}
			}
		}

		assert.Equal(t, 2.0, values["app_command_events_total|save|started"])
		assert.Equal(t, 1.0, values["app_command_events_total|save|completed"])
		assert.Equal(t, 1.0, values["app_command_events_total|save|failed"])
		assert.Equal(t, 0.0, values["app_command_inflight|save"])
		assert.InDelta(t, float64(trackedAt.Add(time.Second).Unix()),
			values["app_command_last_event_timestamp_seconds|save|failed"], 0.001)
	})

	t.Run("instances share collectors on one registry", func(t *testing.T) {
		t.Parallel()

		reg := prometheus.NewRegistry()
		first, err := command.NewPrometheusAnalytics(reg, "app")
		require.NoError(t, err)
		second, err := command.NewPrometheusAnalytics(reg, "app")
		require.NoError(t, err)

		first.TrackStart("a", trackedAt)
		second.TrackStart("b", trackedAt)

		count, err := testutil.GatherAndCount(reg, "app_command_inflight")
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})
}
