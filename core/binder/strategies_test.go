package binder_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/dmitrymomot/smartcommand/core/binder"
	"github.com/dmitrymomot/smartcommand/core/command"
)

// auditMarker is a marker no default factory knows.
type auditMarker struct{}

func (auditMarker) Contract() binder.Contract { return binder.ContractAnalytics }

func TestDefaultRetryFactory(t *testing.T) {
	t.Parallel()

	f := binder.DefaultRetryFactory{MaxAttempts: 2}

	t.Run("no marker uses default", func(t *testing.T) {
		t.Parallel()

		r, err := f.Retry(nil)
		require.NoError(t, err)
		require.IsType(t, &command.CountedRetry{}, r)
		assert.Equal(t, 2, r.(*command.CountedRetry).MaxAttempts())
	})

	t.Run("single marker", func(t *testing.T) {
		t.Parallel()

		r, err := f.Retry([]binder.Marker{binder.LogErrors{}, binder.Retry{MaxAttempts: 5}})
		require.NoError(t, err)
		assert.Equal(t, 5, r.(*command.CountedRetry).MaxAttempts())
	})

	t.Run("zero attempts is honored", func(t *testing.T) {
		t.Parallel()

		r, err := f.Retry([]binder.Marker{binder.Retry{}})
		require.NoError(t, err)
		assert.False(t, r.CanRetry())
	})

	t.Run("several markers are rejected", func(t *testing.T) {
		t.Parallel()

		_, err := f.Retry([]binder.Marker{binder.Retry{MaxAttempts: 1}, binder.Retry{MaxAttempts: 2}})
		assert.ErrorIs(t, err, binder.ErrCompositeUnsupported)
	})
}

func TestDefaultThrottleFactory(t *testing.T) {
	t.Parallel()

	f := binder.DefaultThrottleFactory{MaxConcurrency: 1}

	th, err := f.Throttle(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, th.(*command.CountedThrottle).MaxConcurrency())

	th, err = f.Throttle([]binder.Marker{binder.Throttle{MaxConcurrency: 4}})
	require.NoError(t, err)
	assert.Equal(t, 4, th.(*command.CountedThrottle).MaxConcurrency())

	_, err = f.Throttle([]binder.Marker{binder.Throttle{}, binder.Throttle{}})
	assert.ErrorIs(t, err, binder.ErrCompositeUnsupported)
}

func TestDefaultErrorHandlerFactory(t *testing.T) {
	t.Parallel()

	newFactory := func(buf *bytes.Buffer) binder.DefaultErrorHandlerFactory {
		return binder.DefaultErrorHandlerFactory{Logger: slog.New(slog.NewTextHandler(buf, nil))}
	}

	t.Run("no marker swallows", func(t *testing.T) {
		t.Parallel()

		h, err := newFactory(&bytes.Buffer{}).ErrorHandler(nil)
		require.NoError(t, err)
		assert.Equal(t, command.SwallowErrors{}, h)
	})

	t.Run("single markers", func(t *testing.T) {
		t.Parallel()

		f := newFactory(&bytes.Buffer{})

		h, err := f.ErrorHandler([]binder.Marker{binder.LogErrors{}})
		require.NoError(t, err)
		assert.IsType(t, &command.LogErrors{}, h)

		h, err = f.ErrorHandler([]binder.Marker{binder.PanicOnError{}})
		require.NoError(t, err)
		assert.Equal(t, command.PanicOnError{}, h)
	})

	t.Run("two markers compose in attachment order", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		h, err := newFactory(&buf).ErrorHandler([]binder.Marker{binder.LogErrors{}, binder.LogErrors{}})
		require.NoError(t, err)

		composite, ok := h.(*command.CompositeErrorHandler)
		require.True(t, ok)
		require.Len(t, composite.Handlers(), 2)

		h.HandleError(errors.New("disk full"), "error executing command save")
		assert.Equal(t, 2, strings.Count(buf.String(), "error executing command save"))
	})

	t.Run("panic marker first stops the log marker", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		h, err := newFactory(&buf).ErrorHandler([]binder.Marker{binder.PanicOnError{}, binder.LogErrors{}})
		require.NoError(t, err)

		assert.Panics(t, func() { h.HandleError(errors.New("x"), "msg") })
		assert.Empty(t, buf.String())
	})

	t.Run("log marker first runs before panic", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		h, err := newFactory(&buf).ErrorHandler([]binder.Marker{binder.LogErrors{}, binder.PanicOnError{}})
		require.NoError(t, err)

		assert.Panics(t, func() { h.HandleError(errors.New("x"), "msg") })
		assert.Contains(t, buf.String(), "msg")
	})

	t.Run("unknown marker inside composite fails", func(t *testing.T) {
		t.Parallel()

		_, err := newFactory(&bytes.Buffer{}).ErrorHandler([]binder.Marker{binder.LogErrors{}, errorsMarker{}})
		assert.ErrorIs(t, err, binder.ErrUnsupportedMarker)
	})
}

type errorsMarker struct{}

func (errorsMarker) Contract() binder.Contract { return binder.ContractErrorHandling }

func TestDefaultAnalyticsFactory(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	reader := sdkmetric.NewManualReader()
	f := binder.DefaultAnalyticsFactory{
		Logger:     slog.New(slog.NewTextHandler(&buf, nil)),
		Level:      slog.LevelWarn,
		Meter:      sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test"),
		Registerer: prometheus.NewRegistry(),
		Namespace:  "test",
	}

	t.Run("no marker discards", func(t *testing.T) {
		t.Parallel()

		a, err := f.Analytics(nil)
		require.NoError(t, err)
		assert.Equal(t, command.SwallowAnalytics{}, a)
	})

	t.Run("log marker without level uses factory level", func(t *testing.T) {
		t.Parallel()

		a, err := f.Analytics([]binder.Marker{binder.LogAnalytics{}})
		require.NoError(t, err)
		require.IsType(t, &command.LogAnalytics{}, a)
		assert.Equal(t, slog.LevelWarn, a.(*command.LogAnalytics).Level())
	})

	t.Run("log marker level wins", func(t *testing.T) {
		t.Parallel()

		a, err := f.Analytics([]binder.Marker{binder.LogAnalytics{Level: slog.LevelDebug}})
		require.NoError(t, err)
		assert.Equal(t, slog.LevelDebug, a.(*command.LogAnalytics).Level())
	})

	t.Run("metrics and prometheus markers", func(t *testing.T) {
		t.Parallel()

		a, err := f.Analytics([]binder.Marker{binder.MetricsAnalytics{}})
		require.NoError(t, err)
		assert.IsType(t, &command.MetricsAnalytics{}, a)

		a, err = f.Analytics([]binder.Marker{binder.PrometheusAnalytics{}})
		require.NoError(t, err)
		assert.IsType(t, &command.PrometheusAnalytics{}, a)
	})

	t.Run("several markers are rejected", func(t *testing.T) {
		t.Parallel()

		_, err := f.Analytics([]binder.Marker{binder.LogAnalytics{}, binder.MetricsAnalytics{}})
		assert.ErrorIs(t, err, binder.ErrCompositeUnsupported)
	})

	t.Run("unknown marker", func(t *testing.T) {
		t.Parallel()

		_, err := f.Analytics([]binder.Marker{auditMarker{}})
		assert.ErrorIs(t, err, binder.ErrUnsupportedMarker)
	})
}

func TestContractString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "retry", binder.ContractRetry.String())
	assert.Equal(t, "throttle", binder.ContractThrottle.String())
	assert.Equal(t, "error handling", binder.ContractErrorHandling.String())
	assert.Equal(t, "analytics", binder.ContractAnalytics.String())
	assert.Equal(t, "unknown", binder.Contract(0).String())
}
