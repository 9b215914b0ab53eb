package binder

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/metric"

	"github.com/dmitrymomot/smartcommand/core/command"
	"github.com/dmitrymomot/smartcommand/core/logger"
)

// Factory builds commands from bindings against a target object.
// A Factory is safe for concurrent use once constructed.
type Factory struct {
	cfg        Config
	logger     *slog.Logger
	meter      metric.Meter
	registerer prometheus.Registerer
	clock      command.Clock

	retry       RetryFactory
	throttle    ThrottleFactory
	errors      ErrorHandlerFactory
	analytics   AnalyticsFactory
	eligibility EligibilityFactory
	execution   ExecutionFactory
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithConfig sets the defaults for unmarked bindings. Defaults to DefaultConfig().
func WithConfig(cfg Config) FactoryOption {
	return func(f *Factory) {
		f.cfg = cfg
	}
}

// WithLogger sets the logger used by LogErrors and LogAnalytics strategies.
// Defaults to a logger built from the config.
func WithLogger(l *slog.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = l
	}
}

// WithMeter sets the OpenTelemetry meter used by MetricsAnalytics.
// Defaults to the global MeterProvider.
func WithMeter(m metric.Meter) FactoryOption {
	return func(f *Factory) {
		f.meter = m
	}
}

// WithRegisterer sets the Prometheus registerer used by PrometheusAnalytics.
// Defaults to prometheus.DefaultRegisterer.
func WithRegisterer(r prometheus.Registerer) FactoryOption {
	return func(f *Factory) {
		f.registerer = r
	}
}

// WithClock sets the clock of every bound command.
func WithClock(c command.Clock) FactoryOption {
	return func(f *Factory) {
		f.clock = c
	}
}

// WithRetryFactory replaces the retry strategy factory.
func WithRetryFactory(rf RetryFactory) FactoryOption {
	return func(f *Factory) {
		f.retry = rf
	}
}

// WithThrottleFactory replaces the throttle strategy factory.
func WithThrottleFactory(tf ThrottleFactory) FactoryOption {
	return func(f *Factory) {
		f.throttle = tf
	}
}

// WithErrorHandlerFactory replaces the error handler factory.
func WithErrorHandlerFactory(ef ErrorHandlerFactory) FactoryOption {
	return func(f *Factory) {
		f.errors = ef
	}
}

// WithAnalyticsFactory replaces the analytics factory.
func WithAnalyticsFactory(af AnalyticsFactory) FactoryOption {
	return func(f *Factory) {
		f.analytics = af
	}
}

// WithEligibilityFactory replaces the eligibility factory.
func WithEligibilityFactory(ef EligibilityFactory) FactoryOption {
	return func(f *Factory) {
		f.eligibility = ef
	}
}

// WithExecutionFactory replaces the execution factory.
func WithExecutionFactory(ef ExecutionFactory) FactoryOption {
	return func(f *Factory) {
		f.execution = ef
	}
}

// NewFactory creates a Factory. Strategy factories that are not replaced by
// an option are the Default* factories, configured from the config, logger,
// meter and registerer.
func NewFactory(opts ...FactoryOption) *Factory {
	f := &Factory{cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(f)
	}

	if f.logger == nil {
		f.logger = f.cfg.NewLogger()
	}
	if f.clock == nil {
		f.clock = command.SystemClock{}
	}
	if f.retry == nil {
		f.retry = DefaultRetryFactory{MaxAttempts: f.cfg.DefaultMaxAttempts}
	}
	if f.throttle == nil {
		f.throttle = DefaultThrottleFactory{MaxConcurrency: f.cfg.DefaultMaxConcurrency}
	}
	if f.errors == nil {
		f.errors = DefaultErrorHandlerFactory{Logger: f.logger}
	}
	if f.analytics == nil {
		f.analytics = DefaultAnalyticsFactory{
			Logger:     f.logger,
			Level:      f.cfg.AnalyticsLevel,
			Meter:      f.meter,
			Registerer: f.registerer,
			Namespace:  f.cfg.MetricsNamespace,
		}
	}
	if f.eligibility == nil {
		f.eligibility = DefaultEligibilityFactory{}
	}
	if f.execution == nil {
		f.execution = DefaultExecutionFactory{}
	}

	return f
}

// Bind builds a command from b against target.
//
// The parameter type of the command is inferred from the execute method:
// its single parameter, ignoring a leading context.Context, or any when it
// takes none. An eligibility method must take the same parameter type; for a
// parameterless execute method that type is any. Markers of an unknown
// contract fail with ErrUnsupportedMarker. These checks happen before any
// strategy is built.
func (f *Factory) Bind(target any, b Binding) (*command.Command[any], error) {
	if isNil(target) {
		return nil, ErrNilTarget
	}
	if b.Execute == "" {
		return nil, ErrEmptyMethod
	}

	execFn, err := lookupMethod(target, b.Execute)
	if err != nil {
		return nil, err
	}
	paramType, err := executeParameterType(b.Execute, execFn.Type())
	if err != nil {
		return nil, err
	}

	if b.CanExecute != "" {
		canFn, err := lookupMethod(target, b.CanExecute)
		if err != nil {
			return nil, err
		}
		canParamType, err := parameterType(b.CanExecute, canFn.Type())
		if err != nil {
			return nil, err
		}
		if untyped(canParamType) != untyped(paramType) {
			return nil, fmt.Errorf("%w: %s takes %v, %s takes %v",
				ErrParameterTypeMismatch, b.Execute, paramType, b.CanExecute, canParamType)
		}
	}

	if err := checkContracts(b.Markers); err != nil {
		return nil, err
	}

	exec, err := f.execution.Execution(target, b.Execute, paramType)
	if err != nil {
		return nil, err
	}
	eligibility, err := f.eligibility.Eligibility(target, b.CanExecute, paramType)
	if err != nil {
		return nil, err
	}
	errs, err := f.errors.ErrorHandler(b.Markers)
	if err != nil {
		return nil, err
	}
	analytics, err := f.analytics.Analytics(b.Markers)
	if err != nil {
		return nil, err
	}
	throttle, err := f.throttle.Throttle(b.Markers)
	if err != nil {
		return nil, err
	}
	retry, err := f.retry.Retry(b.Markers)
	if err != nil {
		return nil, err
	}

	cmd, err := command.New(exec, eligibility,
		command.WithName(b.Name),
		command.WithRetry(retry),
		command.WithThrottle(throttle),
		command.WithErrorHandler(errs),
		command.WithAnalytics(analytics),
		command.WithClock(f.clock),
	)
	if err != nil {
		return nil, err
	}

	f.logger.LogAttrs(context.Background(), slog.LevelDebug, "command bound",
		logger.Command(cmd.Name()),
		logger.Group("binding",
			logger.Method(b.Execute),
			logger.Key("can_execute", b.CanExecute),
			logger.Key("parameter", typeName(paramType)),
			logger.Key("markers", len(b.Markers)),
		),
	)

	return cmd, nil
}

// BindAll binds every command field of the struct pointed to by target, in
// declaration order. A field is bound when bindings has an entry for its
// name, or else when it carries a command struct tag. Fields must be
// assignable from *command.Command[any]. A bindings key that names no field
// fails with ErrInvalidBindings.
//
// Either every field is assigned or, on the first failure, none is.
func (f *Factory) BindAll(target any, bindings Bindings) error {
	fields, err := commandFields(target, bindings)
	if err != nil {
		return err
	}

	cmds := make([]*command.Command[any], 0, len(fields))
	for _, field := range fields {
		cmd, err := f.Bind(target, field.binding)
		if err != nil {
			return fmt.Errorf("bind field %s: %w", field.name, err)
		}
		cmds = append(cmds, cmd)
	}

	for i, field := range fields {
		field.value.Set(reflect.ValueOf(cmds[i]))
	}
	return nil
}

// untyped maps the missing parameter of a method without one to any.
func untyped(t reflect.Type) reflect.Type {
	if t == nil {
		return anyType
	}
	return t
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "none"
	}
	return t.String()
}
