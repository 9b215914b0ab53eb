package binder

import (
	"fmt"
	"log/slog"
	"reflect"
	"strconv"
	"strings"
)

// Struct tags read by BindAll.
const (
	TagCommand   = "command"
	TagRetry     = "retry"
	TagThrottle  = "throttle"
	TagErrors    = "errors"
	TagAnalytics = "analytics"
)

// Binding describes one command: the methods it is bound to, its name and
// the strategy markers.
type Binding struct {
	// Execute names the method doing the work. Required.
	Execute string
	// CanExecute names the eligibility method. Empty means always eligible.
	CanExecute string
	// Name is the command name. Empty means a random UUID.
	Name string
	// Markers select the retry, throttle, error handling and analytics strategies.
	Markers []Marker
}

// Bindings maps struct field names to the command bound into each field.
type Bindings map[string]Binding

// parseFieldTags builds a Binding from the struct tags of field. ok is false
// when the field has no command tag or the tag is "-".
//
// Example:
//
//	type EditorViewModel struct {
//		SaveCommand *command.Command[any] `command:"execute=Save,can_execute=CanSave,name=save" retry:"3" errors:"log"`
//		UndoCommand command.Invoker       `command:"Undo" analytics:"log:debug"`
//	}
func parseFieldTags(field reflect.StructField) (b Binding, ok bool, err error) {
	tag, found := field.Tag.Lookup(TagCommand)
	if !found || tag == "-" {
		return Binding{}, false, nil
	}

	if err := parseCommandTag(tag, &b); err != nil {
		return Binding{}, false, fmt.Errorf("%w: field %s: %w", ErrInvalidTag, field.Name, err)
	}

	if v, found := field.Tag.Lookup(TagRetry); found {
		n, err := parseCount(v)
		if err != nil {
			return Binding{}, false, fmt.Errorf("%w: field %s: retry: %w", ErrInvalidTag, field.Name, err)
		}
		b.Markers = append(b.Markers, Retry{MaxAttempts: n})
	}

	if v, found := field.Tag.Lookup(TagThrottle); found {
		n, err := parseCount(v)
		if err != nil {
			return Binding{}, false, fmt.Errorf("%w: field %s: throttle: %w", ErrInvalidTag, field.Name, err)
		}
		b.Markers = append(b.Markers, Throttle{MaxConcurrency: n})
	}

	if v, found := field.Tag.Lookup(TagErrors); found {
		for _, kind := range splitList(v) {
			m, err := errorMarker(kind)
			if err != nil {
				return Binding{}, false, fmt.Errorf("%w: field %s: %w", ErrInvalidTag, field.Name, err)
			}
			b.Markers = append(b.Markers, m)
		}
	}

	if v, found := field.Tag.Lookup(TagAnalytics); found {
		for _, kind := range splitList(v) {
			m, err := analyticsMarker(kind)
			if err != nil {
				return Binding{}, false, fmt.Errorf("%w: field %s: %w", ErrInvalidTag, field.Name, err)
			}
			b.Markers = append(b.Markers, m)
		}
	}

	return b, true, nil
}

// parseCommandTag reads "execute=M,can_execute=C,name=N". A leading element
// without "=" is the execute method.
func parseCommandTag(tag string, b *Binding) error {
	for i, part := range splitList(tag) {
		key, value, hasValue := strings.Cut(part, "=")
		if !hasValue {
			if i != 0 {
				return fmt.Errorf("option %q has no value", part)
			}
			b.Execute = part
			continue
		}

		switch strings.TrimSpace(key) {
		case "execute":
			b.Execute = strings.TrimSpace(value)
		case "can_execute":
			b.CanExecute = strings.TrimSpace(value)
		case "name":
			b.Name = strings.TrimSpace(value)
		default:
			return fmt.Errorf("unknown option %q", key)
		}
	}
	return nil
}

// parseCount parses a retry or throttle count. An empty value means 1.
func parseCount(v string) (int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid count %q", v)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative count %d", n)
	}
	return n, nil
}

func errorMarker(kind string) (Marker, error) {
	switch kind {
	case "log":
		return LogErrors{}, nil
	case "panic":
		return PanicOnError{}, nil
	default:
		return nil, fmt.Errorf("unknown error strategy %q", kind)
	}
}

// analyticsMarker parses "log", "log:<level>", "otel" or "prometheus".
func analyticsMarker(kind string) (Marker, error) {
	name, arg, hasArg := strings.Cut(kind, ":")
	switch name {
	case "log":
		if !hasArg {
			return LogAnalytics{}, nil
		}
		var level slog.Level
		if err := level.UnmarshalText([]byte(arg)); err != nil {
			return nil, fmt.Errorf("invalid analytics level %q", arg)
		}
		return LogAnalytics{Level: level}, nil
	case "otel":
		if hasArg {
			return nil, fmt.Errorf("analytics strategy %q takes no argument", name)
		}
		return MetricsAnalytics{}, nil
	case "prometheus":
		if hasArg {
			return nil, fmt.Errorf("analytics strategy %q takes no argument", name)
		}
		return PrometheusAnalytics{}, nil
	default:
		return nil, fmt.Errorf("unknown analytics strategy %q", kind)
	}
}

func splitList(v string) []string {
	var out []string
	for part := range strings.SplitSeq(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
