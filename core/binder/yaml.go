package binder

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

type bindingsDocument struct {
	Commands map[string]bindingEntry `yaml:"commands"`
}

type bindingEntry struct {
	Execute    string   `yaml:"execute"`
	CanExecute string   `yaml:"can_execute"`
	Name       string   `yaml:"name"`
	Retry      *int     `yaml:"retry"`
	Throttle   *int     `yaml:"throttle"`
	Errors     []string `yaml:"errors"`
	Analytics  []string `yaml:"analytics"`
}

// LoadBindings decodes a YAML bindings document keyed by struct field name.
// Strategy names use the same vocabulary as struct tags. An empty document
// yields no bindings.
//
//	commands:
//	  SaveCommand:
//	    execute: Save
//	    can_execute: CanSave
//	    name: save
//	    retry: 3
//	    errors: [log]
//	    analytics: ["log:debug"]
func LoadBindings(r io.Reader) (Bindings, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc bindingsDocument
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Bindings{}, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidBindings, err)
	}

	bindings := make(Bindings, len(doc.Commands))
	for field, entry := range doc.Commands {
		b, err := entry.binding()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidBindings, field, err)
		}
		bindings[field] = b
	}
	return bindings, nil
}

// binding converts an entry; markers follow the order of struct tags.
func (e bindingEntry) binding() (Binding, error) {
	b := Binding{
		Execute:    strings.TrimSpace(e.Execute),
		CanExecute: strings.TrimSpace(e.CanExecute),
		Name:       strings.TrimSpace(e.Name),
	}

	if e.Retry != nil {
		if *e.Retry < 0 {
			return Binding{}, fmt.Errorf("retry: negative count %d", *e.Retry)
		}
		b.Markers = append(b.Markers, Retry{MaxAttempts: *e.Retry})
	}
	if e.Throttle != nil {
		if *e.Throttle < 0 {
			return Binding{}, fmt.Errorf("throttle: negative count %d", *e.Throttle)
		}
		b.Markers = append(b.Markers, Throttle{MaxConcurrency: *e.Throttle})
	}
	for _, kind := range e.Errors {
		m, err := errorMarker(strings.TrimSpace(kind))
		if err != nil {
			return Binding{}, err
		}
		b.Markers = append(b.Markers, m)
	}
	for _, kind := range e.Analytics {
		m, err := analyticsMarker(strings.TrimSpace(kind))
		if err != nil {
			return Binding{}, err
		}
		b.Markers = append(b.Markers, m)
	}

	return b, nil
}
