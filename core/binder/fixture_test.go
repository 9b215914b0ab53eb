package binder_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrymomot/smartcommand/core/command"
	"github.com/dmitrymomot/smartcommand/pkg/async"
)

type document struct {
	Title string
	Dirty bool
}

var errReadOnly = errors.New("document is read-only")

// editor is a binding target covering every supported and unsupported method shape.
type editor struct {
	mu       sync.Mutex
	calls    []string
	names    []string
	readOnly bool
}

func (e *editor) record(call string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, call)
}

func (e *editor) recorded() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.calls...)
}

func (e *editor) Save(doc document) error {
	if e.readOnly {
		return errReadOnly
	}
	e.record("save " + doc.Title)
	return nil
}

func (e *editor) SaveWithContext(ctx context.Context, doc document) error {
	e.mu.Lock()
	e.names = append(e.names, command.CommandName(ctx))
	e.mu.Unlock()
	e.record("save ctx " + doc.Title)
	return nil
}

func (e *editor) CanSave(doc document) bool { return doc.Dirty }

func (e *editor) Refresh() error {
	e.record("refresh")
	return nil
}

func (e *editor) Load(id int) *async.ExecFuture {
	return async.Exec(context.Background(), id, func(_ context.Context, id int) error {
		if id < 0 {
			return errReadOnly
		}
		e.record("load")
		return nil
	})
}

func (e *editor) LoadAll() *async.ExecFuture {
	e.record("load all")
	return async.Resolved(nil)
}

func (e *editor) Close(ctx context.Context) *async.ExecFuture {
	e.record("close")
	return nil
}

func (e *editor) CanRefresh(param any) bool { return param == nil }
func (e *editor) CanLoad(id int) bool       { return id != 0 }
func (e *editor) CanAnything() bool         { return true }
func (e *editor) Count() int                { return len(e.recorded()) }
func (e *editor) CanCount(doc document) int { return 0 }

func (e *editor) Merge(a, b document) error                       { return nil }
func (e *editor) SaveAll(docs ...document) error                  { return nil }
func (e *editor) CanMerge(a, b document) bool                     { return true }
func (e *editor) SavePointer(doc *document) error                 { return nil }
func (e *editor) Crash(doc document) error                        { panic(errReadOnly) }
func (e *editor) CanDescribe(s interface{ String() string }) bool { return s != nil }

// hidden exposes unexported methods through MethodSet.
type hidden struct {
	editor
}

func (h *hidden) CommandMethods() map[string]any {
	return map[string]any{
		"archive":    h.archive,
		"canArchive": h.canArchive,
		"Save":       h.saveOverride,
		"notAFunc":   42,
	}
}

func (h *hidden) archive(doc document) error {
	h.record("archive " + doc.Title)
	return nil
}

func (h *hidden) canArchive(doc document) bool { return !doc.Dirty }

func (h *hidden) saveOverride(doc document) error {
	h.record("override " + doc.Title)
	return nil
}

// runAndWait executes the command and waits for the given number of
// can-execute-changed notifications: two per executed attempt, one per skipped one.
func runAndWait(t *testing.T, inv command.Invoker, param any, notifications int) {
	t.Helper()

	changed := make(chan struct{}, 64)
	cancel := inv.OnCanExecuteChanged(func() { changed <- struct{}{} })
	defer cancel()

	inv.Execute(param)
	for range notifications {
		select {
		case <-changed:
		case <-time.After(2 * time.Second):
			t.Fatal("command did not finish in time")
		}
	}
}
