// Package binder builds commands declaratively: from struct tags, from a YAML
// bindings document, or from Binding values, resolved against methods of a
// target object.
//
// # Features
//
//   - Reflection binding of execute and eligibility methods with shape checks
//   - Strategy markers resolved per contract, with composites where allowed
//   - Struct tag and YAML binding sources sharing one vocabulary
//   - All-or-nothing bulk binding into struct fields
//   - Defaults from COMMAND_* environment variables
//
// # Usage
//
//	import "github.com/dmitrymomot/smartcommand/core/binder"
//
//	type EditorViewModel struct {
//		SaveCommand *command.Command[any] `command:"execute=Save,can_execute=CanSave,name=save" retry:"3" errors:"log"`
//		UndoCommand command.Invoker       `command:"Undo" analytics:"log:debug"`
//
//		doc Document
//	}
//
//	func (vm *EditorViewModel) Save(ctx context.Context, doc Document) error { ... }
//	func (vm *EditorViewModel) CanSave(doc Document) bool                     { return doc.Dirty }
//	func (vm *EditorViewModel) Undo() error                                  { ... }
//
//	factory := binder.NewFactory(binder.WithLogger(log))
//	vm := &EditorViewModel{}
//	if err := factory.BindAll(vm, nil); err != nil {
//		return err
//	}
//	vm.SaveCommand.Execute(vm.doc)
//
// # Method Shapes
//
// Execute methods return error (synchronous) or *async.ExecFuture
// (asynchronous, awaited by the command) and take zero or one parameter,
// optionally preceded by a context.Context. A one-parameter method fixes the
// parameter type of the command; a parameter of another type fails the
// attempt with ErrParameterType.
//
// Eligibility methods return bool and take exactly one parameter of the same
// type as the execute method, or any when the execute method takes none.
//
// Methods are looked up among the exported methods of the target. A target
// implementing MethodSet can also expose unexported methods and closures.
//
// # Struct Tags
//
//	command:"execute=M,can_execute=C,name=N"  binding; "command:\"M\"" is short for execute=M
//	retry:"3"                                 Retry{MaxAttempts: 3}; empty means 1
//	throttle:"2"                              Throttle{MaxConcurrency: 2}; empty means 1
//	errors:"log,panic"                        LogErrors, PanicOnError (composed in order)
//	analytics:"log:debug"                     LogAnalytics; also "log", "otel", "prometheus"
//
// # YAML
//
// LoadBindings reads the same information keyed by field name:
//
//	commands:
//	  SaveCommand:
//	    execute: Save
//	    can_execute: CanSave
//	    retry: 3
//	    errors: [log]
//
// An entry in the Bindings passed to BindAll takes precedence over the tags
// of that field.
//
// # Strategy Resolution
//
// Markers are grouped by Contract. No marker selects the default strategy,
// one marker its strategy, and several markers a composite. Only error
// handling composes; several retry, throttle or analytics markers fail with
// ErrCompositeUnsupported. Custom markers need a custom strategy factory,
// otherwise they fail with ErrUnsupportedMarker.
//
// # Error Handling
//
// Binding failures are returned rather than panicked. They are deterministic: the
// same binding against the same target always fails with the same sentinel.
// BindAll stops at the first failure without assigning any field.
//
//	if errors.Is(err, binder.ErrMethodNotFound) {
//		// a binding names a method the target does not have
//	}
package binder
