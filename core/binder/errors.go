package binder

import "errors"

// Error variables describe why a command could not be bound. Most are wrapped
// with the offending method, field or marker; match with errors.Is.
var (
	// ErrNilTarget indicates a binding was requested against a nil target.
	ErrNilTarget = errors.New("binding target is nil")

	// ErrInvalidTarget indicates BindAll received something other than a
	// non-nil pointer to a struct.
	ErrInvalidTarget = errors.New("binding target must be a non-nil pointer to struct")

	// ErrEmptyMethod indicates a binding without an execute method name.
	ErrEmptyMethod = errors.New("execute method name is required")

	// ErrMethodNotFound indicates the target has no method with the bound name.
	ErrMethodNotFound = errors.New("method not found")

	// ErrReturnType indicates a bound method returns something other than
	// error or *async.ExecFuture (execute) or bool (eligibility).
	ErrReturnType = errors.New("unsupported method return type")

	// ErrParameterCount indicates a bound method takes more parameters than
	// its shape allows.
	ErrParameterCount = errors.New("unsupported method parameter count")

	// ErrParameterType indicates a parameter type that does not fit the
	// command parameter type, at bind time or at invocation time.
	ErrParameterType = errors.New("unsupported method parameter type")

	// ErrParameterTypeMismatch indicates the execute and eligibility methods
	// take different parameter types.
	ErrParameterTypeMismatch = errors.New("execute and eligibility parameter types differ")

	// ErrUnsupportedMarker indicates a marker a strategy factory does not know.
	ErrUnsupportedMarker = errors.New("unsupported strategy marker")

	// ErrCompositeUnsupported indicates several markers for a contract that
	// cannot be composed.
	ErrCompositeUnsupported = errors.New("composite strategy is not supported")

	// ErrFieldType indicates a command field whose type cannot hold a
	// *command.Command[any].
	ErrFieldType = errors.New("field cannot hold a command")

	// ErrInvalidTag indicates a malformed binding struct tag.
	ErrInvalidTag = errors.New("invalid binding tag")

	// ErrInvalidBindings indicates a YAML bindings document that cannot be
	// decoded or names unknown strategies.
	ErrInvalidBindings = errors.New("invalid bindings document")
)
