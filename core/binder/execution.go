package binder

import (
	"context"
	"fmt"
	"reflect"

	"github.com/dmitrymomot/smartcommand/core/command"
	"github.com/dmitrymomot/smartcommand/pkg/async"
)

// ExecutionFactory builds the execution strategy of a binding.
type ExecutionFactory interface {
	Execution(target any, method string, paramType reflect.Type) (command.Execution[any], error)
}

// DefaultExecutionFactory binds the named method with BindExecution.
type DefaultExecutionFactory struct{}

// Execution resolves method on target and adapts it to command.Execution.
func (DefaultExecutionFactory) Execution(target any, method string, paramType reflect.Type) (command.Execution[any], error) {
	fn, err := BindExecution(target, method, paramType)
	if err != nil {
		return nil, err
	}
	return fn, nil
}

// BindExecution binds the method called name on target, choosing the shape
// from its return type (error or *async.ExecFuture) and from paramType
// (nil for a method without parameter).
func BindExecution(target any, name string, paramType reflect.Type) (command.ExecutionFunc[any], error) {
	fn, err := lookupMethod(target, name)
	if err != nil {
		return nil, err
	}

	sig := fn.Type()
	if sig.NumOut() != 1 || (sig.Out(0) != errorType && sig.Out(0) != futureType) {
		return nil, fmt.Errorf("%w: %s must return error or *async.ExecFuture", ErrReturnType, name)
	}

	return bindMethod(fn, name, paramType, sig.Out(0))
}

// BindSync binds a method of the form func([ctx,] P) error where P is exactly paramType.
func BindSync(target any, name string, paramType reflect.Type) (command.ExecutionFunc[any], error) {
	if paramType == nil {
		return nil, fmt.Errorf("%w: %s needs a parameter type", ErrParameterType, name)
	}
	return lookupAndBind(target, name, paramType, errorType)
}

// BindSyncNoParam binds a method of the form func([ctx]) error.
func BindSyncNoParam(target any, name string) (command.ExecutionFunc[any], error) {
	return lookupAndBind(target, name, nil, errorType)
}

// BindAsync binds a method of the form func([ctx,] P) *async.ExecFuture where P is exactly paramType.
func BindAsync(target any, name string, paramType reflect.Type) (command.ExecutionFunc[any], error) {
	if paramType == nil {
		return nil, fmt.Errorf("%w: %s needs a parameter type", ErrParameterType, name)
	}
	return lookupAndBind(target, name, paramType, futureType)
}

// BindAsyncNoParam binds a method of the form func([ctx]) *async.ExecFuture.
func BindAsyncNoParam(target any, name string) (command.ExecutionFunc[any], error) {
	return lookupAndBind(target, name, nil, futureType)
}

func lookupAndBind(target any, name string, paramType, result reflect.Type) (command.ExecutionFunc[any], error) {
	fn, err := lookupMethod(target, name)
	if err != nil {
		return nil, err
	}

	sig := fn.Type()
	if sig.NumOut() != 1 || sig.Out(0) != result {
		return nil, fmt.Errorf("%w: %s must return %s", ErrReturnType, name, result)
	}

	return bindMethod(fn, name, paramType, result)
}

// bindMethod checks the parameters of fn against paramType and wraps it.
// Errors and panics raised by the method reach the caller unchanged.
func bindMethod(fn reflect.Value, name string, paramType, result reflect.Type) (command.ExecutionFunc[any], error) {
	sig := fn.Type()
	if sig.IsVariadic() {
		return nil, fmt.Errorf("%w: %s is variadic", ErrParameterCount, name)
	}

	withContext, params := executeParameters(sig)
	switch {
	case paramType == nil && len(params) != 0:
		return nil, fmt.Errorf("%w: %s must take no parameter", ErrParameterCount, name)
	case paramType != nil && len(params) != 1:
		return nil, fmt.Errorf("%w: %s must take exactly one parameter", ErrParameterCount, name)
	case paramType != nil && params[0] != paramType:
		return nil, fmt.Errorf("%w: %s takes %s, expected %s", ErrParameterType, name, params[0], paramType)
	}

	return func(ctx context.Context, param any) error {
		args := make([]reflect.Value, 0, 2)
		if withContext {
			args = append(args, reflect.ValueOf(&ctx).Elem())
		}
		if paramType != nil {
			arg, ok := argument(param, paramType)
			if !ok {
				return fmt.Errorf("%w: %s takes %s, got %T", ErrParameterType, name, paramType, param)
			}
			args = append(args, arg)
		}

		out := fn.Call(args)[0]
		if result == futureType {
			f, _ := out.Interface().(*async.ExecFuture)
			if f == nil {
				return nil
			}
			return f.Await()
		}
		err, _ := out.Interface().(error)
		return err
	}, nil
}
