package binder

import (
	"fmt"
	"reflect"

	"github.com/dmitrymomot/smartcommand/core/command"
)

// EligibilityFactory builds the eligibility strategy of a binding.
type EligibilityFactory interface {
	Eligibility(target any, method string, paramType reflect.Type) (command.Eligibility[any], error)
}

// DefaultEligibilityFactory binds the named method with BindEligibility.
// An empty method name accepts every parameter.
type DefaultEligibilityFactory struct{}

// Eligibility resolves method on target and adapts it to command.Eligibility.
func (DefaultEligibilityFactory) Eligibility(target any, method string, paramType reflect.Type) (command.Eligibility[any], error) {
	if method == "" {
		return command.AlwaysEligible[any]{}, nil
	}
	fn, err := BindEligibility(target, method, paramType)
	if err != nil {
		return nil, err
	}
	return fn, nil
}

// BindEligibility binds the method called name on target as an eligibility
// predicate for commands whose parameter type is paramType; nil means any.
//
// The method must return exactly one bool and take exactly one parameter that
// paramType is assignable to. At call time a parameter that does not fit is
// reported as not eligible.
func BindEligibility(target any, name string, paramType reflect.Type) (command.EligibilityFunc[any], error) {
	if paramType == nil {
		paramType = anyType
	}

	fn, err := lookupMethod(target, name)
	if err != nil {
		return nil, err
	}

	sig := fn.Type()
	if sig.NumOut() != 1 || sig.Out(0) != boolType {
		return nil, fmt.Errorf("%w: %s must return bool", ErrReturnType, name)
	}
	if sig.IsVariadic() || sig.NumIn() != 1 {
		return nil, fmt.Errorf("%w: %s must take exactly one parameter", ErrParameterCount, name)
	}

	in := sig.In(0)
	if !paramType.AssignableTo(in) {
		return nil, fmt.Errorf("%w: %s takes %s, which %s is not assignable to", ErrParameterType, name, in, paramType)
	}

	return func(param any) bool {
		arg, ok := argument(param, in)
		if !ok {
			return false
		}
		return fn.Call([]reflect.Value{arg})[0].Bool()
	}, nil
}
