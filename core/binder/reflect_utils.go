package binder

import (
	"context"
	"fmt"
	"maps"
	"reflect"
	"slices"

	"github.com/dmitrymomot/smartcommand/core/command"
	"github.com/dmitrymomot/smartcommand/pkg/async"
)

var (
	anyType     = reflect.TypeFor[any]()
	boolType    = reflect.TypeFor[bool]()
	errorType   = reflect.TypeFor[error]()
	futureType  = reflect.TypeFor[*async.ExecFuture]()
	contextType = reflect.TypeFor[context.Context]()
	commandType = reflect.TypeFor[*command.Command[any]]()
)

// MethodSet exposes methods that reflection cannot reach, such as unexported
// methods or closures. Names in the map shadow exported methods of the same name.
//
// Example:
//
//	func (vm *EditorViewModel) CommandMethods() map[string]any {
//		return map[string]any{
//			"save":    vm.save,
//			"canSave": vm.canSave,
//		}
//	}
type MethodSet interface {
	CommandMethods() map[string]any
}

// isNil reports whether v is nil or a nil pointer, map, slice, func or channel.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// lookupMethod finds the method called name on target: first in the target's
// MethodSet, then among its exported methods.
func lookupMethod(target any, name string) (reflect.Value, error) {
	if isNil(target) {
		return reflect.Value{}, ErrNilTarget
	}

	if ms, ok := target.(MethodSet); ok {
		if fn, found := ms.CommandMethods()[name]; found {
			v := reflect.ValueOf(fn)
			if v.Kind() != reflect.Func || v.IsNil() {
				return reflect.Value{}, fmt.Errorf("%w: %s on %T is %T, not a function", ErrMethodNotFound, name, target, fn)
			}
			return v, nil
		}
	}

	m := reflect.ValueOf(target).MethodByName(name)
	if !m.IsValid() {
		return reflect.Value{}, fmt.Errorf("%w: %s on %T", ErrMethodNotFound, name, target)
	}
	return m, nil
}

// parameterType returns the single parameter type of sig, or nil when sig takes none.
func parameterType(name string, sig reflect.Type) (reflect.Type, error) {
	if sig.IsVariadic() {
		return nil, fmt.Errorf("%w: %s is variadic", ErrParameterCount, name)
	}
	switch sig.NumIn() {
	case 0:
		return nil, nil
	case 1:
		return sig.In(0), nil
	default:
		return nil, fmt.Errorf("%w: %s takes %d parameters, at most 1 allowed", ErrParameterCount, name, sig.NumIn())
	}
}

// executeParameters splits an execute method signature into an optional
// leading context.Context and the remaining parameter types.
func executeParameters(sig reflect.Type) (withContext bool, params []reflect.Type) {
	for i := range sig.NumIn() {
		params = append(params, sig.In(i))
	}
	if len(params) > 0 && params[0] == contextType {
		return true, params[1:]
	}
	return false, params
}

// executeParameterType is parameterType for execute methods, which may also
// take a leading context.Context.
func executeParameterType(name string, sig reflect.Type) (reflect.Type, error) {
	if sig.IsVariadic() {
		return nil, fmt.Errorf("%w: %s is variadic", ErrParameterCount, name)
	}
	_, params := executeParameters(sig)
	switch len(params) {
	case 0:
		return nil, nil
	case 1:
		return params[0], nil
	default:
		return nil, fmt.Errorf("%w: %s takes %d parameters, at most 1 allowed", ErrParameterCount, name, len(params))
	}
}

// argument converts a command parameter to a call argument of type in.
// A nil parameter becomes the zero value of in.
func argument(param any, in reflect.Type) (reflect.Value, bool) {
	if param == nil {
		return reflect.Zero(in), true
	}
	v := reflect.ValueOf(param)
	if !v.Type().AssignableTo(in) {
		return reflect.Value{}, false
	}
	return v, true
}

// commandField is a struct field that receives a bound command.
type commandField struct {
	name    string
	value   reflect.Value
	binding Binding
}

// commandFields walks the fields of the struct pointed to by target in
// declaration order and returns those with a binding, either from bindings
// (by field name) or from struct tags. Fields without a binding are skipped.
func commandFields(target any, bindings Bindings) ([]commandField, error) {
	rv := reflect.ValueOf(target)
	if target == nil || rv.Kind() != reflect.Pointer || rv.IsNil() {
		return nil, fmt.Errorf("%w: got %T", ErrInvalidTarget, target)
	}

	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: got %T", ErrInvalidTarget, target)
	}

	rt := rv.Type()

	for _, key := range slices.Sorted(maps.Keys(bindings)) {
		if f, found := rt.FieldByName(key); !found || len(f.Index) != 1 {
			return nil, fmt.Errorf("%w: %s has no field %s", ErrInvalidBindings, rt, key)
		}
	}

	var fields []commandField

	for i := range rv.NumField() {
		field := rv.Field(i)
		fieldType := rt.Field(i)

		binding, ok := bindings[fieldType.Name]
		if !ok {
			var err error
			binding, ok, err = parseFieldTags(fieldType)
			if err != nil {
				return nil, err
			}
		}
		if !ok {
			continue
		}

		if !field.CanSet() {
			return nil, fmt.Errorf("%w: field %s is not exported", ErrFieldType, fieldType.Name)
		}
		if !commandType.AssignableTo(fieldType.Type) {
			return nil, fmt.Errorf("%w: field %s has type %s", ErrFieldType, fieldType.Name, fieldType.Type)
		}

		fields = append(fields, commandField{name: fieldType.Name, value: field, binding: binding})
	}

	return fields, nil
}
