package feather

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/featherscript/feather/internal/core/hostops"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// toTclString converts a Go value to its TCL string representation,
// quoting with braces where list/word syntax requires it.
func toTclString(v any) string {
	if v == nil {
		return "{}"
	}

	switch val := v.(type) {
	case string:
		return quote(val)
	case int:
		return fmt.Sprintf("%d", val)
	case int64:
		return fmt.Sprintf("%d", val)
	case float64:
		return fmt.Sprintf("%g", val)
	case bool:
		if val {
			return "1"
		}
		return "0"
	case []string:
		parts := make([]string, len(val))
		for i, s := range val {
			parts[i] = quote(s)
		}
		return strings.Join(parts, " ")
	case *Obj:
		return quote(val.String())
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Slice, reflect.Array:
			parts := make([]string, rv.Len())
			for i := 0; i < rv.Len(); i++ {
				parts[i] = toTclString(rv.Index(i).Interface())
			}
			return strings.Join(parts, " ")
		case reflect.Map:
			var parts []string
			iter := rv.MapRange()
			for iter.Next() {
				parts = append(parts, toTclString(iter.Key().Interface()))
				parts = append(parts, toTclString(iter.Value().Interface()))
			}
			return strings.Join(parts, " ")
		default:
			return quote(fmt.Sprintf("%v", v))
		}
	}
}

// resultString converts a Go value to a raw TCL string for use as a
// command result, unlike toTclString it never adds brace quoting: a
// result is stored whole, not spliced back into script text.
func resultString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case int:
		return fmt.Sprintf("%d", val)
	case int64:
		return fmt.Sprintf("%d", val)
	case float64:
		return fmt.Sprintf("%g", val)
	case bool:
		if val {
			return "1"
		}
		return "0"
	case []string:
		return strings.Join(val, " ")
	default:
		return fmt.Sprintf("%v", v)
	}
}

// quote adds braces around a string if it contains characters TCL's word
// syntax would otherwise treat specially.
func quote(s string) string {
	if s == "" {
		return "{}"
	}
	needsQuote := false
	for _, c := range s {
		if c == ' ' || c == '\t' || c == '\n' || c == '{' || c == '}' || c == '"' || c == '\\' || c == '$' || c == '[' || c == ']' {
			needsQuote = true
			break
		}
	}
	if needsQuote {
		return "{" + s + "}"
	}
	return s
}

// setErrorResult stores msg as the interpreter result and returns an
// error result, matching how internal/core's builtins report failures.
func setErrorResult(ops hostops.Ops, msg string) hostops.Result {
	ops.SetResult(ops.Intern(msg))
	return hostops.Result{Code: hostops.Error}
}

// wrapFunc wraps a Go function as a [hostops.BuiltinFunc], converting
// arguments and results by reflection. Used by [Interp.Register].
func wrapFunc(fn any) hostops.BuiltinFunc {
	fnVal := reflect.ValueOf(fn)
	fnType := fnVal.Type()

	if fnType.Kind() != reflect.Func {
		panic(fmt.Sprintf("Register: expected function, got %T", fn))
	}

	numIn := fnType.NumIn()
	isVariadic := fnType.IsVariadic()

	return func(e hostops.Engine, cmd hostops.Handle, args []hostops.Handle) hostops.Result {
		ops := e.Ops()

		if isVariadic {
			if len(args) < numIn-1 {
				return setErrorResult(ops, fmt.Sprintf("wrong # args: expected at least %d, got %d", numIn-1, len(args)))
			}
		} else if len(args) != numIn {
			return setErrorResult(ops, fmt.Sprintf("wrong # args: expected %d, got %d", numIn, len(args)))
		}

		callArgs := make([]reflect.Value, len(args))
		for j := 0; j < len(args); j++ {
			var paramType reflect.Type
			if isVariadic && j >= numIn-1 {
				paramType = fnType.In(numIn - 1).Elem()
			} else {
				paramType = fnType.In(j)
			}

			converted, err := convertArg(ops, args[j], paramType)
			if err != nil {
				return setErrorResult(ops, fmt.Sprintf("argument %d: %v", j+1, err))
			}
			callArgs[j] = converted
		}

		results := fnVal.Call(callArgs)
		return processResults(ops, results, fnType)
	}
}

// convertArg converts a TCL handle to a Go value of the requested type.
func convertArg(ops hostops.Ops, arg hostops.Handle, targetType reflect.Type) (reflect.Value, error) {
	switch targetType.Kind() {
	case reflect.String:
		return reflect.ValueOf(ops.Bytes(arg)), nil

	case reflect.Int:
		v, ok := ops.Int(arg)
		if !ok {
			return reflect.Value{}, fmt.Errorf("expected integer but got %q", ops.Bytes(arg))
		}
		return reflect.ValueOf(int(v)), nil

	case reflect.Int64:
		v, ok := ops.Int(arg)
		if !ok {
			return reflect.Value{}, fmt.Errorf("expected integer but got %q", ops.Bytes(arg))
		}
		return reflect.ValueOf(v), nil

	case reflect.Float64:
		v, ok := ops.Double(arg)
		if !ok {
			return reflect.Value{}, fmt.Errorf("expected floating-point number but got %q", ops.Bytes(arg))
		}
		return reflect.ValueOf(v), nil

	case reflect.Bool:
		s := strings.ToLower(ops.Bytes(arg))
		switch s {
		case "1", "true", "yes", "on":
			return reflect.ValueOf(true), nil
		case "0", "false", "no", "off":
			return reflect.ValueOf(false), nil
		default:
			return reflect.Value{}, fmt.Errorf("expected boolean but got %q", ops.Bytes(arg))
		}

	case reflect.Slice:
		h, err := ops.ParseList(arg)
		if err != nil {
			return reflect.Value{}, err
		}
		items := ops.Items(h)
		if targetType.Elem().Kind() == reflect.String {
			slice := make([]string, len(items))
			for j, item := range items {
				slice[j] = ops.Bytes(item)
			}
			return reflect.ValueOf(slice), nil
		}
		slice := reflect.MakeSlice(targetType, len(items), len(items))
		for j, item := range items {
			converted, err := convertArg(ops, item, targetType.Elem())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("element %d: %v", j, err)
			}
			slice.Index(j).Set(converted)
		}
		return slice, nil

	case reflect.Interface:
		if targetType.NumMethod() == 0 {
			return reflect.ValueOf(any(ops.Bytes(arg))), nil
		}
		return reflect.Value{}, fmt.Errorf("cannot convert to interface %v", targetType)

	default:
		return reflect.Value{}, fmt.Errorf("unsupported parameter type: %v", targetType)
	}
}

// processResults handles the return values from a reflected function
// call, treating a trailing error return as a TCL error result.
func processResults(ops hostops.Ops, results []reflect.Value, fnType reflect.Type) hostops.Result {
	if len(results) == 0 {
		ops.SetResult(ops.Intern(""))
		return hostops.Result{Code: hostops.OK}
	}

	lastResult := results[len(results)-1]
	if fnType.NumOut() > 0 && fnType.Out(fnType.NumOut()-1) == errorType {
		if !lastResult.IsNil() {
			err := lastResult.Interface().(error)
			return setErrorResult(ops, err.Error())
		}
		results = results[:len(results)-1]
	}

	if len(results) == 0 {
		ops.SetResult(ops.Intern(""))
		return hostops.Result{Code: hostops.OK}
	}

	return convertResult(ops, results[0])
}

// convertResult converts a single Go return value to a TCL result.
func convertResult(ops hostops.Ops, result reflect.Value) hostops.Result {
	if !result.IsValid() {
		ops.SetResult(ops.Intern(""))
		return hostops.Result{Code: hostops.OK}
	}

	switch result.Kind() {
	case reflect.String:
		ops.SetResult(ops.Intern(result.String()))

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		ops.SetResult(ops.NewInt(result.Int()))

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		ops.SetResult(ops.NewInt(int64(result.Uint())))

	case reflect.Float32, reflect.Float64:
		ops.SetResult(ops.NewDouble(result.Float()))

	case reflect.Bool:
		if result.Bool() {
			ops.SetResult(ops.NewInt(1))
		} else {
			ops.SetResult(ops.NewInt(0))
		}

	case reflect.Slice:
		items := make([]hostops.Handle, result.Len())
		for j := range items {
			items[j] = resultHandle(ops, result.Index(j))
		}
		ops.SetResult(ops.NewList(items...))

	case reflect.Map:
		dict := ops.NewDict()
		iter := result.MapRange()
		for iter.Next() {
			key := ops.Intern(fmt.Sprintf("%v", iter.Key().Interface()))
			dict = ops.Set(dict, key, resultHandle(ops, iter.Value()))
		}
		ops.SetResult(dict)

	case reflect.Ptr, reflect.Interface:
		if result.IsNil() {
			ops.SetResult(ops.Intern(""))
		} else {
			ops.SetResult(ops.Intern(fmt.Sprintf("%v", result.Interface())))
		}

	default:
		ops.SetResult(ops.Intern(fmt.Sprintf("%v", result.Interface())))
	}

	return hostops.Result{Code: hostops.OK}
}

// resultHandle converts a single reflected value into a handle for use
// as a list element or dict value, without touching the interp result.
func resultHandle(ops hostops.Ops, v reflect.Value) hostops.Handle {
	switch v.Kind() {
	case reflect.String:
		return ops.Intern(v.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ops.NewInt(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return ops.NewInt(int64(v.Uint()))
	case reflect.Float32, reflect.Float64:
		return ops.NewDouble(v.Float())
	default:
		return ops.Intern(fmt.Sprintf("%v", v.Interface()))
	}
}
