// Package feather provides an embeddable TCL interpreter.
//
// feather is a pure Go implementation of TCL designed for embedding into
// Go applications. It provides a clean, idiomatic Go API while preserving
// TCL's metaprogramming capabilities.
//
// # Quick Start
//
//	interp := feather.New()
//
//	result, err := interp.Eval("set x 42; expr {$x * 2}")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.String()) // "84"
//
// # Registering Go Functions
//
// The [Interp.Register] method allows exposing Go functions to TCL with
// automatic argument conversion:
//
//	interp.Register("greet", func(name string) string {
//	    return "Hello, " + name + "!"
//	})
//	result, _ := interp.Eval(`greet World`)
//	// result.String() == "Hello, World!"
//
// Supported parameter types: string, int, int64, float64, bool, []string.
// Supported return types: string, int, int64, float64, bool, error, or (T, error).
//
// # Low-Level Command Registration
//
// For full control over argument handling, use [Interp.RegisterCommand]:
//
//	interp.RegisterCommand("sum", func(i *feather.Interp, cmd *feather.Obj, args []*feather.Obj) feather.Result {
//	    if len(args) < 2 {
//	        return feather.Errorf("wrong # args: should be \"%s a b\"", cmd.String())
//	    }
//	    a, _ := feather.AsInt(args[0])
//	    b, _ := feather.AsInt(args[1])
//	    return feather.OK(a + b)
//	})
//
// # Working with Values
//
// The [*Obj] type represents TCL values and supports shimmering (lazy type conversion):
//
//	// Create values
//	s := interp.String("hello")
//	n := interp.Int(42)
//	f := interp.Float(3.14)
//	b := interp.Bool(true)
//	list := interp.List(interp.String("a"), interp.Int(1))
//	dict := interp.DictKV("name", "Alice", "age", 30)
//
//	// Read values back
//	s.String()            // always succeeds
//	feather.AsInt(n)      // (int64, error) - parses if needed
//	feather.AsDouble(f)   // (float64, error)
//	feather.AsBool(b)     // (bool, error) - TCL boolean rules
//	feather.AsList(list)  // ([]*Obj, error)
//	feather.AsDict(dict)  // (*DictType, error)
//
// # Exposing Go Types
//
// Use [RegisterType] to expose Go structs as TCL objects:
//
//	feather.RegisterType[*MyService](interp, "Service", feather.TypeDef[*MyService]{
//	    New: func() *MyService { return NewMyService() },
//	    Methods: map[string]any{
//	        "doWork": (*MyService).DoWork,
//	    },
//	})
//	interp.Eval(`set svc [Service new]; $svc doWork`)
package feather

import (
	"fmt"

	"github.com/featherscript/feather/internal/core"
	"github.com/featherscript/feather/internal/core/hostops"
	"github.com/featherscript/feather/internal/host"
	"github.com/hashicorp/go-hclog"
)

// Interp is a TCL interpreter instance.
//
// Create a new interpreter with [New]. An interpreter is not safe for
// concurrent use from multiple goroutines.
//
//	interp := feather.New()
//	result, err := interp.Eval("expr {2 + 2}")
type Interp struct {
	host    *host.Host
	eng     *core.Interp
	foreign *foreignRegistry
}

// New creates a new TCL interpreter with all standard commands registered.
//
// There is no Close: the interpreter and its objects hold no resources
// beyond ordinary Go memory, and are reclaimed by the garbage collector.
//
//	interp := feather.New()
func New() *Interp {
	h := host.NewHost(hclog.NewNullLogger())
	return &Interp{
		host:    h,
		eng:     core.New(h),
		foreign: newForeignRegistry(),
	}
}

// -----------------------------------------------------------------------------
// Object Creation
// -----------------------------------------------------------------------------

// String creates a string object.
//
//	s := interp.String("hello world")
//	s.Type()   // "string"
//	s.String() // "hello world"
func (i *Interp) String(s string) *Obj {
	return newObj(i, i.eng.Ops().Intern(s))
}

// Int creates an integer object.
//
//	n := interp.Int(42)
//	n.Type()   // "int"
//	n.String() // "42"
func (i *Interp) Int(v int64) *Obj {
	return newObj(i, i.eng.Ops().NewInt(v))
}

// Float creates a floating-point object.
//
//	f := interp.Float(3.14)
//	f.Type()   // "double"
//	f.String() // "3.14"
func (i *Interp) Float(v float64) *Obj {
	return newObj(i, i.eng.Ops().NewDouble(v))
}

// Bool creates a boolean object, stored as int 1 (true) or 0 (false).
//
// TCL has no native boolean type; booleans are represented as integers.
//
//	b := interp.Bool(true)
//	b.Type()   // "int"
//	b.String() // "1"
func (i *Interp) Bool(v bool) *Obj {
	if v {
		return i.Int(1)
	}
	return i.Int(0)
}

// List creates a list object from the given items.
//
//	list := interp.List(interp.String("a"), interp.Int(1), interp.Bool(true))
//	list.Type()   // "list"
//	list.String() // "a 1 1"
func (i *Interp) List(items ...*Obj) *Obj {
	handles := make([]hostops.Handle, len(items))
	for j, o := range items {
		handles[j] = handleOf(i, o)
	}
	return newObj(i, i.eng.Ops().NewList(handles...))
}

// ListFrom creates a list object from a Go slice.
//
// Supported slice types:
//   - []string  - each element becomes a string object
//   - []int     - each element becomes an int object
//   - []int64   - each element becomes an int object
//   - []float64 - each element becomes a double object
//   - []any     - each element is auto-converted based on its type
//
// Example:
//
//	list := interp.ListFrom([]string{"a", "b", "c"})
//	list.String() // "a b c"
//
//	nums := interp.ListFrom([]int{1, 2, 3})
//	nums.String() // "1 2 3"
func (i *Interp) ListFrom(slice any) *Obj {
	var items []*Obj
	switch s := slice.(type) {
	case []string:
		items = make([]*Obj, len(s))
		for j, v := range s {
			items[j] = i.String(v)
		}
	case []int:
		items = make([]*Obj, len(s))
		for j, v := range s {
			items[j] = i.Int(int64(v))
		}
	case []int64:
		items = make([]*Obj, len(s))
		for j, v := range s {
			items[j] = i.Int(v)
		}
	case []float64:
		items = make([]*Obj, len(s))
		for j, v := range s {
			items[j] = i.Float(v)
		}
	case []any:
		items = make([]*Obj, len(s))
		for j, v := range s {
			items[j] = i.anyToObj(v)
		}
	}
	return i.List(items...)
}

// Dict creates an empty dict object.
//
//	dict := interp.Dict()
func (i *Interp) Dict() *Obj {
	return newObj(i, i.eng.Ops().NewDict())
}

// DictKV creates a dict object from alternating key-value pairs.
//
// Keys should be strings (non-strings are converted via fmt.Sprintf).
// Values are auto-converted based on their Go type.
//
//	dict := interp.DictKV("name", "Alice", "age", 30, "active", true)
//	dict.String() // "name Alice age 30 active 1"
func (i *Interp) DictKV(kvs ...any) *Obj {
	ops := i.eng.Ops()
	h := ops.NewDict()
	for j := 0; j+1 < len(kvs); j += 2 {
		key, ok := kvs[j].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvs[j])
		}
		h = ops.Set(h, ops.Intern(key), handleOf(i, i.anyToObj(kvs[j+1])))
	}
	return newObj(i, h)
}

// DictFrom creates a dict object from a Go map.
//
// Values are auto-converted based on their Go type.
// Note: Go maps have undefined iteration order, so dict key order may vary.
//
//	dict := interp.DictFrom(map[string]any{
//	    "name": "Alice",
//	    "age":  30,
//	})
func (i *Interp) DictFrom(m map[string]any) *Obj {
	ops := i.eng.Ops()
	h := ops.NewDict()
	for k, v := range m {
		h = ops.Set(h, ops.Intern(k), handleOf(i, i.anyToObj(v)))
	}
	return newObj(i, h)
}

// anyToObj converts any Go value to a *Obj. Used internally for
// auto-conversion in SetVar, DictKV, etc.
func (i *Interp) anyToObj(v any) *Obj {
	switch val := v.(type) {
	case string:
		return i.String(val)
	case int:
		return i.Int(int64(val))
	case int64:
		return i.Int(val)
	case float64:
		return i.Float(val)
	case bool:
		return i.Bool(val)
	case *Obj:
		return val
	default:
		return i.String(fmt.Sprintf("%v", v))
	}
}

// -----------------------------------------------------------------------------
// Script Evaluation
// -----------------------------------------------------------------------------

// EvalError reports a TCL-level error from [Interp.Eval] or [Interp.Call].
type EvalError struct {
	Message string
}

func (e *EvalError) Error() string { return e.Message }

// Eval evaluates a TCL script and returns the result.
//
// Multiple commands can be separated by semicolons or newlines.
// Returns an error if the script has a syntax error or a command fails.
//
//	result, err := interp.Eval("set x 10; expr {$x * 2}")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.String()) // "20"
func (i *Interp) Eval(script string) (*Obj, error) {
	res := i.eng.EvalScript(i.eng.Ops().Intern(script), false)
	if res.Code == hostops.Error {
		return nil, &EvalError{Message: i.eng.Ops().Bytes(i.eng.Ops().GetResult())}
	}
	return newObj(i, i.eng.Ops().GetResult()), nil
}

// Call invokes a single TCL command with the given arguments.
//
// Arguments are automatically converted from Go types to TCL values.
// This is a convenience wrapper around [Interp.Eval] for single command invocation.
//
//	result, err := interp.Call("expr", "2 + 2")
//	result, err := interp.Call("llength", myList)
//	result, err := interp.Call("myns::proc", arg1, arg2)
func (i *Interp) Call(cmd string, args ...any) (*Obj, error) {
	script := cmd
	for _, arg := range args {
		script += " " + toTclString(arg)
	}
	return i.Eval(script)
}

// -----------------------------------------------------------------------------
// Variables
// -----------------------------------------------------------------------------

// Var returns the value of a variable as a *Obj.
//
// Returns an empty string object if the variable does not exist.
//
//	interp.SetVar("x", 42)
//	v := interp.Var("x")
//	feather.AsInt(v)  // 42, nil
func (i *Interp) Var(name string) *Obj {
	h, ok := i.eng.GetVar(i.eng.Ops().Active(), name)
	if !ok {
		return i.String("")
	}
	return newObj(i, h)
}

// SetVar sets a variable to a value.
//
// The value is automatically converted from Go types to TCL:
//   - string, int, int64, float64, bool are converted directly
//   - []string becomes a TCL list
//   - *Obj is used as-is, preserving its type
//   - other types use fmt.Sprintf("%v", val)
//
//	interp.SetVar("name", "Alice")
//	interp.SetVar("count", 42)
//	interp.SetVar("items", []string{"a", "b", "c"})
func (i *Interp) SetVar(name string, val any) {
	i.eng.SetVar(i.eng.Ops().Active(), name, i.valueHandle(val))
}

// SetVars sets multiple variables at once from a map.
//
//	interp.SetVars(map[string]any{
//	    "x": 1,
//	    "y": 2,
//	    "name": "Alice",
//	})
func (i *Interp) SetVars(vars map[string]any) {
	for name, val := range vars {
		i.SetVar(name, val)
	}
}

// GetVars returns multiple variables as a map.
//
// Variables that don't exist will have empty string values in the result.
//
//	vars := interp.GetVars("x", "y", "z")
func (i *Interp) GetVars(names ...string) map[string]*Obj {
	result := make(map[string]*Obj, len(names))
	for _, name := range names {
		result[name] = i.Var(name)
	}
	return result
}

// valueHandle converts a Go value to a handle the way SetVar and friends
// auto-convert: lists get a real list handle instead of a joined string.
func (i *Interp) valueHandle(v any) hostops.Handle {
	if s, ok := v.([]string); ok {
		return handleOf(i, i.ListFrom(s))
	}
	return handleOf(i, i.anyToObj(v))
}

// -----------------------------------------------------------------------------
// Command Registration
// -----------------------------------------------------------------------------

// CommandFunc is the signature for custom commands registered with [Interp.RegisterCommand].
//
// The function receives:
//   - i: the interpreter (for creating objects, accessing variables, etc.)
//   - cmd: the command name as invoked
//   - args: the arguments passed to the command
//
// Return [OK] for success or [Error]/[Errorf] for failure.
type CommandFunc func(i *Interp, cmd *Obj, args []*Obj) Result

// RegisterCommand adds a command using the low-level CommandFunc interface.
//
// Use this when you need full control over argument handling, access to the
// interpreter, or custom error messages. For simpler cases, use [Interp.Register].
//
//	interp.RegisterCommand("sum", func(i *feather.Interp, cmd *feather.Obj, args []*feather.Obj) feather.Result {
//	    if len(args) < 2 {
//	        return feather.Errorf("wrong # args: should be \"%s a b\"", cmd.String())
//	    }
//	    a, err := feather.AsInt(args[0])
//	    if err != nil {
//	        return feather.Error(err.Error())
//	    }
//	    b, err := feather.AsInt(args[1])
//	    if err != nil {
//	        return feather.Error(err.Error())
//	    }
//	    return feather.OK(a + b)
//	})
func (i *Interp) RegisterCommand(name string, fn CommandFunc) {
	i.eng.Ops().RegisterBuiltin("::", name, i.bridge(fn))
}

// Register adds a command with automatic argument conversion.
//
// The function's signature determines how arguments are converted:
//   - string parameters receive the string representation
//   - int/int64 parameters parse the argument as an integer
//   - float64 parameters parse as a floating-point number
//   - bool parameters use TCL boolean rules
//   - []string parameters parse a single argument as a TCL list
//   - Variadic parameters (...string, ...int) consume remaining arguments
//
// Return types are also auto-converted:
//   - string, int, int64, float64, bool become the command result
//   - error causes the command to fail with the error message
//   - (T, error) returns T on success or fails on error
//
// Examples:
//
//	// Simple function
//	interp.Register("greet", func(name string) string {
//	    return "Hello, " + name
//	})
//
//	// With error handling
//	interp.Register("divide", func(a, b int) (int, error) {
//	    if b == 0 {
//	        return 0, errors.New("division by zero")
//	    }
//	    return a / b, nil
//	})
//
//	// Variadic
//	interp.Register("join", func(sep string, parts ...string) string {
//	    return strings.Join(parts, sep)
//	})
func (i *Interp) Register(name string, fn any) {
	i.eng.Ops().RegisterBuiltin("::", name, wrapFunc(fn))
}

// SetUnknownHandler sets a handler called when a command is not found.
//
// The handler receives the unknown command name and its arguments. It can:
//   - Implement the command dynamically
//   - Delegate to another system
//   - Return an error for truly unknown commands
//
//	interp.SetUnknownHandler(func(i *feather.Interp, cmd *feather.Obj, args []*feather.Obj) feather.Result {
//	    return feather.Errorf("unknown command: %s", cmd.String())
//	})
func (i *Interp) SetUnknownHandler(fn CommandFunc) {
	i.eng.Ops().SetUnknownHandler(i.bridge(fn))
}

// SetMaxDepth overrides the proc call recursion limit, default 1000.
// A script that recurses past this depth fails with ERROR instead of
// growing the call stack without bound.
//
//	interp.SetMaxDepth(200)
func (i *Interp) SetMaxDepth(n int) {
	i.eng.SetMaxDepth(n)
}

// bridge adapts a [CommandFunc] to a [hostops.BuiltinFunc], translating
// handles to *Obj on the way in and [Result] to a stored result handle
// on the way out.
func (i *Interp) bridge(fn CommandFunc) hostops.BuiltinFunc {
	return func(e hostops.Engine, cmd hostops.Handle, args []hostops.Handle) hostops.Result {
		ops := e.Ops()
		objArgs := make([]*Obj, len(args))
		for j, h := range args {
			objArgs[j] = newObj(i, h)
		}
		r := fn(i, newObj(i, cmd), objArgs)
		if r.obj != nil {
			ops.SetResult(r.obj.h)
		} else {
			ops.SetResult(ops.Intern(r.str))
		}
		return hostops.Result{Code: r.code}
	}
}

// -----------------------------------------------------------------------------
// Parsing
// -----------------------------------------------------------------------------

// Parse checks if a script is syntactically complete.
//
// This is useful for implementing REPLs that need to detect incomplete input
// (unclosed braces, brackets, or quotes).
//
//	pr := interp.Parse("set x {")
//	if pr.Status == feather.ParseIncomplete {
//	    // Prompt for more input
//	}
func (i *Interp) Parse(script string) ParseResult {
	complete, msg := core.CheckComplete(script)
	if !complete {
		return ParseResult{Status: ParseIncomplete, Message: msg}
	}
	if msg != "" {
		return ParseResult{Status: ParseError, Message: msg}
	}
	return ParseResult{Status: ParseOK}
}

// ParseList parses a string into a list.
//
// Use this when you have a string that needs to be parsed as a TCL list.
// For objects that are already lists, use [AsList] instead.
//
//	items, err := interp.ParseList("{a b} c d")
//	// items = []*Obj{"a b", "c", "d"}
func (i *Interp) ParseList(s string) ([]*Obj, error) {
	return AsList(i.String(s))
}

// ParseDict parses a string into a dict.
//
// Use this when you have a string that needs to be parsed as a TCL dict.
// For objects that are already dicts, use [AsDict] instead.
//
//	d, err := interp.ParseDict("name Alice age 30")
//	// d.Items["name"].String() == "Alice"
func (i *Interp) ParseDict(s string) (*DictType, error) {
	return AsDict(i.String(s))
}

// -----------------------------------------------------------------------------
// Command Results
// -----------------------------------------------------------------------------

// Result represents the result of a command execution.
//
// Create results using [OK], [Error], or [Errorf].
type Result struct {
	code hostops.ResultCode
	obj  *Obj   // set when the result preserves an existing *Obj's type
	str  string // used when obj is nil
}

// OK returns a successful result with a value.
//
// The value is converted to its TCL string representation. Pass a
// [*Obj] directly to preserve its internal type (int, list, dict, etc.).
// The *Obj must belong to the same [*Interp] handling the command.
//
//	return feather.OK("success")
//	return feather.OK(42)
//	return feather.OK([]string{"a", "b"})
//	return feather.OK(myObj)  // preserves *Obj type
func OK(v any) Result {
	if o, ok := v.(*Obj); ok {
		return Result{code: hostops.OK, obj: o}
	}
	return Result{code: hostops.OK, str: resultString(v)}
}

// Error returns an error result with a message or *Obj.
//
// Pass a string for simple error messages, or a [*Obj] for structured errors.
//
//	return feather.Error("something went wrong")
//	return feather.Error(errDict)  // structured error
func Error(v any) Result {
	if o, ok := v.(*Obj); ok {
		return Result{code: hostops.Error, obj: o}
	}
	if s, ok := v.(string); ok {
		return Result{code: hostops.Error, str: s}
	}
	return Result{code: hostops.Error, str: resultString(v)}
}

// Errorf returns a formatted error result.
//
//	return feather.Errorf("expected %d args, got %d", want, got)
func Errorf(format string, args ...any) Result {
	return Result{code: hostops.Error, str: fmt.Sprintf(format, args...)}
}

// -----------------------------------------------------------------------------
// Parse Status
// -----------------------------------------------------------------------------

// ParseStatus indicates the result of parsing a script.
type ParseStatus int

const (
	// ParseOK indicates the script is syntactically complete and valid.
	ParseOK ParseStatus = iota

	// ParseIncomplete indicates the script has unclosed braces, brackets, or quotes.
	ParseIncomplete

	// ParseError indicates a syntax error in the script.
	ParseError
)

// ParseResult holds the result of parsing a script.
type ParseResult struct {
	// Status indicates whether parsing succeeded, found incomplete input, or failed.
	Status ParseStatus

	// Message contains an error message if Status is ParseError.
	Message string
}

// -----------------------------------------------------------------------------
// Foreign Types
// -----------------------------------------------------------------------------

// TypeDef defines a foreign type that can be exposed to TCL.
//
// Foreign types allow Go structs to be used as TCL objects with methods.
// See [RegisterType] for usage.
type TypeDef[T any] struct {
	// New is the constructor function, called when "TypeName new" is evaluated.
	// Required.
	New func() T

	// Methods maps method names to Go functions.
	// Each function's first parameter must be the receiver type T.
	// Additional parameters and return values are auto-converted.
	Methods map[string]any

	// String optionally provides a custom string representation.
	// If nil, the instance's generated handle name is used.
	String func(T) string

	// Destroy is called when the object is explicitly destroyed with
	// "$handle destroy"; it is not called on garbage collection.
	// Use for cleanup (closing files, connections, etc.).
	Destroy func(T)
}

// RegisterType registers a foreign type with the interpreter.
//
// After registration, the type name becomes a command that supports "new"
// to create instances. Instances can then call methods using $obj method args.
//
// Example:
//
//	type Counter struct {
//	    value int
//	}
//
//	feather.RegisterType[*Counter](interp, "Counter", feather.TypeDef[*Counter]{
//	    New: func() *Counter { return &Counter{} },
//	    Methods: map[string]any{
//	        "get":  func(c *Counter) int { return c.value },
//	        "set":  func(c *Counter, v int) { c.value = v },
//	        "incr": func(c *Counter) int { c.value++; return c.value },
//	    },
//	})
//
//	// In TCL:
//	// set c [Counter new]
//	// $c set 10
//	// $c incr  ;# returns 11
func RegisterType[T any](i *Interp, name string, def TypeDef[T]) error {
	return DefineType[T](i, name, ForeignTypeDef[T]{
		New:       def.New,
		Methods:   Methods(def.Methods),
		StringRep: def.String,
		Destroy:   def.Destroy,
	})
}
