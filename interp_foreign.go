package feather

import (
	"fmt"
	"reflect"
	"strconv"
	"sync"

	"github.com/featherscript/feather/internal/core/hostops"
)

// Methods is a map of method name to method implementation.
// Method functions should have the signature:
//
//	func(receiver T, args...) [result] [error]
//
// Where T is the foreign type being wrapped.
type Methods map[string]any

// ForeignTypeDef defines a foreign type that can be exposed to TCL.
// Use [DefineType] to register a type with the interpreter.
type ForeignTypeDef[T any] struct {
	// New is the constructor function. Called when "TypeName new" is
	// evaluated. Should return a new instance of T.
	New func() T

	// Methods maps method names to implementations. Each method should
	// be a function where the first argument is the receiver (T).
	Methods Methods

	// StringRep optionally provides a custom string representation. If
	// nil, the instance's generated handle name is used.
	StringRep func(T) string

	// Destroy is called when the object is destroyed via "$handle destroy".
	// Use for cleanup (close connections, release resources).
	Destroy func(T)
}

// foreignTypeInfo stores runtime information about a registered foreign type.
type foreignTypeInfo struct {
	name      string
	methods   map[string]reflect.Value
	stringRep func(any) string
	destroy   func(any)
}

// foreignInstance is one live value created by "TypeName new".
type foreignInstance struct {
	typeName string
	value    reflect.Value
}

// foreignRegistry tracks registered foreign types and their live
// instances. Each instance is also registered as a command on the
// interpreter under its generated handle name (object-as-command), the
// same pattern TclOO objects and the teacher's cgo foreign handles use.
type foreignRegistry struct {
	mu        sync.Mutex
	types     map[string]*foreignTypeInfo
	instances map[string]*foreignInstance
	counters  map[string]int
}

func newForeignRegistry() *foreignRegistry {
	return &foreignRegistry{
		types:     make(map[string]*foreignTypeInfo),
		instances: make(map[string]*foreignInstance),
		counters:  make(map[string]int),
	}
}

// DefineType registers typeName as a constructor command on in.
// Evaluating "typeName new" creates a T via def.New, stores it under a
// generated handle name such as "Counter1", and registers that name as
// a command so "$handle method ?arg ...?" dispatches to def.Methods.
func DefineType[T any](in *Interp, typeName string, def ForeignTypeDef[T]) error {
	methods := make(map[string]reflect.Value, len(def.Methods))
	for name, fn := range def.Methods {
		fv := reflect.ValueOf(fn)
		if fv.Kind() != reflect.Func {
			return fmt.Errorf("feather: method %q for type %q is not a function", name, typeName)
		}
		methods[name] = fv
	}

	var stringRep func(any) string
	if def.StringRep != nil {
		stringRep = func(v any) string { return def.StringRep(v.(T)) }
	}
	var destroy func(any)
	if def.Destroy != nil {
		destroy = func(v any) { def.Destroy(v.(T)) }
	}

	info := &foreignTypeInfo{name: typeName, methods: methods, stringRep: stringRep, destroy: destroy}

	in.foreign.mu.Lock()
	in.foreign.types[typeName] = info
	in.foreign.mu.Unlock()

	in.eng.Ops().RegisterBuiltin("::", typeName, func(e hostops.Engine, cmd hostops.Handle, args []hostops.Handle) hostops.Result {
		ops := e.Ops()
		if len(args) < 1 || ops.Bytes(args[0]) != "new" {
			return setErrorResult(ops, fmt.Sprintf("wrong # args: should be \"%s new\"", typeName))
		}
		instance := def.New()
		h := createForeignInstance(in, ops, info, instance)
		ops.SetResult(h)
		return hostops.Result{Code: hostops.OK}
	})
	return nil
}

// createForeignInstance allocates a handle name for value, records it in
// the registry, and registers that name as a dispatching command.
func createForeignInstance[T any](in *Interp, ops hostops.Ops, info *foreignTypeInfo, value T) hostops.Handle {
	reg := in.foreign
	reg.mu.Lock()
	reg.counters[info.name]++
	name := info.name + strconv.Itoa(reg.counters[info.name])
	reg.instances[name] = &foreignInstance{typeName: info.name, value: reflect.ValueOf(value)}
	reg.mu.Unlock()

	ops.RegisterBuiltin("::", name, func(e hostops.Engine, cmd hostops.Handle, args []hostops.Handle) hostops.Result {
		return dispatchForeignMethod(in, e.Ops(), name, args)
	})
	return ops.Intern(name)
}

// dispatchForeignMethod handles "$handle method ?arg ...?" for a
// previously created foreign instance, including the built-in "destroy".
func dispatchForeignMethod(in *Interp, ops hostops.Ops, instanceName string, args []hostops.Handle) hostops.Result {
	reg := in.foreign
	reg.mu.Lock()
	inst, ok := reg.instances[instanceName]
	reg.mu.Unlock()
	if !ok {
		return setErrorResult(ops, fmt.Sprintf("invalid foreign handle %q", instanceName))
	}
	if len(args) < 1 {
		return setErrorResult(ops, fmt.Sprintf("wrong # args: should be \"%s method ?arg ...?\"", instanceName))
	}

	method := ops.Bytes(args[0])
	methodArgs := args[1:]

	reg.mu.Lock()
	typeInfo := reg.types[inst.typeName]
	reg.mu.Unlock()

	if method == "destroy" {
		reg.mu.Lock()
		delete(reg.instances, instanceName)
		reg.mu.Unlock()
		ops.DeleteCommand("::", instanceName)
		if typeInfo.destroy != nil {
			typeInfo.destroy(inst.value.Interface())
		}
		ops.SetResult(ops.Intern(""))
		return hostops.Result{Code: hostops.OK}
	}

	fn, ok := typeInfo.methods[method]
	if !ok {
		return setErrorResult(ops, fmt.Sprintf("unknown method %q for type %q", method, inst.typeName))
	}
	return callForeignMethod(ops, fn, inst.value, methodArgs)
}

// callForeignMethod invokes fn with receiver bound as its first
// argument, converting the remaining TCL args by reflection exactly as
// [wrapFunc] does for top-level registered commands.
func callForeignMethod(ops hostops.Ops, fn reflect.Value, receiver reflect.Value, args []hostops.Handle) hostops.Result {
	fnType := fn.Type()
	numIn := fnType.NumIn()
	wantArgs := numIn - 1
	isVariadic := fnType.IsVariadic()

	if isVariadic {
		if len(args) < wantArgs-1 {
			return setErrorResult(ops, fmt.Sprintf("wrong # args: expected at least %d, got %d", wantArgs-1, len(args)))
		}
	} else if len(args) != wantArgs {
		return setErrorResult(ops, fmt.Sprintf("wrong # args: expected %d, got %d", wantArgs, len(args)))
	}

	callArgs := make([]reflect.Value, 0, len(args)+1)
	callArgs = append(callArgs, receiver)
	for j := 0; j < len(args); j++ {
		idx := j + 1
		var paramType reflect.Type
		if isVariadic && idx >= numIn-1 {
			paramType = fnType.In(numIn - 1).Elem()
		} else {
			paramType = fnType.In(idx)
		}
		converted, err := convertArg(ops, args[j], paramType)
		if err != nil {
			return setErrorResult(ops, fmt.Sprintf("argument %d: %v", j+1, err))
		}
		callArgs = append(callArgs, converted)
	}

	results := fn.Call(callArgs)
	return processResults(ops, results, fnType)
}

// foreignTypeName reports the registered type name of h if it currently
// names a live foreign instance.
func (in *Interp) foreignTypeName(h hostops.Handle) (string, bool) {
	name := in.eng.Ops().Bytes(h)
	in.foreign.mu.Lock()
	inst, ok := in.foreign.instances[name]
	in.foreign.mu.Unlock()
	if !ok {
		return "", false
	}
	return inst.typeName, true
}

// foreignStringRep returns the custom string representation for h if its
// type registered one via [ForeignTypeDef.StringRep].
func (in *Interp) foreignStringRep(h hostops.Handle) (string, bool) {
	name := in.eng.Ops().Bytes(h)
	in.foreign.mu.Lock()
	inst, ok := in.foreign.instances[name]
	var info *foreignTypeInfo
	if ok {
		info = in.foreign.types[inst.typeName]
	}
	in.foreign.mu.Unlock()
	if !ok || info == nil || info.stringRep == nil {
		return "", false
	}
	return info.stringRep(inst.value.Interface()), true
}
