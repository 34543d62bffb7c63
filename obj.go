package feather

import "github.com/featherscript/feather/internal/core/hostops"

// Obj is a Feather value: a handle into the interpreter that created it,
// together with TCL's string/typed shimmering semantics. An *Obj is only
// valid for the lifetime of, and use with, the [*Interp] that created it.
type Obj struct {
	h  hostops.Handle
	in *Interp
}

// newObj wraps h for in. Returns nil for the Nil handle, so a failed
// lookup can flow straight into a nil *Obj the way a missing variable
// does from [Interp.Var].
func newObj(in *Interp, h hostops.Handle) *Obj {
	if h == hostops.Nil {
		return nil
	}
	return &Obj{h: h, in: in}
}

// handleOf returns the handle o wraps, interning an empty string in in's
// interpreter if o is nil.
func handleOf(in *Interp, o *Obj) hostops.Handle {
	if o == nil {
		return in.eng.Ops().Intern("")
	}
	return o.h
}

// String returns the string representation of the object. Always
// succeeds; a nil object yields "".
func (o *Obj) String() string {
	if o == nil {
		return ""
	}
	if s, ok := o.in.foreignStringRep(o.h); ok {
		return s
	}
	return o.in.eng.Ops().Bytes(o.h)
}

// Type returns the object's native type: "string", "int", "double",
// "list", "dict", or a foreign type name registered via [RegisterType].
func (o *Obj) Type() string {
	if o == nil {
		return "string"
	}
	ops := o.in.eng.Ops()
	if name, ok := o.in.foreignTypeName(o.h); ok {
		return name
	}
	if _, ok := ops.Int(o.h); ok {
		return "int"
	}
	if _, ok := ops.Double(o.h); ok {
		return "double"
	}
	if ops.IsDict(o.h) {
		return "dict"
	}
	if ops.IsList(o.h) {
		return "list"
	}
	return "string"
}

// Int returns the integer value of this object, shimmering if needed.
func (o *Obj) Int() (int64, error) {
	return AsInt(o)
}

// Double returns the float64 value of this object, shimmering if needed.
func (o *Obj) Double() (float64, error) {
	return AsDouble(o)
}

// Bool returns the boolean value of this object using TCL boolean rules.
func (o *Obj) Bool() (bool, error) {
	return AsBool(o)
}

// List returns the list elements of this object, parsing the string
// representation as a TCL list if it is not already one.
func (o *Obj) List() ([]*Obj, error) {
	return AsList(o)
}

// Dict returns the dict representation of this object, parsing the
// string representation as a TCL dict if it is not already one.
func (o *Obj) Dict() (*DictType, error) {
	return AsDict(o)
}

// DictType is the value returned by [Obj.Dict] and [AsDict]: an ordered
// key/value view over a dict object's entries.
type DictType struct {
	Items map[string]*Obj
	Order []string
}
