package core

import "github.com/featherscript/feather/internal/core/hostops"

// Truthy reports whether h is true under TCL boolean rules: numeric
// non-zero, or one of the boolean barewords (true/false/yes/no/on/off),
// case-insensitively. Exported for the public feather package's Obj.Bool
// and AsBool, which have no other way to reach expr's truthiness table.
func (in *Interp) Truthy(h hostops.Handle) bool {
	return in.truthy(h)
}

// IsBoolean reports whether h can be interpreted as a TCL boolean: a
// number, or one of the case-insensitive barewords true/false/yes/no/
// on/off. [Truthy] is meaningless on a handle this rejects.
func (in *Interp) IsBoolean(h hostops.Handle) bool {
	if _, ok := in.ops.Int(h); ok {
		return true
	}
	if _, ok := in.ops.Double(h); ok {
		return true
	}
	_, ok := boolLiteral(in.ops.Bytes(h))
	return ok
}

// GetVar resolves name for a read in frame level, following "::"
// qualification and link tables the way script-level variable reads do,
// and firing any registered read traces.
func (in *Interp) GetVar(level int, name string) (hostops.Handle, bool) {
	return in.getVar(level, name)
}

// SetVar resolves name for a write in frame level, following "::"
// qualification and link tables, and firing any registered write traces.
func (in *Interp) SetVar(level int, name string, val hostops.Handle) {
	in.setVar(level, name, val)
}

// VarExists reports whether name is currently set in frame level, with
// the same namespace/link resolution as GetVar.
func (in *Interp) VarExists(level int, name string) bool {
	return in.varExists(level, name)
}
