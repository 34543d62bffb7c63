package core

import (
	"strings"

	"github.com/featherscript/feather/internal/core/hostops"
)

func containsNS(name string) bool { return strings.Contains(name, "::") }

// parentNSOf and simpleNameOf split a "::"-qualified name into its
// namespace path and trailing simple name. "::a::b::c" -> ("::a::b", "c").
func parentNSOf(name string) string {
	idx := strings.LastIndex(name, "::")
	if idx <= 0 {
		if strings.HasPrefix(name, "::") {
			return "::"
		}
		return ""
	}
	return name[:idx]
}

func simpleNameOf(name string) string {
	idx := strings.LastIndex(name, "::")
	if idx < 0 {
		return name
	}
	return name[idx+2:]
}

// getVar resolves a variable name for a read, firing read traces on the
// link-resolved target, per spec.md section 4.F and 4.I.
func (in *Interp) getVar(level int, name string) (hostops.Handle, bool) {
	if containsNS(name) {
		ns := in.ops.Resolve(in.ops.GetNamespace(level), parentNSOf(name))
		simple := simpleNameOf(name)
		v, ok := in.ops.NSGetVar(ns, simple)
		if ok {
			in.fireVarTrace(nsQualKey(ns, simple), name, "read")
		}
		return v, ok
	}
	v, ok := in.ops.GetVar(level, name)
	if ok {
		in.fireVarTrace(in.linkResolvedKey(level, name), name, "read")
	}
	return v, ok
}

// setVar resolves a variable name for a write, firing write traces.
func (in *Interp) setVar(level int, name string, val hostops.Handle) {
	if containsNS(name) {
		ns := in.ops.Resolve(in.ops.GetNamespace(level), parentNSOf(name))
		simple := simpleNameOf(name)
		in.ops.NSSetVar(ns, simple, val)
		in.fireVarTrace(nsQualKey(ns, simple), name, "write")
		return
	}
	in.ops.SetVar(level, name, val)
	in.fireVarTrace(in.linkResolvedKey(level, name), name, "write")
}

// unsetVar resolves a variable name for an unset. Per spec.md section
// 4.F, unsetting a link removes the link itself, not its target; the
// trace key still uses the link-resolved target identity.
func (in *Interp) unsetVar(level int, name string) bool {
	if containsNS(name) {
		ns := in.ops.Resolve(in.ops.GetNamespace(level), parentNSOf(name))
		simple := simpleNameOf(name)
		key := nsQualKey(ns, simple)
		ok := in.ops.NSUnsetVar(ns, simple)
		if ok {
			in.fireVarTraceSuppressed(key, name, "unset")
		}
		return ok
	}
	key := in.linkResolvedKey(level, name)
	ok := in.ops.UnsetVar(level, name)
	if ok {
		in.fireVarTraceSuppressed(key, name, "unset")
	}
	return ok
}

func (in *Interp) varExists(level int, name string) bool {
	if containsNS(name) {
		ns := in.ops.Resolve(in.ops.GetNamespace(level), parentNSOf(name))
		return in.ops.NSVarExists(ns, simpleNameOf(name))
	}
	return in.ops.VarExists(level, name)
}

// linkResolvedKey returns the trace-registration key for a local name in
// level: the namespace-qualified target if it resolves through a
// namespace link, "level:name" for a frame-local link or a plain local,
// matching the "link-resolved target is used to find registered traces"
// rule in spec.md section 4.I.
func (in *Interp) linkResolvedKey(level int, name string) string {
	targetLevel, targetNS, targetName, isNS, ok := in.ops.ResolveLink(level, name)
	if !ok {
		return frameKey(level, name)
	}
	if isNS {
		return nsQualKey(targetNS, targetName)
	}
	return frameKey(targetLevel, targetName)
}

func frameKey(level int, name string) string {
	return "f:" + itoa(level) + ":" + name
}

func nsQualKey(ns, name string) string {
	return "n:" + ns + "::" + name
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	p := len(buf)
	for i > 0 {
		p--
		buf[p] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		p--
		buf[p] = '-'
	}
	return string(buf[p:])
}
