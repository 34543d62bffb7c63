package host

import (
	"sort"

	"github.com/featherscript/feather/internal/core/hostops"
)

// commandEntry is one command table entry: a builtin function pointer or
// a proc's formal-parameter list and body.
type commandEntry struct {
	kind   hostops.CommandKind
	fn     hostops.BuiltinFunc
	params []hostops.ParamSpec
	body   hostops.Handle
}

func (h *Host) RegisterBuiltin(namespace string, name string, fn hostops.BuiltinFunc) {
	n := h.ns(namespace)
	if n == nil {
		h.Create(namespace)
		n = h.ns(namespace)
	}
	n.commands[name] = &commandEntry{kind: hostops.CommandBuiltin, fn: fn}
}

func (h *Host) DefineProc(namespace string, name string, params []hostops.ParamSpec, body hostops.Handle) {
	n := h.ns(namespace)
	if n == nil {
		h.Create(namespace)
		n = h.ns(namespace)
	}
	n.commands[name] = &commandEntry{kind: hostops.CommandProc, params: params, body: body}
}

// Lookup implements the unqualified resolution order from spec.md section
// 4.E: the given namespace's table, then the global namespace's table.
func (h *Host) Lookup(namespace string, name string) (hostops.CommandKind, hostops.BuiltinFunc, []hostops.ParamSpec, hostops.Handle, string, bool) {
	if n := h.ns(namespace); n != nil {
		if e, ok := n.commands[name]; ok {
			return e.kind, e.fn, e.params, e.body, namespace, true
		}
	}
	if namespace != globalPath {
		if n := h.ns(globalPath); n != nil {
			if e, ok := n.commands[name]; ok {
				return e.kind, e.fn, e.params, e.body, globalPath, true
			}
		}
	}
	return hostops.CommandNone, nil, nil, 0, "", false
}

func (h *Host) LookupQualified(absoluteNamespace string, name string) (hostops.CommandKind, hostops.BuiltinFunc, []hostops.ParamSpec, hostops.Handle, bool) {
	n := h.ns(absoluteNamespace)
	if n == nil {
		return hostops.CommandNone, nil, nil, 0, false
	}
	e, ok := n.commands[name]
	if !ok {
		return hostops.CommandNone, nil, nil, 0, false
	}
	return e.kind, e.fn, e.params, e.body, true
}

func (h *Host) Rename(namespace string, oldName string, newNamespace string, newName string) bool {
	n := h.ns(namespace)
	if n == nil {
		return false
	}
	e, ok := n.commands[oldName]
	if !ok {
		return false
	}
	delete(n.commands, oldName)
	if newName == "" {
		return true
	}
	dst := h.ns(newNamespace)
	if dst == nil {
		h.Create(newNamespace)
		dst = h.ns(newNamespace)
	}
	dst.commands[newName] = e
	return true
}

func (h *Host) DeleteCommand(namespace string, name string) bool {
	n := h.ns(namespace)
	if n == nil {
		return false
	}
	if _, ok := n.commands[name]; !ok {
		return false
	}
	delete(n.commands, name)
	return true
}

func (h *Host) CommandNames(namespace string) []string {
	n := h.ns(namespace)
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.commands))
	for k := range n.commands {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
