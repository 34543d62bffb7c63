package host

import (
	"sort"
	"strings"

	"github.com/featherscript/feather/internal/core/hostops"
)

const globalPath = "::"

// namespace is one node in the command/variable hierarchy. Namespaces are
// stored flat, keyed by their absolute path, with an explicit child-name
// set for cascading deletes; this avoids back-pointers per the "no
// pointer-graph cycles" guidance in spec.md section 9.
type namespace struct {
	path     string
	vars     map[string]hostops.Handle
	commands map[string]*commandEntry
	exports  []string
	children map[string]bool
}

func newNamespace(path string) *namespace {
	return &namespace{
		path:     path,
		vars:     map[string]hostops.Handle{},
		commands: map[string]*commandEntry{},
		children: map[string]bool{},
	}
}

func (h *Host) ns(path string) *namespace {
	return h.namespaces[path]
}

func simpleName(path string) string {
	if path == globalPath {
		return ""
	}
	idx := strings.LastIndex(path, "::")
	return path[idx+2:]
}

func parentPath(path string) string {
	if path == globalPath || path == "" {
		return ""
	}
	idx := strings.LastIndex(path, "::")
	if idx <= 0 {
		return globalPath
	}
	return path[:idx]
}

func joinNS(cur, path string) string {
	if path == "" {
		return cur
	}
	if strings.HasPrefix(path, "::") {
		if path == "::" {
			return "::"
		}
		return strings.TrimSuffix(path, "::")
	}
	if cur == globalPath {
		return "::" + strings.TrimSuffix(path, "::")
	}
	return cur + "::" + strings.TrimSuffix(path, "::")
}

func (h *Host) Resolve(cur string, path string) string {
	return joinNS(cur, path)
}

// Create ensures path (and every ancestor) exists, returning the absolute
// path created or already present.
func (h *Host) Create(path string) string {
	abs := path
	if !strings.HasPrefix(abs, "::") {
		abs = joinNS(globalPath, abs)
	}
	if abs == "" {
		abs = globalPath
	}
	if h.ns(abs) != nil {
		return abs
	}
	// Walk from the root, creating every missing ancestor.
	segs := strings.Split(strings.TrimPrefix(abs, "::"), "::")
	cur := globalPath
	for _, seg := range segs {
		if seg == "" {
			continue
		}
		child := cur
		if cur == globalPath {
			child = "::" + seg
		} else {
			child = cur + "::" + seg
		}
		if h.ns(child) == nil {
			h.namespaces[child] = newNamespace(child)
			h.namespaces[cur].children[seg] = true
		}
		cur = child
	}
	return cur
}

func (h *Host) Delete(path string) bool {
	if path == globalPath {
		return false
	}
	n := h.ns(path)
	if n == nil {
		return false
	}
	for child := range n.children {
		h.Delete(joinNS(path, child))
	}
	delete(h.namespaces, path)
	if p := h.ns(parentPath(path)); p != nil {
		delete(p.children, simpleName(path))
	}
	return true
}

func (h *Host) Exists(path string) bool {
	return h.ns(path) != nil
}

func (h *Host) Current(level int) string {
	f := h.frameAt(level)
	if f == nil {
		return globalPath
	}
	return f.nsPath
}

func (h *Host) Parent(path string) (string, bool) {
	if path == globalPath {
		return "", false
	}
	return parentPath(path), true
}

func (h *Host) Children(path string) []string {
	n := h.ns(path)
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.children))
	for c := range n.children {
		out = append(out, joinNS(path, c))
	}
	sort.Strings(out)
	return out
}

func (h *Host) NSGetVar(namespace string, name string) (hostops.Handle, bool) {
	n := h.ns(namespace)
	if n == nil {
		return 0, false
	}
	v, ok := n.vars[name]
	return v, ok
}

func (h *Host) NSSetVar(namespace string, name string, val hostops.Handle) {
	n := h.ns(namespace)
	if n == nil {
		n = newNamespace(namespace)
		h.namespaces[namespace] = n
	}
	n.vars[name] = val
}

func (h *Host) NSVarExists(namespace string, name string) bool {
	n := h.ns(namespace)
	if n == nil {
		return false
	}
	_, ok := n.vars[name]
	return ok
}

func (h *Host) NSUnsetVar(namespace string, name string) bool {
	n := h.ns(namespace)
	if n == nil {
		return false
	}
	if _, ok := n.vars[name]; !ok {
		return false
	}
	delete(n.vars, name)
	return true
}

func (h *Host) NSVarNames(namespace string) []string {
	n := h.ns(namespace)
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.vars))
	for k := range n.vars {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (h *Host) SetExports(namespace string, patterns []string) {
	n := h.ns(namespace)
	if n == nil {
		return
	}
	n.exports = append(n.exports, patterns...)
}

func (h *Host) Exports(namespace string) []string {
	n := h.ns(namespace)
	if n == nil {
		return nil
	}
	return append([]string(nil), n.exports...)
}

func (h *Host) IsExported(namespace string, name string) bool {
	n := h.ns(namespace)
	if n == nil {
		return false
	}
	for _, pat := range n.exports {
		if globMatch(pat, name) {
			return true
		}
	}
	return false
}

func (h *Host) CopyCommand(srcNamespace, dstNamespace, name string) bool {
	src := h.ns(srcNamespace)
	dst := h.ns(dstNamespace)
	if src == nil || dst == nil {
		return false
	}
	entry, ok := src.commands[name]
	if !ok {
		return false
	}
	dst.commands[name] = entry
	return true
}
