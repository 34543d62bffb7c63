package host

import "github.com/featherscript/feather/internal/core/hostops"

// linkTarget is one entry in a frame's link table: a local alias that
// resolves through another frame's local cell or a namespace-owned cell,
// installed by upvar or by the variable builtin.
type linkTarget struct {
	isNamespace bool
	level       int
	namespace   string
	name        string
}

// frame is a call-stack record: the invoking command and its arguments,
// a local variable table, a link table, and the namespace code in this
// frame executes against.
type frame struct {
	cmd    hostops.Handle
	args   []hostops.Handle
	vars   map[string]hostops.Handle
	links  map[string]linkTarget
	nsPath string
}

func newFrame(cmd hostops.Handle, args []hostops.Handle, ns string) *frame {
	return &frame{
		cmd:    cmd,
		args:   args,
		vars:   map[string]hostops.Handle{},
		links:  map[string]linkTarget{},
		nsPath: ns,
	}
}

func (h *Host) frameAt(level int) *frame {
	if level < 0 || level >= len(h.frames) {
		return nil
	}
	return h.frames[level]
}

func (h *Host) PushFrame(cmd hostops.Handle, args []hostops.Handle, namespace string) int {
	h.frames = append(h.frames, newFrame(cmd, args, namespace))
	idx := len(h.frames) - 1
	h.active = idx
	return idx
}

func (h *Host) PopFrame() {
	if len(h.frames) <= 1 {
		return
	}
	h.frames = h.frames[:len(h.frames)-1]
	if h.active >= len(h.frames) {
		h.active = len(h.frames) - 1
	}
}

func (h *Host) Level() int { return len(h.frames) - 1 }
func (h *Host) Size() int  { return len(h.frames) }
func (h *Host) Active() int {
	return h.active
}

func (h *Host) SetActive(level int) {
	if level >= 0 && level < len(h.frames) {
		h.active = level
	}
}

func (h *Host) Info(level int) (hostops.FrameInfo, bool) {
	f := h.frameAt(level)
	if f == nil {
		return hostops.FrameInfo{}, false
	}
	return hostops.FrameInfo{Cmd: f.cmd, Args: append([]hostops.Handle(nil), f.args...), Namespace: f.nsPath}, true
}

func (h *Host) SetNamespace(level int, namespace string) {
	if f := h.frameAt(level); f != nil {
		f.nsPath = namespace
	}
}

func (h *Host) GetNamespace(level int) string {
	if f := h.frameAt(level); f != nil {
		return f.nsPath
	}
	return globalPath
}

// --- Variables -------------------------------------------------------------

const maxLinkChase = 64

func (h *Host) GetVar(level int, name string) (hostops.Handle, bool) {
	f := h.frameAt(level)
	if f == nil {
		return 0, false
	}
	for i := 0; i < maxLinkChase; i++ {
		lt, isLink := f.links[name]
		if !isLink {
			v, ok := f.vars[name]
			return v, ok
		}
		if lt.isNamespace {
			return h.NSGetVar(lt.namespace, lt.name)
		}
		f = h.frameAt(lt.level)
		name = lt.name
		if f == nil {
			return 0, false
		}
	}
	return 0, false
}

func (h *Host) SetVar(level int, name string, val hostops.Handle) {
	f := h.frameAt(level)
	if f == nil {
		return
	}
	for i := 0; i < maxLinkChase; i++ {
		lt, isLink := f.links[name]
		if !isLink {
			f.vars[name] = val
			return
		}
		if lt.isNamespace {
			h.NSSetVar(lt.namespace, lt.name, val)
			return
		}
		nf := h.frameAt(lt.level)
		if nf == nil {
			return
		}
		f, name = nf, lt.name
	}
}

func (h *Host) VarExists(level int, name string) bool {
	f := h.frameAt(level)
	if f == nil {
		return false
	}
	for i := 0; i < maxLinkChase; i++ {
		lt, isLink := f.links[name]
		if !isLink {
			_, ok := f.vars[name]
			return ok
		}
		if lt.isNamespace {
			return h.NSVarExists(lt.namespace, lt.name)
		}
		nf := h.frameAt(lt.level)
		if nf == nil {
			return false
		}
		f, name = nf, lt.name
	}
	return false
}

// UnsetVar removes a link if name is a link (without touching its
// target) or the local variable otherwise, per the upvar contract in
// spec.md section 4.F.
func (h *Host) UnsetVar(level int, name string) bool {
	f := h.frameAt(level)
	if f == nil {
		return false
	}
	if _, isLink := f.links[name]; isLink {
		delete(f.links, name)
		return true
	}
	if _, ok := f.vars[name]; ok {
		delete(f.vars, name)
		return true
	}
	return false
}

func (h *Host) Link(level int, local string, targetLevel int, targetName string) {
	f := h.frameAt(level)
	if f == nil {
		return
	}
	delete(f.vars, local)
	f.links[local] = linkTarget{level: targetLevel, name: targetName}
}

func (h *Host) LinkNamespace(level int, local string, namespace string, name string) {
	f := h.frameAt(level)
	if f == nil {
		return
	}
	delete(f.vars, local)
	f.links[local] = linkTarget{isNamespace: true, namespace: namespace, name: name}
}

func (h *Host) ResolveLink(level int, local string) (int, string, string, bool, bool) {
	f := h.frameAt(level)
	if f == nil {
		return 0, "", "", false, false
	}
	lt, ok := f.links[local]
	if !ok {
		return 0, "", "", false, false
	}
	if lt.isNamespace {
		return 0, lt.namespace, lt.name, true, true
	}
	return lt.level, "", lt.name, false, true
}

func (h *Host) UnsetLink(level int, local string) bool {
	f := h.frameAt(level)
	if f == nil {
		return false
	}
	if _, ok := f.links[local]; ok {
		delete(f.links, local)
		return true
	}
	return false
}

func (h *Host) Names(level int) []string {
	f := h.frameAt(level)
	if f == nil {
		return nil
	}
	seen := make(map[string]bool, len(f.vars)+len(f.links))
	out := make([]string, 0, len(f.vars)+len(f.links))
	for n := range f.vars {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	for n := range f.links {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}
