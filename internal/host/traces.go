package host

import "github.com/featherscript/feather/internal/core/hostops"

// traceKey scopes a trace registration by kind and subject name. Variable
// trace names are canonicalized to a link-resolved target by the engine
// before calling Add/Remove, per the "link-resolved target is used to find
// registered traces" rule in spec.md section 4.I; TraceOps itself just
// stores whatever key it is given.
type traceKey struct {
	kind hostops.TraceKind
	name string
}

func (h *Host) Add(kind hostops.TraceKind, name string, ops []string, script hostops.Handle) {
	k := traceKey{kind, name}
	h.traces[k] = append(h.traces[k], hostops.TraceReg{Ops: append([]string(nil), ops...), Script: script})
}

func (h *Host) Remove(kind hostops.TraceKind, name string, ops []string, script hostops.Handle) bool {
	k := traceKey{kind, name}
	regs := h.traces[k]
	for i, r := range regs {
		if h.Bytes(r.Script) != h.Bytes(script) || !sameOps(r.Ops, ops) {
			continue
		}
		h.traces[k] = append(regs[:i], regs[i+1:]...)
		if len(h.traces[k]) == 0 {
			delete(h.traces, k)
		}
		return true
	}
	return false
}

func (h *Host) TraceInfo(kind hostops.TraceKind, name string) []hostops.TraceReg {
	regs := h.traces[traceKey{kind, name}]
	return append([]hostops.TraceReg(nil), regs...)
}

func (h *Host) Guarded() bool { return h.traceGuard }

func (h *Host) SetGuarded(v bool) { h.traceGuard = v }

func sameOps(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
