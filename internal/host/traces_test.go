package host

import (
	"testing"

	"github.com/featherscript/feather/internal/core/hostops"
)

func TestAddAndTraceInfoRoundTrip(t *testing.T) {
	h := newTestHost()
	script := h.NewList(h.Intern("onWrite"))
	h.Add(hostops.TraceVariable, "x", []string{"write"}, script)
	regs := h.TraceInfo(hostops.TraceVariable, "x")
	if len(regs) != 1 || h.Bytes(regs[0].Script) != h.Bytes(script) {
		t.Errorf("TraceInfo = %v", regs)
	}
}

func TestRemoveMatchesByContentNotHandleIdentity(t *testing.T) {
	h := newTestHost()
	// Simulate two independent parses of the same literal script text,
	// as happens across two separate "trace add"/"trace remove" calls:
	// each interns its own handle, so identity differs even though the
	// text is the same.
	addScript := h.NewList(h.Intern("bump"))
	removeScript := h.NewList(h.Intern("bump"))
	if addScript == removeScript {
		t.Fatal("test setup invalid: expected distinct handles for separately-built lists")
	}

	h.Add(hostops.TraceVariable, "w", []string{"write"}, addScript)
	if !h.Remove(hostops.TraceVariable, "w", []string{"write"}, removeScript) {
		t.Fatal("Remove returned false for a content-equal script with a different handle")
	}
	if regs := h.TraceInfo(hostops.TraceVariable, "w"); len(regs) != 0 {
		t.Errorf("expected no registrations left, got %v", regs)
	}
}

func TestRemoveRequiresMatchingOps(t *testing.T) {
	h := newTestHost()
	script := h.NewList(h.Intern("bump"))
	h.Add(hostops.TraceVariable, "w", []string{"write"}, script)
	if h.Remove(hostops.TraceVariable, "w", []string{"read"}, script) {
		t.Error("expected Remove to refuse when ops don't match")
	}
	if regs := h.TraceInfo(hostops.TraceVariable, "w"); len(regs) != 1 {
		t.Errorf("expected registration to survive a non-matching Remove, got %v", regs)
	}
}

func TestGuardedToggle(t *testing.T) {
	h := newTestHost()
	if h.Guarded() {
		t.Fatal("expected not guarded initially")
	}
	h.SetGuarded(true)
	if !h.Guarded() {
		t.Error("expected guarded after SetGuarded(true)")
	}
	h.SetGuarded(false)
	if h.Guarded() {
		t.Error("expected not guarded after SetGuarded(false)")
	}
}
