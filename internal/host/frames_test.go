package host

import "testing"

func TestPushPopFrameTracksActiveLevel(t *testing.T) {
	h := newTestHost()
	if h.Level() != 0 {
		t.Fatalf("initial Level() = %d, want 0", h.Level())
	}
	lvl := h.PushFrame(h.Intern("cmd"), nil, globalPath)
	if lvl != 1 || h.Level() != 1 || h.Active() != 1 {
		t.Errorf("after push: lvl=%d Level()=%d Active()=%d", lvl, h.Level(), h.Active())
	}
	h.PopFrame()
	if h.Level() != 0 || h.Active() != 0 {
		t.Errorf("after pop: Level()=%d Active()=%d", h.Level(), h.Active())
	}
}

func TestPopFrameNeverRemovesRootFrame(t *testing.T) {
	h := newTestHost()
	h.PopFrame()
	if h.Level() != 0 {
		t.Errorf("Level() = %d, want 0 (root frame must survive)", h.Level())
	}
}

func TestSetGetVarInFrame(t *testing.T) {
	h := newTestHost()
	h.SetVar(0, "x", h.Intern("1"))
	v, ok := h.GetVar(0, "x")
	if !ok || h.Bytes(v) != "1" {
		t.Errorf("GetVar = (%v, %v)", v, ok)
	}
	if !h.VarExists(0, "x") {
		t.Error("expected VarExists true")
	}
	if !h.UnsetVar(0, "x") {
		t.Error("expected UnsetVar true")
	}
	if h.VarExists(0, "x") {
		t.Error("expected gone after unset")
	}
}

func TestLinkResolvesThroughToTargetFrame(t *testing.T) {
	h := newTestHost()
	h.SetVar(0, "caller", h.Intern("10"))
	lvl := h.PushFrame(h.Intern("f"), nil, globalPath)
	h.Link(lvl, "local", 0, "caller")

	v, ok := h.GetVar(lvl, "local")
	if !ok || h.Bytes(v) != "10" {
		t.Fatalf("GetVar through link = (%v, %v)", v, ok)
	}

	h.SetVar(lvl, "local", h.Intern("20"))
	v, ok = h.GetVar(0, "caller")
	if !ok || h.Bytes(v) != "20" {
		t.Errorf("write through link didn't reach caller frame: (%v, %v)", v, ok)
	}
}

func TestLinkNamespaceResolvesToNamespaceVar(t *testing.T) {
	h := newTestHost()
	h.Create("::g")
	h.NSSetVar("::g", "shared", h.Intern("5"))
	lvl := h.PushFrame(h.Intern("f"), nil, globalPath)
	h.LinkNamespace(lvl, "local", "::g", "shared")

	v, ok := h.GetVar(lvl, "local")
	if !ok || h.Bytes(v) != "5" {
		t.Fatalf("GetVar through namespace link = (%v, %v)", v, ok)
	}
	h.SetVar(lvl, "local", h.Intern("9"))
	v, ok = h.NSGetVar("::g", "shared")
	if !ok || h.Bytes(v) != "9" {
		t.Errorf("write through namespace link didn't land: (%v, %v)", v, ok)
	}
}

func TestUnsetVarRemovesLinkNotTarget(t *testing.T) {
	h := newTestHost()
	h.SetVar(0, "caller", h.Intern("1"))
	lvl := h.PushFrame(h.Intern("f"), nil, globalPath)
	h.Link(lvl, "local", 0, "caller")
	if !h.UnsetVar(lvl, "local") {
		t.Fatal("expected UnsetVar on a link to succeed")
	}
	if h.VarExists(lvl, "local") {
		t.Error("expected link gone")
	}
	if !h.VarExists(0, "caller") {
		t.Error("expected target variable untouched by unsetting the link")
	}
}

func TestNamesMergesVarsAndLinksWithoutDuplicates(t *testing.T) {
	h := newTestHost()
	h.SetVar(0, "a", h.Intern("1"))
	h.Link(0, "b", 0, "a")
	names := h.Names(0)
	seen := map[string]int{}
	for _, n := range names {
		seen[n]++
	}
	if seen["a"] != 1 || seen["b"] != 1 {
		t.Errorf("Names() = %v", names)
	}
}
