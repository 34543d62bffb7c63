package host

import (
	"testing"
)

func TestCreateBuildsMissingAncestors(t *testing.T) {
	h := newTestHost()
	abs := h.Create("foo::bar::baz")
	if abs != "::foo::bar::baz" {
		t.Fatalf("abs = %q", abs)
	}
	if !h.Exists("::foo") || !h.Exists("::foo::bar") || !h.Exists("::foo::bar::baz") {
		t.Error("expected every ancestor namespace to have been created")
	}
}

func TestChildrenListsDirectChildrenOnly(t *testing.T) {
	h := newTestHost()
	h.Create("::a::b")
	h.Create("::a::c")
	h.Create("::a::b::d")
	kids := h.Children("::a")
	if len(kids) != 2 || kids[0] != "::a::b" || kids[1] != "::a::c" {
		t.Errorf("Children(::a) = %v", kids)
	}
}

func TestDeleteCascadesToChildren(t *testing.T) {
	h := newTestHost()
	h.Create("::a::b::c")
	if !h.Delete("::a") {
		t.Fatal("Delete(::a) = false")
	}
	if h.Exists("::a") || h.Exists("::a::b") || h.Exists("::a::b::c") {
		t.Error("expected whole subtree to be gone")
	}
}

func TestDeleteGlobalIsRefused(t *testing.T) {
	h := newTestHost()
	if h.Delete("::") {
		t.Error("expected Delete(::) to refuse")
	}
}

func TestResolveJoinsRelativeToCurrent(t *testing.T) {
	h := newTestHost()
	if got := h.Resolve("::a::b", "c"); got != "::a::b::c" {
		t.Errorf("Resolve(::a::b, c) = %q", got)
	}
	if got := h.Resolve("::a::b", "::x::y"); got != "::x::y" {
		t.Errorf("Resolve with absolute path = %q", got)
	}
	if got := h.Resolve(globalPath, "c"); got != "::c" {
		t.Errorf("Resolve(::, c) = %q", got)
	}
}

func TestNSVarRoundTrip(t *testing.T) {
	h := newTestHost()
	h.Create("::ns")
	h.NSSetVar("::ns", "x", h.Intern("5"))
	v, ok := h.NSGetVar("::ns", "x")
	if !ok || h.Bytes(v) != "5" {
		t.Errorf("NSGetVar = (%v, %v)", v, ok)
	}
	if !h.NSVarExists("::ns", "x") {
		t.Error("expected NSVarExists true")
	}
	if !h.NSUnsetVar("::ns", "x") {
		t.Error("expected NSUnsetVar true")
	}
	if h.NSVarExists("::ns", "x") {
		t.Error("expected variable gone after unset")
	}
}

func TestExportsMatchGlobPatterns(t *testing.T) {
	h := newTestHost()
	h.Create("::ns")
	h.SetExports("::ns", []string{"foo*"})
	if !h.IsExported("::ns", "foobar") {
		t.Error("expected foobar to match foo*")
	}
	if h.IsExported("::ns", "bar") {
		t.Error("expected bar not to match foo*")
	}
}

func TestSimpleNameAndParentPath(t *testing.T) {
	if simpleName("::a::b") != "b" {
		t.Errorf("simpleName(::a::b) = %q", simpleName("::a::b"))
	}
	if simpleName("::") != "" {
		t.Errorf("simpleName(::) = %q", simpleName("::"))
	}
	if parentPath("::a::b") != "::a" {
		t.Errorf("parentPath(::a::b) = %q", parentPath("::a::b"))
	}
	if parentPath("::a") != "::" {
		t.Errorf("parentPath(::a) = %q", parentPath("::a"))
	}
}
