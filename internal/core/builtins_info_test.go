package core

import (
	"strings"
	"testing"

	"github.com/featherscript/feather/internal/core/hostops"
)

func TestInfoExists(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`
		set a 1
		list [info exists a] [info exists nope]
	`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "1 0" {
		t.Errorf("out = %q", out)
	}
}

func TestInfoCommandsFindsBuiltinAndProc(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`
		proc myproc {} {}
		info commands myproc
	`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "myproc" {
		t.Errorf("out = %q", out)
	}
}

func TestInfoProcsExcludesBuiltins(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`
		proc onlyme {} {}
		info procs
	`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "onlyme" {
		t.Errorf("out = %q, want just the user-defined proc", out)
	}
}

func TestInfoArgsAndDefault(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`
		proc greet {name {greeting hello}} { return "$greeting, $name" }
		info args greet
	`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "name greeting" {
		t.Errorf("out = %q", out)
	}

	out, code = in.evalString(`
		proc greet {name {greeting hello}} { return "$greeting, $name" }
		info default greet greeting defVar
		set defVar
	`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "hello" {
		t.Errorf("out = %q", out)
	}
}

func TestInfoBodyReturnsProcSource(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`
		proc f {} { return 1 }
		info body f
	`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if !strings.Contains(out, "return 1") {
		t.Errorf("out = %q, want body text", out)
	}
}

func TestInfoVarsInProcScope(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`
		proc f {a} {
			set b 2
			lsort [info vars]
		}
		f 1
	`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "a b" {
		t.Errorf("out = %q", out)
	}
}

func TestInfoLevelReportsCallDepth(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`info level`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "0" {
		t.Errorf("out = %q, want 0 at top level", out)
	}
}

func TestInfoFeathersversionIsRecognized(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`info feathersversion`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out == "" {
		t.Errorf("out = %q, want a non-empty version string", out)
	}
}
