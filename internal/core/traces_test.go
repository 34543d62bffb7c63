package core

import (
	"testing"

	"github.com/featherscript/feather/internal/core/hostops"
)

func TestTraceVariableWriteFires(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`
		set log {}
		proc onWrite {name elem op} {
			global log
			lappend log "$name:$op"
		}
		trace add variable x write onWrite
		set x 1
		set x 2
		set log
	`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "x:write x:write" {
		t.Errorf("out = %q", out)
	}
}

func TestTraceVariableReadFires(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`
		set reads 0
		set y 5
		proc onRead {name elem op} {
			global reads
			incr reads
		}
		trace add variable y read onRead
		set z $y
		set z $y
		set reads
	`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "2" {
		t.Errorf("out = %q", out)
	}
}

func TestTraceRemoveStopsFiring(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`
		set count 0
		proc bump {name elem op} { global count; incr count }
		trace add variable w write bump
		set w 1
		trace remove variable w write bump
		set w 2
		set count
	`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "1" {
		t.Errorf("out = %q, want 1 (trace should have stopped firing)", out)
	}
}

func TestTraceExecutionFiresOnEnterAndLeave(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`
		set events {}
		proc square {n} { return [expr {$n * $n}] }
		proc onExec {cmdline args} {
			global events
			lappend events [lindex $args end]
		}
		trace add execution square enter onExec
		trace add execution square leave onExec
		square 4
		set events
	`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "enter leave" {
		t.Errorf("out = %q", out)
	}
}

func TestNamespaceDeleteFiresCommandDeleteTrace(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`
		namespace eval ::a {
			proc foo {} {}
		}
		set deleted {}
		proc onDelete {oldname newname op} {
			global deleted
			lappend deleted $oldname
		}
		trace add command ::a::foo delete onDelete
		namespace delete ::a
		set deleted
	`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "::a::foo" {
		t.Errorf("out = %q, want %q", out, "::a::foo")
	}
}

func TestNamespaceDeleteFiresTracesForNestedNamespaces(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`
		namespace eval ::a {
			namespace eval ::a::b {
				proc bar {} {}
			}
		}
		set deleted {}
		proc onDelete {oldname newname op} {
			global deleted
			lappend deleted $oldname
		}
		trace add command ::a::b::bar delete onDelete
		namespace delete ::a
		set deleted
	`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "::a::b::bar" {
		t.Errorf("out = %q, want %q", out, "::a::b::bar")
	}
}
