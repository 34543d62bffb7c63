package core

import (
	"testing"

	"github.com/featherscript/feather/internal/core/hostops"
)

func TestDictCreateGetSet(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`
		set d [dict create a 1 b 2]
		dict get $d b
	`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "2" {
		t.Errorf("out = %q", out)
	}
}

func TestDictSetNested(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`
		set d [dict create]
		dict set d a b c 1
		dict get $d a b c
	`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "1" {
		t.Errorf("out = %q", out)
	}
}

func TestDictExistsAndUnset(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`
		set d [dict create x 1]
		set before [dict exists $d x]
		dict unset d x
		set after [dict exists $d x]
		list $before $after
	`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "1 0" {
		t.Errorf("out = %q", out)
	}
}

func TestDictKeysAndValues(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`
		set d [dict create a 1 b 2]
		list [dict keys $d] [dict values $d]
	`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "{a b} {1 2}" {
		t.Errorf("out = %q", out)
	}
}

func TestDictForIteratesEntries(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`
		set d [dict create a 1 b 2]
		set total 0
		dict for {k v} $d { incr total $v }
		set total
	`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "3" {
		t.Errorf("out = %q", out)
	}
}

func TestDictIncrCreatesKeyWhenMissing(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`
		set d [dict create]
		dict incr d counter
		dict incr d counter 4
		dict get $d counter
	`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "5" {
		t.Errorf("out = %q", out)
	}
}

func TestDictWithUpdatesVariable(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`
		set d [dict create x 1]
		dict with d { set x 99 }
		dict get $d x
	`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "99" {
		t.Errorf("out = %q", out)
	}
}

func TestDictMergeCombinesDicts(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`
		set m [dict merge {a 1} {b 2} {a 3}]
		dict get $m a
	`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "3" {
		t.Errorf("out = %q, want last-writer-wins merge", out)
	}
}

func TestDictReplaceOverwritesAndAddsKeys(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`
		set d [dict replace {a 1 b 2} b 9 c 3]
		list [dict get $d a] [dict get $d b] [dict get $d c]
	`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "1 9 3" {
		t.Errorf("out = %q", out)
	}
}

func TestDictRemoveDropsKeys(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`
		set d [dict remove {a 1 b 2 c 3} b]
		dict exists $d b
	`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "0" {
		t.Errorf("out = %q, want 0 (key removed)", out)
	}
}
