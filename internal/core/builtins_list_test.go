package core

import (
	"testing"

	"github.com/featherscript/feather/internal/core/hostops"
)

func TestListBuiltins(t *testing.T) {
	in := newTestInterp()
	cases := map[string]string{
		`llength {a b c}`:                "3",
		`lindex {a b c} 1`:                "b",
		`lindex {a b c} end`:              "c",
		`linsert {a c} 1 b`:               "a b c",
		`lrange {a b c d} 1 2`:            "b c",
		`lreplace {a b c d} 1 2 x y z`:    "a x y z d",
		`lrepeat 3 foo`:                   "foo foo foo",
		`lreverse {a b c}`:                "c b a",
		`lsort {banana apple cherry}`:     "apple banana cherry",
		`lsort -integer {10 2 33}`:        "2 10 33",
		`lsearch {a b c} b`:               "1",
		`join {a b c} -`:                  "a-b-c",
		`split "a,b,c" ","`:               "a b c",
		`concat {a b} {c d}`:              "a b c d",
	}
	for expr, want := range cases {
		out, code := in.evalString(expr)
		if code != hostops.OK {
			t.Errorf("%s: code = %v, out = %q", expr, code, out)
			continue
		}
		if out != want {
			t.Errorf("%s = %q, want %q", expr, out, want)
		}
	}
}

func TestLappendGrowsVariable(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`
		set items {}
		lappend items a
		lappend items b c
		set items
	`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "a b c" {
		t.Errorf("out = %q", out)
	}
}

func TestLassignBindsVariables(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`
		lassign {1 2 3} a b c
		list $a $b $c
	`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "1 2 3" {
		t.Errorf("out = %q", out)
	}
}

func TestListIndexOutOfRangeIsEmpty(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`lindex {a b} 10`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "" {
		t.Errorf("out = %q, want empty", out)
	}
}

func TestLsetReplacesElement(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`
		set mylist {a b c}
		lset mylist 1 x
		set mylist
	`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "a x c" {
		t.Errorf("out = %q", out)
	}
}

func TestLsetNestedIndex(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`
		set mylist {{a b} {c d}}
		lset mylist 0 1 z
		set mylist
	`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "{a z} {c d}" {
		t.Errorf("out = %q", out)
	}
}

func TestLsetBadIndexErrors(t *testing.T) {
	in := newTestInterp()
	_, code := in.evalString(`
		set mylist {a b c}
		lset mylist 10 x
	`)
	if code != hostops.Error {
		t.Fatalf("code = %v, want Error", code)
	}
}

func TestLmapCollectsBodyResults(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`
		lmap x {1 2 3} { expr {$x * 2} }
	`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "2 4 6" {
		t.Errorf("out = %q", out)
	}
}

func TestLmapBreakStopsEarly(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`
		lmap x {1 2 3 4} {
			if {$x > 2} break
			expr {$x * 10}
		}
	`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "10 20" {
		t.Errorf("out = %q", out)
	}
}
