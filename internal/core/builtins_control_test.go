package core

import (
	"testing"

	"github.com/featherscript/feather/internal/core/hostops"
)

func TestIncrDefaultsToOneAndCreatesVariable(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`
		incr counter
		incr counter 5
		set counter
	`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "6" {
		t.Errorf("out = %q", out)
	}
}

func TestUnsetNocomplainSuppressesError(t *testing.T) {
	in := newTestInterp()
	_, code := in.evalString(`unset -nocomplain nonexistent`)
	if code != hostops.OK {
		t.Fatalf("code = %v, want OK", code)
	}
	_, code = in.evalString(`unset nonexistent`)
	if code != hostops.Error {
		t.Fatalf("code = %v, want Error without -nocomplain", code)
	}
}

func TestAppendConcatenatesOntoVariable(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`
		set s "a"
		append s "b" "c"
		set s
	`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "abc" {
		t.Errorf("out = %q", out)
	}
}

func TestReturnWithExplicitCodeOption(t *testing.T) {
	in := newTestInterp()
	_, code := in.evalString(`
		proc f {} { return -code error "boom" }
		f
	`)
	if code != hostops.Error {
		t.Fatalf("code = %v, want Error", code)
	}
}

func TestCatchCapturesResultVariable(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`
		catch {error "oops"} msg
		set msg
	`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "oops" {
		t.Errorf("out = %q", out)
	}
}

func TestTryOnErrorRunsHandler(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`
		try {
			error "bad"
		} on error msg {
			set result "handled: $msg"
		}
		set result
	`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "handled: bad" {
		t.Errorf("out = %q", out)
	}
}

func TestTryFinallyAlwaysRuns(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`
		set ran 0
		catch {
			try {
				error "bad"
			} finally {
				set ran 1
			}
		}
		set ran
	`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "1" {
		t.Errorf("out = %q, want finally to have run", out)
	}
}

func TestSwitchExactMatch(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`
		switch "b" {
			a { set r "got a" }
			b { set r "got b" }
			default { set r "got default" }
		}
		set r
	`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "got b" {
		t.Errorf("out = %q", out)
	}
}

func TestSwitchFallThroughWithDash(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`
		switch "a" {
			a - b { set r "matched a or b" }
			default { set r "no match" }
		}
		set r
	`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "matched a or b" {
		t.Errorf("out = %q", out)
	}
}

func TestSwitchGlobMode(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`
		switch -glob "hello" {
			h* { set r "matched" }
			default { set r "no" }
		}
		set r
	`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "matched" {
		t.Errorf("out = %q", out)
	}
}

func TestForLoopAccumulates(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`
		set sum 0
		for {set i 0} {$i < 5} {incr i} {
			set sum [expr {$sum + $i}]
		}
		set sum
	`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "10" {
		t.Errorf("out = %q", out)
	}
}

func TestForeachMultipleVarsPerIteration(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`
		set pairs {}
		foreach {a b} {1 2 3 4} {
			lappend pairs "$a-$b"
		}
		set pairs
	`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "1-2 3-4" {
		t.Errorf("out = %q", out)
	}
}

func TestCatchOptionsExposeErrorCode(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`
		catch {error msg {} {MYCODE 1}} m opts
		dict get $opts -errorcode
	`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "MYCODE 1" {
		t.Errorf("out = %q, want %q", out, "MYCODE 1")
	}
}

func TestCatchOptionsDefaultErrorCodeIsNone(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`
		catch {error oops} m opts
		dict get $opts -errorcode
	`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "NONE" {
		t.Errorf("out = %q, want %q", out, "NONE")
	}
}

func TestCatchOptionsExposeErrorInfo(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`
		catch {error msg "custom trace"} m opts
		dict get $opts -errorinfo
	`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "custom trace" {
		t.Errorf("out = %q, want %q", out, "custom trace")
	}
}

func TestReturnErrorCarriesErrorCode(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`
		proc f {} { return -code error -errorcode {BAD 2} failed }
		catch {f} m opts
		dict get $opts -errorcode
	`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "BAD 2" {
		t.Errorf("out = %q, want %q", out, "BAD 2")
	}
}

func TestTryTrapMatchesErrorCodePrefix(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`
		try {
			error msg {} {MYCODE 1}
		} trap {MYCODE} e {
			set out "trapped: $e"
		} on error e {
			set out "generic: $e"
		}
		set out
	`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "trapped: msg" {
		t.Errorf("out = %q", out)
	}
}

func TestTryTrapFallsThroughOnCodeMismatch(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`
		try {
			error msg {} {OTHERCODE 1}
		} trap {MYCODE} e {
			set out "trapped: $e"
		} on error e {
			set out "generic: $e"
		}
		set out
	`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "generic: msg" {
		t.Errorf("out = %q", out)
	}
}

func TestThrowSetsErrorCodeFromType(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`
		catch {throw {MYAPP BADINPUT} "bad input"} m opts
		dict get $opts -errorcode
	`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "MYAPP BADINPUT" {
		t.Errorf("out = %q, want %q", out, "MYAPP BADINPUT")
	}
}
