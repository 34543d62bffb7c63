package core

import (
	"testing"

	"github.com/featherscript/feather/internal/core/hostops"
)

func TestExprArithmeticPrecedence(t *testing.T) {
	in := newTestInterp()
	cases := map[string]string{
		"2 + 3 * 4":        "14",
		"(2 + 3) * 4":      "20",
		"10 - 2 - 3":       "5",
		"2 ** 3 ** 2":      "512", // right-associative
		"-2 ** 2":          "4",   // unary minus binds tighter than **
		"10 % 3":           "1",
		"7 / 2":            "3",
		"7.0 / 2":          "3.5",
	}
	for expr, want := range cases {
		out, code := in.evalString("expr {" + expr + "}")
		if code != hostops.OK {
			t.Errorf("expr {%s}: code = %v", expr, code)
			continue
		}
		if out != want {
			t.Errorf("expr {%s} = %q, want %q", expr, out, want)
		}
	}
}

func TestExprComparisonAndLogic(t *testing.T) {
	in := newTestInterp()
	cases := map[string]string{
		"1 < 2 && 2 < 3": "1",
		"1 < 2 && 3 < 2": "0",
		"1 > 2 || 2 < 3": "1",
		"!(1 == 1)":      "0",
		"1 == 1.0":       "1",
		`"abc" eq "abc"`: "1",
		`"abc" ne "abd"`: "1",
		`"abc" lt "abd"`: "1",
	}
	for expr, want := range cases {
		out, code := in.evalString("expr {" + expr + "}")
		if code != hostops.OK {
			t.Errorf("expr {%s}: code = %v", expr, code)
			continue
		}
		if out != want {
			t.Errorf("expr {%s} = %q, want %q", expr, out, want)
		}
	}
}

func TestExprTernary(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`expr {1 < 2 ? "yes" : "no"}`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "yes" {
		t.Errorf("out = %q", out)
	}
}

func TestExprMathFunctions(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString(`expr {max(3, 7, 2)}`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "7" {
		t.Errorf("out = %q", out)
	}

	out, code = in.evalString(`expr {int(3.9)}`)
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "3" {
		t.Errorf("out = %q", out)
	}
}

func TestExprBitwiseAndShift(t *testing.T) {
	in := newTestInterp()
	cases := map[string]string{
		"6 & 3":  "2",
		"6 | 1":  "7",
		"6 ^ 3":  "5",
		"1 << 4": "16",
		"256 >> 4": "16",
		"~0":     "-1",
	}
	for expr, want := range cases {
		out, code := in.evalString("expr {" + expr + "}")
		if code != hostops.OK {
			t.Errorf("expr {%s}: code = %v", expr, code)
			continue
		}
		if out != want {
			t.Errorf("expr {%s} = %q, want %q", expr, out, want)
		}
	}
}

func TestExprVariableReference(t *testing.T) {
	in := newTestInterp()
	if _, code := in.evalString("set x 10"); code != hostops.OK {
		t.Fatalf("setup failed")
	}
	out, code := in.evalString("expr {$x * 2}")
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "20" {
		t.Errorf("out = %q", out)
	}
}

func TestExprDivideByZeroIsError(t *testing.T) {
	in := newTestInterp()
	_, code := in.evalString("expr {1 / 0}")
	if code != hostops.Error {
		t.Fatalf("code = %v, want Error", code)
	}
}

func TestExprMalformedIsError(t *testing.T) {
	in := newTestInterp()
	_, code := in.evalString("expr {1 +}")
	if code != hostops.Error {
		t.Fatalf("code = %v, want Error", code)
	}
}

func TestExprAcceptsDigitSeparator(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString("expr {1_000}")
	if code != hostops.OK {
		t.Fatalf("code = %v", code)
	}
	if out != "1000" {
		t.Errorf("out = %q, want %q", out, "1000")
	}
}

func TestExprRejectsDoubleSeparator(t *testing.T) {
	in := newTestInterp()
	_, code := in.evalString("expr {1__0}")
	if code != hostops.Error {
		t.Fatalf("code = %v, want Error (digit separators must be singleton, between digits)", code)
	}
}

func TestExprRejectsLeadingSeparator(t *testing.T) {
	in := newTestInterp()
	_, code := in.evalString("expr {_5}")
	if code != hostops.Error {
		t.Fatalf("code = %v, want Error", code)
	}
}

func TestExprRejectsTrailingSeparator(t *testing.T) {
	in := newTestInterp()
	_, code := in.evalString("expr {10_}")
	if code != hostops.Error {
		t.Fatalf("code = %v, want Error", code)
	}
}

func TestExprSeparatorAgreesWithVariablePath(t *testing.T) {
	in := newTestInterp()
	out, code := in.evalString("set x 1__0; expr {$x + 0}")
	if code != hostops.Error {
		t.Fatalf("code = %v, out = %q, want Error: arithmetic on $x must reject 1__0 the same way the literal-number path does", code, out)
	}
}
