package core

import (
	"math"
	"strconv"
	"strings"

	"github.com/featherscript/feather/internal/core/hostops"
)

// truthy converts h to a boolean per expr's condition rules: numeric
// non-zero, or one of the case-insensitive boolean barewords.
func (in *Interp) truthy(h hostops.Handle) bool {
	if iv, ok := in.ops.Int(h); ok {
		return iv != 0
	}
	if fv, ok := in.ops.Double(h); ok {
		return fv != 0
	}
	if lit, ok := boolLiteral(in.ops.Bytes(h)); ok {
		return lit != 0
	}
	return false
}

func pickFloat(i int64, iok bool, f float64, fok bool) (float64, bool) {
	if iok {
		return float64(i), true
	}
	if fok {
		return f, true
	}
	return 0, false
}

func (st *exprState) zero() exprValue { return exprValue{h: st.in.ops.NewInt(0)} }

// applyUnary implements -, +, ~, ! on a single operand.
func (st *exprState) applyUnary(op string, v exprValue) exprValue {
	in := st.in
	iv, iok := in.ops.Int(v.h)
	fv, fok := in.ops.Double(v.h)
	switch op {
	case "+":
		if iok || fok {
			return v
		}
	case "-":
		if iok {
			return exprValue{h: in.ops.NewInt(-iv)}
		}
		if fok {
			return exprValue{h: in.ops.NewDouble(-fv)}
		}
	case "~":
		if iok {
			return exprValue{h: in.ops.NewInt(^iv)}
		}
	case "!":
		if iok || fok {
			return st.boolValue(!in.truthy(v.h))
		}
		if lit, ok := boolLiteral(in.ops.Bytes(v.h)); ok {
			return st.boolValue(lit == 0)
		}
	}
	st.fail(errf("can't use non-numeric string as operand of %q", op))
	return st.zero()
}

// intBinOp implements the bitwise and shift operators, which require
// integer operands on both sides per spec.md section 4.H.
func (st *exprState) intBinOp(lhs, rhs exprValue, _ hostops.MathOp, op string) exprValue {
	if st.skip > 0 {
		return lhs
	}
	in := st.in
	li, lok := in.ops.Int(lhs.h)
	ri, rok := in.ops.Int(rhs.h)
	if !lok || !rok {
		st.fail(errf("can't use non-integer as operand of %q", op))
		return st.zero()
	}
	var r int64
	switch op {
	case "|":
		r = li | ri
	case "^":
		r = li ^ ri
	case "&":
		r = li & ri
	case "<<":
		r = li << uint64(ri&63)
	case ">>":
		r = li >> uint64(ri&63)
	}
	return exprValue{h: in.ops.NewInt(r)}
}

// arithOp implements +, -, *, /, %, ** with the shimmering and
// domain-error rules from spec.md section 4.H.
func (st *exprState) arithOp(lhs, rhs exprValue, op string) exprValue {
	if st.skip > 0 {
		return lhs
	}
	in := st.in
	li, lok := in.ops.Int(lhs.h)
	ld, ldok := in.ops.Double(lhs.h)
	ri, rok := in.ops.Int(rhs.h)
	rd, rdok := in.ops.Double(rhs.h)

	if op == "%" {
		if !lok || !rok {
			st.fail(errf("can't use non-integer as operand of \"%%\""))
			return st.zero()
		}
		if ri == 0 {
			st.fail(errf("divide by zero"))
			return st.zero()
		}
		m := li % ri
		if m != 0 && (m < 0) != (ri < 0) {
			m += ri
		}
		return exprValue{h: in.ops.NewInt(m)}
	}

	if op == "**" {
		if lok && rok {
			if ri < 0 {
				switch li {
				case 1:
					return exprValue{h: in.ops.NewInt(1)}
				case -1:
					if ri%2 == 0 {
						return exprValue{h: in.ops.NewInt(1)}
					}
					return exprValue{h: in.ops.NewInt(-1)}
				default:
					return exprValue{h: in.ops.NewInt(0)}
				}
			}
			return exprValue{h: in.ops.NewInt(intPow(li, ri))}
		}
		a, aok := pickFloat(li, lok, ld, ldok)
		b, bok := pickFloat(ri, rok, rd, rdok)
		if !aok || !bok {
			st.fail(errf("can't use non-numeric string as operand of \"**\""))
			return st.zero()
		}
		f, err := in.ops.Math(hostops.OpPow, a, b)
		if err != nil {
			st.fail(err)
			return st.zero()
		}
		return st.numericResult(f)
	}

	if lok && rok {
		switch op {
		case "+":
			return exprValue{h: in.ops.NewInt(li + ri)}
		case "-":
			return exprValue{h: in.ops.NewInt(li - ri)}
		case "*":
			return exprValue{h: in.ops.NewInt(li * ri)}
		case "/":
			if ri == 0 {
				st.fail(errf("divide by zero"))
				return st.zero()
			}
			q := li / ri
			if (li%ri != 0) && ((li < 0) != (ri < 0)) {
				q-- // floor toward negative infinity, matching Tcl integer division
			}
			return exprValue{h: in.ops.NewInt(q)}
		}
	}

	a, aok := pickFloat(li, lok, ld, ldok)
	b, bok := pickFloat(ri, rok, rd, rdok)
	if !aok || !bok {
		st.fail(errf("can't use non-numeric string as operand of %q", op))
		return st.zero()
	}
	var f float64
	switch op {
	case "+":
		f = a + b
	case "-":
		f = a - b
	case "*":
		f = a * b
	case "/":
		if b == 0 {
			if a == 0 {
				st.fail(errf("domain error: argument not in valid range"))
				return st.zero()
			}
			st.fail(errf("divide by zero"))
			return st.zero()
		}
		f = a / b
	}
	if math.IsNaN(f) {
		st.fail(errf("domain error: argument not in valid range"))
		return st.zero()
	}
	return st.numericResult(f)
}

func (st *exprState) numericResult(f float64) exprValue {
	return exprValue{h: st.in.ops.NewDouble(f)}
}

func intPow(base, exp int64) int64 {
	var r int64 = 1
	for i := int64(0); i < exp; i++ {
		r *= base
	}
	return r
}

// compareOp implements ==, !=, eq, ne, <, <=, >, >=, lt, le, gt, ge, in,
// ni. The symbolic operators try numeric conversion first and fall back
// to string comparison; the word operators are string-only (or list
// membership for in/ni), per spec.md section 4.H.
func (st *exprState) compareOp(lhs, rhs exprValue, op string) exprValue {
	if st.skip > 0 {
		return lhs
	}
	in := st.in
	switch op {
	case "in", "ni":
		items := in.ops.Items(rhs.h)
		member := false
		for _, it := range items {
			if in.ops.Equal(it, lhs.h) || in.ops.Bytes(it) == in.ops.Bytes(lhs.h) {
				member = true
				break
			}
		}
		if op == "ni" {
			member = !member
		}
		return st.boolValue(member)
	case "eq", "ne":
		eq := in.ops.Bytes(lhs.h) == in.ops.Bytes(rhs.h)
		if op == "ne" {
			eq = !eq
		}
		return st.boolValue(eq)
	case "lt", "le", "gt", "ge":
		c := strings.Compare(in.ops.Bytes(lhs.h), in.ops.Bytes(rhs.h))
		return st.boolValue(compareByOp(c, op))
	default:
		c, ok := numericCompare(in, lhs.h, rhs.h)
		if !ok {
			c = strings.Compare(in.ops.Bytes(lhs.h), in.ops.Bytes(rhs.h))
		}
		return st.boolValue(compareByOp(c, op))
	}
}

func compareByOp(c int, op string) bool {
	switch op {
	case "==":
		return c == 0
	case "!=":
		return c != 0
	case "<", "lt":
		return c < 0
	case "<=", "le":
		return c <= 0
	case ">", "gt":
		return c > 0
	case ">=", "ge":
		return c >= 0
	}
	return false
}

func numericCompare(in *Interp, a, b hostops.Handle) (int, bool) {
	ai, aiok := in.ops.Int(a)
	ad, adok := in.ops.Double(a)
	bi, biok := in.ops.Int(b)
	bd, bdok := in.ops.Double(b)
	af, aok := pickFloat(ai, aiok, ad, adok)
	bf, bok := pickFloat(bi, biok, bd, bdok)
	if !aok || !bok {
		return 0, false
	}
	switch {
	case af < bf:
		return -1, true
	case af > bf:
		return 1, true
	default:
		return 0, true
	}
}

// --- loose numeric literal parsing for expr's number scanner --------------

func parseIntLoose(s string) (int64, bool) {
	t, ok := hostops.StripNumericSeparators(s)
	if !ok || t == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(t, 0, 64)
	if err == nil {
		return v, true
	}
	if strings.HasPrefix(t, "0b") || strings.HasPrefix(t, "0B") {
		v, err := strconv.ParseInt(t[2:], 2, 64)
		if err == nil {
			return v, true
		}
	}
	return 0, false
}

func parseDoubleLoose(s string) (float64, bool) {
	t, ok := hostops.StripNumericSeparators(s)
	if !ok {
		return 0, false
	}
	switch t {
	case "Inf", "+Inf":
		return math.Inf(1), true
	case "-Inf":
		return math.Inf(-1), true
	case "NaN":
		return math.NaN(), true
	}
	v, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
