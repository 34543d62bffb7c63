package host

import (
	"math"
	"strconv"
	"strings"

	"github.com/featherscript/feather/internal/core/hostops"
)

// stripSeparators removes '_' digit-group separators, delegating to
// hostops.StripNumericSeparators (spec.md section 9's open question) so
// this "is this a number" scanner and expr's number token in
// internal/core cannot disagree about strings like "1__0" or "_5".
func stripSeparators(s string) (string, bool) {
	return hostops.StripNumericSeparators(s)
}

// parseInteger parses a TCL integer literal: decimal, 0x hex, 0b binary,
// 0o octal, optional leading sign, with '_' digit separators.
func parseInteger(s string) (int64, bool) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return 0, false
	}
	stripped, ok := stripSeparators(raw)
	if !ok {
		return 0, false
	}
	neg := false
	switch {
	case strings.HasPrefix(stripped, "+"):
		stripped = stripped[1:]
	case strings.HasPrefix(stripped, "-"):
		neg = true
		stripped = stripped[1:]
	}
	if stripped == "" {
		return 0, false
	}
	base := 10
	digits := stripped
	lower := strings.ToLower(stripped)
	switch {
	case strings.HasPrefix(lower, "0x"):
		base = 16
		digits = stripped[2:]
	case strings.HasPrefix(lower, "0b"):
		base = 2
		digits = stripped[2:]
	case strings.HasPrefix(lower, "0o"):
		base = 8
		digits = stripped[2:]
	}
	if digits == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		// Fall back to signed parse for values that legitimately wrap.
		iv, ierr := strconv.ParseInt(digits, base, 64)
		if ierr != nil {
			return 0, false
		}
		v = uint64(iv)
	}
	r := int64(v)
	if neg {
		r = -r
	}
	return r, true
}

// parseDouble parses a TCL floating point literal, accepting '_'
// separators in every digit run per the resolved open question above.
func parseDouble(s string) (float64, bool) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return 0, false
	}
	stripped, ok := stripSeparators(raw)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(stripped, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// formatDouble renders a float64 the way TCL's double formatter does:
// shortest round-trip decimal, with a trailing ".0" when the shortest form
// would otherwise look like an integer, so "double 4.0" never reads back
// as an int on re-parse.
func formatDouble(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	if math.IsInf(f, 1) {
		return "Inf"
	}
	if math.IsInf(f, -1) {
		return "-Inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

func classify(f float64) hostops.DoubleClass {
	switch {
	case math.IsNaN(f):
		return hostops.ClassNaN
	case math.IsInf(f, 1):
		return hostops.ClassInf
	case math.IsInf(f, -1):
		return hostops.ClassNegInf
	case f == 0:
		return hostops.ClassZero
	case math.Abs(f) < 2.2250738585072014e-308: // smallest normal binary64
		return hostops.ClassSubnormal
	default:
		return hostops.ClassNormal
	}
}

func mathOp(op hostops.MathOp, a, b float64) (float64, error) {
	switch op {
	case hostops.OpSqrt:
		return math.Sqrt(a), nil
	case hostops.OpPow:
		return math.Pow(a, b), nil
	case hostops.OpExp:
		return math.Exp(a), nil
	case hostops.OpLog:
		return math.Log(a), nil
	case hostops.OpLog10:
		return math.Log10(a), nil
	case hostops.OpSin:
		return math.Sin(a), nil
	case hostops.OpCos:
		return math.Cos(a), nil
	case hostops.OpTan:
		return math.Tan(a), nil
	case hostops.OpAsin:
		return math.Asin(a), nil
	case hostops.OpAcos:
		return math.Acos(a), nil
	case hostops.OpAtan:
		return math.Atan(a), nil
	case hostops.OpAtan2:
		return math.Atan2(a, b), nil
	case hostops.OpSinh:
		return math.Sinh(a), nil
	case hostops.OpCosh:
		return math.Cosh(a), nil
	case hostops.OpTanh:
		return math.Tanh(a), nil
	case hostops.OpFloor:
		return math.Floor(a), nil
	case hostops.OpCeil:
		return math.Ceil(a), nil
	case hostops.OpRound:
		return math.Round(a), nil
	case hostops.OpAbs:
		return math.Abs(a), nil
	case hostops.OpFmod:
		return math.Mod(a, b), nil
	case hostops.OpHypot:
		return math.Hypot(a, b), nil
	default:
		return 0, errUnknownMathOp
	}
}
