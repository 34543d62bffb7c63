package core

import (
	"strconv"
	"strings"

	"github.com/featherscript/feather/internal/core/hostops"
)

func okResult(in *Interp, h hostops.Handle) hostops.Result {
	in.ops.SetResult(h)
	return hostops.Result{Code: hostops.OK}
}

func okString(in *Interp, s string) hostops.Result {
	return okResult(in, in.ops.Intern(s))
}

func errResult(in *Interp, format string, args ...any) hostops.Result {
	in.setErrorf(format, args...)
	return hostops.Result{Code: hostops.Error}
}

func wrongArgs(in *Interp, usage string) hostops.Result {
	return errResult(in, "wrong # args: should be \"%s\"", usage)
}

func asInt(in *Interp, h hostops.Handle) (int64, bool) {
	return in.ops.Int(h)
}

func asDouble(in *Interp, h hostops.Handle) (float64, bool) {
	return in.ops.Double(h)
}

func needInt(in *Interp, h hostops.Handle) (int64, error) {
	v, ok := asInt(in, h)
	if !ok {
		return 0, errf("expected integer but got %q", in.ops.Bytes(h))
	}
	return v, nil
}

// resolveIndex parses a list/string index expression per spec.md section
// 4.J: "integer | end | end±integer | integer±integer". Negative results
// are returned as they are; the caller clamps against 0 and length-1
// for range operations.
func resolveIndex(s string, length int) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "end" {
		return length - 1, true
	}
	if strings.HasPrefix(s, "end") {
		rest := s[3:]
		if n, ok := parseSignedOffset(rest); ok {
			return length - 1 + n, true
		}
		return 0, false
	}
	base, rest, ok := splitLeadingInt(s)
	if !ok {
		return 0, false
	}
	if rest == "" {
		return base, true
	}
	if n, ok := parseSignedOffset(rest); ok {
		return base + n, true
	}
	return 0, false
}

func splitLeadingInt(s string) (int, string, bool) {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == start {
		return 0, "", false
	}
	v, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, "", false
	}
	return v, s[i:], true
}

func parseSignedOffset(s string) (int, bool) {
	if s == "" {
		return 0, true
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

func clampRange(lo, hi, length int) (int, int) {
	if lo < 0 {
		lo = 0
	}
	if hi >= length {
		hi = length - 1
	}
	return lo, hi
}

func handlesEqual(a, b string) bool { return a == b }
