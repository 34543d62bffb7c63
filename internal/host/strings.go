package host

import (
	"regexp"
	"strings"

	"github.com/featherscript/feather/internal/core/hostops"
)

func (h *Host) Intern(s string) hostops.Handle {
	return h.store.alloc(newStringObject(s))
}

func (h *Host) Bytes(hd hostops.Handle) string {
	o := h.store.get(hd)
	if o == nil {
		return ""
	}
	return o.text(h)
}

func (h *Host) ByteLen(hd hostops.Handle) int {
	return len(h.Bytes(hd))
}

func (h *Host) ByteAt(hd hostops.Handle, i int) (byte, bool) {
	s := h.Bytes(hd)
	if i < 0 || i >= len(s) {
		return 0, false
	}
	return s[i], true
}

func (h *Host) ByteSlice(hd hostops.Handle, lo, hi int) hostops.Handle {
	s := h.Bytes(hd)
	lo, hi = clampRange(lo, hi, len(s))
	if lo >= hi {
		return h.Intern("")
	}
	return h.Intern(s[lo:hi])
}

func (h *Host) Concat(a, b hostops.Handle) hostops.Handle {
	return h.Intern(h.Bytes(a) + h.Bytes(b))
}

func (h *Host) Compare(a, b hostops.Handle) int {
	return strings.Compare(h.Bytes(a), h.Bytes(b))
}

func (h *Host) Equal(a, b hostops.Handle) bool {
	return h.Bytes(a) == h.Bytes(b)
}

func (h *Host) Match(pattern, s hostops.Handle, nocase bool) bool {
	p, str := h.Bytes(pattern), h.Bytes(s)
	if nocase {
		p, str = strings.ToLower(p), strings.ToLower(str)
	}
	return globMatch(p, str)
}

func (h *Host) RegexMatch(pattern, s hostops.Handle, nocase bool) (bool, []hostops.Handle, error) {
	pat := h.Bytes(pattern)
	if nocase {
		pat = "(?i)" + pat
	}
	re, err := regexp.Compile(pat)
	if err != nil {
		return false, nil, h.wrap(err, "compile regexp")
	}
	str := h.Bytes(s)
	m := re.FindStringSubmatch(str)
	if m == nil {
		return false, nil, nil
	}
	caps := make([]hostops.Handle, len(m))
	for i, g := range m {
		caps[i] = h.Intern(g)
	}
	return true, caps, nil
}

func clampRange(lo, hi, n int) (int, int) {
	if lo < 0 {
		lo = 0
	}
	if hi > n {
		hi = n
	}
	if lo > n {
		lo = n
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// globMatch implements TCL's "string match" glob dialect: '*' matches any
// run (including empty), '?' matches exactly one character, '[...]'
// matches a character class (with leading '^' negation and 'a-z' ranges),
// and '\' escapes the next character literally. This is hand-rolled
// rather than built on path/filepath.Match because TCL's dialect differs
// from shell globs (no '/' special-casing, bracket ranges behave
// differently, and '\' escaping inside brackets is required) — see
// DESIGN.md for why no corpus library covers this directly.
func globMatch(pattern, s string) bool {
	return globMatchBytes([]byte(pattern), []byte(s))
}

func globMatchBytes(p, s []byte) bool {
	var pi, si int
	var starPi, starSi int = -1, -1
	for si < len(s) {
		if pi < len(p) {
			switch p[pi] {
			case '*':
				starPi, starSi = pi, si
				pi++
				continue
			case '?':
				pi++
				si++
				continue
			case '\\':
				if pi+1 < len(p) && p[pi+1] == s[si] {
					pi += 2
					si++
					continue
				}
			case '[':
				if end, ok := matchBracket(p, pi, s[si]); ok {
					pi = end
					si++
					continue
				}
			default:
				if p[pi] == s[si] {
					pi++
					si++
					continue
				}
			}
		}
		if starPi >= 0 {
			starSi++
			si = starSi
			pi = starPi + 1
			continue
		}
		return false
	}
	for pi < len(p) && p[pi] == '*' {
		pi++
	}
	return pi == len(p)
}

// matchBracket parses a "[...]" class starting at p[start]=='[' and
// reports the index just past the closing ']' plus whether c matched.
func matchBracket(p []byte, start int, c byte) (int, bool) {
	i := start + 1
	neg := false
	if i < len(p) && (p[i] == '^') {
		neg = true
		i++
	}
	matched := false
	first := true
	for i < len(p) && (p[i] != ']' || first) {
		first = false
		lo := p[i]
		if lo == '\\' && i+1 < len(p) {
			i++
			lo = p[i]
		}
		if i+2 < len(p) && p[i+1] == '-' && p[i+2] != ']' {
			hi := p[i+2]
			if lo <= c && c <= hi {
				matched = true
			}
			i += 3
			continue
		}
		if lo == c {
			matched = true
		}
		i++
	}
	if i >= len(p) {
		return start + 1, false
	}
	end := i + 1 // past ']'
	if neg {
		matched = !matched
	}
	return end, matched
}
