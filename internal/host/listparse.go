package host

import (
	"fmt"
	"strings"
)

// splitTclList splits a string into list elements using TCL's list
// syntax: whitespace-separated words, '{'-braced words taken verbatim
// (balanced, backslash-escaped braces don't count), and backslash escapes
// recognized in bare words so an escaped space doesn't end the word.
func splitTclList(s string) ([]string, error) {
	var out []string
	i, n := 0, len(s)
	for {
		for i < n && isListSpace(s[i]) {
			i++
		}
		if i >= n {
			break
		}
		switch s[i] {
		case '{':
			start := i + 1
			depth := 1
			i++
			for i < n && depth > 0 {
				switch s[i] {
				case '\\':
					i++
				case '{':
					depth++
				case '}':
					depth--
				}
				i++
			}
			if depth != 0 {
				return nil, fmt.Errorf("unmatched open brace in list")
			}
			out = append(out, s[start:i-1])
		case '"':
			start := i + 1
			i++
			for i < n && s[i] != '"' {
				if s[i] == '\\' {
					i++
				}
				i++
			}
			if i >= n {
				return nil, fmt.Errorf("unmatched open quote in list")
			}
			raw := s[start:i]
			i++
			out = append(out, unescapeListWord(raw))
		default:
			start := i
			var buf strings.Builder
			hadEscape := false
			for i < n && !isListSpace(s[i]) {
				if s[i] == '\\' && i+1 < n {
					hadEscape = true
					buf.WriteByte(unescapeOne(s, &i))
					continue
				}
				buf.WriteByte(s[i])
				i++
			}
			if hadEscape {
				out = append(out, buf.String())
			} else {
				out = append(out, s[start:i])
			}
		}
	}
	return out, nil
}

func isListSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func unescapeListWord(s string) string {
	var b strings.Builder
	i := 0
	for i < len(s) {
		if s[i] == '\\' && i+1 < len(s) {
			b.WriteByte(unescapeOne(s, &i))
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// unescapeOne consumes one backslash escape starting at s[*i]=='\\' and
// returns the literal byte it represents, advancing *i past it. It only
// handles the single-byte escapes relevant to list/dict re-parsing;
// \x/\u/\NNN escapes are handled by the substitution engine, not here.
func unescapeOne(s string, i *int) byte {
	j := *i + 1
	if j >= len(s) {
		*i = j
		return '\\'
	}
	c := s[j]
	*i = j + 1
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		return c
	}
}
