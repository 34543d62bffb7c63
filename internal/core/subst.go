package core

import (
	"strconv"
	"strings"

	"github.com/featherscript/feather/internal/core/hostops"
)

// substWord applies backslash, variable, and command substitution to a
// single parsed word's raw text, per spec.md section 4.C. A literal
// (braced) word is returned unchanged.
func (in *Interp) substWord(w word) (string, error) {
	if w.literal {
		return w.text, nil
	}
	return in.substSpan(w.text)
}

// substSpan substitutes backslashes, $variables, and [commands] in src.
// Used for word bodies, expr string primaries, and anywhere else spec.md
// describes "substitutions applied."
func (in *Interp) substSpan(src string) (string, error) {
	var b strings.Builder
	i := 0
	for i < len(src) {
		c := src[i]
		switch c {
		case '\\':
			s, n, err := unescapeAt(src, i)
			if err != nil {
				return "", err
			}
			b.WriteString(s)
			i += n
		case '$':
			s, n, err := in.substVariable(src, i)
			if err != nil {
				return "", err
			}
			b.WriteString(s)
			i += n
		case '[':
			s, n, err := in.substCommand(src, i)
			if err != nil {
				return "", err
			}
			b.WriteString(s)
			i += n
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String(), nil
}

// substVariable substitutes a $name or ${name} reference starting at
// src[i] ('$'). Returns the substituted text and bytes consumed. A bare
// '$' not followed by a valid name character is passed through literally,
// matching Tcl's permissive scanning.
func (in *Interp) substVariable(src string, i int) (string, int, error) {
	start := i
	i++ // skip '$'
	if i < len(src) && src[i] == '{' {
		end := strings.IndexByte(src[i+1:], '}')
		if end < 0 {
			return "", 0, errf("missing close-brace for variable name")
		}
		name := src[i+1 : i+1+end]
		val, err := in.readVar(name)
		if err != nil {
			return "", 0, err
		}
		return val, (i + 1 + end + 1) - start, nil
	}
	j := i
	for j < len(src) && isVarNameByte(src[j]) {
		j++
	}
	// Allow "::" to appear as part of a qualified variable name.
	for j+1 < len(src) && src[j] == ':' && src[j+1] == ':' {
		j += 2
		for j < len(src) && isVarNameByte(src[j]) {
			j++
		}
	}
	if j == i {
		return "$", 1, nil
	}
	name := src[i:j]
	val, err := in.readVar(name)
	if err != nil {
		return "", 0, err
	}
	return val, j - start, nil
}

// substVariableSkippable behaves like substVariable but, when skip is
// true, only advances the cursor past the $name token without reading
// the variable or firing a trace — used by expr's skip mode.
func (in *Interp) substVariableSkippable(src string, i int, skip bool) (string, int, error) {
	if !skip {
		return in.substVariable(src, i)
	}
	start := i
	i++
	if i < len(src) && src[i] == '{' {
		end := strings.IndexByte(src[i+1:], '}')
		if end < 0 {
			return "", 0, errf("missing close-brace for variable name")
		}
		return "", (i + 1 + end + 1) - start, nil
	}
	j := i
	for j < len(src) && isVarNameByte(src[j]) {
		j++
	}
	for j+1 < len(src) && src[j] == ':' && src[j+1] == ':' {
		j += 2
		for j < len(src) && isVarNameByte(src[j]) {
			j++
		}
	}
	if j == i {
		return "", 1, nil
	}
	return "", j - start, nil
}

func isVarNameByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// substCommand substitutes a [...] bracketed command starting at src[i]
// ('['). The enclosed source is evaluated recursively as a script.
func (in *Interp) substCommand(src string, i int) (string, int, error) {
	start := i
	i++
	depth := 1
	contentStart := i
	for i < len(src) {
		switch src[i] {
		case '\\':
			i += 2
			continue
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				script := src[contentStart:i]
				res := in.EvalScript(in.ops.Intern(script), false)
				if res.Code == hostops.Error {
					return "", 0, errf("%s", in.ops.Bytes(in.ops.GetResult()))
				}
				return in.ops.Bytes(in.ops.GetResult()), i + 1 - start, nil
			}
			i++
			continue
		case '{':
			n := skipBalanced(src, i, '{', '}')
			if n < 0 {
				return "", 0, errf("missing close-brace")
			}
			i = n
			continue
		case '"':
			n := skipQuoted(src, i)
			if n < 0 {
				return "", 0, errf("missing \"")
			}
			i = n
			continue
		}
		i++
	}
	return "", 0, errf("missing close-bracket")
}

// skipBalanced returns the index just past the matching close for a
// balanced open/close pair starting at src[i] == open, or -1 if src ends
// first. Backslash escapes the next byte for balance purposes only.
func skipBalanced(src string, i int, open, close byte) int {
	depth := 0
	for i < len(src) {
		c := src[i]
		if c == '\\' {
			i += 2
			continue
		}
		if c == open {
			depth++
		} else if c == close {
			depth--
			if depth == 0 {
				return i + 1
			}
		}
		i++
	}
	return -1
}

func skipQuoted(src string, i int) int {
	i++
	for i < len(src) {
		if src[i] == '\\' {
			i += 2
			continue
		}
		if src[i] == '"' {
			return i + 1
		}
		i++
	}
	return -1
}

// readVar resolves name through the variable resolver (vars.go), firing
// read traces, and returns its string form.
func (in *Interp) readVar(name string) (string, error) {
	h, ok := in.getVar(in.activeLevel(), name)
	if !ok {
		return "", errf("can't read %q: no such variable", name)
	}
	return in.ops.Bytes(h), nil
}

// unescapeAt decodes one backslash escape starting at src[i] ('\\'),
// returning the replacement text and bytes consumed.
func unescapeAt(src string, i int) (string, int, error) {
	if i+1 >= len(src) {
		return "\\", 1, nil
	}
	c := src[i+1]
	switch c {
	case 'n':
		return "\n", 2, nil
	case 't':
		return "\t", 2, nil
	case 'r':
		return "\r", 2, nil
	case 'a':
		return "\a", 2, nil
	case 'f':
		return "\f", 2, nil
	case 'v':
		return "\v", 2, nil
	case '\\':
		return "\\", 2, nil
	case '"':
		return "\"", 2, nil
	case '{':
		return "{", 2, nil
	case '}':
		return "}", 2, nil
	case '$':
		return "$", 2, nil
	case '[':
		return "[", 2, nil
	case ']':
		return "]", 2, nil
	case '\n':
		// Line continuation: backslash-newline (plus leading whitespace on
		// the next line) collapses to a single space.
		j := i + 2
		for j < len(src) && (src[j] == ' ' || src[j] == '\t') {
			j++
		}
		return " ", j - i, nil
	case 'x':
		return unescapeHex(src, i)
	case 'u':
		return unescapeUnicode(src, i)
	default:
		if c >= '0' && c <= '7' {
			return unescapeOctal(src, i)
		}
		return string(c), 2, nil
	}
}

func unescapeHex(src string, i int) (string, int, error) {
	j := i + 2
	start := j
	for j < len(src) && j-start < 2 && isHexByte(src[j]) {
		j++
	}
	if j == start {
		return "x", 2, nil
	}
	v, err := strconv.ParseUint(src[start:j], 16, 32)
	if err != nil {
		return "", 0, errf("invalid hex escape")
	}
	return string(rune(v)), j - i, nil
}

func unescapeUnicode(src string, i int) (string, int, error) {
	j := i + 2
	start := j
	for j < len(src) && j-start < 4 && isHexByte(src[j]) {
		j++
	}
	if j == start {
		return "u", 2, nil
	}
	v, err := strconv.ParseUint(src[start:j], 16, 32)
	if err != nil {
		return "", 0, errf("invalid unicode escape")
	}
	return string(rune(v)), j - i, nil
}

func unescapeOctal(src string, i int) (string, int, error) {
	j := i + 1
	start := j
	for j < len(src) && j-start < 3 && src[j] >= '0' && src[j] <= '7' {
		j++
	}
	v, err := strconv.ParseUint(src[start:j], 8, 16)
	if err != nil {
		return "", 0, errf("invalid octal escape")
	}
	return string(rune(v)), j - i, nil
}

func isHexByte(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
