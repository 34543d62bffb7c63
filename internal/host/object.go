package host

import (
	"strconv"
	"strings"

	"github.com/featherscript/feather/internal/core/hostops"
)

// objKind records an object's preferred internal representation. A kind
// other than kindString means the object shimmers: it carries both a
// string and a typed representation, and the string is regenerated from
// the typed side lazily, on demand.
type objKind uint8

const (
	kindString objKind = iota
	kindInt
	kindDouble
	kindList
	kindDict
)

// object is the host's value representation: a string plus at most one
// cached numeric or collection representation, exactly as section 3 of
// the specification describes. The string is the source of truth for
// kindString objects and is regenerated on demand for the others.
type object struct {
	kind objKind

	str      string
	strValid bool

	i int64
	f float64

	list []hostops.Handle

	dictKeys []string
	dictVals map[string]hostops.Handle
	dictKeyH map[string]hostops.Handle // key string -> interned key handle, for Iterate/Keys
}

func newStringObject(s string) *object {
	return &object{kind: kindString, str: s, strValid: true}
}

func newIntObject(v int64) *object {
	return &object{kind: kindInt, i: v}
}

func newDoubleObject(v float64) *object {
	return &object{kind: kindDouble, f: v}
}

func newListObject(items []hostops.Handle) *object {
	cp := make([]hostops.Handle, len(items))
	copy(cp, items)
	return &object{kind: kindList, list: cp}
}

func newDictObject() *object {
	return &object{kind: kindDict, dictVals: map[string]hostops.Handle{}, dictKeyH: map[string]hostops.Handle{}}
}

// text returns the object's string representation, materializing it from
// the typed representation if necessary and caching the result.
func (o *object) text(h *Host) string {
	if o.strValid {
		return o.str
	}
	switch o.kind {
	case kindInt:
		o.str = strconv.FormatInt(o.i, 10)
	case kindDouble:
		o.str = formatDouble(o.f)
	case kindList:
		o.str = formatList(h, o.list)
	case kindDict:
		o.str = formatDict(h, o.dictKeys, o.dictVals)
	default:
		o.str = ""
	}
	o.strValid = true
	return o.str
}

func (o *object) invalidate() {
	o.strValid = false
}

func (o *object) typeName() string {
	switch o.kind {
	case kindInt:
		return "int"
	case kindDouble:
		return "double"
	case kindList:
		return "list"
	case kindDict:
		return "dict"
	default:
		return "string"
	}
}

func formatList(h *Host, items []hostops.Handle) string {
	var b strings.Builder
	for idx, it := range items {
		if idx > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(quoteListElement(h.Bytes(it)))
	}
	return b.String()
}

func formatDict(h *Host, keys []string, vals map[string]hostops.Handle) string {
	var b strings.Builder
	for idx, k := range keys {
		if idx > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(quoteListElement(k))
		b.WriteByte(' ')
		b.WriteString(quoteListElement(h.Bytes(vals[k])))
	}
	return b.String()
}

// quoteListElement braces an element if needed so the list's string form
// round-trips through the list parser. This mirrors the quoting rules the
// teacher's DictType.UpdateString applies, generalized to lists.
func quoteListElement(s string) string {
	if s == "" {
		return "{}"
	}
	if !needsQuoting(s) {
		return s
	}
	if canBrace(s) {
		return "{" + s + "}"
	}
	return backslashQuote(s)
}

func needsQuoting(s string) bool {
	if s == "" {
		return true
	}
	switch s[0] {
	case '{', '"', '$', '[', ']', ';', '#':
		return true
	}
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '{', '}', '"', '$', '[', ']', ';', '\\':
			return true
		}
	}
	return false
}

func canBrace(s string) bool {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0 && !strings.HasSuffix(s, "\\")
}

func backslashQuote(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '{', '}', '"', '$', '[', ']', ';', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
