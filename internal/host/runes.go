package host

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/featherscript/feather/internal/core/hostops"
)

func (h *Host) RuneLen(hd hostops.Handle) int {
	return utf8.RuneCountInString(h.Bytes(hd))
}

func (h *Host) RuneAt(hd hostops.Handle, i int) (rune, bool) {
	s := h.Bytes(hd)
	if i < 0 {
		return 0, false
	}
	for idx, r := range s {
		_ = idx
		if i == 0 {
			return r, true
		}
		i--
	}
	return 0, false
}

func (h *Host) RuneSlice(hd hostops.Handle, lo, hi int) hostops.Handle {
	s := h.Bytes(hd)
	runes := []rune(s)
	lo, hi = clampRange(lo, hi, len(runes))
	return h.Intern(string(runes[lo:hi]))
}

func (h *Host) Fold(hd hostops.Handle) hostops.Handle {
	return h.Intern(strings.ToLower(h.Bytes(hd)))
}

func (h *Host) ToUpper(hd hostops.Handle) hostops.Handle {
	return h.Intern(strings.ToUpper(h.Bytes(hd)))
}

func (h *Host) ToLower(hd hostops.Handle) hostops.Handle {
	return h.Intern(strings.ToLower(h.Bytes(hd)))
}

func (h *Host) ToTitle(hd hostops.Handle) hostops.Handle {
	s := h.Bytes(hd)
	if s == "" {
		return h.Intern(s)
	}
	r := []rune(s)
	r[0] = unicode.ToTitle(r[0])
	for i := 1; i < len(r); i++ {
		r[i] = unicode.ToLower(r[i])
	}
	return h.Intern(string(r))
}

func (h *Host) IsClass(r rune, class hostops.RuneClass) bool {
	switch class {
	case hostops.ClassAlnum:
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	case hostops.ClassAlpha:
		return unicode.IsLetter(r)
	case hostops.ClassASCII:
		return r < 0x80
	case hostops.ClassControl:
		return unicode.IsControl(r)
	case hostops.ClassDigit:
		return unicode.IsDigit(r)
	case hostops.ClassGraph:
		return unicode.IsGraphic(r) && !unicode.IsSpace(r)
	case hostops.ClassLower:
		return unicode.IsLower(r)
	case hostops.ClassPrint:
		return unicode.IsPrint(r)
	case hostops.ClassPunct:
		return unicode.IsPunct(r)
	case hostops.ClassSpace:
		return unicode.IsSpace(r)
	case hostops.ClassUpper:
		return unicode.IsUpper(r)
	case hostops.ClassWordchar:
		return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
	case hostops.ClassXdigit:
		return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
	default:
		return false
	}
}
