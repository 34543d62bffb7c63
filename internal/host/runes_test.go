package host

import (
	"testing"

	"github.com/featherscript/feather/internal/core/hostops"
)

func TestRuneLenCountsCodepointsNotBytes(t *testing.T) {
	h := newTestHost()
	hd := h.Intern("café")
	if got := h.RuneLen(hd); got != 4 {
		t.Errorf("RuneLen = %d, want 4", got)
	}
}

func TestRuneAtAndRuneSlice(t *testing.T) {
	h := newTestHost()
	hd := h.Intern("hello")
	r, ok := h.RuneAt(hd, 1)
	if !ok || r != 'e' {
		t.Errorf("RuneAt(1) = (%c, %v)", r, ok)
	}
	_, ok = h.RuneAt(hd, -1)
	if ok {
		t.Error("expected RuneAt(-1) to fail")
	}
	sliced := h.RuneSlice(hd, 1, 3)
	if h.Bytes(sliced) != "el" {
		t.Errorf("RuneSlice(1,3) = %q", h.Bytes(sliced))
	}
}

func TestToUpperToLowerToTitle(t *testing.T) {
	h := newTestHost()
	if got := h.Bytes(h.ToUpper(h.Intern("abc"))); got != "ABC" {
		t.Errorf("ToUpper = %q", got)
	}
	if got := h.Bytes(h.ToLower(h.Intern("ABC"))); got != "abc" {
		t.Errorf("ToLower = %q", got)
	}
	if got := h.Bytes(h.ToTitle(h.Intern("hELLO"))); got != "Hello" {
		t.Errorf("ToTitle = %q", got)
	}
}

func TestIsClassCoversCommonClasses(t *testing.T) {
	h := newTestHost()
	cases := []struct {
		r     rune
		class hostops.RuneClass
		want  bool
	}{
		{'a', hostops.ClassAlpha, true},
		{'1', hostops.ClassAlpha, false},
		{'1', hostops.ClassDigit, true},
		{' ', hostops.ClassSpace, true},
		{'A', hostops.ClassUpper, true},
		{'a', hostops.ClassLower, true},
		{'_', hostops.ClassWordchar, true},
		{'f', hostops.ClassXdigit, true},
		{'g', hostops.ClassXdigit, false},
	}
	for _, c := range cases {
		if got := h.IsClass(c.r, c.class); got != c.want {
			t.Errorf("IsClass(%q, %v) = %v, want %v", c.r, c.class, got, c.want)
		}
	}
}
