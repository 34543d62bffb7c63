package host

import "testing"

func TestQuoteListElementBracesWhenNeeded(t *testing.T) {
	cases := map[string]string{
		"":        "{}",
		"plain":   "plain",
		"a b":     "{a b}",
		"a{b}c":   "{a{b}c}",
		"un{bal":  `un\{bal`,
	}
	for in, want := range cases {
		if got := quoteListElement(in); got != want {
			t.Errorf("quoteListElement(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCanBraceRejectsUnbalancedBraces(t *testing.T) {
	if canBrace("a{b") {
		t.Error("expected unbalanced braces to reject bracing")
	}
	if canBrace("a}b") {
		t.Error("expected stray close brace to reject bracing")
	}
	if !canBrace("a{b}c") {
		t.Error("expected balanced braces to allow bracing")
	}
	if canBrace(`a\`) {
		t.Error("expected trailing backslash to reject bracing")
	}
}

func TestNeedsQuotingDetectsSpecialChars(t *testing.T) {
	if needsQuoting("plain") {
		t.Error("plain word should not need quoting")
	}
	for _, s := range []string{"a b", "a;b", "a$b", "a[b", "a]b", "{a", "\"a", "#a"} {
		if !needsQuoting(s) {
			t.Errorf("needsQuoting(%q) = false, want true", s)
		}
	}
}

func TestObjectTypeNameReflectsKind(t *testing.T) {
	h := newTestHost()
	cases := map[string]string{
		"hello": "string",
	}
	for s, want := range cases {
		hd := h.Intern(s)
		if got := h.store.get(hd).typeName(); got != want {
			t.Errorf("typeName(%q) = %q, want %q", s, got, want)
		}
	}
	ih := h.NewInt(5)
	if got := h.store.get(ih).typeName(); got != "int" {
		t.Errorf("typeName(int) = %q", got)
	}
	lh := h.NewList(h.Intern("a"))
	if got := h.store.get(lh).typeName(); got != "list" {
		t.Errorf("typeName(list) = %q", got)
	}
	dh := h.NewDict()
	if got := h.store.get(dh).typeName(); got != "dict" {
		t.Errorf("typeName(dict) = %q", got)
	}
}
