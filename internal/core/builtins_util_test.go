package core

import "testing"

func TestResolveIndex(t *testing.T) {
	cases := []struct {
		s      string
		length int
		want   int
		ok     bool
	}{
		{"0", 5, 0, true},
		{"end", 5, 4, true},
		{"end-1", 5, 3, true},
		{"end+1", 5, 5, true},
		{"2+1", 5, 3, true},
		{"-1", 5, -1, true},
		{"bogus", 5, 0, false},
	}
	for _, c := range cases {
		got, ok := resolveIndex(c.s, c.length)
		if ok != c.ok {
			t.Errorf("resolveIndex(%q, %d) ok = %v, want %v", c.s, c.length, ok, c.ok)
			continue
		}
		if ok && got != c.want {
			t.Errorf("resolveIndex(%q, %d) = %d, want %d", c.s, c.length, got, c.want)
		}
	}
}

func TestClampRange(t *testing.T) {
	lo, hi := clampRange(-3, 100, 5)
	if lo != 0 || hi != 4 {
		t.Errorf("clampRange(-3, 100, 5) = (%d, %d), want (0, 4)", lo, hi)
	}
}
