package main

import (
	"io"
	"os"
	"testing"

	"github.com/featherscript/feather"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	old := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fn()

	w.Close()
	out, _ := io.ReadAll(r)
	return string(out)
}

func TestCmdPutsWritesLineWithNewline(t *testing.T) {
	i := feather.New()
	cmd := i.String("puts")
	out := captureStdout(t, func() {
		cmdPuts(i, cmd, []*feather.Obj{i.String("hello")})
	})
	if out != "hello\n" {
		t.Errorf("out = %q", out)
	}
}

func TestCmdPutsNonewlineSuppressesTrailingNewline(t *testing.T) {
	i := feather.New()
	cmd := i.String("puts")
	out := captureStdout(t, func() {
		cmdPuts(i, cmd, []*feather.Obj{i.String("-nonewline"), i.String("hi")})
	})
	if out != "hi" {
		t.Errorf("out = %q", out)
	}
}

func TestCmdPutsWrongArgsReturnsError(t *testing.T) {
	i := feather.New()
	i.RegisterCommand("puts", cmdPuts)
	captureStdout(t, func() {
		if _, err := i.Eval("puts"); err == nil {
			t.Error("expected an error for puts with no arguments")
		}
	})
}
