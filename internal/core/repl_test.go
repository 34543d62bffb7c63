package core

import "testing"

func TestCheckCompleteAcceptsFinishedScript(t *testing.T) {
	complete, msg := CheckComplete(`set x 1`)
	if !complete || msg != "" {
		t.Errorf("CheckComplete(set x 1) = (%v, %q)", complete, msg)
	}
}

func TestCheckCompleteFlagsUnclosedBrace(t *testing.T) {
	complete, msg := CheckComplete(`if {1} {`)
	if complete {
		t.Error("expected an unclosed brace to be reported incomplete")
	}
	if msg == "" {
		t.Error("expected a non-empty message for incomplete input")
	}
}

func TestCheckCompleteFlagsUnclosedQuote(t *testing.T) {
	complete, _ := CheckComplete(`set x "hello`)
	if complete {
		t.Error("expected an unclosed quote to be reported incomplete")
	}
}

func TestCheckCompleteAcceptsMultipleStatements(t *testing.T) {
	complete, _ := CheckComplete("set x 1\nset y 2\n")
	if !complete {
		t.Error("expected two complete statements to be reported complete")
	}
}

func TestCheckCompleteTreatsSyntaxErrorAsComplete(t *testing.T) {
	complete, _ := CheckComplete(`set x {a}b`)
	if !complete {
		t.Error("a syntax error should be reported complete (nothing more to read)")
	}
}
