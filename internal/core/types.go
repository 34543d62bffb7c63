package core

import (
	"fmt"

	"github.com/featherscript/feather/internal/core/hostops"
)

// parseStatus distinguishes a clean end-of-command from input that needs
// more bytes before it can be parsed, per spec.md section 4.B's failure
// model.
type parseStatus int

const (
	statusComplete parseStatus = iota
	statusIncomplete
	statusSyntaxError
)

// word is one parsed word, tagged with whether its text still needs the
// substitution engine applied.
type word struct {
	literal bool // true: braced word, content is final as-is
	text    string
}

// scriptError is the Go-level error type raised by parse and substitution
// failures. Builtins format their own Tcl-conventional messages directly
// into the interpreter result; scriptError exists for the small number of
// places core code needs to return a Go error up through a call chain
// before it has an interpreter handy to set a result on.
type scriptError struct {
	msg string
}

func (e *scriptError) Error() string { return e.msg }

func errf(format string, args ...any) error {
	return &scriptError{msg: fmt.Sprintf(format, args...)}
}

// flow pairs a result code with, for RETURN, a -level/-code payload.
// Statement evaluation does not use it: EvalScript, dispatch and the
// builtins pass hostops.Result instead.
type flow struct {
	code       hostops.ResultCode
	returnCode int // -code value on a RETURN that hasn't reached its target level yet
	level      int // remaining uplevel count for a RETURN in flight
}

func ok() flow      { return flow{code: hostops.OK} }
func isErr(f flow) bool { return f.code == hostops.Error }
