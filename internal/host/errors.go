package host

import "github.com/pkg/errors"

// errUnknownMathOp should never surface to a script; it indicates the
// engine passed a hostops.MathOp the host doesn't implement, which is a
// wiring bug rather than a user error.
var errUnknownMathOp = errors.New("host: unknown math operation")

// errOddDict signals an odd element count when parsing a string as a dict.
var errOddDict = errors.New("host: missing value to go with key")

// wrap attaches a pkg/errors stack to host-boundary failures (malformed
// list or dict text, a regex that does not compile) and logs the root
// cause via errors.Cause so an embedder's go-hclog sink sees the original
// failure rather than just the wrapping message. Builtins that surface
// such an error put its full message, wrapping context included, into
// the TCL result.
func (h *Host) wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	wrapped := errors.Wrap(err, msg)
	h.log.Debug("host boundary error", "context", msg, "cause", errors.Cause(wrapped))
	return wrapped
}
