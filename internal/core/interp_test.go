package core

import (
	"github.com/hashicorp/go-hclog"

	"github.com/featherscript/feather/internal/core/hostops"
	"github.com/featherscript/feather/internal/host"
)

func newTestInterp() *Interp {
	h := host.NewHost(hclog.NewNullLogger())
	return New(h)
}

// evalString runs src as a top-level script and returns the string result
// and the result code, the shape every test in this file checks against.
func (in *Interp) evalString(src string) (string, hostops.ResultCode) {
	res := in.EvalScript(in.ops.Intern(src), false)
	return in.ops.Bytes(in.ops.GetResult()), res.Code
}
