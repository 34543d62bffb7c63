package core

import "github.com/featherscript/feather/internal/core/hostops"

// fireVarTrace fires registered variable traces matching op ("read",
// "write") on key, most-recently-added first (LIFO), per spec.md
// sections 4.I and 5. Errors from read/write trace scripts propagate by
// leaving the interpreter result set to the trace's error; callers that
// need to surface this as a real ERROR should check the interpreter
// result themselves since getVar/setVar's own return shape has no error
// channel (mirroring the direct-call convention used for the "unknown"
// command hook).
func (in *Interp) fireVarTrace(key, localName, op string) {
	in.fireVarTraceImpl(key, localName, op, false)
}

func (in *Interp) fireVarTraceSuppressed(key, localName, op string) {
	in.fireVarTraceImpl(key, localName, op, true)
}

func (in *Interp) fireVarTraceImpl(key, localName, op string, suppressErrors bool) {
	regs := in.ops.TraceInfo(hostops.TraceVariable, key)
	if len(regs) == 0 || in.ops.Guarded() {
		return
	}
	savedResult := in.ops.GetResult()
	in.ops.SetGuarded(true)
	defer in.ops.SetGuarded(false)
	for i := len(regs) - 1; i >= 0; i-- {
		r := regs[i]
		if !opsContain(r.Ops, op) {
			continue
		}
		argv := append(in.ops.Items(r.Script),
			in.ops.Intern(localName), in.ops.Intern(""), in.ops.Intern(op))
		res := in.call(argv)
		if res.Code == hostops.Error && !suppressErrors {
			return
		}
	}
	if suppressErrors {
		in.ops.SetResult(savedResult)
	}
}

// fireExecTrace fires execution traces on command enter/leave, LIFO,
// per spec.md section 4.I. Execution-trace errors propagate, which here
// means leaving the interpreter result as the trace script set it; the
// caller (dispatch) checks nothing further since an exec trace's result
// code is discarded and does not abort dispatch — dispatch already invoked
// the real command by the time leave traces run.
func (in *Interp) fireExecTrace(name string, argv []hostops.Handle, enter bool, res hostops.Result) {
	regs := in.ops.TraceInfo(hostops.TraceExecution, name)
	if len(regs) == 0 || in.ops.Guarded() {
		return
	}
	cmdList := in.ops.NewList(argv...)
	op := "leave"
	if enter {
		op = "enter"
	}
	in.ops.SetGuarded(true)
	defer in.ops.SetGuarded(false)
	for i := len(regs) - 1; i >= 0; i-- {
		r := regs[i]
		if !opsContain(r.Ops, op) {
			continue
		}
		var extra []hostops.Handle
		if enter {
			extra = []hostops.Handle{cmdList, in.ops.Intern("enter")}
		} else {
			extra = []hostops.Handle{cmdList, in.ops.NewInt(int64(res.Code)), in.ops.GetResult(), in.ops.Intern("leave")}
		}
		call := append(in.ops.Items(r.Script), extra...)
		in.call(call)
	}
}

// fireCmdTrace fires command traces on rename/delete, FIFO order. Errors
// from a command trace script do not propagate; the interpreter result
// is restored to whatever it held before firing.
func (in *Interp) fireCmdTrace(oldName, newName, op string) {
	regs := in.ops.TraceInfo(hostops.TraceCommand, oldName)
	if len(regs) == 0 || in.ops.Guarded() {
		return
	}
	saved := in.ops.GetResult()
	in.ops.SetGuarded(true)
	defer in.ops.SetGuarded(false)
	for _, r := range regs {
		if !opsContain(r.Ops, op) {
			continue
		}
		argv := append(in.ops.Items(r.Script),
			in.ops.Intern(oldName), in.ops.Intern(newName), in.ops.Intern(op))
		in.call(argv)
	}
	in.ops.SetResult(saved)
}

func opsContain(ops []string, op string) bool {
	if len(ops) == 0 {
		return true
	}
	for _, o := range ops {
		if o == op {
			return true
		}
	}
	return false
}
