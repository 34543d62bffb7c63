package core

import "github.com/featherscript/feather/internal/core/hostops"

// defaultMaxDepth mirrors Tcl's conventional default for
// interp recursionlimit: deep enough for realistic recursive procs,
// shallow enough that a runaway proc reports ERROR long before it could
// exhaust the Go goroutine stack.
const defaultMaxDepth = 1000

// Interp is the engine's entry point: a thin wrapper around a
// hostops.Ops implementation that adds parsing, substitution,
// dispatch, and the builtin command set. It implements hostops.Engine
// so builtins can recurse into script/expression evaluation without
// internal/core importing back into itself.
type Interp struct {
	ops      hostops.Ops
	maxDepth int

	// errorCode and errorInfo hold the return options from the most
	// recent ERROR result (spec.md section 7): set by error/throw/return
	// -code error, read back by catch's optionsVarName and try's trap
	// clause. Reset to "NONE" / the error message by any error that
	// doesn't supply its own, so catch never exposes a stale value from
	// an earlier, unrelated failure.
	errorCode hostops.Handle
	errorInfo hostops.Handle
}

// New constructs an Interp over ops and registers the full builtin
// command set into the global namespace, mirroring how the teacher's
// default host bootstraps its interpreter before any user script runs.
func New(ops hostops.Ops) *Interp {
	in := &Interp{ops: ops, maxDepth: defaultMaxDepth}
	in.errorCode = ops.Intern("NONE")
	in.errorInfo = ops.Intern("")
	registerBuiltins(in)
	return in
}

// SetMaxDepth overrides the recursion depth limit enforced by dispatch.
// n <= 0 is ignored. Exposed for embedders (cmd/feathersh's startup
// config) that need a tighter or looser bound than the default.
func (in *Interp) SetMaxDepth(n int) {
	if n > 0 {
		in.maxDepth = n
	}
}

func (in *Interp) Ops() hostops.Ops { return in.ops }

func (in *Interp) activeLevel() int { return in.ops.Active() }

func (in *Interp) setError(msg string) {
	h := in.ops.Intern(msg)
	in.ops.SetResult(h)
	in.errorCode = in.ops.Intern("NONE")
	in.errorInfo = h
}

func (in *Interp) setErrorf(format string, args ...any) {
	in.setError(errf(format, args...).Error())
}

// EvalScript is the script evaluator (spec.md section 4.D): parse one
// command at a time, substitute its words, dispatch, and stop on the
// first non-OK result code. global temporarily redirects lookups to the
// root frame for the duration of the call.
func (in *Interp) EvalScript(script hostops.Handle, global bool) hostops.Result {
	src := in.ops.Bytes(script)
	if trimmedEmpty(src) {
		in.ops.SetResult(in.ops.Intern(""))
		return hostops.Result{Code: hostops.OK}
	}

	if global {
		saved := in.ops.Active()
		in.ops.SetActive(0)
		defer in.ops.SetActive(saved)
	}

	p := newParser(src)
	in.ops.SetResult(in.ops.Intern(""))
	for {
		words, status, msg := p.next()
		if status == statusIncomplete || status == statusSyntaxError {
			in.setError(msg)
			return hostops.Result{Code: hostops.Error}
		}
		if words == nil {
			break
		}
		argv := make([]hostops.Handle, 0, len(words))
		for _, w := range words {
			txt, err := in.substWord(w)
			if err != nil {
				in.setError(err.Error())
				return hostops.Result{Code: hostops.Error}
			}
			argv = append(argv, in.ops.Intern(txt))
		}
		if len(argv) == 0 {
			continue
		}
		res := in.dispatch(argv)
		if res.Code != hostops.OK {
			return res
		}
	}
	return hostops.Result{Code: hostops.OK}
}

// dispatch resolves argv[0] to a builtin or proc and invokes it, per
// spec.md section 4.E.
func (in *Interp) dispatch(argv []hostops.Handle) hostops.Result {
	name := in.ops.Bytes(argv[0])
	ns := in.ops.GetNamespace(in.ops.Active())

	kind, fn, params, body, resolvedNS, ok := in.resolveCommand(ns, name)
	if !ok {
		return in.invokeUnknown(argv)
	}

	if in.ops.Size() >= in.maxDepth {
		in.setErrorf("too many nested evaluations (infinite loop?)")
		return hostops.Result{Code: hostops.Error}
	}

	// Builtins run in the caller's frame (apply and namespace eval push
	// their own); dispatch pushes a frame only for a proc call.
	caller := in.ops.Active()
	in.fireExecTrace(name, argv, true, hostops.Result{})
	var res hostops.Result
	switch kind {
	case hostops.CommandBuiltin:
		res = fn(in, argv[0], argv[1:])
	case hostops.CommandProc:
		level := in.ops.PushFrame(argv[0], argv[1:], resolvedNS)
		res = in.invokeProc(level, name, params, body, argv[1:])
		in.ops.PopFrame()
	}
	in.fireExecTrace(name, argv, false, res)
	in.ops.SetActive(caller)
	return res
}

// resolveCommand implements the qualified/unqualified resolution order
// from spec.md section 4.E.
func (in *Interp) resolveCommand(ns, name string) (hostops.CommandKind, hostops.BuiltinFunc, []hostops.ParamSpec, hostops.Handle, string, bool) {
	if containsNS(name) {
		abs := in.ops.Resolve(ns, parentNSOf(name))
		kind, fn, params, body, ok := in.ops.LookupQualified(abs, simpleNameOf(name))
		return kind, fn, params, body, abs, ok
	}
	return in.ops.Lookup(ns, name)
}

func (in *Interp) invokeUnknown(argv []hostops.Handle) hostops.Result {
	if h := in.ops.UnknownHandler(); h != nil {
		return h(in, argv[0], argv[1:])
	}
	in.setErrorf("invalid command name %q", in.ops.Bytes(argv[0]))
	return hostops.Result{Code: hostops.Error}
}

// EvalExpr evaluates expr's source, per spec.md section 4.H.
func (in *Interp) EvalExpr(expr hostops.Handle) hostops.Result {
	return in.evalExprHandle(expr)
}

// Uplevel evaluates script with the active frame temporarily redirected
// to level, restoring the saved active index on every exit path.
func (in *Interp) Uplevel(level int, script hostops.Handle) hostops.Result {
	saved := in.ops.Active()
	in.ops.SetActive(level)
	defer in.ops.SetActive(saved)
	return in.EvalScript(script, false)
}

// call invokes a command by name with already-substituted argument
// handles, used by code that recurses into dispatch directly (tailcall,
// expr's math-function calls, the trace hooks) without re-parsing a script.
func (in *Interp) call(argv []hostops.Handle) hostops.Result {
	return in.dispatch(argv)
}
