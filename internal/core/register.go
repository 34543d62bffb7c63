package core

import "github.com/featherscript/feather/internal/core/hostops"

// nativeFunc is the internal builtin-function signature: simpler than
// hostops.BuiltinFunc because every builtin in this package is only ever
// invoked through an *Interp, never through an arbitrary hostops.Engine.
// wrap bridges the two at registration time.
type nativeFunc func(in *Interp, args []hostops.Handle) hostops.Result

func wrap(fn nativeFunc) hostops.BuiltinFunc {
	return func(e hostops.Engine, cmd hostops.Handle, args []hostops.Handle) hostops.Result {
		return fn(e.(*Interp), args)
	}
}

// registerBuiltins installs the full command set from spec.md section 4.J
// into the global namespace (and tcl::mathfunc for expr's function calls),
// mirroring how the teacher's default host bootstraps its interpreter
// before any user script runs.
func registerBuiltins(in *Interp) {
	reg := func(name string, fn nativeFunc) {
		in.ops.RegisterBuiltin("::", name, wrap(fn))
	}

	// Variables and control flow.
	reg("set", biSet)
	reg("unset", biUnset)
	reg("incr", biIncr)
	reg("global", biGlobal)
	reg("variable", biVariable)
	reg("append", biAppend)
	reg("lappend", biLappend)
	reg("break", biBreak)
	reg("continue", biContinue)
	reg("return", biReturn)
	reg("error", biError)
	reg("throw", biThrow)
	reg("catch", biCatch)
	reg("try", biTry)
	reg("if", biIf)
	reg("while", biWhile)
	reg("for", biFor)
	reg("foreach", biForeach)
	reg("switch", biSwitch)
	reg("tailcall", biTailcall)

	// Lists.
	reg("list", biList)
	reg("llength", biLlength)
	reg("lindex", biLindex)
	reg("linsert", biLinsert)
	reg("lrange", biLrange)
	reg("lreplace", biLreplace)
	reg("lrepeat", biLrepeat)
	reg("lreverse", biLreverse)
	reg("lsort", biLsort)
	reg("lsearch", biLsearch)
	reg("lassign", biLassign)
	reg("lset", biLset)
	reg("lmap", biLmap)
	reg("join", biJoin)
	reg("split", biSplit)
	reg("concat", biConcat)

	// Dicts.
	reg("dict", biDict)

	// Strings.
	reg("string", biString)

	// Metaprogramming and introspection.
	reg("proc", biProc)
	reg("rename", biRename)
	reg("upvar", biUpvar)
	reg("uplevel", biUplevel)
	reg("apply", biApply)
	reg("namespace", biNamespace)
	reg("trace", biTrace)
	reg("expr", biExpr)
	reg("info", biInfo)

	in.ops.SetUnknownHandler(wrap(biUnknown))

	registerMathFuncs(in)
}

func registerMathFuncs(in *Interp) {
	regFn := func(name string, fn nativeFunc) {
		in.ops.RegisterBuiltin("::tcl::mathfunc", name, wrap(fn))
	}

	regFn("sqrt", mathFunc1(hostops.OpSqrt))
	regFn("exp", mathFunc1(hostops.OpExp))
	regFn("log", mathFunc1(hostops.OpLog))
	regFn("log10", mathFunc1(hostops.OpLog10))
	regFn("sin", mathFunc1(hostops.OpSin))
	regFn("cos", mathFunc1(hostops.OpCos))
	regFn("tan", mathFunc1(hostops.OpTan))
	regFn("asin", mathFunc1(hostops.OpAsin))
	regFn("acos", mathFunc1(hostops.OpAcos))
	regFn("atan", mathFunc1(hostops.OpAtan))
	regFn("sinh", mathFunc1(hostops.OpSinh))
	regFn("cosh", mathFunc1(hostops.OpCosh))
	regFn("tanh", mathFunc1(hostops.OpTanh))
	regFn("floor", mathFunc1(hostops.OpFloor))
	regFn("ceil", mathFunc1(hostops.OpCeil))
	regFn("atan2", mathFunc2(hostops.OpAtan2))
	regFn("pow", mathFunc2(hostops.OpPow))
	regFn("fmod", mathFunc2(hostops.OpFmod))
	regFn("hypot", mathFunc2(hostops.OpHypot))

	regFn("abs", biMathAbs)
	regFn("bool", biMathBool)
	regFn("double", biMathDouble)
	regFn("int", biMathInt)
	regFn("entier", biMathEntier)
	regFn("wide", biMathWide)
	regFn("round", biMathRound)
	regFn("max", biMathMax)
	regFn("min", biMathMin)
	regFn("isfinite", biMathIsFinite)
	regFn("isinf", biMathIsInf)
	regFn("isnan", classifyPredicate(hostops.ClassNaN))
	regFn("isnormal", classifyPredicate(hostops.ClassNormal))
	regFn("issubnormal", classifyPredicate(hostops.ClassSubnormal))
	regFn("isunordered", biMathIsNaNPair)
}
