package core

import "github.com/featherscript/feather/internal/core/hostops"

// mathFunc1 wraps a one-argument tcl::mathfunc entry delegating to
// hostops.DoubleOps.Math, per spec.md section 4.J's math function table.
func mathFunc1(op hostops.MathOp) func(in *Interp, args []hostops.Handle) hostops.Result {
	return func(in *Interp, args []hostops.Handle) hostops.Result {
		if len(args) != 1 {
			return wrongArgs(in, "math function takes one argument")
		}
		a, ok := asDouble(in, args[0])
		if !ok {
			return errResult(in, "expected number but got %q", in.ops.Bytes(args[0]))
		}
		v, err := in.ops.Math(op, a, 0)
		if err != nil {
			return errResult(in, "%s", err.Error())
		}
		return okResult(in, in.ops.NewDouble(v))
	}
}

func mathFunc2(op hostops.MathOp) func(in *Interp, args []hostops.Handle) hostops.Result {
	return func(in *Interp, args []hostops.Handle) hostops.Result {
		if len(args) != 2 {
			return wrongArgs(in, "math function takes two arguments")
		}
		a, ok1 := asDouble(in, args[0])
		b, ok2 := asDouble(in, args[1])
		if !ok1 || !ok2 {
			return errResult(in, "expected number as argument")
		}
		v, err := in.ops.Math(op, a, b)
		if err != nil {
			return errResult(in, "%s", err.Error())
		}
		return okResult(in, in.ops.NewDouble(v))
	}
}

func biMathAbs(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) != 1 {
		return wrongArgs(in, "abs arg")
	}
	if iv, ok := asInt(in, args[0]); ok {
		if iv < 0 {
			iv = -iv
		}
		return okResult(in, in.ops.NewInt(iv))
	}
	d, ok := asDouble(in, args[0])
	if !ok {
		return errResult(in, "expected number but got %q", in.ops.Bytes(args[0]))
	}
	v, err := in.ops.Math(hostops.OpAbs, d, 0)
	if err != nil {
		return errResult(in, "%s", err.Error())
	}
	return okResult(in, in.ops.NewDouble(v))
}

func biMathBool(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) != 1 {
		return wrongArgs(in, "bool arg")
	}
	return okResult(in, in.ops.NewInt(boolInt(in.truthy(args[0]))))
}

func biMathDouble(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) != 1 {
		return wrongArgs(in, "double arg")
	}
	d, ok := asDouble(in, args[0])
	if !ok {
		return errResult(in, "expected number but got %q", in.ops.Bytes(args[0]))
	}
	return okResult(in, in.ops.NewDouble(d))
}

func biMathInt(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) != 1 {
		return wrongArgs(in, "int arg")
	}
	if iv, ok := asInt(in, args[0]); ok {
		return okResult(in, in.ops.NewInt(iv))
	}
	d, ok := asDouble(in, args[0])
	if !ok {
		return errResult(in, "expected number but got %q", in.ops.Bytes(args[0]))
	}
	return okResult(in, in.ops.NewInt(int64(d)))
}

func biMathEntier(in *Interp, args []hostops.Handle) hostops.Result {
	return biMathInt(in, args)
}

func biMathWide(in *Interp, args []hostops.Handle) hostops.Result {
	return biMathInt(in, args)
}

func biMathRound(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) != 1 {
		return wrongArgs(in, "round arg")
	}
	if iv, ok := asInt(in, args[0]); ok {
		return okResult(in, in.ops.NewInt(iv))
	}
	d, ok := asDouble(in, args[0])
	if !ok {
		return errResult(in, "expected number but got %q", in.ops.Bytes(args[0]))
	}
	v, err := in.ops.Math(hostops.OpRound, d, 0)
	if err != nil {
		return errResult(in, "%s", err.Error())
	}
	return okResult(in, in.ops.NewInt(int64(v)))
}

func biMathMax(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) == 0 {
		return wrongArgs(in, "max arg ?arg ...?")
	}
	best := args[0]
	bestV, ok := asDouble(in, best)
	if !ok {
		return errResult(in, "expected number but got %q", in.ops.Bytes(best))
	}
	for _, a := range args[1:] {
		v, ok := asDouble(in, a)
		if !ok {
			return errResult(in, "expected number but got %q", in.ops.Bytes(a))
		}
		if v > bestV {
			best, bestV = a, v
		}
	}
	return okResult(in, best)
}

func biMathMin(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) == 0 {
		return wrongArgs(in, "min arg ?arg ...?")
	}
	best := args[0]
	bestV, ok := asDouble(in, best)
	if !ok {
		return errResult(in, "expected number but got %q", in.ops.Bytes(best))
	}
	for _, a := range args[1:] {
		v, ok := asDouble(in, a)
		if !ok {
			return errResult(in, "expected number but got %q", in.ops.Bytes(a))
		}
		if v < bestV {
			best, bestV = a, v
		}
	}
	return okResult(in, best)
}

func classifyPredicate(class hostops.DoubleClass) func(in *Interp, args []hostops.Handle) hostops.Result {
	return func(in *Interp, args []hostops.Handle) hostops.Result {
		if len(args) != 1 {
			return wrongArgs(in, "predicate arg")
		}
		d, ok := asDouble(in, args[0])
		if !ok {
			return errResult(in, "expected number but got %q", in.ops.Bytes(args[0]))
		}
		return okResult(in, in.ops.NewInt(boolInt(in.ops.Classify(d) == class)))
	}
}

func biMathIsFinite(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) != 1 {
		return wrongArgs(in, "isfinite arg")
	}
	d, ok := asDouble(in, args[0])
	if !ok {
		return errResult(in, "expected number but got %q", in.ops.Bytes(args[0]))
	}
	c := in.ops.Classify(d)
	finite := c != hostops.ClassInf && c != hostops.ClassNegInf && c != hostops.ClassNaN
	return okResult(in, in.ops.NewInt(boolInt(finite)))
}

func biMathIsNaNPair(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) != 2 {
		return wrongArgs(in, "isunordered arg1 arg2")
	}
	a, ok1 := asDouble(in, args[0])
	b, ok2 := asDouble(in, args[1])
	if !ok1 || !ok2 {
		return errResult(in, "expected number as argument")
	}
	nan := in.ops.Classify(a) == hostops.ClassNaN || in.ops.Classify(b) == hostops.ClassNaN
	return okResult(in, in.ops.NewInt(boolInt(nan)))
}

func biMathIsInf(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) != 1 {
		return wrongArgs(in, "isinf arg")
	}
	d, ok := asDouble(in, args[0])
	if !ok {
		return errResult(in, "expected number but got %q", in.ops.Bytes(args[0]))
	}
	c := in.ops.Classify(d)
	return okResult(in, in.ops.NewInt(boolInt(c == hostops.ClassInf || c == hostops.ClassNegInf)))
}
