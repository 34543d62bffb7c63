package core

import (
	"strings"

	"github.com/featherscript/feather/internal/core/hostops"
)

// invokeProc binds formal arguments into the frame dispatch already
// pushed at level, evaluates the proc body as a script, and translates
// RETURN/BREAK/CONTINUE per spec.md section 4.E.
func (in *Interp) invokeProc(level int, name string, params []hostops.ParamSpec, body hostops.Handle, args []hostops.Handle) hostops.Result {
	if err := in.bindParams(level, name, params, args); err != nil {
		in.setError(err.Error())
		return hostops.Result{Code: hostops.Error}
	}
	res := in.EvalScript(body, false)
	switch res.Code {
	case hostops.Return:
		return hostops.Result{Code: hostops.OK}
	case hostops.Break:
		in.setErrorf("invoked \"break\" outside of a loop")
		return hostops.Result{Code: hostops.Error}
	case hostops.Continue:
		in.setErrorf("invoked \"continue\" outside of a loop")
		return hostops.Result{Code: hostops.Error}
	default:
		return res
	}
}

func (in *Interp) bindParams(level int, name string, params []hostops.ParamSpec, args []hostops.Handle) error {
	variadic := len(params) > 0 && params[len(params)-1].Name == "args"
	fixed := params
	if variadic {
		fixed = params[:len(params)-1]
	}

	minRequired := 0
	for _, p := range fixed {
		if !p.HasDefault {
			minRequired++
		}
	}
	maxFixed := len(fixed)

	if len(args) < minRequired || (!variadic && len(args) > maxFixed) {
		return errf("wrong # args: should be \"%s %s\"", name, formatParams(params))
	}

	i := 0
	for _, p := range fixed {
		if i < len(args) {
			in.ops.SetVar(level, p.Name, args[i])
			i++
		} else {
			in.ops.SetVar(level, p.Name, p.Default)
		}
	}
	if variadic {
		in.ops.SetVar(level, "args", in.ops.NewList(args[i:]...))
	}
	return nil
}

func formatParams(params []hostops.ParamSpec) string {
	parts := make([]string, len(params))
	for i, p := range params {
		if p.Name == "args" && i == len(params)-1 {
			parts[i] = "args"
		} else if p.HasDefault {
			parts[i] = "?" + p.Name + "?"
		} else {
			parts[i] = p.Name
		}
	}
	return strings.Join(parts, " ")
}

// parseParamSpec parses one proc formal, which is either a bare name or
// a two-element {name default} list.
func (in *Interp) parseParamSpec(h hostops.Handle) (hostops.ParamSpec, error) {
	lst, err := in.ops.ParseList(h)
	if err != nil {
		return hostops.ParamSpec{}, err
	}
	items := in.ops.Items(lst)
	switch len(items) {
	case 1:
		return hostops.ParamSpec{Name: in.ops.Bytes(items[0])}, nil
	case 2:
		return hostops.ParamSpec{Name: in.ops.Bytes(items[0]), HasDefault: true, Default: items[1]}, nil
	default:
		return hostops.ParamSpec{}, errf("too many fields in argument specifier %q", in.ops.Bytes(h))
	}
}
