package core

import (
	"strings"

	"github.com/featherscript/feather/internal/core/hostops"
)

func biSet(in *Interp, args []hostops.Handle) hostops.Result {
	level := in.activeLevel()
	if len(args) == 1 {
		v, ok := in.getVar(level, in.ops.Bytes(args[0]))
		if !ok {
			return errResult(in, "can't read %q: no such variable", in.ops.Bytes(args[0]))
		}
		return okResult(in, v)
	}
	if len(args) != 2 {
		return wrongArgs(in, "set varName ?newValue?")
	}
	in.setVar(level, in.ops.Bytes(args[0]), args[1])
	return okResult(in, args[1])
}

func biUnset(in *Interp, args []hostops.Handle) hostops.Result {
	level := in.activeLevel()
	nocomplain := false
	i := 0
	for i < len(args) {
		s := in.ops.Bytes(args[i])
		if s == "-nocomplain" {
			nocomplain = true
			i++
			continue
		}
		if s == "--" {
			i++
			break
		}
		break
	}
	for ; i < len(args); i++ {
		name := in.ops.Bytes(args[i])
		if !in.unsetVar(level, name) && !nocomplain {
			return errResult(in, "can't unset %q: no such variable", name)
		}
	}
	return okString(in, "")
}

func biIncr(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) < 1 || len(args) > 2 {
		return wrongArgs(in, "incr varName ?increment?")
	}
	level := in.activeLevel()
	name := in.ops.Bytes(args[0])
	by := int64(1)
	if len(args) == 2 {
		v, err := needInt(in, args[1])
		if err != nil {
			return errResult(in, "%s", err.Error())
		}
		by = v
	}
	cur := int64(0)
	if h, ok := in.getVar(level, name); ok {
		v, err := needInt(in, h)
		if err != nil {
			return errResult(in, "%s", err.Error())
		}
		cur = v
	}
	result := in.ops.NewInt(cur + by)
	in.setVar(level, name, result)
	return okResult(in, result)
}

func biGlobal(in *Interp, args []hostops.Handle) hostops.Result {
	level := in.activeLevel()
	for _, a := range args {
		name := in.ops.Bytes(a)
		in.ops.LinkNamespace(level, name, "::", name)
	}
	return okString(in, "")
}

func biVariable(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) == 0 {
		return wrongArgs(in, "variable ?name value...? name ?value?")
	}
	level := in.activeLevel()
	ns := in.ops.GetNamespace(level)
	i := 0
	for i < len(args) {
		name := in.ops.Bytes(args[i])
		in.ops.LinkNamespace(level, name, ns, name)
		if i+1 < len(args) && len(args)-i != 1 {
			in.ops.NSSetVar(ns, name, args[i+1])
			i += 2
			continue
		}
		i++
	}
	return okString(in, "")
}

func biAppend(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) < 1 {
		return wrongArgs(in, "append varName ?value value ...?")
	}
	level := in.activeLevel()
	name := in.ops.Bytes(args[0])
	var b strings.Builder
	if h, ok := in.getVar(level, name); ok {
		b.WriteString(in.ops.Bytes(h))
	}
	for _, v := range args[1:] {
		b.WriteString(in.ops.Bytes(v))
	}
	result := in.ops.Intern(b.String())
	in.setVar(level, name, result)
	return okResult(in, result)
}

func biLappend(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) < 1 {
		return wrongArgs(in, "lappend varName ?value value ...?")
	}
	level := in.activeLevel()
	name := in.ops.Bytes(args[0])
	var list hostops.Handle
	if h, ok := in.getVar(level, name); ok {
		parsed, err := in.ops.ParseList(h)
		if err != nil {
			return errResult(in, "%s", err.Error())
		}
		list = parsed
	} else {
		list = in.ops.NewList()
	}
	for _, v := range args[1:] {
		list = in.ops.Push(list, v)
	}
	in.setVar(level, name, list)
	return okResult(in, list)
}

// --- Control flow ----------------------------------------------------

func biBreak(in *Interp, args []hostops.Handle) hostops.Result {
	return hostops.Result{Code: hostops.Break}
}

func biContinue(in *Interp, args []hostops.Handle) hostops.Result {
	return hostops.Result{Code: hostops.Continue}
}

func biReturn(in *Interp, args []hostops.Handle) hostops.Result {
	code := hostops.Return
	var value hostops.Handle = in.ops.Intern("")
	var errorCode, errorInfo hostops.Handle
	haveErrorCode, haveErrorInfo := false, false
	i := 0
	for i+1 < len(args) {
		opt := in.ops.Bytes(args[i])
		switch opt {
		case "-code":
			c, err := needInt(in, args[i+1])
			if err == nil {
				code = hostops.ResultCode(c)
			} else {
				switch in.ops.Bytes(args[i+1]) {
				case "ok":
					code = hostops.OK
				case "error":
					code = hostops.Error
				case "return":
					code = hostops.Return
				case "break":
					code = hostops.Break
				case "continue":
					code = hostops.Continue
				}
			}
			i += 2
		case "-errorcode":
			errorCode = args[i+1]
			haveErrorCode = true
			i += 2
		case "-errorinfo":
			errorInfo = args[i+1]
			haveErrorInfo = true
			i += 2
		case "-level":
			i += 2
		default:
			goto doneOpts
		}
	}
doneOpts:
	if i < len(args) {
		value = args[i]
	}
	if code == hostops.Error {
		if haveErrorCode {
			in.errorCode = errorCode
		} else {
			in.errorCode = in.ops.Intern("NONE")
		}
		if haveErrorInfo {
			in.errorInfo = errorInfo
		} else {
			in.errorInfo = value
		}
	}
	in.ops.SetResult(value)
	return hostops.Result{Code: code}
}

func biError(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) < 1 || len(args) > 3 {
		return wrongArgs(in, "error message ?errorInfo? ?errorCode?")
	}
	in.ops.SetResult(args[0])
	if len(args) >= 2 && in.ops.Bytes(args[1]) != "" {
		in.errorInfo = args[1]
	} else {
		in.errorInfo = args[0]
	}
	if len(args) >= 3 {
		in.errorCode = args[2]
	} else {
		in.errorCode = in.ops.Intern("NONE")
	}
	return hostops.Result{Code: hostops.Error}
}

func biThrow(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) != 2 {
		return wrongArgs(in, "throw type message")
	}
	in.ops.SetResult(args[1])
	in.errorCode = args[0]
	in.errorInfo = args[1]
	return hostops.Result{Code: hostops.Error}
}

func biCatch(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) < 1 || len(args) > 3 {
		return wrongArgs(in, "catch script ?resultVarName? ?optionsVarName?")
	}
	level := in.activeLevel()
	res := in.EvalScript(args[0], false)
	if len(args) >= 2 {
		in.setVar(level, in.ops.Bytes(args[1]), in.ops.GetResult())
	}
	if len(args) >= 3 {
		opts := in.ops.NewDict()
		opts = in.ops.Set(opts, in.ops.Intern("-code"), in.ops.NewInt(int64(res.Code)))
		opts = in.ops.Set(opts, in.ops.Intern("-level"), in.ops.NewInt(0))
		if res.Code == hostops.Error {
			opts = in.ops.Set(opts, in.ops.Intern("-errorcode"), in.errorCode)
			opts = in.ops.Set(opts, in.ops.Intern("-errorinfo"), in.errorInfo)
		}
		in.setVar(level, in.ops.Bytes(args[2]), opts)
	}
	return okResult(in, in.ops.NewInt(int64(res.Code)))
}

func biTry(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) < 1 {
		return wrongArgs(in, "try body ?handler...? ?finally script?")
	}
	res := in.EvalScript(args[0], false)
	savedResult := in.ops.GetResult()
	savedCode := res.Code
	savedErrorCode := in.errorCode

	i := 1
	handled := false
	for i < len(args) {
		kw := in.ops.Bytes(args[i])
		switch kw {
		case "on":
			if i+3 >= len(args) {
				return errResult(in, "wrong # args to try: on code var body")
			}
			codeTok := in.ops.Bytes(args[i+1])
			if !handled && matchesTryCode(codeTok, savedCode) {
				varName := in.ops.Bytes(args[i+2])
				if varName != "" {
					in.setVar(in.activeLevel(), varName, savedResult)
				}
				res = in.EvalScript(args[i+3], false)
				handled = true
			}
			i += 4
		case "trap":
			// trap pattern var body: matches when savedCode is ERROR and
			// pattern is a prefix of the stored errorCode list (e.g. trap
			// {MYCODE} matches errorCode "MYCODE 1").
			if i+3 >= len(args) {
				return errResult(in, "wrong # args to try: trap pattern var body")
			}
			if !handled && savedCode == hostops.Error && errorCodeMatchesTrap(in, savedErrorCode, args[i+1]) {
				varName := in.ops.Bytes(args[i+2])
				if varName != "" {
					in.setVar(in.activeLevel(), varName, savedResult)
				}
				res = in.EvalScript(args[i+3], false)
				handled = true
			}
			i += 4
		case "finally":
			if i+1 >= len(args) {
				return errResult(in, "wrong # args to try: finally script")
			}
			fres := in.EvalScript(args[i+1], false)
			if fres.Code != hostops.OK {
				return fres
			}
			i += 2
		default:
			return errResult(in, "invalid try handler %q", kw)
		}
	}
	if !handled {
		in.ops.SetResult(savedResult)
		return hostops.Result{Code: savedCode}
	}
	return res
}

// errorCodeMatchesTrap reports whether pattern (a list) is a prefix of
// errorCode (also a list), per Tcl's "trap pattern" matching rule.
func errorCodeMatchesTrap(in *Interp, errorCode, pattern hostops.Handle) bool {
	want := in.ops.Items(pattern)
	if len(want) == 0 {
		return true
	}
	got := in.ops.Items(errorCode)
	if len(want) > len(got) {
		return false
	}
	for i, w := range want {
		if in.ops.Bytes(w) != in.ops.Bytes(got[i]) {
			return false
		}
	}
	return true
}

func matchesTryCode(tok string, code hostops.ResultCode) bool {
	switch tok {
	case "ok":
		return code == hostops.OK
	case "error":
		return code == hostops.Error
	case "return":
		return code == hostops.Return
	case "break":
		return code == hostops.Break
	case "continue":
		return code == hostops.Continue
	}
	return false
}

func biIf(in *Interp, args []hostops.Handle) hostops.Result {
	i := 0
	for i < len(args) {
		condRes := in.EvalExpr(args[i])
		if condRes.Code != hostops.OK {
			return condRes
		}
		cond := in.truthy(in.ops.GetResult())
		i++
		if i < len(args) && in.ops.Bytes(args[i]) == "then" {
			i++
		}
		if i >= len(args) {
			return wrongArgs(in, "if cond ?then? body ?elseif cond ?then? body? ?else? ?body?")
		}
		body := args[i]
		i++
		if cond {
			return in.EvalScript(body, false)
		}
		if i < len(args) && in.ops.Bytes(args[i]) == "elseif" {
			i++
			continue
		}
		if i < len(args) && in.ops.Bytes(args[i]) == "else" {
			i++
			if i >= len(args) {
				return wrongArgs(in, "if cond body else body")
			}
			return in.EvalScript(args[i], false)
		}
		if i < len(args) {
			return in.EvalScript(args[i], false)
		}
		return okString(in, "")
	}
	return okString(in, "")
}

func biWhile(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) != 2 {
		return wrongArgs(in, "while test body")
	}
	for {
		condRes := in.EvalExpr(args[0])
		if condRes.Code != hostops.OK {
			return condRes
		}
		if !in.truthy(in.ops.GetResult()) {
			break
		}
		res := in.EvalScript(args[1], false)
		switch res.Code {
		case hostops.Break:
			return okString(in, "")
		case hostops.Continue:
			continue
		case hostops.OK:
			continue
		default:
			return res
		}
	}
	return okString(in, "")
}

func biFor(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) != 4 {
		return wrongArgs(in, "for start test next body")
	}
	if res := in.EvalScript(args[0], false); res.Code != hostops.OK {
		return res
	}
	for {
		condRes := in.EvalExpr(args[1])
		if condRes.Code != hostops.OK {
			return condRes
		}
		if !in.truthy(in.ops.GetResult()) {
			break
		}
		res := in.EvalScript(args[3], false)
		switch res.Code {
		case hostops.Break:
			return okString(in, "")
		case hostops.Error, hostops.Return:
			return res
		}
		if res := in.EvalScript(args[2], false); res.Code != hostops.OK {
			return res
		}
	}
	return okString(in, "")
}

func biForeach(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) < 3 || len(args)%2 != 1 {
		return wrongArgs(in, "foreach varList list ?varList list ...? body")
	}
	level := in.activeLevel()
	body := args[len(args)-1]
	pairs := args[:len(args)-1]

	type group struct {
		vars  []string
		items []hostops.Handle
	}
	var groups []group
	maxLen := 0
	for i := 0; i < len(pairs); i += 2 {
		varNames := in.ops.Items(pairs[i])
		names := make([]string, len(varNames))
		for j, v := range varNames {
			names[j] = in.ops.Bytes(v)
		}
		items := in.ops.Items(pairs[i+1])
		groups = append(groups, group{vars: names, items: items})
		rounds := (len(items) + len(names) - 1) / len(names)
		if rounds > maxLen {
			maxLen = rounds
		}
	}

	for r := 0; r < maxLen; r++ {
		for _, g := range groups {
			for vi, vname := range g.vars {
				idx := r*len(g.vars) + vi
				var val hostops.Handle
				if idx < len(g.items) {
					val = g.items[idx]
				} else {
					val = in.ops.Intern("")
				}
				in.setVar(level, vname, val)
			}
		}
		res := in.EvalScript(body, false)
		switch res.Code {
		case hostops.Break:
			return okString(in, "")
		case hostops.Continue, hostops.OK:
			continue
		default:
			return res
		}
	}
	return okString(in, "")
}

func biSwitch(in *Interp, args []hostops.Handle) hostops.Result {
	mode := "exact"
	i := 0
	for i < len(args) {
		s := in.ops.Bytes(args[i])
		switch s {
		case "-exact":
			mode = "exact"
			i++
		case "-glob":
			mode = "glob"
			i++
		case "-regexp":
			mode = "regexp"
			i++
		case "--":
			i++
			goto afterOpts
		default:
			goto afterOpts
		}
	}
afterOpts:
	if i >= len(args) {
		return wrongArgs(in, "switch ?options? string pattern body ...")
	}
	value := args[i]
	i++
	var clauses []hostops.Handle
	if i == len(args)-1 {
		clauses = in.ops.Items(args[i])
	} else {
		clauses = args[i:]
	}
	for ci := 0; ci+1 < len(clauses); ci += 2 {
		pattern := in.ops.Bytes(clauses[ci])
		matched := pattern == "default"
		if !matched {
			switch mode {
			case "exact":
				matched = pattern == in.ops.Bytes(value)
			case "glob":
				matched = in.ops.Match(clauses[ci], value, false)
			case "regexp":
				m, _, err := in.ops.RegexMatch(clauses[ci], value, false)
				matched = err == nil && m
			}
		}
		if matched {
			body := clauses[ci+1]
			for in.ops.Bytes(body) == "-" && ci+3 < len(clauses) {
				ci += 2
				body = clauses[ci+1]
			}
			return in.EvalScript(body, false)
		}
	}
	return okString(in, "")
}

func biTailcall(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) == 0 {
		return wrongArgs(in, "tailcall command ?arg ...?")
	}
	res := in.call(args)
	return res
}
