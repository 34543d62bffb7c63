package core

import "github.com/featherscript/feather/internal/core/hostops"

func biDict(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) < 1 {
		return wrongArgs(in, "dict subcommand ?arg ...?")
	}
	sub := in.ops.Bytes(args[0])
	rest := args[1:]
	switch sub {
	case "create":
		d := in.ops.NewDict()
		for i := 0; i+1 < len(rest); i += 2 {
			d = in.ops.Set(d, rest[i], rest[i+1])
		}
		return okResult(in, d)
	case "get":
		return dictGet(in, rest)
	case "set":
		return dictSet(in, rest)
	case "unset":
		return dictUnset(in, rest)
	case "exists":
		return dictExists(in, rest)
	case "keys":
		return dictKeys(in, rest)
	case "values":
		return dictValues(in, rest)
	case "size":
		return dictSize(in, rest)
	case "merge":
		return dictMerge(in, rest)
	case "replace":
		return dictReplace(in, rest)
	case "remove":
		return dictRemove(in, rest)
	case "for":
		return dictFor(in, rest)
	case "incr":
		return dictIncr(in, rest)
	case "append":
		return dictAppend(in, rest)
	case "lappend":
		return dictLappend(in, rest)
	case "filter":
		return dictFilter(in, rest)
	case "update":
		return dictUpdate(in, rest)
	case "with":
		return dictWith(in, rest)
	default:
		return errResult(in, "unknown or ambiguous subcommand %q: must be append, create, exists, filter, for, get, incr, keys, lappend, merge, remove, replace, set, size, unset, update, values, or with", sub)
	}
}

func dictGet(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) < 1 {
		return wrongArgs(in, "dict get dictionary ?key ...?")
	}
	d, err := in.ops.ParseDict(args[0])
	if err != nil {
		return errResult(in, "%s", err.Error())
	}
	cur := d
	for _, k := range args[1:] {
		v, ok := in.ops.Get(cur, k)
		if !ok {
			return errResult(in, "key %q not known in dictionary", in.ops.Bytes(k))
		}
		cur = v
		if parsed, perr := in.ops.ParseDict(cur); perr == nil {
			cur = parsed
		}
	}
	return okResult(in, cur)
}

func dictSet(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) < 3 {
		return wrongArgs(in, "dict set dictVarName key ?key ...? value")
	}
	level := in.activeLevel()
	name := in.ops.Bytes(args[0])
	d := in.ops.NewDict()
	if h, ok := in.getVar(level, name); ok {
		if parsed, perr := in.ops.ParseDict(h); perr == nil {
			d = parsed
		}
	}
	keys := args[1 : len(args)-1]
	value := args[len(args)-1]
	newD := setNestedDict(in, d, keys, value)
	in.setVar(level, name, newD)
	return okResult(in, newD)
}

func setNestedDict(in *Interp, d hostops.Handle, keys []hostops.Handle, value hostops.Handle) hostops.Handle {
	if len(keys) == 0 {
		return value
	}
	if len(keys) == 1 {
		return in.ops.Set(d, keys[0], value)
	}
	child := in.ops.NewDict()
	if existing, ok := in.ops.Get(d, keys[0]); ok {
		if parsed, err := in.ops.ParseDict(existing); err == nil {
			child = parsed
		}
	}
	newChild := setNestedDict(in, child, keys[1:], value)
	return in.ops.Set(d, keys[0], newChild)
}

func dictUnset(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) < 2 {
		return wrongArgs(in, "dict unset dictVarName key ?key ...?")
	}
	level := in.activeLevel()
	name := in.ops.Bytes(args[0])
	h, ok := in.getVar(level, name)
	if !ok {
		return errResult(in, "can't read %q: no such variable", name)
	}
	d, err := in.ops.ParseDict(h)
	if err != nil {
		return errResult(in, "%s", err.Error())
	}
	keys := args[1:]
	inner := d
	for _, k := range keys[:len(keys)-1] {
		v, ok := in.ops.Get(inner, k)
		if !ok {
			return errResult(in, "key %q not known in dictionary", in.ops.Bytes(k))
		}
		if inner, err = in.ops.ParseDict(v); err != nil {
			return errResult(in, "%s", err.Error())
		}
	}
	newD := setNestedDict(in, d, keys[:len(keys)-1], in.ops.Unset(inner, keys[len(keys)-1]))
	in.setVar(level, name, newD)
	return okResult(in, newD)
}

func dictExists(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) < 2 {
		return wrongArgs(in, "dict exists dictionary key ?key ...?")
	}
	d, err := in.ops.ParseDict(args[0])
	if err != nil {
		return okResult(in, in.ops.NewInt(0))
	}
	cur := d
	for _, k := range args[1:] {
		v, ok := in.ops.Get(cur, k)
		if !ok {
			return okResult(in, in.ops.NewInt(0))
		}
		cur = v
		if parsed, perr := in.ops.ParseDict(cur); perr == nil {
			cur = parsed
		}
	}
	return okResult(in, in.ops.NewInt(1))
}

func dictKeys(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) < 1 {
		return wrongArgs(in, "dict keys dictionary ?pattern?")
	}
	d, err := in.ops.ParseDict(args[0])
	if err != nil {
		return errResult(in, "%s", err.Error())
	}
	keys := in.ops.Keys(d)
	if len(args) == 2 {
		var filtered []hostops.Handle
		for _, k := range keys {
			if in.ops.Match(args[1], k, false) {
				filtered = append(filtered, k)
			}
		}
		keys = filtered
	}
	return okResult(in, in.ops.NewList(keys...))
}

func dictValues(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) < 1 {
		return wrongArgs(in, "dict values dictionary ?pattern?")
	}
	d, err := in.ops.ParseDict(args[0])
	if err != nil {
		return errResult(in, "%s", err.Error())
	}
	entries := in.ops.Iterate(d)
	out := make([]hostops.Handle, 0, len(entries))
	for _, e := range entries {
		if len(args) == 2 && !in.ops.Match(args[1], e.Value, false) {
			continue
		}
		out = append(out, e.Value)
	}
	return okResult(in, in.ops.NewList(out...))
}

func dictSize(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) != 1 {
		return wrongArgs(in, "dict size dictionary")
	}
	d, err := in.ops.ParseDict(args[0])
	if err != nil {
		return errResult(in, "%s", err.Error())
	}
	return okResult(in, in.ops.NewInt(int64(in.ops.DictSize(d))))
}

func dictMerge(in *Interp, args []hostops.Handle) hostops.Result {
	d := in.ops.NewDict()
	for _, a := range args {
		src, err := in.ops.ParseDict(a)
		if err != nil {
			return errResult(in, "%s", err.Error())
		}
		for _, e := range in.ops.Iterate(src) {
			d = in.ops.Set(d, e.Key, e.Value)
		}
	}
	return okResult(in, d)
}

func dictReplace(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) < 1 {
		return wrongArgs(in, "dict replace dictionary ?key value ...?")
	}
	d, err := in.ops.ParseDict(args[0])
	if err != nil {
		return errResult(in, "%s", err.Error())
	}
	kvs := args[1:]
	if len(kvs)%2 != 0 {
		return wrongArgs(in, "dict replace dictionary ?key value ...?")
	}
	for i := 0; i+1 < len(kvs); i += 2 {
		d = in.ops.Set(d, kvs[i], kvs[i+1])
	}
	return okResult(in, d)
}

func dictRemove(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) < 1 {
		return wrongArgs(in, "dict remove dictionary ?key ...?")
	}
	d, err := in.ops.ParseDict(args[0])
	if err != nil {
		return errResult(in, "%s", err.Error())
	}
	for _, k := range args[1:] {
		d = in.ops.Unset(d, k)
	}
	return okResult(in, d)
}

func dictFor(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) != 3 {
		return wrongArgs(in, "dict for {keyVar valueVar} dictionary body")
	}
	vars := in.ops.Items(args[0])
	if len(vars) != 2 {
		return errResult(in, "must have exactly two variable names")
	}
	d, err := in.ops.ParseDict(args[1])
	if err != nil {
		return errResult(in, "%s", err.Error())
	}
	level := in.activeLevel()
	for _, e := range in.ops.Iterate(d) {
		in.setVar(level, in.ops.Bytes(vars[0]), e.Key)
		in.setVar(level, in.ops.Bytes(vars[1]), e.Value)
		res := in.EvalScript(args[2], false)
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

func dictIncr(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) < 2 {
		return wrongArgs(in, "dict incr dictVarName key ?increment?")
	}
	level := in.activeLevel()
	name := in.ops.Bytes(args[0])
	d := in.ops.NewDict()
	if h, ok := in.getVar(level, name); ok {
		if parsed, err := in.ops.ParseDict(h); err == nil {
			d = parsed
		}
	}
	by := int64(1)
	if len(args) == 3 {
		v, err := needInt(in, args[2])
		if err != nil {
			return errResult(in, "%s", err.Error())
		}
		by = v
	}
	cur := int64(0)
	if v, ok := in.ops.Get(d, args[1]); ok {
		if iv, ok := in.ops.Int(v); ok {
			cur = iv
		}
	}
	d = in.ops.Set(d, args[1], in.ops.NewInt(cur+by))
	in.setVar(level, name, d)
	return okResult(in, d)
}

func dictAppend(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) < 2 {
		return wrongArgs(in, "dict append dictVarName key ?value ...?")
	}
	level := in.activeLevel()
	name := in.ops.Bytes(args[0])
	d := in.ops.NewDict()
	if h, ok := in.getVar(level, name); ok {
		if parsed, err := in.ops.ParseDict(h); err == nil {
			d = parsed
		}
	}
	s := ""
	if v, ok := in.ops.Get(d, args[1]); ok {
		s = in.ops.Bytes(v)
	}
	for _, v := range args[2:] {
		s += in.ops.Bytes(v)
	}
	d = in.ops.Set(d, args[1], in.ops.Intern(s))
	in.setVar(level, name, d)
	return okResult(in, d)
}

func dictLappend(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) < 2 {
		return wrongArgs(in, "dict lappend dictVarName key ?value ...?")
	}
	level := in.activeLevel()
	name := in.ops.Bytes(args[0])
	d := in.ops.NewDict()
	if h, ok := in.getVar(level, name); ok {
		if parsed, err := in.ops.ParseDict(h); err == nil {
			d = parsed
		}
	}
	list := in.ops.NewList()
	if v, ok := in.ops.Get(d, args[1]); ok {
		if parsed, err := in.ops.ParseList(v); err == nil {
			list = parsed
		}
	}
	for _, v := range args[2:] {
		list = in.ops.Push(list, v)
	}
	d = in.ops.Set(d, args[1], list)
	in.setVar(level, name, d)
	return okResult(in, d)
}

func dictFilter(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) < 2 {
		return wrongArgs(in, "dict filter dictionary filterType ...")
	}
	d, err := in.ops.ParseDict(args[0])
	if err != nil {
		return errResult(in, "%s", err.Error())
	}
	kind := in.ops.Bytes(args[1])
	out := in.ops.NewDict()
	switch kind {
	case "key":
		for i := 2; i < len(args); i++ {
			for _, e := range in.ops.Iterate(d) {
				if in.ops.Match(args[i], e.Key, false) {
					out = in.ops.Set(out, e.Key, e.Value)
				}
			}
		}
	case "value":
		for i := 2; i < len(args); i++ {
			for _, e := range in.ops.Iterate(d) {
				if in.ops.Match(args[i], e.Value, false) {
					out = in.ops.Set(out, e.Key, e.Value)
				}
			}
		}
	case "script":
		if len(args) != 4 {
			return wrongArgs(in, "dict filter dictionary script {keyVar valueVar} body")
		}
		vars := in.ops.Items(args[2])
		if len(vars) != 2 {
			return errResult(in, "must have exactly two variable names")
		}
		level := in.activeLevel()
		for _, e := range in.ops.Iterate(d) {
			in.setVar(level, in.ops.Bytes(vars[0]), e.Key)
			in.setVar(level, in.ops.Bytes(vars[1]), e.Value)
			res := in.EvalScript(args[3], false)
			if res.Code != hostops.OK {
				return res
			}
			if in.truthy(in.ops.GetResult()) {
				out = in.ops.Set(out, e.Key, e.Value)
			}
		}
	}
	return okResult(in, out)
}

func dictUpdate(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) < 4 || len(args)%2 != 0 {
		return wrongArgs(in, "dict update dictVarName key varName ?key varName ...? body")
	}
	level := in.activeLevel()
	name := in.ops.Bytes(args[0])
	d := in.ops.NewDict()
	if h, ok := in.getVar(level, name); ok {
		if parsed, err := in.ops.ParseDict(h); err == nil {
			d = parsed
		}
	}
	pairs := args[1 : len(args)-1]
	body := args[len(args)-1]
	for i := 0; i+1 < len(pairs); i += 2 {
		key, varName := pairs[i], in.ops.Bytes(pairs[i+1])
		if v, ok := in.ops.Get(d, key); ok {
			in.setVar(level, varName, v)
		}
	}
	res := in.EvalScript(body, false)
	if res.Code != hostops.OK {
		return res
	}
	for i := 0; i+1 < len(pairs); i += 2 {
		key, varName := pairs[i], in.ops.Bytes(pairs[i+1])
		if v, ok := in.getVar(level, varName); ok {
			d = in.ops.Set(d, key, v)
		}
	}
	in.setVar(level, name, d)
	return okString(in, "")
}

func dictWith(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) < 2 {
		return wrongArgs(in, "dict with dictVarName ?key ...? body")
	}
	level := in.activeLevel()
	name := in.ops.Bytes(args[0])
	d := in.ops.NewDict()
	if h, ok := in.getVar(level, name); ok {
		if parsed, err := in.ops.ParseDict(h); err == nil {
			d = parsed
		}
	}
	keys := args[1 : len(args)-1]
	body := args[len(args)-1]
	cur := d
	for _, k := range keys {
		if v, ok := in.ops.Get(cur, k); ok {
			if parsed, err := in.ops.ParseDict(v); err == nil {
				cur = parsed
			}
		}
	}
	for _, e := range in.ops.Iterate(cur) {
		in.setVar(level, in.ops.Bytes(e.Key), e.Value)
	}
	res := in.EvalScript(body, false)
	if res.Code != hostops.OK {
		return res
	}
	newCur := in.ops.NewDict()
	for _, e := range in.ops.Iterate(cur) {
		if v, ok := in.getVar(level, in.ops.Bytes(e.Key)); ok {
			newCur = in.ops.Set(newCur, e.Key, v)
		}
	}
	d = setNestedDict(in, d, keys, newCur)
	in.setVar(level, name, d)
	return okString(in, "")
}
