package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/featherscript/feather/internal/core/hostops"
)

func biList(in *Interp, args []hostops.Handle) hostops.Result {
	return okResult(in, in.ops.NewList(args...))
}

func biLlength(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) != 1 {
		return wrongArgs(in, "llength list")
	}
	l, err := in.ops.ParseList(args[0])
	if err != nil {
		return errResult(in, "%s", err.Error())
	}
	return okResult(in, in.ops.NewInt(int64(in.ops.Len(l))))
}

func biLindex(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) < 1 {
		return wrongArgs(in, "lindex list ?index ...?")
	}
	l, err := in.ops.ParseList(args[0])
	if err != nil {
		return errResult(in, "%s", err.Error())
	}
	cur := l
	for _, a := range args[1:] {
		n := in.ops.Len(cur)
		idx, ok := resolveIndex(in.ops.Bytes(a), n)
		if !ok {
			return errResult(in, "bad index %q", in.ops.Bytes(a))
		}
		if idx < 0 || idx >= n {
			return okString(in, "")
		}
		v, _ := in.ops.At(cur, idx)
		cur = v
		parsed, perr := in.ops.ParseList(cur)
		if perr == nil {
			cur = parsed
		}
	}
	return okResult(in, cur)
}

func biLinsert(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) < 2 {
		return wrongArgs(in, "linsert list index ?element ...?")
	}
	l, err := in.ops.ParseList(args[0])
	if err != nil {
		return errResult(in, "%s", err.Error())
	}
	n := in.ops.Len(l)
	idx, ok := resolveIndex(in.ops.Bytes(args[1]), n)
	if !ok {
		return errResult(in, "bad index %q", in.ops.Bytes(args[1]))
	}
	if idx < 0 {
		idx = 0
	}
	if idx > n {
		idx = n
	}
	items := in.ops.Items(l)
	out := make([]hostops.Handle, 0, len(items)+len(args)-2)
	out = append(out, items[:idx]...)
	out = append(out, args[2:]...)
	out = append(out, items[idx:]...)
	return okResult(in, in.ops.NewList(out...))
}

func biLrange(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) != 3 {
		return wrongArgs(in, "lrange list first last")
	}
	l, err := in.ops.ParseList(args[0])
	if err != nil {
		return errResult(in, "%s", err.Error())
	}
	n := in.ops.Len(l)
	lo, ok1 := resolveIndex(in.ops.Bytes(args[1]), n)
	hi, ok2 := resolveIndex(in.ops.Bytes(args[2]), n)
	if !ok1 || !ok2 {
		return errResult(in, "bad index in lrange")
	}
	lo, hi = clampRange(lo, hi, n)
	if lo > hi {
		return okResult(in, in.ops.NewList())
	}
	return okResult(in, in.ops.Slice(l, lo, hi+1))
}

func biLreplace(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) < 3 {
		return wrongArgs(in, "lreplace list first last ?element ...?")
	}
	l, err := in.ops.ParseList(args[0])
	if err != nil {
		return errResult(in, "%s", err.Error())
	}
	n := in.ops.Len(l)
	lo, ok1 := resolveIndex(in.ops.Bytes(args[1]), n)
	hi, ok2 := resolveIndex(in.ops.Bytes(args[2]), n)
	if !ok1 || !ok2 {
		return errResult(in, "bad index in lreplace")
	}
	if lo < 0 {
		lo = 0
	}
	if hi >= n {
		hi = n - 1
	}
	items := in.ops.Items(l)
	out := make([]hostops.Handle, 0, len(items))
	if lo > n {
		lo = n
	}
	out = append(out, items[:min(lo, len(items))]...)
	out = append(out, args[3:]...)
	if hi+1 < len(items) && hi >= lo {
		out = append(out, items[hi+1:]...)
	} else if hi < lo {
		out = append(out, items[min(lo, len(items)):]...)
	}
	return okResult(in, in.ops.NewList(out...))
}

func biLset(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) < 2 {
		return wrongArgs(in, "lset listVarName ?index ...? value")
	}
	level := in.activeLevel()
	name := in.ops.Bytes(args[0])
	h, ok := in.getVar(level, name)
	if !ok {
		return errResult(in, "can't read %q: no such variable", name)
	}
	l, err := in.ops.ParseList(h)
	if err != nil {
		return errResult(in, "%s", err.Error())
	}
	indices := args[1 : len(args)-1]
	value := args[len(args)-1]
	newL, lerr := setNestedList(in, l, indices, value)
	if lerr != nil {
		return errResult(in, "%s", lerr.Error())
	}
	in.setVar(level, name, newL)
	return okResult(in, newL)
}

func setNestedList(in *Interp, l hostops.Handle, indices []hostops.Handle, value hostops.Handle) (hostops.Handle, error) {
	if len(indices) == 0 {
		return value, nil
	}
	n := in.ops.Len(l)
	idx, ok := resolveIndex(in.ops.Bytes(indices[0]), n)
	if !ok || idx < 0 || idx >= n {
		return hostops.Nil, fmt.Errorf("bad index %q", in.ops.Bytes(indices[0]))
	}
	if len(indices) == 1 {
		newL, ok := in.ops.SetAt(l, idx, value)
		if !ok {
			return hostops.Nil, fmt.Errorf("bad index %q", in.ops.Bytes(indices[0]))
		}
		return newL, nil
	}
	elem, _ := in.ops.At(l, idx)
	child, err := in.ops.ParseList(elem)
	if err != nil {
		return hostops.Nil, err
	}
	newChild, err := setNestedList(in, child, indices[1:], value)
	if err != nil {
		return hostops.Nil, err
	}
	newL, ok := in.ops.SetAt(l, idx, newChild)
	if !ok {
		return hostops.Nil, fmt.Errorf("bad index %q", in.ops.Bytes(indices[0]))
	}
	return newL, nil
}

func biLmap(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) < 3 || len(args)%2 != 1 {
		return wrongArgs(in, "lmap varList list ?varList list ...? body")
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

	var out []hostops.Handle
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
			return okResult(in, in.ops.NewList(out...))
		case hostops.Continue:
			continue
		case hostops.OK:
			out = append(out, in.ops.GetResult())
		default:
			return res
		}
	}
	return okResult(in, in.ops.NewList(out...))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func biLrepeat(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) < 2 {
		return wrongArgs(in, "lrepeat count element ?element ...?")
	}
	n, err := needInt(in, args[0])
	if err != nil || n < 0 {
		return errResult(in, "bad count %q", in.ops.Bytes(args[0]))
	}
	out := make([]hostops.Handle, 0, int(n)*len(args[1:]))
	for i := int64(0); i < n; i++ {
		out = append(out, args[1:]...)
	}
	return okResult(in, in.ops.NewList(out...))
}

func biLreverse(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) != 1 {
		return wrongArgs(in, "lreverse list")
	}
	l, err := in.ops.ParseList(args[0])
	if err != nil {
		return errResult(in, "%s", err.Error())
	}
	items := in.ops.Items(l)
	out := make([]hostops.Handle, len(items))
	for i, v := range items {
		out[len(items)-1-i] = v
	}
	return okResult(in, in.ops.NewList(out...))
}

func biLsort(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) < 1 {
		return wrongArgs(in, "lsort ?options? list")
	}
	decreasing := false
	numeric := false
	unique := false
	for _, a := range args[:len(args)-1] {
		switch in.ops.Bytes(a) {
		case "-decreasing":
			decreasing = true
		case "-increasing":
			decreasing = false
		case "-integer", "-real":
			numeric = true
		case "-unique":
			unique = true
		}
	}
	l, err := in.ops.ParseList(args[len(args)-1])
	if err != nil {
		return errResult(in, "%s", err.Error())
	}
	items := append([]hostops.Handle(nil), in.ops.Items(l)...)
	sort.SliceStable(items, func(i, j int) bool {
		var less bool
		if numeric {
			c, ok := numericCompare(in, items[i], items[j])
			less = ok && c < 0
		} else {
			less = strings.Compare(in.ops.Bytes(items[i]), in.ops.Bytes(items[j])) < 0
		}
		if decreasing {
			return !less
		}
		return less
	})
	if unique {
		out := items[:0]
		seen := map[string]bool{}
		for _, v := range items {
			s := in.ops.Bytes(v)
			if !seen[s] {
				seen[s] = true
				out = append(out, v)
			}
		}
		items = out
	}
	return okResult(in, in.ops.NewList(items...))
}

func biLsearch(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) < 2 {
		return wrongArgs(in, "lsearch ?options? list pattern")
	}
	mode := "glob"
	all := false
	inline := false
	i := 0
	for i < len(args)-2 {
		switch in.ops.Bytes(args[i]) {
		case "-exact":
			mode = "exact"
		case "-glob":
			mode = "glob"
		case "-regexp":
			mode = "regexp"
		case "-all":
			all = true
		case "-inline":
			inline = true
		}
		i++
	}
	l, err := in.ops.ParseList(args[len(args)-2])
	if err != nil {
		return errResult(in, "%s", err.Error())
	}
	pattern := args[len(args)-1]
	items := in.ops.Items(l)
	var matches []hostops.Handle
	var indices []hostops.Handle
	for idx, v := range items {
		matched := false
		switch mode {
		case "exact":
			matched = in.ops.Bytes(v) == in.ops.Bytes(pattern)
		case "glob":
			matched = in.ops.Match(pattern, v, false)
		case "regexp":
			m, _, rerr := in.ops.RegexMatch(pattern, v, false)
			matched = rerr == nil && m
		}
		if matched {
			matches = append(matches, v)
			indices = append(indices, in.ops.NewInt(int64(idx)))
			if !all {
				break
			}
		}
	}
	if inline {
		if all {
			return okResult(in, in.ops.NewList(matches...))
		}
		if len(matches) == 0 {
			return okString(in, "")
		}
		return okResult(in, matches[0])
	}
	if all {
		return okResult(in, in.ops.NewList(indices...))
	}
	if len(indices) == 0 {
		return okResult(in, in.ops.NewInt(-1))
	}
	return okResult(in, indices[0])
}

func biLassign(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) < 1 {
		return wrongArgs(in, "lassign list ?varName ...?")
	}
	l, err := in.ops.ParseList(args[0])
	if err != nil {
		return errResult(in, "%s", err.Error())
	}
	items := in.ops.Items(l)
	level := in.activeLevel()
	for i, v := range args[1:] {
		var val hostops.Handle
		if i < len(items) {
			val = items[i]
		} else {
			val = in.ops.Intern("")
		}
		in.setVar(level, in.ops.Bytes(v), val)
	}
	rest := []hostops.Handle{}
	if len(items) > len(args)-1 {
		rest = items[len(args)-1:]
	}
	return okResult(in, in.ops.NewList(rest...))
}

func biJoin(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) < 1 || len(args) > 2 {
		return wrongArgs(in, "join list ?joinString?")
	}
	sep := " "
	if len(args) == 2 {
		sep = in.ops.Bytes(args[1])
	}
	l, err := in.ops.ParseList(args[0])
	if err != nil {
		return errResult(in, "%s", err.Error())
	}
	items := in.ops.Items(l)
	parts := make([]string, len(items))
	for i, v := range items {
		parts[i] = in.ops.Bytes(v)
	}
	return okString(in, strings.Join(parts, sep))
}

func biSplit(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) < 1 || len(args) > 2 {
		return wrongArgs(in, "split string ?splitChars?")
	}
	s := in.ops.Bytes(args[0])
	chars := " \t\n\r"
	if len(args) == 2 {
		chars = in.ops.Bytes(args[1])
	}
	var parts []string
	if chars == "" {
		for _, r := range s {
			parts = append(parts, string(r))
		}
	} else {
		parts = strings.FieldsFunc(s, func(r rune) bool { return strings.ContainsRune(chars, r) })
		if len(parts) == 0 {
			parts = []string{}
		}
	}
	out := make([]hostops.Handle, len(parts))
	for i, p := range parts {
		out[i] = in.ops.Intern(p)
	}
	return okResult(in, in.ops.NewList(out...))
}

func biConcat(in *Interp, args []hostops.Handle) hostops.Result {
	var parts []string
	for _, a := range args {
		s := strings.TrimSpace(in.ops.Bytes(a))
		if s != "" {
			parts = append(parts, s)
		}
	}
	return okString(in, strings.Join(parts, " "))
}
