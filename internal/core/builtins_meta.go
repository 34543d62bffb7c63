package core

import (
	"strconv"
	"strings"

	"github.com/featherscript/feather/internal/core/hostops"
)

func biProc(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) != 3 {
		return wrongArgs(in, "proc name args body")
	}
	name := in.ops.Bytes(args[0])
	formalsList, err := in.ops.ParseList(args[1])
	if err != nil {
		return errResult(in, "%s", err.Error())
	}
	items := in.ops.Items(formalsList)
	params := make([]hostops.ParamSpec, 0, len(items))
	for _, it := range items {
		p, err := in.parseParamSpec(it)
		if err != nil {
			return errResult(in, "%s", err.Error())
		}
		params = append(params, p)
	}
	ns := in.ops.GetNamespace(in.activeLevel())
	qns, simple := ns, name
	if containsNS(name) {
		qns = in.ops.Resolve(ns, parentNSOf(name))
		simple = simpleNameOf(name)
	}
	in.ops.DefineProc(qns, simple, params, args[2])
	return okString(in, "")
}

func biRename(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) != 2 {
		return wrongArgs(in, "rename oldName newName")
	}
	oldName, newName := in.ops.Bytes(args[0]), in.ops.Bytes(args[1])
	ns := in.ops.GetNamespace(in.activeLevel())
	oldNS, oldSimple := ns, oldName
	if containsNS(oldName) {
		oldNS = in.ops.Resolve(ns, parentNSOf(oldName))
		oldSimple = simpleNameOf(oldName)
	}
	if newName == "" {
		if !in.ops.DeleteCommand(oldNS, oldSimple) {
			return errResult(in, "can't delete %q: command doesn't exist", oldName)
		}
		in.fireCmdTrace(oldName, "", "delete")
		return okString(in, "")
	}
	newNS, newSimple := ns, newName
	if containsNS(newName) {
		newNS = in.ops.Resolve(ns, parentNSOf(newName))
		newSimple = simpleNameOf(newName)
	}
	if !in.ops.Rename(oldNS, oldSimple, newNS, newSimple) {
		return errResult(in, "can't rename %q: command doesn't exist", oldName)
	}
	in.fireCmdTrace(oldName, newName, "rename")
	return okString(in, "")
}

func biUpvar(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) < 2 {
		return wrongArgs(in, "upvar ?level? otherVar localVar ?otherVar localVar ...?")
	}
	level := in.activeLevel() - 1
	rest := args
	if len(args)%2 == 1 {
		lv, ok := parseUplevelRef(in.ops.Bytes(args[0]), in.activeLevel())
		if !ok {
			return errResult(in, "bad level %q", in.ops.Bytes(args[0]))
		}
		level = lv
		rest = args[1:]
	}
	if len(rest) == 0 || len(rest)%2 != 0 {
		return wrongArgs(in, "upvar ?level? otherVar localVar ?otherVar localVar ...?")
	}
	here := in.activeLevel()
	for i := 0; i+1 < len(rest); i += 2 {
		other, local := in.ops.Bytes(rest[i]), in.ops.Bytes(rest[i+1])
		if containsNS(other) {
			ns := in.ops.Resolve(in.ops.GetNamespace(level), parentNSOf(other))
			in.ops.LinkNamespace(here, local, ns, simpleNameOf(other))
		} else {
			in.ops.Link(here, local, level, other)
		}
	}
	return okString(in, "")
}

func biUplevel(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) < 1 {
		return wrongArgs(in, "uplevel ?level? command ?arg ...?")
	}
	level := in.activeLevel() - 1
	rest := args
	// A leading numeric/#N argument is only treated as a level when a
	// second argument follows it; otherwise it is the command itself.
	if len(args) >= 2 {
		if lv, ok := parseUplevelRef(in.ops.Bytes(args[0]), in.activeLevel()); ok {
			level = lv
			rest = args[1:]
		}
	}
	var script hostops.Handle
	if len(rest) == 1 {
		script = rest[0]
	} else {
		parts := make([]string, len(rest))
		for i, a := range rest {
			parts[i] = in.ops.Bytes(a)
		}
		script = in.ops.Intern(strings.Join(parts, " "))
	}
	return in.Uplevel(level, script)
}

// parseUplevelRef parses a level argument of the form "#N" (absolute) or
// "N" (relative to the current active frame), per spec.md's uplevel/upvar
// level grammar.
func parseUplevelRef(s string, current int) (int, bool) {
	if strings.HasPrefix(s, "#") {
		n, err := strconv.Atoi(s[1:])
		if err != nil {
			return 0, false
		}
		return n, true
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return current - n, true
}

func biApply(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) < 1 {
		return wrongArgs(in, "apply lambdaExpr ?arg ...?")
	}
	lambda, err := in.ops.ParseList(args[0])
	if err != nil {
		return errResult(in, "%s", err.Error())
	}
	items := in.ops.Items(lambda)
	if len(items) < 2 || len(items) > 3 {
		return errResult(in, "can't interpret %q as a lambda expression", in.ops.Bytes(args[0]))
	}
	formalsList, err := in.ops.ParseList(items[0])
	if err != nil {
		return errResult(in, "%s", err.Error())
	}
	formals := in.ops.Items(formalsList)
	params := make([]hostops.ParamSpec, 0, len(formals))
	for _, f := range formals {
		p, err := in.parseParamSpec(f)
		if err != nil {
			return errResult(in, "%s", err.Error())
		}
		params = append(params, p)
	}
	body := items[1]
	ns := in.ops.GetNamespace(in.activeLevel())
	if len(items) == 3 {
		ns = in.ops.Resolve(ns, in.ops.Bytes(items[2]))
	}
	level := in.ops.PushFrame(in.ops.Intern("apply"), args[1:], ns)
	defer in.ops.PopFrame()
	return in.invokeProc(level, "apply", params, body, args[1:])
}

// collectNamespaceCommands walks ns and every descendant namespace,
// returning the fully-qualified name of every command that a
// "namespace delete ns" is about to remove, so the caller can fire
// command-delete traces (which key on the same name the command was
// registered under) after the namespace itself is gone.
func collectNamespaceCommands(in *Interp, ns string) []string {
	var out []string
	for _, name := range in.ops.CommandNames(ns) {
		out = append(out, qualifyCommandName(ns, name))
	}
	for _, child := range in.ops.Children(ns) {
		out = append(out, collectNamespaceCommands(in, child)...)
	}
	return out
}

func qualifyCommandName(ns, name string) string {
	if ns == "::" {
		return "::" + name
	}
	return ns + "::" + name
}

func biNamespace(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) < 1 {
		return wrongArgs(in, "namespace subcommand ?arg ...?")
	}
	sub := in.ops.Bytes(args[0])
	rest := args[1:]
	cur := in.ops.GetNamespace(in.activeLevel())
	switch sub {
	case "eval":
		if len(rest) < 1 {
			return wrongArgs(in, "namespace eval name arg ?arg ...?")
		}
		path := in.ops.Resolve(cur, in.ops.Bytes(rest[0]))
		in.ops.Create(path)
		var script hostops.Handle
		if len(rest) == 2 {
			script = rest[1]
		} else {
			parts := make([]string, len(rest)-1)
			for i, a := range rest[1:] {
				parts[i] = in.ops.Bytes(a)
			}
			script = in.ops.Intern(strings.Join(parts, " "))
		}
		level := in.ops.PushFrame(in.ops.Intern("namespace"), nil, path)
		defer in.ops.PopFrame()
		saved := in.ops.Active()
		in.ops.SetActive(level)
		defer in.ops.SetActive(saved)
		return in.EvalScript(script, false)
	case "current":
		return okString(in, cur)
	case "parent":
		path := cur
		if len(rest) == 1 {
			path = in.ops.Resolve(cur, in.ops.Bytes(rest[0]))
		}
		p, ok := in.ops.Parent(path)
		if !ok {
			return okString(in, "")
		}
		return okString(in, p)
	case "children":
		path := cur
		if len(rest) == 1 {
			path = in.ops.Resolve(cur, in.ops.Bytes(rest[0]))
		}
		kids := in.ops.Children(path)
		out := make([]hostops.Handle, len(kids))
		for i, k := range kids {
			out[i] = in.ops.Intern(k)
		}
		return okResult(in, in.ops.NewList(out...))
	case "exists":
		if len(rest) != 1 {
			return wrongArgs(in, "namespace exists name")
		}
		path := in.ops.Resolve(cur, in.ops.Bytes(rest[0]))
		return okResult(in, in.ops.NewInt(boolInt(in.ops.Exists(path))))
	case "delete":
		for _, r := range rest {
			path := in.ops.Resolve(cur, in.ops.Bytes(r))
			cmds := collectNamespaceCommands(in, path)
			if in.ops.Delete(path) {
				for _, name := range cmds {
					in.fireCmdTrace(name, "", "delete")
				}
			}
		}
		return okString(in, "")
	case "export":
		patterns := make([]string, len(rest))
		for i, r := range rest {
			patterns[i] = in.ops.Bytes(r)
		}
		in.ops.SetExports(cur, patterns)
		return okString(in, "")
	case "import":
		for _, r := range rest {
			pattern := in.ops.Bytes(r)
			srcNS := parentNSOf(pattern)
			if srcNS == "" {
				continue
			}
			abs := in.ops.Resolve(cur, srcNS)
			for _, name := range in.ops.CommandNames(abs) {
				if in.ops.IsExported(abs, name) && in.ops.Match(r, in.ops.Intern(name), false) {
					in.ops.CopyCommand(abs, cur, name)
				}
			}
		}
		return okString(in, "")
	case "qualifiers":
		if len(rest) != 1 {
			return wrongArgs(in, "namespace qualifiers string")
		}
		return okString(in, parentNSOf(in.ops.Bytes(rest[0])))
	case "tail":
		if len(rest) != 1 {
			return wrongArgs(in, "namespace tail string")
		}
		return okString(in, simpleNameOf(in.ops.Bytes(rest[0])))
	default:
		return errResult(in, "unknown or ambiguous subcommand %q to \"namespace\"", sub)
	}
}

func biTrace(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) < 1 {
		return wrongArgs(in, "trace subcommand ?arg ...?")
	}
	sub := in.ops.Bytes(args[0])
	rest := args[1:]
	switch sub {
	case "add":
		return traceAdd(in, rest)
	case "remove":
		return traceRemove(in, rest)
	case "info":
		return traceInfoCmd(in, rest)
	default:
		return errResult(in, "unknown or ambiguous subcommand %q to \"trace\"", sub)
	}
}

func traceKindOf(s string) (hostops.TraceKind, bool) {
	switch s {
	case "variable":
		return hostops.TraceVariable, true
	case "command":
		return hostops.TraceCommand, true
	case "execution":
		return hostops.TraceExecution, true
	default:
		return 0, false
	}
}

func traceAdd(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) != 4 {
		return wrongArgs(in, "trace add type name opList command")
	}
	kind, ok := traceKindOf(in.ops.Bytes(args[0]))
	if !ok {
		return errResult(in, "bad trace type %q", in.ops.Bytes(args[0]))
	}
	opsList, err := in.ops.ParseList(args[2])
	if err != nil {
		return errResult(in, "%s", err.Error())
	}
	var opNames []string
	for _, o := range in.ops.Items(opsList) {
		opNames = append(opNames, in.ops.Bytes(o))
	}
	script, err := in.ops.ParseList(args[3])
	if err != nil {
		return errResult(in, "%s", err.Error())
	}
	name := traceNameKey(in, kind, in.ops.Bytes(args[1]))
	in.ops.Add(kind, name, opNames, script)
	return okString(in, "")
}

func traceRemove(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) != 4 {
		return wrongArgs(in, "trace remove type name opList command")
	}
	kind, ok := traceKindOf(in.ops.Bytes(args[0]))
	if !ok {
		return errResult(in, "bad trace type %q", in.ops.Bytes(args[0]))
	}
	opsList, err := in.ops.ParseList(args[2])
	if err != nil {
		return errResult(in, "%s", err.Error())
	}
	var opNames []string
	for _, o := range in.ops.Items(opsList) {
		opNames = append(opNames, in.ops.Bytes(o))
	}
	script, err := in.ops.ParseList(args[3])
	if err != nil {
		return errResult(in, "%s", err.Error())
	}
	name := traceNameKey(in, kind, in.ops.Bytes(args[1]))
	in.ops.Remove(kind, name, opNames, script)
	return okString(in, "")
}

func traceInfoCmd(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) != 2 {
		return wrongArgs(in, "trace info type name")
	}
	kind, ok := traceKindOf(in.ops.Bytes(args[0]))
	if !ok {
		return errResult(in, "bad trace type %q", in.ops.Bytes(args[0]))
	}
	name := traceNameKey(in, kind, in.ops.Bytes(args[1]))
	regs := in.ops.TraceInfo(kind, name)
	items := make([]hostops.Handle, len(regs))
	for i, r := range regs {
		opsH := in.ops.Intern(strings.Join(r.Ops, " "))
		items[i] = in.ops.NewList(opsH, r.Script)
	}
	return okResult(in, in.ops.NewList(items...))
}

// traceNameKey resolves a trace's subject name to the key used in the
// trace table: for variable traces the link-resolved target per spec.md
// section 4.I, for command/execution traces the bare command name. A
// "::"-qualified variable name resolves against its namespace directly,
// mirroring the containsNS branch in getVar/setVar/unsetVar, since such a
// name never passes through a frame's link table.
func traceNameKey(in *Interp, kind hostops.TraceKind, name string) string {
	if kind != hostops.TraceVariable {
		return name
	}
	if containsNS(name) {
		level := in.activeLevel()
		ns := in.ops.Resolve(in.ops.GetNamespace(level), parentNSOf(name))
		return nsQualKey(ns, simpleNameOf(name))
	}
	return in.linkResolvedKey(in.activeLevel(), name)
}

func biExpr(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) == 0 {
		return wrongArgs(in, "expr arg ?arg ...?")
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = in.ops.Bytes(a)
	}
	return in.EvalExpr(in.ops.Intern(strings.Join(parts, " ")))
}

func biUnknown(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) == 0 {
		return wrongArgs(in, "unknown commandName ?arg ...?")
	}
	return errResult(in, "invalid command name %q", in.ops.Bytes(args[0]))
}
