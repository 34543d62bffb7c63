package core

import "github.com/featherscript/feather/internal/core/hostops"

func biInfo(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) < 1 {
		return wrongArgs(in, "info subcommand ?arg ...?")
	}
	sub := in.ops.Bytes(args[0])
	rest := args[1:]
	switch sub {
	case "commands":
		return infoCommands(in, rest)
	case "procs":
		return infoProcs(in, rest)
	case "vars":
		return infoVars(in, rest)
	case "locals":
		return infoLocals(in, rest)
	case "globals":
		return infoGlobals(in, rest)
	case "level":
		return infoLevel(in, rest)
	case "frame":
		return infoFrame(in, rest)
	case "body":
		return infoBody(in, rest)
	case "args":
		return infoArgs(in, rest)
	case "default":
		return infoDefault(in, rest)
	case "exists":
		return infoExists(in, rest)
	case "script":
		return okString(in, in.ops.GetScript())
	case "nameofexecutable":
		return okString(in, "")
	case "tclversion", "patchlevel", "feathersversion":
		return okString(in, "1.0")
	default:
		return errResult(in, "unknown or ambiguous subcommand %q to \"info\"", sub)
	}
}

func infoCommands(in *Interp, args []hostops.Handle) hostops.Result {
	ns := in.ops.GetNamespace(in.activeLevel())
	names := in.ops.CommandNames(ns)
	if ns != "::" {
		names = append(names, in.ops.CommandNames("::")...)
	}
	return namesResult(in, names, args)
}

func infoProcs(in *Interp, args []hostops.Handle) hostops.Result {
	ns := in.ops.GetNamespace(in.activeLevel())
	var procs []string
	for _, name := range in.ops.CommandNames(ns) {
		kind, _, _, _, ok := in.ops.LookupQualified(ns, name)
		if ok && kind == hostops.CommandProc {
			procs = append(procs, name)
		}
	}
	return namesResult(in, procs, args)
}

func namesResult(in *Interp, names []string, patternArgs []hostops.Handle) hostops.Result {
	if len(patternArgs) > 1 {
		return wrongArgs(in, "info commands ?pattern?")
	}
	var out []hostops.Handle
	if len(patternArgs) == 1 {
		for _, n := range names {
			if in.ops.Match(patternArgs[0], in.ops.Intern(n), false) {
				out = append(out, in.ops.Intern(n))
			}
		}
	} else {
		for _, n := range names {
			out = append(out, in.ops.Intern(n))
		}
	}
	return okResult(in, in.ops.NewList(out...))
}

func infoVars(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) > 1 {
		return wrongArgs(in, "info vars ?pattern?")
	}
	names := in.ops.Names(in.activeLevel())
	return namesResult(in, names, args)
}

func infoLocals(in *Interp, args []hostops.Handle) hostops.Result {
	return infoVars(in, args)
}

func infoGlobals(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) > 1 {
		return wrongArgs(in, "info globals ?pattern?")
	}
	names := in.ops.NSVarNames("::")
	return namesResult(in, names, args)
}

func infoLevel(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) == 0 {
		return okResult(in, in.ops.NewInt(int64(in.ops.Level())))
	}
	if len(args) != 1 {
		return wrongArgs(in, "info level ?number?")
	}
	n, err := needInt(in, args[0])
	if err != nil {
		return errResult(in, "%s", err.Error())
	}
	level := int(n)
	if level < 0 {
		level = in.ops.Level() + level
	}
	fi, ok := in.ops.Info(level)
	if !ok {
		return errResult(in, "bad level %q", in.ops.Bytes(args[0]))
	}
	items := append([]hostops.Handle{fi.Cmd}, fi.Args...)
	return okResult(in, in.ops.NewList(items...))
}

func infoFrame(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) == 0 {
		return okResult(in, in.ops.NewInt(int64(in.ops.Size())))
	}
	if len(args) != 1 {
		return wrongArgs(in, "info frame ?number?")
	}
	n, err := needInt(in, args[0])
	if err != nil {
		return errResult(in, "%s", err.Error())
	}
	fi, ok := in.ops.Info(int(n))
	if !ok {
		return errResult(in, "bad level %q", in.ops.Bytes(args[0]))
	}
	d := in.ops.NewDict()
	d = in.ops.Set(d, in.ops.Intern("cmd"), fi.Cmd)
	d = in.ops.Set(d, in.ops.Intern("proc"), in.ops.Intern(fi.Namespace))
	return okResult(in, d)
}

func infoBody(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) != 1 {
		return wrongArgs(in, "info body procname")
	}
	ns := in.ops.GetNamespace(in.activeLevel())
	name := in.ops.Bytes(args[0])
	kind, _, _, body, _, ok := in.resolveCommand(ns, name)
	if !ok || kind != hostops.CommandProc {
		return errResult(in, "%q isn't a procedure", name)
	}
	return okResult(in, body)
}

func infoArgs(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) != 1 {
		return wrongArgs(in, "info args procname")
	}
	ns := in.ops.GetNamespace(in.activeLevel())
	name := in.ops.Bytes(args[0])
	kind, _, params, _, _, ok := in.resolveCommand(ns, name)
	if !ok || kind != hostops.CommandProc {
		return errResult(in, "%q isn't a procedure", name)
	}
	out := make([]hostops.Handle, len(params))
	for i, p := range params {
		out[i] = in.ops.Intern(p.Name)
	}
	return okResult(in, in.ops.NewList(out...))
}

func infoDefault(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) != 3 {
		return wrongArgs(in, "info default procname arg varname")
	}
	ns := in.ops.GetNamespace(in.activeLevel())
	name := in.ops.Bytes(args[0])
	argName := in.ops.Bytes(args[1])
	kind, _, params, _, _, ok := in.resolveCommand(ns, name)
	if !ok || kind != hostops.CommandProc {
		return errResult(in, "%q isn't a procedure", name)
	}
	for _, p := range params {
		if p.Name != argName {
			continue
		}
		if p.HasDefault {
			in.setVar(in.activeLevel(), in.ops.Bytes(args[2]), p.Default)
			return okResult(in, in.ops.NewInt(1))
		}
		return okResult(in, in.ops.NewInt(0))
	}
	return errResult(in, "procedure %q doesn't have an argument %q", name, argName)
}

func infoExists(in *Interp, args []hostops.Handle) hostops.Result {
	if len(args) != 1 {
		return wrongArgs(in, "info exists varName")
	}
	return okResult(in, in.ops.NewInt(boolInt(in.varExists(in.activeLevel(), in.ops.Bytes(args[0])))))
}
