package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/featherscript/feather"
	"github.com/hashicorp/go-hclog"
)

// registerHostCommands adds the I/O commands a pure engine has none of
// (spec.md's core "performs no I/O"): puts unconditionally, and the
// exec-style commands config.HostExec gates, since those touch the
// surrounding OS and are unsafe to expose to untrusted scripts.
func registerHostCommands(i *feather.Interp, cfg *config, logger hclog.Logger) {
	i.RegisterCommand("puts", cmdPuts)

	if !cfg.HostExec {
		return
	}
	logger.Debug("host exec commands enabled")
	i.RegisterCommand("exec", cmdExec)
}

// cmdPuts implements puts ?-nonewline? ?stdout|stderr? string, the
// minimal subset feathersh scripts need to produce output.
func cmdPuts(i *feather.Interp, cmd *feather.Obj, args []*feather.Obj) feather.Result {
	nonewline := false
	target := os.Stdout

	if len(args) > 0 && args[0].String() == "-nonewline" {
		nonewline = true
		args = args[1:]
	}
	if len(args) == 2 {
		switch args[0].String() {
		case "stdout":
			target = os.Stdout
			args = args[1:]
		case "stderr":
			target = os.Stderr
			args = args[1:]
		}
	}
	if len(args) != 1 {
		return feather.Errorf(`wrong # args: should be "%s ?-nonewline? ?channel? string"`, cmd.String())
	}

	fmt.Fprint(target, args[0].String())
	if !nonewline {
		fmt.Fprintln(target)
	}
	return feather.OK("")
}

// cmdExec runs an external command and returns its combined output,
// trimmed of a single trailing newline the way Tcl's exec does.
func cmdExec(i *feather.Interp, cmd *feather.Obj, args []*feather.Obj) feather.Result {
	if len(args) == 0 {
		return feather.Errorf(`wrong # args: should be "%s command ?arg ...?"`, cmd.String())
	}
	parts := make([]string, len(args))
	for j, a := range args {
		parts[j] = a.String()
	}
	out, err := exec.Command(parts[0], parts[1:]...).CombinedOutput()
	trimmed := strings.TrimSuffix(string(out), "\n")
	if err != nil {
		return feather.Error(fmt.Sprintf("%s\n%s", trimmed, err.Error()))
	}
	return feather.OK(trimmed)
}
