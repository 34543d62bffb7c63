// Package host is the default Host Operations Interface implementation:
// a pure Go, cgo-free object store, namespace tree, frame stack, and
// trace table satisfying internal/core/hostops.Ops.
package host

import (
	"github.com/hashicorp/go-hclog"

	"github.com/featherscript/feather/internal/core/hostops"
)

// Host is the concrete hostops.Ops implementation. Its methods are spread
// across the other files in this package by concern (strings, runes,
// scalars, lists, dicts, frames, namespaces, commands, traces); this file
// holds the struct itself and the pieces with no more specific home: the
// interpreter-level result slot and the unknown-command hook.
type Host struct {
	log hclog.Logger

	store      *store
	namespaces map[string]*namespace
	frames     []*frame
	active     int

	traces     map[traceKey][]hostops.TraceReg
	traceGuard bool

	result        hostops.Handle
	returnOptions hostops.Handle
	scriptPath    string

	unknown hostops.BuiltinFunc
}

// NewHost constructs a Host with the global namespace and frame 0 already
// in place, mirroring how the teacher's default interpreter bootstraps
// itself before any script runs. A nil logger falls back to hclog's
// default sink.
func NewHost(log hclog.Logger) *Host {
	if log == nil {
		log = hclog.Default()
	}
	h := &Host{
		log:        log.Named("feather.host"),
		store:      newStore(),
		namespaces: map[string]*namespace{globalPath: newNamespace(globalPath)},
		traces:     map[traceKey][]hostops.TraceReg{},
	}
	h.frames = []*frame{newFrame(hostops.Nil, nil, globalPath)}
	// Frame 0 is bound to the global namespace: top-level variables and
	// "::" namespace variables are one table.
	h.frames[0].vars = h.namespaces[globalPath].vars
	h.result = h.Intern("")
	h.returnOptions = h.NewDict()
	return h
}

func (h *Host) SetResult(v hostops.Handle) { h.result = v }
func (h *Host) GetResult() hostops.Handle  { return h.result }
func (h *Host) ResetResult()               { h.result = h.Intern("") }

func (h *Host) SetReturnOptions(v hostops.Handle) { h.returnOptions = v }
func (h *Host) GetReturnOptions() hostops.Handle  { return h.returnOptions }

func (h *Host) GetScript() string       { return h.scriptPath }
func (h *Host) SetScript(path string)   { h.scriptPath = path }

func (h *Host) UnknownHandler() hostops.BuiltinFunc { return h.unknown }
func (h *Host) SetUnknownHandler(fn hostops.BuiltinFunc) {
	h.unknown = fn
}

// Logger exposes the host's hclog.Logger for builtins and the engine to
// log diagnostics (malformed traces, host-boundary errors) without
// threading a separate logger parameter through every call.
func (h *Host) Logger() hclog.Logger { return h.log }
