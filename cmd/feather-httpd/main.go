// feather-httpd is an example HTTP server configurable via the feather TCL interpreter.
//
// Usage:
//
//	feather-httpd [script.tcl]
//
// If a script is provided, it is evaluated at startup. Then, a REPL is started
// for interactive configuration. The server can be controlled via TCL commands:
//
//	route GET /path {script}   - register a route handler
//	listen 8080                - start the HTTP server on a port
//	stop                       - stop the HTTP server
//	response body              - set response body (in handler context)
//	status code                - set HTTP status code (in handler context)
//	header name value          - set response header (in handler context)
//	request method             - get request method (in handler context)
//	request path               - get request path (in handler context)
//	request header name        - get request header (in handler context)
//	request query name         - get query parameter (in handler context)
//	template list              - list available templates
//	template show name         - show template source
//	template render name data  - render template with data to response
//	template errors            - get dict of templates with parse errors
//
// Templates are loaded from the "templates" directory and automatically
// reloaded when files change. Supported extensions: .html, .tmpl
//
// Example session:
//
//	% route GET / {response "Hello, World!"}
//	% route GET /path {response [request path]}
//	% listen 8080
//	Listening on :8080
//	% stop
//	Server stopped
package main

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/featherscript/feather"
	"github.com/featherscript/feather/internal/replline"
)

// TemplateInfo holds a parsed template and its file modification time.
type TemplateInfo struct {
	Template *template.Template
	ModTime  int64
	Error    error
}

// HTTPServer wraps an HTTP server with feather integration.
type HTTPServer struct {
	interp      *feather.Interp
	server      *http.Server
	mu          sync.RWMutex
	routes      map[string]string // "METHOD /path" -> script
	running     bool
	templateDir string
	templates   map[string]*TemplateInfo
	templateMu  sync.RWMutex
}

// RequestContext holds per-request state for handler scripts.
type RequestContext struct {
	Request      *http.Request
	StatusCode   int
	Headers      map[string]string
	ResponseBody string
}

// Global request context; feather.Interp is not safe for concurrent use,
// so route scripts execute one at a time and this can be a plain global.
var currentRequest *RequestContext
var requestMu sync.Mutex
var evalMu sync.Mutex

func main() {
	i := feather.New()

	srv := &HTTPServer{
		interp:      i,
		routes:      make(map[string]string),
		templateDir: "templates",
		templates:   make(map[string]*TemplateInfo),
	}
	srv.registerCommands()

	if len(os.Args) > 1 {
		script, err := os.ReadFile(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "error reading script: %v\n", err)
			os.Exit(1)
		}
		if _, err := i.Eval(string(script)); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	stat, _ := os.Stdin.Stat()
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		runREPL(i)
		return
	}

	script, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading stdin: %v\n", err)
		os.Exit(1)
	}
	if len(script) > 0 {
		if _, err := i.Eval(string(script)); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	srv.mu.RLock()
	running := srv.running
	srv.mu.RUnlock()
	if running {
		select {}
	}
}

func (s *HTTPServer) registerCommands() {
	s.interp.RegisterCommand("route", s.cmdRoute)
	s.interp.RegisterCommand("listen", s.cmdListen)
	s.interp.RegisterCommand("stop", s.cmdStop)
	s.interp.RegisterCommand("response", s.cmdResponse)
	s.interp.RegisterCommand("status", s.cmdStatus)
	s.interp.RegisterCommand("header", s.cmdHeader)
	s.interp.RegisterCommand("request", s.cmdRequest)
	s.interp.RegisterCommand("template", s.cmdTemplate)
}

// cmdRoute registers a route handler.
// Usage: route METHOD /path {script}
func (s *HTTPServer) cmdRoute(i *feather.Interp, cmd *feather.Obj, args []*feather.Obj) feather.Result {
	if len(args) < 3 {
		return feather.Errorf(`wrong # args: should be "%s method path script"`, cmd.String())
	}

	key := strings.ToUpper(args[0].String()) + " " + args[1].String()
	s.mu.Lock()
	s.routes[key] = args[2].String()
	s.mu.Unlock()

	return feather.OK("")
}

// cmdListen starts the HTTP server.
// Usage: listen port
func (s *HTTPServer) cmdListen(i *feather.Interp, cmd *feather.Obj, args []*feather.Obj) feather.Result {
	if len(args) < 1 {
		return feather.Errorf(`wrong # args: should be "%s port"`, cmd.String())
	}

	addr := ":" + args[0].String()

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return feather.Error("server already running")
	}
	s.server = &http.Server{Addr: addr, Handler: s}
	s.running = true
	s.mu.Unlock()

	go func() {
		err := s.server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		}
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	fmt.Printf("Listening on %s\n", addr)
	return feather.OK("")
}

// cmdStop stops the HTTP server.
// Usage: stop
func (s *HTTPServer) cmdStop(i *feather.Interp, cmd *feather.Obj, args []*feather.Obj) feather.Result {
	s.mu.Lock()
	if !s.running || s.server == nil {
		s.mu.Unlock()
		return feather.Error("server not running")
	}
	server := s.server
	s.mu.Unlock()

	if err := server.Shutdown(context.Background()); err != nil {
		return feather.Errorf("shutdown error: %v", err)
	}

	fmt.Println("Server stopped")
	return feather.OK("")
}

// cmdResponse sets the response body.
// Usage: response body
func (s *HTTPServer) cmdResponse(i *feather.Interp, cmd *feather.Obj, args []*feather.Obj) feather.Result {
	ctx := activeRequest()
	if ctx == nil {
		return feather.Error("response: not in request context")
	}
	if len(args) < 1 {
		return feather.Errorf(`wrong # args: should be "%s body"`, cmd.String())
	}
	ctx.ResponseBody = args[0].String()
	return feather.OK("")
}

// cmdStatus sets the HTTP status code.
// Usage: status code
func (s *HTTPServer) cmdStatus(i *feather.Interp, cmd *feather.Obj, args []*feather.Obj) feather.Result {
	ctx := activeRequest()
	if ctx == nil {
		return feather.Error("status: not in request context")
	}
	if len(args) < 1 {
		return feather.Errorf(`wrong # args: should be "%s code"`, cmd.String())
	}
	code, err := args[0].Int()
	if err != nil {
		return feather.Errorf("status: invalid code: %v", err)
	}
	ctx.StatusCode = int(code)
	return feather.OK("")
}

// cmdHeader sets a response header.
// Usage: header name value
func (s *HTTPServer) cmdHeader(i *feather.Interp, cmd *feather.Obj, args []*feather.Obj) feather.Result {
	ctx := activeRequest()
	if ctx == nil {
		return feather.Error("header: not in request context")
	}
	if len(args) < 2 {
		return feather.Errorf(`wrong # args: should be "%s name value"`, cmd.String())
	}
	ctx.Headers[args[0].String()] = args[1].String()
	return feather.OK("")
}

// cmdRequest gets request information.
// Usage: request method | path | header name | query name | body
func (s *HTTPServer) cmdRequest(i *feather.Interp, cmd *feather.Obj, args []*feather.Obj) feather.Result {
	ctx := activeRequest()
	if ctx == nil {
		return feather.Error("request: not in request context")
	}
	if len(args) < 1 {
		return feather.Errorf(`wrong # args: should be "%s subcommand ?arg?"`, cmd.String())
	}

	switch args[0].String() {
	case "method":
		return feather.OK(ctx.Request.Method)
	case "path":
		return feather.OK(ctx.Request.URL.Path)
	case "header":
		if len(args) < 2 {
			return feather.Error(`wrong # args: should be "request header name"`)
		}
		return feather.OK(ctx.Request.Header.Get(args[1].String()))
	case "query":
		if len(args) < 2 {
			return feather.Error(`wrong # args: should be "request query name"`)
		}
		return feather.OK(ctx.Request.URL.Query().Get(args[1].String()))
	case "body":
		body, err := io.ReadAll(ctx.Request.Body)
		if err != nil {
			return feather.Errorf("request body: %v", err)
		}
		return feather.OK(string(body))
	default:
		return feather.Errorf("request: unknown subcommand %q", args[0].String())
	}
}

// refreshTemplates scans the template directory and reloads changed templates.
func (s *HTTPServer) refreshTemplates() {
	s.templateMu.Lock()
	defer s.templateMu.Unlock()

	seen := make(map[string]bool)

	filepath.Walk(s.templateDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext != ".html" && ext != ".tmpl" {
			return nil
		}

		name, err := filepath.Rel(s.templateDir, path)
		if err != nil {
			return nil
		}

		seen[name] = true
		modTime := info.ModTime().UnixNano()

		if existing, ok := s.templates[name]; ok && existing.ModTime == modTime {
			return nil
		}

		tmpl, parseErr := template.ParseFiles(path)
		s.templates[name] = &TemplateInfo{Template: tmpl, ModTime: modTime, Error: parseErr}
		return nil
	})

	for name := range s.templates {
		if !seen[name] {
			delete(s.templates, name)
		}
	}
}

// cmdTemplate handles template subcommands.
// Usage: template list | template render name data | template errors | template show name
func (s *HTTPServer) cmdTemplate(i *feather.Interp, cmd *feather.Obj, args []*feather.Obj) feather.Result {
	if len(args) < 1 {
		return feather.Errorf(`wrong # args: should be "%s subcommand ?args?"`, cmd.String())
	}

	switch args[0].String() {
	case "list":
		return s.cmdTemplateList(i)
	case "render":
		return s.cmdTemplateRender(i, args[1:])
	case "errors":
		return s.cmdTemplateErrors(i)
	case "show":
		return s.cmdTemplateShow(args[1:])
	default:
		return feather.Errorf("template: unknown subcommand %q", args[0].String())
	}
}

func (s *HTTPServer) cmdTemplateList(i *feather.Interp) feather.Result {
	s.refreshTemplates()

	s.templateMu.RLock()
	defer s.templateMu.RUnlock()

	names := make([]string, 0, len(s.templates))
	for name := range s.templates {
		names = append(names, name)
	}
	return feather.OK(i.ListFrom(names))
}

func (s *HTTPServer) cmdTemplateRender(i *feather.Interp, args []*feather.Obj) feather.Result {
	ctx := activeRequest()
	if ctx == nil {
		return feather.Error("template render: not in request context")
	}
	if len(args) < 2 {
		return feather.Error(`wrong # args: should be "template render name data"`)
	}

	name := args[0].String()
	s.refreshTemplates()

	s.templateMu.RLock()
	info, ok := s.templates[name]
	s.templateMu.RUnlock()

	if !ok {
		return feather.Errorf("template render: template %q not found", name)
	}
	if info.Error != nil {
		return feather.Errorf("template render: template %q has parse error: %v", name, info.Error)
	}

	data := tclToGoData(args[1])

	var buf strings.Builder
	if err := info.Template.Execute(&buf, data); err != nil {
		return feather.Errorf("template render: %v", err)
	}

	ctx.ResponseBody = buf.String()
	return feather.OK("")
}

func (s *HTTPServer) cmdTemplateShow(args []*feather.Obj) feather.Result {
	if len(args) < 1 {
		return feather.Error(`wrong # args: should be "template show name"`)
	}
	path := filepath.Join(s.templateDir, args[0].String())
	content, err := os.ReadFile(path)
	if err != nil {
		return feather.Errorf("template show: %v", err)
	}
	return feather.OK(string(content))
}

func (s *HTTPServer) cmdTemplateErrors(i *feather.Interp) feather.Result {
	s.refreshTemplates()

	s.templateMu.RLock()
	defer s.templateMu.RUnlock()

	kvs := make([]any, 0, len(s.templates)*2)
	for name, info := range s.templates {
		if info.Error != nil {
			kvs = append(kvs, name, info.Error.Error())
		}
	}
	return feather.OK(i.DictKV(kvs...))
}

// tclToGoData converts a feather object to Go data suitable for template
// execution, recursing through native lists and dicts without forcing a
// string round trip.
func tclToGoData(obj *feather.Obj) any {
	switch obj.Type() {
	case "dict":
		d, err := obj.Dict()
		if err == nil {
			result := make(map[string]any, len(d.Order))
			for _, key := range d.Order {
				result[key] = tclToGoData(d.Items[key])
			}
			return result
		}
	case "list":
		items, err := obj.List()
		if err == nil {
			result := make([]any, len(items))
			for idx, elem := range items {
				result[idx] = tclToGoData(elem)
			}
			return result
		}
	}
	return obj.String()
}

func activeRequest() *RequestContext {
	requestMu.Lock()
	defer requestMu.Unlock()
	return currentRequest
}

// ServeHTTP implements http.Handler.
func (s *HTTPServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	s.mu.RLock()
	script, ok := s.routes[key]
	s.mu.RUnlock()

	if !ok {
		key = "ANY " + r.URL.Path
		s.mu.RLock()
		script, ok = s.routes[key]
		s.mu.RUnlock()
	}

	if !ok {
		http.NotFound(w, r)
		return
	}

	ctx := &RequestContext{
		Request:    r,
		StatusCode: 200,
		Headers:    make(map[string]string),
	}

	evalMu.Lock()
	defer evalMu.Unlock()

	requestMu.Lock()
	currentRequest = ctx
	requestMu.Unlock()
	defer func() {
		requestMu.Lock()
		currentRequest = nil
		requestMu.Unlock()
	}()

	if _, err := s.interp.Eval(script); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	for name, value := range ctx.Headers {
		w.Header().Set(name, value)
	}
	w.WriteHeader(ctx.StatusCode)
	if ctx.ResponseBody != "" {
		w.Write([]byte(ctx.ResponseBody))
	}
}

func runREPL(i *feather.Interp) {
	editor := replline.New()
	var inputBuffer string

	for {
		prompt := "% "
		if inputBuffer != "" {
			prompt = "> "
		}

		line, err := editor.ReadLine(prompt)
		if err != nil {
			if err == io.EOF {
				return
			}
			if strings.Contains(err.Error(), "interrupted") {
				inputBuffer = ""
				continue
			}
			fmt.Fprintf(os.Stderr, "error reading input: %v\n", err)
			return
		}

		if inputBuffer != "" {
			inputBuffer += "\n" + line
		} else {
			inputBuffer = line
		}

		pr := i.Parse(inputBuffer)
		if pr.Status == feather.ParseIncomplete {
			continue
		}
		if pr.Status == feather.ParseError {
			fmt.Fprintf(os.Stderr, "error: %s\n", pr.Message)
			inputBuffer = ""
			continue
		}

		result, err := i.Eval(inputBuffer)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s\n", err.Error())
		} else if s := result.String(); s != "" {
			fmt.Println(s)
		}
		inputBuffer = ""
	}
}
