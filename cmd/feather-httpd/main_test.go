package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/featherscript/feather"
)

func newTestServer() *HTTPServer {
	i := feather.New()
	s := &HTTPServer{
		interp:      i,
		routes:      make(map[string]string),
		templateDir: "templates",
		templates:   make(map[string]*TemplateInfo),
	}
	s.registerCommands()
	return s
}

func TestRouteRegistersAndServesAHandler(t *testing.T) {
	s := newTestServer()

	if _, err := s.interp.Eval(`route GET /hello {response "hi there"}`); err != nil {
		t.Fatalf("route: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/hello", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "hi there" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestUnmatchedRouteReturns404(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestRouteCanSetStatusAndHeaders(t *testing.T) {
	s := newTestServer()
	if _, err := s.interp.Eval(`route GET /created {
		status 201
		header X-Created yes
		response "ok"
	}`); err != nil {
		t.Fatalf("route: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/created", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
	if rec.Header().Get("X-Created") != "yes" {
		t.Errorf("header X-Created = %q", rec.Header().Get("X-Created"))
	}
}

func TestRequestCommandExposesMethodPathAndQuery(t *testing.T) {
	s := newTestServer()
	if _, err := s.interp.Eval(`route GET /echo {
		response "[request method] [request path] [request query name]"
	}`); err != nil {
		t.Fatalf("route: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/echo?name=world", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if got, want := rec.Body.String(), "GET /echo world"; got != want {
		t.Errorf("body = %q, want %q", got, want)
	}
}

func TestTclToGoDataConvertsNestedListsAndDicts(t *testing.T) {
	i := feather.New()
	dict := i.DictKV("name", "Alice", "tags", i.ListFrom([]string{"a", "b"}))

	data, ok := tclToGoData(dict).(map[string]any)
	if !ok {
		t.Fatalf("tclToGoData returned %T, want map[string]any", tclToGoData(dict))
	}
	if data["name"] != "Alice" {
		t.Errorf("name = %v", data["name"])
	}
	tags, ok := data["tags"].([]any)
	if !ok || len(tags) != 2 || tags[0] != "a" || tags[1] != "b" {
		t.Errorf("tags = %v", data["tags"])
	}
}
