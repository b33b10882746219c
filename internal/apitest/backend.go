// Package apitest runs an in-process stand-in for the portal backend.  It
// serves the three form endpoints through a chi router, records every
// request, and lets a test swap any endpoint's behaviour.
package apitest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/staffdesk/internal/api"
)

// Request is one call the backend received.
type Request struct {
	Path   string
	Header http.Header
	Body   map[string]string
}

// Bearer returns the token from the Authorization header, if any.
func (r Request) Bearer() (string, bool) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(h, "Bearer "), true
}

// Backend is a running fake.  URL is the base to hand to api.New.
type Backend struct {
	*httptest.Server

	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	requests []Request
}

// New starts a Backend with default handlers and stops it on cleanup.
//
// Defaults: login succeeds as an employee with token "T" and id "1"; signup
// replies with a message; add echoes the submitted employee back.
func New(t testing.TB) *Backend {
	t.Helper()

	b := &Backend{
		handlers: map[string]http.HandlerFunc{
			api.PathLogin: JSON(http.StatusOK, map[string]any{
				"success": true, "token": "T", "role": "employee", "id": "1",
			}),
			api.PathSignup: JSON(http.StatusCreated, map[string]any{
				"message": "User registered successfully.",
			}),
			api.PathAdd: echoEmployee,
		},
	}

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/login", b.dispatch(api.PathLogin))
		r.Post("/signup", b.dispatch(api.PathSignup))
		r.Post("/add", b.dispatch(api.PathAdd))
	})

	b.Server = httptest.NewServer(r)
	t.Cleanup(b.Close)
	return b
}

// Handle replaces the handler for path.
func (b *Backend) Handle(path string, h http.HandlerFunc) {
	b.mu.Lock()
	b.handlers[path] = h
	b.mu.Unlock()
}

// Requests returns a copy of everything received so far.
func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Request, len(b.requests))
	copy(out, b.requests)
	return out
}

// Count returns how many requests hit path.
func (b *Backend) Count(path string) int {
	n := 0
	for _, r := range b.Requests() {
		if r.Path == path {
			n++
		}
	}
	return n
}

func (b *Backend) dispatch(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		body := map[string]string{}
		_ = json.Unmarshal(raw, &body)

		b.mu.Lock()
		b.requests = append(b.requests, Request{Path: path, Header: r.Header.Clone(), Body: body})
		h := b.handlers[path]
		b.mu.Unlock()

		// Handlers that inspect the body read it again.
		r.Body = io.NopCloser(strings.NewReader(string(raw)))
		h(w, r)
	}
}

/*──────────────────────────── canned handlers ─────────────────────────────*/

// JSON replies with status and v encoded as JSON.
func JSON(status int, v any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}
}

// Raw replies with status and an unparsed body.
func Raw(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

// Drop closes the connection without replying, which the client sees as a
// transport failure.
func Drop() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		hj, ok := w.(http.Hijacker)
		if !ok {
			http.Error(w, "hijack unsupported", http.StatusInternalServerError)
			return
		}
		conn, _, err := hj.Hijack()
		if err == nil {
			_ = conn.Close()
		}
	}
}

// Hold blocks until release is closed or the client goes away, then runs
// next.  Tests use it to keep a request in flight.
func Hold(release <-chan struct{}, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
			return
		}
		next(w, r)
	}
}

func echoEmployee(w http.ResponseWriter, r *http.Request) {
	var in api.EmployeeRequest
	_ = json.NewDecoder(r.Body).Decode(&in)
	JSON(http.StatusCreated, map[string]any{
		"success": true,
		"employee": map[string]any{
			"_id":   "e-1",
			"name":  in.Name,
			"email": in.Email,
			"role":  in.Role,
		},
	})(w, r)
}
