// Package nav decides where the client goes after a login.
//
// The destination for each role is supplied by the caller (configuration
// `routes`).  Roles without an entry are not navigated anywhere; the caller
// shows Router.Warning instead.
package nav

import "sync"

// MsgUnauthorized is the default warning for unmapped roles.
const MsgUnauthorized = "Unauthorized access"

// DefaultDestination is where both built-in roles land.
const DefaultDestination = "/admin-dashboard"

// DefaultRoutes returns the portal's built-in mapping: admin and employee
// both open the administrative dashboard.
func DefaultRoutes() map[string]string {
	return map[string]string{
		"admin":    DefaultDestination,
		"employee": DefaultDestination,
	}
}

// Navigator opens a destination path.
type Navigator interface {
	Navigate(path string) error
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string) error

// Navigate implements Navigator.
func (f NavigatorFunc) Navigate(path string) error { return f(path) }

// Router maps roles onto destinations.
type Router struct {
	routes  map[string]string
	Warning string
}

// NewRouter copies routes.  An empty map routes nobody.
func NewRouter(routes map[string]string) *Router {
	r := &Router{routes: make(map[string]string, len(routes)), Warning: MsgUnauthorized}
	for role, dest := range routes {
		r.routes[role] = dest
	}
	return r
}

// Resolve returns the destination for role.
func (r *Router) Resolve(role string) (string, bool) {
	dest, ok := r.routes[role]
	return dest, ok && dest != ""
}

// Recorder is a Navigator that remembers every destination.  Safe for
// concurrent use.
type Recorder struct {
	mu    sync.Mutex
	paths []string
}

// Navigate implements Navigator.
func (r *Recorder) Navigate(path string) error {
	r.mu.Lock()
	r.paths = append(r.paths, path)
	r.mu.Unlock()
	return nil
}

// Paths returns every destination so far.
func (r *Recorder) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}
