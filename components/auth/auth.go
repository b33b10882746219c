// components/auth/auth.go
//
// staffdesk authentication component – login and signup forms.
//
//------------------------------------------------------------------------------

package auth

import (
	"context"
	"embed"
	"io/fs"
	"sync"

	"github.com/yanizio/staffdesk/internal/api"
	"github.com/yanizio/staffdesk/internal/component"
	"github.com/yanizio/staffdesk/internal/form"
	"github.com/yanizio/staffdesk/internal/message"
	"github.com/yanizio/staffdesk/internal/nav"
	"github.com/yanizio/staffdesk/internal/session"
)

// Form IDs.
const (
	LoginFormID  = "auth/login"
	SignupFormID = "auth/signup"
)

// LoginPath is where a successful signup sends the user.
const LoginPath = "/login"

//go:embed forms/*.yaml
var formsFS embed.FS

// Compile-time assertion: *Component satisfies component.Component.
var _ component.Component = (*Component)(nil)

// Component encapsulates the auth forms.
type Component struct{}

// Name returns the canonical component key.
func (c *Component) Name() string { return "auth" }

// Forms returns the embedded definitions.
func (c *Component) Forms() fs.FS {
	sub, _ := fs.Sub(formsFS, "forms")
	return sub
}

// Register component at program start.
func init() { component.Register(&Component{}) }

var formsOnce sync.Once

// ensureForms registers this component's definitions even when the caller
// never ran component.LoadForms.
func ensureForms() {
	formsOnce.Do(func() {
		if err := form.RegisterFS((&Component{}).Forms()); err != nil {
			panic(err) // embedded definitions are covered by tests
		}
	})
}

/*──────────────────────────── dependencies ────────────────────────────────*/

// Client is the part of the backend API the auth forms use.  *api.Client
// satisfies it.
type Client interface {
	Login(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error)
	Signup(ctx context.Context, req api.EmployeeRequest) (*api.SignupResponse, error)
}

// Deps are the collaborators supplied by the host.
type Deps struct {
	API       Client
	Session   *session.Store // nil means session.Default()
	Router    *nav.Router // nil means nav.DefaultRoutes()
	Navigator nav.Navigator
	Notices   message.Sink
}

func (d *Deps) router() *nav.Router {
	if d.Router != nil {
		return d.Router
	}
	return nav.NewRouter(nav.DefaultRoutes())
}

func (d *Deps) store() *session.Store {
	if d.Session != nil {
		return d.Session
	}
	return session.Default()
}
