// components/employee/employee.go
//
// staffdesk employee component – the add-employee dialog.
//
//------------------------------------------------------------------------------

package employee

import (
	"context"
	"embed"
	"io/fs"
	"sync"

	"github.com/yanizio/staffdesk/internal/api"
	"github.com/yanizio/staffdesk/internal/component"
	"github.com/yanizio/staffdesk/internal/form"
)

// AddFormID identifies the add-employee form.
const AddFormID = "employee/add"

//go:embed forms/*.yaml
var formsFS embed.FS

var _ component.Component = (*Component)(nil)

// Component encapsulates the employee forms.
type Component struct{}

func (c *Component) Name() string { return "employee" }

func (c *Component) Forms() fs.FS {
	sub, _ := fs.Sub(formsFS, "forms")
	return sub
}

func init() { component.Register(&Component{}) }

var formsOnce sync.Once

func ensureForms() {
	formsOnce.Do(func() {
		if err := form.RegisterFS((&Component{}).Forms()); err != nil {
			panic(err)
		}
	})
}

// Client is the part of the backend API this component uses.
type Client interface {
	AddEmployee(ctx context.Context, token string, req api.EmployeeRequest) (*api.AddEmployeeResponse, error)
}

// Dialog is the surface hosting the form.  It is closed after a successful
// add.
type Dialog interface {
	Close()
}

// DialogFunc adapts a function to Dialog.
type DialogFunc func()

// Close implements Dialog.
func (f DialogFunc) Close() { f() }
