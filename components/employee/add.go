package employee

import (
	"context"
	"errors"

	"github.com/yanizio/staffdesk/internal/api"
	"github.com/yanizio/staffdesk/internal/form"
	"github.com/yanizio/staffdesk/internal/session"
)

// errNoEmployee marks a success reply that carried no record.
var errNoEmployee = errors.New("employee: reply has no employee record")

// Deps are the collaborators supplied by the host.
type Deps struct {
	API     Client
	Session *session.Store // nil means session.Default()

	// OnAdded receives the created record.  It runs before Dialog.Close.
	OnAdded func(*api.Employee)
	Dialog  Dialog
}

// NewAdd returns a controller for the add-employee form.
func NewAdd(d Deps, opts ...form.Option) *form.Controller {
	ensureForms()
	return form.NewController(form.MustFormDef(AddFormID), &addAction{d: d}, opts...)
}

type addAction struct{ d Deps }

// Send posts the raw values with the session token current at submit time.
// No session means an empty token; the backend decides.
func (a *addAction) Send(ctx context.Context, v form.Values) (form.Result, error) {
	store := a.d.Session
	if store == nil {
		store = session.Default()
	}
	res, err := a.d.API.AddEmployee(ctx, store.Token(), api.EmployeeRequest{
		Name:     v["name"],
		Email:    v["email"],
		Password: v["password"],
		Role:     v["role"],
	})
	if err != nil {
		return form.Result{}, err
	}
	return form.Result{Success: res.Success, Message: res.Message, Payload: res.Employee}, nil
}

// Succeeded hands the record to the host and closes the dialog.
func (a *addAction) Succeeded(_ context.Context, r form.Result) error {
	emp, _ := r.Payload.(*api.Employee)
	if emp == nil {
		return errNoEmployee
	}
	if a.d.OnAdded != nil {
		a.d.OnAdded(emp)
	}
	if a.d.Dialog != nil {
		a.d.Dialog.Close()
	}
	return nil
}
