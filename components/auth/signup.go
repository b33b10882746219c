package auth

import (
	"context"

	"github.com/yanizio/staffdesk/internal/api"
	"github.com/yanizio/staffdesk/internal/form"
)

// NewSignup returns a controller for the signup form.
func NewSignup(d Deps, opts ...form.Option) *form.Controller {
	ensureForms()
	return form.NewController(form.MustFormDef(SignupFormID), &signupAction{d: d}, opts...)
}

type signupAction struct{ d Deps }

// Send posts the raw values.  A 2xx reply counts as success unless the
// backend says otherwise with "success": false.
func (a *signupAction) Send(ctx context.Context, v form.Values) (form.Result, error) {
	res, err := a.d.API.Signup(ctx, api.EmployeeRequest{
		Name:     v["name"],
		Email:    v["email"],
		Password: v["password"],
		Role:     v["role"],
	})
	if err != nil {
		return form.Result{}, err
	}
	ok := res.Success == nil || *res.Success
	return form.Result{Success: ok, Message: res.Message, Payload: res.Message}, nil
}

// Succeeded sends the new user to the login form.
func (a *signupAction) Succeeded(_ context.Context, _ form.Result) error {
	if a.d.Navigator == nil {
		return nil
	}
	return a.d.Navigator.Navigate(LoginPath)
}
