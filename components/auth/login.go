package auth

import (
	"context"
	"fmt"

	"github.com/yanizio/staffdesk/internal/api"
	"github.com/yanizio/staffdesk/internal/form"
	"github.com/yanizio/staffdesk/internal/logger"
	"github.com/yanizio/staffdesk/internal/message"
	"github.com/yanizio/staffdesk/internal/session"
)

// NewLogin returns a controller for the login form.
func NewLogin(d Deps, opts ...form.Option) *form.Controller {
	ensureForms()
	return form.NewController(form.MustFormDef(LoginFormID), &loginAction{d: d}, opts...)
}

type loginAction struct{ d Deps }

// Send posts the (already trimmed) credentials.
func (a *loginAction) Send(ctx context.Context, v form.Values) (form.Result, error) {
	res, err := a.d.API.Login(ctx, api.LoginRequest{Email: v["email"], Password: v["password"]})
	if err != nil {
		return form.Result{}, err
	}
	return form.Result{
		Success: res.Success,
		Message: res.Message,
		Payload: session.Session{Token: res.Token, Role: res.Role, ID: res.ID.String()},
	}, nil
}

// Succeeded persists the session first, then navigates by role.  A role
// with no destination gets a blocking warning and no navigation.
func (a *loginAction) Succeeded(ctx context.Context, r form.Result) error {
	sess, ok := r.Payload.(session.Session)
	if !ok {
		return fmt.Errorf("login: unexpected payload %T", r.Payload)
	}
	if err := a.d.store().Set(sess); err != nil {
		return err
	}
	logger.FromContext(ctx).Infow("session stored", "role", sess.Role, "id", sess.ID)

	router := a.d.router()
	dest, ok := router.Resolve(sess.Role)
	if !ok {
		if a.d.Notices != nil {
			a.d.Notices.Show(message.Notice{Kind: message.Warning, Text: router.Warning})
		}
		return nil
	}
	if a.d.Navigator == nil {
		return nil
	}
	return a.d.Navigator.Navigate(dest)
}
