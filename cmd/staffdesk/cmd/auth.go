package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yanizio/staffdesk/components/auth"
	"github.com/yanizio/staffdesk/internal/form"
	"github.com/yanizio/staffdesk/internal/message"
	"github.com/yanizio/staffdesk/internal/nav"
)

// navigator reports the destination; a terminal has nowhere to go.
func (a *app) navigator() nav.Navigator {
	return nav.NavigatorFunc(func(path string) error {
		a.console.Show(message.Notice{Kind: message.Info, Text: fmt.Sprintf("Continue at %s%s", a.cfg.API.BaseURL, path)})
		return nil
	})
}

func (a *app) authDeps() auth.Deps {
	return auth.Deps{
		API:       a.client,
		Session:   a.store,
		Router:    a.router,
		Navigator: a.navigator(),
		Notices:   a.console,
	}
}

func (a *app) formOpts() []form.Option {
	return []form.Option{form.WithPolicy(a.policy), form.WithLogger(a.log)}
}

func newLoginCmd(a *app) *cobra.Command {
	return formCommand(auth.LoginFormID, &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Example: `  staffdesk login --email ann@corp.io
  staffdesk login --email ann@corp.io --password 'Abcdef1!'`,
	}, func() *form.Controller {
		return auth.NewLogin(a.authDeps(), a.formOpts()...)
	})
}

func newSignupCmd(a *app) *cobra.Command {
	return formCommand(auth.SignupFormID, &cobra.Command{
		Use:     "signup",
		Short:   "Register a new account",
		Example: `  staffdesk signup --name Ann --email ann@corp.io --role employee`,
	}, func() *form.Controller {
		return auth.NewSignup(a.authDeps(), a.formOpts()...)
	})
}
