package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yanizio/staffdesk/internal/session"
)

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.store.Clear(); err != nil {
				return err
			}
			a.log.Infow("session cleared")
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := a.store.Load()
			if errors.Is(err, session.ErrNoSession) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Not logged in.")
				return errReported
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "role: %s\n", sess.Role)
			fmt.Fprintf(out, "id:   %s\n", sess.ID)
			if exp, ok := sess.Expiry(); ok {
				state := "valid"
				if time.Now().After(exp) {
					state = "expired"
				}
				fmt.Fprintf(out, "token expires %s (%s)\n", exp.Local().Format(time.RFC3339), state)
			}
			if dest, ok := a.router.Resolve(sess.Role); ok {
				fmt.Fprintf(out, "home: %s\n", dest)
			}
			return nil
		},
	}
}
