package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yanizio/staffdesk/components/employee"
	"github.com/yanizio/staffdesk/internal/api"
	"github.com/yanizio/staffdesk/internal/form"
)

func newAddEmployeeCmd(a *app) *cobra.Command {
	return formCommand(employee.AddFormID, &cobra.Command{
		Use:   "add-employee",
		Short: "Create an employee using the stored session",
		Long: `Create an employee record.  The request carries the token from the
last successful login; run "staffdesk login" first.`,
		Example: `  staffdesk add-employee --name Bob --email bob@corp.io --role employee`,
	}, func() *form.Controller {
		return employee.NewAdd(employee.Deps{
			API:     a.client,
			Session: a.store,
			OnAdded: func(e *api.Employee) {
				fmt.Fprintf(a.console.Out, "Added employee %s: %s <%s> (%s)\n", e.ID, e.Name, e.Email, e.Role)
			},
		}, a.formOpts()...)
	})
}
