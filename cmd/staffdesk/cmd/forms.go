package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/yanizio/staffdesk/internal/form"
	"github.com/yanizio/staffdesk/internal/message"
)

// formCommand builds a command whose flags mirror the fields of form id.
// Password fields left unset are read from stdin.
func formCommand(id string, cmd *cobra.Command, build func() *form.Controller) *cobra.Command {
	def := form.MustFormDef(id)
	vals := make(map[string]*string, len(def.Fields))
	for _, f := range def.Fields {
		usage := f.Label
		if len(f.Options) > 0 {
			usage += " (" + strings.Join(f.Options, ", ") + ")"
		}
		vals[f.Name] = cmd.Flags().String(f.Name, "", usage)
	}

	cmd.Args = cobra.NoArgs
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		c := build()
		defer c.Close()

		in := bufio.NewReader(cmd.InOrStdin())
		for _, f := range def.Fields {
			v := *vals[f.Name]
			if v == "" && f.Type == "password" && !cmd.Flags().Changed(f.Name) {
				v = prompt(in, cmd.ErrOrStderr(), f.Label)
			}
			if err := c.Set(f.Name, v); err != nil {
				return err
			}
		}
		return submit(cmd.Context(), c, message.Console{Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()})
	}
	return cmd
}

func prompt(in *bufio.Reader, out io.Writer, label string) string {
	fmt.Fprintf(out, "%s: ", label)
	line, _ := in.ReadString('\n')
	return strings.TrimRight(line, "\r\n")
}

// submit runs one attempt and shows its outcome.  An interrupt dismisses the
// form, discarding whatever the backend answers afterwards.
func submit(ctx context.Context, c *form.Controller, sink message.Sink) error {
	stop := context.AfterFunc(ctx, c.Close)
	defer stop()

	res, err := c.Submit(ctx)
	present(c, sink)

	switch {
	case errors.Is(err, form.ErrDismissed):
		sink.Show(message.Notice{Kind: message.Warning, Text: "Cancelled."})
		return errReported
	case form.IsValidationError(err):
		return errReported
	case err != nil:
		return err
	case !res.Success:
		return errReported
	}
	return nil
}

// present shows the controller's state the way the portal lays it out:
// field errors under their fields, then the form-level message.
func present(c *form.Controller, sink message.Sink) {
	errs := c.Errors()
	for _, name := range errs.Fields() {
		sink.Show(message.Notice{Kind: message.Banner, Text: errs[name]})
	}

	if msg := c.FormError(); msg != "" {
		n := message.Notice{Kind: message.Banner, Text: msg}
		if c.Popup() {
			n.Kind = message.Popup
			n.Title = c.Def().Title + " Error"
			c.DismissPopup()
		}
		sink.Show(n)
	}

	if msg := c.Notice(); msg != "" {
		sink.Show(message.Notice{Kind: message.Info, Text: msg})
	}
}

func newFormsCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "forms",
		Short: "List the registered form definitions",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintln(w, "ID\tTITLE\tENDPOINT\tFIELDS")
			fmt.Fprintln(w, "--\t-----\t--------\t------")
			for _, fd := range form.All() {
				names := lo.Map(fd.Fields, func(f form.FieldDef, _ int) string {
					if f.Required {
						return f.Name + "*"
					}
					return f.Name
				})
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", fd.ID, fd.Title, fd.Endpoint, strings.Join(names, ","))
			}
		},
	}
}
