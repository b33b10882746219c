// cmd/staffdesk/cmd/root.go
//
// staffdesk CLI – root command and shared runtime.
//
// Start-up
// --------
//
//  1. Load config (.env → conf/staffdesk.yaml → STAFFDESK_* overrides).
//
//  2. Start the daily rotating logger (tees to stderr with --verbose or
//     log.tee).
//
//  3. Open the session store on the real filesystem and install it as the
//     process default.
//
//  4. Build the API client and the role router.
//
// Form definitions are registered when the command tree is built, because
// each form command derives its flags from its definition.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yanizio/staffdesk/internal/api"
	"github.com/yanizio/staffdesk/internal/component"
	"github.com/yanizio/staffdesk/internal/config"
	"github.com/yanizio/staffdesk/internal/form"
	"github.com/yanizio/staffdesk/internal/logger"
	"github.com/yanizio/staffdesk/internal/message"
	"github.com/yanizio/staffdesk/internal/metrics"
	"github.com/yanizio/staffdesk/internal/nav"
	"github.com/yanizio/staffdesk/internal/session"

	_ "github.com/yanizio/staffdesk/components/auth"
	_ "github.com/yanizio/staffdesk/components/employee"
)

var version = "0.1.0" // set at build time with -ldflags

// errReported marks a failure already shown to the user.
var errReported = errors.New("reported")

// app is the runtime shared by every subcommand, filled in by setup.
type app struct {
	root        string
	verbose     bool
	metricsFile string
	fs          afero.Fs

	cfg     *config.Config
	log     *zap.SugaredLogger
	client  *api.Client
	store   *session.Store
	router  *nav.Router
	policy  form.PasswordPolicy
	console message.Console
}

// NewRootCmd builds a fresh command tree.
func NewRootCmd() *cobra.Command {
	if err := component.LoadForms(); err != nil {
		panic(err) // embedded definitions are covered by tests
	}

	a := &app{fs: afero.NewOsFs()}
	root := &cobra.Command{
		Use:   "staffdesk",
		Short: "Employee portal client",
		Long: `staffdesk signs users in to the employee portal and manages staff
accounts from the command line.

Use "staffdesk [command] --help" for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.flushMetrics()
		},
	}
	root.PersistentFlags().StringVar(&a.root, "root", "", "project root holding conf/staffdesk.yaml")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "also log to stderr")
	root.PersistentFlags().StringVar(&a.metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")

	root.AddCommand(
		newLoginCmd(a),
		newSignupCmd(a),
		newAddEmployeeCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newFormsCmd(a),
		newVersionCmd(),
	)
	return root
}

// Execute runs the CLI and exits non-zero on failure.  SIGINT dismisses
// any form in flight.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := NewRootCmd().ExecuteContext(ctx)
	_ = zap.L().Sync()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func (a *app) setup(cmd *cobra.Command) error {
	var (
		cfg *config.Config
		err error
	)
	if a.root != "" {
		cfg, err = config.LoadFrom(a.root)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	a.cfg = cfg

	log, err := logger.New(cfg.Log.Dir, cfg.Log.Tee || a.verbose)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	a.log = log.With("cmd", cmd.Name())
	cmd.SetContext(logger.WithContext(cmd.Context(), a.log))

	a.policy, err = form.ParsePolicy(cfg.Forms.PasswordPolicy)
	if err != nil {
		return err
	}

	a.store = session.NewStore(a.fs, cfg.Session.Path)
	session.SetDefault(a.store)

	a.client = api.New(cfg.API.BaseURL, cfg.API.Timeout, api.WithLogger(a.log))
	a.router = nav.NewRouter(cfg.Routes)
	a.console = message.Console{Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()}
	return nil
}

// flushMetrics writes the registry when --metrics-file is set.  Cobra skips
// post-run hooks when the command fails, so failing runs are not recorded.
func (a *app) flushMetrics() error {
	if a.metricsFile == "" {
		return nil
	}
	if err := metrics.WriteFile(a.metricsFile); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		// Skip config and logger set-up.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "staffdesk v%s\n", version)
		},
	}
}
