package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cvp/internal/bootstrap"
	"cvp/internal/platform/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &config.Options{}

	root := &cobra.Command{
		Use:           "cvp",
		Short:         "Content validation platform client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default <state-dir>/config.yaml)")
	root.PersistentFlags().StringVar(&opts.APIURL, "api-url", "", "platform API base URL")
	root.PersistentFlags().StringVar(&opts.StateDir, "state-dir", "", "directory for session, cache and logs")
	root.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "debug|info|warn|error")

	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newLoginCmd(opts), newLogoutCmd(opts), newWhoAmICmd(opts), newForgotPasswordCmd(opts))
	root.AddCommand(newReviewCmd(opts))
	root.AddCommand(newTasksCmd(opts), newAssignmentsCmd(opts), newContentCmd(opts))
	root.AddCommand(newRouteCmd(opts))
	root.AddCommand(newAdminCmd(opts), newUsersCmd(opts), newPromptsCmd(opts), newGuidelinesCmd(opts), newAnalyticsCmd(opts))
	return root
}

func loadApp(opts *config.Options) (*bootstrap.App, error) {
	cfg, err := config.New(*opts)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

// run builds the app, restores the persisted session and hands over.
func run(cmd *cobra.Command, opts *config.Options, fn func(ctx context.Context, app *bootstrap.App) error) error {
	app, err := loadApp(opts)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	ctx := cmd.Context()
	if err := app.Restore(ctx); err != nil {
		return err
	}
	return fn(ctx, app)
}

func newTUICmd(opts *config.Options) *cobra.Command {
	var route string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			return app.RunTUI(route)
		},
	}
	cmd.Flags().StringVar(&route, "route", "", "start at a location, e.g. '#/tasks?filter=rejected'")
	return cmd
}

func newLoginCmd(opts *config.Options) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if email == "" {
				line, err := prompt(cmd, "Email: ")
				if err != nil {
					return err
				}
				email = line
			}
			password, err := readPassword(cmd)
			if err != nil {
				return err
			}
			return run(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.SessionCLI.Login(ctx, email, password)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s (%s)\n", out.User.Name, out.User.Role)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	return cmd
}

func newLogoutCmd(opts *config.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the persisted session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.SessionCLI.Logout(ctx); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "signed out")
				return nil
			})
		},
	}
}

func newWhoAmICmd(opts *config.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				out, startup, err := app.SessionCLI.WhoAmI(ctx)
				if err != nil {
					return err
				}
				if !out.Authenticated || out.User == nil {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "not signed in (%s)\n", startup.Reason)
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "id: %s\nname: %s\nemail: %s\nrole: %s\n", out.User.ID, out.User.Name, out.User.Email, out.User.Role)
				return nil
			})
		},
	}
}

func newForgotPasswordCmd(opts *config.Options) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "forgot-password",
		Short: "Request a password reset email",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.SessionCLI.ForgotPassword(ctx, email); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reset requested for %s\n", email)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newRouteCmd(opts *config.Options) *cobra.Command {
	route := &cobra.Command{Use: "route", Short: "Translate between locations and view state"}

	var role string
	decodeCmd := &cobra.Command{
		Use:   "decode <location>",
		Short: "Resolve a location against a role's route table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.NavigationCLI.Decode(ctx, role, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), out)
			})
		},
	}
	decodeCmd.Flags().StringVar(&role, "role", "", "CREATOR|ADMIN|SUPER_ADMIN (default: shell routes only)")

	var view, tab, filter, taskJSON string
	encodeCmd := &cobra.Command{
		Use:   "encode",
		Short: "Print the canonical location for a view state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.NavigationCLI.Encode(ctx, view, tab, filter, taskJSON)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Location)
				return nil
			})
		},
	}
	encodeCmd.Flags().StringVar(&view, "view", "dashboard", "dashboard|create-content|settings")
	encodeCmd.Flags().StringVar(&tab, "tab", "", "dashboard tab")
	encodeCmd.Flags().StringVar(&filter, "filter", "", "task filter")
	encodeCmd.Flags().StringVar(&taskJSON, "task-json", "", "task payload for create-content")

	route.AddCommand(decodeCmd, encodeCmd)
	return route
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func prompt(cmd *cobra.Command, label string) (string, error) {
	_, _ = fmt.Fprint(cmd.ErrOrStderr(), label)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// readPassword reads without echo from a terminal and falls back to a plain
// line for piped input.
func readPassword(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return prompt(cmd, "")
	}
	_, _ = fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	raw, err := term.ReadPassword(fd)
	_, _ = fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}
