package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cvp/internal/bootstrap"
	admindto "cvp/internal/modules/admin/dto"
	"cvp/internal/platform/config"
	"cvp/internal/platform/notify"
)

func printMetrics(cmd *cobra.Command, metrics []admindto.MetricOutput) {
	for _, m := range metrics {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", m.Key, m.Value)
	}
}

func newAdminCmd(opts *config.Options) *cobra.Command {
	admin := &cobra.Command{Use: "admin", Short: "Admin overview"}
	admin.AddCommand(
		&cobra.Command{
			Use:   "stats",
			Short: "Show review statistics",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return run(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
					out, err := app.AdminCLI.Stats(ctx)
					if err != nil {
						return err
					}
					printMetrics(cmd, out)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "creators",
			Short: "List creators assigned to you",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return run(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
					out, err := app.AdminCLI.Creators(ctx)
					if err != nil {
						return err
					}
					for _, c := range out {
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\tassigned=%d pending=%d\n", c.ID, c.Name, c.Email, c.AssignedCount, c.PendingCount)
					}
					return nil
				})
			},
		},
	)
	return admin
}

func newAnalyticsCmd(opts *config.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "analytics",
		Short: "Show platform analytics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.AdminCLI.Analytics(ctx)
				if err != nil {
					return err
				}
				printMetrics(cmd, out)
				return nil
			})
		},
	}
}

func newUsersCmd(opts *config.Options) *cobra.Command {
	users := &cobra.Command{Use: "users", Short: "Manage users"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.AdminCLI.Users(ctx)
				if err != nil {
					return err
				}
				for _, u := range out {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\tactive=%t\n", u.ID, u.Role, u.Email, u.Name, u.Active)
				}
				return nil
			})
		},
	}

	var name, email, role string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := readPassword(cmd)
			if err != nil {
				return err
			}
			return run(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				notifier := notify.NewWriterNotifier(cmd.ErrOrStderr(), app.Logger)
				out, err := app.AdminCLI.CreateUser(ctx, name, email, password, role)
				if err != nil {
					notifier.Notify(notify.ActionFailed("user creation", err))
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "user created: %s %s (%s)\n", out.ID, out.Email, out.Role)
				return nil
			})
		},
	}
	createCmd.Flags().StringVar(&name, "name", "", "display name")
	createCmd.Flags().StringVar(&email, "email", "", "email")
	createCmd.Flags().StringVar(&role, "role", "CREATOR", "CREATOR|ADMIN|SUPER_ADMIN")
	_ = createCmd.MarkFlagRequired("name")
	_ = createCmd.MarkFlagRequired("email")

	var id string
	setRoleCmd := &cobra.Command{
		Use:   "set-role",
		Short: "Change a user's role",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.AdminCLI.SetRole(ctx, id, role)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", out.Email, out.Role)
				return nil
			})
		},
	}
	setRoleCmd.Flags().StringVar(&id, "id", "", "user id")
	setRoleCmd.Flags().StringVar(&role, "role", "", "CREATOR|ADMIN|SUPER_ADMIN")
	_ = setRoleCmd.MarkFlagRequired("id")
	_ = setRoleCmd.MarkFlagRequired("role")

	users.AddCommand(listCmd, createCmd, setRoleCmd, newSetActiveCmd(opts, true), newSetActiveCmd(opts, false))
	return users
}

func newSetActiveCmd(opts *config.Options, active bool) *cobra.Command {
	use := "disable"
	if active {
		use = "enable"
	}
	var id string
	cmd := &cobra.Command{
		Use:   use,
		Short: use + " a user account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.AdminCLI.SetActive(ctx, id, active)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s active=%t\n", out.Email, out.Active)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "user id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newPromptsCmd(opts *config.Options) *cobra.Command {
	prompts := &cobra.Command{Use: "prompts", Short: "Manage validation prompts"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List prompt templates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.AdminCLI.Prompts(ctx)
				if err != nil {
					return err
				}
				for _, p := range out {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", p.ID, p.Provider, p.Name)
				}
				return nil
			})
		},
	}

	var id, template, templateFile string
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Replace a prompt template",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if templateFile != "" {
				raw, err := os.ReadFile(templateFile)
				if err != nil {
					return fmt.Errorf("read template: %w", err)
				}
				template = string(raw)
			}
			return run(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				notifier := notify.NewWriterNotifier(cmd.ErrOrStderr(), app.Logger)
				out, err := app.AdminCLI.SetPrompt(ctx, id, template)
				if err != nil {
					notifier.Notify(notify.ActionFailed("prompt save", err))
					return err
				}
				notifier.Notify(notify.Info("prompt saved: " + out.ID))
				return nil
			})
		},
	}
	setCmd.Flags().StringVar(&id, "id", "", "prompt id")
	setCmd.Flags().StringVar(&template, "template", "", "template text")
	setCmd.Flags().StringVar(&templateFile, "template-file", "", "read the template from a file")
	_ = setCmd.MarkFlagRequired("id")

	prompts.AddCommand(listCmd, setCmd)
	return prompts
}

func newGuidelinesCmd(opts *config.Options) *cobra.Command {
	guidelines := &cobra.Command{Use: "guidelines", Short: "Manage content guidelines"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List guidelines",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.AdminCLI.Guidelines(ctx)
				if err != nil {
					return err
				}
				for _, g := range out {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", g.ID, g.ContentType, g.Title)
				}
				return nil
			})
		},
	}

	var id, title, contentType, body, bodyFile string
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Create a guideline, or update it when --id is given",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if bodyFile != "" {
				raw, err := os.ReadFile(bodyFile)
				if err != nil {
					return fmt.Errorf("read body: %w", err)
				}
				body = string(raw)
			}
			return run(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.AdminCLI.SetGuideline(ctx, id, title, contentType, body)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "guideline saved: %s %s\n", out.ID, out.Title)
				return nil
			})
		},
	}
	setCmd.Flags().StringVar(&id, "id", "", "guideline id (empty creates a new one)")
	setCmd.Flags().StringVar(&title, "title", "", "title")
	setCmd.Flags().StringVar(&contentType, "type", "", "ASSIGNMENT|LECTURE_NOTES|PRE_READ")
	setCmd.Flags().StringVar(&body, "body", "", "guideline text")
	setCmd.Flags().StringVar(&bodyFile, "body-file", "", "read the guideline text from a file")

	guidelines.AddCommand(listCmd, setCmd)
	return guidelines
}
