package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"cvp/internal/bootstrap"
	assignmentdto "cvp/internal/modules/assignment/dto"
	"cvp/internal/platform/config"
	apperrors "cvp/internal/platform/errors"
)

func newTasksCmd(opts *config.Options) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List your assigned tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				items, err := app.AssignmentCLI.Tasks(ctx, filter)
				if err != nil {
					return err
				}
				printAssignments(cmd, items)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "all", "all|assigned|in_progress|completed|overdue|approved|rejected")
	return cmd
}

func newAssignmentsCmd(opts *config.Options) *cobra.Command {
	assignments := &cobra.Command{Use: "assignments", Short: "Manage assignments"}

	var filter string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List every assignment",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				items, err := app.AssignmentCLI.All(ctx, filter)
				if err != nil {
					return err
				}
				printAssignments(cmd, items)
				return nil
			})
		},
	}
	listCmd.Flags().StringVar(&filter, "filter", "all", "task filter")

	var input assignmentdto.CreateInput
	var due string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Assign a topic to a creator",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if due != "" {
				at, err := time.Parse(time.DateOnly, due)
				if err != nil {
					return fmt.Errorf("%w: --due must be YYYY-MM-DD", apperrors.ErrInvalidInput)
				}
				input.DueDate = at
			}
			return run(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.AssignmentCLI.Create(ctx, input)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "assignment created: %s %s\n", out.ID, out.Topic)
				return nil
			})
		},
	}
	createCmd.Flags().StringVar(&input.Topic, "topic", "", "topic")
	createCmd.Flags().StringVar(&input.ContentType, "type", "", "ASSIGNMENT|LECTURE_NOTES|PRE_READ")
	createCmd.Flags().StringVar(&input.CreatorID, "creator", "", "creator user id")
	createCmd.Flags().StringVar(&due, "due", "", "due date YYYY-MM-DD")
	createCmd.Flags().StringVar(&input.Guidelines, "guidelines", "", "guidelines for the creator")
	createCmd.Flags().StringSliceVar(&input.PrerequisiteTopics, "prereq", nil, "prerequisite topics")

	assignments.AddCommand(listCmd, createCmd)
	return assignments
}

func printAssignments(cmd *cobra.Command, items []assignmentdto.AssignmentOutput) {
	for _, a := range items {
		due := "-"
		if !a.DueDate.IsZero() {
			due = a.DueDate.Format(time.DateOnly)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%s\n", a.ID, a.Status, due, a.ContentType, a.Topic)
	}
}

func newContentCmd(opts *config.Options) *cobra.Command {
	content := &cobra.Command{Use: "content", Short: "Submit and export content"}

	var taskJSON, taskID, title, contentType, topic, file string
	submitCmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a markdown or PDF file for validation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if taskJSON != "" && taskID != "" {
				return fmt.Errorf("%w: use either --task-json or --task-id", apperrors.ErrInvalidInput)
			}
			return run(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				if taskID != "" {
					task, ok, err := app.AssignmentCLI.Find(ctx, taskID)
					if err != nil {
						return err
					}
					if !ok {
						return fmt.Errorf("task %s: %w", taskID, apperrors.ErrNotFound)
					}
					taskJSON = task.TaskJSON
				}
				out, err := app.ContentCLI.Submit(ctx, taskJSON, title, contentType, topic, file)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "submitted %q id=%s status=%s\n", out.Title, out.ID, out.Status)
				return nil
			})
		},
	}
	submitCmd.Flags().StringVar(&taskJSON, "task-json", "", "task payload from a create-content location")
	submitCmd.Flags().StringVar(&taskID, "task-id", "", "one of your task ids")
	submitCmd.Flags().StringVar(&title, "title", "", "title (default from frontmatter)")
	submitCmd.Flags().StringVar(&contentType, "type", "", "content type (default from task)")
	submitCmd.Flags().StringVar(&topic, "topic", "", "topic (default from task)")
	submitCmd.Flags().StringVar(&file, "file", "", "markdown or PDF file")
	_ = submitCmd.MarkFlagRequired("file")

	mineCmd := &cobra.Command{
		Use:   "mine",
		Short: "List your submissions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				items, err := app.ContentCLI.Mine(ctx)
				if err != nil {
					return err
				}
				for _, item := range items {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", item.ID, item.Status, item.ContentType, item.Title)
				}
				return nil
			})
		},
	}

	var id, dir string
	var open bool
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write content and its report to a markdown file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.ReviewCLI.Export(ctx, id, dir)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %s to %s\n", out.ID, out.Path)
				if open {
					return app.ContentCLI.Open(ctx, out.Path)
				}
				return nil
			})
		},
	}
	exportCmd.Flags().StringVar(&id, "id", "", "content id")
	exportCmd.Flags().StringVar(&dir, "out", ".", "output directory")
	exportCmd.Flags().BoolVar(&open, "open", false, "open the file with the system viewer")
	_ = exportCmd.MarkFlagRequired("id")

	content.AddCommand(submitCmd, mineCmd, exportCmd)
	return content
}
