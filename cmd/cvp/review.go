package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"cvp/internal/bootstrap"
	reviewdto "cvp/internal/modules/review/dto"
	"cvp/internal/platform/config"
	"cvp/internal/platform/notify"
	"cvp/internal/platform/poll"
)

func newReviewCmd(opts *config.Options) *cobra.Command {
	review := &cobra.Command{Use: "review", Short: "Work the review queue"}

	var cached bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List content awaiting review",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.ReviewCLI.List(ctx, cached)
				if err != nil {
					return err
				}
				printQueue(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
	listCmd.Flags().BoolVar(&cached, "cached", false, "show the last fetched queue without contacting the server")

	var id string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show content with its validation report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				item, err := app.ReviewCLI.Show(ctx, id)
				if err != nil {
					return err
				}
				md := fmt.Sprintf("# %s\n\n*%s · %s · %s*\n\n%s", item.Title, item.ContentType, item.Topic, item.Status, item.Body)
				if item.Validation != nil {
					md += "\n\n---\n\n" + item.Validation.Report
				}
				rendered, err := glamour.Render(md, "dark")
				if err != nil {
					rendered = md
				}
				_, _ = fmt.Fprint(cmd.OutOrStdout(), rendered)
				return nil
			})
		},
	}
	showCmd.Flags().StringVar(&id, "id", "", "content id")
	_ = showCmd.MarkFlagRequired("id")

	review.AddCommand(listCmd, showCmd,
		newDecisionCmd(opts, "approve", "Approve content"),
		newDecisionCmd(opts, "reject", "Reject content (feedback required)"),
		newRevalidateCmd(opts),
		newWatchCmd(opts),
	)
	return review
}

func newDecisionCmd(opts *config.Options, action, short string) *cobra.Command {
	var id, feedback string
	cmd := &cobra.Command{
		Use:   action,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				notifier := notify.NewWriterNotifier(cmd.ErrOrStderr(), app.Logger)
				if err := app.ReviewCLI.Decide(ctx, id, action, feedback); err != nil {
					notifier.Notify(notify.ActionFailed("review", err))
					return err
				}
				notifier.Notify(notify.Info(fmt.Sprintf("%s: %sd", id, action)))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "content id")
	cmd.Flags().StringVar(&feedback, "feedback", "", "feedback for the creator")
	_ = cmd.MarkFlagRequired("id")
	if action == "reject" {
		_ = cmd.MarkFlagRequired("feedback")
	}
	return cmd
}

func newRevalidateCmd(opts *config.Options) *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "revalidate",
		Short: "Run validation again",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.ReviewCLI.Revalidate(ctx, id)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "consensus=%.1f recommendation=%s\n", out.ConsensusScore, out.Recommendation)
				for _, s := range out.Round1Results {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "round1 %s %.1f\n", s.Provider, s.Score)
				}
				for _, s := range out.Round2Results {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "round2 %s %.1f\n", s.Provider, s.Score)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "content id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newWatchCmd(opts *config.Options) *cobra.Command {
	var interval time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print the review queue every interval until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				every := interval
				if every <= 0 {
					every = app.Config.PollInterval
				}
				stop := poll.Scheduler{
					Name:      "review-queue",
					Interval:  every,
					Immediate: true,
					Logger:    app.Logger,
					Fetch: func(ctx context.Context) error {
						out, err := app.ReviewCLI.List(ctx, false)
						if err != nil {
							return err
						}
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), "-- %s\n", out.FetchedAt.Local().Format(time.TimeOnly))
						printQueue(cmd.OutOrStdout(), out)
						return nil
					},
				}.Start(ctx)
				<-ctx.Done()
				stop()
				return nil
			})
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", 0, "poll interval (default from config)")
	return cmd
}

func printQueue(w io.Writer, out reviewdto.QueueOutput) {
	if out.Cached {
		_, _ = fmt.Fprintf(w, "(cached %s)\n", out.FetchedAt.Format(time.RFC3339))
	}
	for _, item := range out.Items {
		score := "-"
		if item.Validation != nil {
			score = fmt.Sprintf("%.1f", item.Validation.ConsensusScore)
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", item.ID, item.Status, score, item.ContentType, item.Title)
	}
}
