package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/secondbrain-backend/internal/app"
	"github.com/heartmarshall/secondbrain-backend/internal/config"
)

func digestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Generate and post summaries to the digest channel",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "daily",
			Short: "Post today's digest",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runJob(cmd, func(ctx context.Context, c *app.Container) (any, error) {
					return c.Digest.Daily(ctx)
				})
			},
		},
		&cobra.Command{
			Use:   "weekly",
			Short: "Post the weekly review",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runJob(cmd, func(ctx context.Context, c *app.Container) (any, error) {
					return c.Digest.Weekly(ctx)
				})
			},
		},
	)
	return cmd
}

func vocabularyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vocabulary",
		Short: "Vocabulary maintenance",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "backfill-examples",
		Short: "Generate example sentences for words that have none",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runJob(cmd, func(ctx context.Context, c *app.Container) (any, error) {
				return c.Digest.BackfillExamples(ctx)
			})
		},
	})
	return cmd
}

func instructionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "instructions",
		Short: "Manage the pinned quick-reference message",
	}

	var channel string
	pin := &cobra.Command{
		Use:   "pin",
		Short: "Post the quick reference to a channel and pin it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runJob(cmd, func(ctx context.Context, c *app.Container) (any, error) {
				ts, err := c.Guide.PinInstructions(ctx, channel)
				if err != nil {
					return nil, err
				}
				return map[string]string{"channel": channel, "messageTs": ts}, nil
			})
		},
	}
	pin.Flags().StringVar(&channel, "channel", "", "Slack channel id")
	_ = pin.MarkFlagRequired("channel")

	cmd.AddCommand(pin)
	return cmd
}

// runJob wires the services, runs fn and prints its result as JSON.
func runJob(cmd *cobra.Command, fn func(context.Context, *app.Container) (any, error)) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := app.NewLogger(cfg.Log)

	c, err := app.NewContainer(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	res, err := fn(cmd.Context(), c)
	if err != nil {
		return fmt.Errorf("%s: %w", cmd.CommandPath(), err)
	}
	return printJSON(cmd.OutOrStdout(), res)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
