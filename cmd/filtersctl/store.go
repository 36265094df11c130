package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/automation-insights/backend/config"
	"github.com/automation-insights/backend/internal/application/usecase/filters"
	"github.com/automation-insights/backend/internal/infra/dependency"
)

// withSessions opens the configured preference storage for one command.
func withSessions(cmd *cobra.Command, fn func(ctx context.Context, sessions *filters.Sessions) error) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	r, err := resolverFor(cmd, cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	storage, err := dependency.NewStorage(ctx, cfg, r.Location())
	if err != nil {
		return err
	}
	defer func() { _ = storage.Close() }()

	return fn(ctx, filters.NewSessions(storage.Preferences, r))
}

func userFlag(cmd *cobra.Command) (uuid.UUID, error) {
	raw, _ := cmd.Flags().GetString("user")
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid --user %q: %w", raw, err)
	}
	return userID, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print an owner's effective filters and request params without saving them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := userFlag(cmd)
			if err != nil {
				return err
			}

			return withSessions(cmd, func(ctx context.Context, sessions *filters.Sessions) error {
				output, err := filters.NewInspectFiltersUseCase(sessions).Execute(ctx, userID)
				if err != nil {
					return err
				}
				return printJSON(cmd, output)
			})
		},
	}

	cmd.Flags().String("user", "", "owner id (uuid)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Overwrite an owner's filters with the defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := userFlag(cmd)
			if err != nil {
				return err
			}

			return withSessions(cmd, func(ctx context.Context, sessions *filters.Sessions) error {
				snapshot, err := filters.NewResetFiltersUseCase(sessions).Execute(ctx, userID)
				if err != nil {
					return err
				}
				return printJSON(cmd, snapshot)
			})
		},
	}

	cmd.Flags().String("user", "", "owner id (uuid)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
