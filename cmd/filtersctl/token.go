package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/automation-insights/backend/config"
	"github.com/automation-insights/backend/internal/integration/adapters"
)

func newTokenCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a development access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := userFlag(cmd)
			if err != nil {
				return err
			}

			cfg := config.Load()
			service := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

			token, err := service.IssueAccessToken(context.Background(), userID, email)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().String("user", "", "owner id (uuid)")
	cmd.Flags().StringVar(&email, "email", "", "email claim")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
