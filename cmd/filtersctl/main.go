// Package main implements filtersctl, an admin CLI for dashboard filter state.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/automation-insights/backend/config"
	"github.com/automation-insights/backend/internal/application/usecase/daterange"
	"github.com/automation-insights/backend/internal/domain/entity"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "filtersctl",
		Short:         "Inspect and manage dashboard filter state",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("tz", "", "IANA time zone for calendar days (default DASHBOARD_TIMEZONE)")
	root.PersistentFlags().String("today", "", "resolve presets as of this day (YYYY-MM-DD)")

	root.AddCommand(
		newPresetsCmd(),
		newDetectCmd(),
		newShowCmd(),
		newResetCmd(),
		newTokenCmd(),
	)
	return root
}

// resolverFor builds a resolver from the --tz and --today flags.
func resolverFor(cmd *cobra.Command, cfg *config.Config) (*daterange.Resolver, error) {
	tz, _ := cmd.Flags().GetString("tz")
	if tz != "" {
		cfg.Dashboard.Timezone = tz
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	today, _ := cmd.Flags().GetString("today")
	if today == "" {
		return daterange.NewResolver(nil, loc), nil
	}

	day, err := entity.ParseDay(today, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid --today: %w", err)
	}
	return daterange.NewResolver(func() time.Time { return day }, loc), nil
}
