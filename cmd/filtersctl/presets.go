package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/automation-insights/backend/config"
	"github.com/automation-insights/backend/internal/domain/entity"
)

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "Print the date range of every preset for today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := resolverFor(cmd, config.Load())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, p := range r.FormulaRanges() {
				fmt.Fprintf(out, "%-10s %-11s %s\n", p.Preset, p.Label, p.Interval)
			}
			return nil
		},
	}
}

func newDetectCmd() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Print the preset matching a date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := resolverFor(cmd, config.Load())
			if err != nil {
				return err
			}

			var interval entity.DateInterval
			if interval.From, err = flagDay("from", from, r.Location()); err != nil {
				return err
			}
			if interval.To, err = flagDay("to", to, r.Location()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), r.Detect(interval))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "range end (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}

// flagDay parses an optional day flag. An empty value is nil.
func flagDay(name, value string, loc *time.Location) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	day, err := entity.ParseDay(value, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q, expected YYYY-MM-DD", name, value)
	}
	return &day, nil
}
