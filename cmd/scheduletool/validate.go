package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/shiftforge/scheduler/internal/scheduling"
)

func newValidateCommand() *cobra.Command {
	var (
		monthKey string
		useRules bool
	)

	cmd := &cobra.Command{
		Use:     "validate",
		Short:   "Validate a persisted monthly schedule and print its issues",
		Example: "scheduletool validate --month 2026-08",
		RunE: func(cmd *cobra.Command, args []string) error {
			if monthKey == "" {
				return fmt.Errorf("--month is required (YYYY-MM)")
			}

			tc, err := newToolContext()
			if err != nil {
				return err
			}
			defer tc.db.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()

			schedule, err := tc.schedules.GetByMonthKey(ctx, monthKey)
			if err != nil {
				return fmt.Errorf("load schedule: %w", err)
			}

			from, err := time.Parse("2006-01", monthKey)
			if err != nil {
				return fmt.Errorf("invalid month key %q: %w", monthKey, err)
			}
			to := from.AddDate(0, 1, -1)

			shifts, err := tc.shifts.List(ctx)
			if err != nil {
				return fmt.Errorf("load shifts: %w", err)
			}
			holidays, err := tc.config.Holidays(ctx, from, to)
			if err != nil {
				return fmt.Errorf("load holidays: %w", err)
			}

			var issues []scheduling.Issue
			var validationType string
			if useRules {
				employees, err := tc.employees.List(ctx)
				if err != nil {
					return fmt.Errorf("load employees: %w", err)
				}
				caps := map[uuid.UUID]int{}
				for _, e := range employees {
					if e.MonthlyHourCap != nil {
						caps[e.ID] = *e.MonthlyHourCap
					}
				}
				issues, err = tc.validator.ValidateRulesBased(ctx, schedule.Entries, shifts, holidays, caps, from, to)
				if err != nil {
					return fmt.Errorf("validate: %w", err)
				}
				validationType = "rules-based"
			} else {
				issues, err = tc.validator.ValidateBasic(ctx, schedule.Entries, shifts, holidays)
				if err != nil {
					return fmt.Errorf("validate: %w", err)
				}
				validationType = "basic"
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Level", "Rule", "Message"})
			for _, i := range issues {
				ruleCode := ""
				if i.RuleCode != nil {
					ruleCode = *i.RuleCode
				}
				table.Append([]string{i.Level, ruleCode, i.Message})
			}
			table.Render()

			summary := scheduling.Summarize(issues)
			fmt.Printf("\nvalidation_type=%s schedule=%s total=%d blocking=%d warnings=%d passed=%v\n",
				validationType, schedule.ID, summary.TotalIssues, summary.BlockingIssues, summary.Warnings, summary.Passed)
			return nil
		},
	}

	cmd.Flags().StringVar(&monthKey, "month", "", "month key, YYYY-MM")
	cmd.Flags().BoolVar(&useRules, "rules", true, "use the database-driven rules-based validator instead of the basic validator")

	return cmd
}
