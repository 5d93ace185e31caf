package main

import (
	"context"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/shiftforge/scheduler/internal/scheduling"
)

func newGenerateCommand() *cobra.Command {
	var (
		year          int
		month         int
		generatorType string
		scenarioType  string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a monthly schedule and print its entries and diagnostics",
		Example: "scheduletool generate --year 2026 --month 8 --generator ortools --scenario DEFAULT",
		RunE: func(cmd *cobra.Command, args []string) error {
			tc, err := newToolContext()
			if err != nil {
				return err
			}
			defer tc.db.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()

			now := time.Now()
			req := scheduling.GenerationRequest{
				Year:          year,
				Month:         month,
				GeneratorType: generatorType,
				ScenarioType:  scenarioType,
			}
			if req.Year == 0 {
				req.Year = now.Year()
			}
			if req.Month == 0 {
				req.Month = int(now.Month())
			}

			schedule, entries, issues, diag, err := tc.facade.Generate(ctx, req)
			if err != nil {
				return fmt.Errorf("generate schedule: %w", err)
			}

			fmt.Printf("schedule %s for %s (status=%s)\n", schedule.ID, schedule.MonthKey, schedule.Status)

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Date", "Employee", "Shift"})
			for _, e := range entries {
				employeeName := e.EmployeeID.String()
				if e.Employee != nil {
					employeeName = e.Employee.FullName()
				}
				shiftName := e.ShiftID.String()
				if e.Shift != nil {
					shiftName = e.Shift.Name
				}
				table.Append([]string{e.Date.Format("2006-01-02"), employeeName, shiftName})
			}
			table.Render()

			summary := scheduling.Summarize(issues)
			fmt.Printf("\nissues: %d total, %d blocking, %d warnings (passed=%v)\n",
				summary.TotalIssues, summary.BlockingIssues, summary.Warnings, summary.Passed)
			if diag != nil {
				fmt.Printf("generator=%s scenario=%s runtime_ms=%d entries=%d\n",
					diag.GeneratorType, diag.ScenarioType, diag.RuntimeMS, diag.EntryCount)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "target year (default: current year)")
	cmd.Flags().IntVar(&month, "month", 0, "target month 1-12 (default: current month)")
	cmd.Flags().StringVar(&generatorType, "generator", scheduling.DefaultGeneratorType, "generator_type: heuristic or ortools")
	cmd.Flags().StringVar(&scenarioType, "scenario", scheduling.DefaultScenarioType, "scenario_type, used only by the ortools generator")

	return cmd
}
