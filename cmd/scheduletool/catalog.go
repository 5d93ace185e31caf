package main

import (
	"context"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List configuration tables: roles, shifts, employees, holidays, rules",
	}

	cmd.AddCommand(newCatalogRolesCommand())
	cmd.AddCommand(newCatalogShiftsCommand())
	cmd.AddCommand(newCatalogEmployeesCommand())
	cmd.AddCommand(newCatalogHolidaysCommand())
	cmd.AddCommand(newCatalogRulesCommand())

	return cmd
}

func newCatalogRolesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "roles",
		Short: "List roles",
		RunE: func(cmd *cobra.Command, args []string) error {
			tc, err := newToolContext()
			if err != nil {
				return err
			}
			defer tc.db.Close()
			roles, err := tc.roles.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list roles: %w", err)
			}
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"ID", "Name", "Min Staffing", "Max Staffing"})
			for _, r := range roles {
				table.Append([]string{r.ID.String(), r.Name, intPtrStr(r.MinStaffing), intPtrStr(r.MaxStaffing)})
			}
			table.Render()
			return nil
		},
	}
}

func newCatalogShiftsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shifts",
		Short: "List shifts",
		RunE: func(cmd *cobra.Command, args []string) error {
			tc, err := newToolContext()
			if err != nil {
				return err
			}
			defer tc.db.Close()
			shifts, err := tc.shifts.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list shifts: %w", err)
			}
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"ID", "Name", "Start", "End", "Duration (h)"})
			for _, s := range shifts {
				table.Append([]string{
					s.ID.String(),
					s.Name,
					fmt.Sprintf("%02d:%02d", s.StartMinutes/60, s.StartMinutes%60),
					fmt.Sprintf("%02d:%02d", s.EndMinutes/60, s.EndMinutes%60),
					fmt.Sprintf("%.1f", s.DurationHours()),
				})
			}
			table.Render()
			return nil
		},
	}
}

func newCatalogEmployeesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "employees",
		Short: "List employees",
		RunE: func(cmd *cobra.Command, args []string) error {
			tc, err := newToolContext()
			if err != nil {
				return err
			}
			defer tc.db.Close()
			employees, err := tc.employees.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list employees: %w", err)
			}
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"ID", "Name", "Role", "Fraction", "Monthly Cap"})
			for _, e := range employees {
				roleName := ""
				if e.Role != nil {
					roleName = e.Role.Name
				}
				table.Append([]string{e.ID.String(), e.FullName(), roleName, string(e.EmploymentFraction), intPtrStr(e.MonthlyHourCap)})
			}
			table.Render()
			return nil
		},
	}
}

func newCatalogHolidaysCommand() *cobra.Command {
	var year int
	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "List holidays for a given year",
		RunE: func(cmd *cobra.Command, args []string) error {
			tc, err := newToolContext()
			if err != nil {
				return err
			}
			defer tc.db.Close()
			if year == 0 {
				year = time.Now().Year()
			}
			from := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
			to := time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)

			holidays, err := tc.config.Holidays(context.Background(), from, to)
			if err != nil {
				return fmt.Errorf("list holidays: %w", err)
			}
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Date", "Name", "Store Closed"})
			for _, h := range holidays {
				table.Append([]string{h.Date.Format("2006-01-02"), h.Name, fmt.Sprintf("%v", h.StoreClosed)})
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "year (default: current year)")
	return cmd
}

func newCatalogRulesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List active labor-law rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			tc, err := newToolContext()
			if err != nil {
				return err
			}
			defer tc.db.Close()
			now := time.Now()
			rules, err := tc.config.ActiveRules(cmd.Context(), now, now, nil, nil)
			if err != nil {
				return fmt.Errorf("list rules: %w", err)
			}
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Code", "Name", "Category", "Severity"})
			for _, r := range rules {
				table.Append([]string{r.Code, r.Name, string(r.Category), string(r.Severity)})
			}
			table.Render()
			return nil
		},
	}
	return cmd
}

func intPtrStr(p *int) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%d", *p)
}
