// Package main implements scheduletool, an operator CLI for running and
// inspecting schedule generation directly against the database, without
// going through the HTTP server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shiftforge/scheduler/internal/config"
	"github.com/shiftforge/scheduler/internal/repository"
	"github.com/shiftforge/scheduler/internal/scheduling"
	"github.com/shiftforge/scheduler/internal/scheduling/cpsat"
)

// toolContext bundles the repositories and scheduling core every
// subcommand needs, built once from the loaded configuration.
type toolContext struct {
	db        *repository.DB
	config    *scheduling.ConfigLoader
	validator *scheduling.Validator
	facade    *scheduling.Facade

	roles     *repository.RoleRepository
	shifts    *repository.ShiftRepository
	employees *repository.EmployeeRepository
	absences  *repository.AbsenceRepository
	schedules *repository.ScheduleRepository
}

func newToolContext() (*toolContext, error) {
	cfg := config.Load()
	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	roleRepo := repository.NewRoleRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	absenceRepo := repository.NewAbsenceRepository(db)
	holidayRepo := repository.NewHolidayRepository(db)
	ruleRepo := repository.NewLaborLawRuleRepository(db)
	templateRepo := repository.NewStaffingTemplateRepository(db)
	genParamsRepo := repository.NewGeneratorParametersRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)

	configLoader := scheduling.NewConfigLoader(holidayRepo, templateRepo, ruleRepo, genParamsRepo, employeeRepo)
	validator := scheduling.NewValidator(configLoader)
	heuristicGen := scheduling.NewHeuristicGenerator(employeeRepo, shiftRepo, absenceRepo, scheduleRepo, validator)
	cpsatGen := cpsat.NewGenerator(employeeRepo, shiftRepo, absenceRepo, scheduleRepo, configLoader, validator, cfg.SolverBudget)

	facade := scheduling.NewFacade(heuristicGen.Generate, cpsatGen.Generate)

	return &toolContext{
		db:        db,
		config:    configLoader,
		validator: validator,
		facade:    facade,
		roles:     roleRepo,
		shifts:    shiftRepo,
		employees: employeeRepo,
		absences:  absenceRepo,
		schedules: scheduleRepo,
	}, nil
}

func main() {
	root := &cobra.Command{
		Use:   "scheduletool",
		Short: "Operate the schedule generator and validator from the command line",
	}

	root.AddCommand(newGenerateCommand())
	root.AddCommand(newValidateCommand())
	root.AddCommand(newCatalogCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
