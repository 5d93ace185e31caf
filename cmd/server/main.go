// Package main is the entry point for the scheduler API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/shiftforge/scheduler/internal/config"
	"github.com/shiftforge/scheduler/internal/handler"
	"github.com/shiftforge/scheduler/internal/importer"
	"github.com/shiftforge/scheduler/internal/model"
	"github.com/shiftforge/scheduler/internal/repository"
	"github.com/shiftforge/scheduler/internal/scheduling"
	"github.com/shiftforge/scheduler/internal/scheduling/cpsat"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	cfg := config.Load()

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Initialize database
	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database connection")
		}
	}()
	log.Info().Msg("Connected to database")

	// Initialize repositories
	roleRepo := repository.NewRoleRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	absenceRepo := repository.NewAbsenceRepository(db)
	holidayRepo := repository.NewHolidayRepository(db)
	ruleRepo := repository.NewLaborLawRuleRepository(db)
	templateRepo := repository.NewStaffingTemplateRepository(db)
	genParamsRepo := repository.NewGeneratorParametersRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)

	// Initialize the scheduling core
	configLoader := scheduling.NewConfigLoader(holidayRepo, templateRepo, ruleRepo, genParamsRepo, employeeRepo)
	validator := scheduling.NewValidator(configLoader)
	heuristicGen := scheduling.NewHeuristicGenerator(employeeRepo, shiftRepo, absenceRepo, scheduleRepo, validator)
	cpsatGen := cpsat.NewGenerator(employeeRepo, shiftRepo, absenceRepo, scheduleRepo, configLoader, validator, cfg.SolverBudget)

	facade := scheduling.NewFacade(
		func(ctx context.Context, year, month int) (*model.MonthlySchedule, []model.ScheduleEntry, []scheduling.Issue, error) {
			return heuristicGen.Generate(ctx, year, month)
		},
		func(ctx context.Context, year, month int, scenarioType string) (*model.MonthlySchedule, []model.ScheduleEntry, []scheduling.Issue, error) {
			return cpsatGen.Generate(ctx, year, month, scenarioType)
		},
	)

	if cfg.RegenerationCron != "" {
		now := time.Now()
		job, err := scheduling.NewRegenerationJob(facade, cfg.RegenerationCron, now.Year(), int(now.Month()), scheduling.GenerationRequest{}, func(ctx context.Context, year, month int) (bool, error) {
			monthKey := fmt.Sprintf("%04d-%02d", year, month)
			schedule, err := scheduleRepo.GetByMonthKey(ctx, monthKey)
			if err != nil {
				if errors.Is(err, repository.ErrScheduleNotFound) {
					return false, nil
				}
				return false, err
			}
			return schedule.Status == model.ScheduleStatusPublished, nil
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to configure regeneration job")
		}
		job.Start()
		defer job.Stop()
	}

	// Initialize handlers
	scheduleHandler := handler.NewScheduleHandler(facade, validator, configLoader, scheduleRepo, shiftRepo, absenceRepo, employeeRepo)
	roleHandler := handler.NewRoleHandler(roleRepo)
	shiftHandler := handler.NewShiftHandler(shiftRepo)
	employeeHandler := handler.NewEmployeeHandler(employeeRepo)
	absenceHandler := handler.NewAbsenceHandler(absenceRepo)
	holidayHandler := handler.NewHolidayHandler(configLoader, holidayRepo)
	ruleHandler := handler.NewLaborLawRuleHandler(ruleRepo)
	templateHandler := handler.NewStaffingTemplateHandler(configLoader, templateRepo)
	genParamsHandler := handler.NewGeneratorParametersHandler(configLoader, genParamsRepo)
	importHandler := handler.NewImportHandler(importer.NewImporter(roleRepo, shiftRepo, employeeRepo, configLoader))
	rosterHandler := handler.NewRosterHandler(scheduleRepo, shiftRepo, employeeRepo)

	// Create router
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL, "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(90 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		handler.RegisterScheduleRoutes(r, scheduleHandler)
		handler.RegisterRoleRoutes(r, roleHandler)
		handler.RegisterShiftRoutes(r, shiftHandler)
		handler.RegisterEmployeeRoutes(r, employeeHandler)
		handler.RegisterAbsenceRoutes(r, absenceHandler)
		handler.RegisterHolidayRoutes(r, holidayHandler)
		handler.RegisterLaborLawRuleRoutes(r, ruleHandler)
		handler.RegisterStaffingTemplateRoutes(r, templateHandler)
		handler.RegisterGeneratorParametersRoutes(r, genParamsHandler)
		handler.RegisterImportRoutes(r, importHandler)
		handler.RegisterRosterRoutes(r, rosterHandler)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
