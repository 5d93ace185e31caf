package handler

import (
	"github.com/go-chi/chi/v5"
)

// RegisterScheduleRoutes wires the generation and validation endpoints.
func RegisterScheduleRoutes(r chi.Router, h *ScheduleHandler) {
	r.Post("/schedules/generate", h.Generate)
	r.Post("/validation/schedule/{id}", h.ValidateSchedule)
	r.Post("/validation/entries", h.ValidateEntries)
}

// RegisterRoleRoutes wires role CRUD endpoints.
func RegisterRoleRoutes(r chi.Router, h *RoleHandler) {
	r.Route("/roles", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// RegisterShiftRoutes wires shift CRUD endpoints.
func RegisterShiftRoutes(r chi.Router, h *ShiftHandler) {
	r.Route("/shifts", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// RegisterEmployeeRoutes wires employee CRUD endpoints.
func RegisterEmployeeRoutes(r chi.Router, h *EmployeeHandler) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// RegisterAbsenceRoutes wires absence CRUD endpoints.
func RegisterAbsenceRoutes(r chi.Router, h *AbsenceHandler) {
	r.Route("/absences", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Delete("/{id}", h.Delete)
	})
}

// RegisterHolidayRoutes wires holiday CRUD endpoints.
func RegisterHolidayRoutes(r chi.Router, h *HolidayHandler) {
	r.Route("/holidays", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Upsert)
		r.Get("/{id}", h.Get)
		r.Delete("/{id}", h.Delete)
	})
}

// RegisterLaborLawRuleRoutes wires labor-law rule CRUD endpoints.
func RegisterLaborLawRuleRoutes(r chi.Router, h *LaborLawRuleHandler) {
	r.Route("/rules", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{code}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// RegisterStaffingTemplateRoutes wires staffing-template CRUD endpoints.
func RegisterStaffingTemplateRoutes(r chi.Router, h *StaffingTemplateHandler) {
	r.Route("/staffing-templates", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Upsert)
		r.Get("/{id}", h.Get)
		r.Delete("/{id}", h.Delete)
	})
}

// RegisterGeneratorParametersRoutes wires generator-parameters endpoints.
func RegisterGeneratorParametersRoutes(r chi.Router, h *GeneratorParametersHandler) {
	r.Route("/generator-parameters", func(r chi.Router) {
		r.Post("/", h.Upsert)
		r.Get("/{scenario}", h.Get)
	})
}

// RegisterImportRoutes wires the bulk catalog import endpoint.
func RegisterImportRoutes(r chi.Router, h *ImportHandler) {
	r.Post("/import", h.Upload)
}

// RegisterRosterRoutes wires the schedule PDF roster endpoint.
func RegisterRosterRoutes(r chi.Router, h *RosterHandler) {
	r.Get("/schedules/{id}/roster.pdf", h.Get)
}
