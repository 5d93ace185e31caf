// Package scheduling implements the schedule generation and validation
// subsystems: the Configuration Loader, the heuristic and CP-SAT
// generators, the Validation Engine, and the Generation Façade that ties
// them together.
package scheduling

import "fmt"

// GenerationError is an expected, caller-recoverable failure: missing
// inputs, missing role assignments, no eligible employee for a role on a
// day, or a solver status other than OPTIMAL/FEASIBLE. No schedule is
// persisted when a GenerationError is raised; the enclosing transaction
// rolls back.
type GenerationError struct {
	Message string
}

func (e *GenerationError) Error() string {
	return e.Message
}

// NewGenerationError builds a GenerationError with a formatted message.
func NewGenerationError(format string, args ...any) *GenerationError {
	return &GenerationError{Message: fmt.Sprintf(format, args...)}
}
