package modules

import "gitlab.com/NebulousLabs/errors"

// Error kinds the core signals, per spec.md §7. These are compared with
// errors.Contains the same way skymodules/accounting compares against
// errNilWallet — a sentinel identifies the *kind*, errors.AddContext adds the
// row/field detail.
var (
	// ErrValidation marks a row-level schema or data-limit violation. It
	// aborts Optimize before any group work starts.
	ErrValidation = errors.New("VALIDATION_ERROR")

	// ErrConstraint marks a welding-budget/length feasibility conflict
	// caught by ConstraintValidator.
	ErrConstraint = errors.New("CONSTRAINT_ERROR")

	// ErrTimeout names the timed-out kind. It is never returned from
	// Optimize and nothing attaches it to a result; an expired time budget
	// shows up as TaskStats.Unfulfilled and RequirementValidation instead.
	ErrTimeout = errors.New("TIMEOUT_WARNING")

	// ErrAlgorithm names the failed-consistency kind. It is never returned
	// from Optimize and nothing attaches it to a result; a failed check
	// shows up as CompleteStats.ConsistencyCheck.OK == false, with a nil error.
	ErrAlgorithm = errors.New("ALGORITHM_ERROR")

	// ErrInternal wraps an unexpected panic recovered inside a group task.
	ErrInternal = errors.New("INTERNAL_ERROR")
)

// Violation is one row-level or feasibility finding from ConstraintValidator.
type Violation struct {
	Code    string
	Message string
	Fields  []string
}

// ConstraintValidation is the §6 wire shape for ConstraintValidator's
// output.
type ConstraintValidation struct {
	IsValid     bool
	Violations  []Violation
	Suggestions []string
	Warnings    []string
}
