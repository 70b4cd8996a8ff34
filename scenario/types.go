/*
Package scenario provides saved assumption sets and run history.

PURPOSE:
  The engine itself is stateless - every projection recomputes from
  scratch. What persists is convenience around it: named assumption sets
  ("scenarios") a user can save and re-run, and a history of runs with
  their summary numbers.

KEY CONCEPTS:
  - Scenario: A named, saved set of assumptions (stored as JSON so the
    storage layer stays ignorant of the engine's types)
  - Run: One recorded execution of a scenario (or ad-hoc assumptions)

SEE ALSO:
  - store.go: Persistence interfaces
  - store/memory.go: In-memory implementation for tests
  - ../store/sqlite: SQLite implementation
*/
package scenario

import "time"

// =============================================================================
// SCENARIO - A named, saved set of assumptions
// =============================================================================

type Scenario struct {
	ID          string
	Name        string
	Description string

	// AssumptionsJSON is the wire-format assumptions document exactly as
	// submitted. Parsed by the factory package on use.
	AssumptionsJSON string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// =============================================================================
// RUN - One recorded projection execution
// =============================================================================

type Run struct {
	ID string

	// ScenarioID is empty for ad-hoc runs.
	ScenarioID string

	// AssumptionsJSON is the input at the time of the run; scenarios can
	// be edited later, runs keep what was actually projected.
	AssumptionsJSON string

	// SummaryJSON holds the run's summary and comparison for history
	// listings without re-running the projection.
	SummaryJSON string

	CreatedAt time.Time
}
