/*
store.go - Persistence interfaces for scenarios and runs

PURPOSE:
  Defines what the API layer needs from storage. Implementations:
  - store/memory.go: In-memory (tests, dev)
  - ../store/sqlite:  SQLite (production)

SEMANTICS:
  SaveScenario upserts by ID. Runs are append-only: they record history
  and are never updated. Lookups return ErrScenarioNotFound/ErrRunNotFound
  (use errors.Is) rather than nil-and-no-error.
*/
package scenario

import (
	"context"
	"errors"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

var (
	ErrScenarioNotFound = errors.New("scenario not found")
	ErrRunNotFound      = errors.New("run not found")
)

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrScenarioNotFound) || errors.Is(err, ErrRunNotFound)
}

// =============================================================================
// STORE INTERFACES
// =============================================================================

// ScenarioStore persists named assumption sets.
type ScenarioStore interface {
	SaveScenario(ctx context.Context, s Scenario) error
	GetScenario(ctx context.Context, id string) (*Scenario, error)
	ListScenarios(ctx context.Context) ([]Scenario, error)
	DeleteScenario(ctx context.Context, id string) error
}

// RunStore records projection executions. Append-only.
type RunStore interface {
	SaveRun(ctx context.Context, r Run) error
	GetRun(ctx context.Context, id string) (*Run, error)

	// ListRuns returns runs newest-first. An empty scenarioID lists all.
	ListRuns(ctx context.Context, scenarioID string) ([]Run, error)
}

// Store combines everything the API layer needs.
type Store interface {
	ScenarioStore
	RunStore
}
