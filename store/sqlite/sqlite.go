/*
Package sqlite provides a SQLite-backed implementation of scenario.Store.

PURPOSE:
  Persists saved scenarios and the run history. The projection itself is
  stateless; this is the only state in the system.

TABLES:
  scenarios:  Saved assumption sets (upserted by ID)
  runs:       Append-only record of projection executions

RUNS ARE APPEND-ONLY:
  Runs record history. There are no UPDATE statements on the runs table;
  a re-run is a new row.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

USAGE:
  store, err := sqlite.New("./data/pension.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - scenario/store.go: Interface definitions
  - scenario/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/pension-engine/scenario"
)

// runTimeLayout pads fractional seconds to a fixed width so the text
// column sorts chronologically. RFC3339Nano trims trailing zeros, which
// makes "10:00:00.5Z" sort after "10:00:00.500000001Z".
const runTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store implements scenario.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Compile-time check
var _ scenario.Store = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Saved scenarios (named assumption sets)
	CREATE TABLE IF NOT EXISTS scenarios (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		assumptions_json TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_scenarios_name
		ON scenarios(name);

	-- Runs (append-only projection history)
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		scenario_id TEXT,
		assumptions_json TEXT NOT NULL,
		summary_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_scenario
		ON runs(scenario_id) WHERE scenario_id != '';
	CREATE INDEX IF NOT EXISTS idx_runs_created_at
		ON runs(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SCENARIO STORE (scenario.ScenarioStore interface)
// =============================================================================

// SaveScenario upserts a scenario by ID.
func (s *Store) SaveScenario(ctx context.Context, sc scenario.Scenario) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	createdAt := sc.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	updatedAt := sc.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = now
	}

	query := `
		INSERT INTO scenarios (id, name, description, assumptions_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			assumptions_json = excluded.assumptions_json,
			updated_at = excluded.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		sc.ID, sc.Name, sc.Description, sc.AssumptionsJSON,
		createdAt.Format(time.RFC3339), updatedAt.Format(time.RFC3339),
	)
	return err
}

// GetScenario returns a scenario by ID.
func (s *Store) GetScenario(ctx context.Context, id string) (*scenario.Scenario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, assumptions_json, created_at, updated_at
		FROM scenarios WHERE id = ?
	`, id)

	sc, err := scanScenario(row)
	if err == sql.ErrNoRows {
		return nil, scenario.ErrScenarioNotFound
	}
	if err != nil {
		return nil, err
	}
	return sc, nil
}

// ListScenarios returns all scenarios ordered by name.
func (s *Store) ListScenarios(ctx context.Context) ([]scenario.Scenario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, assumptions_json, created_at, updated_at
		FROM scenarios ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []scenario.Scenario
	for rows.Next() {
		sc, err := scanScenario(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *sc)
	}
	return result, rows.Err()
}

// DeleteScenario removes a scenario by ID. Runs referencing it are kept
// as history.
func (s *Store) DeleteScenario(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM scenarios WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return scenario.ErrScenarioNotFound
	}
	return nil
}

// =============================================================================
// RUN STORE (scenario.RunStore interface)
// =============================================================================

// SaveRun appends a run to the history.
func (s *Store) SaveRun(ctx context.Context, r scenario.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, scenario_id, assumptions_json, summary_json, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, r.ID, r.ScenarioID, r.AssumptionsJSON, r.SummaryJSON, createdAt.Format(runTimeLayout))
	return err
}

// GetRun returns a run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (*scenario.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, scenario_id, assumptions_json, summary_json, created_at
		FROM runs WHERE id = ?
	`, id)

	r, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, scenario.ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// ListRuns returns runs newest-first, optionally filtered by scenario.
func (s *Store) ListRuns(ctx context.Context, scenarioID string) ([]scenario.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, scenario_id, assumptions_json, summary_json, created_at
		FROM runs
	`
	var args []any
	if scenarioID != "" {
		query += ` WHERE scenario_id = ?`
		args = append(args, scenarioID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []scenario.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *r)
	}
	return result, rows.Err()
}

// =============================================================================
// ROW SCANNING
// =============================================================================

type scanner interface {
	Scan(dest ...any) error
}

func scanScenario(row scanner) (*scenario.Scenario, error) {
	var sc scenario.Scenario
	var createdAt, updatedAt string
	if err := row.Scan(&sc.ID, &sc.Name, &sc.Description, &sc.AssumptionsJSON, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	sc.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	sc.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &sc, nil
}

func scanRun(row scanner) (*scenario.Run, error) {
	var r scenario.Run
	var createdAt string
	if err := row.Scan(&r.ID, &r.ScenarioID, &r.AssumptionsJSON, &r.SummaryJSON, &createdAt); err != nil {
		return nil, err
	}
	r.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return &r, nil
}
