// Package store provides scenario.Store implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/pension-engine/scenario"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu        sync.RWMutex
	scenarios map[string]scenario.Scenario
	runs      map[string]scenario.Run
}

func NewMemory() *Memory {
	return &Memory{
		scenarios: make(map[string]scenario.Scenario),
		runs:      make(map[string]scenario.Run),
	}
}

// Compile-time check
var _ scenario.Store = (*Memory)(nil)

func (m *Memory) SaveScenario(_ context.Context, s scenario.Scenario) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scenarios[s.ID] = s
	return nil
}

func (m *Memory) GetScenario(_ context.Context, id string) (*scenario.Scenario, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.scenarios[id]
	if !ok {
		return nil, scenario.ErrScenarioNotFound
	}
	return &s, nil
}

func (m *Memory) ListScenarios(_ context.Context) ([]scenario.Scenario, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]scenario.Scenario, 0, len(m.scenarios))
	for _, s := range m.scenarios {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *Memory) DeleteScenario(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.scenarios[id]; !ok {
		return scenario.ErrScenarioNotFound
	}
	delete(m.scenarios, id)
	return nil
}

func (m *Memory) SaveRun(_ context.Context, r scenario.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[r.ID] = r
	return nil
}

func (m *Memory) GetRun(_ context.Context, id string) (*scenario.Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.runs[id]
	if !ok {
		return nil, scenario.ErrRunNotFound
	}
	return &r, nil
}

func (m *Memory) ListRuns(_ context.Context, scenarioID string) ([]scenario.Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []scenario.Run
	for _, r := range m.runs {
		if scenarioID == "" || r.ScenarioID == scenarioID {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}
