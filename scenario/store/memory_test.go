package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/pension-engine/scenario"
	"github.com/warp/pension-engine/scenario/store"
)

func TestMemory_ScenarioRoundTrip(t *testing.T) {
	// GIVEN: A saved scenario
	// WHEN: Getting, listing, deleting
	// THEN: Each operation behaves per the Store contract

	m := store.NewMemory()
	ctx := context.Background()

	s := scenario.Scenario{
		ID:              "sc-1",
		Name:            "Civil Servant",
		AssumptionsJSON: `{"starting_salary":120000}`,
		CreatedAt:       time.Now(),
	}
	require.NoError(t, m.SaveScenario(ctx, s))

	got, err := m.GetScenario(ctx, "sc-1")
	require.NoError(t, err)
	assert.Equal(t, "Civil Servant", got.Name)

	list, err := m.ListScenarios(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, m.DeleteScenario(ctx, "sc-1"))
	_, err = m.GetScenario(ctx, "sc-1")
	assert.ErrorIs(t, err, scenario.ErrScenarioNotFound)
	assert.True(t, scenario.IsNotFound(err))
}

func TestMemory_DeleteMissingScenario(t *testing.T) {
	m := store.NewMemory()
	err := m.DeleteScenario(context.Background(), "nope")
	assert.ErrorIs(t, err, scenario.ErrScenarioNotFound)
}

func TestMemory_RunsNewestFirst_FilteredByScenario(t *testing.T) {
	// GIVEN: Runs for two scenarios at different times
	// WHEN: Listing
	// THEN: Newest first, optionally filtered by scenario

	m := store.NewMemory()
	ctx := context.Background()

	base := time.Now()
	require.NoError(t, m.SaveRun(ctx, scenario.Run{ID: "r-1", ScenarioID: "sc-1", CreatedAt: base}))
	require.NoError(t, m.SaveRun(ctx, scenario.Run{ID: "r-2", ScenarioID: "sc-2", CreatedAt: base.Add(time.Minute)}))
	require.NoError(t, m.SaveRun(ctx, scenario.Run{ID: "r-3", ScenarioID: "sc-1", CreatedAt: base.Add(2 * time.Minute)}))

	all, err := m.ListRuns(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "r-3", all[0].ID)

	filtered, err := m.ListRuns(ctx, "sc-1")
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	assert.Equal(t, "r-3", filtered[0].ID)
	assert.Equal(t, "r-1", filtered[1].ID)

	_, err = m.GetRun(ctx, "missing")
	assert.ErrorIs(t, err, scenario.ErrRunNotFound)
}
