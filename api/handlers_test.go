package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/pension-engine/scenario/store"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// newTestRouter creates a router backed by an in-memory store.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	h, err := NewHandler(store.NewMemory())
	require.NoError(t, err)
	return NewRouter(h)
}

// referenceAssumptions is a 30-working / 20-retired career:
// $60k starting salary, 2% raises, 10% contributions, 5% returns,
// $30k flat pension.
func referenceAssumptions() map[string]any {
	return map[string]any{
		"starting_salary":       60000,
		"growth_rate_pct":       2,
		"years_working":         30,
		"years_retired":         20,
		"contribution_rate_pct": 10,
		"return_rate_pct":       5,
		"benefit": map[string]any{
			"mode":             "flat",
			"annual_allowance": 30000,
		},
	}
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, into any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), into))
}

// =============================================================================
// PROJECTION TESTS
// =============================================================================

func TestRunProjection(t *testing.T) {
	router := newTestRouter(t)

	// GIVEN the reference assumptions
	// WHEN we run a projection
	rec := doJSON(t, router, "POST", "/api/projections", referenceAssumptions())

	// THEN we get the full 50-year trace with summary and comparison
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp ProjectionResponse
	decode(t, rec, &resp)

	require.Len(t, resp.Records, 50)
	assert.Equal(t, "W1", resp.Records[0].Label)
	assert.Equal(t, "R1", resp.Records[30].Label)
	assert.Equal(t, "R20", resp.Records[49].Label)

	// Contributions: sum of 6000 * 1.02^k for k=0..29
	assert.InDelta(t, 243408.5, resp.Summary.TotalContributions, 1.0)
	assert.InDelta(t, 600000, resp.Summary.TotalBenefits, 0.01)
	assert.InDelta(t, 30000, resp.Summary.AnnualBenefit, 0.01)
	assert.NotEmpty(t, resp.Comparison.Verdict)
	assert.NotEmpty(t, resp.Comparison.Narrative)
}

func TestRunProjection_RecordsHistory(t *testing.T) {
	router := newTestRouter(t)

	// GIVEN an ad-hoc projection has run
	rec := doJSON(t, router, "POST", "/api/projections", referenceAssumptions())
	require.Equal(t, http.StatusOK, rec.Code)

	// WHEN we list the run history
	rec = doJSON(t, router, "GET", "/api/runs", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// THEN the run is recorded, with no scenario attached
	var resp struct {
		Runs []RunDTO `json:"runs"`
	}
	decode(t, rec, &resp)

	require.Len(t, resp.Runs, 1)
	assert.Empty(t, resp.Runs[0].ScenarioID)
	assert.InDelta(t, 600000, resp.Runs[0].Summary.TotalBenefits, 0.01)
}

func TestRunProjection_InvalidAssumptions(t *testing.T) {
	router := newTestRouter(t)

	// GIVEN assumptions with two invalid fields
	body := referenceAssumptions()
	body["growth_rate_pct"] = -2
	body["years_retired"] = -5

	// WHEN we run a projection
	rec := doJSON(t, router, "POST", "/api/projections", body)

	// THEN we get 400 with both fields named
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Error   string          `json:"error"`
		Code    string          `json:"code"`
		Details []FieldErrorDTO `json:"details"`
	}
	decode(t, rec, &resp)

	assert.Equal(t, "invalid_assumptions", resp.Code)
	fields := make([]string, len(resp.Details))
	for i, d := range resp.Details {
		fields[i] = d.Field
	}
	assert.Contains(t, fields, "growth_rate")
	assert.Contains(t, fields, "years_retired")
}

func TestRunProjection_MalformedBody(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest("POST", "/api/projections", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// =============================================================================
// PRESET TESTS
// =============================================================================

func TestListPresets(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, "GET", "/api/presets", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var presets []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	decode(t, rec, &presets)

	require.NotEmpty(t, presets)
	ids := make([]string, len(presets))
	for i, p := range presets {
		ids[i] = p.ID
	}
	assert.Contains(t, ids, "civil-servant")
}

func TestGetPreset(t *testing.T) {
	router := newTestRouter(t)

	// Known preset
	rec := doJSON(t, router, "GET", "/api/presets/civil-servant", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Unknown preset
	rec = doJSON(t, router, "GET", "/api/presets/lottery-winner", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// =============================================================================
// SCENARIO TESTS
// =============================================================================

func createScenario(t *testing.T, router http.Handler, name string) ScenarioDTO {
	t.Helper()

	rec := doJSON(t, router, "POST", "/api/scenarios", map[string]any{
		"name":        name,
		"description": "test scenario",
		"assumptions": referenceAssumptions(),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var dto ScenarioDTO
	decode(t, rec, &dto)
	require.NotEmpty(t, dto.ID)
	return dto
}

func TestScenarioLifecycle(t *testing.T) {
	router := newTestRouter(t)

	// GIVEN a saved scenario
	created := createScenario(t, router, "My Plan")

	// WHEN we fetch it back
	rec := doJSON(t, router, "GET", "/api/scenarios/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched ScenarioDTO
	decode(t, rec, &fetched)
	assert.Equal(t, "My Plan", fetched.Name)
	assert.Equal(t, 30, fetched.Assumptions.YearsWorking)

	// AND it shows up in the list
	rec = doJSON(t, router, "GET", "/api/scenarios", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []ScenarioDTO
	decode(t, rec, &list)
	require.Len(t, list, 1)

	// WHEN we delete it
	rec = doJSON(t, router, "DELETE", "/api/scenarios/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// THEN it is gone
	rec = doJSON(t, router, "GET", "/api/scenarios/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateScenario_Invalid(t *testing.T) {
	router := newTestRouter(t)

	// Missing name
	rec := doJSON(t, router, "POST", "/api/scenarios", map[string]any{
		"assumptions": referenceAssumptions(),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Assumptions the engine would refuse
	bad := referenceAssumptions()
	bad["contribution_rate_pct"] = 150
	rec = doJSON(t, router, "POST", "/api/scenarios", map[string]any{
		"name":        "Over-contributor",
		"assumptions": bad,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRunScenario(t *testing.T) {
	router := newTestRouter(t)

	created := createScenario(t, router, "My Plan")

	// WHEN we run the saved scenario
	rec := doJSON(t, router, "POST", fmt.Sprintf("/api/scenarios/%s/run", created.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		RunID string `json:"run_id"`
		ProjectionResponse
	}
	decode(t, rec, &resp)

	require.NotEmpty(t, resp.RunID)
	assert.Len(t, resp.Records, 50)

	// THEN the run appears in history, filtered by scenario
	rec = doJSON(t, router, "GET", "/api/runs?scenario_id="+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var history struct {
		Runs []RunDTO `json:"runs"`
	}
	decode(t, rec, &history)
	require.Len(t, history.Runs, 1)
	assert.Equal(t, resp.RunID, history.Runs[0].ID)
	assert.Equal(t, created.ID, history.Runs[0].ScenarioID)
}

func TestRunScenario_NotFound(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, "POST", "/api/scenarios/nope/run", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// =============================================================================
// RUN TESTS
// =============================================================================

func TestGetRun(t *testing.T) {
	router := newTestRouter(t)

	created := createScenario(t, router, "My Plan")
	rec := doJSON(t, router, "POST", fmt.Sprintf("/api/scenarios/%s/run", created.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var ran struct {
		RunID string `json:"run_id"`
	}
	decode(t, rec, &ran)

	// WHEN we fetch the run by ID
	rec = doJSON(t, router, "GET", "/api/runs/"+ran.RunID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// THEN we get the full re-projected trace
	var resp struct {
		RunID      string `json:"run_id"`
		ScenarioID string `json:"scenario_id"`
		ProjectionResponse
	}
	decode(t, rec, &resp)

	assert.Equal(t, ran.RunID, resp.RunID)
	assert.Equal(t, created.ID, resp.ScenarioID)
	assert.Len(t, resp.Records, 50)
}

func TestGetRun_NotFound(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, "GET", "/api/runs/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRunReport(t *testing.T) {
	router := newTestRouter(t)

	created := createScenario(t, router, "My Plan")
	rec := doJSON(t, router, "POST", fmt.Sprintf("/api/scenarios/%s/run", created.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var ran struct {
		RunID string `json:"run_id"`
	}
	decode(t, rec, &ran)

	// WHEN we request the PDF report
	rec = doJSON(t, router, "GET", fmt.Sprintf("/api/runs/%s/report", ran.RunID), nil)

	// THEN we get a PDF document
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}
