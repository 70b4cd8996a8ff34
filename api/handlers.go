/*
handlers.go - HTTP API handlers for the pension calculator

PURPOSE:
  Exposes the projection engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to the engine.

ENDPOINTS:
  Projections:
    POST   /api/projections            Run a projection from assumptions

  Presets:
    GET    /api/presets                List built-in scenarios
    GET    /api/presets/{id}           Get one preset

  Scenarios:
    GET    /api/scenarios              List saved scenarios
    POST   /api/scenarios              Save a scenario
    GET    /api/scenarios/{id}         Get a scenario
    DELETE /api/scenarios/{id}         Delete a scenario
    POST   /api/scenarios/{id}/run     Run a saved scenario, record a run

  Runs:
    GET    /api/runs                   Run history (optionally ?scenario_id=)
    GET    /api/runs/{id}              Get one run
    GET    /api/runs/{id}/report       PDF summary report

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input (the engine validates every field before running)
  3. Run the projection / hit the store
  4. Serialize response

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input (with per-field details)
  - 404: Scenario or run not found
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/warp/pension-engine/factory"
	"github.com/warp/pension-engine/projection"
	"github.com/warp/pension-engine/scenario"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   scenario.Store
	Factory *factory.AssumptionsFactory

	// Built-in presets, loaded once at startup
	presets []factory.Preset
}

// NewHandler creates a new handler with the given store.
func NewHandler(store scenario.Store) (*Handler, error) {
	presets, err := factory.LoadPresets()
	if err != nil {
		return nil, err
	}
	return &Handler{
		Store:   store,
		Factory: factory.NewAssumptionsFactory(),
		presets: presets,
	}, nil
}

// =============================================================================
// PROJECTION HANDLERS
// =============================================================================

// RunProjection runs an ad-hoc projection from assumptions in the body.
// POST /api/projections
func (h *Handler) RunProjection(w http.ResponseWriter, r *http.Request) {
	var doc factory.AssumptionsJSON
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, ok := h.project(w, doc)
	if !ok {
		return
	}

	// Record ad-hoc runs in history too
	if _, err := h.recordRun(r.Context(), "", doc, result); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to record run", err)
		return
	}

	writeJSON(w, http.StatusOK, toProjectionResponse(result))
}

// project runs the engine and handles validation errors uniformly.
// Returns (nil, false) after writing the error response.
func (h *Handler) project(w http.ResponseWriter, doc factory.AssumptionsJSON) (*projection.Result, bool) {
	a := doc.Assumptions()
	result, err := projection.Project(a)
	if err != nil {
		writeValidationError(w, err)
		return nil, false
	}
	return result, true
}

// recordRun appends a run to the history and returns its ID.
func (h *Handler) recordRun(ctx context.Context, scenarioID string, doc factory.AssumptionsJSON, result *projection.Result) (string, error) {
	assumptionsJSON, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}

	comparison := result.Compare()
	summaryJSON, err := json.Marshal(struct {
		Summary   SummaryDTO `json:"summary"`
		Verdict   string     `json:"verdict"`
		BreakEven *int       `json:"break_even_year,omitempty"`
	}{
		Summary:   toSummaryDTO(result.Summary),
		Verdict:   string(comparison.Verdict),
		BreakEven: comparison.BreakEvenYear,
	})
	if err != nil {
		return "", err
	}

	run := scenario.Run{
		ID:              uuid.NewString(),
		ScenarioID:      scenarioID,
		AssumptionsJSON: string(assumptionsJSON),
		SummaryJSON:     string(summaryJSON),
		CreatedAt:       time.Now().UTC(),
	}
	if err := h.Store.SaveRun(ctx, run); err != nil {
		return "", err
	}
	return run.ID, nil
}

// =============================================================================
// PRESET HANDLERS
// =============================================================================

// ListPresets returns the built-in scenarios.
// GET /api/presets
func (h *Handler) ListPresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.presets)
}

// GetPreset returns one built-in scenario.
// GET /api/presets/{id}
func (h *Handler) GetPreset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	for _, p := range h.presets {
		if p.ID == id {
			writeJSON(w, http.StatusOK, p)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Preset not found", nil)
}

// =============================================================================
// SCENARIO HANDLERS
// =============================================================================

// ListScenarios returns all saved scenarios.
// GET /api/scenarios
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	scenarios, err := h.Store.ListScenarios(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list scenarios", err)
		return
	}

	dtos := make([]ScenarioDTO, 0, len(scenarios))
	for _, sc := range scenarios {
		doc, err := h.Factory.ParseDocument(sc.AssumptionsJSON)
		if err != nil {
			continue // Skip rows that no longer parse
		}
		dtos = append(dtos, toScenarioDTO(sc, doc))
	}

	writeJSON(w, http.StatusOK, dtos)
}

// CreateScenario saves a new scenario.
// POST /api/scenarios
func (h *Handler) CreateScenario(w http.ResponseWriter, r *http.Request) {
	var req CreateScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Scenario name is required", nil)
		return
	}

	// Reject scenarios the engine would refuse to run
	if err := req.Assumptions.Assumptions().Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	assumptionsJSON, err := json.Marshal(req.Assumptions)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to encode assumptions", err)
		return
	}

	now := time.Now().UTC()
	sc := scenario.Scenario{
		ID:              uuid.NewString(),
		Name:            req.Name,
		Description:     req.Description,
		AssumptionsJSON: string(assumptionsJSON),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := h.Store.SaveScenario(r.Context(), sc); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save scenario", err)
		return
	}

	writeJSON(w, http.StatusCreated, toScenarioDTO(sc, req.Assumptions))
}

// GetScenario returns a single saved scenario.
// GET /api/scenarios/{id}
func (h *Handler) GetScenario(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	sc, err := h.Store.GetScenario(r.Context(), id)
	if scenario.IsNotFound(err) {
		writeError(w, http.StatusNotFound, "Scenario not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get scenario", err)
		return
	}

	doc, err := h.Factory.ParseDocument(sc.AssumptionsJSON)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Stored assumptions no longer parse", err)
		return
	}

	writeJSON(w, http.StatusOK, toScenarioDTO(*sc, doc))
}

// DeleteScenario removes a saved scenario.
// DELETE /api/scenarios/{id}
func (h *Handler) DeleteScenario(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.Store.DeleteScenario(r.Context(), id)
	if scenario.IsNotFound(err) {
		writeError(w, http.StatusNotFound, "Scenario not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete scenario", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}

// RunScenario runs a saved scenario and records the run.
// POST /api/scenarios/{id}/run
func (h *Handler) RunScenario(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	sc, err := h.Store.GetScenario(r.Context(), id)
	if scenario.IsNotFound(err) {
		writeError(w, http.StatusNotFound, "Scenario not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get scenario", err)
		return
	}

	doc, err := h.Factory.ParseDocument(sc.AssumptionsJSON)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Stored assumptions no longer parse", err)
		return
	}

	result, ok := h.project(w, doc)
	if !ok {
		return
	}

	runID, err := h.recordRun(r.Context(), sc.ID, doc, result)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to record run", err)
		return
	}

	resp := struct {
		RunID string `json:"run_id"`
		ProjectionResponse
	}{
		RunID:              runID,
		ProjectionResponse: toProjectionResponse(result),
	}
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// RUN HANDLERS
// =============================================================================

// ListRuns returns the run history, newest first.
// GET /api/runs?scenario_id=...
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	scenarioID := r.URL.Query().Get("scenario_id")

	runs, err := h.Store.ListRuns(r.Context(), scenarioID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list runs", err)
		return
	}

	dtos := make([]RunDTO, 0, len(runs))
	for _, run := range runs {
		dto := RunDTO{
			ID:         run.ID,
			ScenarioID: run.ScenarioID,
			CreatedAt:  run.CreatedAt.Format(time.RFC3339),
		}
		var stored struct {
			Summary SummaryDTO `json:"summary"`
		}
		if err := json.Unmarshal([]byte(run.SummaryJSON), &stored); err == nil {
			dto.Summary = stored.Summary
		}
		dtos = append(dtos, dto)
	}

	writeJSON(w, http.StatusOK, map[string]any{"runs": dtos})
}

// GetRun returns one recorded run, re-projected in full.
// GET /api/runs/{id}
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	run, doc, ok := h.loadRun(w, r)
	if !ok {
		return
	}

	result, ok := h.project(w, doc)
	if !ok {
		return
	}

	resp := struct {
		RunID      string `json:"run_id"`
		ScenarioID string `json:"scenario_id,omitempty"`
		CreatedAt  string `json:"created_at"`
		ProjectionResponse
	}{
		RunID:              run.ID,
		ScenarioID:         run.ScenarioID,
		CreatedAt:          run.CreatedAt.Format(time.RFC3339),
		ProjectionResponse: toProjectionResponse(result),
	}
	writeJSON(w, http.StatusOK, resp)
}

// loadRun fetches a run and its assumptions document, writing the error
// response on failure.
func (h *Handler) loadRun(w http.ResponseWriter, r *http.Request) (*scenario.Run, factory.AssumptionsJSON, bool) {
	id := chi.URLParam(r, "id")

	run, err := h.Store.GetRun(r.Context(), id)
	if scenario.IsNotFound(err) {
		writeError(w, http.StatusNotFound, "Run not found", nil)
		return nil, factory.AssumptionsJSON{}, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get run", err)
		return nil, factory.AssumptionsJSON{}, false
	}

	doc, err := h.Factory.ParseDocument(run.AssumptionsJSON)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Stored assumptions no longer parse", err)
		return nil, factory.AssumptionsJSON{}, false
	}
	return run, doc, true
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeValidationError surfaces engine validation failures as 400s with
// per-field details.
func writeValidationError(w http.ResponseWriter, err error) {
	var inv *projection.InvalidAssumptionsError
	if errors.As(err, &inv) {
		details := make([]FieldErrorDTO, len(inv.Fields))
		for i, fe := range inv.Fields {
			details[i] = FieldErrorDTO{Field: fe.Field, Message: fe.Message}
		}
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid assumptions",
			Code:    "invalid_assumptions",
			Details: details,
		})
		return
	}
	if projection.IsClientError(err) {
		writeError(w, http.StatusBadRequest, "Invalid assumptions", err)
		return
	}
	writeError(w, http.StatusInternalServerError, "Projection failed", err)
}
