/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's decimal-based domain model from the external API contract:
  money crosses the wire as float64, which is fine for display and keeps
  clients simple.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

TYPES:
  Projection:
    ProjectionResponse, YearRecordDTO, SummaryDTO, ComparisonDTO

  Scenario:
    ScenarioDTO, CreateScenarioRequest

  Run:
    RunDTO

SEE ALSO:
  - handlers.go: Uses these types
  - factory/assumptions.go: AssumptionsJSON, the request-side schema
*/
package api

import (
	"time"

	"github.com/warp/pension-engine/factory"
	"github.com/warp/pension-engine/projection"
	"github.com/warp/pension-engine/scenario"
)

// =============================================================================
// PROJECTION TYPES
// =============================================================================

// YearRecordDTO represents one simulated year.
type YearRecordDTO struct {
	Index              int     `json:"index"`
	Label              string  `json:"label"`
	Phase              string  `json:"phase"`
	Salary             float64 `json:"salary"`
	Contribution       float64 `json:"contribution"`
	Benefit            float64 `json:"benefit"`
	CumulativeBenefits float64 `json:"cumulative_benefits"`
	Balance            float64 `json:"balance"`
	Exhausted          bool    `json:"exhausted,omitempty"`
}

// SummaryDTO carries the three headline numbers plus exhaustion info.
type SummaryDTO struct {
	TotalContributions float64 `json:"total_contributions"`
	TotalBenefits      float64 `json:"total_benefits"`
	FinalBalance       float64 `json:"final_balance"`
	AnnualBenefit      float64 `json:"annual_benefit"`
	FinalSalary        float64 `json:"final_salary"`
	ExhaustedYear      *int    `json:"exhausted_year,omitempty"`
}

// ComparisonDTO is the derived judgment plus a short narrative.
type ComparisonDTO struct {
	Verdict       string `json:"verdict"`
	BreakEvenYear *int   `json:"break_even_year,omitempty"`
	Narrative     string `json:"narrative"`
}

// ProjectionResponse is the full result of a projection run.
type ProjectionResponse struct {
	Records    []YearRecordDTO `json:"records"`
	Summary    SummaryDTO      `json:"summary"`
	Comparison ComparisonDTO   `json:"comparison"`
}

// =============================================================================
// SCENARIO TYPES
// =============================================================================

// ScenarioDTO represents a saved scenario in API responses.
type ScenarioDTO struct {
	ID          string                  `json:"id"`
	Name        string                  `json:"name"`
	Description string                  `json:"description,omitempty"`
	Assumptions factory.AssumptionsJSON `json:"assumptions"`
	CreatedAt   string                  `json:"created_at,omitempty"`
	UpdatedAt   string                  `json:"updated_at,omitempty"`
}

// CreateScenarioRequest is the request to save a scenario.
type CreateScenarioRequest struct {
	Name        string                  `json:"name"`
	Description string                  `json:"description,omitempty"`
	Assumptions factory.AssumptionsJSON `json:"assumptions"`
}

// =============================================================================
// RUN TYPES
// =============================================================================

// RunDTO represents a recorded projection execution.
type RunDTO struct {
	ID         string     `json:"id"`
	ScenarioID string     `json:"scenario_id,omitempty"`
	Summary    SummaryDTO `json:"summary"`
	CreatedAt  string     `json:"created_at"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// FieldErrorDTO names one invalid input field.
type FieldErrorDTO struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toYearRecordDTO(rec projection.YearRecord) YearRecordDTO {
	salary, _ := rec.Salary.Float64()
	contribution, _ := rec.Contribution.Float64()
	benefit, _ := rec.Benefit.Float64()
	cumulative, _ := rec.CumulativeBenefits.Float64()
	balance, _ := rec.Balance.Float64()

	return YearRecordDTO{
		Index:              rec.Index,
		Label:              rec.Label(),
		Phase:              string(rec.Phase),
		Salary:             salary,
		Contribution:       contribution,
		Benefit:            benefit,
		CumulativeBenefits: cumulative,
		Balance:            balance,
		Exhausted:          rec.Exhausted,
	}
}

func toSummaryDTO(s projection.Summary) SummaryDTO {
	contributions, _ := s.TotalContributions.Float64()
	benefits, _ := s.TotalBenefits.Float64()
	final, _ := s.FinalBalance.Float64()
	annual, _ := s.AnnualBenefit.Float64()
	finalSalary, _ := s.FinalSalary.Float64()

	return SummaryDTO{
		TotalContributions: contributions,
		TotalBenefits:      benefits,
		FinalBalance:       final,
		AnnualBenefit:      annual,
		FinalSalary:        finalSalary,
		ExhaustedYear:      s.ExhaustedYear,
	}
}

func toProjectionResponse(result *projection.Result) ProjectionResponse {
	records := make([]YearRecordDTO, len(result.Records))
	for i, rec := range result.Records {
		records[i] = toYearRecordDTO(rec)
	}

	comparison := result.Compare()
	return ProjectionResponse{
		Records: records,
		Summary: toSummaryDTO(result.Summary),
		Comparison: ComparisonDTO{
			Verdict:       string(comparison.Verdict),
			BreakEvenYear: comparison.BreakEvenYear,
			Narrative:     buildNarrative(result, comparison),
		},
	}
}

func toScenarioDTO(sc scenario.Scenario, assumptions factory.AssumptionsJSON) ScenarioDTO {
	return ScenarioDTO{
		ID:          sc.ID,
		Name:        sc.Name,
		Description: sc.Description,
		Assumptions: assumptions,
		CreatedAt:   sc.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   sc.UpdatedAt.Format(time.RFC3339),
	}
}
