/*
report.go - PDF summary report for a recorded run

PURPOSE:
  Renders a one-page PDF with the assumptions, the three headline
  numbers, and the narrative, so a run can be printed or attached to an
  email. Everything is recomputed from the run's stored assumptions.

ENDPOINT:
  GET /api/runs/{id}/report
*/
package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/warp/pension-engine/factory"
	"github.com/warp/pension-engine/projection"
)

// RunReport renders a PDF summary of a recorded run.
// GET /api/runs/{id}/report
func (h *Handler) RunReport(w http.ResponseWriter, r *http.Request) {
	run, doc, ok := h.loadRun(w, r)
	if !ok {
		return
	}

	result, err := projection.Project(doc.Assumptions())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Stored assumptions no longer project", err)
		return
	}

	pdf, err := buildRunReport(doc, result, run.CreatedAt)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to render report", err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "projection-"+run.ID+".pdf"))
	w.Write(pdf)
}

// buildRunReport lays out the one-page report.
func buildRunReport(doc factory.AssumptionsJSON, result *projection.Result, ranAt time.Time) ([]byte, error) {
	const contentWidth = 170.0

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	// Title
	pdf.SetFont("Arial", "B", 20)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(contentWidth, 12, "Pension vs. Personal Investment", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "I", 10)
	pdf.SetTextColor(80, 80, 80)
	pdf.CellFormat(contentWidth, 6, fmt.Sprintf("Run recorded %s", ranAt.Format("2 January 2006 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	section := func(title string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(0, 51, 102)
		pdf.SetFillColor(245, 247, 250)
		pdf.SetDrawColor(200, 200, 200)
		pdf.CellFormat(contentWidth, 8, title, "1", 1, "C", true, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(50, 50, 50)
	}
	row := func(label, value string, border string) {
		pdf.CellFormat(contentWidth/2, 7, label, border, 0, "L", true, 0, "")
		pdf.CellFormat(contentWidth/2, 7, value, border, 1, "R", true, 0, "")
	}

	// Assumptions
	section("Assumptions")
	row("Starting salary", formatMoney(decimal.NewFromFloat(doc.StartingSalary)), "LR")
	row("Salary growth (COLA)", fmt.Sprintf("%.2f%%", doc.GrowthRatePct), "LR")
	if doc.StepRatePct != 0 {
		row("Step raises (years 2-5)", fmt.Sprintf("%.2f%%", doc.StepRatePct), "LR")
	}
	if doc.PromotionRatePct != 0 {
		years := make([]string, len(doc.PromotionYears))
		for i, y := range doc.PromotionYears {
			years[i] = fmt.Sprintf("%d", y)
		}
		row(fmt.Sprintf("Promotions (years %s)", strings.Join(years, ", ")),
			fmt.Sprintf("%.2f%%", doc.PromotionRatePct), "LR")
	}
	row("Contribution rate", fmt.Sprintf("%.2f%%", doc.ContributionRatePct), "LR")
	row("Investment return", fmt.Sprintf("%.2f%%", doc.ReturnRatePct), "LR")
	row("Horizon", fmt.Sprintf("%d working + %d retired years", doc.YearsWorking, doc.YearsRetired), "LR")
	if doc.Benefit.Mode == string(projection.BenefitFinalSalary) {
		row("Pension formula", fmt.Sprintf("%.2f%% accrual x final salary", doc.Benefit.AccrualRatePct), "LRB")
	} else {
		row("Pension allowance", formatMoney(decimal.NewFromFloat(doc.Benefit.AnnualAllowance))+" / year", "LRB")
	}
	pdf.Ln(6)

	// Summary
	s := result.Summary
	section("Summary")
	row("Total contributions", formatMoney(s.TotalContributions), "LR")
	row("Total pension benefits", formatMoney(s.TotalBenefits), "LR")
	if s.Exhausted() {
		row("Personal fund", fmt.Sprintf("exhausted in year %d", *s.ExhaustedYear), "LRB")
	} else {
		row("Final personal balance", formatMoney(s.FinalBalance), "LRB")
	}
	pdf.Ln(6)

	// Interpretation
	section("Interpretation")
	narrative := buildNarrative(result, result.Compare())
	pdf.MultiCell(contentWidth, 6, narrative, "LRB", "L", true)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
