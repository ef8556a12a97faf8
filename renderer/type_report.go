package renderer

import "github.com/etnz/waci"

// Report is the view of a WACI run used by the report templates.
type Report struct {
	PortfolioWACI waci.Quantity            `json:"portfolioWACI"`
	BenchmarkWACI waci.Quantity            `json:"benchmarkWACI"`
	Categories    []waci.CategoryBreakdown `json:"categories"`
	BenchmarkOnly []string                 `json:"benchmarkOnly,omitempty"`
	Coverage      []Coverage               `json:"coverage"`
	Warnings      []waci.Warning           `json:"warnings,omitempty"`
}

// Coverage summarizes how many rows of a branch made it into the WACI.
type Coverage struct {
	Name      string `json:"name"`
	Rows      int    `json:"rows"`
	Complete  int    `json:"complete"`
	Dropped   int    `json:"dropped"`
	NonFinite int    `json:"nonFinite"`
}

// NewReport creates the report view from a computed waci.Report.
func NewReport(r *waci.Report) *Report {
	return &Report{
		PortfolioWACI: r.PortfolioWACI,
		BenchmarkWACI: r.BenchmarkWACI,
		Categories:    r.Categories,
		BenchmarkOnly: r.BenchmarkOnly,
		Coverage:      []Coverage{NewCoverage("Portfolio", r.Portfolio), NewCoverage("Benchmark", r.Benchmark)},
		Warnings:      r.Warnings,
	}
}

// NewCoverage summarizes a branch.
func NewCoverage(name string, b waci.Branch) Coverage {
	return Coverage{
		Name:      name,
		Rows:      b.Rows,
		Complete:  len(b.Holdings),
		Dropped:   b.Dropped,
		NonFinite: b.NonFinite,
	}
}
