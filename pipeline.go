package waci

import (
	"errors"
	"fmt"
)

// Branch holds the per-holding results of one side of the comparison.
type Branch struct {
	Kind Kind `json:"kind"`
	// Rows is the number of holdings read from the source table.
	Rows int `json:"rows"`
	// Dropped is the number of rows removed by the completeness filter.
	Dropped int `json:"dropped"`
	// NonFinite is the number of complete holdings whose WACI is undefined.
	NonFinite int `json:"nonFinite"`
	// TotalCapitalization is the market value of the complete holdings (portfolio only).
	TotalCapitalization Money `json:"totalCapitalization"`

	Holdings []WeightedHolding `json:"-"`
}

// Report is the outcome of a WACI run.
type Report struct {
	Breakdown
	Portfolio Branch    `json:"portfolio"`
	Benchmark Branch    `json:"benchmark"`
	Warnings  []Warning `json:"warnings"`
}

// Compute runs the whole pipeline on t: reconcile tickers, join carbon data,
// drop incomplete rows, weight the holdings and aggregate them by category.
//
// It never modifies t. Data quality issues are reported as warnings, the only
// failure is a branch left empty by the completeness filter (ErrEmptyResultSet).
func Compute(t Tables) (*Report, error) {
	r, err := Check(t)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Check is Compute for data validation. When a branch is left empty, it
// returns ErrEmptyResultSet along with a partial report: the coverage of both
// branches and every warning, without breakdown.
func Check(t Tables) (*Report, error) {
	r := &Report{Warnings: make([]Warning, 0)}
	for _, sedol := range t.Emissions.Duplicates() {
		r.Warnings = append(r.Warnings, Warning{
			Code:    WarnDuplicateEmissions,
			Message: fmt.Sprintf("sedol %q is listed more than once in the carbon data, the first record is used", sedol),
		})
	}

	var perr, berr error
	r.Portfolio, perr = r.branch(Portfolio, t.Portfolio, t, PortfolioWeights)
	r.Benchmark, berr = r.branch(Benchmark, t.Benchmark, t, BenchmarkWeights)
	if err := errors.Join(perr, berr); err != nil {
		return r, err
	}

	r.Breakdown = Aggregate(r.Portfolio.Holdings, r.Benchmark.Holdings)
	for _, c := range r.BenchmarkOnly {
		r.Warnings = append(r.Warnings, Warning{
			Code:    WarnBenchmarkOnlyCategory,
			Branch:  Benchmark,
			Message: fmt.Sprintf("category %q is not held by the portfolio and is not part of the breakdown", c),
		})
	}
	return r, nil
}

// branch runs the join, filter and weighting stages for one holdings table.
// An empty branch still carries its row counts.
func (r *Report) branch(kind Kind, holdings []Holding, t Tables, weigh func([]CompleteHolding) ([]WeightedHolding, []Warning)) (Branch, error) {
	joined := JoinEmissions(Reconcile(holdings, t.IDMap), t.Emissions)
	complete, dropped := FilterComplete(joined)
	r.Warnings = append(r.Warnings, dropped...)
	if len(complete) == 0 {
		return Branch{Kind: kind, Rows: len(holdings), Dropped: len(dropped)}, fmt.Errorf("%s: %d rows, %d dropped: %w", kind, len(holdings), len(dropped), ErrEmptyResultSet)
	}

	weighted, warnings := weigh(complete)
	r.Warnings = append(r.Warnings, warnings...)

	b := Branch{
		Kind:     kind,
		Rows:     len(holdings),
		Dropped:  len(dropped),
		Holdings: weighted,
	}
	if kind == Portfolio {
		b.TotalCapitalization = TotalCapitalization(complete)
	}
	for _, h := range weighted {
		if h.NonFinite {
			b.NonFinite++
		}
	}
	return b, nil
}
