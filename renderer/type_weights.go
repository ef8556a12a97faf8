package renderer

import "github.com/etnz/waci"

// Weights is the view of the benchmark revenue weight comparison.
type Weights struct {
	Lines []WeightLine `json:"lines"`
}

// WeightLine compares the index weight of one benchmark holding with its revenue weight.
type WeightLine struct {
	Ticker        string       `json:"ticker"`
	IssuerName    string       `json:"issuerName,omitempty"`
	IndexWeight   waci.Percent `json:"indexWeight"`
	RevenueWeight waci.Percent `json:"revenueWeight"`
	Difference    waci.Percent `json:"difference"`
}

// NewWeights creates the comparison view.
func NewWeights(cmp []waci.WeightComparison) *Weights {
	w := &Weights{Lines: make([]WeightLine, 0, len(cmp))}
	for _, c := range cmp {
		w.Lines = append(w.Lines, WeightLine{
			Ticker:        c.Ticker,
			IssuerName:    c.IssuerName,
			IndexWeight:   pct(c.IndexWeight),
			RevenueWeight: pct(c.RevenueWeight),
			Difference:    pct(c.Difference),
		})
	}
	return w
}

func pct(q waci.Quantity) waci.Percent { return waci.Percent(q.Float64() * 100) }
