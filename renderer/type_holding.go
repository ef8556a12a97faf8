package renderer

import (
	"slices"
	"strings"

	"github.com/etnz/waci"
)

// Holdings is the per-holding view of one branch.
type Holdings struct {
	Kind                waci.Kind      `json:"kind"`
	WACI                waci.Quantity  `json:"waci"`
	TotalCapitalization waci.Money     `json:"totalCapitalization"`
	Holdings            []HoldingLine  `json:"holdings"`
	Dropped             []waci.Warning `json:"dropped,omitempty"`
}

// HoldingLine is a single holding of the branch.
type HoldingLine struct {
	Ticker      string        `json:"ticker"`
	Sedol       string        `json:"sedol"`
	Category    string        `json:"category"`
	Units       waci.Quantity `json:"units"`
	Price       waci.Money    `json:"price"`
	MarketValue waci.Money    `json:"marketValue"`
	Weight      waci.Percent  `json:"weight"`
	Intensity   waci.Quantity `json:"intensity"`
	WACI        waci.Quantity `json:"waci"`
	NonFinite   bool          `json:"nonFinite,omitempty"`
}

// IsPortfolio tells the template which columns to show.
func (h *Holdings) IsPortfolio() bool { return h.Kind == waci.Portfolio }

// NewHoldings creates the holdings view of branch b. When sortByWACI is set
// the largest contributors come first, otherwise the source order is kept.
func NewHoldings(r *waci.Report, kind waci.Kind, sortByWACI bool) *Holdings {
	b, total := r.Portfolio, r.PortfolioWACI
	if kind == waci.Benchmark {
		b, total = r.Benchmark, r.BenchmarkWACI
	}
	h := &Holdings{
		Kind:                kind,
		WACI:                total,
		TotalCapitalization: b.TotalCapitalization,
		Holdings:            make([]HoldingLine, 0, len(b.Holdings)),
	}
	for _, wh := range b.Holdings {
		h.Holdings = append(h.Holdings, HoldingLine{
			Ticker:      wh.Ticker,
			Sedol:       wh.Sedol,
			Category:    wh.CategoryGroup,
			Units:       wh.Units,
			Price:       wh.Price,
			MarketValue: wh.MarketValue,
			Weight:      waci.Percent(wh.Weight.Float64() * 100),
			Intensity:   wh.Intensity,
			WACI:        wh.WACI,
			NonFinite:   wh.NonFinite,
		})
	}
	if sortByWACI {
		slices.SortStableFunc(h.Holdings, func(a, b HoldingLine) int {
			return b.WACI.Cmp(a.WACI)
		})
	}
	for _, w := range r.Warnings {
		if w.Branch == kind && strings.HasPrefix(string(w.Code), "W1") {
			h.Dropped = append(h.Dropped, w)
		}
	}
	return h
}
