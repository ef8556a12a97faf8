package waci

// WeightComparison compares the index weight of a benchmark holding with the
// weight its revenue would give it.
type WeightComparison struct {
	Ticker        string   `json:"ticker"`
	IssuerName    string   `json:"issuerName,omitempty"`
	IndexWeight   Quantity `json:"indexWeight"`
	RevenueWeight Quantity `json:"revenueWeight"`
	Difference    Quantity `json:"difference"` // RevenueWeight - IndexWeight
}

// CompareRevenueWeights weights each holding by its revenue over the total
// revenue of holdings and compares it to the index weight. It returns nil
// when the total revenue is zero.
func CompareRevenueWeights(holdings []WeightedHolding) []WeightComparison {
	var total Money
	for _, h := range holdings {
		total = total.Add(h.RevenueMillionsUSD)
	}
	if total.IsZero() {
		return nil
	}
	res := make([]WeightComparison, 0, len(holdings))
	for _, h := range holdings {
		rw := h.RevenueMillionsUSD.Ratio(total)
		res = append(res, WeightComparison{
			Ticker:        h.Ticker,
			IssuerName:    h.IssuerName,
			IndexWeight:   h.IndexWeight,
			RevenueWeight: rw,
			Difference:    rw.Sub(h.IndexWeight),
		})
	}
	return res
}
