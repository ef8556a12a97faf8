package waci

import "fmt"

// WeightedHolding is a complete holding with its weight in its branch and its
// contribution to the branch WACI.
type WeightedHolding struct {
	CompleteHolding
	MarketValue Money    // units × price, portfolio only
	Weight      Quantity // share of the branch
	Intensity   Quantity // (scope1 + scope2) / revenue in million USD
	WACI        Quantity // Weight × Intensity

	// NonFinite is set when a denominator was zero. Weight, Intensity or WACI
	// are then meaningless and the holding is left out of every sum.
	NonFinite bool
}

// TotalCapitalization returns the sum of units × price over holdings.
func TotalCapitalization(holdings []CompleteHolding) Money {
	var total Money
	for _, h := range holdings {
		total = total.Add(h.Price.Mul(h.Units))
	}
	return total
}

// PortfolioWeights weights each holding by its market value over the total
// market value of holdings and computes its WACI.
func PortfolioWeights(holdings []CompleteHolding) ([]WeightedHolding, []Warning) {
	total := TotalCapitalization(holdings)
	res := make([]WeightedHolding, len(holdings))
	var warnings []Warning
	for i, h := range holdings {
		w := WeightedHolding{CompleteHolding: h, MarketValue: h.Price.Mul(h.Units)}
		if total.IsZero() {
			w.NonFinite = true
			warnings = append(warnings, nonFinite(h, "total capitalization is zero"))
		} else {
			w.Weight = w.MarketValue.Ratio(total)
			warnings = appendIntensity(&w, warnings)
		}
		res[i] = w
	}
	return res, warnings
}

// BenchmarkWeights uses each holding's IndexWeight as is and computes its WACI.
func BenchmarkWeights(holdings []CompleteHolding) ([]WeightedHolding, []Warning) {
	res := make([]WeightedHolding, len(holdings))
	var warnings []Warning
	for i, h := range holdings {
		w := WeightedHolding{CompleteHolding: h, Weight: h.IndexWeight}
		warnings = appendIntensity(&w, warnings)
		res[i] = w
	}
	return res, warnings
}

// appendIntensity fills w's Intensity and WACI from its Weight.
func appendIntensity(w *WeightedHolding, warnings []Warning) []Warning {
	intensity, ok := Intensity(w.CompleteHolding)
	if !ok {
		w.NonFinite = true
		return append(warnings, nonFinite(w.CompleteHolding, "revenue is zero"))
	}
	w.Intensity = intensity
	w.WACI = w.Weight.Mul(intensity)
	return warnings
}

// Intensity returns the carbon intensity of h in tonnes CO2e per million USD
// of revenue. It returns false when the revenue is zero.
func Intensity(h CompleteHolding) (Quantity, bool) {
	if h.RevenueMillionsUSD.IsZero() {
		return Quantity{}, false
	}
	return h.Emissions().Div(h.RevenueMillionsUSD.Amount()), true
}

func nonFinite(h CompleteHolding, reason string) Warning {
	return Warning{
		Code:    WarnNonFiniteMetric,
		Branch:  h.Kind,
		Ticker:  h.Ticker,
		Message: fmt.Sprintf("row %d: ticker %q has no finite WACI: %s", h.Row, h.Ticker, reason),
	}
}
