package waci

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// revenueUnit converts raw USD revenue into million USD.
const revenueUnit = 1_000_000

// JoinedHolding is a reconciled holding left-joined with the carbon data.
// Emission fields stay null when nothing matched.
type JoinedHolding struct {
	Holding
	IssuerName string
	Scope1     decimal.NullDecimal
	Scope2     decimal.NullDecimal
	RevenueUSD decimal.NullDecimal

	matched bool // an emissions record was found for Sedol
}

// Complete reports whether the holding can take part in the WACI computation.
func (j JoinedHolding) Complete() bool {
	return len(j.Missing) == 0 && j.Sedol != "" && j.Scope1.Valid && j.Scope2.Valid && j.RevenueUSD.Valid
}

// CompleteHolding is a holding with all the data required by the WACI formula.
type CompleteHolding struct {
	Holding
	IssuerName         string
	Scope1             Quantity
	Scope2             Quantity
	RevenueMillionsUSD Money
}

// Emissions returns scope 1 plus scope 2 emissions.
func (c CompleteHolding) Emissions() Quantity { return c.Scope1.Add(c.Scope2) }

// JoinEmissions left-joins reconciled holdings with the carbon data on SEDOL.
func JoinEmissions(holdings []Holding, em Emissions) []JoinedHolding {
	res := make([]JoinedHolding, len(holdings))
	for i, h := range holdings {
		j := JoinedHolding{Holding: h}
		if h.Sedol != "" {
			if r, ok := em.Lookup(h.Sedol); ok {
				j.matched = true
				j.IssuerName = r.IssuerName
				j.Scope1 = r.Scope1
				j.Scope2 = r.Scope2
				j.RevenueUSD = r.RevenueUSD
			}
		}
		res[i] = j
	}
	return res
}

// FilterComplete removes every incomplete row and converts the revenue of the
// survivors to million USD. Each removed row yields one warning explaining why.
func FilterComplete(joined []JoinedHolding) ([]CompleteHolding, []Warning) {
	var (
		complete []CompleteHolding
		warnings []Warning
	)
	for _, j := range joined {
		if !j.Complete() {
			warnings = append(warnings, dropWarning(j))
			continue
		}
		complete = append(complete, CompleteHolding{
			Holding:            j.Holding,
			IssuerName:         j.IssuerName,
			Scope1:             Q(j.Scope1.Decimal),
			Scope2:             Q(j.Scope2.Decimal),
			RevenueMillionsUSD: M(j.RevenueUSD.Decimal, "USD").Scale(revenueUnit),
		})
	}
	return complete, warnings
}

// dropWarning tells why j did not pass the completeness filter.
func dropWarning(j JoinedHolding) Warning {
	w := Warning{Branch: j.Kind, Ticker: j.Ticker}
	switch {
	case len(j.Missing) > 0:
		w.Code = WarnIncompleteHolding
		w.Message = fmt.Sprintf("row %d: ticker %q lacks %v", j.Row, j.Ticker, j.Missing)
	case j.Sedol == "":
		w.Code = WarnMissingIdentifierMapping
		w.Message = fmt.Sprintf("row %d: ticker %q has no identifier mapping", j.Row, j.Ticker)
	case !j.matched:
		w.Code = WarnMissingEmissionsData
		w.Message = fmt.Sprintf("row %d: ticker %q (sedol %q) has no carbon data", j.Row, j.Ticker, j.Sedol)
	default:
		var missing []string
		if !j.Scope1.Valid {
			missing = append(missing, ColScope1)
		}
		if !j.Scope2.Valid {
			missing = append(missing, ColScope2)
		}
		if !j.RevenueUSD.Valid {
			missing = append(missing, ColRevenue)
		}
		w.Code = WarnIncompleteEmissionsData
		w.Message = fmt.Sprintf("row %d: ticker %q (sedol %q) lacks %v", j.Row, j.Ticker, j.Sedol, missing)
	}
	return w
}
