package waci

import "github.com/shopspring/decimal"

// Kind tells which branch a holding belongs to.
type Kind string

const (
	Portfolio Kind = "portfolio"
	Benchmark Kind = "benchmark"
)

// IDMap maps a ticker to its SEDOL. Lookups are exact and case-sensitive.
type IDMap struct {
	sedols map[string]string
}

// NewIDMap returns an identifier map built from ticker→sedol pairs.
func NewIDMap(pairs map[string]string) IDMap {
	m := IDMap{sedols: make(map[string]string, len(pairs))}
	for t, s := range pairs {
		if s == "" {
			continue
		}
		m.sedols[t] = s
	}
	return m
}

// Sedol returns the SEDOL mapped to ticker.
func (m IDMap) Sedol(ticker string) (string, bool) {
	s, ok := m.sedols[ticker]
	return s, ok
}

// Len returns the number of mapped tickers.
func (m IDMap) Len() int { return len(m.sedols) }

// EmissionsRecord is one line of the carbon dataset.
//
// Numeric fields are null when the source cell is empty.
type EmissionsRecord struct {
	Sedol      string
	IssuerName string
	Scope1     decimal.NullDecimal // tonnes CO2e
	Scope2     decimal.NullDecimal // tonnes CO2e
	RevenueUSD decimal.NullDecimal // raw USD
}

// Emissions indexes emission records by SEDOL.
type Emissions struct {
	records    map[string]EmissionsRecord
	duplicates []string
}

// NewEmissions indexes records by SEDOL. When a SEDOL appears more than once
// the first record is kept and the SEDOL is remembered in Duplicates.
func NewEmissions(records []EmissionsRecord) Emissions {
	e := Emissions{records: make(map[string]EmissionsRecord, len(records))}
	for _, r := range records {
		if _, exists := e.records[r.Sedol]; exists {
			e.duplicates = append(e.duplicates, r.Sedol)
			continue
		}
		e.records[r.Sedol] = r
	}
	return e
}

// Lookup returns the emissions record for sedol.
func (e Emissions) Lookup(sedol string) (EmissionsRecord, bool) {
	r, ok := e.records[sedol]
	return r, ok
}

// Duplicates returns the SEDOLs that appeared more than once, in input order.
func (e Emissions) Duplicates() []string { return e.duplicates }

// Len returns the number of distinct SEDOLs.
func (e Emissions) Len() int { return len(e.records) }

// Holding is a row of either holdings table.
//
// Units and Price are only meaningful for the portfolio, IndexWeight only
// for the benchmark.
type Holding struct {
	Kind          Kind
	Row           int // 1-based data row in the source table
	Ticker        string
	Units         Quantity
	Price         Money
	IndexWeight   Quantity
	CategoryGroup string
	Sedol         string // empty until reconciled
	// Missing lists the required numeric columns left empty in the source row.
	Missing []string
}

// Tables groups the four input datasets of a run.
type Tables struct {
	IDMap     IDMap
	Portfolio []Holding
	Benchmark []Holding
	Emissions Emissions
}
