package waci

import (
	"math"
	"strings"
	"testing"
)

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// near reports whether q is within 1e-9 of want.
func near(q Quantity, want float64) bool {
	return math.Abs(q.Float64()-want) < 1e-9
}

// mustTables decodes the four tables from inline CSV.
func mustTables(t *testing.T, idmap, portfolio, benchmark, carbon string) Tables {
	t.Helper()
	ids, err := DecodeIDMap(strings.NewReader(idmap))
	if err != nil {
		t.Fatalf("DecodeIDMap() error = %v", err)
	}
	p, err := DecodePortfolio(strings.NewReader(portfolio), "USD")
	if err != nil {
		t.Fatalf("DecodePortfolio() error = %v", err)
	}
	b, err := DecodeBenchmark(strings.NewReader(benchmark))
	if err != nil {
		t.Fatalf("DecodeBenchmark() error = %v", err)
	}
	em, err := DecodeEmissions(strings.NewReader(carbon))
	if err != nil {
		t.Fatalf("DecodeEmissions() error = %v", err)
	}
	return Tables{IDMap: ids, Portfolio: p, Benchmark: b, Emissions: em}
}

// a small but complete data set used by several tests.
const (
	sampleIDMap = `ticker,sedol
AAA,S1
BBB,S2
CCC,S3
DDD,S4
EEE,S5
`
	samplePortfolio = `Ticker,Units,Price,CategoryGroup,Name
AAA,100,10,Tech,Alpha
BBB,50,20,Energy,Beta
CCC,10,100,Tech,Gamma
ZZZ,10,10,Tech,Unmapped
`
	sampleBenchmark = `ticker,IndexWeight,CategoryGroup
AAA,0.4,Tech
BBB,0.3,Energy
DDD,0.2,Utilities
EEE,0.1,Energy
`
	sampleCarbon = `SEDOL,ISSUER_NAME,EMISSIONS_SCOPE_1,EMISSIONS_SCOPE_2,REVENUE_USD
S1,Alpha Inc,1000,500,5000000
S2,Beta Corp,20000,1000,7000000
S3,Gamma Ltd,300,300,2000000
S4,Delta Power,9000,1000,10000000
`
)

func sampleTables(t *testing.T) Tables {
	t.Helper()
	return mustTables(t, sampleIDMap, samplePortfolio, sampleBenchmark, sampleCarbon)
}

// complete builds a complete holding for metric tests.
func complete(kind Kind, ticker, category string, units, price, indexWeight, scope1, scope2, revenueMillions float64) CompleteHolding {
	return CompleteHolding{
		Holding: Holding{
			Kind:          kind,
			Ticker:        ticker,
			Units:         Q(units),
			Price:         USD(price),
			IndexWeight:   Q(indexWeight),
			CategoryGroup: category,
			Sedol:         "S-" + ticker,
		},
		Scope1:             Q(scope1),
		Scope2:             Q(scope2),
		RevenueMillionsUSD: USD(revenueMillions),
	}
}
