package waci

import (
	"encoding/json"
	"errors"
	"slices"
	"testing"
)

func TestCompute_SingleHoldingScenario(t *testing.T) {
	tables := mustTables(t,
		"ticker,sedol\nA,S1\n",
		"Ticker,Units,Price,CategoryGroup\nA,100,10,Tech\n",
		"ticker,IndexWeight,CategoryGroup\nA,1,Tech\n",
		"SEDOL,EMISSIONS_SCOPE_1,EMISSIONS_SCOPE_2,REVENUE_USD\nS1,1000,500,5000000\n",
	)

	r, err := Compute(tables)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	h := r.Portfolio.Holdings[0]
	if !h.MarketValue.Equal(USD(1000)) || !r.Portfolio.TotalCapitalization.Equal(USD(1000)) {
		t.Errorf("MarketValue = %v, TotalCapitalization = %v, want 1000", h.MarketValue, r.Portfolio.TotalCapitalization)
	}
	if !h.Weight.Equal(Q(1)) {
		t.Errorf("Weight = %v, want 1", h.Weight)
	}
	if !h.RevenueMillionsUSD.Equal(USD(5)) {
		t.Errorf("RevenueMillionsUSD = %v, want 5", h.RevenueMillionsUSD)
	}
	if !r.PortfolioWACI.Equal(Q(300)) {
		t.Errorf("PortfolioWACI = %v, want 300", r.PortfolioWACI)
	}
	if len(r.Categories) != 1 || !r.Categories[0].PortfolioContribution.Equal(100) {
		t.Errorf("Categories = %+v, want Tech at 100%%", r.Categories)
	}
}

func TestCompute_Sample(t *testing.T) {
	r, err := Compute(sampleTables(t))
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	// ZZZ is not mapped, EEE has no carbon data.
	if r.Portfolio.Rows != 4 || r.Portfolio.Dropped != 1 || len(r.Portfolio.Holdings) != 3 {
		t.Errorf("portfolio rows/dropped/kept = %d/%d/%d, want 4/1/3", r.Portfolio.Rows, r.Portfolio.Dropped, len(r.Portfolio.Holdings))
	}
	if r.Benchmark.Rows != 4 || r.Benchmark.Dropped != 1 || len(r.Benchmark.Holdings) != 3 {
		t.Errorf("benchmark rows/dropped/kept = %d/%d/%d, want 4/1/3", r.Benchmark.Rows, r.Benchmark.Dropped, len(r.Benchmark.Holdings))
	}
	for _, h := range r.Portfolio.Holdings {
		if h.Ticker == "ZZZ" {
			t.Errorf("unmapped ticker ZZZ is part of the portfolio")
		}
	}

	if !near(r.PortfolioWACI, 1200) {
		t.Errorf("PortfolioWACI = %v, want 1200", r.PortfolioWACI)
	}
	if !near(r.BenchmarkWACI, 1220) {
		t.Errorf("BenchmarkWACI = %v, want 1220", r.BenchmarkWACI)
	}

	type line struct {
		category   string
		p, b       float64
		pPct, bPct Percent
	}
	want := []line{
		{"Tech", 200, 120, Percent(100 * 200.0 / 1200), Percent(100 * 120.0 / 1220)},
		{"Energy", 1000, 900, Percent(100 * 1000.0 / 1200), Percent(100 * 900.0 / 1220)},
	}
	if len(r.Categories) != len(want) {
		t.Fatalf("Categories = %+v, want %d lines", r.Categories, len(want))
	}
	for i, w := range want {
		c := r.Categories[i]
		if c.Category != w.category || !near(c.PortfolioWACI, w.p) || !near(c.BenchmarkWACI, w.b) ||
			!c.PortfolioContribution.Equal(w.pPct) || !c.BenchmarkContribution.Equal(w.bPct) {
			t.Errorf("Categories[%d] = %+v, want %+v", i, c, w)
		}
	}

	if len(r.BenchmarkOnly) != 1 || r.BenchmarkOnly[0] != "Utilities" {
		t.Errorf("BenchmarkOnly = %v, want [Utilities]", r.BenchmarkOnly)
	}

	codes := make(map[WarningCode]int)
	for _, w := range r.Warnings {
		codes[w.Code]++
	}
	if codes[WarnMissingIdentifierMapping] != 1 || codes[WarnMissingEmissionsData] != 1 || codes[WarnBenchmarkOnlyCategory] != 1 {
		t.Errorf("warnings = %v, want one W1001, one W1002 and one W3001", r.Warnings)
	}
}

func TestCompute_Idempotent(t *testing.T) {
	tables := sampleTables(t)

	r1, err := Compute(tables)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	r2, err := Compute(tables)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	j1, _ := json.Marshal(r1)
	j2, _ := json.Marshal(r2)
	if string(j1) != string(j2) {
		t.Errorf("Compute() is not idempotent:\n%s\n%s", j1, j2)
	}
	for _, h := range tables.Portfolio {
		if h.Sedol != "" {
			t.Errorf("Compute() modified its input: %+v", h)
		}
	}
}

func TestCompute_IncompleteRowsDoNotChangeOthers(t *testing.T) {
	base, err := Compute(sampleTables(t))
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	// one more portfolio row without carbon data, and one more carbon row with no revenue.
	more, err := Compute(mustTables(t,
		sampleIDMap+"FFF,S6\nGGG,S7\n",
		samplePortfolio+"FFF,1000,1000,Tech,NoCarbon\nGGG,1000,1000,Energy,NoRevenue\n",
		sampleBenchmark,
		sampleCarbon+"S7,Gee,10,10,\n",
	))
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	if len(more.Portfolio.Holdings) != len(base.Portfolio.Holdings) {
		t.Fatalf("len(holdings) = %d, want %d", len(more.Portfolio.Holdings), len(base.Portfolio.Holdings))
	}
	for i, h := range base.Portfolio.Holdings {
		m := more.Portfolio.Holdings[i]
		if !m.Weight.Equal(h.Weight) || !m.WACI.Equal(h.WACI) {
			t.Errorf("%s: weight/WACI = %v/%v, want %v/%v", h.Ticker, m.Weight, m.WACI, h.Weight, h.WACI)
		}
	}
	if more.Portfolio.Dropped != base.Portfolio.Dropped+2 {
		t.Errorf("Dropped = %d, want %d", more.Portfolio.Dropped, base.Portfolio.Dropped+2)
	}
}

func TestCompute_NullHoldingCellsDoNotChangeOthers(t *testing.T) {
	base, err := Compute(sampleTables(t))
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	more, err := Compute(mustTables(t,
		sampleIDMap+"QQQ,S1\n",
		samplePortfolio+"QQQ,,10,Tech,NullUnits\n",
		sampleBenchmark+"QQQ,,Tech\n",
		sampleCarbon,
	))
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	for _, branch := range []struct {
		name       string
		base, more Branch
	}{
		{"portfolio", base.Portfolio, more.Portfolio},
		{"benchmark", base.Benchmark, more.Benchmark},
	} {
		if len(branch.more.Holdings) != len(branch.base.Holdings) {
			t.Fatalf("%s: len(holdings) = %d, want %d", branch.name, len(branch.more.Holdings), len(branch.base.Holdings))
		}
		for i, h := range branch.base.Holdings {
			m := branch.more.Holdings[i]
			if !m.Weight.Equal(h.Weight) || !m.WACI.Equal(h.WACI) {
				t.Errorf("%s %s: weight/WACI = %v/%v, want %v/%v", branch.name, h.Ticker, m.Weight, m.WACI, h.Weight, h.WACI)
			}
		}
		if branch.more.Dropped != branch.base.Dropped+1 {
			t.Errorf("%s: Dropped = %d, want %d", branch.name, branch.more.Dropped, branch.base.Dropped+1)
		}
	}
	if !more.PortfolioWACI.Equal(base.PortfolioWACI) || !more.BenchmarkWACI.Equal(base.BenchmarkWACI) {
		t.Errorf("WACI = %v/%v, want %v/%v", more.PortfolioWACI, more.BenchmarkWACI, base.PortfolioWACI, base.BenchmarkWACI)
	}

	var incomplete int
	for _, w := range more.Warnings {
		if w.Code == WarnIncompleteHolding && w.Ticker == "QQQ" {
			incomplete++
		}
	}
	if incomplete != 2 {
		t.Errorf("warnings = %v, want two W1005 for QQQ", more.Warnings)
	}
}

func TestCompute_NonFiniteIsCounted(t *testing.T) {
	r, err := Compute(mustTables(t,
		"ticker,sedol\nA,S1\nB,S2\n",
		"Ticker,Units,Price,CategoryGroup\nA,10,10,Tech\nB,10,10,Tech\n",
		"ticker,IndexWeight,CategoryGroup\nA,1,Tech\n",
		"SEDOL,EMISSIONS_SCOPE_1,EMISSIONS_SCOPE_2,REVENUE_USD\nS1,100,100,2000000\nS2,5,5,0\n",
	))
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if r.Portfolio.NonFinite != 1 {
		t.Errorf("NonFinite = %d, want 1", r.Portfolio.NonFinite)
	}
	// A: weight 0.5 × 200/2
	if !r.PortfolioWACI.Equal(Q(50)) {
		t.Errorf("PortfolioWACI = %v, want 50", r.PortfolioWACI)
	}
}

func TestCompute_EmptyResultSet(t *testing.T) {
	_, err := Compute(mustTables(t,
		"ticker,sedol\nA,S1\n",
		"Ticker,Units,Price,CategoryGroup\nX,10,10,Tech\n",
		"ticker,IndexWeight,CategoryGroup\nA,1,Tech\n",
		"SEDOL,EMISSIONS_SCOPE_1,EMISSIONS_SCOPE_2,REVENUE_USD\nS1,100,100,2000000\n",
	))
	if !errors.Is(err, ErrEmptyResultSet) {
		t.Errorf("Compute() error = %v, want %v", err, ErrEmptyResultSet)
	}
}

func TestCheck_EmptyBranchKeepsCoverage(t *testing.T) {
	r, err := Check(mustTables(t,
		"ticker,sedol\nA,S1\n",
		"Ticker,Units,Price,CategoryGroup\nX,10,10,Tech\nA,,10,Tech\n",
		"ticker,IndexWeight,CategoryGroup\nA,1,Tech\n",
		"SEDOL,EMISSIONS_SCOPE_1,EMISSIONS_SCOPE_2,REVENUE_USD\nS1,100,100,2000000\n",
	))
	if !errors.Is(err, ErrEmptyResultSet) {
		t.Fatalf("Check() error = %v, want %v", err, ErrEmptyResultSet)
	}
	if r == nil {
		t.Fatal("Check() report = nil, want the coverage of both branches")
	}
	if r.Portfolio.Rows != 2 || r.Portfolio.Dropped != 2 || len(r.Portfolio.Holdings) != 0 {
		t.Errorf("portfolio rows/dropped/kept = %d/%d/%d, want 2/2/0", r.Portfolio.Rows, r.Portfolio.Dropped, len(r.Portfolio.Holdings))
	}
	if r.Benchmark.Rows != 1 || len(r.Benchmark.Holdings) != 1 {
		t.Errorf("benchmark rows/kept = %d/%d, want 1/1", r.Benchmark.Rows, len(r.Benchmark.Holdings))
	}
	var codes []WarningCode
	for _, w := range r.Warnings {
		codes = append(codes, w.Code)
	}
	if want := []WarningCode{WarnMissingIdentifierMapping, WarnIncompleteHolding}; !slices.Equal(codes, want) {
		t.Errorf("warning codes = %v, want %v", codes, want)
	}
}

func TestCheck_Sample(t *testing.T) {
	tables := sampleTables(t)
	want, err := Compute(tables)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	got, err := Check(tables)
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	j1, _ := json.Marshal(want)
	j2, _ := json.Marshal(got)
	if string(j1) != string(j2) {
		t.Errorf("Check() = %s, want %s", j2, j1)
	}
}
