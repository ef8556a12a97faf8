package waci

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestDecodeIDMap(t *testing.T) {
	ids, err := DecodeIDMap(strings.NewReader("\ufeffticker,sedol\nAAA,S1\nBBB,\n"))
	if err != nil {
		t.Fatalf("DecodeIDMap() error = %v", err)
	}
	if got, ok := ids.Sedol("AAA"); !ok || got != "S1" {
		t.Errorf("Sedol(AAA) = %q, %v, want S1, true", got, ok)
	}
	if _, ok := ids.Sedol("BBB"); ok {
		t.Errorf("Sedol(BBB) found, want an empty sedol to mean no mapping")
	}
	if ids.Len() != 1 {
		t.Errorf("Len() = %d, want 1", ids.Len())
	}
}

func TestDecodeIDMap_DuplicateTicker(t *testing.T) {
	_, err := DecodeIDMap(strings.NewReader("ticker,sedol\nAAA,S1\nAAA,S2\n"))
	if err == nil {
		t.Fatal("expected error for duplicate ticker")
	}
	if !strings.Contains(err.Error(), "row 2") {
		t.Errorf("expected error to mention row number, got: %s", err.Error())
	}
}

func TestDecode_MissingColumn(t *testing.T) {
	tests := []struct {
		name   string
		decode func() error
		table  string
		column string
	}{
		{
			name: "idmap",
			decode: func() error {
				_, err := DecodeIDMap(strings.NewReader("ticker,isin\nAAA,X\n"))
				return err
			},
			table: TableIDMap, column: ColIDSedol,
		},
		{
			name: "portfolio lower case ticker",
			decode: func() error {
				_, err := DecodePortfolio(strings.NewReader("ticker,Units,Price,CategoryGroup\n"), "USD")
				return err
			},
			table: TablePortfolio, column: ColPortfolioTicker,
		},
		{
			name: "benchmark",
			decode: func() error {
				_, err := DecodeBenchmark(strings.NewReader("ticker,CategoryGroup\nAAA,Tech\n"))
				return err
			},
			table: TableBenchmark, column: ColIndexWeight,
		},
		{
			name: "carbon",
			decode: func() error {
				_, err := DecodeEmissions(strings.NewReader("SEDOL,EMISSIONS_SCOPE_1,EMISSIONS_SCOPE_2\nS1,1,2\n"))
				return err
			},
			table: TableCarbon, column: ColRevenue,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.decode()
			var mc *MissingColumnError
			if !errors.As(err, &mc) {
				t.Fatalf("error = %v, want a *MissingColumnError", err)
			}
			if mc.Table != tt.table || mc.Column != tt.column {
				t.Errorf("MissingColumnError = {%s %s}, want {%s %s}", mc.Table, mc.Column, tt.table, tt.column)
			}
		})
	}
}

func TestDecodePortfolio(t *testing.T) {
	holdings, err := DecodePortfolio(strings.NewReader(samplePortfolio), "USD")
	if err != nil {
		t.Fatalf("DecodePortfolio() error = %v", err)
	}
	if len(holdings) != 4 {
		t.Fatalf("len(holdings) = %d, want 4", len(holdings))
	}
	h := holdings[1]
	if h.Kind != Portfolio || h.Row != 2 || h.Ticker != "BBB" || h.CategoryGroup != "Energy" {
		t.Errorf("unexpected holding: %+v", h)
	}
	if !h.Units.Equal(Q(50)) {
		t.Errorf("Units = %v, want 50", h.Units)
	}
	if !h.Price.Equal(USD(20)) {
		t.Errorf("Price = %v, want %v", h.Price, USD(20))
	}
}

func TestDecodePortfolio_InvalidNumbers(t *testing.T) {
	csv := "Ticker,Units,Price,CategoryGroup\nAAA,abc,10,Tech\nBBB,1,,Tech\nCCC,2,x,Tech\n"
	_, err := DecodePortfolio(strings.NewReader(csv), "USD")
	if err == nil {
		t.Fatal("expected error for invalid numbers")
	}
	for _, want := range []string{"row 1: invalid Units", "row 3: invalid Price"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected error to contain %q, got: %s", want, err.Error())
		}
	}
	if strings.Contains(err.Error(), "row 2") {
		t.Errorf("an empty cell is not a decode error, got: %s", err.Error())
	}
}

func TestDecode_NullHoldingCells(t *testing.T) {
	portfolio, err := DecodePortfolio(strings.NewReader(samplePortfolio+"QQQ,,10,Tech,NullUnits\nRRR,NA,,Tech,NullBoth\n"), "USD")
	if err != nil {
		t.Fatalf("DecodePortfolio() error = %v", err)
	}
	if len(portfolio) != 6 {
		t.Fatalf("len(holdings) = %d, want 6", len(portfolio))
	}
	if got := portfolio[0].Missing; got != nil {
		t.Errorf("Missing = %v, want nil", got)
	}
	if got := portfolio[4].Missing; !slices.Equal(got, []string{ColUnits}) {
		t.Errorf("Missing = %v, want [%s]", got, ColUnits)
	}
	if got := portfolio[5].Missing; !slices.Equal(got, []string{ColUnits, ColPrice}) {
		t.Errorf("Missing = %v, want [%s %s]", got, ColUnits, ColPrice)
	}

	benchmark, err := DecodeBenchmark(strings.NewReader(sampleBenchmark + "QQQ,,Tech\n"))
	if err != nil {
		t.Fatalf("DecodeBenchmark() error = %v", err)
	}
	if got := benchmark[4].Missing; !slices.Equal(got, []string{ColIndexWeight}) {
		t.Errorf("Missing = %v, want [%s]", got, ColIndexWeight)
	}
}

func TestDecodeBenchmark(t *testing.T) {
	holdings, err := DecodeBenchmark(strings.NewReader(sampleBenchmark))
	if err != nil {
		t.Fatalf("DecodeBenchmark() error = %v", err)
	}
	if len(holdings) != 4 {
		t.Fatalf("len(holdings) = %d, want 4", len(holdings))
	}
	if got := holdings[2]; got.Kind != Benchmark || got.Ticker != "DDD" || !got.IndexWeight.Equal(Q(0.2)) {
		t.Errorf("unexpected holding: %+v", got)
	}
}

func TestDecodeEmissions(t *testing.T) {
	csv := `SEDOL,EMISSIONS_SCOPE_1,EMISSIONS_SCOPE_2,REVENUE_USD
S1,10,20,1000000
S2,,20,1000000
S3,10,NaN,
S1,99,99,99
`
	em, err := DecodeEmissions(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("DecodeEmissions() error = %v", err)
	}
	if em.Len() != 3 {
		t.Errorf("Len() = %d, want 3", em.Len())
	}
	r, ok := em.Lookup("S1")
	if !ok || !r.Scope1.Valid || r.Scope1.Decimal.IntPart() != 10 {
		t.Errorf("Lookup(S1) = %+v, want the first record", r)
	}
	if r, _ := em.Lookup("S2"); r.Scope1.Valid {
		t.Errorf("S2 scope 1 is valid, want null")
	}
	if r, _ := em.Lookup("S3"); r.Scope2.Valid || r.RevenueUSD.Valid {
		t.Errorf("S3 = %+v, want null scope 2 and revenue", r)
	}
	if got := em.Duplicates(); len(got) != 1 || got[0] != "S1" {
		t.Errorf("Duplicates() = %v, want [S1]", got)
	}
}

func TestDecodeEmissions_InvalidNumber(t *testing.T) {
	_, err := DecodeEmissions(strings.NewReader("SEDOL,EMISSIONS_SCOPE_1,EMISSIONS_SCOPE_2,REVENUE_USD\nS1,ten,1,1\n"))
	if err == nil {
		t.Fatal("expected error for invalid number")
	}
	if !strings.Contains(err.Error(), "EMISSIONS_SCOPE_1") {
		t.Errorf("expected error to mention the column, got: %s", err.Error())
	}
}
