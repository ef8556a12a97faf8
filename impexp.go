package waci

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// this file contains the decoders of the four input tables.
// All of them are CSV files with a header row. Column names are matched
// exactly (after trimming spaces) and extra columns are ignored.

// Table names used in error messages.
const (
	TableIDMap     = "IDMap"
	TablePortfolio = "PortfolioHoldings"
	TableBenchmark = "BenchmarkHoldings"
	TableCarbon    = "CarbonData"
)

// Column names of the input tables.
const (
	ColIDTicker = "ticker"
	ColIDSedol  = "sedol"

	ColPortfolioTicker = "Ticker"
	ColUnits           = "Units"
	ColPrice           = "Price"
	ColCategory        = "CategoryGroup"

	ColBenchmarkTicker = "ticker"
	ColIndexWeight     = "IndexWeight"

	ColSedol   = "SEDOL"
	ColScope1  = "EMISSIONS_SCOPE_1"
	ColScope2  = "EMISSIONS_SCOPE_2"
	ColRevenue = "REVENUE_USD"
	ColIssuer  = "ISSUER_NAME"
)

// nullCells are cell values read as "no value".
var nullCells = map[string]bool{"": true, "NA": true, "N/A": true, "NaN": true, "nan": true, "null": true}

// table is a CSV file whose header has been checked.
type table struct {
	name   string
	reader *csv.Reader
	colIdx map[string]int
	row    int // current data row, 1-based
}

// openTable reads the header of r and fails if one of required is missing.
func openTable(name string, r io.Reader, required ...string) (*table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read CSV header: %w", name, err)
	}
	colIdx := make(map[string]int)
	for i, col := range header {
		col = strings.TrimSpace(col)
		if i == 0 {
			col = strings.TrimPrefix(col, "\ufeff")
		}
		if _, dup := colIdx[col]; !dup {
			colIdx[col] = i
		}
	}
	for _, col := range required {
		if _, ok := colIdx[col]; !ok {
			return nil, &MissingColumnError{Table: name, Column: col}
		}
	}
	return &table{name: name, reader: reader, colIdx: colIdx}, nil
}

// next returns the next record, or io.EOF.
func (t *table) next() ([]string, error) {
	record, err := t.reader.Read()
	if err == io.EOF {
		return nil, err
	}
	t.row++
	if err != nil {
		return nil, fmt.Errorf("%s: row %d: failed to read CSV record: %w", t.name, t.row, err)
	}
	return record, nil
}

// cell returns the trimmed value of col in record, "" if the column is absent or the record short.
func (t *table) cell(record []string, col string) string {
	idx, ok := t.colIdx[col]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// nullNumber parses an optional number, null when the cell is empty.
func (t *table) nullNumber(record []string, col string) (decimal.NullDecimal, error) {
	s := t.cell(record, col)
	if nullCells[s] {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("%s: row %d: invalid %s %q: %w", t.name, t.row, col, s, err)
	}
	return decimal.NewNullDecimal(d), nil
}

// missing returns the columns of record holding a null cell, nil if none.
func (t *table) missing(record []string, cols ...string) []string {
	var res []string
	for _, col := range cols {
		if nullCells[t.cell(record, col)] {
			res = append(res, col)
		}
	}
	return res
}

// each calls f on every data record. Row errors are collected so that a
// single run reports every malformed line.
func (t *table) each(f func(record []string) error) error {
	var errs error
	for {
		record, err := t.next()
		if err == io.EOF {
			return errs
		}
		if err != nil {
			return errors.Join(errs, err)
		}
		errs = errors.Join(errs, f(record))
	}
}

// DecodeIDMap reads the identifier mapping table (ticker, sedol).
// A ticker listed twice is an error.
func DecodeIDMap(r io.Reader) (IDMap, error) {
	t, err := openTable(TableIDMap, r, ColIDTicker, ColIDSedol)
	if err != nil {
		return IDMap{}, err
	}
	pairs := make(map[string]string)
	err = t.each(func(record []string) error {
		ticker := t.cell(record, ColIDTicker)
		if ticker == "" {
			return nil
		}
		if _, dup := pairs[ticker]; dup {
			return fmt.Errorf("%s: row %d: duplicate ticker %q", t.name, t.row, ticker)
		}
		pairs[ticker] = t.cell(record, ColIDSedol)
		return nil
	})
	if err != nil {
		return IDMap{}, err
	}
	return NewIDMap(pairs), nil
}

// DecodePortfolio reads the portfolio holdings (Ticker, Units, Price, CategoryGroup).
// Prices are expressed in currency. Empty Units or Price cells are listed in
// Holding.Missing, the row is dropped later by the completeness filter.
func DecodePortfolio(r io.Reader, currency string) ([]Holding, error) {
	t, err := openTable(TablePortfolio, r, ColPortfolioTicker, ColUnits, ColPrice, ColCategory)
	if err != nil {
		return nil, err
	}
	holdings := make([]Holding, 0)
	err = t.each(func(record []string) error {
		units, uerr := t.nullNumber(record, ColUnits)
		price, perr := t.nullNumber(record, ColPrice)
		if err := errors.Join(uerr, perr); err != nil {
			return err
		}
		holdings = append(holdings, Holding{
			Kind:          Portfolio,
			Row:           t.row,
			Ticker:        t.cell(record, ColPortfolioTicker),
			Units:         Q(units.Decimal),
			Price:         M(price.Decimal, currency),
			CategoryGroup: t.cell(record, ColCategory),
			Missing:       t.missing(record, ColUnits, ColPrice),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return holdings, nil
}

// DecodeBenchmark reads the benchmark holdings (ticker, IndexWeight, CategoryGroup).
// An empty IndexWeight is listed in Holding.Missing.
func DecodeBenchmark(r io.Reader) ([]Holding, error) {
	t, err := openTable(TableBenchmark, r, ColBenchmarkTicker, ColIndexWeight, ColCategory)
	if err != nil {
		return nil, err
	}
	holdings := make([]Holding, 0)
	err = t.each(func(record []string) error {
		weight, err := t.nullNumber(record, ColIndexWeight)
		if err != nil {
			return err
		}
		holdings = append(holdings, Holding{
			Kind:          Benchmark,
			Row:           t.row,
			Ticker:        t.cell(record, ColBenchmarkTicker),
			IndexWeight:   Q(weight.Decimal),
			CategoryGroup: t.cell(record, ColCategory),
			Missing:       t.missing(record, ColIndexWeight),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return holdings, nil
}

// DecodeEmissions reads the carbon data (SEDOL, EMISSIONS_SCOPE_1,
// EMISSIONS_SCOPE_2, REVENUE_USD and the optional ISSUER_NAME).
// Empty numeric cells are kept as null values.
func DecodeEmissions(r io.Reader) (Emissions, error) {
	t, err := openTable(TableCarbon, r, ColSedol, ColScope1, ColScope2, ColRevenue)
	if err != nil {
		return Emissions{}, err
	}
	var records []EmissionsRecord
	err = t.each(func(record []string) error {
		sedol := t.cell(record, ColSedol)
		if sedol == "" {
			return nil
		}
		s1, err1 := t.nullNumber(record, ColScope1)
		s2, err2 := t.nullNumber(record, ColScope2)
		rev, err3 := t.nullNumber(record, ColRevenue)
		if err := errors.Join(err1, err2, err3); err != nil {
			return err
		}
		records = append(records, EmissionsRecord{
			Sedol:      sedol,
			IssuerName: t.cell(record, ColIssuer),
			Scope1:     s1,
			Scope2:     s2,
			RevenueUSD: rev,
		})
		return nil
	})
	if err != nil {
		return Emissions{}, err
	}
	return NewEmissions(records), nil
}
