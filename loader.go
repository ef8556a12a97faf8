package waci

import (
	"fmt"
	"io"
	"os"
)

// Files locates the four input tables on disk.
type Files struct {
	IDMap     string `toml:"idmap"`
	Portfolio string `toml:"portfolio"`
	Benchmark string `toml:"benchmark"`
	Carbon    string `toml:"carbon"`
}

// DefaultFiles are the file names used when nothing else is configured.
var DefaultFiles = Files{
	IDMap:     "IDMap.csv",
	Portfolio: "PortfolioHoldings.csv",
	Benchmark: "BenchmarkHoldings.csv",
	Carbon:    "CarbonData.csv",
}

// LoadTables reads the four tables. Portfolio prices are read in currency.
// Each call returns fresh tables that share nothing with a previous call.
func LoadTables(files Files, currency string) (Tables, error) {
	var t Tables
	var err error
	if t.IDMap, err = decodeFile(files.IDMap, DecodeIDMap); err != nil {
		return Tables{}, err
	}
	if t.Portfolio, err = decodeFile(files.Portfolio, func(r io.Reader) ([]Holding, error) {
		return DecodePortfolio(r, currency)
	}); err != nil {
		return Tables{}, err
	}
	if t.Benchmark, err = decodeFile(files.Benchmark, DecodeBenchmark); err != nil {
		return Tables{}, err
	}
	if t.Emissions, err = decodeFile(files.Carbon, DecodeEmissions); err != nil {
		return Tables{}, err
	}
	return t, nil
}

// decodeFile opens name and decodes it with decode.
func decodeFile[T any](name string, decode func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(name)
	if err != nil {
		return zero, fmt.Errorf("cannot open %q: %w", name, err)
	}
	defer f.Close()

	v, err := decode(f)
	if err != nil {
		return zero, fmt.Errorf("cannot decode %q: %w", name, err)
	}
	return v, nil
}
