// Package waci computes the Weighted Average Carbon Intensity (WACI) of a
// portfolio and of its benchmark index.
//
// A run reads four tables:
//   - an identifier map from tickers to SEDOL codes,
//   - the portfolio holdings (units and price per ticker),
//   - the benchmark holdings (index weight per ticker),
//   - the carbon data (scope 1 and 2 emissions and revenue per SEDOL).
//
// The pipeline is a pure function of these tables (see [Compute]):
//   - Reconciliation: holdings get the SEDOL their ticker maps to.
//   - Join: holdings get the emissions and revenue of their SEDOL, rows with
//     missing data are dropped and reported as warnings.
//   - Metrics: each holding gets a weight (market value share for the
//     portfolio, index weight for the benchmark) and a WACI contribution
//     weight × (scope1 + scope2) / revenue in million USD.
//   - Aggregation: contributions are summed per category group.
//
// This package serves as the foundational logic for the `waci` command-line
// tool.
package waci
