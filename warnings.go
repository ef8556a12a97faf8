package waci

import (
	"errors"
	"fmt"
)

// WarningCode categorizes warnings by stage.
// W1xxx = join, W2xxx = metrics, W3xxx = aggregation.
type WarningCode string

const (
	WarnMissingIdentifierMapping WarningCode = "W1001" // ticker not in the identifier map (row dropped)
	WarnMissingEmissionsData     WarningCode = "W1002" // sedol not in the carbon data (row dropped)
	WarnIncompleteEmissionsData  WarningCode = "W1003" // carbon row has an empty required value (row dropped)
	WarnDuplicateEmissions       WarningCode = "W1004" // sedol listed twice in the carbon data, first kept
	WarnIncompleteHolding        WarningCode = "W1005" // holdings row has an empty Units, Price or IndexWeight (row dropped)
	WarnNonFiniteMetric          WarningCode = "W2001" // zero denominator, WACI excluded from totals
	WarnBenchmarkOnlyCategory    WarningCode = "W3001" // benchmark category never shown in the breakdown
)

// Warning is a non-fatal data quality issue found while computing a report.
type Warning struct {
	Code    WarningCode `json:"code"`
	Branch  Kind        `json:"branch,omitempty"`
	Ticker  string      `json:"ticker,omitempty"`
	Message string      `json:"message"`
}

func (w Warning) String() string {
	if w.Branch == "" {
		return fmt.Sprintf("%s: %s", w.Code, w.Message)
	}
	return fmt.Sprintf("%s [%s]: %s", w.Code, w.Branch, w.Message)
}

// ErrEmptyResultSet is returned when every row of a branch was dropped by the
// completeness filter: no WACI can be computed.
var ErrEmptyResultSet = errors.New("no complete holding left after filtering")

// MissingColumnError reports a required column absent from a table header.
type MissingColumnError struct {
	Table  string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: missing required column %q", e.Table, e.Column)
}
