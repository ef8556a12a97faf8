package waci

import "github.com/shopspring/decimal"

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// Quantity is an exact, currency-less number: units, emissions, weights and
// carbon intensities.
type Quantity struct {
	value decimal.Decimal
}

func Q[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Quantity {
	return Quantity{value: newDecimal(value)}
}

func (q Quantity) Equal(p Quantity) bool   { return q.value.Equal(p.value) }
func (q Quantity) Add(p Quantity) Quantity { return Quantity{value: q.value.Add(p.value)} }
func (q Quantity) Sub(p Quantity) Quantity { return Quantity{value: q.value.Sub(p.value)} }
func (q Quantity) Mul(p Quantity) Quantity { return Quantity{value: q.value.Mul(p.value)} }
func (q Quantity) IsZero() bool            { return q.value.IsZero() }
func (q Quantity) String() string          { return q.value.String() }
func (q Quantity) Cmp(p Quantity) int      { return q.value.Cmp(p.value) }

// Div divides q by p. Division by zero panics, callers must check p.IsZero() first.
func (q Quantity) Div(p Quantity) Quantity { return Quantity{value: q.value.Div(p.value)} }

// Float64 returns the closest float64, for charts and tolerance checks only.
func (q Quantity) Float64() float64 { return q.value.InexactFloat64() }

// Fixed returns q rounded to two decimals, the precision used in reports.
func (q Quantity) Fixed() string { return q.value.StringFixed(2) }

// MarshalJSON implements the json.Marshaler interface.
func (q Quantity) MarshalJSON() ([]byte, error) {
	return q.value.MarshalJSON()
}

// SumQuantities returns the sum of all quantities.
func SumQuantities(qs ...Quantity) Quantity {
	var sum Quantity
	for _, q := range qs {
		sum = sum.Add(q)
	}
	return sum
}
