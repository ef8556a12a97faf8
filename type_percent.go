package waci

import "fmt"

// Percent is a share expressed in percent (50 means half).
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", float64(p))
	if res == "+0.00%" {
		return "-"
	}
	return res
}

// share returns part/total*100, or 0 when total is exactly zero.
func share(part, total Quantity) Percent {
	if total.IsZero() {
		return 0
	}
	return Percent(part.Div(total).Mul(Q(100)).Float64())
}
