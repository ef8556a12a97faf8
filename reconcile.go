package waci

// Reconcile returns a copy of holdings where each row carries the SEDOL its
// ticker maps to. Rows whose ticker is not in ids keep an empty Sedol; they
// are dropped later by FilterComplete.
func Reconcile(holdings []Holding, ids IDMap) []Holding {
	res := make([]Holding, len(holdings))
	for i, h := range holdings {
		h.Sedol, _ = ids.Sedol(h.Ticker)
		res[i] = h
	}
	return res
}
