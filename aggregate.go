package waci

// CategoryBreakdown is one line of the category table.
type CategoryBreakdown struct {
	Category              string   `json:"category"`
	PortfolioWACI         Quantity `json:"portfolioWACI"`
	PortfolioContribution Percent  `json:"portfolioContribution"`
	BenchmarkWACI         Quantity `json:"benchmarkWACI"`
	BenchmarkContribution Percent  `json:"benchmarkContribution"`
}

// Breakdown is the aggregated result of both branches.
type Breakdown struct {
	PortfolioWACI Quantity            `json:"portfolioWACI"`
	BenchmarkWACI Quantity            `json:"benchmarkWACI"`
	Categories    []CategoryBreakdown `json:"categories"`
	// BenchmarkOnly lists benchmark categories absent from the portfolio.
	// They are not part of Categories.
	BenchmarkOnly []string `json:"benchmarkOnly,omitempty"`
}

// Grouping is the WACI summed per category, in first-seen order.
type Grouping struct {
	order []string
	sums  map[string]Quantity
}

// GroupByCategory sums the WACI of holdings per CategoryGroup. Non-finite
// holdings still register their category but add nothing to it.
func GroupByCategory(holdings []WeightedHolding) Grouping {
	g := Grouping{sums: make(map[string]Quantity)}
	for _, h := range holdings {
		sum, seen := g.sums[h.CategoryGroup]
		if !seen {
			g.order = append(g.order, h.CategoryGroup)
		}
		if !h.NonFinite {
			sum = sum.Add(h.WACI)
		}
		g.sums[h.CategoryGroup] = sum
	}
	return g
}

// Categories returns the categories in first-seen order.
func (g Grouping) Categories() []string { return g.order }

// Sum returns the WACI of category, zero if the category is absent.
func (g Grouping) Sum(category string) Quantity { return g.sums[category] }

// Has reports whether category is part of the grouping.
func (g Grouping) Has(category string) bool {
	_, ok := g.sums[category]
	return ok
}

// Total returns the sum over all categories.
func (g Grouping) Total() Quantity {
	sums := make([]Quantity, len(g.order))
	for i, c := range g.order {
		sums[i] = g.sums[c]
	}
	return SumQuantities(sums...)
}

// Aggregate groups both branches by category. The table follows the
// portfolio categories: benchmark-only categories are reported in
// BenchmarkOnly and never in Categories.
func Aggregate(portfolio, benchmark []WeightedHolding) Breakdown {
	pg := GroupByCategory(portfolio)
	bg := GroupByCategory(benchmark)

	b := Breakdown{
		PortfolioWACI: pg.Total(),
		BenchmarkWACI: bg.Total(),
		Categories:    make([]CategoryBreakdown, 0, len(pg.order)),
	}
	for _, c := range pg.Categories() {
		pv, bv := pg.Sum(c), bg.Sum(c)
		b.Categories = append(b.Categories, CategoryBreakdown{
			Category:              c,
			PortfolioWACI:         pv,
			PortfolioContribution: share(pv, b.PortfolioWACI),
			BenchmarkWACI:         bv,
			BenchmarkContribution: share(bv, b.BenchmarkWACI),
		})
	}
	for _, c := range bg.Categories() {
		if !pg.Has(c) {
			b.BenchmarkOnly = append(b.BenchmarkOnly, c)
		}
	}
	return b
}
