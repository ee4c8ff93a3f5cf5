package checkout

import (
	"github.com/shopspring/decimal"

	"cempagamez/internal/domain"
)

// Sum adds prices as decimals so "RM 18.00" never renders as 17.999.
func Sum(items []domain.Game) decimal.Decimal {
	total := decimal.Zero
	for _, g := range items {
		total = total.Add(decimal.NewFromFloat(g.Price))
	}
	return total
}

// RM formats an amount with exactly two decimals, without the currency prefix.
func RM(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
