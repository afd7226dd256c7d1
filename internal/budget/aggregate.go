// Package budget computes spend-versus-budget totals.
package budget

import (
	"math"

	"weddash/internal/models"
)

// Aggregate sums budget and spend across items. Remaining is negative when
// the couple is over budget; ProgressPercent is 0 when nothing is budgeted.
// Totals that are not finite fall back to all-zero stats.
func Aggregate(items []models.BudgetItem) models.BudgetStats {
	var stats models.BudgetStats
	for _, item := range items {
		budgeted, _ := CoerceNonNegative(item.Budget)
		spent, _ := CoerceNonNegative(item.Spent)
		stats.TotalBudgeted += budgeted
		stats.TotalSpent += spent
	}
	if !finite(stats.TotalBudgeted) || !finite(stats.TotalSpent) {
		return models.BudgetStats{}
	}

	stats.Remaining = stats.TotalBudgeted - stats.TotalSpent
	if stats.TotalBudgeted > 0 {
		stats.ProgressPercent = stats.TotalSpent / stats.TotalBudgeted * 100
	}
	return stats
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
