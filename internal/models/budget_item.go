package models

// BudgetItem is one category line of a couple's budget.
// Spent may exceed Budget; that is a valid over-budget state.
type BudgetItem struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Budget float64 `json:"budget"`
	Spent  float64 `json:"spent"`
	Notes  string  `json:"notes,omitempty"`
}

// BudgetStats summarises spend against budget.
type BudgetStats struct {
	TotalBudgeted   float64 `json:"total_budgeted"`
	TotalSpent      float64 `json:"total_spent"`
	Remaining       float64 `json:"remaining"`
	ProgressPercent float64 `json:"progress_percent"`
}
