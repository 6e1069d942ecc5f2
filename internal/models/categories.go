package models

// Recommended category labels. Advisory only: storage accepts any string and
// matches categories by exact equality, so two differently-cased labels are
// distinct categories.
var (
	IncomeCategories = []string{
		"Salary",
		"Freelance",
		"Business",
		"Gift",
		"Scholarship",
		"Bonus",
		"Investment Returns",
		"Other Income",
	}

	ExpenseCategories = []string{
		"Food & Dining",
		"Transportation",
		"Shopping",
		"Entertainment",
		"Bills & Utilities",
		"Healthcare",
		"Education",
		"Travel",
		"Home",
		"Personal Care",
		"Insurance",
		"Taxes",
		"Investment",
		"Electronics & Gadgets",
		"Other Expense",
	}
)
