package model

// CategoryType splits categories into the two sides of a budget.
type CategoryType string

const (
	CategoryIncome  CategoryType = "income"
	CategoryExpense CategoryType = "expense"
)

// Category labels transactions for filtering and aggregation. Categories have
// no balance linkage; deleting one leaves referencing transactions untouched.
type Category struct {
	ID   string       `json:"id"`
	Name string       `json:"name"`
	Type CategoryType `json:"type"`
	Icon string       `json:"icon,omitempty"`
}
