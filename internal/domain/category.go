package domain

import "time"

// TransactionType is the direction of a money movement. Categories carry the
// same type so that an expense category can never label an income posting.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// ValidTransactionType reports whether t is a known transaction type.
func ValidTransactionType(t TransactionType) bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// DefaultCategoryColor is used when a category is created without a color.
const DefaultCategoryColor = "#6B7280"

// Category labels a transaction as a specific kind of income or expense.
// System categories are created by seeding and cannot be deleted.
type Category struct {
	ID          string
	Name        string
	Type        TransactionType
	Color       string
	Icon        string
	Description string
	IsSystem    bool
	IsActive    bool
	SortOrder   int
	CreatedAt   time.Time
}

// Category names the rest of the system depends on. Settlement posts revenue
// under the sales category; transfers use the generic income/expense pair.
const (
	CategorySales        = "Продажи"
	CategoryOtherIncome  = "Прочие доходы"
	CategoryOtherExpense = "Прочие расходы"
)

// DefaultCategories returns the seed set for a fresh installation. Seeding is
// keyed by (name, type), so repeated runs never duplicate rows.
func DefaultCategories() []Category {
	return []Category{
		{Name: CategorySales, Type: TransactionTypeIncome, Color: "#10B981", Icon: "shopping-cart", IsSystem: true, SortOrder: 1},
		{Name: "Услуги", Type: TransactionTypeIncome, Color: "#3B82F6", Icon: "wrench", SortOrder: 2},
		{Name: CategoryOtherIncome, Type: TransactionTypeIncome, Color: "#8B5CF6", Icon: "plus-circle", IsSystem: true, SortOrder: 3},
		{Name: "Материалы", Type: TransactionTypeExpense, Color: "#F59E0B", Icon: "package", SortOrder: 1},
		{Name: "Зарплата", Type: TransactionTypeExpense, Color: "#EF4444", Icon: "users", SortOrder: 2},
		{Name: "Аренда", Type: TransactionTypeExpense, Color: "#6366F1", Icon: "home", SortOrder: 3},
		{Name: "Коммунальные услуги", Type: TransactionTypeExpense, Color: "#14B8A6", Icon: "zap", SortOrder: 4},
		{Name: "Транспорт", Type: TransactionTypeExpense, Color: "#F97316", Icon: "truck", SortOrder: 5},
		{Name: "Налоги", Type: TransactionTypeExpense, Color: "#64748B", Icon: "file-text", SortOrder: 6},
		{Name: CategoryOtherExpense, Type: TransactionTypeExpense, Color: "#9CA3AF", Icon: "minus-circle", IsSystem: true, SortOrder: 7},
	}
}
