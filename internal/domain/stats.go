package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatsOverview is the aggregate the reporting layer reads for a date range.
type StatsOverview struct {
	From             time.Time
	To               time.Time
	TotalIncome      decimal.Decimal
	TotalExpense     decimal.Decimal
	Profit           decimal.Decimal
	TransactionCount int64
}

// PeriodStat is one bucket of the by-period breakdown.
type PeriodStat struct {
	Period  string
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// CategoryStat is one row of the by-category breakdown.
type CategoryStat struct {
	CategoryID   *string
	CategoryName string
	Color        string
	Total        decimal.Decimal
	Count        int64
}
