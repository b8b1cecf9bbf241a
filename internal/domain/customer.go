package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a storefront buyer keyed by phone number. Settlement keeps the
// order aggregates current; the rest of the CRM lives outside this service.
type Customer struct {
	ID          string
	Phone       string
	Name        string
	TotalOrders int
	TotalSpent  decimal.Decimal
	LastOrderAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
