package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how the money changed hands.
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodOther    PaymentMethod = "other"
)

// ValidPaymentMethod reports whether m is a known payment method.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer, PaymentMethodOther:
		return true
	}
	return false
}

// Transaction records a single money movement. Amount is always positive;
// direction comes from Type. CategoryID and AccountID are weak references:
// a category can disappear without cascading, and an account-less transaction
// (CSV import) never touches any balance.
type Transaction struct {
	ID            string
	Type          TransactionType
	CategoryID    *string
	AccountID     *string
	Amount        decimal.Decimal
	Description   string
	OrderID       *string
	CustomerID    *string
	Date          time.Time
	PaymentMethod PaymentMethod
	IsAutomatic   bool
	Metadata      map[string]any
	CreatedAt     time.Time
}

// SignedAmount returns the balance delta this transaction applies to its
// account: positive for income, negative for expense.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionTypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Validate checks the invariants every transaction must satisfy before it is
// written.
func (t *Transaction) Validate() error {
	if !ValidTransactionType(t.Type) {
		return ErrInvalidTransactionType
	}
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if !ValidPaymentMethod(t.PaymentMethod) {
		return ErrInvalidPaymentMethod
	}
	return nil
}
