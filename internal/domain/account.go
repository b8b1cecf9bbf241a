package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies where the money physically sits.
type AccountType string

const (
	AccountTypeCash  AccountType = "cash"
	AccountTypeBank  AccountType = "bank"
	AccountTypeOther AccountType = "other"
)

// ValidAccountType reports whether t is a known account type.
func ValidAccountType(t AccountType) bool {
	switch t {
	case AccountTypeCash, AccountTypeBank, AccountTypeOther:
		return true
	}
	return false
}

// Account is a named money pool with a running balance. The balance column is
// the single source of truth and is only mutated through atomic
// balance = balance + delta increments at the storage layer.
type Account struct {
	ID        string
	Name      string
	Type      AccountType
	Balance   decimal.Decimal
	IsActive  bool
	SortOrder int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Default accounts seeded by InitDefaults. Order settlement resolves accounts
// by these names when mapping payment methods.
const (
	DefaultAccountCash = "Наличные"
	DefaultAccountCard = "Карта"
	DefaultAccountBank = "Расчётный счёт"
)

// DefaultAccounts returns the seed set for a fresh installation.
func DefaultAccounts() []Account {
	return []Account{
		{Name: DefaultAccountCash, Type: AccountTypeCash, SortOrder: 1},
		{Name: DefaultAccountCard, Type: AccountTypeBank, SortOrder: 2},
		{Name: DefaultAccountBank, Type: AccountTypeBank, SortOrder: 3},
	}
}

// AccountForPaymentMethod maps a payment method to the default account name
// that collects it. The empty string means no account is implied and the
// posting stays unlinked.
func AccountForPaymentMethod(m PaymentMethod) string {
	switch m {
	case PaymentMethodCash:
		return DefaultAccountCash
	case PaymentMethodCard:
		return DefaultAccountCard
	case PaymentMethodTransfer:
		return DefaultAccountBank
	}
	return ""
}
