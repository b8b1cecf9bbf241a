package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidAccountType = errors.New("invalid account type")
	ErrDuplicateAccount   = errors.New("account with this name already exists")

	// Category errors
	ErrCategoryNotFound     = errors.New("category not found")
	ErrProtectedCategory    = errors.New("system category cannot be deleted")
	ErrCategoryTypeMismatch = errors.New("category type does not match transaction type")

	// Transaction errors
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrInvalidPaymentMethod   = errors.New("invalid payment method")
	ErrPostedImmutable        = errors.New("amount, type and account of a posted transaction cannot be changed")

	// Transfer errors
	ErrSameAccount = errors.New("cannot transfer to same account")

	// Settlement errors
	ErrAlreadySettled = errors.New("order has already been settled")

	// Customer errors
	ErrCustomerNotFound = errors.New("customer not found")

	// Storage errors
	ErrStoreUnavailable = errors.New("store unavailable")
)
