package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/metalbaza/finledger/internal/domain"
	"github.com/metalbaza/finledger/internal/usecase"
)

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	SortOrder      int             `json:"sort_order"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		Name:           r.Name,
		Type:           domain.AccountType(r.Type),
		InitialBalance: r.InitialBalance,
		SortOrder:      r.SortOrder,
	}
}

// UpdateAccountRequest represents a partial account update.
type UpdateAccountRequest struct {
	Name      *string `json:"name,omitempty"`
	Type      *string `json:"type,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
	SortOrder *int    `json:"sort_order,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateAccountRequest) ToUseCaseInput() usecase.UpdateAccountInput {
	input := usecase.UpdateAccountInput{
		Name:      r.Name,
		IsActive:  r.IsActive,
		SortOrder: r.SortOrder,
	}
	if r.Type != nil {
		t := domain.AccountType(*r.Type)
		input.Type = &t
	}
	return input
}

// CreateCategoryRequest represents a request to create a category.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateCategoryRequest) ToUseCaseInput() usecase.CreateCategoryInput {
	return usecase.CreateCategoryInput{
		Name:        r.Name,
		Type:        domain.TransactionType(r.Type),
		Color:       r.Color,
		Icon:        r.Icon,
		Description: r.Description,
		SortOrder:   r.SortOrder,
	}
}

// UpdateCategoryRequest represents a partial category update.
type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Color       *string `json:"color,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
	SortOrder   *int    `json:"sort_order,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateCategoryRequest) ToUseCaseInput() usecase.UpdateCategoryInput {
	return usecase.UpdateCategoryInput{
		Name:        r.Name,
		Color:       r.Color,
		Icon:        r.Icon,
		Description: r.Description,
		IsActive:    r.IsActive,
		SortOrder:   r.SortOrder,
	}
}

// CreateTransactionRequest represents a request to record a money movement.
type CreateTransactionRequest struct {
	Type          string          `json:"type"`
	CategoryID    *string         `json:"category_id,omitempty"`
	AccountID     *string         `json:"account_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Date          *time.Time      `json:"date,omitempty"`
	PaymentMethod string          `json:"payment_method"`
	Metadata      map[string]any  `json:"metadata,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransactionRequest) ToUseCaseInput() usecase.CreateTransactionInput {
	input := usecase.CreateTransactionInput{
		Type:          domain.TransactionType(r.Type),
		CategoryID:    r.CategoryID,
		AccountID:     r.AccountID,
		Amount:        r.Amount,
		Description:   r.Description,
		PaymentMethod: domain.PaymentMethod(r.PaymentMethod),
		Metadata:      r.Metadata,
	}
	if r.Date != nil {
		input.Date = *r.Date
	}
	return input
}

// UpdateTransactionRequest represents a partial transaction update. Amount,
// type and account are carried so the server can reject attempts to change
// them rather than silently ignore them.
type UpdateTransactionRequest struct {
	Description    *string          `json:"description,omitempty"`
	Date           *time.Time       `json:"date,omitempty"`
	PaymentMethod  *string          `json:"payment_method,omitempty"`
	CategoryID     *string          `json:"category_id,omitempty"`
	RemoveCategory bool             `json:"remove_category,omitempty"`
	Amount         *decimal.Decimal `json:"amount,omitempty"`
	Type           *string          `json:"type,omitempty"`
	AccountID      *string          `json:"account_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateTransactionRequest) ToUseCaseInput() usecase.UpdateTransactionInput {
	input := usecase.UpdateTransactionInput{
		Description:    r.Description,
		Date:           r.Date,
		CategoryID:     r.CategoryID,
		RemoveCategory: r.RemoveCategory,
		Amount:         r.Amount,
		AccountID:      r.AccountID,
	}
	if r.PaymentMethod != nil {
		m := domain.PaymentMethod(*r.PaymentMethod)
		input.PaymentMethod = &m
	}
	if r.Type != nil {
		t := domain.TransactionType(*r.Type)
		input.Type = &t
	}
	return input
}

// CreateTransferRequest represents a request to move money between accounts.
type CreateTransferRequest struct {
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Date          *time.Time      `json:"date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransferRequest) ToUseCaseInput() usecase.TransferInput {
	input := usecase.TransferInput{
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
		Amount:        r.Amount,
		Description:   r.Description,
	}
	if r.Date != nil {
		input.Date = *r.Date
	}
	return input
}

// OrderStatusChangeRequest is the callback payload the order module sends on
// every status transition.
type OrderStatusChangeRequest struct {
	OrderID        string          `json:"order_id"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	CustomerPhone  string          `json:"customer_phone"`
	CustomerName   string          `json:"customer_name"`
	PreviousStatus string          `json:"previous_status"`
	NewStatus      string          `json:"new_status"`
	PaymentMethod  string          `json:"payment_method"`
}

// ToDomain converts to the domain event.
func (r *OrderStatusChangeRequest) ToDomain() domain.OrderStatusChange {
	return domain.OrderStatusChange{
		OrderID:        r.OrderID,
		TotalAmount:    r.TotalAmount,
		CustomerPhone:  r.CustomerPhone,
		CustomerName:   r.CustomerName,
		PreviousStatus: domain.OrderStatus(r.PreviousStatus),
		NewStatus:      domain.OrderStatus(r.NewStatus),
		PaymentMethod:  domain.PaymentMethod(r.PaymentMethod),
	}
}

// SaleEventRequest is the point-of-sale callback payload.
type SaleEventRequest struct {
	OrderID       string          `json:"order_id"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	CustomerPhone string          `json:"customer_phone"`
	CustomerName  string          `json:"customer_name"`
	PaymentMethod string          `json:"payment_method"`
}

// ToDomain converts to the domain event.
func (r *SaleEventRequest) ToDomain() domain.SaleEvent {
	return domain.SaleEvent{
		OrderID:       r.OrderID,
		TotalAmount:   r.TotalAmount,
		CustomerPhone: r.CustomerPhone,
		CustomerName:  r.CustomerName,
		PaymentMethod: domain.PaymentMethod(r.PaymentMethod),
	}
}
