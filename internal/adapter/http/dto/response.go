package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/metalbaza/finledger/internal/domain"
	"github.com/metalbaza/finledger/internal/usecase"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Balance   decimal.Decimal `json:"balance"`
	IsActive  bool            `json:"is_active"`
	SortOrder int             `json:"sort_order"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Type:      string(a.Type),
		Balance:   a.Balance,
		IsActive:  a.IsActive,
		SortOrder: a.SortOrder,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// CategoryResponse represents a category in API responses.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Color       string    `json:"color"`
	Icon        string    `json:"icon"`
	Description string    `json:"description,omitempty"`
	IsSystem    bool      `json:"is_system"`
	IsActive    bool      `json:"is_active"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
}

// CategoryFromDomain converts domain category to response.
func CategoryFromDomain(c *domain.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Type:        string(c.Type),
		Color:       c.Color,
		Icon:        c.Icon,
		Description: c.Description,
		IsSystem:    c.IsSystem,
		IsActive:    c.IsActive,
		SortOrder:   c.SortOrder,
		CreatedAt:   c.CreatedAt,
	}
}

// CategoriesFromDomain converts domain categories to responses.
func CategoriesFromDomain(categories []*domain.Category) []*CategoryResponse {
	result := make([]*CategoryResponse, len(categories))
	for i, c := range categories {
		result[i] = CategoryFromDomain(c)
	}
	return result
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	CategoryID    *string         `json:"category_id,omitempty"`
	AccountID     *string         `json:"account_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description,omitempty"`
	OrderID       *string         `json:"order_id,omitempty"`
	CustomerID    *string         `json:"customer_id,omitempty"`
	Date          time.Time       `json:"date"`
	PaymentMethod string          `json:"payment_method"`
	IsAutomatic   bool            `json:"is_automatic"`
	Metadata      map[string]any  `json:"metadata,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TransactionFromDomain converts domain transaction to response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:            t.ID,
		Type:          string(t.Type),
		CategoryID:    t.CategoryID,
		AccountID:     t.AccountID,
		Amount:        t.Amount,
		Description:   t.Description,
		OrderID:       t.OrderID,
		CustomerID:    t.CustomerID,
		Date:          t.Date,
		PaymentMethod: string(t.PaymentMethod),
		IsAutomatic:   t.IsAutomatic,
		Metadata:      t.Metadata,
		CreatedAt:     t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txns []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txns))
	for i, t := range txns {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// TransactionListResponse pairs one page of transactions with the total
// match count.
type TransactionListResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int64                  `json:"total"`
	Limit        int                    `json:"limit"`
	Offset       int                    `json:"offset"`
}

// TransferResponse carries the two legs of a completed transfer.
type TransferResponse struct {
	Expense *TransactionResponse `json:"expense"`
	Income  *TransactionResponse `json:"income"`
}

// TransferFromResult converts a transfer result to response.
func TransferFromResult(result *usecase.TransferResult) *TransferResponse {
	return &TransferResponse{
		Expense: TransactionFromDomain(result.Expense),
		Income:  TransactionFromDomain(result.Income),
	}
}

// StatsOverviewResponse represents the aggregate totals for a date range.
type StatsOverviewResponse struct {
	From             time.Time       `json:"from"`
	To               time.Time       `json:"to"`
	TotalIncome      decimal.Decimal `json:"total_income"`
	TotalExpense     decimal.Decimal `json:"total_expense"`
	Profit           decimal.Decimal `json:"profit"`
	TransactionCount int64           `json:"transaction_count"`
}

// StatsOverviewFromDomain converts a stats overview to response.
func StatsOverviewFromDomain(o *domain.StatsOverview) *StatsOverviewResponse {
	return &StatsOverviewResponse{
		From:             o.From,
		To:               o.To,
		TotalIncome:      o.TotalIncome,
		TotalExpense:     o.TotalExpense,
		Profit:           o.Profit,
		TransactionCount: o.TransactionCount,
	}
}

// PeriodStatResponse is one bucket of the by-period breakdown.
type PeriodStatResponse struct {
	Period  string          `json:"period"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// PeriodStatsFromDomain converts period stats to responses.
func PeriodStatsFromDomain(stats []*domain.PeriodStat) []*PeriodStatResponse {
	result := make([]*PeriodStatResponse, len(stats))
	for i, s := range stats {
		result[i] = &PeriodStatResponse{Period: s.Period, Income: s.Income, Expense: s.Expense}
	}
	return result
}

// CategoryStatResponse is one row of the by-category breakdown.
type CategoryStatResponse struct {
	CategoryID   *string         `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Color        string          `json:"color,omitempty"`
	Total        decimal.Decimal `json:"total"`
	Count        int64           `json:"count"`
}

// CategoryStatsFromDomain converts category stats to responses.
func CategoryStatsFromDomain(stats []*domain.CategoryStat) []*CategoryStatResponse {
	result := make([]*CategoryStatResponse, len(stats))
	for i, s := range stats {
		result[i] = &CategoryStatResponse{
			CategoryID:   s.CategoryID,
			CategoryName: s.CategoryName,
			Color:        s.Color,
			Total:        s.Total,
			Count:        s.Count,
		}
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
