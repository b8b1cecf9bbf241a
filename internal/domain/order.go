package domain

import "github.com/shopspring/decimal"

// OrderStatus mirrors the order module's state machine. The ledger does not
// own order state; it only reacts to transitions into completed.
type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "new"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// OrderStatusChange is the contract the order module invokes on every status
// transition.
type OrderStatusChange struct {
	OrderID        string
	TotalAmount    decimal.Decimal
	CustomerPhone  string
	CustomerName   string
	PreviousStatus OrderStatus
	NewStatus      OrderStatus
	PaymentMethod  PaymentMethod
}

// SaleEvent is the point-of-sale contract: the same posting as a completed
// order, without a prior order lifecycle.
type SaleEvent struct {
	OrderID       string
	TotalAmount   decimal.Decimal
	CustomerPhone string
	CustomerName  string
	PaymentMethod PaymentMethod
}
