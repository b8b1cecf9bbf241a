package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestTransactionValidate(t *testing.T) {
	tests := []struct {
		name    string
		txn     Transaction
		wantErr error
	}{
		{
			name: "valid income",
			txn: Transaction{
				Type:          TransactionTypeIncome,
				Amount:        decimal.NewFromInt(100),
				PaymentMethod: PaymentMethodCash,
			},
			wantErr: nil,
		},
		{
			name: "zero amount rejected",
			txn: Transaction{
				Type:          TransactionTypeExpense,
				Amount:        decimal.Zero,
				PaymentMethod: PaymentMethodCash,
			},
			wantErr: ErrInvalidAmount,
		},
		{
			name: "negative amount rejected",
			txn: Transaction{
				Type:          TransactionTypeExpense,
				Amount:        decimal.NewFromInt(-50),
				PaymentMethod: PaymentMethodCard,
			},
			wantErr: ErrInvalidAmount,
		},
		{
			name: "unknown type rejected",
			txn: Transaction{
				Type:          TransactionType("refund"),
				Amount:        decimal.NewFromInt(10),
				PaymentMethod: PaymentMethodCash,
			},
			wantErr: ErrInvalidTransactionType,
		},
		{
			name: "unknown payment method rejected",
			txn: Transaction{
				Type:          TransactionTypeIncome,
				Amount:        decimal.NewFromInt(10),
				PaymentMethod: PaymentMethod("crypto"),
			},
			wantErr: ErrInvalidPaymentMethod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.txn.Validate()
			if err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTransactionSignedAmount(t *testing.T) {
	income := Transaction{Type: TransactionTypeIncome, Amount: decimal.NewFromInt(500)}
	if !income.SignedAmount().Equal(decimal.NewFromInt(500)) {
		t.Errorf("income signed amount = %s, want 500", income.SignedAmount())
	}

	expense := Transaction{Type: TransactionTypeExpense, Amount: decimal.NewFromInt(500)}
	if !expense.SignedAmount().Equal(decimal.NewFromInt(-500)) {
		t.Errorf("expense signed amount = %s, want -500", expense.SignedAmount())
	}
}

func TestAccountForPaymentMethod(t *testing.T) {
	tests := []struct {
		method PaymentMethod
		want   string
	}{
		{PaymentMethodCash, DefaultAccountCash},
		{PaymentMethodCard, DefaultAccountCard},
		{PaymentMethodTransfer, DefaultAccountBank},
		{PaymentMethodOther, ""},
		{PaymentMethod("unknown"), ""},
	}

	for _, tt := range tests {
		if got := AccountForPaymentMethod(tt.method); got != tt.want {
			t.Errorf("AccountForPaymentMethod(%s) = %q, want %q", tt.method, got, tt.want)
		}
	}
}
