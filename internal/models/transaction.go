package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const DefaultCurrency = "NPR"

type TransactionStatus string

const (
	TxPending   TransactionStatus = "pending"
	TxCompleted TransactionStatus = "completed"
	TxFailed    TransactionStatus = "failed"
	TxCancelled TransactionStatus = "cancelled"
)

func (s TransactionStatus) Valid() bool {
	switch s {
	case TxPending, TxCompleted, TxFailed, TxCancelled:
		return true
	}
	return false
}

func (s TransactionStatus) Terminal() bool {
	return s == TxCompleted || s == TxFailed || s == TxCancelled
}

type TransactionType string

const (
	TxDeposit     TransactionType = "deposit"
	TxTransferIn  TransactionType = "transfer_in"
	TxTransferOut TransactionType = "transfer_out"
	TxPayment     TransactionType = "payment"
)

// Delta is the signed effect of a transaction of this type on the balance.
// Payments settle through the external gateway and leave the balance as is.
func (t TransactionType) Delta(amount decimal.Decimal) decimal.Decimal {
	switch t {
	case TxDeposit, TxTransferIn:
		return amount
	case TxTransferOut:
		return amount.Neg()
	default:
		return decimal.Zero
	}
}

type WalletTransaction struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	UserID         uint              `gorm:"not null;index:idx_wallet_user_created,priority:1" json:"user_id"`
	Type           TransactionType   `gorm:"column:transaction_type;type:varchar(20);not null" json:"transaction_type"`
	Amount         decimal.Decimal   `gorm:"type:decimal(14,2);not null" json:"amount"`
	Currency       string            `gorm:"type:varchar(10);not null;default:'NPR'" json:"currency"`
	Status         TransactionStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	BalanceBefore  decimal.Decimal   `gorm:"type:decimal(14,2);not null" json:"balance_before"`
	BalanceAfter   decimal.Decimal   `gorm:"type:decimal(14,2);not null" json:"balance_after"`
	Reference      *string           `gorm:"type:varchar(255);uniqueIndex" json:"reference,omitempty"`
	Description    string            `gorm:"type:varchar(500)" json:"description"`
	CounterpartyID *uint             `json:"counterparty_id,omitempty"`
	CreatedAt      time.Time         `gorm:"index:idx_wallet_user_created,priority:2" json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

func (WalletTransaction) TableName() string { return "nexo_paisa_transactions" }

// ProcessedWebhookEvent records a (transaction, status) delivery that has been applied.
type ProcessedWebhookEvent struct {
	ID            uint              `gorm:"primaryKey"`
	TransactionID uint              `gorm:"not null;uniqueIndex:idx_webhook_tx_status,priority:1"`
	Status        TransactionStatus `gorm:"type:varchar(20);not null;uniqueIndex:idx_webhook_tx_status,priority:2"`
	Reference     string            `gorm:"type:varchar(255)"`
	CreatedAt     time.Time
}
