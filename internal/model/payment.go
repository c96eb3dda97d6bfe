package model

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethod is the payment instrument used for an attempt.
type PaymentMethod string

const (
	MethodCard           PaymentMethod = "CARD"
	MethodBankTransfer   PaymentMethod = "BANK_TRANSFER"
	MethodCashOnDelivery PaymentMethod = "CASH_ON_DELIVERY"
	MethodWallet         PaymentMethod = "WALLET"
)

// PaymentRecordStatus is the state of a single payment attempt, as reported
// by the provider. Distinct from the order-level PaymentStatus.
type PaymentRecordStatus string

const (
	PaymentRecordPending   PaymentRecordStatus = "PENDING"
	PaymentRecordCompleted PaymentRecordStatus = "COMPLETED"
	PaymentRecordFailed    PaymentRecordStatus = "FAILED"
)

// Payment is one payment attempt against an order. An order may carry several
// attempts; reconciliation trusts the most recent COMPLETED one.
type Payment struct {
	ID          uuid.UUID           `json:"id" db:"id"`
	OrderID     uuid.UUID           `json:"orderId" db:"order_id"`
	Method      PaymentMethod       `json:"method" db:"method"`
	Amount      float64             `json:"amount" db:"amount"`
	Status      PaymentRecordStatus `json:"status" db:"status"`
	ProviderRef string              `json:"providerRef" db:"provider_ref"`
	CreatedAt   time.Time           `json:"createdAt" db:"created_at"`
}

// VerifyResult is the outcome of payment reconciliation. Verified is true
// only when the latest payment attempt is COMPLETED; the order is left
// untouched otherwise.
type VerifyResult struct {
	Verified bool     `json:"verified"`
	Payment  *Payment `json:"payment,omitempty"`
}
