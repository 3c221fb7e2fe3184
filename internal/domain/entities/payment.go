package entities

import "time"

// PaymentStatus represents the M-Pesa payment outcome.
//
// pending is the only non-terminal state; completed and failed are terminal
// and one-way. A payment row is created only after the gateway has accepted
// an STK push, and is mutated exactly once by the callback receiver.

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

const PaymentMethodMpesa = "mpesa"

// Payment is the payment attempt persisted by the service.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (checkout_request_id-index): checkout_request_id
//   - GSI2 (booking_id-index): booking_id
//
// CheckoutRequestID is the gateway-issued correlation id assigned at push
// time; it is the only join key between the synchronous initiation and the
// asynchronous callback, unique and immutable once set.
type Payment struct {
	ID                string        `json:"id"`
	BookingID         string        `json:"booking_id"`
	CheckoutRequestID string        `json:"checkout_request_id"`
	MerchantRequestID string        `json:"merchant_request_id"`
	Amount            int64         `json:"amount"`
	Phone             string        `json:"phone"`
	Method            string        `json:"payment_method"`
	Status            PaymentStatus `json:"status"`
	ReceiptNumber     string        `json:"receipt_number,omitempty"`
	TransactionDate   string        `json:"transaction_date,omitempty"`
	FailureReason     string        `json:"failure_reason,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}
