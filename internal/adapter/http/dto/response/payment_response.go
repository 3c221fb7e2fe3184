package response

import (
	"eventgear/internal/domain/entities"
	"time"
)

// PushResponse is the synchronous answer to a push initiation:
// {success:true, checkoutRequestId, merchantRequestId}.
type PushResponse struct {
	Success           bool   `json:"success"`
	PaymentID         string `json:"payment_id"`
	CheckoutRequestID string `json:"checkoutRequestId"`
	MerchantRequestID string `json:"merchantRequestId"`
}

func FromPush(p entities.Payment) PushResponse {
	return PushResponse{
		Success:           true,
		PaymentID:         p.ID,
		CheckoutRequestID: p.CheckoutRequestID,
		MerchantRequestID: p.MerchantRequestID,
	}
}

type PaymentResponse struct {
	ID                string    `json:"id"`
	BookingID         string    `json:"booking_id"`
	CheckoutRequestID string    `json:"checkout_request_id"`
	MerchantRequestID string    `json:"merchant_request_id"`
	Amount            int64     `json:"amount"`
	Phone             string    `json:"phone"`
	Method            string    `json:"payment_method"`
	Status            string    `json:"status"`
	ReceiptNumber     string    `json:"receipt_number,omitempty"`
	TransactionDate   string    `json:"transaction_date,omitempty"`
	FailureReason     string    `json:"failure_reason,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func FromPayment(p entities.Payment) PaymentResponse {
	return PaymentResponse{
		ID:                p.ID,
		BookingID:         p.BookingID,
		CheckoutRequestID: p.CheckoutRequestID,
		MerchantRequestID: p.MerchantRequestID,
		Amount:            p.Amount,
		Phone:             p.Phone,
		Method:            p.Method,
		Status:            string(p.Status),
		ReceiptNumber:     p.ReceiptNumber,
		TransactionDate:   p.TransactionDate,
		FailureReason:     p.FailureReason,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func FromPayments(ps []entities.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromPayment(p))
	}
	return out
}

// CallbackAck is the unconditional acknowledgment returned to the gateway.
// Anything other than ResultCode 0 triggers indefinite gateway retries.
type CallbackAck struct {
	ResultCode int    `json:"ResultCode"`
	ResultDesc string `json:"ResultDesc"`
}

func AckSuccess() CallbackAck {
	return CallbackAck{ResultCode: 0, ResultDesc: "Success"}
}
