package interfaces

import (
	"context"
	"eventgear/internal/domain/entities"
)

// IPaymentRepository abstracts DynamoDB persistence for Payment.
//
// MarkCompleted/MarkFailed are conditional writes guarding the one-way
// transition out of pending. Re-applying the same terminal outcome is allowed
// (the overwrite is a deterministic function of the callback payload); a
// conflicting terminal outcome fails the condition and is reported as a
// zero-value Payment with nil error so the caller can log the conflict.

type IPaymentRepository interface {
	Create(ctx context.Context, p entities.Payment) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	GetByCheckoutRequestID(ctx context.Context, checkoutRequestID string) (entities.Payment, error)
	ListByBookingID(ctx context.Context, bookingID string) ([]entities.Payment, error)
	MarkCompleted(ctx context.Context, id, receiptNumber, transactionDate string) (entities.Payment, error)
	MarkFailed(ctx context.Context, id, failureReason string) (entities.Payment, error)
}
