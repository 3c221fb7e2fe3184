package interfaces

import (
	"context"
	"eventgear/internal/domain/entities"
)

// IBookingRepository abstracts DynamoDB persistence for Booking.
//
// UpdateStatus is a single-row conditional write: it succeeds only when the
// booking exists and its current status is one of allowedFrom (or already
// equals the target status, which makes callback redelivery harmless). A
// zero-value Booking return with nil error means the guard did not match.

type IBookingRepository interface {
	Create(ctx context.Context, b entities.Booking) (entities.Booking, error)
	GetByID(ctx context.Context, id string) (entities.Booking, error)
	UpdateStatus(ctx context.Context, id string, status entities.BookingStatus, allowedFrom ...entities.BookingStatus) (entities.Booking, error)
}
