package interfaces

import (
	"context"
	"errors"
	"eventgear/internal/domain/entities"
)

var (
	// ErrGatewayAuth marks a failed credential exchange; the push was never submitted.
	ErrGatewayAuth = errors.New("payment gateway auth failed")
	// ErrGatewayUnavailable marks a transport/5xx failure with an ambiguous delivery outcome.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
)

// IPaymentGateway abstracts the M-Pesa Daraja API (STK push).
//
// A nil error with Accepted=false means the gateway explicitly rejected the
// push. A non-nil error means the outcome is ambiguous (auth failure, network
// failure, 5xx): the caller must not assume the push never reached the
// gateway and must not create a payment record.
type IPaymentGateway interface {
	InitiateSTKPush(ctx context.Context, phone string, amount int64, bookingID string) (entities.STKPushResult, error)
}
