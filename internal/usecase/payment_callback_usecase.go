package usecase

import (
	"context"
	"log"

	"eventgear/internal/domain/entities"
	"eventgear/internal/usecase/interfaces"
)

// IPaymentCallbackUseCase is the asynchronous half of the payment pipeline.
//
// Reconcile applies the gateway's reported outcome to the payment row matched
// by checkout_request_id, and on success confirms the booking. The gateway
// delivers callbacks at-least-once, so every branch must be safe to re-run:
// redelivery of the same outcome is a harmless overwrite, a conflicting
// outcome is detected and logged, never applied.
//
// A nil return means nothing is left to do; a non-nil return means the store
// misbehaved and the attempt is worth logging. Either way the HTTP handler
// acknowledges success to the gateway.

type IPaymentCallbackUseCase interface {
	Reconcile(ctx context.Context, result entities.CallbackResult) error
}

type PaymentCallbackUseCase struct {
	repo        interfaces.IPaymentRepository
	bookingRepo interfaces.IBookingRepository
}

var _ IPaymentCallbackUseCase = (*PaymentCallbackUseCase)(nil)

func NewPaymentCallbackUseCase(repo interfaces.IPaymentRepository, bookingRepo interfaces.IBookingRepository) *PaymentCallbackUseCase {
	return &PaymentCallbackUseCase{repo: repo, bookingRepo: bookingRepo}
}

func (u *PaymentCallbackUseCase) Reconcile(ctx context.Context, result entities.CallbackResult) error {
	if result.CheckoutRequestID == "" {
		// Malformed or irrelevant callback; retrying would not help.
		log.Printf("[payment][callback] missing checkout_request_id; ignoring")
		return nil
	}
	log.Printf("[payment][callback] reconcile start checkout_request_id=%s result_code=%d", result.CheckoutRequestID, result.ResultCode)

	p, err := u.repo.GetByCheckoutRequestID(ctx, result.CheckoutRequestID)
	if err != nil {
		log.Printf("[payment][callback] payment lookup failed checkout_request_id=%s err=%v", result.CheckoutRequestID, err)
		return err
	}
	if p.ID == "" {
		// Nothing to reconcile; a retry would find nothing either.
		log.Printf("[payment][callback] no payment for checkout_request_id=%s; ignoring", result.CheckoutRequestID)
		return nil
	}
	if p.BookingID == "" {
		log.Printf("[payment][callback] payment %s has no booking reference; ignoring", p.ID)
		return nil
	}

	if !result.Succeeded() {
		updated, err := u.repo.MarkFailed(ctx, p.ID, result.ResultDesc)
		if err != nil {
			log.Printf("[payment][callback] mark-failed write failed payment_id=%s err=%v", p.ID, err)
			return err
		}
		if updated.ID == "" {
			log.Printf("[payment][callback] terminal conflict payment_id=%s status=%s incoming=failed; not overwritten", p.ID, p.Status)
			return nil
		}
		// The booking stays pending so the customer can retry.
		log.Printf("[payment][callback] payment failed payment_id=%s reason=%q", p.ID, result.ResultDesc)
		return nil
	}

	// Payment first: a completed payment with an unconfirmed booking is
	// recoverable by a reconciliation sweep, the reverse is not.
	updated, err := u.repo.MarkCompleted(ctx, p.ID, result.ReceiptNumber, result.TransactionDate)
	if err != nil {
		log.Printf("[payment][callback] mark-completed write failed payment_id=%s err=%v", p.ID, err)
		return err
	}
	if updated.ID == "" {
		log.Printf("[payment][callback] terminal conflict payment_id=%s status=%s incoming=completed; not overwritten", p.ID, p.Status)
		return nil
	}

	booking, err := u.bookingRepo.UpdateStatus(ctx, p.BookingID, entities.BookingStatusConfirmed, entities.BookingStatusPending)
	if err != nil {
		log.Printf("[payment][callback] booking confirm write failed booking_id=%s payment_id=%s err=%v", p.BookingID, p.ID, err)
		return err
	}
	if booking.ID == "" {
		log.Printf("[payment][callback] booking %s not confirmable (missing or past pending)", p.BookingID)
		return nil
	}
	log.Printf("[payment][callback] reconcile success payment_id=%s booking_id=%s receipt=%s", p.ID, booking.ID, result.ReceiptNumber)
	return nil
}
