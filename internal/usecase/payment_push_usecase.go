package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"eventgear/internal/domain/entities"
	"eventgear/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrInvalidPhone     = errors.New("invalid phone")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidPaymentID = errors.New("invalid payment id")
	ErrPushRejected     = errors.New("stk push rejected by gateway")
)

// IPaymentPushUseCase is the synchronous half of the payment pipeline: it
// validates the request, submits the STK push, and durably records a pending
// payment before reporting success.
//
// Exactly one payment row is created per accepted push; a rejected or
// ambiguous push creates none. A retry is a fresh call producing a new
// checkout_request_id.

type IPaymentPushUseCase interface {
	InitiatePush(ctx context.Context, bookingID, phone string, amount float64) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	ListByBookingID(ctx context.Context, bookingID string) ([]entities.Payment, error)
}

type PaymentPushUseCase struct {
	repo        interfaces.IPaymentRepository
	bookingRepo interfaces.IBookingRepository
	gateway     interfaces.IPaymentGateway
}

var _ IPaymentPushUseCase = (*PaymentPushUseCase)(nil)

func NewPaymentPushUseCase(repo interfaces.IPaymentRepository, bookingRepo interfaces.IBookingRepository, gateway interfaces.IPaymentGateway) *PaymentPushUseCase {
	return &PaymentPushUseCase{repo: repo, bookingRepo: bookingRepo, gateway: gateway}
}

func (u *PaymentPushUseCase) InitiatePush(ctx context.Context, bookingID, phone string, amount float64) (entities.Payment, error) {
	bookingID = strings.TrimSpace(bookingID)
	phone = strings.TrimSpace(phone)
	log.Printf("[payment][push] initiate start booking_id=%s amount=%.2f", bookingID, amount)

	// Fail fast before any network call.
	if bookingID == "" {
		return entities.Payment{}, ErrInvalidBookingID
	}
	if phone == "" {
		return entities.Payment{}, ErrInvalidPhone
	}
	if amount <= 0 {
		return entities.Payment{}, ErrInvalidAmount
	}
	if u.gateway == nil {
		return entities.Payment{}, errors.New("payment gateway not configured")
	}
	if u.bookingRepo == nil {
		return entities.Payment{}, errors.New("booking repository not configured")
	}
	if u.repo == nil {
		return entities.Payment{}, errors.New("payment repository not configured")
	}

	booking, err := u.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		log.Printf("[payment][push] booking lookup failed booking_id=%s err=%v", bookingID, err)
		return entities.Payment{}, err
	}
	if booking.ID == "" {
		log.Printf("[payment][push] booking not found booking_id=%s", bookingID)
		return entities.Payment{}, ErrBookingNotFound
	}

	rounded := int64(math.Round(amount))
	result, err := u.gateway.InitiateSTKPush(ctx, phone, rounded, bookingID)
	if err != nil {
		// Ambiguous outcome: the push may or may not have reached the gateway.
		// No payment row is created on this path.
		log.Printf("[payment][push] gateway call failed booking_id=%s err=%v", bookingID, err)
		return entities.Payment{}, err
	}
	if !result.Accepted {
		log.Printf("[payment][push] push rejected booking_id=%s code=%s desc=%s", bookingID, result.ResponseCode, result.ResponseDesc)
		return entities.Payment{}, fmt.Errorf("%w: %s", ErrPushRejected, result.ResponseDesc)
	}

	// The correlation id must be durably recorded before the caller sees
	// success; the gateway's callback can only be matched against it.
	now := time.Now().UTC()
	p := entities.Payment{
		ID:                uuid.NewString(),
		BookingID:         bookingID,
		CheckoutRequestID: result.CheckoutRequestID,
		MerchantRequestID: result.MerchantRequestID,
		Amount:            rounded,
		Phone:             entities.NormalizeMSISDN(phone),
		Method:            entities.PaymentMethodMpesa,
		Status:            entities.PaymentStatusPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	created, err := u.repo.Create(ctx, p)
	if err != nil {
		log.Printf("[payment][push] payment create failed booking_id=%s checkout_request_id=%s err=%v", bookingID, result.CheckoutRequestID, err)
		return entities.Payment{}, err
	}
	log.Printf("[payment][push] initiate success booking_id=%s payment_id=%s checkout_request_id=%s", bookingID, created.ID, created.CheckoutRequestID)
	return created, nil
}

func (u *PaymentPushUseCase) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Payment{}, ErrInvalidPaymentID
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	return p, nil
}

// ListByBookingID returns every payment attempt for a booking, newest first.
// The index query gives no useful order, so the sort happens here.
func (u *PaymentPushUseCase) ListByBookingID(ctx context.Context, bookingID string) ([]entities.Payment, error) {
	bookingID = strings.TrimSpace(bookingID)
	if bookingID == "" {
		return nil, ErrInvalidBookingID
	}

	payments, err := u.repo.ListByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	sort.Slice(payments, func(i, j int) bool {
		return payments[i].CreatedAt.After(payments[j].CreatedAt)
	})
	return payments, nil
}
