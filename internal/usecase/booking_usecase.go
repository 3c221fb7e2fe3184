package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"eventgear/internal/domain/entities"
	"eventgear/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound       = errors.New("booking not found")
	ErrInvalidBookingID      = errors.New("invalid booking_id")
	ErrInvalidBookingInput   = errors.New("invalid booking input")
	ErrIllegalStatusChange   = errors.New("illegal booking status change")
	ErrInvalidBookingItems   = errors.New("invalid booking items")
	ErrInvalidBookingPeriod  = errors.New("invalid booking period")
	ErrInvalidBookingContact = errors.New("invalid booking contact")
)

// NewBookingInput is the domain command for booking creation. The total is
// always computed from the line items server-side.
type NewBookingInput struct {
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerAddress string
	StartDate       string
	EndDate         string
	Items           []entities.BookingItem
}

// IBookingUseCase exposes booking operations.
//
// A booking is created pending and leaves pending only through the payment
// pipeline (confirmed) or a cancel action. Activate/Complete/Cancel are the
// back-office transitions; confirmation is never reachable from here.

type IBookingUseCase interface {
	CreateBooking(ctx context.Context, in NewBookingInput) (entities.Booking, error)
	GetByID(ctx context.Context, id string) (entities.Booking, error)
	Activate(ctx context.Context, id string) (entities.Booking, error)
	Complete(ctx context.Context, id string) (entities.Booking, error)
	Cancel(ctx context.Context, id string) (entities.Booking, error)
}

type BookingUseCase struct {
	repo interfaces.IBookingRepository
}

var _ IBookingUseCase = (*BookingUseCase)(nil)

func NewBookingUseCase(repo interfaces.IBookingRepository) *BookingUseCase {
	return &BookingUseCase{repo: repo}
}

func (u *BookingUseCase) CreateBooking(ctx context.Context, in NewBookingInput) (entities.Booking, error) {
	name := strings.TrimSpace(in.CustomerName)
	phone := strings.TrimSpace(in.CustomerPhone)
	if name == "" || phone == "" {
		return entities.Booking{}, ErrInvalidBookingContact
	}
	if strings.TrimSpace(in.StartDate) == "" || strings.TrimSpace(in.EndDate) == "" {
		return entities.Booking{}, ErrInvalidBookingPeriod
	}
	if len(in.Items) == 0 {
		return entities.Booking{}, ErrInvalidBookingItems
	}

	total := 0.0
	for _, li := range in.Items {
		if strings.TrimSpace(li.Name) == "" || li.Quantity <= 0 || li.UnitPrice <= 0 {
			return entities.Booking{}, ErrInvalidBookingItems
		}
		total += float64(li.Quantity) * li.UnitPrice
	}

	now := time.Now().UTC()
	b := entities.Booking{
		ID:              uuid.NewString(),
		CustomerName:    name,
		CustomerEmail:   strings.TrimSpace(in.CustomerEmail),
		CustomerPhone:   phone,
		CustomerAddress: strings.TrimSpace(in.CustomerAddress),
		StartDate:       strings.TrimSpace(in.StartDate),
		EndDate:         strings.TrimSpace(in.EndDate),
		Items:           in.Items,
		TotalAmount:     total,
		Status:          entities.BookingStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	created, err := u.repo.Create(ctx, b)
	if err != nil {
		log.Printf("[booking][usecase] create failed err=%v", err)
		return entities.Booking{}, err
	}
	log.Printf("[booking][usecase] created booking_id=%s total=%.2f", created.ID, created.TotalAmount)
	return created, nil
}

func (u *BookingUseCase) GetByID(ctx context.Context, id string) (entities.Booking, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Booking{}, ErrInvalidBookingID
	}

	b, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Booking{}, err
	}
	if b.ID == "" {
		return entities.Booking{}, ErrBookingNotFound
	}
	return b, nil
}

func (u *BookingUseCase) Activate(ctx context.Context, id string) (entities.Booking, error) {
	return u.updateStatus(ctx, id, entities.BookingStatusActive, entities.BookingStatusConfirmed)
}

func (u *BookingUseCase) Complete(ctx context.Context, id string) (entities.Booking, error) {
	return u.updateStatus(ctx, id, entities.BookingStatusCompleted, entities.BookingStatusActive)
}

func (u *BookingUseCase) Cancel(ctx context.Context, id string) (entities.Booking, error) {
	return u.updateStatus(ctx, id, entities.BookingStatusCancelled, entities.BookingStatusPending, entities.BookingStatusConfirmed)
}

func (u *BookingUseCase) updateStatus(ctx context.Context, id string, status entities.BookingStatus, allowedFrom ...entities.BookingStatus) (entities.Booking, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Booking{}, ErrInvalidBookingID
	}

	existing, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Booking{}, err
	}
	if existing.ID == "" {
		return entities.Booking{}, ErrBookingNotFound
	}

	updated, err := u.repo.UpdateStatus(ctx, id, status, allowedFrom...)
	if err != nil {
		return entities.Booking{}, err
	}
	if updated.ID == "" {
		log.Printf("[booking][usecase] illegal transition booking_id=%s from=%s to=%s", id, existing.Status, status)
		return entities.Booking{}, ErrIllegalStatusChange
	}
	return updated, nil
}
