package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	request "eventgear/internal/adapter/http/dto/request"
	response "eventgear/internal/adapter/http/dto/response"
	"eventgear/internal/domain/entities"
	"eventgear/internal/usecase"
	"eventgear/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidBookingPayload = pkg.NewDomainErrorSimple("INVALID_BOOKING_INPUT", "Invalid booking payload", http.StatusBadRequest)

// BookingHandler handles HTTP requests for rental bookings.

type BookingHandler struct {
	usecase usecase.IBookingUseCase
}

func NewBookingHandler(uc usecase.IBookingUseCase) *BookingHandler {
	return &BookingHandler{usecase: uc}
}

// CreateBooking creates a pending booking from the checkout payload.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var payload request.BookingCreateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidBookingPayload.HTTPStatus, errInvalidBookingPayload.ToHTTPError())
		return
	}

	booking, err := h.usecase.CreateBooking(c.Request.Context(), payload.ToInput())
	if err != nil {
		log.Printf("[booking][handler] create failed err=%v", err)
		appErr := mapBookingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromBooking(booking))
}

// GetBooking returns a booking by id; clients poll it to observe the
// payment outcome.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	booking, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapBookingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromBooking(booking))
}

func (h *BookingHandler) ActivateBooking(c *gin.Context) {
	h.patchBookingStatus(c, h.usecase.Activate)
}

func (h *BookingHandler) CompleteBooking(c *gin.Context) {
	h.patchBookingStatus(c, h.usecase.Complete)
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	h.patchBookingStatus(c, h.usecase.Cancel)
}

func (h *BookingHandler) patchBookingStatus(
	c *gin.Context,
	updater func(ctx context.Context, id string) (entities.Booking, error),
) {
	booking, err := updater(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapBookingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromBooking(booking))
}

func mapBookingError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidBookingID),
		errors.Is(err, usecase.ErrInvalidBookingInput),
		errors.Is(err, usecase.ErrInvalidBookingItems),
		errors.Is(err, usecase.ErrInvalidBookingPeriod),
		errors.Is(err, usecase.ErrInvalidBookingContact):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrBookingNotFound):
		return pkg.NewDomainErrorSimple("BOOKING_NOT_FOUND", "Booking not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrIllegalStatusChange):
		return pkg.NewDomainErrorSimple("ILLEGAL_STATUS_CHANGE", "Booking status change not allowed", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
