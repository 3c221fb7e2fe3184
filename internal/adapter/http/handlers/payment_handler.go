package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	request "eventgear/internal/adapter/http/dto/request"
	response "eventgear/internal/adapter/http/dto/response"
	"eventgear/internal/usecase"
	"eventgear/internal/usecase/interfaces"
	"eventgear/pkg"

	"github.com/gin-gonic/gin"
)

// PaymentHandler handles HTTP requests for the M-Pesa payment pipeline:
// push initiation from the booking UI and the gateway's outcome callback.

type PaymentHandler struct {
	push     usecase.IPaymentPushUseCase
	callback usecase.IPaymentCallbackUseCase
}

func NewPaymentHandler(push usecase.IPaymentPushUseCase, callback usecase.IPaymentCallbackUseCase) *PaymentHandler {
	return &PaymentHandler{push: push, callback: callback}
}

// InitiatePush starts an STK push for a booking.
func (h *PaymentHandler) InitiatePush(c *gin.Context) {
	var payload request.PushRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[payment][handler] push invalid payload err=%v", err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] push start booking_id=%s", payload.BookingID)

	created, err := h.push.InitiatePush(c.Request.Context(), payload.BookingID, payload.Phone, payload.Amount)
	if err != nil {
		log.Printf("[payment][handler] push failed booking_id=%s err=%v", payload.BookingID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] push success booking_id=%s checkout_request_id=%s", payload.BookingID, created.CheckoutRequestID)

	c.JSON(http.StatusOK, response.FromPush(created))
}

// HandleCallback receives the gateway's asynchronous outcome notification.
//
// The response is a success ack no matter what happens internally: the
// gateway retries indefinitely on anything else, and a handler that cannot
// succeed must not be retried against. All failures are log-only.
func (h *PaymentHandler) HandleCallback(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		log.Printf("[payment][callback] body read failed err=%v", err)
		c.JSON(http.StatusOK, response.AckSuccess())
		return
	}

	var payload request.STKCallbackRequest
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Printf("[payment][callback] payload unmarshal failed err=%v", err)
		c.JSON(http.StatusOK, response.AckSuccess())
		return
	}

	if err := h.callback.Reconcile(c.Request.Context(), payload.ToResult()); err != nil {
		log.Printf("[payment][callback] reconcile failed err=%v", err)
	}

	c.JSON(http.StatusOK, response.AckSuccess())
}

// GetPayment returns one payment by id (poll target for the booking UI).
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	id := c.Param("id")

	p, err := h.push.GetByID(c.Request.Context(), id)
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPayment(p))
}

// ListPaymentsByBooking returns every payment attempt for a booking.
func (h *PaymentHandler) ListPaymentsByBooking(c *gin.Context) {
	bookingID := c.Param("id")

	payments, err := h.push.ListByBookingID(c.Request.Context(), bookingID)
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPayments(payments))
}

func mapPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidBookingID),
		errors.Is(err, usecase.ErrInvalidPhone),
		errors.Is(err, usecase.ErrInvalidAmount),
		errors.Is(err, usecase.ErrInvalidPaymentID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrBookingNotFound):
		return pkg.NewDomainErrorSimple("BOOKING_NOT_FOUND", "Booking not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPushRejected):
		return pkg.NewDomainError("PUSH_REJECTED", "Payment request rejected by M-Pesa", err, http.StatusBadRequest)
	case errors.Is(err, interfaces.ErrGatewayAuth):
		return pkg.NewDomainError("GATEWAY_AUTH_FAILED", "Payment gateway authentication failed", err, http.StatusBadGateway)
	case errors.Is(err, interfaces.ErrGatewayUnavailable):
		return pkg.NewDomainError("GATEWAY_UNAVAILABLE", "Payment gateway unavailable, please retry", err, http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
