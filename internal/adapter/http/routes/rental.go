package routes

import (
	"eventgear/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathBookings = "/bookings"
	PathPayments = "/payments"
)

func addRentalRoutes(rg *gin.RouterGroup, bookingHandler *handlers.BookingHandler, paymentHandler *handlers.PaymentHandler) {
	bookings := rg.Group(PathBookings)
	{
		bookings.POST("", bookingHandler.CreateBooking)
		bookings.GET("/:id", bookingHandler.GetBooking)
		bookings.GET("/:id/payments", paymentHandler.ListPaymentsByBooking)
		bookings.PATCH("/:id/activate", bookingHandler.ActivateBooking)
		bookings.PATCH("/:id/complete", bookingHandler.CompleteBooking)
		bookings.PATCH("/:id/cancel", bookingHandler.CancelBooking)
	}

	payments := rg.Group(PathPayments)
	{
		payments.POST("/push", paymentHandler.InitiatePush)
		// The gateway acknowledges nothing but {ResultCode:0}; see HandleCallback.
		payments.POST("/callback", paymentHandler.HandleCallback)
		payments.GET("/:id", paymentHandler.GetPayment)
	}
}
