package entities

import "time"

// BookingStatus represents the rental booking lifecycle.
//
// Domain notes:
//   - A booking starts pending and is confirmed only by the payment
//     reconciliation pipeline once an M-Pesa payment completes.
//   - active/completed/cancelled are driven by back-office actions
//     (equipment handed over, returned, booking aborted).

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// BookingItem is one rental line item (equipment, quantity, unit price).
type BookingItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Booking is the event-rental booking persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id
//
// Monetary representation:
//   - TotalAmount is computed server-side from the line items.
type Booking struct {
	ID              string        `json:"id"`
	CustomerName    string        `json:"customer_name"`
	CustomerEmail   string        `json:"customer_email"`
	CustomerPhone   string        `json:"customer_phone"`
	CustomerAddress string        `json:"customer_address"`
	StartDate       string        `json:"start_date"`
	EndDate         string        `json:"end_date"`
	Items           []BookingItem `json:"items"`
	TotalAmount     float64       `json:"total_amount"`
	Status          BookingStatus `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}
