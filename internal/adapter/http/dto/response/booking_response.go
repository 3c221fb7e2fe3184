package response

import (
	"eventgear/internal/domain/entities"
	"time"
)

type BookingItemResponse struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type BookingResponse struct {
	ID              string                `json:"id"`
	CustomerName    string                `json:"customer_name"`
	CustomerEmail   string                `json:"customer_email"`
	CustomerPhone   string                `json:"customer_phone"`
	CustomerAddress string                `json:"customer_address,omitempty"`
	StartDate       string                `json:"start_date"`
	EndDate         string                `json:"end_date"`
	Items           []BookingItemResponse `json:"items"`
	TotalAmount     float64               `json:"total_amount"`
	Status          string                `json:"status"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

func FromBooking(b entities.Booking) BookingResponse {
	items := make([]BookingItemResponse, 0, len(b.Items))
	for _, li := range b.Items {
		items = append(items, BookingItemResponse{
			Name:      li.Name,
			Quantity:  li.Quantity,
			UnitPrice: li.UnitPrice,
		})
	}
	return BookingResponse{
		ID:              b.ID,
		CustomerName:    b.CustomerName,
		CustomerEmail:   b.CustomerEmail,
		CustomerPhone:   b.CustomerPhone,
		CustomerAddress: b.CustomerAddress,
		StartDate:       b.StartDate,
		EndDate:         b.EndDate,
		Items:           items,
		TotalAmount:     b.TotalAmount,
		Status:          string(b.Status),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
