package request

import (
	"eventgear/internal/domain/entities"
	"eventgear/internal/usecase"
)

type BookingItemRequest struct {
	Name      string  `json:"name" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required"`
	UnitPrice float64 `json:"unit_price" binding:"required"`
}

// BookingCreateRequest is the checkout page's booking payload. The total is
// never taken from the client; it is recomputed from the items.
type BookingCreateRequest struct {
	CustomerName    string               `json:"customer_name" binding:"required"`
	CustomerEmail   string               `json:"customer_email"`
	CustomerPhone   string               `json:"customer_phone" binding:"required"`
	CustomerAddress string               `json:"customer_address"`
	StartDate       string               `json:"start_date" binding:"required"`
	EndDate         string               `json:"end_date" binding:"required"`
	Items           []BookingItemRequest `json:"items" binding:"required"`
}

func (r BookingCreateRequest) ToInput() usecase.NewBookingInput {
	items := make([]entities.BookingItem, 0, len(r.Items))
	for _, li := range r.Items {
		items = append(items, entities.BookingItem{
			Name:      li.Name,
			Quantity:  li.Quantity,
			UnitPrice: li.UnitPrice,
		})
	}
	return usecase.NewBookingInput{
		CustomerName:    r.CustomerName,
		CustomerEmail:   r.CustomerEmail,
		CustomerPhone:   r.CustomerPhone,
		CustomerAddress: r.CustomerAddress,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		Items:           items,
	}
}
