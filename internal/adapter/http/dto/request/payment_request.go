package request

import (
	"strconv"
	"strings"

	"eventgear/internal/domain/entities"
)

// PushRequest is the booking UI's payment initiation payload.
type PushRequest struct {
	Phone     string  `json:"phone"`
	Amount    float64 `json:"amount"`
	BookingID string  `json:"bookingId"`
}

// STKCallbackRequest is the Daraja callback envelope:
// {Body:{stkCallback:{CheckoutRequestID, ResultCode, ResultDesc, CallbackMetadata:{Item:[...]}}}}.
//
// CallbackMetadata is a name/value property bag in arbitrary order; it is
// flattened into entities.CallbackResult here and never exposed past this
// parsing boundary.
type STKCallbackRequest struct {
	Body struct {
		StkCallback struct {
			MerchantRequestID string `json:"MerchantRequestID"`
			CheckoutRequestID string `json:"CheckoutRequestID"`
			ResultCode        int    `json:"ResultCode"`
			ResultDesc        string `json:"ResultDesc"`
			CallbackMetadata  struct {
				Item []CallbackMetadataItem `json:"Item"`
			} `json:"CallbackMetadata"`
		} `json:"stkCallback"`
	} `json:"Body"`
}

type CallbackMetadataItem struct {
	Name  string `json:"Name"`
	Value any    `json:"Value"`
}

const (
	metadataKeyReceiptNumber   = "MpesaReceiptNumber"
	metadataKeyTransactionDate = "TransactionDate"
)

// ToResult flattens the envelope into the domain callback result, resolving
// the metadata entries by their fixed keys.
func (r STKCallbackRequest) ToResult() entities.CallbackResult {
	cb := r.Body.StkCallback
	result := entities.CallbackResult{
		CheckoutRequestID: strings.TrimSpace(cb.CheckoutRequestID),
		ResultCode:        cb.ResultCode,
		ResultDesc:        cb.ResultDesc,
	}
	for _, item := range cb.CallbackMetadata.Item {
		switch item.Name {
		case metadataKeyReceiptNumber:
			result.ReceiptNumber = metadataValueString(item.Value)
		case metadataKeyTransactionDate:
			result.TransactionDate = metadataValueString(item.Value)
		}
	}
	return result
}

// metadataValueString renders a metadata value as a string. TransactionDate
// arrives as the number 20191219102115, which is exact in a float64.
func metadataValueString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case nil:
		return ""
	default:
		return ""
	}
}
