package entities

import "strings"

const kenyaCountryCode = "254"

// NormalizeMSISDN strips non-digits and converts national-format numbers to
// international format (0712... and 712... both become 254712...).
func NormalizeMSISDN(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()

	switch {
	case strings.HasPrefix(cleaned, "0"):
		return kenyaCountryCode + cleaned[1:]
	case strings.HasPrefix(cleaned, "7"):
		return kenyaCountryCode + cleaned
	}
	return cleaned
}

// STKPushResult is the gateway's synchronous answer to a push submission.
//
// Accepted mirrors ResponseCode == "0". A rejected push carries the gateway's
// code/description so the caller can surface them; no payment row may be
// created for a rejected push.
type STKPushResult struct {
	Accepted          bool
	CheckoutRequestID string
	MerchantRequestID string
	ResponseCode      string
	ResponseDesc      string
}

// CallbackResult is the parsed outcome of an STK callback, produced at the
// HTTP parsing boundary. The gateway's name/value metadata list is flattened
// here and never exposed further in.
type CallbackResult struct {
	CheckoutRequestID string
	ResultCode        int
	ResultDesc        string
	ReceiptNumber     string
	TransactionDate   string
}

// Succeeded reports whether the gateway settled the payment.
func (r CallbackResult) Succeeded() bool { return r.ResultCode == 0 }
