package request

import (
	"encoding/json"
	"testing"
)

func TestSTKCallbackRequest_ToResult(t *testing.T) {
	raw := `{
		"Body": {
			"stkCallback": {
				"MerchantRequestID": "mr-1",
				"CheckoutRequestID": " ws_CO_1 ",
				"ResultCode": 0,
				"ResultDesc": "The service request is processed successfully.",
				"CallbackMetadata": {
					"Item": [
						{"Name": "Amount", "Value": 1500},
						{"Name": "MpesaReceiptNumber", "Value": "NLJ7RT61SV"},
						{"Name": "TransactionDate", "Value": 20191219102115},
						{"Name": "PhoneNumber", "Value": 254712345678}
					]
				}
			}
		}
	}`

	var req STKCallbackRequest
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	result := req.ToResult()
	if result.CheckoutRequestID != "ws_CO_1" {
		t.Fatalf("expected trimmed checkout id, got %q", result.CheckoutRequestID)
	}
	if result.ResultCode != 0 || !result.Succeeded() {
		t.Fatalf("expected success result, got %+v", result)
	}
	if result.ReceiptNumber != "NLJ7RT61SV" {
		t.Fatalf("expected receipt NLJ7RT61SV, got %q", result.ReceiptNumber)
	}
	if result.TransactionDate != "20191219102115" {
		t.Fatalf("expected numeric date rendered as string, got %q", result.TransactionDate)
	}
}

func TestSTKCallbackRequest_ToResult_Failure(t *testing.T) {
	raw := `{
		"Body": {
			"stkCallback": {
				"MerchantRequestID": "mr-1",
				"CheckoutRequestID": "ws_CO_1",
				"ResultCode": 1032,
				"ResultDesc": "Request cancelled by user"
			}
		}
	}`

	var req STKCallbackRequest
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	result := req.ToResult()
	if result.Succeeded() {
		t.Fatalf("result code 1032 must not be success")
	}
	if result.ResultDesc != "Request cancelled by user" {
		t.Fatalf("unexpected desc: %q", result.ResultDesc)
	}
	if result.ReceiptNumber != "" || result.TransactionDate != "" {
		t.Fatalf("failure callback must not carry metadata, got %+v", result)
	}
}

func TestMetadataValueString(t *testing.T) {
	if got := metadataValueString("NLJ7RT61SV"); got != "NLJ7RT61SV" {
		t.Fatalf("expected string passthrough, got %q", got)
	}
	if got := metadataValueString(float64(20191219102115)); got != "20191219102115" {
		t.Fatalf("expected whole-number formatting, got %q", got)
	}
	if got := metadataValueString(nil); got != "" {
		t.Fatalf("expected empty for nil, got %q", got)
	}
	if got := metadataValueString(true); got != "" {
		t.Fatalf("expected empty for unsupported type, got %q", got)
	}
}
