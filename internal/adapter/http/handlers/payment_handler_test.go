package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventgear/internal/adapter/http/handlers/mocks"
	"eventgear/internal/domain/entities"
	"eventgear/internal/usecase"
	"eventgear/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newPaymentRouter(h *PaymentHandler) *gin.Engine {
	r := gin.New()
	r.POST("/api/payments/push", h.InitiatePush)
	r.POST("/api/payments/callback", h.HandleCallback)
	r.GET("/api/payments/:id", h.GetPayment)
	r.GET("/api/bookings/:id/payments", h.ListPaymentsByBooking)
	return r
}

func TestPaymentHandler_InitiatePush(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		push := mocks.NewMockIPaymentPushUseCase(ctrl)
		h := NewPaymentHandler(push, nil)
		r := newPaymentRouter(h)

		req := httptest.NewRequest(http.MethodPost, "/api/payments/push", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		push := mocks.NewMockIPaymentPushUseCase(ctrl)
		h := NewPaymentHandler(push, nil)
		r := newPaymentRouter(h)

		push.EXPECT().InitiatePush(gomock.Any(), "bk-1", "0712345678", 1500.0).Return(entities.Payment{
			ID:                "pay-1",
			BookingID:         "bk-1",
			CheckoutRequestID: "ws_CO_1",
			MerchantRequestID: "mr-1",
			Status:            entities.PaymentStatusPending,
		}, nil)

		body := `{"phone":"0712345678","amount":1500,"bookingId":"bk-1"}`
		req := httptest.NewRequest(http.MethodPost, "/api/payments/push", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
		}
		var resp map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response json: %v", err)
		}
		if resp["success"] != true {
			t.Fatalf("expected success true, got %v", resp["success"])
		}
		if resp["checkoutRequestId"] != "ws_CO_1" {
			t.Fatalf("expected checkoutRequestId ws_CO_1, got %v", resp["checkoutRequestId"])
		}
		if resp["merchantRequestId"] != "mr-1" {
			t.Fatalf("expected merchantRequestId mr-1, got %v", resp["merchantRequestId"])
		}
	})

	t.Run("error mapping", func(t *testing.T) {
		cases := []struct {
			name     string
			err      error
			wantCode int
			wantKey  string
		}{
			{name: "invalid phone", err: usecase.ErrInvalidPhone, wantCode: http.StatusBadRequest, wantKey: "INVALID_REQUEST"},
			{name: "booking not found", err: usecase.ErrBookingNotFound, wantCode: http.StatusNotFound, wantKey: "BOOKING_NOT_FOUND"},
			{name: "push rejected", err: usecase.ErrPushRejected, wantCode: http.StatusBadRequest, wantKey: "PUSH_REJECTED"},
			{name: "gateway auth", err: interfaces.ErrGatewayAuth, wantCode: http.StatusBadGateway, wantKey: "GATEWAY_AUTH_FAILED"},
			{name: "gateway unavailable", err: interfaces.ErrGatewayUnavailable, wantCode: http.StatusBadGateway, wantKey: "GATEWAY_UNAVAILABLE"},
			{name: "unexpected", err: errors.New("boom"), wantCode: http.StatusInternalServerError, wantKey: "INTERNAL_ERROR"},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()
				push := mocks.NewMockIPaymentPushUseCase(ctrl)
				h := NewPaymentHandler(push, nil)
				r := newPaymentRouter(h)

				push.EXPECT().InitiatePush(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(entities.Payment{}, tc.err)

				body := `{"phone":"0712345678","amount":1500,"bookingId":"bk-1"}`
				req := httptest.NewRequest(http.MethodPost, "/api/payments/push", bytes.NewBufferString(body))
				req.Header.Set("Content-Type", "application/json")
				w := httptest.NewRecorder()
				r.ServeHTTP(w, req)

				if w.Code != tc.wantCode {
					t.Fatalf("expected %d, got %d body=%s", tc.wantCode, w.Code, w.Body.String())
				}
				var resp map[string]any
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("invalid error json: %v", err)
				}
				if resp["success"] != false {
					t.Fatalf("expected success false, got %v", resp["success"])
				}
				if resp["code"] != tc.wantKey {
					t.Fatalf("expected code %s, got %v", tc.wantKey, resp["code"])
				}
			})
		}
	})
}

func TestPaymentHandler_HandleCallback(t *testing.T) {
	gin.SetMode(gin.TestMode)

	successEnvelope := `{
		"Body": {
			"stkCallback": {
				"MerchantRequestID": "mr-1",
				"CheckoutRequestID": "ws_CO_1",
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

	assertAck := func(t *testing.T, w *httptest.ResponseRecorder) {
		t.Helper()
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var ack map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &ack); err != nil {
			t.Fatalf("invalid ack json: %v", err)
		}
		if ack["ResultCode"] != float64(0) || ack["ResultDesc"] != "Success" {
			t.Fatalf("unexpected ack: %v", ack)
		}
	}

	t.Run("success callback is reconciled and acked", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		callback := mocks.NewMockIPaymentCallbackUseCase(ctrl)
		h := NewPaymentHandler(nil, callback)
		r := newPaymentRouter(h)

		callback.EXPECT().Reconcile(gomock.Any(), entities.CallbackResult{
			CheckoutRequestID: "ws_CO_1",
			ResultCode:        0,
			ResultDesc:        "The service request is processed successfully.",
			ReceiptNumber:     "NLJ7RT61SV",
			TransactionDate:   "20191219102115",
		}).Return(nil)

		req := httptest.NewRequest(http.MethodPost, "/api/payments/callback", bytes.NewBufferString(successEnvelope))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assertAck(t, w)
	})

	t.Run("malformed body is still acked", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		callback := mocks.NewMockIPaymentCallbackUseCase(ctrl)
		h := NewPaymentHandler(nil, callback)
		r := newPaymentRouter(h)

		req := httptest.NewRequest(http.MethodPost, "/api/payments/callback", bytes.NewBufferString("{not json"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assertAck(t, w)
	})

	t.Run("reconcile failure is still acked", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		callback := mocks.NewMockIPaymentCallbackUseCase(ctrl)
		h := NewPaymentHandler(nil, callback)
		r := newPaymentRouter(h)

		callback.EXPECT().Reconcile(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		req := httptest.NewRequest(http.MethodPost, "/api/payments/callback", bytes.NewBufferString(successEnvelope))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assertAck(t, w)
	})

	t.Run("failure callback carries result desc", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		callback := mocks.NewMockIPaymentCallbackUseCase(ctrl)
		h := NewPaymentHandler(nil, callback)
		r := newPaymentRouter(h)

		callback.EXPECT().Reconcile(gomock.Any(), entities.CallbackResult{
			CheckoutRequestID: "ws_CO_1",
			ResultCode:        1032,
			ResultDesc:        "Request cancelled by user",
		}).Return(nil)

		body := `{"Body":{"stkCallback":{"CheckoutRequestID":"ws_CO_1","ResultCode":1032,"ResultDesc":"Request cancelled by user"}}}`
		req := httptest.NewRequest(http.MethodPost, "/api/payments/callback", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assertAck(t, w)
	})
}

func TestPaymentHandler_GetPayment(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		push := mocks.NewMockIPaymentPushUseCase(ctrl)
		h := NewPaymentHandler(push, nil)
		r := newPaymentRouter(h)

		push.EXPECT().GetByID(gomock.Any(), "pay-1").Return(entities.Payment{
			ID:     "pay-1",
			Status: entities.PaymentStatusCompleted,
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/payments/pay-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var resp map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response json: %v", err)
		}
		if resp["status"] != string(entities.PaymentStatusCompleted) {
			t.Fatalf("expected completed status, got %v", resp["status"])
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		push := mocks.NewMockIPaymentPushUseCase(ctrl)
		h := NewPaymentHandler(push, nil)
		r := newPaymentRouter(h)

		push.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.Payment{}, usecase.ErrPaymentNotFound)

		req := httptest.NewRequest(http.MethodGet, "/api/payments/missing", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestPaymentHandler_ListPaymentsByBooking(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		push := mocks.NewMockIPaymentPushUseCase(ctrl)
		h := NewPaymentHandler(push, nil)
		r := newPaymentRouter(h)

		push.EXPECT().ListByBookingID(gomock.Any(), "bk-1").Return([]entities.Payment{
			{ID: "pay-1", BookingID: "bk-1"},
			{ID: "pay-2", BookingID: "bk-1"},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/bookings/bk-1/payments", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var resp []map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response json: %v", err)
		}
		if len(resp) != 2 {
			t.Fatalf("expected 2 payments, got %d", len(resp))
		}
	})

	t.Run("empty list marshals as array", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		push := mocks.NewMockIPaymentPushUseCase(ctrl)
		h := NewPaymentHandler(push, nil)
		r := newPaymentRouter(h)

		push.EXPECT().ListByBookingID(gomock.Any(), "bk-1").Return(nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/bookings/bk-1/payments", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if body := w.Body.String(); body != "[]" {
			t.Fatalf("expected empty array, got %s", body)
		}
	})
}
