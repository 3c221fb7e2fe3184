package payments

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventgear/internal/usecase/interfaces"
)

func testConfig() MpesaConfig {
	return MpesaConfig{
		ConsumerKey:    "key",
		ConsumerSecret: "secret",
		Shortcode:      "174379",
		Passkey:        "passkey",
		CallbackURL:    "https://example.com/api/payments/callback",
		Environment:    "sandbox",
	}
}

func newTestGateway(t *testing.T, handler http.Handler) (*MpesaGateway, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	g, err := NewMpesaGateway(testConfig())
	if err != nil {
		t.Fatalf("unexpected constructor error: %v", err)
	}
	g.baseURL = srv.URL
	g.client = srv.Client()
	g.nowFn = func() time.Time { return time.Date(2019, 12, 19, 10, 21, 15, 0, time.UTC) }
	return g, srv
}

func TestNewMpesaGateway(t *testing.T) {
	t.Run("missing credentials", func(t *testing.T) {
		_, err := NewMpesaGateway(MpesaConfig{})
		if !errors.Is(err, ErrMissingMpesaCredentials) {
			t.Fatalf("expected ErrMissingMpesaCredentials, got %v", err)
		}
	})

	t.Run("sandbox by default", func(t *testing.T) {
		g, err := NewMpesaGateway(testConfig())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if g.baseURL != sandboxBaseURL {
			t.Fatalf("expected sandbox base url, got %s", g.baseURL)
		}
	})

	t.Run("production environment", func(t *testing.T) {
		cfg := testConfig()
		cfg.Environment = "Production"
		g, err := NewMpesaGateway(cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if g.baseURL != productionBaseURL {
			t.Fatalf("expected production base url, got %s", g.baseURL)
		}
	})
}

func TestDarajaPassword(t *testing.T) {
	got := darajaPassword("174379", "passkey", "20191219102115")
	want := base64.StdEncoding.EncodeToString([]byte("174379passkey20191219102115"))
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestMpesaGateway_InitiateSTKPush(t *testing.T) {
	t.Run("accepted push", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/oauth/v1/generate", func(w http.ResponseWriter, r *http.Request) {
			wantBasic := "Basic " + base64.StdEncoding.EncodeToString([]byte("key:secret"))
			if r.Header.Get("Authorization") != wantBasic {
				t.Errorf("unexpected authorization header: %s", r.Header.Get("Authorization"))
			}
			if r.URL.Query().Get("grant_type") != "client_credentials" {
				t.Errorf("unexpected grant_type: %s", r.URL.Query().Get("grant_type"))
			}
			json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-1", "expires_in": "3599"})
		})
		mux.HandleFunc("/mpesa/stkpush/v1/processrequest", func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer tok-1" {
				t.Errorf("unexpected bearer header: %s", r.Header.Get("Authorization"))
			}
			var payload map[string]any
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				t.Errorf("invalid push payload: %v", err)
			}
			if payload["BusinessShortCode"] != "174379" {
				t.Errorf("unexpected shortcode: %v", payload["BusinessShortCode"])
			}
			if payload["Timestamp"] != "20191219102115" {
				t.Errorf("unexpected timestamp: %v", payload["Timestamp"])
			}
			if payload["Password"] != darajaPassword("174379", "passkey", "20191219102115") {
				t.Errorf("unexpected password: %v", payload["Password"])
			}
			if payload["TransactionType"] != "CustomerPayBillOnline" {
				t.Errorf("unexpected transaction type: %v", payload["TransactionType"])
			}
			if payload["Amount"] != float64(1500) {
				t.Errorf("unexpected amount: %v", payload["Amount"])
			}
			if payload["PhoneNumber"] != "254712345678" || payload["PartyA"] != "254712345678" {
				t.Errorf("phone not normalized: %v / %v", payload["PhoneNumber"], payload["PartyA"])
			}
			if payload["AccountReference"] != "bk-1" {
				t.Errorf("unexpected account reference: %v", payload["AccountReference"])
			}
			if payload["CallBackURL"] != "https://example.com/api/payments/callback" {
				t.Errorf("unexpected callback url: %v", payload["CallBackURL"])
			}
			json.NewEncoder(w).Encode(map[string]string{
				"ResponseCode":        "0",
				"ResponseDescription": "Success. Request accepted for processing",
				"CheckoutRequestID":   "ws_CO_1",
				"MerchantRequestID":   "mr-1",
			})
		})

		g, _ := newTestGateway(t, mux)
		res, err := g.InitiateSTKPush(context.Background(), "0712345678", 1500, "bk-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.Accepted || res.CheckoutRequestID != "ws_CO_1" || res.MerchantRequestID != "mr-1" {
			t.Fatalf("unexpected result: %+v", res)
		}
	})

	t.Run("rejected push", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/oauth/v1/generate", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-1"})
		})
		mux.HandleFunc("/mpesa/stkpush/v1/processrequest", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{
				"errorMessage": "Invalid PhoneNumber",
			})
		})

		g, _ := newTestGateway(t, mux)
		res, err := g.InitiateSTKPush(context.Background(), "0712345678", 1500, "bk-1")
		if err != nil {
			t.Fatalf("rejection must not be an error, got %v", err)
		}
		if res.Accepted {
			t.Fatalf("expected rejection, got %+v", res)
		}
		if res.ResponseDesc != "Invalid PhoneNumber" {
			t.Fatalf("expected errorMessage fallback, got %q", res.ResponseDesc)
		}
	})

	t.Run("token exchange rejected", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/oauth/v1/generate", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		g, _ := newTestGateway(t, mux)
		_, err := g.InitiateSTKPush(context.Background(), "0712345678", 1500, "bk-1")
		if !errors.Is(err, interfaces.ErrGatewayAuth) {
			t.Fatalf("expected ErrGatewayAuth, got %v", err)
		}
	})

	t.Run("empty access token", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/oauth/v1/generate", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{})
		})

		g, _ := newTestGateway(t, mux)
		_, err := g.InitiateSTKPush(context.Background(), "0712345678", 1500, "bk-1")
		if !errors.Is(err, interfaces.ErrGatewayAuth) {
			t.Fatalf("expected ErrGatewayAuth, got %v", err)
		}
	})

	t.Run("push endpoint server error", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/oauth/v1/generate", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-1"})
		})
		mux.HandleFunc("/mpesa/stkpush/v1/processrequest", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		g, _ := newTestGateway(t, mux)
		_, err := g.InitiateSTKPush(context.Background(), "0712345678", 1500, "bk-1")
		if !errors.Is(err, interfaces.ErrGatewayUnavailable) {
			t.Fatalf("expected ErrGatewayUnavailable, got %v", err)
		}
	})

	t.Run("push response not json", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/oauth/v1/generate", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-1"})
		})
		mux.HandleFunc("/mpesa/stkpush/v1/processrequest", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>gateway timeout</html>"))
		})

		g, _ := newTestGateway(t, mux)
		_, err := g.InitiateSTKPush(context.Background(), "0712345678", 1500, "bk-1")
		if !errors.Is(err, interfaces.ErrGatewayUnavailable) {
			t.Fatalf("expected ErrGatewayUnavailable, got %v", err)
		}
	})

	t.Run("transport failure", func(t *testing.T) {
		g, srv := newTestGateway(t, http.NewServeMux())
		srv.Close()

		_, err := g.InitiateSTKPush(context.Background(), "0712345678", 1500, "bk-1")
		if !errors.Is(err, interfaces.ErrGatewayAuth) {
			t.Fatalf("expected ErrGatewayAuth on token transport failure, got %v", err)
		}
	})
}
