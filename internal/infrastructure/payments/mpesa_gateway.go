package payments

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"eventgear/internal/domain/entities"
	"eventgear/internal/usecase/interfaces"
)

var ErrMissingMpesaCredentials = errors.New("missing MPESA_CONSUMER_KEY/MPESA_CONSUMER_SECRET")

const (
	sandboxBaseURL    = "https://sandbox.safaricom.co.ke"
	productionBaseURL = "https://api.safaricom.co.ke"

	defaultShortcode = "174379"

	transactionType = "CustomerPayBillOnline"
	transactionDesc = "Event Equipment Rental"
)

// MpesaConfig carries the Daraja credentials and merchant parameters.
//
// Env vars: MPESA_CONSUMER_KEY, MPESA_CONSUMER_SECRET, MPESA_SHORTCODE,
// MPESA_PASSKEY, MPESA_CALLBACK_URL, MPESA_ENVIRONMENT (sandbox|production).
type MpesaConfig struct {
	ConsumerKey    string
	ConsumerSecret string
	Shortcode      string
	Passkey        string
	CallbackURL    string
	Environment    string
}

func NewMpesaConfigFromEnv() MpesaConfig {
	return MpesaConfig{
		ConsumerKey:    os.Getenv("MPESA_CONSUMER_KEY"),
		ConsumerSecret: os.Getenv("MPESA_CONSUMER_SECRET"),
		Shortcode:      getenvDefault("MPESA_SHORTCODE", defaultShortcode),
		Passkey:        os.Getenv("MPESA_PASSKEY"),
		CallbackURL:    os.Getenv("MPESA_CALLBACK_URL"),
		Environment:    getenvDefault("MPESA_ENVIRONMENT", "sandbox"),
	}
}

// MpesaGateway talks to the Daraja API: OAuth token exchange followed by the
// STK push submission. Tokens are short-lived and fetched per push; they are
// never persisted.

type MpesaGateway struct {
	cfg     MpesaConfig
	baseURL string
	client  *http.Client
	nowFn   func() time.Time
}

var _ interfaces.IPaymentGateway = (*MpesaGateway)(nil)

func NewMpesaGateway(cfg MpesaConfig) (*MpesaGateway, error) {
	if cfg.ConsumerKey == "" || cfg.ConsumerSecret == "" {
		log.Printf("[mpesa][gateway] missing consumer credentials")
		return nil, ErrMissingMpesaCredentials
	}

	baseURL := sandboxBaseURL
	if strings.EqualFold(strings.TrimSpace(cfg.Environment), "production") {
		baseURL = productionBaseURL
	}
	log.Printf("[mpesa][gateway] initialized env=%s shortcode=%s", cfg.Environment, cfg.Shortcode)

	return &MpesaGateway{
		cfg:     cfg,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		nowFn:   time.Now,
	}, nil
}

type stkPushPayload struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	Amount            int64  `json:"Amount"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}

type stkPushResponse struct {
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	MerchantRequestID   string `json:"MerchantRequestID"`
	ErrorMessage        string `json:"errorMessage"`
}

func (g *MpesaGateway) InitiateSTKPush(ctx context.Context, phone string, amount int64, bookingID string) (entities.STKPushResult, error) {
	token, err := g.getAccessToken(ctx)
	if err != nil {
		return entities.STKPushResult{}, err
	}

	timestamp := g.nowFn().Format("20060102150405")
	msisdn := entities.NormalizeMSISDN(phone)
	payload := stkPushPayload{
		BusinessShortCode: g.cfg.Shortcode,
		Password:          darajaPassword(g.cfg.Shortcode, g.cfg.Passkey, timestamp),
		Timestamp:         timestamp,
		TransactionType:   transactionType,
		Amount:            amount,
		PartyA:            msisdn,
		PartyB:            g.cfg.Shortcode,
		PhoneNumber:       msisdn,
		CallBackURL:       g.cfg.CallbackURL,
		AccountReference:  bookingID,
		TransactionDesc:   transactionDesc,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return entities.STKPushResult{}, err
	}

	log.Printf("[mpesa][gateway] push submit booking_id=%s amount=%d phone=%s", bookingID, amount, msisdn)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/mpesa/stkpush/v1/processrequest", bytes.NewReader(body))
	if err != nil {
		return entities.STKPushResult{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		log.Printf("[mpesa][gateway] push transport failed booking_id=%s err=%v", bookingID, err)
		return entities.STKPushResult{}, fmt.Errorf("%w: %v", interfaces.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return entities.STKPushResult{}, fmt.Errorf("%w: %v", interfaces.ErrGatewayUnavailable, err)
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		log.Printf("[mpesa][gateway] push server error booking_id=%s status=%d", bookingID, resp.StatusCode)
		return entities.STKPushResult{}, fmt.Errorf("%w: status %d", interfaces.ErrGatewayUnavailable, resp.StatusCode)
	}

	var out stkPushResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		log.Printf("[mpesa][gateway] push response unmarshal failed booking_id=%s err=%v", bookingID, err)
		return entities.STKPushResult{}, fmt.Errorf("%w: %v", interfaces.ErrGatewayUnavailable, err)
	}

	result := entities.STKPushResult{
		Accepted:          out.ResponseCode == "0",
		CheckoutRequestID: out.CheckoutRequestID,
		MerchantRequestID: out.MerchantRequestID,
		ResponseCode:      out.ResponseCode,
		ResponseDesc:      out.ResponseDescription,
	}
	if !result.Accepted && result.ResponseDesc == "" {
		result.ResponseDesc = out.ErrorMessage
	}
	log.Printf("[mpesa][gateway] push result booking_id=%s accepted=%t checkout_request_id=%s", bookingID, result.Accepted, result.CheckoutRequestID)
	return result, nil
}

func (g *MpesaGateway) getAccessToken(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/oauth/v1/generate?grant_type=client_credentials", nil)
	if err != nil {
		return "", err
	}
	basic := base64.StdEncoding.EncodeToString([]byte(g.cfg.ConsumerKey + ":" + g.cfg.ConsumerSecret))
	req.Header.Set("Authorization", "Basic "+basic)

	resp, err := g.client.Do(req)
	if err != nil {
		log.Printf("[mpesa][gateway] token transport failed err=%v", err)
		return "", fmt.Errorf("%w: %v", interfaces.ErrGatewayAuth, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[mpesa][gateway] token exchange rejected status=%d", resp.StatusCode)
		return "", fmt.Errorf("%w: status %d", interfaces.ErrGatewayAuth, resp.StatusCode)
	}

	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: %v", interfaces.ErrGatewayAuth, err)
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access_token", interfaces.ErrGatewayAuth)
	}
	return out.AccessToken, nil
}

// darajaPassword computes the gateway-mandated STK password:
// base64(shortcode + passkey + timestamp), timestamp in YYYYMMDDHHmmss.
func darajaPassword(shortcode, passkey, timestamp string) string {
	return base64.StdEncoding.EncodeToString([]byte(shortcode + passkey + timestamp))
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
