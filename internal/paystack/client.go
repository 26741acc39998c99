package paystack

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

const (
	defaultBaseURL = "https://api.paystack.co"
	currency       = "NGN"

	// Paystack requires an email on mobile-money recipients; payouts are
	// initiated by the gateway, not the recipient, so a no-reply address is
	// used.
	mobileRecipientEmail = "noreply@marketdoctors.com"
)

// APIError is a non-2xx answer from Paystack, carrying the upstream message
// so the dashboard can show it verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("paystack returned %d: %s", e.StatusCode, e.Message)
}

// Client talks to the Paystack transfer API.
type Client struct {
	httpClient *resty.Client
}

// NewClient creates a Paystack client authenticated with the secret key.
// An empty baseURL selects the production API.
func NewClient(baseURL, secretKey string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetAuthToken(secretKey).
		SetHeader("Content-Type", "application/json")

	return &Client{httpClient: httpClient}
}

type envelope struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		RecipientCode string `json:"recipient_code"`
	} `json:"data"`
}

type recipientBody struct {
	Type          string `json:"type"`
	Name          string `json:"name"`
	AccountNumber string `json:"account_number,omitempty"`
	BankCode      string `json:"bank_code,omitempty"`
	Email         string `json:"email,omitempty"`
	MobileNumber  string `json:"mobile_number,omitempty"`
	Provider      string `json:"provider,omitempty"`
	Currency      string `json:"currency"`
}

type transferBody struct {
	Source    string `json:"source"`
	Amount    int64  `json:"amount"`
	Recipient string `json:"recipient"`
	Reason    string `json:"reason"`
}

// CreateRecipient registers a bank-account payout destination and returns
// its recipient code.
func (c *Client) CreateRecipient(ctx context.Context, name, accountNumber, bankCode string) (string, error) {
	body := recipientBody{
		Type:          "nuban",
		Name:          name,
		AccountNumber: accountNumber,
		BankCode:      bankCode,
		Currency:      currency,
	}
	return c.postRecipient(ctx, body)
}

// CreateMobileRecipient registers a mobile-money payout destination and
// returns its recipient code. The provider is currently fixed to MTN.
func (c *Client) CreateMobileRecipient(ctx context.Context, name, phone string) (string, error) {
	body := recipientBody{
		Type:         "mobile_money",
		Name:         name,
		Email:        mobileRecipientEmail,
		MobileNumber: phone,
		Provider:     "mtn",
		Currency:     currency,
	}
	return c.postRecipient(ctx, body)
}

func (c *Client) postRecipient(ctx context.Context, body recipientBody) (string, error) {
	var result envelope
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		SetError(&result).
		Post("/transferrecipient")
	if err != nil {
		return "", fmt.Errorf("failed to call paystack: %w", err)
	}

	if resp.IsError() {
		log.Warn().
			Int("status", resp.StatusCode()).
			Str("message", result.Message).
			Msg("Paystack rejected recipient creation")
		return "", &APIError{StatusCode: resp.StatusCode(), Message: orDefault(result.Message, "failed to create recipient")}
	}

	if result.Data.RecipientCode == "" {
		return "", fmt.Errorf("paystack returned no recipient code")
	}

	log.Info().
		Str("recipient_code", result.Data.RecipientCode).
		Str("type", body.Type).
		Msg("Created paystack transfer recipient")
	return result.Data.RecipientCode, nil
}

// Transfer moves amountMinor (in kobo) from the Paystack balance to the
// given recipient.
func (c *Client) Transfer(ctx context.Context, recipientCode string, amountMinor int64, reason string) error {
	body := transferBody{
		Source:    "balance",
		Amount:    amountMinor,
		Recipient: recipientCode,
		Reason:    reason,
	}

	var result envelope
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		SetError(&result).
		Post("/transfer")
	if err != nil {
		return fmt.Errorf("failed to call paystack: %w", err)
	}

	if resp.IsError() {
		log.Warn().
			Int("status", resp.StatusCode()).
			Str("message", result.Message).
			Str("recipient_code", recipientCode).
			Msg("Paystack rejected transfer")
		return &APIError{StatusCode: resp.StatusCode(), Message: orDefault(result.Message, "transfer failed")}
	}

	log.Info().
		Str("recipient_code", recipientCode).
		Int64("amount_minor", amountMinor).
		Msg("Paystack transfer initiated")
	return nil
}

func orDefault(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}
