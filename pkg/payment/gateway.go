package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/Eursukkul/nexo-service/pkg/security"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Request struct {
	TransactionID uint
	Amount        decimal.Decimal
	Currency      string
	Description   string
	ReturnURL     string
}

type Session struct {
	Reference  string
	PaymentURL string
	Message    string
}

// Gateway issues hosted-payment sessions. No provider API is published, so
// every session is generated locally: MOCK- references when no API key is
// set, NXP- otherwise.
type Gateway struct {
	apiKey        string
	baseURL       string
	webhookSecret string
}

func NewGateway(apiKey, baseURL, webhookSecret string) *Gateway {
	return &Gateway{
		apiKey:        apiKey,
		baseURL:       strings.TrimRight(baseURL, "/"),
		webhookSecret: webhookSecret,
	}
}

func (g *Gateway) CreatePayment(ctx context.Context, req Request) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("payment amount must be positive, got %s", req.Amount)
	}

	prefix, message := "NXP", "Payment initiated"
	if g.apiKey == "" {
		prefix, message = "MOCK", "Payment initiated (mock mode)"
	}
	ref := fmt.Sprintf("%s-%s", prefix, strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:16]))

	return &Session{
		Reference:  ref,
		PaymentURL: g.baseURL + "/" + ref,
		Message:    message,
	}, nil
}

// SignaturePayload is the canonical byte string a webhook signature covers.
func SignaturePayload(transactionID uint, status, reference string) []byte {
	return []byte(fmt.Sprintf("%d:%s:%s", transactionID, status, reference))
}

// VerifyWebhook accepts everything when no secret is configured.
func (g *Gateway) VerifyWebhook(transactionID uint, status, reference, signature string) bool {
	if g.webhookSecret == "" {
		return true
	}
	if signature == "" {
		return false
	}
	return security.VerifyHMAC(g.webhookSecret, SignaturePayload(transactionID, status, reference), signature)
}
