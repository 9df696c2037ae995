package stripe

import (
	"context"
	"errors"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
	"github.com/stripe/stripe-go/v81/webhook"
)

type (
	Event         = stripe.Event
	PaymentIntent = stripe.PaymentIntent
)

const (
	EventPaymentSucceeded = stripe.EventTypePaymentIntentSucceeded
	EventPaymentFailed    = stripe.EventTypePaymentIntentPaymentFailed
)

// IntentInput describes the charge requested for one order.
type IntentInput struct {
	AmountMinor int64
	Currency    string
	Reference   string
	OrderID     string
	ShopperID   string
}

type Client interface {
	CreatePaymentIntent(ctx context.Context, in IntentInput) (*PaymentIntent, error)
	GetPaymentIntent(ctx context.Context, id string) (*PaymentIntent, error)
	VerifyWebhookSignature(payload []byte, signature string) (Event, error)
	Ping(ctx context.Context) error
}

type stripeClient struct {
	api           *client.API
	webhookSecret string
}

func NewStripeClient(apiKey string, webhookSecret string) Client {
	return NewStripeClientWithBackends(apiKey, webhookSecret, nil)
}

// NewStripeClientWithBackends lets callers point the client at a different API host.
func NewStripeClientWithBackends(apiKey string, webhookSecret string, backends *stripe.Backends) Client {
	api := &client.API{}
	api.Init(apiKey, backends)

	return &stripeClient{api: api, webhookSecret: webhookSecret}
}

// CreatePaymentIntent is idempotent per order: retries for the same order reuse the intent.
func (s *stripeClient) CreatePaymentIntent(ctx context.Context, in IntentInput) (*PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(in.AmountMinor),
		Currency:    stripe.String(in.Currency),
		Description: stripe.String(in.Reference),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}

	params.Context = ctx
	params.SetIdempotencyKey("checkout-" + in.OrderID)
	params.AddMetadata("order_id", in.OrderID)
	params.AddMetadata("reference", in.Reference)
	params.AddMetadata("shopper_id", in.ShopperID)

	return s.api.PaymentIntents.New(params)
}

func (s *stripeClient) GetPaymentIntent(ctx context.Context, id string) (*PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	return s.api.PaymentIntents.Get(id, params)
}

func (s *stripeClient) VerifyWebhookSignature(payload []byte, signature string) (Event, error) {
	if s.webhookSecret == "" {
		return Event{}, errors.New("webhook secret not configured")
	}

	return webhook.ConstructEvent(payload, signature, s.webhookSecret)
}

// Ping reads the account balance, which every valid key may do.
func (s *stripeClient) Ping(ctx context.Context) error {
	params := &stripe.BalanceParams{}
	params.Context = ctx

	_, err := s.api.Balance.Get(params)

	return err
}
