package payment

import (
	"net/http"
	"time"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/checkout/session"
)

// requestTimeout bounds the outbound call to Stripe so a stalled provider
// surfaces as an error instead of hanging the caller.
const requestTimeout = 30 * time.Second

// CheckoutParams describes one hosted checkout session for a one-time
// payment. Metadata is attached identically at the session level and at the
// payment-intent level so that downstream webhook events, which expose one
// object or the other, never have to branch on where the metadata lives.
type CheckoutParams struct {
	CustomerEmail      string
	ProductName        string
	ProductDescription string
	UnitAmount         int64 // minor currency units (USD cents)
	SuccessURL         string
	CancelURL          string
	Metadata           map[string]string
}

type CheckoutSession struct {
	ID  string
	URL string
}

type StripeService struct {
	client *session.Client
}

func NewStripeService(secretKey string) *StripeService {
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		HTTPClient: &http.Client{Timeout: requestTimeout},
	})
	return &StripeService{
		client: &session.Client{B: backend, Key: secretKey},
	}
}

func (s *StripeService) CreateCheckoutSession(p CheckoutParams) (*CheckoutSession, error) {
	sess, err := s.client.New(buildSessionParams(p))
	if err != nil {
		return nil, err
	}

	return &CheckoutSession{
		ID:  sess.ID,
		URL: sess.URL,
	}, nil
}

func buildSessionParams(p CheckoutParams) *stripe.CheckoutSessionParams {
	productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
		Name: stripe.String(p.ProductName),
	}
	if p.ProductDescription != "" {
		productData.Description = stripe.String(p.ProductDescription)
	}

	params := &stripe.CheckoutSessionParams{
		CustomerEmail: stripe.String(p.CustomerEmail),
		PaymentMethodTypes: stripe.StringSlice([]string{
			"card",
		}),
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:    stripe.String(string(stripe.CurrencyUSD)),
					ProductData: productData,
					UnitAmount:  stripe.Int64(p.UnitAmount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(p.SuccessURL),
		CancelURL:  stripe.String(p.CancelURL),
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			Metadata: make(map[string]string, len(p.Metadata)),
		},
	}

	for key, value := range p.Metadata {
		params.AddMetadata(key, value)
		params.PaymentIntentData.Metadata[key] = value
	}

	return params
}
