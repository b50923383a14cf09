package booking

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// PaymentVerifier checks that an opaque payment reference is actually funded.
// The orchestrator stores the reference; it never implements charge logic.
type PaymentVerifier interface {
	Verify(ctx context.Context, paymentReference string) error
}

// StripeVerifier verifies a payment-intent reference against Stripe.
type StripeVerifier struct{}

// NewStripeVerifier configures the Stripe client. Returns nil when no key is
// set, which disables verification entirely.
func NewStripeVerifier(apiKey string) *StripeVerifier {
	if apiKey == "" {
		return nil
	}
	stripe.Key = apiKey
	return &StripeVerifier{}
}

// Verify retrieves the payment intent and checks it has been funded.
func (v *StripeVerifier) Verify(ctx context.Context, paymentReference string) error {
	pi, err := paymentintent.Get(paymentReference, nil)
	if err != nil {
		return fmt.Errorf("failed to retrieve payment intent: %w", err)
	}
	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded, stripe.PaymentIntentStatusRequiresCapture:
		return nil
	default:
		return fmt.Errorf("payment intent %s not funded (status %s)", paymentReference, pi.Status)
	}
}
