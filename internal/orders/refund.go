package orders

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"

	"studio-admin/internal/logger"
	"studio-admin/internal/models"
)

var ErrStripeClientInitFailed = errors.New("failed to initialize Stripe client")

// StripeRefunder returns a canceled order's down payment through the
// payment intent the booking flow charged it on.
type StripeRefunder struct {
	client *client.API
	log    *logger.Logger
}

func NewStripeRefunder(secretKey string, log *logger.Logger) (*StripeRefunder, error) {
	if secretKey == "" {
		log.Error("STRIPE", "Stripe secret key not configured")
		return nil, ErrStripeClientInitFailed
	}

	sc := client.New(secretKey, nil)
	if sc == nil {
		log.Error("STRIPE", "Failed to initialize Stripe client")
		return nil, ErrStripeClientInitFailed
	}

	log.Info("STRIPE", "Stripe client initialized successfully")
	return &StripeRefunder{client: sc, log: log}, nil
}

func (s *StripeRefunder) RefundDownPayment(ctx context.Context, order models.Order) error {
	if order.PaymentIntentID == "" {
		return nil
	}

	// Fils, the KWD minor unit, is thousandths.
	amount := int64(math.Round(order.DownPayment * 1000))
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(order.PaymentIntentID),
		Amount:        stripe.Int64(amount),
		Reason:        stripe.String(string(stripe.RefundReasonRequestedByCustomer)),
	}
	params.Context = ctx

	refund, err := s.client.Refunds.New(params)
	if err != nil {
		s.log.Error("STRIPE", fmt.Sprintf("Refund failed for order %s: %v", order.ID, err))
		return err
	}

	s.log.Info("STRIPE", fmt.Sprintf("Refunded down payment for order %s (refund %s)", order.ID, refund.ID))
	return nil
}

// NoopRefunder is wired when Stripe is disabled. Down payments collected
// outside the gateway are settled manually by the studio.
type NoopRefunder struct {
	Log *logger.Logger
}

func (n *NoopRefunder) RefundDownPayment(ctx context.Context, order models.Order) error {
	if n.Log != nil && order.PaymentIntentID != "" {
		n.Log.Warn("STRIPE", fmt.Sprintf("Stripe disabled, skipping refund for order %s", order.ID))
	}
	return nil
}
