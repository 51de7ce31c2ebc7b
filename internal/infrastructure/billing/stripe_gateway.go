package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"
	"keephy.backend/internal/domain/gateways"
	"keephy.backend/pkg/logger"
	"keephy.backend/pkg/metrics"
)

// StripeGateway implements gateways.BillingGateway against the Stripe API
type StripeGateway struct {
	api      *client.API
	currency string
}

// NewStripeGateway creates a gateway. A nil backend uses Stripe's default API
// backend with network retries disabled.
func NewStripeGateway(secretKey, currency string, backend stripe.Backend) *StripeGateway {
	if backend == nil {
		backend = stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
			MaxNetworkRetries: stripe.Int64(0),
		})
	}
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}
	api := client.New(secretKey, &stripe.Backends{API: backend, Connect: backend, Uploads: backend})
	return &StripeGateway{api: api, currency: currency}
}

func observe(ctx context.Context, operation string, err error) error {
	metrics.BillingCallsTotal.WithLabelValues(operation, metrics.Outcome(err)).Inc()
	if err != nil {
		logger.Warn(ctx, "billing call failed", zap.String("operation", operation), zap.Error(err))
		return fmt.Errorf("stripe %s: %w", operation, err)
	}
	return nil
}

// CreateCustomer creates a customer whose payment method, when given, becomes
// the default for invoices
func (g *StripeGateway) CreateCustomer(ctx context.Context, params gateways.CustomerParams) (string, error) {
	p := &stripe.CustomerParams{
		Email: stripe.String(params.Email),
		Name:  stripe.String(params.Name),
	}
	if params.PaymentMethod != "" {
		p.PaymentMethod = stripe.String(params.PaymentMethod)
		p.InvoiceSettings = &stripe.CustomerInvoiceSettingsParams{
			DefaultPaymentMethod: stripe.String(params.PaymentMethod),
		}
	}
	p.Context = ctx

	c, err := g.api.Customers.New(p)
	if err := observe(ctx, "create_customer", err); err != nil {
		return "", err
	}
	return c.ID, nil
}

// AttachSource saves a card token on the customer
func (g *StripeGateway) AttachSource(ctx context.Context, customerID, source string) error {
	p := &stripe.CustomerParams{Source: stripe.String(source)}
	p.Context = ctx
	_, err := g.api.Customers.Update(customerID, p)
	return observe(ctx, "attach_source", err)
}

func (g *StripeGateway) CreateSubscription(ctx context.Context, params gateways.SubscriptionParams) (*gateways.RemoteSubscription, error) {
	p := &stripe.SubscriptionParams{
		Customer: stripe.String(params.CustomerID),
		Items: []*stripe.SubscriptionItemsParams{
			{Price: stripe.String(params.PriceID)},
		},
	}
	p.Context = ctx
	if params.IdempotencyKey != "" {
		p.SetIdempotencyKey(params.IdempotencyKey)
	}

	s, err := g.api.Subscriptions.New(p)
	if err := observe(ctx, "create_subscription", err); err != nil {
		return nil, err
	}
	return &gateways.RemoteSubscription{
		ID:                 s.ID,
		CurrentPeriodStart: time.Unix(s.CurrentPeriodStart, 0).UTC(),
		CurrentPeriodEnd:   time.Unix(s.CurrentPeriodEnd, 0).UTC(),
	}, nil
}

func (g *StripeGateway) SetCancelAtPeriodEnd(ctx context.Context, subscriptionID string, cancel bool) error {
	p := &stripe.SubscriptionParams{CancelAtPeriodEnd: stripe.Bool(cancel)}
	p.Context = ctx
	_, err := g.api.Subscriptions.Update(subscriptionID, p)
	return observe(ctx, "set_cancel_at_period_end", err)
}

func (g *StripeGateway) CancelSubscription(ctx context.Context, subscriptionID string) error {
	p := &stripe.SubscriptionCancelParams{}
	p.Context = ctx
	_, err := g.api.Subscriptions.Cancel(subscriptionID, p)
	return observe(ctx, "cancel_subscription", err)
}

func (g *StripeGateway) CreateProduct(ctx context.Context, name string) (string, error) {
	p := &stripe.ProductParams{Name: stripe.String(name)}
	p.Context = ctx
	prod, err := g.api.Products.New(p)
	if err := observe(ctx, "create_product", err); err != nil {
		return "", err
	}
	return prod.ID, nil
}

func (g *StripeGateway) UpdateProduct(ctx context.Context, productID, name string) error {
	p := &stripe.ProductParams{Name: stripe.String(name)}
	p.Context = ctx
	_, err := g.api.Products.Update(productID, p)
	return observe(ctx, "update_product", err)
}

// CreatePrice creates a recurring price in the gateway currency
func (g *StripeGateway) CreatePrice(ctx context.Context, params gateways.PriceParams) (string, error) {
	interval := params.Interval
	if interval == "" {
		interval = string(stripe.PriceRecurringIntervalMonth)
	}
	count := int64(params.IntervalCount)
	if count < 1 {
		count = 1
	}
	p := &stripe.PriceParams{
		Product:    stripe.String(params.ProductID),
		UnitAmount: stripe.Int64(params.AmountCents),
		Currency:   stripe.String(g.currency),
		Recurring: &stripe.PriceRecurringParams{
			Interval:      stripe.String(interval),
			IntervalCount: stripe.Int64(count),
		},
	}
	p.Context = ctx
	price, err := g.api.Prices.New(p)
	if err := observe(ctx, "create_price", err); err != nil {
		return "", err
	}
	return price.ID, nil
}

// DeactivatePrice archives a price; Stripe prices cannot be deleted
func (g *StripeGateway) DeactivatePrice(ctx context.Context, priceID string) error {
	p := &stripe.PriceParams{Active: stripe.Bool(false)}
	p.Context = ctx
	_, err := g.api.Prices.Update(priceID, p)
	return observe(ctx, "deactivate_price", err)
}
