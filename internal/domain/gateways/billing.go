package gateways

import (
	"context"
	"time"
)

// CustomerParams creates a processor customer
type CustomerParams struct {
	Email         string
	Name          string
	PaymentMethod string
}

// SubscriptionParams creates a processor subscription
type SubscriptionParams struct {
	CustomerID     string
	PriceID        string
	IdempotencyKey string
}

// RemoteSubscription is the processor's view of a subscription
type RemoteSubscription struct {
	ID                 string
	CurrentPeriodStart time.Time
	CurrentPeriodEnd   time.Time
}

// PriceParams creates a recurring price
type PriceParams struct {
	ProductID     string
	AmountCents   int64
	Interval      string
	IntervalCount int
}

// BillingGateway is the payment processor
type BillingGateway interface {
	CreateCustomer(ctx context.Context, params CustomerParams) (string, error)
	AttachSource(ctx context.Context, customerID, source string) error
	CreateSubscription(ctx context.Context, params SubscriptionParams) (*RemoteSubscription, error)
	SetCancelAtPeriodEnd(ctx context.Context, subscriptionID string, cancel bool) error
	CancelSubscription(ctx context.Context, subscriptionID string) error
	CreateProduct(ctx context.Context, name string) (string, error)
	UpdateProduct(ctx context.Context, productID, name string) error
	CreatePrice(ctx context.Context, params PriceParams) (string, error)
	DeactivatePrice(ctx context.Context, priceID string) error
}
