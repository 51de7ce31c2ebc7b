package billing

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	domainerrors "keephy.backend/internal/domain/errors"
	"keephy.backend/internal/domain/gateways"
)

// SandboxGateway is an in-memory processor used when no Stripe key is
// configured. Remote ids look like Stripe's so records stay realistic.
type SandboxGateway struct {
	mu            sync.Mutex
	now           func() time.Time
	customers     map[string][]string
	subscriptions map[string]*sandboxSubscription
	prices        map[string]bool
	idempotent    map[string]*gateways.RemoteSubscription
}

type sandboxSubscription struct {
	remote            gateways.RemoteSubscription
	cancelAtPeriodEnd bool
	canceled          bool
}

func NewSandboxGateway() *SandboxGateway {
	return &SandboxGateway{
		now:           time.Now,
		customers:     make(map[string][]string),
		subscriptions: make(map[string]*sandboxSubscription),
		prices:        make(map[string]bool),
		idempotent:    make(map[string]*gateways.RemoteSubscription),
	}
}

func sandboxID(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:24]
}

func (g *SandboxGateway) CreateCustomer(ctx context.Context, params gateways.CustomerParams) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := sandboxID("cus")
	g.customers[id] = nil
	return id, nil
}

func (g *SandboxGateway) AttachSource(ctx context.Context, customerID, source string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.customers[customerID]; !ok {
		return fmt.Errorf("no such customer: %s: %w", customerID, domainerrors.ErrUpstream)
	}
	g.customers[customerID] = append(g.customers[customerID], source)
	return nil
}

// CreateSubscription opens a one month period starting now. A repeated
// idempotency key returns the first result.
func (g *SandboxGateway) CreateSubscription(ctx context.Context, params gateways.SubscriptionParams) (*gateways.RemoteSubscription, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if params.IdempotencyKey != "" {
		if prev, ok := g.idempotent[params.IdempotencyKey]; ok {
			out := *prev
			return &out, nil
		}
	}
	if params.PriceID == "" {
		return nil, fmt.Errorf("price is required: %w", domainerrors.ErrUpstream)
	}
	start := g.now().UTC().Truncate(time.Second)
	sub := &sandboxSubscription{remote: gateways.RemoteSubscription{
		ID:                 sandboxID("sub"),
		CurrentPeriodStart: start,
		CurrentPeriodEnd:   start.AddDate(0, 1, 0),
	}}
	g.subscriptions[sub.remote.ID] = sub
	if params.IdempotencyKey != "" {
		g.idempotent[params.IdempotencyKey] = &sub.remote
	}
	out := sub.remote
	return &out, nil
}

func (g *SandboxGateway) SetCancelAtPeriodEnd(ctx context.Context, subscriptionID string, cancel bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	sub, ok := g.subscriptions[subscriptionID]
	if !ok || sub.canceled {
		return fmt.Errorf("no such subscription: %s: %w", subscriptionID, domainerrors.ErrUpstream)
	}
	sub.cancelAtPeriodEnd = cancel
	return nil
}

func (g *SandboxGateway) CancelSubscription(ctx context.Context, subscriptionID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	sub, ok := g.subscriptions[subscriptionID]
	if !ok || sub.canceled {
		return fmt.Errorf("no such subscription: %s: %w", subscriptionID, domainerrors.ErrUpstream)
	}
	sub.canceled = true
	return nil
}

func (g *SandboxGateway) CreateProduct(ctx context.Context, name string) (string, error) {
	return sandboxID("prod"), nil
}

func (g *SandboxGateway) UpdateProduct(ctx context.Context, productID, name string) error {
	return nil
}

func (g *SandboxGateway) CreatePrice(ctx context.Context, params gateways.PriceParams) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := sandboxID("price")
	g.prices[id] = true
	return id, nil
}

func (g *SandboxGateway) DeactivatePrice(ctx context.Context, priceID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prices[priceID] = false
	return nil
}

// CancelAtPeriodEnd reports the renewal flag of a sandbox subscription
func (g *SandboxGateway) CancelAtPeriodEnd(subscriptionID string) (bool, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	sub, ok := g.subscriptions[subscriptionID]
	if !ok {
		return false, false
	}
	return sub.cancelAtPeriodEnd, true
}
