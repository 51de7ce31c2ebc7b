package entities

import (
	"time"

	"github.com/google/uuid"
)

// Subscription links a user to a plan. SubscriptionID is the processor's id
// and is empty for free plans.
type Subscription struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"userId"`
	PlanID         uuid.UUID `json:"planId"`
	SubscriptionID string    `json:"subscriptionId"`
	Active         bool      `json:"active"`
	Plan           *Plan     `json:"plan,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// CreateSubscriptionInput starts a subscription
type CreateSubscriptionInput struct {
	PlanID        string `json:"planId" binding:"required,uuid"`
	PaymentMethod string `json:"paymentMethod"`
}

// AutoRenewInput toggles renewal at the end of the current period
type AutoRenewInput struct {
	SubscriptionID string `json:"subscriptionId" binding:"required"`
	Renew          *bool  `json:"renew" binding:"required"`
}

// SubscriptionResult reports the outcome of a create call
type SubscriptionResult struct {
	Message string
	User    *User
}
