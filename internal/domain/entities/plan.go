package entities

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// PlanInterval is the billing period unit
type PlanInterval string

const (
	IntervalMonth PlanInterval = "month"
	IntervalYear  PlanInterval = "year"
)

// Plan is a subscription offering, mirrored to the payment processor unless free
type Plan struct {
	ID            uuid.UUID    `json:"id"`
	UserID        uuid.UUID    `json:"userId"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	Price         float64      `json:"price"`
	Interval      PlanInterval `json:"interval"`
	IntervalCount int          `json:"intervalCount"`
	Free          bool         `json:"free"`
	ProductID     null.String  `json:"productId"`
	PriceID       null.String  `json:"priceId"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// AmountCents returns the price in minor currency units
func (p *Plan) AmountCents() int64 {
	return int64(math.Round(p.Price * 100))
}

// CreatePlanInput represents input for adding a plan
type CreatePlanInput struct {
	Name          string       `json:"name" binding:"required"`
	Description   string       `json:"description" binding:"required"`
	Price         *float64     `json:"price" binding:"required,min=0"`
	Interval      PlanInterval `json:"interval" binding:"omitempty,oneof=month year"`
	IntervalCount int          `json:"intervalCount" binding:"omitempty,min=1"`
	Free          bool         `json:"free"`
}

// UpdatePlanInput represents a partial plan update
type UpdatePlanInput struct {
	Name          *string       `json:"name"`
	Description   string        `json:"description"`
	Price         *float64      `json:"price" binding:"omitempty,min=0"`
	Interval      *PlanInterval `json:"interval" binding:"omitempty,oneof=month year"`
	IntervalCount *int          `json:"intervalCount" binding:"omitempty,min=1"`
}
