package models

import (
	"time"

	"github.com/google/uuid"
)

type Plan struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID `gorm:"type:uuid;index"`
	Name          string    `gorm:"type:varchar(255);not null"`
	Description   string    `gorm:"type:text"`
	Price         float64   `gorm:"type:decimal(10,2);not null;default:0"`
	Interval      string    `gorm:"type:varchar(10)"`
	IntervalCount int       `gorm:"not null;default:1"`
	Free          bool      `gorm:"not null;default:false"`
	ProductID     *string   `gorm:"type:varchar(255)"`
	PriceID       *string   `gorm:"type:varchar(255)"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Subscription struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index"`
	PlanID         uuid.UUID `gorm:"type:uuid;not null;index"`
	SubscriptionID string    `gorm:"type:varchar(255);index"`
	Active         bool      `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
