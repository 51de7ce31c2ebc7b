package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name                  string     `gorm:"type:varchar(255)"`
	Email                 string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash          string     `gorm:"type:varchar(255)"`
	Role                  string     `gorm:"type:varchar(50);not null;default:'user'"`
	IsVerified            bool       `gorm:"not null;default:false"`
	OTPHash               *string    `gorm:"column:otp_hash;type:varchar(255)"`
	OTPExpiresAt          *time.Time `gorm:"column:otp_expires_at;index"`
	CustomerID            *string    `gorm:"type:varchar(255)"`
	IsSubscribed          bool       `gorm:"not null;default:false"`
	SubscriptionStartedAt *time.Time
	SubscriptionExpiresAt *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
