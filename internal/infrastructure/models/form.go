package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"keephy.backend/internal/domain/entities"
)

type Form struct {
	ID        uuid.UUID           `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID           `gorm:"type:uuid;not null;index"`
	Name      string              `gorm:"type:varchar(255);not null"`
	Questions []entities.Question `gorm:"type:text;serializer:json"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// FormAttachment has no partial unique index on is_active: activation flips
// every row of an owner in one UPDATE, which a non-deferrable index would reject mid-statement.
type FormAttachment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerType string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_form_attachments_owner_form,priority:1"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_form_attachments_owner_form,priority:2"`
	FormID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_form_attachments_owner_form,priority:3;index"`
	Code      string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	IsActive  bool      `gorm:"not null;default:false"`
	Position  int       `gorm:"not null;default:0"`
	CreatedAt time.Time
}

type FormSubmission struct {
	ID         uuid.UUID         `gorm:"type:uuid;primaryKey"`
	ModuleName string            `gorm:"type:varchar(20);not null"`
	ModuleID   uuid.UUID         `gorm:"type:uuid;not null;index"`
	Code       string            `gorm:"type:varchar(64);not null"`
	FormID     uuid.UUID         `gorm:"type:uuid;not null;index"`
	Answers    []entities.Answer `gorm:"type:text;serializer:json"`
	Email      string            `gorm:"type:varchar(255);not null"`
	Phone      string            `gorm:"type:varchar(32);not null"`
	CreatedAt  time.Time
}
