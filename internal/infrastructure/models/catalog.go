package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey"`
	Name          string        `gorm:"type:varchar(255);not null"`
	Subcategories []Subcategory `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

type Subcategory struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(255);not null"`
	Position   int       `gorm:"not null;default:0"`
}

type Business struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index"`
	CategoryID      uuid.UUID `gorm:"type:uuid;not null"`
	SubCategoryID   uuid.UUID `gorm:"type:uuid;not null"`
	Name            string    `gorm:"type:varchar(255);not null"`
	PrimaryEmail    string    `gorm:"type:varchar(255);not null"`
	ReportingEmails []string  `gorm:"type:text;serializer:json"`
	Logo            *string   `gorm:"type:varchar(512)"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

type Franchise struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	BusinessID      uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index"`
	PrimaryEmail    string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	ReportingEmails []string  `gorm:"type:text;serializer:json"`
	Address         string    `gorm:"type:text"`
	Latitude        float64
	Longitude       float64
	OpeningHour     string `gorm:"type:varchar(5)"`
	ClosingHour     string `gorm:"type:varchar(5)"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

type Review struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	Rating      int       `gorm:"not null"`
	CreatedAt   time.Time
}

type ReviewBusiness struct {
	ReviewID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	BusinessID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

func (ReviewBusiness) TableName() string {
	return "review_businesses"
}
