package entities

import (
	"time"

	"github.com/google/uuid"
)

// GeoPoint is a GeoJSON point; Coordinates are [longitude, latitude]
type GeoPoint struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// NewGeoPoint builds a point from latitude and longitude
func NewGeoPoint(lat, lng float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: [2]float64{lng, lat}}
}

// Franchise is a physical location of a business
type Franchise struct {
	ID              uuid.UUID        `json:"id"`
	BusinessID      uuid.UUID        `json:"businessId"`
	UserID          uuid.UUID        `json:"userId"`
	PrimaryEmail    string           `json:"primaryEmail"`
	ReportingEmails []string         `json:"reportingEmail"`
	Address         string           `json:"address"`
	Location        GeoPoint         `json:"location"`
	OpeningHour     string           `json:"openingHour"`
	ClosingHour     string           `json:"closingHour"`
	Forms           []FormAttachment `json:"forms"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// FranchiseView is a franchise with its business populated
type FranchiseView struct {
	*Franchise
	Business *Business `json:"business,omitempty"`
}

// CreateFranchiseInput represents input for adding a location
type CreateFranchiseInput struct {
	BusinessID      string   `json:"businessId" binding:"required,uuid"`
	PrimaryEmail    string   `json:"primaryEmail" binding:"required,email"`
	ReportingEmails []string `json:"reportingEmail" binding:"omitempty,dive,email"`
	OpeningHour     string   `json:"openingHour" binding:"required,hhmm"`
	ClosingHour     string   `json:"closingHour" binding:"required,hhmm"`
	Address         string   `json:"address" binding:"required"`
}

// UpdateFranchiseInput represents a partial location update
type UpdateFranchiseInput struct {
	PrimaryEmail    *string  `json:"primaryEmail" binding:"omitempty,email"`
	ReportingEmails []string `json:"reportingEmail" binding:"omitempty,dive,email"`
	OpeningHour     *string  `json:"openingHour" binding:"omitempty,hhmm"`
	ClosingHour     *string  `json:"closingHour" binding:"omitempty,hhmm"`
	Address         *string  `json:"address"`
}
