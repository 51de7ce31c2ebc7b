package entities

import (
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Business is a tenant owned business profile
type Business struct {
	ID              uuid.UUID        `json:"id"`
	UserID          uuid.UUID        `json:"userId"`
	CategoryID      uuid.UUID        `json:"categoryId"`
	SubCategoryID   uuid.UUID        `json:"subCategoryId"`
	Name            string           `json:"name"`
	PrimaryEmail    string           `json:"primaryEmail"`
	ReportingEmails []string         `json:"reportingEmail"`
	Logo            null.String      `json:"logo"`
	Reviews         []uuid.UUID      `json:"reviews"`
	Forms           []FormAttachment `json:"forms"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// BusinessView is a business with its category resolved inline
type BusinessView struct {
	*Business
	Category    *Category    `json:"category,omitempty"`
	Subcategory *Subcategory `json:"subcategory,omitempty"`
}

// BusinessInput is the multipart form used to create a business
type BusinessInput struct {
	Name            string   `form:"name" binding:"required"`
	CategoryID      string   `form:"categoryId" binding:"required,uuid"`
	SubCategoryID   string   `form:"subCategoryId" binding:"required,uuid"`
	PrimaryEmail    string   `form:"primaryEmail" binding:"required,email"`
	ReportingEmails []string `form:"reportingEmail" binding:"omitempty,dive,email"`
}

// UpdateBusinessInput is the multipart form of a partial business update.
// Empty fields are left unchanged.
type UpdateBusinessInput struct {
	Name            string   `form:"name"`
	CategoryID      string   `form:"categoryId" binding:"omitempty,uuid"`
	SubCategoryID   string   `form:"subCategoryId" binding:"omitempty,uuid"`
	PrimaryEmail    string   `form:"primaryEmail" binding:"omitempty,email"`
	ReportingEmails []string `form:"reportingEmail" binding:"omitempty,dive,email"`
}

// Upload is a file received with a request
type Upload struct {
	Filename string
	Body     io.Reader
}

// ReviewInput submits a public review for one or more businesses.
// BusinessIDs accepts either a single id or an array.
type ReviewInput struct {
	Name        string      `json:"name" binding:"required"`
	Description string      `json:"description"`
	Rating      int         `json:"rating" binding:"required,min=1,max=5"`
	BusinessIDs StringOrSet `json:"businessIds" binding:"required,min=1"`
}

// Review is a public rating linked to one or more businesses
type Review struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Rating      int         `json:"rating"`
	BusinessIDs []uuid.UUID `json:"businessIds"`
	CreatedAt   time.Time   `json:"createdAt"`
}
