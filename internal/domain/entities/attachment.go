package entities

import (
	"time"

	"github.com/google/uuid"
)

// OwnerType identifies the kind of record a form is attached to
type OwnerType string

const (
	OwnerBusiness OwnerType = "business"
	OwnerLocation OwnerType = "location"
)

// Valid reports whether the owner type is known
func (o OwnerType) Valid() bool {
	return o == OwnerBusiness || o == OwnerLocation
}

// FormAttachment binds a form to a business or location under a public code.
// At most one attachment per owner is active.
type FormAttachment struct {
	ID        uuid.UUID `json:"id"`
	OwnerType OwnerType `json:"-"`
	OwnerID   uuid.UUID `json:"-"`
	FormID    uuid.UUID `json:"formId"`
	Code      string    `json:"code"`
	IsActive  bool      `json:"isActive"`
	Position  int       `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// AttachFormsInput lists forms to attach to an owner
type AttachFormsInput struct {
	FormIDs []string `json:"formIds" binding:"required,min=1,dive,uuid"`
}

// ResolvedForm is the public view of a form reached through its attachment code
type ResolvedForm struct {
	Form       *Form     `json:"form"`
	ModuleName OwnerType `json:"moduleName"`
	ModuleID   uuid.UUID `json:"moduleId"`
	Code       string    `json:"code"`
}

// AttachedForm is a form annotated with its attachment state on one owner
type AttachedForm struct {
	*Form
	IsActive bool   `json:"isActive"`
	Code     string `json:"code"`
}
