package entities

import (
	"github.com/google/uuid"
)

// Category groups businesses; subcategories keep their insertion order
type Category struct {
	ID            uuid.UUID     `json:"id"`
	Name          string        `json:"name"`
	Subcategories []Subcategory `json:"subcategories"`
}

// Subcategory is a named child of a category
type Subcategory struct {
	ID         uuid.UUID `json:"id"`
	CategoryID uuid.UUID `json:"-"`
	Name       string    `json:"name"`
	Position   int       `json:"-"`
}

// FindSubcategory returns the subcategory with the given id
func (c *Category) FindSubcategory(id uuid.UUID) (*Subcategory, bool) {
	for i := range c.Subcategories {
		if c.Subcategories[i].ID == id {
			return &c.Subcategories[i], true
		}
	}
	return nil, false
}

// CreateCategoriesInput creates several categories at once
type CreateCategoriesInput struct {
	Categories []CategoryInput `json:"categories" binding:"required,min=1,dive"`
}

// CategoryInput describes one category with its subcategories
type CategoryInput struct {
	Name          string             `json:"name" binding:"required"`
	Subcategories []SubcategoryInput `json:"subcategories" binding:"dive"`
}

// SubcategoryInput describes one subcategory
type SubcategoryInput struct {
	Name string `json:"name" binding:"required"`
}
