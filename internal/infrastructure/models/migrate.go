package models

import "gorm.io/gorm"

// All lists every persisted model in dependency order
func All() []interface{} {
	return []interface{}{
		&User{},
		&Category{},
		&Subcategory{},
		&Business{},
		&Franchise{},
		&Review{},
		&ReviewBusiness{},
		&Form{},
		&FormAttachment{},
		&FormSubmission{},
		&Plan{},
		&Subscription{},
	}
}

// AutoMigrate creates or updates the schema for every model
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(All()...)
}
