package models

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestTableNames(t *testing.T) {
	if got := (ReviewBusiness{}).TableName(); got != "review_businesses" {
		t.Fatalf("unexpected ReviewBusiness table name: %s", got)
	}
}

func TestAutoMigrate_SQLite(t *testing.T) {
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, AutoMigrate(db))
	for _, table := range []string{"users", "categories", "subcategories", "businesses", "franchises", "reviews", "review_businesses", "forms", "form_attachments", "form_submissions", "plans", "subscriptions"} {
		if !db.Migrator().HasTable(table) {
			t.Fatalf("expected table %s", table)
		}
	}
	if !db.Migrator().HasIndex(&FormAttachment{}, "idx_form_attachments_owner_form") {
		t.Fatal("expected owner/form unique index")
	}
}
