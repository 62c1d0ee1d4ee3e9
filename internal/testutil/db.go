// Package testutil holds helpers shared by package tests.
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"fix-manufacture-api/internal/client"
	"fix-manufacture-api/internal/config"

	"gorm.io/gorm"
)

// NewDB opens a migrated in-memory sqlite store private to the calling test.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := client.InitDBClient(config.Database{
		Driver: "sqlite",
		URL:    fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	})
	if err != nil {
		t.Fatalf("init test db: %v", err)
	}
	t.Cleanup(func() { client.CloseDBClient(db) })

	return db
}
