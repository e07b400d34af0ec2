// Package testutil holds helpers shared by package tests
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"bitwise74/social-api/db"
	"bitwise74/social-api/internal/store"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewDB returns a migrated in-memory SQLite database private to t
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	gdb, err := db.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)))
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// the in-memory database lives as long as this one connection
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	return gdb
}

// NewStore is NewDB wrapped in a gorm backed store
func NewStore(t *testing.T) *store.Store {
	t.Helper()
	return store.NewGorm(NewDB(t))
}
