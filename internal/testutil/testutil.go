package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"catalog-api/internal/db"
)

var dbSeq atomic.Int64

// OpenTestDB opens a fresh in-memory SQLite store with the schema applied.
// The pool is pinned to one connection so every query sees the same database.
func OpenTestDB(t *testing.T) *db.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_foreign_keys=on", name, dbSeq.Add(1))
	d, err := db.Init(db.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	d.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = d.Close() })
	return d
}
