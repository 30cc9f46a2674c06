// internal/library/testutil_test.go
package library

import (
	"database/sql"
	"testing"

	"github.com/tankobon/tankobon/internal/content"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// ptr is a helper to create pointer to value
func ptr[T any](v T) *T {
	return &v
}

func testRecord(sourceID, contentID, title string) *content.Record {
	r := content.NewRecord()
	r.ID = content.DeriveID(sourceID, contentID)
	r.SourceID = sourceID
	r.ContentID = contentID
	r.Title = title
	return r
}
