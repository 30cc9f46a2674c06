package backup

import (
	"github.com/tankobon/tankobon/internal/content"
	"github.com/tankobon/tankobon/internal/library"
)

//go:generate mockgen -destination=mocks/store.go -package=mocks . RecordStore

// RecordStore is the part of the library store used by import and export.
type RecordStore interface {
	SaveContents(records []*content.Record) error
	ListContent(f library.ContentFilter) ([]*content.Record, int, error)
}

var _ RecordStore = (*library.Store)(nil)
