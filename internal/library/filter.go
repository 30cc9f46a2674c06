// Package library persists content records (with their properties and tags)
// in SQLite.
package library

import "github.com/tankobon/tankobon/internal/content"

// ContentFilter specifies criteria for listing content.
type ContentFilter struct {
	SourceID      *string
	ExcludeSource *string
	ContentType   *content.Type
	Status        *content.Status
	Title         *string // exact match
	AdultContent  *bool
	Limit         int // 0 = no limit
	Offset        int
}
