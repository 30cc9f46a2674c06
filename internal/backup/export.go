package backup

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/tankobon/tankobon/internal/content"
	"github.com/tankobon/tankobon/internal/library"
)

// exportPageSize bounds how many records are held per store query.
const exportPageSize = 200

// Export writes every stored record to w as a backup document dated now.
func Export(ctx context.Context, store RecordStore, w io.Writer, now time.Time) error {
	codec := content.NewCodec()
	doc := &Document{
		SchemaVersion: SchemaVersion,
		Date:          now.UTC().Truncate(time.Second),
		Contents:      []map[string]any{},
	}

	for offset := 0; ; offset += exportPageSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		page, total, err := store.ListContent(library.ContentFilter{Limit: exportPageSize, Offset: offset})
		if err != nil {
			return fmt.Errorf("list contents: %w", err)
		}
		for _, r := range page {
			doc.Contents = append(doc.Contents, codec.Encode(r))
		}
		if len(page) == 0 || offset+len(page) >= total {
			break
		}
	}

	return doc.Write(w)
}
