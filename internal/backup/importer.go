package backup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tankobon/tankobon/internal/content"
	"golang.org/x/sync/errgroup"
)

// ErrMissingID indicates a decoded record has no id and derivation is off.
var ErrMissingID = errors.New("content has no id")

// Options controls how an Importer treats the entries of a document.
type Options struct {
	Workers     int  // concurrent decoders; values below 1 mean 1
	SkipInvalid bool // skip entries that fail to decode instead of aborting
	DeriveIDs   bool // fill an absent id from sourceId and contentId
}

// Skip records an entry left out of an import.
type Skip struct {
	Index int // position in Document.Contents
	Err   error
}

// Result is the outcome of an import.
type Result struct {
	Records []*content.Record // saved records, in document order
	Skipped []Skip
}

// Importer decodes backup documents and saves them to a RecordStore.
type Importer struct {
	codec *content.Codec
	store RecordStore
	opts  Options
	log   *slog.Logger
}

// NewImporter creates an importer. A nil codec uses content.NewCodec and a
// nil logger uses slog.Default.
func NewImporter(codec *content.Codec, store RecordStore, opts Options, log *slog.Logger) *Importer {
	if codec == nil {
		codec = content.NewCodec()
	}
	if log == nil {
		log = slog.Default()
	}
	opts.Workers = max(opts.Workers, 1)
	return &Importer{
		codec: codec,
		store: store,
		opts:  opts,
		log:   log.With("component", "importer"),
	}
}

// Import decodes every entry of doc and saves the valid ones in a single
// batch. Per-entry decode failures are skipped when SkipInvalid is set;
// any other failure aborts before anything is saved.
//
// Skipping covers decoding only. The save is all or nothing: an entry the
// store rejects, such as one whose sourceId and contentId are already stored
// under a different id (library.ErrDuplicate), fails the whole import and
// nothing from doc is saved.
func (i *Importer) Import(ctx context.Context, doc *Document) (*Result, error) {
	i.log.Info("import started", "contents", len(doc.Contents), "workers", i.opts.Workers)

	records := make([]*content.Record, len(doc.Contents))
	errs := make([]error, len(doc.Contents))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(i.opts.Workers)
	for idx, payload := range doc.Contents {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := i.decode(payload)
			if err == nil {
				records[idx] = r
				return nil
			}
			if i.opts.SkipInvalid && isSkippable(err) {
				errs[idx] = err
				return nil
			}
			return fmt.Errorf("decode content %d: %w", idx, err)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{Records: make([]*content.Record, 0, len(records))}
	for idx, r := range records {
		if errs[idx] != nil {
			i.log.Warn("skipping content", "index", idx, "error", errs[idx])
			result.Skipped = append(result.Skipped, Skip{Index: idx, Err: errs[idx]})
			continue
		}
		result.Records = append(result.Records, r)
	}

	if len(result.Records) > 0 {
		if err := i.store.SaveContents(result.Records); err != nil {
			return nil, fmt.Errorf("save contents: %w", err)
		}
	}

	i.log.Info("import complete", "imported", len(result.Records), "skipped", len(result.Skipped))
	return result, nil
}

func (i *Importer) decode(payload map[string]any) (*content.Record, error) {
	r, err := i.codec.Decode(payload)
	if err != nil {
		return nil, err
	}
	if r.ID == "" {
		if !i.opts.DeriveIDs {
			return nil, fmt.Errorf("%s %q: %w", r.SourceID, r.ContentID, ErrMissingID)
		}
		r.ID = content.DeriveID(r.SourceID, r.ContentID)
	}
	return r, nil
}

func isSkippable(err error) bool {
	return content.IsRecordError(err) || errors.Is(err, ErrMissingID)
}
