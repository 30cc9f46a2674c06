// Package backup reads, writes, imports and exports library backup documents.
package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"
)

// SchemaVersion is the newest document layout this package understands.
const SchemaVersion = 1

// ErrUnsupportedSchema indicates a document written by a newer version.
var ErrUnsupportedSchema = errors.New("unsupported backup schema version")

// Document is a backup envelope. Contents stay as raw keyed containers so a
// single bad entry does not prevent reading the rest.
type Document struct {
	SchemaVersion int              `json:"schemaVersion"`
	Date          time.Time        `json:"date"`
	Contents      []map[string]any `json:"contents"`
}

// Read parses a backup document. Numbers inside contents are kept as
// json.Number.
func Read(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read backup: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("parse backup: empty document")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse backup: %w", err)
	}

	if doc.SchemaVersion == 0 {
		doc.SchemaVersion = SchemaVersion
	}
	if doc.SchemaVersion > SchemaVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedSchema, doc.SchemaVersion)
	}
	if doc.Contents == nil {
		doc.Contents = []map[string]any{}
	}
	return &doc, nil
}

// Write encodes d as indented JSON.
func (d *Document) Write(w io.Writer) error {
	out := *d
	if out.SchemaVersion == 0 {
		out.SchemaVersion = SchemaVersion
	}
	if out.Contents == nil {
		out.Contents = []map[string]any{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	return nil
}
