package library

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tankobon/tankobon/internal/content"
)

const contentColumns = `id, source_id, content_id, title, additional_titles, cover, additional_covers,
	creators, status, summary, adult_content, web_url, reading_mode, content_type, tracker_info,
	acquisition_link, streamable`

// mapSQLiteError converts SQLite errors to custom error types.
func mapSQLiteError(err error) error {
	if err == nil {
		return nil
	}
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	// modernc.org/sqlite wraps errors; check error message for constraint violations
	errStr := err.Error()
	if strings.Contains(errStr, "UNIQUE constraint failed") ||
		strings.Contains(errStr, "PRIMARY KEY constraint failed") {
		return ErrDuplicate
	}
	if strings.Contains(errStr, "FOREIGN KEY constraint failed") ||
		strings.Contains(errStr, "CHECK constraint failed") {
		return ErrConstraint
	}
	return err
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanContent(s rowScanner) (*content.Record, error) {
	r := content.NewRecord()
	var (
		titles, covers, creators, tracker string
		status, mode, kind                int
	)
	err := s.Scan(&r.ID, &r.SourceID, &r.ContentID, &r.Title, &titles, &r.Cover, &covers,
		&creators, &status, &r.Summary, &r.AdultContent, &r.WebURL, &mode, &kind, &tracker,
		&r.AcquisitionLink, &r.Streamable)
	if err != nil {
		return nil, err
	}
	r.Status = content.ParseStatus(status)
	r.RecommendedReadingMode = content.ParseReadingMode(mode)
	r.ContentType = content.ParseType(kind)

	lists := []struct {
		column string
		raw    string
		dst    *[]string
	}{
		{"additional_titles", titles, &r.AdditionalTitles},
		{"additional_covers", covers, &r.AdditionalCovers},
		{"creators", creators, &r.Creators},
	}
	for _, l := range lists {
		if err := json.Unmarshal([]byte(l.raw), l.dst); err != nil {
			return nil, fmt.Errorf("decode %s of %q: %w", l.column, r.ID, err)
		}
	}
	if err := json.Unmarshal([]byte(tracker), &r.TrackerInfo); err != nil {
		return nil, fmt.Errorf("decode tracker_info of %q: %w", r.ID, err)
	}
	// JSON null would leave nil behind; records never carry nil sequences.
	if r.AdditionalTitles == nil {
		r.AdditionalTitles = []string{}
	}
	if r.AdditionalCovers == nil {
		r.AdditionalCovers = []string{}
	}
	if r.Creators == nil {
		r.Creators = []string{}
	}
	if r.TrackerInfo == nil {
		r.TrackerInfo = map[string]string{}
	}
	return r, nil
}

func marshalList(v []string) (string, error) {
	if v == nil {
		v = []string{}
	}
	b, err := json.Marshal(v)
	return string(b), err
}

func saveContent(q querier, r *content.Record) error {
	if r.ID == "" {
		return fmt.Errorf("save content %s/%s: %w", r.SourceID, r.ContentID, ErrMissingID)
	}

	titles, err := marshalList(r.AdditionalTitles)
	if err != nil {
		return fmt.Errorf("encode additional titles: %w", err)
	}
	covers, err := marshalList(r.AdditionalCovers)
	if err != nil {
		return fmt.Errorf("encode additional covers: %w", err)
	}
	creators, err := marshalList(r.Creators)
	if err != nil {
		return fmt.Errorf("encode creators: %w", err)
	}
	info := r.TrackerInfo
	if info == nil {
		info = map[string]string{}
	}
	tracker, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("encode tracker info: %w", err)
	}

	_, err = q.Exec(`
		INSERT INTO content (`+contentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			source_id = excluded.source_id, content_id = excluded.content_id, title = excluded.title,
			additional_titles = excluded.additional_titles, cover = excluded.cover,
			additional_covers = excluded.additional_covers, creators = excluded.creators,
			status = excluded.status, summary = excluded.summary, adult_content = excluded.adult_content,
			web_url = excluded.web_url, reading_mode = excluded.reading_mode,
			content_type = excluded.content_type, tracker_info = excluded.tracker_info,
			acquisition_link = excluded.acquisition_link, streamable = excluded.streamable`,
		r.ID, r.SourceID, r.ContentID, r.Title, titles, r.Cover, covers,
		creators, int(r.Status), r.Summary, r.AdultContent, r.WebURL, int(r.RecommendedReadingMode),
		int(r.ContentType), string(tracker), r.AcquisitionLink, r.Streamable,
	)
	if err != nil {
		return fmt.Errorf("upsert content %q: %w", r.ID, mapSQLiteError(err))
	}

	if err := deleteProperties(q, r.ID); err != nil {
		return err
	}
	for i, p := range r.Properties {
		if _, err := q.Exec(`INSERT INTO content_property (content_pk, position, id, label) VALUES (?, ?, ?, ?)`,
			r.ID, i, p.ID, p.Label); err != nil {
			return fmt.Errorf("insert property %q of %q: %w", p.ID, r.ID, mapSQLiteError(err))
		}
		for j, t := range p.Tags {
			if _, err := q.Exec(`
				INSERT INTO content_tag (content_pk, property_position, position, id, label, adult_content)
				VALUES (?, ?, ?, ?, ?, ?)`,
				r.ID, i, j, t.ID, t.Label, t.AdultContent); err != nil {
				return fmt.Errorf("insert tag %q of %q: %w", t.ID, r.ID, mapSQLiteError(err))
			}
		}
	}
	return nil
}

// SaveContent inserts or replaces a record, including its properties and tags.
// Returns ErrMissingID if the record has no id and ErrDuplicate if another
// record already holds the same source and content id.
func (s *Store) SaveContent(r *content.Record) error {
	return s.SaveContents([]*content.Record{r})
}

// SaveContent inserts or replaces a record within a transaction.
func (t *Tx) SaveContent(r *content.Record) error { return saveContent(t.tx, r) }

// SaveContents saves every record in a single transaction.
func (s *Store) SaveContents(records []*content.Record) error {
	tx, err := s.Begin()
	if err != nil {
		return err
	}
	for _, r := range records {
		if err := tx.SaveContent(r); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func loadProperties(q querier, id string) ([]content.Property, error) {
	rows, err := q.Query(`
		SELECT p.position, p.id, p.label, t.id, t.label, t.adult_content
		FROM content_property p
		LEFT JOIN content_tag t ON t.content_pk = p.content_pk AND t.property_position = p.position
		WHERE p.content_pk = ?
		ORDER BY p.position, t.position`, id)
	if err != nil {
		return nil, fmt.Errorf("list properties of %q: %w", id, err)
	}
	defer func() { _ = rows.Close() }()

	props := []content.Property{}
	last := -1
	for rows.Next() {
		var (
			pos         int
			pid, plabel string
			tid, tlabel sql.NullString
			tagAdult    sql.NullBool
		)
		if err := rows.Scan(&pos, &pid, &plabel, &tid, &tlabel, &tagAdult); err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		if pos != last {
			props = append(props, content.Property{ID: pid, Label: plabel, Tags: []content.Tag{}})
			last = pos
		}
		if tid.Valid {
			p := &props[len(props)-1]
			p.Tags = append(p.Tags, content.Tag{ID: tid.String, Label: tlabel.String, AdultContent: tagAdult.Bool})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate properties: %w", err)
	}
	return props, nil
}

func deleteProperties(q querier, id string) error {
	if _, err := q.Exec("DELETE FROM content_tag WHERE content_pk = ?", id); err != nil {
		return fmt.Errorf("delete tags of %q: %w", id, mapSQLiteError(err))
	}
	if _, err := q.Exec("DELETE FROM content_property WHERE content_pk = ?", id); err != nil {
		return fmt.Errorf("delete properties of %q: %w", id, mapSQLiteError(err))
	}
	return nil
}

func getContent(q querier, id string) (*content.Record, error) {
	r, err := scanContent(q.QueryRow("SELECT "+contentColumns+" FROM content WHERE id = ?", id))
	if err != nil {
		return nil, fmt.Errorf("get content %q: %w", id, mapSQLiteError(err))
	}
	if r.Properties, err = loadProperties(q, id); err != nil {
		return nil, err
	}
	return r, nil
}

// GetContent retrieves a record by its local id.
// Returns ErrNotFound if the record does not exist.
func (s *Store) GetContent(id string) (*content.Record, error) { return getContent(s.db, id) }

// GetContent retrieves a record by its local id within a transaction.
func (t *Tx) GetContent(id string) (*content.Record, error) { return getContent(t.tx, id) }

// where builds the WHERE clause shared by the content listings.
func (f ContentFilter) where() (string, []any) {
	var conditions []string
	var args []any

	if f.SourceID != nil {
		conditions = append(conditions, "source_id = ?")
		args = append(args, *f.SourceID)
	}
	if f.ExcludeSource != nil {
		conditions = append(conditions, "source_id <> ?")
		args = append(args, *f.ExcludeSource)
	}
	if f.ContentType != nil {
		conditions = append(conditions, "content_type = ?")
		args = append(args, int(*f.ContentType))
	}
	if f.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, int(*f.Status))
	}
	if f.Title != nil {
		conditions = append(conditions, "title = ?")
		args = append(args, *f.Title)
	}
	if f.AdultContent != nil {
		conditions = append(conditions, "adult_content = ?")
		args = append(args, *f.AdultContent)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

func listContent(q querier, f ContentFilter) ([]*content.Record, int, error) {
	whereClause, args := f.where()

	var total int
	if err := q.QueryRow("SELECT COUNT(*) FROM content "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count content: %w", err)
	}

	query := "SELECT " + contentColumns + " FROM content " + whereClause + " ORDER BY title, id"
	switch {
	case f.Limit > 0:
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, max(f.Offset, 0))
	case f.Offset > 0:
		// SQLite needs a LIMIT before OFFSET; -1 means no limit.
		query += fmt.Sprintf(" LIMIT -1 OFFSET %d", f.Offset)
	}

	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list content: %w", err)
	}
	var results []*content.Record
	for rows.Next() {
		r, err := scanContent(rows)
		if err != nil {
			_ = rows.Close()
			return nil, 0, fmt.Errorf("scan content: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, 0, fmt.Errorf("iterate content: %w", err)
	}
	// Close before loading properties so a single-connection pool is not held.
	_ = rows.Close()

	for _, r := range results {
		if r.Properties, err = loadProperties(q, r.ID); err != nil {
			return nil, 0, err
		}
	}
	return results, total, nil
}

// ListContent returns records matching the filter, ordered by title.
// Returns (results, totalCount, error).
func (s *Store) ListContent(f ContentFilter) ([]*content.Record, int, error) {
	return listContent(s.db, f)
}

// ListContent returns records matching the filter within a transaction.
func (t *Tx) ListContent(f ContentFilter) ([]*content.Record, int, error) {
	return listContent(t.tx, f)
}

func deleteContent(q querier, id string) error {
	if err := deleteProperties(q, id); err != nil {
		return err
	}
	if _, err := q.Exec("DELETE FROM content WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete content %q: %w", id, mapSQLiteError(err))
	}
	return nil
}

// DeleteContent removes a record and its properties.
// This operation is idempotent - no error is returned if the record does not exist.
func (s *Store) DeleteContent(id string) error {
	tx, err := s.Begin()
	if err != nil {
		return err
	}
	if err := tx.DeleteContent(id); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// DeleteContent removes a record within a transaction.
func (t *Tx) DeleteContent(id string) error { return deleteContent(t.tx, id) }
