package library

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/tankobon/tankobon/internal/content"
	"github.com/tankobon/tankobon/internal/match"
)

// TitleEntry is the title columns of one record.
type TitleEntry struct {
	ID               string
	SourceID         string
	Title            string
	AdditionalTitles []string
}

// Titles returns the primary title followed by the additional ones.
func (e TitleEntry) Titles() []string {
	return append([]string{e.Title}, e.AdditionalTitles...)
}

func listTitles(q querier, f ContentFilter) ([]TitleEntry, error) {
	whereClause, args := f.where()
	rows, err := q.Query("SELECT id, source_id, title, additional_titles FROM content "+
		whereClause+" ORDER BY title, id", args...)
	if err != nil {
		return nil, fmt.Errorf("list titles: %w", err)
	}
	defer rows.Close()

	var entries []TitleEntry
	for rows.Next() {
		var e TitleEntry
		var titles string
		if err := rows.Scan(&e.ID, &e.SourceID, &e.Title, &titles); err != nil {
			return nil, fmt.Errorf("scan titles: %w", err)
		}
		if err := json.Unmarshal([]byte(titles), &e.AdditionalTitles); err != nil {
			return nil, fmt.Errorf("decode additional_titles of %q: %w", e.ID, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate titles: %w", err)
	}
	return entries, nil
}

// ListTitles returns the titles of records matching the filter, ordered by
// title. Limit and Offset are ignored.
func (s *Store) ListTitles(f ContentFilter) ([]TitleEntry, error) {
	return listTitles(s.db, f)
}

// ListTitles returns the titles of records matching the filter within a transaction.
func (t *Tx) ListTitles(f ContentFilter) ([]TitleEntry, error) {
	return listTitles(t.tx, f)
}

// Link is a record from another source whose titles match a given record.
type Link struct {
	Record *content.Record
	Match  match.Result
}

// FindLinked returns records from other sources that look like the same
// series as the record with the given id, strongest match first.
// Matches below minConfidence are dropped; ConfidenceNone is treated as low.
// Only matched records are loaded in full.
// Returns ErrNotFound if the record does not exist.
func (s *Store) FindLinked(id string, minConfidence match.Confidence) ([]Link, error) {
	r, err := s.GetContent(id)
	if err != nil {
		return nil, err
	}
	minConfidence = max(minConfidence, match.ConfidenceLow)

	candidates, err := s.ListTitles(ContentFilter{ExcludeSource: &r.SourceID})
	if err != nil {
		return nil, err
	}

	titles := r.Titles()
	type hit struct {
		id string
		m  match.Result
	}
	var hits []hit
	for _, c := range candidates {
		m := match.Best(titles, c.Titles())
		if m.Confidence < minConfidence {
			continue
		}
		hits = append(hits, hit{id: c.ID, m: m})
	}
	slices.SortStableFunc(hits, func(a, b hit) int {
		return cmp.Compare(b.m.Score, a.m.Score)
	})

	links := make([]Link, 0, len(hits))
	for _, h := range hits {
		rec, err := s.GetContent(h.id)
		if err != nil {
			return nil, err
		}
		links = append(links, Link{Record: rec, Match: h.m})
	}
	return links, nil
}

// HasLinked reports whether any record from another source matches the record.
func (s *Store) HasLinked(id string, minConfidence match.Confidence) (bool, error) {
	links, err := s.FindLinked(id, minConfidence)
	if err != nil {
		return false, err
	}
	return len(links) > 0, nil
}
