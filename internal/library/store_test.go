package library

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tankobon/tankobon/internal/content"
)

func fullTestRecord() *content.Record {
	r := testRecord("mangadex", "abc", "Sample Manga")
	r.AdditionalTitles = []string{"Sample", "サンプル"}
	r.Cover = "https://example.com/cover.jpg"
	r.AdditionalCovers = []string{"https://example.com/a.jpg"}
	r.Creators = []string{"Author A", "Author A"}
	r.Status = content.StatusCompleted
	r.Summary = content.StringPtr("summary")
	r.AdultContent = true
	r.WebURL = content.StringPtr("https://example.com/title/abc")
	r.Properties = []content.Property{
		{ID: "genres", Label: "Genres", Tags: []content.Tag{
			{ID: "action", Label: "Action"},
			{ID: "ecchi", Label: "Ecchi", AdultContent: true},
		}},
		{ID: "empty", Label: "Empty", Tags: []content.Tag{}},
		{ID: "themes", Label: "Themes", Tags: []content.Tag{{ID: "school", Label: "School"}}},
	}
	r.RecommendedReadingMode = content.ReadingModeVertical
	r.ContentType = content.TypeManga
	r.TrackerInfo = map[string]string{"mal": "123"}
	r.AcquisitionLink = content.StringPtr("https://example.com/buy")
	r.Streamable = true
	return r
}

func TestStore_SaveAndGetContent(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	want := fullTestRecord()
	require.NoError(t, store.SaveContent(want))

	got, err := store.GetContent(want.ID)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStore_SaveContent_Defaults(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	want := testRecord("s", "c1", "Minimal")
	require.NoError(t, store.SaveContent(want))

	got, err := store.GetContent(want.ID)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Nil(t, got.Summary)
	assert.NotNil(t, got.Properties)
	assert.NotNil(t, got.TrackerInfo)
}

func TestStore_SaveContent_Upsert(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	r := fullTestRecord()
	require.NoError(t, store.SaveContent(r))

	r.Title = "Renamed"
	r.Properties = r.Properties[:1]
	r.Properties[0].Tags = r.Properties[0].Tags[1:]
	r.TrackerInfo = map[string]string{"al": "456"}
	require.NoError(t, store.SaveContent(r))

	got, err := store.GetContent(r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	require.Len(t, got.Properties, 1)
	assert.Equal(t, []content.Tag{{ID: "ecchi", Label: "Ecchi", AdultContent: true}}, got.Properties[0].Tags)
	assert.Equal(t, map[string]string{"al": "456"}, got.TrackerInfo)

	_, total, err := store.ListContent(ContentFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestStore_SaveContent_MissingID(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	r := testRecord("s", "c1", "No ID")
	r.ID = ""
	err := store.SaveContent(r)
	assert.ErrorIs(t, err, ErrMissingID)
}

func TestStore_SaveContent_DuplicateSourceContent(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	require.NoError(t, store.SaveContent(testRecord("s", "c1", "First")))

	dup := testRecord("s", "c1", "Second")
	dup.ID = "other-id"
	err := store.SaveContent(dup)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestStore_SaveContents_AllOrNothing(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	bad := testRecord("s", "c2", "Bad")
	bad.ID = ""
	err := store.SaveContents([]*content.Record{testRecord("s", "c1", "Good"), bad})
	require.Error(t, err)

	_, total, err := store.ListContent(ContentFilter{})
	require.NoError(t, err)
	assert.Equal(t, 0, total, "failed batch must roll back")
}

func TestStore_GetContent_NotFound(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	_, err := store.GetContent("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_ListContent_Filters(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	a := testRecord("mangadex", "1", "Berserk")
	a.ContentType = content.TypeManga
	a.Status = content.StatusOngoing
	b := testRecord("mangadex", "2", "Akira")
	b.ContentType = content.TypeManga
	b.Status = content.StatusCompleted
	b.AdultContent = true
	c := testRecord("comick", "3", "Watchmen")
	c.ContentType = content.TypeComic
	c.Status = content.StatusCompleted
	require.NoError(t, store.SaveContents([]*content.Record{a, b, c}))

	tests := []struct {
		name   string
		filter ContentFilter
		titles []string
	}{
		{"all ordered by title", ContentFilter{}, []string{"Akira", "Berserk", "Watchmen"}},
		{"by source", ContentFilter{SourceID: ptr("mangadex")}, []string{"Akira", "Berserk"}},
		{"exclude source", ContentFilter{ExcludeSource: ptr("mangadex")}, []string{"Watchmen"}},
		{"by type", ContentFilter{ContentType: ptr(content.TypeComic)}, []string{"Watchmen"}},
		{"by status", ContentFilter{Status: ptr(content.StatusCompleted)}, []string{"Akira", "Watchmen"}},
		{"by title", ContentFilter{Title: ptr("Berserk")}, []string{"Berserk"}},
		{"adult only", ContentFilter{AdultContent: ptr(true)}, []string{"Akira"}},
		{"paged", ContentFilter{Limit: 1, Offset: 1}, []string{"Berserk"}},
		{"offset without limit", ContentFilter{Offset: 1}, []string{"Berserk", "Watchmen"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, total, err := store.ListContent(tt.filter)
			require.NoError(t, err)
			var titles []string
			for _, r := range got {
				titles = append(titles, r.Title)
			}
			assert.Equal(t, tt.titles, titles)
			if tt.filter.Limit == 0 && tt.filter.Offset == 0 {
				assert.Equal(t, len(tt.titles), total)
			} else {
				assert.Equal(t, 3, total)
			}
		})
	}
}

func TestStore_ListContent_LoadsProperties(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	require.NoError(t, store.SaveContent(fullTestRecord()))
	got, _, err := store.ListContent(ContentFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, fullTestRecord().Properties, got[0].Properties)
}

func TestStore_DeleteContent(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	r := fullTestRecord()
	require.NoError(t, store.SaveContent(r))
	require.NoError(t, store.DeleteContent(r.ID))

	_, err := store.GetContent(r.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var orphans int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM content_tag").Scan(&orphans))
	assert.Zero(t, orphans)

	// Idempotent
	assert.NoError(t, store.DeleteContent(r.ID))
}
