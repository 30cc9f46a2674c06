// Package content defines readable content records (series metadata with their
// properties and tags) and the codec that maps them to and from the keyed
// interchange form used by backups.
package content

// Record is a piece of readable content tracked by the library.
type Record struct {
	ID                     string
	SourceID               string
	ContentID              string
	Title                  string
	AdditionalTitles       []string
	Cover                  string
	AdditionalCovers       []string
	Creators               []string
	Status                 Status
	Summary                *string
	AdultContent           bool
	WebURL                 *string
	Properties             []Property
	RecommendedReadingMode ReadingMode
	ContentType            Type
	TrackerInfo            map[string]string // tracker key -> tracker id
	AcquisitionLink        *string
	Streamable             bool
}

// Property is a named, ordered grouping of tags (e.g. "Genres").
type Property struct {
	ID    string
	Label string
	Tags  []Tag
}

// Tag is a single label within a property.
type Tag struct {
	ID           string
	Label        string
	AdultContent bool
}

// NewRecord returns a record holding the documented default for every field.
// Sequence fields and TrackerInfo are empty, never nil.
func NewRecord() *Record {
	return &Record{
		AdditionalTitles:       []string{},
		AdditionalCovers:       []string{},
		Creators:               []string{},
		Status:                 StatusUnknown,
		Properties:             []Property{},
		RecommendedReadingMode: ReadingModePagedManga,
		ContentType:            TypeUnknown,
		TrackerInfo:            map[string]string{},
	}
}

// DeriveID builds the local identifier for a record whose id was absent.
func DeriveID(sourceID, contentID string) string {
	return sourceID + "||" + contentID
}

// Titles returns the primary title followed by the additional titles.
func (r *Record) Titles() []string {
	titles := make([]string, 0, 1+len(r.AdditionalTitles))
	titles = append(titles, r.Title)
	return append(titles, r.AdditionalTitles...)
}

// StringPtr returns a pointer to s. Handy for the optional string fields.
func StringPtr(s string) *string {
	return &s
}
