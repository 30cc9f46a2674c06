package content

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Status is the publication status of a piece of content.
type Status int

const (
	StatusUnknown Status = iota
	StatusOngoing
	StatusCompleted
	StatusCancelled
	StatusHiatus
)

var statusNames = []string{"UNKNOWN", "ONGOING", "COMPLETED", "CANCELLED", "HIATUS"}

func (s Status) String() string { return enumName(int(s), statusNames, "Status") }

// ParseStatus maps a wire value to a Status. Unrecognized values yield StatusUnknown.
func ParseStatus(v any) Status {
	return Status(decodeEnum(v, statusNames, int(StatusUnknown)))
}

// ReadingMode is the reader layout recommended by the source.
type ReadingMode int

const (
	ReadingModePagedManga ReadingMode = iota // right to left
	ReadingModePagedComic                    // left to right
	ReadingModeVertical
	ReadingModePagedVertical
	ReadingModeWeb
)

var readingModeNames = []string{"PAGED_MANGA", "PAGED_COMIC", "VERTICAL", "PAGED_VERTICAL", "WEB"}

func (m ReadingMode) String() string { return enumName(int(m), readingModeNames, "ReadingMode") }

// ParseReadingMode maps a wire value to a ReadingMode. Unrecognized values
// yield ReadingModePagedManga.
func ParseReadingMode(v any) ReadingMode {
	return ReadingMode(decodeEnum(v, readingModeNames, int(ReadingModePagedManga)))
}

// Type is the kind of content a source serves.
type Type int

const (
	TypeNovel Type = iota
	TypeManga
	TypeComic
	TypeUnknown
)

var typeNames = []string{"novel", "manga", "comic", "unknown"}

func (t Type) String() string { return enumName(int(t), typeNames, "Type") }

// ParseType maps a wire value to a Type. Unrecognized values yield TypeUnknown.
func ParseType(v any) Type {
	return Type(decodeEnum(v, typeNames, int(TypeUnknown)))
}

// LookupStatus resolves a status name or numeric code strictly, reporting
// whether it matched.
func LookupStatus(s string) (Status, bool) {
	code, ok := lookupEnum(s, statusNames)
	return Status(code), ok
}

// LookupType resolves a content type name or numeric code strictly.
func LookupType(s string) (Type, bool) {
	code, ok := lookupEnum(s, typeNames)
	return Type(code), ok
}

func lookupEnum(s string, names []string) (int, bool) {
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return n, n >= 0 && n < len(names)
	}
	code := decodeEnum(s, names, -1)
	return code, code >= 0
}

func enumName(code int, names []string, kind string) string {
	if code >= 0 && code < len(names) {
		return names[code]
	}
	return fmt.Sprintf("%s(%d)", kind, code)
}

// decodeEnum accepts an integer code or a case-insensitive variant name.
// Anything else, including values from newer format versions, maps to fallback.
func decodeEnum(v any, names []string, fallback int) int {
	code := -1
	switch x := v.(type) {
	case string:
		for i, name := range names {
			if strings.EqualFold(name, strings.TrimSpace(x)) {
				return i
			}
		}
	case json.Number:
		if n, err := x.Int64(); err == nil {
			code = int(n)
		}
	case float64:
		if x == math.Trunc(x) && x >= 0 && x < float64(len(names)) {
			code = int(x)
		}
	case int:
		code = x
	case int32:
		code = int(x)
	case int64:
		code = int(x)
	case Status:
		code = int(x)
	case ReadingMode:
		code = int(x)
	case Type:
		code = int(x)
	}
	if code >= 0 && code < len(names) {
		return code
	}
	return fallback
}
