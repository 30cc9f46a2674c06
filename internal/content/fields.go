package content

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// Wire keys.
const (
	KeyID                     = "id"
	KeySourceID               = "sourceId"
	KeyContentID              = "contentId"
	KeyTitle                  = "title"
	KeyAdditionalTitles       = "additionalTitles"
	KeyAdditionalCovers       = "additionalCovers"
	KeyCover                  = "cover"
	KeyCreators               = "creators"
	KeyStatus                 = "status"
	KeyOriginalLanguage       = "originalLanuguage" // sic; reserved, never read or written
	KeySummary                = "summary"
	KeyAdultContent           = "adultContent"
	KeyWebURL                 = "webUrl"
	KeyProperties             = "properties"
	KeyRecommendedReadingMode = "recommendedReadingMode"
	KeyContentType            = "contentType"
	KeyTrackerInfo            = "trackerInfo"
	KeyAcquisitionLink        = "acquisitionLink"
	KeyStreamable             = "streamable"
	KeyLabel                  = "label"
	KeyTags                   = "tags"
)

// fields reads typed values out of one keyed container. A key holding null is
// treated as absent.
type fields struct {
	record  string
	payload map[string]any
}

func (f fields) lookup(key string) (any, bool) {
	v, ok := f.payload[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

var numberType = reflect.TypeOf(json.Number(""))

// rejectNumbers stops json.Number, which has string kind, from being
// accepted where a string is expected.
func rejectNumbers(from, to reflect.Type, data any) (any, error) {
	if from == numberType && to.Kind() == reflect.String {
		return nil, fmt.Errorf("number %v is not a string", data)
	}
	return data, nil
}

func (f fields) convert(key string, v any, out any, expected string) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.DecodeHookFuncType(rejectNumbers),
		Result:     out,
	})
	if err != nil {
		return fmt.Errorf("%s: field %q: %w", f.record, key, err)
	}
	if err := dec.Decode(v); err != nil {
		return &TypeMismatchError{
			Record:   f.record,
			Field:    key,
			Expected: expected,
			Got:      fmt.Sprintf("%T", v),
			Err:      err,
		}
	}
	return nil
}

// rejectNulls fails on a null element of an array or a null value of an
// object. The conversion layer would zero-fill those as "".
func (f fields) rejectNulls(key string, v any, expected string) error {
	null := func() error {
		return &TypeMismatchError{Record: f.record, Field: key, Expected: expected, Got: "null"}
	}
	switch vv := v.(type) {
	case []any:
		for _, e := range vv {
			if e == nil {
				return null()
			}
		}
	case map[string]any:
		for _, e := range vv {
			if e == nil {
				return null()
			}
		}
	}
	return nil
}

func (f fields) requiredString(key string) (string, error) {
	v, ok := f.lookup(key)
	if !ok {
		return "", &MissingFieldError{Record: f.record, Field: key}
	}
	var s string
	if err := f.convert(key, v, &s, "string"); err != nil {
		return "", err
	}
	return s, nil
}

func (f fields) stringOr(key, def string) (string, error) {
	s, err := f.optionalString(key)
	if err != nil || s == nil {
		return def, err
	}
	return *s, nil
}

func (f fields) optionalString(key string) (*string, error) {
	v, ok := f.lookup(key)
	if !ok {
		return nil, nil
	}
	var s string
	if err := f.convert(key, v, &s, "string"); err != nil {
		return nil, err
	}
	return &s, nil
}

func (f fields) boolOr(key string, def bool) (bool, error) {
	v, ok := f.lookup(key)
	if !ok {
		return def, nil
	}
	var b bool
	if err := f.convert(key, v, &b, "bool"); err != nil {
		return def, err
	}
	return b, nil
}

// strings returns a fresh slice; absence yields an empty one.
func (f fields) strings(key string) ([]string, error) {
	out := []string{}
	v, ok := f.lookup(key)
	if !ok {
		return out, nil
	}
	if err := f.rejectNulls(key, v, "string"); err != nil {
		return nil, err
	}
	var decoded []string
	if err := f.convert(key, v, &decoded, "array of string"); err != nil {
		return nil, err
	}
	return append(out, decoded...), nil
}

func (f fields) stringMap(key string) (map[string]string, bool, error) {
	v, ok := f.lookup(key)
	if !ok {
		return nil, false, nil
	}
	if err := f.rejectNulls(key, v, "string"); err != nil {
		return nil, false, err
	}
	out := map[string]string{}
	if err := f.convert(key, v, &out, "object of string"); err != nil {
		return nil, false, err
	}
	return out, true, nil
}

func (f fields) objects(key string) ([]map[string]any, bool, error) {
	v, ok := f.lookup(key)
	if !ok {
		return nil, false, nil
	}
	if err := f.rejectNulls(key, v, "object"); err != nil {
		return nil, false, err
	}
	var out []map[string]any
	if err := f.convert(key, v, &out, "array of object"); err != nil {
		return nil, false, err
	}
	return out, true, nil
}
