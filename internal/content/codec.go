package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"strings"

	"github.com/google/uuid"
)

// IDGenerator produces the random source identifiers assigned to payloads
// that omit sourceId. Implementations must be safe for concurrent use.
type IDGenerator interface {
	NewID() string
}

// IDGeneratorFunc adapts a function to IDGenerator.
type IDGeneratorFunc func() string

func (f IDGeneratorFunc) NewID() string { return f() }

// UUIDGenerator returns upper-case random (v4) UUID strings.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return strings.ToUpper(uuid.NewString()) }

// Codec converts records to and from keyed containers. Decoding tolerates
// absent optional fields; encoding always emits every field.
// A Codec is safe for concurrent use if its IDGenerator is.
type Codec struct {
	ids IDGenerator
}

// Option configures a Codec.
type Option func(*Codec)

// WithIDGenerator replaces the generator used for absent sourceId values.
func WithIDGenerator(g IDGenerator) Option {
	return func(c *Codec) {
		if g != nil {
			c.ids = g
		}
	}
}

// NewCodec creates a codec that generates UUIDs for absent sourceId values.
func NewCodec(opts ...Option) *Codec {
	c := &Codec{ids: UUIDGenerator{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Decode builds a fresh record from payload.
// Returns a *MissingFieldError for the first absent required field, or a
// *TypeMismatchError when a present field has the wrong shape.
func (c *Codec) Decode(payload map[string]any) (*Record, error) {
	r := NewRecord()
	if err := c.decode(r, payload); err != nil {
		return nil, err
	}
	return r, nil
}

// DecodeInto replaces target with the record decoded from payload. Every
// field is rebuilt from its default except TrackerInfo, which keeps the
// target's value when the payload has no trackerInfo key.
// On error target is left unchanged.
func (c *Codec) DecodeInto(target *Record, payload map[string]any) error {
	r := NewRecord()
	if target.TrackerInfo != nil {
		r.TrackerInfo = target.TrackerInfo
	}
	if err := c.decode(r, payload); err != nil {
		return err
	}
	*target = *r
	return nil
}

func (c *Codec) decode(r *Record, payload map[string]any) error {
	f := fields{record: RecordContent, payload: payload}
	var err error

	// id may be absent: callers re-key from sourceId and contentId.
	if r.ID, err = f.stringOr(KeyID, ""); err != nil {
		return err
	}
	sourceID, err := f.optionalString(KeySourceID)
	if err != nil {
		return err
	}
	if sourceID != nil {
		r.SourceID = *sourceID
	} else {
		r.SourceID = c.ids.NewID()
	}
	if r.ContentID, err = f.requiredString(KeyContentID); err != nil {
		return err
	}
	if r.Title, err = f.requiredString(KeyTitle); err != nil {
		return err
	}
	if r.Cover, err = f.stringOr(KeyCover, ""); err != nil {
		return err
	}
	if r.AdditionalCovers, err = f.strings(KeyAdditionalCovers); err != nil {
		return err
	}
	if r.AdditionalTitles, err = f.strings(KeyAdditionalTitles); err != nil {
		return err
	}
	if r.Creators, err = f.strings(KeyCreators); err != nil {
		return err
	}
	if v, ok := f.lookup(KeyStatus); ok {
		r.Status = ParseStatus(v)
	}
	if r.Summary, err = f.optionalString(KeySummary); err != nil {
		return err
	}
	if r.AdultContent, err = f.boolOr(KeyAdultContent, false); err != nil {
		return err
	}
	if r.WebURL, err = f.optionalString(KeyWebURL); err != nil {
		return err
	}

	props, ok, err := f.objects(KeyProperties)
	if err != nil {
		return err
	}
	if ok {
		for _, p := range props {
			prop, err := c.DecodeProperty(p)
			if err != nil {
				return err
			}
			r.Properties = append(r.Properties, prop)
		}
	}

	if v, ok := f.lookup(KeyRecommendedReadingMode); ok {
		r.RecommendedReadingMode = ParseReadingMode(v)
	}
	if v, ok := f.lookup(KeyContentType); ok {
		r.ContentType = ParseType(v)
	}

	// trackerInfo is assigned only when present; the target's value survives otherwise.
	info, ok, err := f.stringMap(KeyTrackerInfo)
	if err != nil {
		return err
	}
	if ok {
		r.TrackerInfo = info
	}

	if r.AcquisitionLink, err = f.optionalString(KeyAcquisitionLink); err != nil {
		return err
	}
	if r.Streamable, err = f.boolOr(KeyStreamable, false); err != nil {
		return err
	}
	return nil
}

// DecodeProperty decodes a property and its tags. id, label and tags are required.
func (c *Codec) DecodeProperty(payload map[string]any) (Property, error) {
	f := fields{record: RecordProperty, payload: payload}

	tags, ok, err := f.objects(KeyTags)
	if err != nil {
		return Property{}, err
	}
	if !ok {
		return Property{}, &MissingFieldError{Record: RecordProperty, Field: KeyTags}
	}
	p := Property{Tags: make([]Tag, 0, len(tags))}
	for _, t := range tags {
		tag, err := c.DecodeTag(t)
		if err != nil {
			return Property{}, err
		}
		p.Tags = append(p.Tags, tag)
	}
	if p.Label, err = f.requiredString(KeyLabel); err != nil {
		return Property{}, err
	}
	if p.ID, err = f.requiredString(KeyID); err != nil {
		return Property{}, err
	}
	return p, nil
}

// DecodeTag decodes a tag. id and label are required.
func (c *Codec) DecodeTag(payload map[string]any) (Tag, error) {
	f := fields{record: RecordTag, payload: payload}
	var (
		t   Tag
		err error
	)
	if t.ID, err = f.requiredString(KeyID); err != nil {
		return Tag{}, err
	}
	if t.Label, err = f.requiredString(KeyLabel); err != nil {
		return Tag{}, err
	}
	if t.AdultContent, err = f.boolOr(KeyAdultContent, false); err != nil {
		return Tag{}, err
	}
	return t, nil
}

// Encode returns a container with every field of r. Nil sequences encode as
// empty arrays and nil optionals as null. The result shares no memory with r.
func (c *Codec) Encode(r *Record) map[string]any {
	props := make([]map[string]any, 0, len(r.Properties))
	for _, p := range r.Properties {
		props = append(props, c.EncodeProperty(p))
	}
	info := map[string]string{}
	maps.Copy(info, r.TrackerInfo)

	return map[string]any{
		KeyID:                     r.ID,
		KeySourceID:               r.SourceID,
		KeyContentID:              r.ContentID,
		KeyTitle:                  r.Title,
		KeyCover:                  r.Cover,
		KeyAdditionalTitles:       cloneStrings(r.AdditionalTitles),
		KeyAdditionalCovers:       cloneStrings(r.AdditionalCovers),
		KeyCreators:               cloneStrings(r.Creators),
		KeyStatus:                 int(r.Status),
		KeySummary:                optional(r.Summary),
		KeyAdultContent:           r.AdultContent,
		KeyWebURL:                 optional(r.WebURL),
		KeyProperties:             props,
		KeyRecommendedReadingMode: int(r.RecommendedReadingMode),
		KeyContentType:            int(r.ContentType),
		KeyTrackerInfo:            info,
		KeyStreamable:             r.Streamable,
		KeyAcquisitionLink:        optional(r.AcquisitionLink),
	}
}

// EncodeProperty returns a container with every field of p.
func (c *Codec) EncodeProperty(p Property) map[string]any {
	tags := make([]map[string]any, 0, len(p.Tags))
	for _, t := range p.Tags {
		tags = append(tags, c.EncodeTag(t))
	}
	return map[string]any{
		KeyLabel: p.Label,
		KeyTags:  tags,
		KeyID:    p.ID,
	}
}

// EncodeTag returns a container with every field of t.
func (c *Codec) EncodeTag(t Tag) map[string]any {
	return map[string]any{
		KeyID:           t.ID,
		KeyLabel:        t.Label,
		KeyAdultContent: t.AdultContent,
	}
}

// DecodeJSON decodes a record from a JSON object.
func (c *Codec) DecodeJSON(data []byte) (*Record, error) {
	payload, err := ParseObject(data)
	if err != nil {
		return nil, err
	}
	return c.Decode(payload)
}

// EncodeJSON encodes r as a JSON object.
func (c *Codec) EncodeJSON(r *Record) ([]byte, error) {
	data, err := json.Marshal(c.Encode(r))
	if err != nil {
		return nil, fmt.Errorf("marshal content %q: %w", r.ID, err)
	}
	return data, nil
}

// ParseObject parses a JSON object into a keyed container. Numbers are kept as
// json.Number so integer enum codes survive intact.
func ParseObject(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("parse content object: %w", err)
	}
	if payload == nil {
		return nil, fmt.Errorf("parse content object: %w", &TypeMismatchError{
			Record: RecordContent, Expected: "object", Got: "null",
		})
	}
	return payload, nil
}

func cloneStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func optional(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
