// Package descriptor decodes and checks the per-presentation metadata file.
package descriptor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// DefaultName is the descriptor file looked up in every presentation directory
const DefaultName = "metadata.json"

// ErrEmpty is returned when a descriptor holds no object at all
var ErrEmpty = errors.New("descriptor is empty")

// Descriptor is the decoded content of a metadata file.
// Optional fields are pointers or nil slices so that an omitted field can
// be told apart from one that is present but empty.
type Descriptor struct {
	Title       Value   `json:"title" yaml:"title"`
	Description Value   `json:"description" yaml:"description"`
	Date        Value   `json:"date" yaml:"date"`
	Slides      *Value  `json:"slides,omitempty" yaml:"slides,omitempty"`
	Tags        []Value `json:"tags,omitempty" yaml:"tags,omitempty"`
	Thumbnail   *Value  `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`
}

// Kind is the type a descriptor value was written as
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindStructured // a list or an object
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "a number"
	case KindBool:
		return "a boolean"
	case KindStructured:
		return "a list or object"
	default:
		return "a string"
	}
}

// Value is a scalar kept as the text it was written with, so that
// "10.0" stays "10.0" and a numeric title is still a title.
// Type mismatches surface through Validate rather than failing the decode.
type Value struct {
	Text string
	Kind Kind
}

// UnmarshalJSON implements json.Unmarshaler
func (v *Value) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		*v = Value{}
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		*v = Value{Text: s, Kind: KindString}
	case raw[0] == '{' || raw[0] == '[':
		*v = Value{Kind: KindStructured}
	case bytes.Equal(raw, []byte("true")) || bytes.Equal(raw, []byte("false")):
		*v = Value{Text: string(raw), Kind: KindBool}
	default:
		*v = Value{Text: string(raw), Kind: KindNumber}
	}
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node.Kind != yaml.ScalarNode {
		*v = Value{Kind: KindStructured}
		return nil
	}

	switch node.ShortTag() {
	case "!!null":
		*v = Value{}
	case "!!int", "!!float":
		*v = Value{Text: node.Value, Kind: KindNumber}
	case "!!bool":
		*v = Value{Text: node.Value, Kind: KindBool}
	default:
		// !!str, !!timestamp and custom tags all keep their literal text
		*v = Value{Text: node.Value, Kind: KindString}
	}
	return nil
}

// String returns the value's text
func (v Value) String() string {
	return v.Text
}

// TextOf returns the text of an optional value, or nil when it is absent
func TextOf(v *Value) *string {
	if v == nil {
		return nil
	}
	s := v.Text
	return &s
}

// Strings returns the text of each value, keeping nil as nil
func Strings(values []Value) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.Text
	}
	return out
}

// Decode parses a descriptor. The format is chosen from the file extension:
// .yaml and .yml are YAML, everything else is JSON.
func Decode(name string, data []byte) (*Descriptor, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, ErrEmpty
	}

	var d Descriptor
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(trimmed, &d); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(trimmed, &d); err != nil {
			return nil, err
		}
	}

	return &d, nil
}

// Validate reports descriptor problems that do not prevent rendering.
// isDate decides whether a non-empty date string is usable for ordering.
// The returned error, when not nil, is a validation.Errors keyed by field.
func Validate(d *Descriptor, isDate func(string) bool) error {
	return validation.ValidateStruct(d,
		validation.Field(&d.Title, validation.By(required), validation.By(kindOf(KindString, KindNumber))),
		validation.Field(&d.Description, validation.By(kindOf(KindString, KindNumber))),
		validation.Field(&d.Date, validation.By(required), validation.By(kindOf(KindString, KindNumber)),
			validation.By(func(value interface{}) error {
				v, ok := asValue(value)
				if !ok || v.Kind == KindStructured || strings.TrimSpace(v.Text) == "" || isDate == nil || isDate(v.Text) {
					return nil
				}
				return errors.New("is not a recognizable date")
			})),
		validation.Field(&d.Slides, validation.By(slideCount)),
		validation.Field(&d.Tags, validation.Each(validation.By(kindOf(KindString, KindNumber)))),
		validation.Field(&d.Thumbnail, validation.By(kindOf(KindString))),
	)
}

func asValue(value interface{}) (Value, bool) {
	switch v := value.(type) {
	case Value:
		return v, true
	case *Value:
		if v == nil {
			return Value{}, false
		}
		return *v, true
	}
	return Value{}, false
}

func required(value interface{}) error {
	v, _ := asValue(value)
	if v.Kind != KindStructured && strings.TrimSpace(v.Text) == "" {
		return errors.New("cannot be blank")
	}
	return nil
}

// kindOf accepts present values written as one of kinds
func kindOf(kinds ...Kind) validation.RuleFunc {
	return func(value interface{}) error {
		v, ok := asValue(value)
		if !ok || (v.Kind != KindStructured && v.Text == "") {
			return nil
		}
		for _, k := range kinds {
			if v.Kind == k {
				return nil
			}
		}
		return fmt.Errorf("should be %s, got %s", kinds[0], v.Kind)
	}
}

func slideCount(value interface{}) error {
	v, ok := asValue(value)
	if !ok || (v.Kind == KindString && strings.TrimSpace(v.Text) == "") {
		return nil
	}
	if v.Kind != KindString && v.Kind != KindNumber {
		return fmt.Errorf("should be a number, got %s", v.Kind)
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(v.Text), 64)
	if err != nil {
		return errors.New("is not a number")
	}
	if n < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

// Problems flattens a Validate error into "field: message" lines, sorted by field
func Problems(err error) []string {
	if err == nil {
		return nil
	}
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}

	fields := make([]string, 0, len(verrs))
	for field := range verrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	lines := make([]string, 0, len(fields))
	for _, field := range fields {
		lines = append(lines, field+": "+verrs[field].Error())
	}
	return lines
}
