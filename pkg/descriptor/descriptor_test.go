package descriptor

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
)

func isISODate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func str(text string) Value { return Value{Text: text, Kind: KindString} }

func num(text string) *Value { return &Value{Text: text, Kind: KindNumber} }

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		check   func(t *testing.T, d *Descriptor)
		wantErr bool
	}{
		{
			name:    "full json descriptor",
			file:    "metadata.json",
			content: `{"title":"T","description":"D","date":"2024-01-01","slides":10,"tags":["a","b"],"thumbnail":"cover.png"}`,
			check: func(t *testing.T, d *Descriptor) {
				if d.Title != str("T") || d.Description != str("D") || d.Date != str("2024-01-01") {
					t.Errorf("unexpected text fields: %+v", d)
				}
				if d.Slides == nil || *d.Slides != *num("10") {
					t.Errorf("expected slides 10, got %v", d.Slides)
				}
				if !reflect.DeepEqual(Strings(d.Tags), []string{"a", "b"}) {
					t.Errorf("unexpected tags: %v", d.Tags)
				}
				if d.Thumbnail == nil || d.Thumbnail.Text != "cover.png" {
					t.Errorf("unexpected thumbnail: %v", d.Thumbnail)
				}
			},
		},
		{
			name:    "optional fields absent",
			file:    "metadata.json",
			content: `{"title":"T","description":"D","date":"2024-01-01"}`,
			check: func(t *testing.T, d *Descriptor) {
				if d.Slides != nil {
					t.Errorf("expected nil slides, got %v", *d.Slides)
				}
				if d.Tags != nil {
					t.Errorf("expected nil tags, got %v", d.Tags)
				}
				if d.Thumbnail != nil {
					t.Errorf("expected nil thumbnail, got %v", *d.Thumbnail)
				}
			},
		},
		{
			name:    "empty tag list is present",
			file:    "metadata.json",
			content: `{"title":"T","tags":[]}`,
			check: func(t *testing.T, d *Descriptor) {
				if d.Tags == nil || len(d.Tags) != 0 {
					t.Errorf("expected empty non-nil tags, got %#v", d.Tags)
				}
			},
		},
		{
			name:    "slides as numeric string",
			file:    "metadata.json",
			content: `{"title":"T","slides":"12"}`,
			check: func(t *testing.T, d *Descriptor) {
				if d.Slides == nil || d.Slides.Text != "12" || d.Slides.Kind != KindString {
					t.Errorf("expected slides \"12\", got %v", d.Slides)
				}
			},
		},
		{
			name:    "slides keep their written form",
			file:    "metadata.json",
			content: `{"title":"T","slides":10.0}`,
			check: func(t *testing.T, d *Descriptor) {
				if d.Slides == nil || *d.Slides != *num("10.0") {
					t.Errorf("expected slides 10.0, got %v", d.Slides)
				}
			},
		},
		{
			name:    "fractional slides",
			file:    "metadata.json",
			content: `{"title":"T","slides":10.5}`,
			check: func(t *testing.T, d *Descriptor) {
				if d.Slides == nil || d.Slides.Text != "10.5" {
					t.Errorf("expected slides 10.5, got %v", d.Slides)
				}
			},
		},
		{
			name:    "numbers for title and date",
			file:    "metadata.json",
			content: `{"title":2024,"date":2023,"tags":["go",7]}`,
			check: func(t *testing.T, d *Descriptor) {
				if d.Title != *num("2024") || d.Date != *num("2023") {
					t.Errorf("unexpected fields: %+v", d)
				}
				if !reflect.DeepEqual(Strings(d.Tags), []string{"go", "7"}) {
					t.Errorf("unexpected tags: %v", d.Tags)
				}
			},
		},
		{
			name:    "structured title is kept for validation",
			file:    "metadata.json",
			content: `{"title":{"en":"T"},"description":true}`,
			check: func(t *testing.T, d *Descriptor) {
				if d.Title.Kind != KindStructured {
					t.Errorf("expected structured title, got %+v", d.Title)
				}
				if d.Description != (Value{Text: "true", Kind: KindBool}) {
					t.Errorf("unexpected description: %+v", d.Description)
				}
			},
		},
		{
			name:    "slides null is absent",
			file:    "metadata.json",
			content: `{"title":"T","slides":null}`,
			check: func(t *testing.T, d *Descriptor) {
				if d.Slides != nil {
					t.Errorf("expected nil slides, got %v", *d.Slides)
				}
			},
		},
		{
			name:    "unknown fields ignored",
			file:    "metadata.json",
			content: `{"title":"T","author":"someone"}`,
			check: func(t *testing.T, d *Descriptor) {
				if d.Title.Text != "T" {
					t.Errorf("unexpected title %q", d.Title)
				}
			},
		},
		{
			name:    "yaml descriptor",
			file:    "metadata.yaml",
			content: "title: T\ndescription: D\ndate: 2024-01-01\nslides: 7\ntags:\n  - x\n  - y\n",
			check: func(t *testing.T, d *Descriptor) {
				if d.Title != str("T") || d.Date != str("2024-01-01") {
					t.Errorf("unexpected fields: %+v", d)
				}
				if d.Slides == nil || *d.Slides != *num("7") {
					t.Errorf("expected slides 7, got %v", d.Slides)
				}
				if !reflect.DeepEqual(Strings(d.Tags), []string{"x", "y"}) {
					t.Errorf("unexpected tags: %v", d.Tags)
				}
			},
		},
		{
			name:    "yaml fractional slides",
			file:    "metadata.yml",
			content: "title: T\nslides: 10.5\n",
			check: func(t *testing.T, d *Descriptor) {
				if d.Slides == nil || *d.Slides != *num("10.5") {
					t.Errorf("expected slides 10.5, got %v", d.Slides)
				}
			},
		},
		{
			name:    "yaml slides list is kept for validation",
			file:    "metadata.yml",
			content: "title: T\nslides:\n  - 1\n",
			check: func(t *testing.T, d *Descriptor) {
				if d.Slides == nil || d.Slides.Kind != KindStructured {
					t.Errorf("expected structured slides, got %v", d.Slides)
				}
			},
		},
		{name: "malformed json", file: "metadata.json", content: `{"title": "T",`, wantErr: true},
		{name: "json array", file: "metadata.json", content: `["T"]`, wantErr: true},
		{name: "empty file", file: "metadata.json", content: "  \n", wantErr: true},
		{name: "json null", file: "metadata.json", content: "null", wantErr: true},
		{name: "malformed yaml", file: "metadata.yaml", content: "title: [T\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Decode(tt.file, []byte(tt.content))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got descriptor %+v", d)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, d)
		})
	}
}

func TestDecode_EmptyIsSentinel(t *testing.T) {
	_, err := Decode("metadata.json", nil)
	if !errors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
}

func TestTextOf(t *testing.T) {
	if TextOf(nil) != nil {
		t.Error("expected nil for an absent value")
	}
	if got := TextOf(num("3")); got == nil || *got != "3" {
		t.Errorf("expected \"3\", got %v", got)
	}
	if Strings(nil) != nil {
		t.Error("expected nil tags to stay nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		input  *Descriptor
		fields []string
	}{
		{
			name:  "valid",
			input: &Descriptor{Title: str("T"), Date: str("2024-01-01"), Slides: num("4")},
		},
		{
			name:  "numeric title and fractional slides",
			input: &Descriptor{Title: *num("1984"), Date: str("2024-01-01"), Slides: num("10.5")},
		},
		{
			name:   "missing title and date",
			input:  &Descriptor{},
			fields: []string{"date", "title"},
		},
		{
			name:   "unrecognizable date",
			input:  &Descriptor{Title: str("T"), Date: str("soon")},
			fields: []string{"date"},
		},
		{
			name:   "negative slides",
			input:  &Descriptor{Title: str("T"), Date: str("2024-01-01"), Slides: num("-1")},
			fields: []string{"slides"},
		},
		{
			name:   "slides not a number",
			input:  &Descriptor{Title: str("T"), Date: str("2024-01-01"), Slides: &Value{Text: "many"}},
			fields: []string{"slides"},
		},
		{
			name: "wrong kinds",
			input: &Descriptor{
				Title:     Value{Kind: KindStructured},
				Date:      str("2024-01-01"),
				Tags:      []Value{str("ok"), {Kind: KindStructured}},
				Thumbnail: &Value{Text: "true", Kind: KindBool},
			},
			fields: []string{"tags", "thumbnail", "title"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problems := Problems(Validate(tt.input, isISODate))
			if len(problems) != len(tt.fields) {
				t.Fatalf("expected %d problems, got %v", len(tt.fields), problems)
			}
			for i, field := range tt.fields {
				if !strings.HasPrefix(problems[i], field+": ") {
					t.Errorf("problem %d = %q, want field %q", i, problems[i], field)
				}
			}
		})
	}
}
