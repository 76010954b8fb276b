package domain

import (
	"math"
	"path"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order when interpreting a presentation date
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01",
	"2006",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
}

// Presentation represents one presentation discovered under the root directory
type Presentation struct {
	Title       string
	Description string
	Date        string
	Slides      *string  // as written in the descriptor, nil when omitted
	Tags        []string // nil when the descriptor omits it
	Thumbnail   string   // "" when the descriptor omits it

	Dir           string // source directory name, e.g. "intro-to-go"
	Path          string // e.g. "presentations/intro-to-go/index.html"
	ThumbnailPath string // e.g. "presentations/intro-to-go/thumbnail.png"
}

// LinkLayout holds the constants used to derive a presentation's links
type LinkLayout struct {
	Prefix           string // "presentations"
	EntryPage        string // "index.html"
	DefaultThumbnail string // "thumbnail.png"
}

// AttachLinks derives Path and ThumbnailPath from the directory name.
// The thumbnail is cleaned as if rooted at the directory, so ".." segments
// cannot climb out of it.
func (p *Presentation) AttachLinks(dir string, layout LinkLayout) {
	p.Dir = dir

	thumb := layout.DefaultThumbnail
	if t := strings.TrimSpace(p.Thumbnail); t != "" {
		if cleaned := path.Clean("/" + strings.ReplaceAll(t, "\\", "/")); cleaned != "/" {
			thumb = cleaned
		}
	}

	p.Path = joinLink(layout.Prefix, dir, layout.EntryPage)
	p.ThumbnailPath = joinLink(layout.Prefix, dir, thumb)
}

func joinLink(parts ...string) string {
	var kept []string
	for _, part := range parts {
		if part = strings.Trim(part, "/"); part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, "/")
}

// ParseDate interprets a raw date string using the supported layouts
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParsedDate returns the presentation date and whether it could be parsed
func (p *Presentation) ParsedDate() (time.Time, bool) {
	return ParseDate(p.Date)
}

// SlidesLabel returns the slide count as written, or placeholder when absent
func (p *Presentation) SlidesLabel(placeholder string) string {
	if p.Slides == nil {
		return placeholder
	}
	return *p.Slides
}

// SlideCount interprets the slide count as a number. Fractions are truncated.
func (p *Presentation) SlideCount() (int, bool) {
	if p.Slides == nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(*p.Slides), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

// HasTags reports whether there is at least one tag to display
func (p *Presentation) HasTags() bool {
	return len(p.Tags) > 0
}

// HasTag checks if the presentation carries a specific tag
func (p *Presentation) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// GetTagsString returns tags as a comma-separated string
func (p *Presentation) GetTagsString() string {
	if len(p.Tags) == 0 {
		return "-"
	}
	return strings.Join(p.Tags, ", ")
}

// GetDisplayDate returns a human-readable date
func (p *Presentation) GetDisplayDate() string {
	t, ok := p.ParsedDate()
	if !ok {
		if p.Date == "" {
			return "-"
		}
		return p.Date
	}
	return t.Format("Jan 02, 2006")
}
