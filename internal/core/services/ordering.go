package services

import (
	"sort"
	"time"

	"github.com/kamal-hamza/deckindex/internal/core/domain"
)

// datedPresentation pairs a presentation with its parsed sort key
type datedPresentation struct {
	presentation domain.Presentation
	date         time.Time
	valid        bool
}

// SortByDateDesc orders presentations most recent first, in place.
// Equal dates keep their input order. Presentations whose date is missing
// or cannot be parsed go after every dated one, also in input order.
func SortByDateDesc(presentations []domain.Presentation) {
	dated := make([]datedPresentation, len(presentations))
	for i, p := range presentations {
		t, ok := p.ParsedDate()
		dated[i] = datedPresentation{presentation: p, date: t, valid: ok}
	}

	sort.SliceStable(dated, func(i, j int) bool {
		a, b := dated[i], dated[j]
		if a.valid != b.valid {
			return a.valid
		}
		return a.date.After(b.date)
	})

	for i := range dated {
		presentations[i] = dated[i].presentation
	}
}
