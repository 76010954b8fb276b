package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/kamal-hamza/deckindex/internal/core/ports"
)

// StatsService summarises the discovered presentations
type StatsService struct {
	repo ports.Repository
}

// NewStatsService creates a new stats service
func NewStatsService(repo ports.Repository) *StatsService {
	return &StatsService{
		repo: repo,
	}
}

// Count is a label with the number of presentations carrying it
type Count struct {
	Label string
	Count int
}

// StatsResponse holds the summary
type StatsResponse struct {
	TotalPresentations int
	TotalSlides        int
	WithoutSlides      int
	Undated            int
	Tags               []Count // most used first, ties by label
	Years              []Count // oldest year first
}

// Execute computes statistics over every discovered presentation
func (s *StatsService) Execute(ctx context.Context) (*StatsResponse, error) {
	presentations, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list presentations: %w", err)
	}

	resp := &StatsResponse{TotalPresentations: len(presentations)}
	tags := map[string]int{}
	years := map[int]int{}

	for i := range presentations {
		p := &presentations[i]

		if n, ok := p.SlideCount(); ok {
			resp.TotalSlides += n
		} else {
			resp.WithoutSlides++
		}

		if t, ok := p.ParsedDate(); ok {
			years[t.Year()]++
		} else {
			resp.Undated++
		}

		seen := map[string]bool{}
		for _, tag := range p.Tags {
			if seen[tag] {
				continue
			}
			seen[tag] = true
			tags[tag]++
		}
	}

	for tag, n := range tags {
		resp.Tags = append(resp.Tags, Count{Label: tag, Count: n})
	}
	sort.Slice(resp.Tags, func(i, j int) bool {
		if resp.Tags[i].Count != resp.Tags[j].Count {
			return resp.Tags[i].Count > resp.Tags[j].Count
		}
		return resp.Tags[i].Label < resp.Tags[j].Label
	})

	yearKeys := make([]int, 0, len(years))
	for y := range years {
		yearKeys = append(yearKeys, y)
	}
	sort.Ints(yearKeys)
	for _, y := range yearKeys {
		resp.Years = append(resp.Years, Count{Label: strconv.Itoa(y), Count: years[y]})
	}

	return resp, nil
}
