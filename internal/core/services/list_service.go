package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/kamal-hamza/deckindex/internal/core/domain"
	"github.com/kamal-hamza/deckindex/internal/core/ports"
)

// ListService handles listing and searching presentations
type ListService struct {
	repo ports.Repository
}

// NewListService creates a new list service
func NewListService(repo ports.Repository) *ListService {
	return &ListService{
		repo: repo,
	}
}

// ListRequest represents a request to list presentations
type ListRequest struct {
	TagFilter string // Filter by specific tag (optional)
	Query     string // Fuzzy match against title, directory and tags (optional)
}

// ListResponse represents the response from listing presentations
type ListResponse struct {
	Presentations []domain.Presentation
	Total         int
}

// Execute lists presentations in index order, optionally filtered.
// With a query the best matches come first instead.
func (s *ListService) Execute(ctx context.Context, req ListRequest) (*ListResponse, error) {
	presentations, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list presentations: %w", err)
	}

	SortByDateDesc(presentations)

	if req.TagFilter != "" {
		presentations = filterByTag(presentations, req.TagFilter)
	}

	if strings.TrimSpace(req.Query) != "" {
		presentations = fuzzySearch(presentations, req.Query)
	}

	return &ListResponse{
		Presentations: presentations,
		Total:         len(presentations),
	}, nil
}

func filterByTag(presentations []domain.Presentation, tag string) []domain.Presentation {
	var filtered []domain.Presentation
	for _, p := range presentations {
		if p.HasTag(tag) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// fuzzyMatch represents a scored match
type fuzzyMatch struct {
	presentation domain.Presentation
	score        int
}

// fuzzySearch scores titles, directory names and tags, highest first
func fuzzySearch(presentations []domain.Presentation, query string) []domain.Presentation {
	query = strings.TrimSpace(query)

	var matches []fuzzyMatch
	for _, p := range presentations {
		if score := fuzzyMatchScore(p.Title, query); score > 0 {
			matches = append(matches, fuzzyMatch{presentation: p, score: score + 1000})
			continue
		}

		if score := fuzzyMatchScore(p.Dir, query); score > 0 {
			matches = append(matches, fuzzyMatch{presentation: p, score: score + 500})
			continue
		}

		for _, tag := range p.Tags {
			if score := fuzzyMatchScore(tag, query); score > 0 {
				matches = append(matches, fuzzyMatch{presentation: p, score: score + 200})
				break
			}
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	result := make([]domain.Presentation, len(matches))
	for i, m := range matches {
		result[i] = m.presentation
	}
	return result
}

// fuzzyMatchScore calculates a score for fuzzy matching query against text
// Returns 0 if no match, higher scores for better matches
func fuzzyMatchScore(text, query string) int {
	if text == "" || query == "" {
		return 0
	}

	if text == query {
		return 10000
	}

	textLower := strings.ToLower(text)
	queryLower := strings.ToLower(query)

	if textLower == queryLower {
		return 9000
	}

	if strings.Contains(textLower, queryLower) {
		if strings.HasPrefix(textLower, queryLower) {
			return 7000
		}
		return 5000
	}

	// Subsequence match, rewarding runs and word starts
	score := 0
	textRunes := []rune(textLower)
	queryRunes := []rune(queryLower)

	queryIdx := 0
	run := 0
	lastMatchIdx := -1

	for textIdx := 0; textIdx < len(textRunes) && queryIdx < len(queryRunes); textIdx++ {
		if textRunes[textIdx] != queryRunes[queryIdx] {
			continue
		}

		score += 100
		if textIdx == lastMatchIdx+1 {
			run++
			score += run * 50
		} else {
			run = 0
		}

		if textIdx == 0 {
			score += 500
		} else if prev := textRunes[textIdx-1]; unicode.IsSpace(prev) || prev == '-' || prev == '_' {
			score += 200
		}

		lastMatchIdx = textIdx
		queryIdx++
	}

	if queryIdx != len(queryRunes) {
		return 0
	}

	// Penalty for gaps between matches
	score -= (lastMatchIdx + 1 - len(queryRunes)) * 10

	return score
}
