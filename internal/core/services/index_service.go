package services

import (
	"context"
	"fmt"

	"github.com/kamal-hamza/deckindex/internal/core/domain"
	"github.com/kamal-hamza/deckindex/internal/core/ports"
)

// IndexService runs the discover, order, render and write pipeline
type IndexService struct {
	repo        ports.Repository
	templates   ports.TemplateRepository
	writer      ports.PageWriter
	placeholder string
	render      RenderOptions
}

// NewIndexService creates a new index service
func NewIndexService(repo ports.Repository, templates ports.TemplateRepository, writer ports.PageWriter, placeholder string, render RenderOptions) *IndexService {
	return &IndexService{
		repo:        repo,
		templates:   templates,
		writer:      writer,
		placeholder: placeholder,
		render:      render,
	}
}

// BuildRequest represents a request to build the index page
type BuildRequest struct {
	// DryRun renders the page without writing it
	DryRun bool
}

// BuildResponse represents the response from building the index page
type BuildResponse struct {
	Presentations []domain.Presentation // in display order
	Total         int
	OutputPath    string // empty on a dry run
	Document      string
}

// Execute discovers presentations, sorts them and writes the index page.
// Per-presentation problems are reported through the repository and do not
// fail the build; a missing template or a failed write does.
func (s *IndexService) Execute(ctx context.Context, req BuildRequest) (*BuildResponse, error) {
	presentations, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to scan presentations: %w", err)
	}

	SortByDateDesc(presentations)

	template, err := s.templates.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}

	document, err := Substitute(template, s.placeholder, RenderPresentations(presentations, s.render))
	if err != nil {
		return nil, err
	}

	resp := &BuildResponse{
		Presentations: presentations,
		Total:         len(presentations),
		Document:      document,
	}

	if req.DryRun {
		return resp, nil
	}

	location, err := s.writer.Write(ctx, []byte(document))
	if err != nil {
		return nil, fmt.Errorf("failed to write index page: %w", err)
	}
	resp.OutputPath = location

	return resp, nil
}
