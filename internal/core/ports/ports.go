package ports

import (
	"context"

	"github.com/kamal-hamza/deckindex/internal/core/domain"
)

// Repository defines the port for presentation discovery
type Repository interface {
	// List returns every presentation with a readable descriptor.
	// Order is not meaningful. Per-directory problems are reported, not returned.
	List(ctx context.Context) ([]domain.Presentation, error)
}

// TemplateRepository defines the port for loading the index page template
type TemplateRepository interface {
	// Load returns the raw template document
	Load(ctx context.Context) (string, error)
}

// PageWriter defines the port for persisting the generated index page
type PageWriter interface {
	// Write stores the document, replacing anything already there.
	// Returns the location it was written to.
	Write(ctx context.Context, content []byte) (string, error)
}

// Reporter receives non-fatal diagnostics raised while building
type Reporter interface {
	Info(msg string)
	Warn(msg string)
	Error(msg string)
}
