package repository

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/kamal-hamza/deckindex/pkg/workspace"
)

// ErrTemplateNotFound is returned when the index template does not exist
var ErrTemplateNotFound = errors.New("template not found")

// TemplateRepository implements the TemplateRepository port using the file system
type TemplateRepository struct {
	workspace *workspace.Workspace
}

// NewTemplateRepository creates a new file-based template repository
func NewTemplateRepository(ws *workspace.Workspace) *TemplateRepository {
	return &TemplateRepository{
		workspace: ws,
	}
}

// Load reads the index page template
func (r *TemplateRepository) Load(ctx context.Context) (string, error) {
	data, err := os.ReadFile(r.workspace.TemplatePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, r.workspace.TemplatePath)
		}
		return "", fmt.Errorf("failed to read template: %w", err)
	}
	return string(data), nil
}

// Exists checks if the template file is present
func (r *TemplateRepository) Exists(ctx context.Context) bool {
	_, err := os.Stat(r.workspace.TemplatePath)
	return err == nil
}

// Create writes content as the template. It refuses to replace an existing
// template unless overwrite is set.
func (r *TemplateRepository) Create(ctx context.Context, content string, overwrite bool) error {
	if !overwrite && r.Exists(ctx) {
		return fmt.Errorf("template already exists: %s", r.workspace.TemplatePath)
	}
	return writeFile(r.workspace.TemplatePath, []byte(content))
}
