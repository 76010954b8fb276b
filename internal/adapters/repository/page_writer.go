package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kamal-hamza/deckindex/pkg/workspace"
)

// PageWriter implements the PageWriter port by writing the output file
type PageWriter struct {
	workspace *workspace.Workspace
}

// NewPageWriter creates a writer targeting the workspace output path
func NewPageWriter(ws *workspace.Workspace) *PageWriter {
	return &PageWriter{
		workspace: ws,
	}
}

// Write replaces the output file with content
func (w *PageWriter) Write(ctx context.Context, content []byte) (string, error) {
	if err := writeFile(w.workspace.OutputPath, content); err != nil {
		return "", err
	}
	return w.workspace.OutputPath, nil
}

func writeFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
