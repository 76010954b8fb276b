package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kamal-hamza/deckindex/internal/core/domain"
	"github.com/kamal-hamza/deckindex/internal/core/ports"
	"github.com/kamal-hamza/deckindex/pkg/config"
	"github.com/kamal-hamza/deckindex/pkg/descriptor"
	"github.com/kamal-hamza/deckindex/pkg/workspace"
)

// PresentationRepository implements the Repository port by scanning the
// presentations directory for descriptors
type PresentationRepository struct {
	workspace  *workspace.Workspace
	descriptor string
	layout     domain.LinkLayout
	reporter   ports.Reporter
}

// NewPresentationRepository creates a new file-based presentation repository
func NewPresentationRepository(ws *workspace.Workspace, cfg *config.Config, reporter ports.Reporter) *PresentationRepository {
	return &PresentationRepository{
		workspace:  ws,
		descriptor: cfg.Descriptor,
		layout: domain.LinkLayout{
			Prefix:           cfg.LinkPrefix,
			EntryPage:        cfg.EntryPage,
			DefaultThumbnail: cfg.DefaultThumbnail,
		},
		reporter: reporter,
	}
}

// List scans every immediate subdirectory of the presentations directory.
// A missing root is created and yields no presentations.
func (r *PresentationRepository) List(ctx context.Context) ([]domain.Presentation, error) {
	presentations := []domain.Presentation{}

	created, err := r.workspace.EnsurePresentations()
	if err != nil {
		return nil, err
	}
	if created {
		r.reporter.Info(fmt.Sprintf("%s did not exist, created an empty directory", r.workspace.Rel(r.workspace.PresentationsPath)))
		return presentations, nil
	}

	entries, err := os.ReadDir(r.workspace.PresentationsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read presentations directory: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		dirPath := r.workspace.GetPresentationPath(name)
		if !isDir(entry, dirPath) {
			continue
		}

		p, ok := r.load(name, dirPath)
		if ok {
			presentations = append(presentations, p)
		}
	}

	return presentations, nil
}

// load reads one presentation directory. Problems are reported and the
// directory is skipped.
func (r *PresentationRepository) load(name, dirPath string) (domain.Presentation, bool) {
	descPath := filepath.Join(dirPath, r.descriptor)
	relDesc := r.workspace.Rel(descPath)

	data, err := os.ReadFile(descPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.reporter.Warn(fmt.Sprintf("%s has no %s, skipping", r.workspace.Rel(dirPath), r.descriptor))
		} else {
			r.reporter.Error(fmt.Sprintf("failed to read %s: %v", relDesc, err))
		}
		return domain.Presentation{}, false
	}

	d, err := descriptor.Decode(r.descriptor, data)
	if err != nil {
		r.reporter.Error(fmt.Sprintf("failed to parse %s: %v", relDesc, err))
		return domain.Presentation{}, false
	}

	for _, problem := range descriptor.Problems(descriptor.Validate(d, isDate)) {
		r.reporter.Warn(fmt.Sprintf("%s: %s", relDesc, problem))
	}

	p := toPresentation(d)
	p.AttachLinks(name, r.layout)
	return p, true
}

func toPresentation(d *descriptor.Descriptor) domain.Presentation {
	p := domain.Presentation{
		Title:       d.Title.Text,
		Description: d.Description.Text,
		Date:        d.Date.Text,
		Slides:      descriptor.TextOf(d.Slides),
		Tags:        descriptor.Strings(d.Tags),
	}
	// An empty slide count shows the placeholder
	if p.Slides != nil && strings.TrimSpace(*p.Slides) == "" {
		p.Slides = nil
	}
	if d.Thumbnail != nil {
		p.Thumbnail = d.Thumbnail.Text
	}
	return p
}

func isDate(s string) bool {
	_, ok := domain.ParseDate(s)
	return ok
}

// isDir follows symlinks so linked presentation directories are included
func isDir(entry os.DirEntry, path string) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
