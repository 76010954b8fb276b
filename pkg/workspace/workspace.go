package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kamal-hamza/deckindex/pkg/config"
)

// Workspace represents the directory a site is built in
type Workspace struct {
	BaseDir           string
	PresentationsPath string
	TemplatePath      string
	OutputPath        string
	ConfigPath        string
}

// New resolves the configured locations against baseDir.
// Absolute paths in cfg are kept as they are.
func New(baseDir string, cfg *config.Config) (*Workspace, error) {
	base, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workspace directory: %w", err)
	}

	return &Workspace{
		BaseDir:           base,
		PresentationsPath: resolve(base, cfg.PresentationsDir),
		TemplatePath:      resolve(base, cfg.TemplateFile),
		OutputPath:        resolve(base, cfg.OutputFile),
		ConfigPath:        filepath.Join(base, config.DefaultFileName),
	}, nil
}

func resolve(base, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

// EnsurePresentations creates the presentations directory when missing.
// created reports whether it had to be made.
func (w *Workspace) EnsurePresentations() (created bool, err error) {
	info, err := os.Stat(w.PresentationsPath)
	if err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("%s exists but is not a directory", w.PresentationsPath)
		}
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to inspect %s: %w", w.PresentationsPath, err)
	}

	if err := os.MkdirAll(w.PresentationsPath, 0755); err != nil {
		return false, fmt.Errorf("failed to create directory %s: %w", w.PresentationsPath, err)
	}
	return true, nil
}

// Initialize creates the directory structure if it doesn't exist
func (w *Workspace) Initialize() error {
	directories := []string{
		w.PresentationsPath,
		filepath.Dir(w.TemplatePath),
		filepath.Dir(w.OutputPath),
	}

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// GetPresentationPath returns the full path for a presentation directory
func (w *Workspace) GetPresentationPath(dir string) string {
	return filepath.Join(w.PresentationsPath, dir)
}

// Rel returns p relative to the base directory when possible
func (w *Workspace) Rel(p string) string {
	if rel, err := filepath.Rel(w.BaseDir, p); err == nil {
		return rel
	}
	return p
}
