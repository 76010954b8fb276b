package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kamal-hamza/deckindex/internal/core/ports/mocks"
	"github.com/kamal-hamza/deckindex/pkg/config"
	"github.com/kamal-hamza/deckindex/pkg/workspace"
)

func setupRepository(t *testing.T, cfg *config.Config) (*PresentationRepository, *workspace.Workspace, *mocks.Reporter) {
	t.Helper()
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	ws, err := workspace.New(t.TempDir(), cfg)
	if err != nil {
		t.Fatalf("workspace.New() error: %v", err)
	}
	rep := mocks.NewReporter()
	return NewPresentationRepository(ws, cfg, rep), ws, rep
}

func writePresentation(t *testing.T, ws *workspace.Workspace, dir, descriptorName, content string) {
	t.Helper()
	path := ws.GetPresentationPath(dir)
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatal(err)
	}
	if descriptorName == "" {
		return
	}
	if err := os.WriteFile(filepath.Join(path, descriptorName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestList_MissingRootIsCreated(t *testing.T) {
	repo, ws, rep := setupRepository(t, nil)

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no presentations, got %d", len(got))
	}
	if info, err := os.Stat(ws.PresentationsPath); err != nil || !info.IsDir() {
		t.Error("expected presentations directory to be created")
	}
	if len(rep.Infos) != 1 {
		t.Errorf("expected one creation notice, got %v", rep.Infos)
	}
}

func TestList_ValidDescriptor(t *testing.T) {
	repo, ws, rep := setupRepository(t, nil)
	writePresentation(t, ws, "X", "metadata.json",
		`{"title":"T","description":"D","date":"2024-01-01","slides":10,"tags":["a","b"]}`)

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 presentation, got %d", len(got))
	}

	p := got[0]
	if p.Title != "T" || p.Description != "D" || p.Date != "2024-01-01" {
		t.Errorf("unexpected fields: %+v", p)
	}
	if p.Slides == nil || *p.Slides != "10" {
		t.Errorf("expected 10 slides, got %v", p.Slides)
	}
	if p.Path != "presentations/X/index.html" {
		t.Errorf("Path = %q", p.Path)
	}
	if p.ThumbnailPath != "presentations/X/thumbnail.png" {
		t.Errorf("ThumbnailPath = %q", p.ThumbnailPath)
	}
	if len(rep.Warnings)+len(rep.Errors) != 0 {
		t.Errorf("unexpected diagnostics: warnings=%v errors=%v", rep.Warnings, rep.Errors)
	}
}

func TestList_DeclaredThumbnail(t *testing.T) {
	repo, ws, _ := setupRepository(t, nil)
	writePresentation(t, ws, "deck", "metadata.json",
		`{"title":"T","date":"2024-01-01","thumbnail":"cover.jpg"}`)

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(got) != 1 || got[0].ThumbnailPath != "presentations/deck/cover.jpg" {
		t.Errorf("unexpected result: %+v", got)
	}
}

func TestList_MissingDescriptorWarns(t *testing.T) {
	repo, ws, rep := setupRepository(t, nil)
	writePresentation(t, ws, "empty", "", "")
	writePresentation(t, ws, "good", "metadata.json", `{"title":"Good","date":"2024-01-01"}`)

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Good" {
		t.Errorf("expected only the good presentation, got %+v", got)
	}
	if len(rep.Warnings) != 1 || !strings.Contains(rep.Warnings[0], "empty") {
		t.Errorf("expected one warning naming the directory, got %v", rep.Warnings)
	}
}

func TestList_MalformedDescriptorIsIsolated(t *testing.T) {
	repo, ws, rep := setupRepository(t, nil)
	writePresentation(t, ws, "bad", "metadata.json", `{"title": "broken",`)
	writePresentation(t, ws, "good", "metadata.json", `{"title":"Good","date":"2024-01-01"}`)

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Good" {
		t.Errorf("expected only the good presentation, got %+v", got)
	}
	if len(rep.Errors) != 1 {
		t.Fatalf("expected one error, got %v", rep.Errors)
	}
	if !strings.Contains(rep.Errors[0], filepath.Join("bad", "metadata.json")) {
		t.Errorf("error should name the descriptor path: %q", rep.Errors[0])
	}
}

func TestList_SkipsFilesAndHiddenDirs(t *testing.T) {
	repo, ws, rep := setupRepository(t, nil)
	if err := os.MkdirAll(ws.PresentationsPath, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(ws.PresentationsPath, "README.md"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	writePresentation(t, ws, ".git", "", "")

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no presentations, got %d", len(got))
	}
	if len(rep.Warnings) != 0 {
		t.Errorf("files and hidden dirs should not warn: %v", rep.Warnings)
	}
}

func TestList_ValidationProblemsWarnButKeepRecord(t *testing.T) {
	repo, ws, rep := setupRepository(t, nil)
	writePresentation(t, ws, "undated", "metadata.json", `{"title":"No Date"}`)

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected record to be kept, got %d", len(got))
	}
	if len(rep.Warnings) != 1 || !strings.Contains(rep.Warnings[0], "date") {
		t.Errorf("expected one date warning, got %v", rep.Warnings)
	}
}

func TestList_YAMLDescriptor(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Descriptor = "metadata.yaml"
	repo, ws, _ := setupRepository(t, cfg)
	writePresentation(t, ws, "deck", "metadata.yaml", "title: From YAML\ndate: \"2024-03-01\"\n")

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "From YAML" {
		t.Errorf("unexpected result: %+v", got)
	}
}

func TestList_RootIsFile(t *testing.T) {
	repo, ws, _ := setupRepository(t, nil)
	if err := os.WriteFile(ws.PresentationsPath, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := repo.List(context.Background()); err == nil {
		t.Error("expected error when root is a regular file")
	}
}

func TestList_LooseValuesAreKept(t *testing.T) {
	repo, ws, rep := setupRepository(t, nil)
	writePresentation(t, ws, "deck", "metadata.json",
		`{"title":42,"date":"2024-03","slides":10.0,"tags":[]}`)
	writePresentation(t, ws, "blank", "metadata.json",
		`{"title":"B","date":"2024-01-01","slides":""}`)

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 presentations, got %d (errors: %v)", len(got), rep.Errors)
	}

	// ReadDir order: blank, deck
	if got[0].Slides != nil {
		t.Errorf("an empty slide count should be treated as absent, got %q", *got[0].Slides)
	}
	deck := got[1]
	if deck.Title != "42" || deck.Date != "2024-03" {
		t.Errorf("unexpected fields: %+v", deck)
	}
	if deck.Slides == nil || *deck.Slides != "10.0" {
		t.Errorf("expected slides as written, got %v", deck.Slides)
	}
	if deck.Tags == nil || len(deck.Tags) != 0 {
		t.Errorf("expected an empty, non-nil tag list, got %#v", deck.Tags)
	}
	if len(rep.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", rep.Warnings)
	}
}
