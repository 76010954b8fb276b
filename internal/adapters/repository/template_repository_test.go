package repository

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/kamal-hamza/deckindex/pkg/config"
	"github.com/kamal-hamza/deckindex/pkg/workspace"
)

func newTestWorkspace(t *testing.T) *workspace.Workspace {
	t.Helper()
	ws, err := workspace.New(t.TempDir(), config.DefaultConfig())
	if err != nil {
		t.Fatalf("workspace.New() error: %v", err)
	}
	return ws
}

func TestTemplateRepository_LoadMissing(t *testing.T) {
	repo := NewTemplateRepository(newTestWorkspace(t))

	_, err := repo.Load(context.Background())
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestTemplateRepository_CreateAndLoad(t *testing.T) {
	ctx := context.Background()
	repo := NewTemplateRepository(newTestWorkspace(t))

	if repo.Exists(ctx) {
		t.Fatal("template should not exist yet")
	}
	if err := repo.Create(ctx, "<body>{{PRESENTATIONS}}</body>", false); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got != "<body>{{PRESENTATIONS}}</body>" {
		t.Errorf("Load() = %q", got)
	}

	if err := repo.Create(ctx, "other", false); err == nil {
		t.Error("expected Create to refuse overwriting")
	}
	if err := repo.Create(ctx, "other", true); err != nil {
		t.Errorf("Create with overwrite error: %v", err)
	}
}

func TestPageWriter_Overwrites(t *testing.T) {
	ctx := context.Background()
	ws := newTestWorkspace(t)
	w := NewPageWriter(ws)

	if _, err := w.Write(ctx, []byte("first")); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	loc, err := w.Write(ctx, []byte("second"))
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if loc != ws.OutputPath {
		t.Errorf("location = %q, want %q", loc, ws.OutputPath)
	}

	data, err := os.ReadFile(ws.OutputPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second" {
		t.Errorf("output = %q, want 'second'", data)
	}
}
