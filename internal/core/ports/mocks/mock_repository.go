package mocks

import (
	"context"
	"errors"
	"sync"

	"github.com/kamal-hamza/deckindex/internal/core/domain"
)

// ErrWriteFailed is a canned failure for writer tests
var ErrWriteFailed = errors.New("write failed")

// MockRepository is a mock implementation of the Repository interface for testing
type MockRepository struct {
	mu            sync.RWMutex
	presentations []domain.Presentation
	err           error
}

// NewMockRepository creates a new mock repository
func NewMockRepository() *MockRepository {
	return &MockRepository{}
}

// Add appends a presentation to be returned by List
func (m *MockRepository) Add(p domain.Presentation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.presentations = append(m.presentations, p)
}

// SetError makes List fail with err
func (m *MockRepository) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// List returns a copy of the stored presentations
func (m *MockRepository) List(ctx context.Context) ([]domain.Presentation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.Presentation, len(m.presentations))
	copy(out, m.presentations)
	return out, nil
}

// MockTemplateRepository returns a fixed template
type MockTemplateRepository struct {
	Template string
	Err      error
}

// NewMockTemplateRepository creates a template repository returning content
func NewMockTemplateRepository(content string) *MockTemplateRepository {
	return &MockTemplateRepository{Template: content}
}

// Load returns the configured template or error
func (m *MockTemplateRepository) Load(ctx context.Context) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.Template, nil
}

// MockPageWriter keeps the last written document in memory
type MockPageWriter struct {
	mu       sync.Mutex
	Location string
	Err      error
	Writes   int
	content  []byte
}

// NewMockPageWriter creates a page writer reporting location
func NewMockPageWriter(location string) *MockPageWriter {
	return &MockPageWriter{Location: location}
}

// Write records content
func (m *MockPageWriter) Write(ctx context.Context, content []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return "", m.Err
	}
	m.content = append([]byte(nil), content...)
	m.Writes++
	return m.Location, nil
}

// Content returns the last written document
func (m *MockPageWriter) Content() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return string(m.content)
}
