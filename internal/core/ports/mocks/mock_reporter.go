package mocks

import "sync"

// Reporter records diagnostics for assertions
type Reporter struct {
	mu       sync.Mutex
	Infos    []string
	Warnings []string
	Errors   []string
}

// NewReporter creates an empty recording reporter
func NewReporter() *Reporter {
	return &Reporter{}
}

func (r *Reporter) Info(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Infos = append(r.Infos, msg)
}

func (r *Reporter) Warn(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Warnings = append(r.Warnings, msg)
}

func (r *Reporter) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors = append(r.Errors, msg)
}
