package reporter

import (
	"fmt"
	"io"
	"sync"

	"github.com/kamal-hamza/deckindex/pkg/ui"
)

// Console implements the Reporter port by printing styled lines
type Console struct {
	mu    sync.Mutex
	out   io.Writer
	quiet bool

	warnings int
	errors   int
}

// NewConsole creates a reporter writing to out. When quiet is set, info
// lines are dropped; warnings and errors are always printed.
func NewConsole(out io.Writer, quiet bool) *Console {
	return &Console{out: out, quiet: quiet}
}

// Info prints a notice unless the console is quiet
func (c *Console) Info(msg string) {
	if c.quiet {
		return
	}
	c.print(ui.FormatInfo(msg))
}

// Warn prints and counts a warning
func (c *Console) Warn(msg string) {
	c.mu.Lock()
	c.warnings++
	c.mu.Unlock()
	c.print(ui.FormatWarning(msg))
}

// Error prints and counts a non-fatal error
func (c *Console) Error(msg string) {
	c.mu.Lock()
	c.errors++
	c.mu.Unlock()
	c.print(ui.FormatError(msg))
}

// Counts returns how many warnings and errors were reported so far
func (c *Console) Counts() (warnings, errors int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.warnings, c.errors
}

// Reset clears the counters, used between watch rebuilds
func (c *Console) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.warnings, c.errors = 0, 0
}

func (c *Console) print(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, line)
}
