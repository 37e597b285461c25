// Package fresh implements the compiler's fresh-name generator: a
// monotonic counter, shared across all prefixes, used by the TACKY emitter to allocate
// temporaries and labels that are guaranteed unique within one compilation.
package fresh

import (
	"fmt"
	"sync"
)

// ----------------------------------------------------------------------------
// Generator

// A 'Generator' hands out names of the form "<prefix>.<N>" where N
// increments on every call, regardless of prefix: the counter is shared
// across all prefixes, so names stay comparable by recency across a
// whole compilation rather than resetting per prefix.
//
// A Generator is request-scoped: the driver allocates one per compilation
// (see pkg/compiler) so concurrent compilations never share state, and
// tests get fully deterministic, reproducible output.
type Generator struct {
	mu      sync.Mutex
	counter int
}

// Returns a brand new 'Generator' with its counter reset to zero.
func New() *Generator { return &Generator{} }

// Allocates and returns the next fresh name for 'prefix'. Safe for
// concurrent use, though a single compilation never needs it to be:
// the pipeline itself is single-threaded.
func (g *Generator) Fresh(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	name := fmt.Sprintf("%s.%d", prefix, g.counter)
	g.counter++
	return name
}

// Returns how many names this generator has produced so far. Exposed
// for tests that want to assert on determinism without hard-coding
// specific temporary names.
func (g *Generator) Count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.counter
}
