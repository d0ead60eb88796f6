// Package sequence issues the zero-padded identifiers used for customers
// and accounts ("C001", "A042", ...).
package sequence

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// DefaultWidth is the minimum number of digits in a generated identifier.
const DefaultWidth = 3

// Generator issues monotonically increasing identifiers with a fixed
// prefix. Safe for concurrent use.
type Generator struct {
	mu     sync.Mutex
	prefix string
	width  int
	next   int64
}

// New creates a generator whose first identifier is prefix followed by
// "001". Identifiers grow past the padding naturally ("A999" -> "A1000").
func New(prefix string) *Generator {
	return &Generator{prefix: prefix, width: DefaultWidth, next: 1}
}

// Next returns the next identifier in the sequence.
func (g *Generator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := fmt.Sprintf("%s%0*d", g.prefix, g.width, g.next)
	g.next++
	return id
}

// Peek returns the identifier Next would issue, without consuming it.
func (g *Generator) Peek() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fmt.Sprintf("%s%0*d", g.prefix, g.width, g.next)
}

// Reseed advances the sequence past the largest well-formed identifier in
// ids, so identifiers issued after a reload never collide with stored ones.
// Malformed identifiers are ignored. The sequence never moves backwards.
func (g *Generator) Reseed(ids []string) {
	var max int64
	for _, id := range ids {
		n, ok := g.parse(id)
		if ok && n > max {
			max = n
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if max+1 > g.next {
		g.next = max + 1
	}
}

func (g *Generator) parse(id string) (int64, bool) {
	rest, found := strings.CutPrefix(id, g.prefix)
	if !found || rest == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
