// Package idgen mints prefixed, zero-padded identifiers such as "user_007".
package idgen

import (
	"fmt"
	"strconv"
	"strings"
)

// Allocator keeps one monotonic counter per prefix. Counters start at 1.
type Allocator struct {
	counters map[string]int
}

// NewAllocator returns an allocator with no counters seeded
func NewAllocator() *Allocator {
	return &Allocator{counters: make(map[string]int)}
}

// Sequence extracts the numeric part of id. ok is false when id lacks the
// prefix or the rest is not a plain non-negative integer.
func Sequence(prefix, id string) (int, bool) {
	rest, found := strings.CutPrefix(id, prefix)
	if !found || rest == "" {
		return 0, false
	}
	for _, r := range rest {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Seed raises the counter for prefix to one past the highest sequence in ids.
// It never lowers a counter, so an id is not minted twice.
func (a *Allocator) Seed(prefix string, ids []string) {
	next := 1
	for _, id := range ids {
		if n, ok := Sequence(prefix, id); ok && n+1 > next {
			next = n + 1
		}
	}
	if next > a.counters[prefix] {
		a.counters[prefix] = next
	}
}

// Peek returns the id Next would return without consuming it
func (a *Allocator) Peek(prefix string) string {
	return Format(prefix, a.counter(prefix))
}

// Next mints a new id for prefix
func (a *Allocator) Next(prefix string) string {
	n := a.counter(prefix)
	a.counters[prefix] = n + 1
	return Format(prefix, n)
}

func (a *Allocator) counter(prefix string) int {
	if n := a.counters[prefix]; n > 0 {
		return n
	}
	return 1
}

// Format renders prefix plus n padded to at least three digits
func Format(prefix string, n int) string {
	return fmt.Sprintf("%s%03d", prefix, n)
}
