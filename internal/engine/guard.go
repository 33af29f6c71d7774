package engine

import (
	"strings"
	"sync"
	"time"
)

// guardEntry is one remembered suggestion.
type guardEntry struct {
	name string // lowercased game name
	at   time.Time
}

// RecentGuard remembers recently suggested game names so back-to-back asks
// don't get the same answer. Entries are FIFO-capped; matching ignores case.
//
// The mutex covers only the entry slice. It is never held across store or
// model calls.
type RecentGuard struct {
	mu      sync.Mutex
	entries []guardEntry
	cap     int
}

// NewRecentGuard creates a guard remembering at most max entries.
func NewRecentGuard(max int) *RecentGuard {
	if max < 1 {
		max = 1
	}
	return &RecentGuard{cap: max}
}

// Remember records that a game was just suggested. The oldest entry is
// evicted when the cap is reached.
func (g *RecentGuard) Remember(name string, at time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.entries = append(g.entries, guardEntry{name: strings.ToLower(name), at: at})
	if len(g.entries) > g.cap {
		g.entries = g.entries[len(g.entries)-g.cap:]
	}
}

// FilterRecent returns the names not suggested within the window, preserving
// input order. Expired entries are pruned as a side effect.
func (g *RecentGuard) FilterRecent(names []string, window time.Duration, now time.Time) []string {
	g.mu.Lock()
	defer g.mu.Unlock()

	cutoff := now.Add(-window)
	kept := g.entries[:0]
	for _, e := range g.entries {
		if e.at.After(cutoff) {
			kept = append(kept, e)
		}
	}
	g.entries = kept

	recent := make(map[string]bool, len(g.entries))
	for _, e := range g.entries {
		recent[e.name] = true
	}

	out := make([]string, 0, len(names))
	for _, n := range names {
		if !recent[strings.ToLower(n)] {
			out = append(out, n)
		}
	}
	return out
}

// Len returns the number of remembered entries. Used by tests.
func (g *RecentGuard) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.entries)
}
