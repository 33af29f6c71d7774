package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGuardFiltersRecentSuggestions(t *testing.T) {
	t.Parallel()
	g := NewRecentGuard(10)
	now := time.Now()

	g.Remember("Valheim", now)

	names := g.FilterRecent([]string{"Valheim", "Among Us"}, 5*time.Minute, now)
	assert.Equal(t, []string{"Among Us"}, names)
}

func TestGuardMatchingIgnoresCase(t *testing.T) {
	t.Parallel()
	g := NewRecentGuard(10)
	now := time.Now()

	g.Remember("VALHEIM", now)

	names := g.FilterRecent([]string{"valheim"}, 5*time.Minute, now)
	assert.Empty(t, names)
}

func TestGuardWindowExpiry(t *testing.T) {
	t.Parallel()
	g := NewRecentGuard(10)
	now := time.Now()

	g.Remember("Valheim", now)

	// Inside the window the name is blocked
	names := g.FilterRecent([]string{"Valheim"}, 5*time.Minute, now.Add(4*time.Minute))
	assert.Empty(t, names)

	// Past the window it comes back, and the stale entry is pruned
	names = g.FilterRecent([]string{"Valheim"}, 5*time.Minute, now.Add(6*time.Minute))
	assert.Equal(t, []string{"Valheim"}, names)
	assert.Zero(t, g.Len())
}

func TestGuardShorterRetryWindow(t *testing.T) {
	t.Parallel()
	g := NewRecentGuard(10)
	now := time.Now()

	g.Remember("Valheim", now)

	// Three minutes in: blocked by the 5 minute window, allowed by the
	// 2 minute retry window.
	at := now.Add(3 * time.Minute)
	assert.Empty(t, g.FilterRecent([]string{"Valheim"}, 5*time.Minute, at))
	assert.Equal(t, []string{"Valheim"}, g.FilterRecent([]string{"Valheim"}, 2*time.Minute, at))
}

func TestGuardCapEvictsOldest(t *testing.T) {
	t.Parallel()
	g := NewRecentGuard(3)
	now := time.Now()

	g.Remember("a", now)
	g.Remember("b", now)
	g.Remember("c", now)
	g.Remember("d", now)

	assert.Equal(t, 3, g.Len())

	// "a" was evicted, so it is no longer blocked
	names := g.FilterRecent([]string{"a", "b", "c", "d"}, 5*time.Minute, now)
	assert.Equal(t, []string{"a"}, names)
}
