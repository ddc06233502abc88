// Remembers the change stats of commits we have already diffed.
//
// Computing stats means diffing each commit against its parent, which
// dominates the runtime of the native backend on large repositories. Commits
// are immutable, so stats keyed by hash never go stale.
package cache

import (
	"fmt"
	"time"

	"github.com/sinclairtarget/git-contrib/internal/git"
)

type Entry struct {
	Hash         string `json:"hash"`
	Insertions   int    `json:"insertions"`
	Deletions    int    `json:"deletions"`
	FilesChanged int    `json:"files_changed"`
}

func (e Entry) Stats() git.ChangeStats {
	return git.ChangeStats{
		Insertions:   e.Insertions,
		Deletions:    e.Deletions,
		FilesChanged: e.FilesChanged,
	}
}

type Backend interface {
	Name() string
	Load() ([]Entry, error)
	Add(entries []Entry) error
	Clear() error
}

// Implements git.StatsCache. Loaded once, written back on Close().
type Cache struct {
	backend Backend
	known   map[string]git.ChangeStats
	pending []Entry
	hits    int
	misses  int
}

func NewCache(b Backend) *Cache {
	return &Cache{
		backend: b,
		known:   map[string]git.ChangeStats{},
	}
}

func (c *Cache) Name() string {
	return c.backend.Name()
}

func (c *Cache) Open() error {
	start := time.Now()

	entries, err := c.backend.Load()
	if err != nil {
		return fmt.Errorf("error loading %s cache: %w", c.backend.Name(), err)
	}

	for _, e := range entries {
		c.known[e.Hash] = e.Stats()
	}

	elapsed := time.Now().Sub(start)
	logger().Debug(
		"cache opened",
		"backend",
		c.backend.Name(),
		"entries",
		len(entries),
		"duration_ms",
		elapsed.Milliseconds(),
	)

	return nil
}

func (c *Cache) Lookup(hash string) (git.ChangeStats, bool) {
	stats, ok := c.known[hash]
	if ok {
		c.hits += 1
	} else {
		c.misses += 1
	}

	return stats, ok
}

func (c *Cache) Store(hash string, stats git.ChangeStats) {
	if _, ok := c.known[hash]; ok {
		return
	}

	c.known[hash] = stats
	c.pending = append(c.pending, Entry{
		Hash:         hash,
		Insertions:   stats.Insertions,
		Deletions:    stats.Deletions,
		FilesChanged: stats.FilesChanged,
	})
}

// Writes out any stats stored since Open().
func (c *Cache) Close() error {
	logger().Debug("cache closing", "hits", c.hits, "misses", c.misses)

	if len(c.pending) == 0 {
		return nil
	}

	start := time.Now()

	err := c.backend.Add(c.pending)
	if err != nil {
		return fmt.Errorf("error writing %s cache: %w", c.backend.Name(), err)
	}

	elapsed := time.Now().Sub(start)
	logger().Debug(
		"cache add",
		"entries",
		len(c.pending),
		"duration_ms",
		elapsed.Milliseconds(),
	)

	c.pending = nil
	return nil
}

func (c *Cache) Clear() error {
	c.known = map[string]git.ChangeStats{}
	c.pending = nil
	return c.backend.Clear()
}
