// Package inmemory provides an in-process implementation of memory.Backend.
//
// Records live in process memory and are lost on exit. Search is a
// case-insensitive substring scan and recall is an importance sort. It is a
// local-dev and test story, not a competitor to the real engram server. The
// one backend behavior mirrored faithfully is content deduplication: storing
// byte-identical content in the same namespace reports a duplicate instead of
// creating a second record.
package inmemory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/engram-memory/engram/pkg/memory"
)

// Backend implements memory.Backend using in-process data structures.
type Backend struct {
	namespace string

	mu      sync.RWMutex
	nextID  int64
	records map[int64]memory.Memory

	// healthy controls what Health reports; defaults to true.
	healthy bool
}

// NewBackend creates an in-memory backend scoped to the given namespace.
func NewBackend(namespace string) *Backend {
	return &Backend{
		namespace: namespace,
		nextID:    1,
		records:   make(map[int64]memory.Memory),
		healthy:   true,
	}
}

// SetHealthy overrides what Health reports. Used by tests to simulate an
// unreachable backend.
func (b *Backend) SetHealthy(healthy bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.healthy = healthy
}

// Store appends a record, deduplicating on exact content.
func (b *Backend) Store(_ context.Context, content string, typ memory.Type, importance int, tags []string) (memory.StoreResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, rec := range b.records {
		if rec.Content == content {
			return memory.StoreResult{Duplicate: true}, nil
		}
	}

	id := b.nextID
	b.nextID++

	now := time.Now().UTC()
	b.records[id] = memory.Memory{
		ID:         id,
		Content:    content,
		Type:       typ,
		Importance: importance,
		Namespace:  b.namespace,
		Tags:       append([]string(nil), tags...),
		CreatedAt:  now,
		AccessedAt: now,
	}

	return memory.StoreResult{ID: &id}, nil
}

// Search performs a case-insensitive substring scan. Every hit receives a
// constant score of 1.0 and the "like" match type.
func (b *Backend) Search(_ context.Context, query string, limit int) ([]memory.SearchHit, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	needle := strings.ToLower(query)

	hits := make([]memory.SearchHit, 0, limit)
	for _, rec := range b.sorted() {
		if limit > 0 && len(hits) >= limit {
			break
		}
		if query == "" || strings.Contains(strings.ToLower(rec.Content), needle) {
			hits = append(hits, memory.SearchHit{Memory: rec, Score: 1.0, MatchType: "like"})
		}
	}

	return hits, nil
}

// Recall returns records at or above minImportance, most important first.
func (b *Backend) Recall(_ context.Context, limit, minImportance int) ([]memory.Memory, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	records := b.sorted()
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Importance > records[j].Importance
	})

	result := make([]memory.Memory, 0, limit)
	for _, rec := range records {
		if limit > 0 && len(result) >= limit {
			break
		}
		if rec.Importance >= minImportance {
			result = append(result, rec)
		}
	}

	return result, nil
}

// Delete removes a record by id.
func (b *Backend) Delete(_ context.Context, id int64) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.records[id]; !ok {
		return false, nil
	}

	delete(b.records, id)
	return true, nil
}

// Stats aggregates over all stored records.
func (b *Backend) Stats(_ context.Context) (memory.Stats, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	stats := memory.Stats{
		ByType:    make(map[string]int),
		Namespace: b.namespace,
	}

	total := 0
	for _, rec := range b.records {
		stats.TotalMemories++
		stats.ByType[string(rec.Type)]++
		total += rec.Importance
	}

	if stats.TotalMemories > 0 {
		stats.AverageImportance = float64(total) / float64(stats.TotalMemories)
	}

	return stats, nil
}

// Health reports the value set via SetHealthy (true by default).
func (b *Backend) Health(_ context.Context) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.healthy
}

// sorted returns all records in insertion (id) order.
func (b *Backend) sorted() []memory.Memory {
	records := make([]memory.Memory, 0, len(b.records))
	for _, rec := range b.records {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })

	return records
}
