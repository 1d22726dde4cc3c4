// Package memory defines the contract between the engram orchestration layer
// and a memory backend.
//
// A backend owns persistence, full-text and semantic search, content-hash
// deduplication, and record lifecycle. This package only describes the
// operations the orchestration layer consumes: storing distilled facts,
// searching and recalling them, deleting by id, and reading aggregate stats.
//
// The [Backend] interface is intentionally request-shaped: every method is a
// single round-trip against the remote service, scoped to the namespace the
// backend was configured with. Backends are pluggable via configuration:
//
//	[backend]
//	host = "http://localhost:8000"
package memory

import (
	"context"
	"time"
)

// Type categorizes a memory record.
type Type string

const (
	TypeFact       Type = "fact"
	TypePreference Type = "preference"
	TypeDecision   Type = "decision"
	TypeErrorFix   Type = "error_fix"
	TypePattern    Type = "pattern"
	TypeWorkflow   Type = "workflow"
	TypeSummary    Type = "summary"
	TypeCustom     Type = "custom"
)

// Memory is a single record owned by the backend. The orchestration layer
// never mutates one directly; it only references records returned by search
// and recall.
type Memory struct {
	ID          int64     `json:"id"`
	Content     string    `json:"content"`
	Type        Type      `json:"memory_type"`
	Importance  int       `json:"importance"`
	Namespace   string    `json:"namespace"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	AccessedAt  time.Time `json:"accessed_at"`
	AccessCount int       `json:"access_count"`
}

// SearchHit pairs a memory with backend-assigned relevance metadata.
// MatchType is opaque to this layer ("fts", "semantic", "like", ...).
type SearchHit struct {
	Memory    Memory  `json:"memory"`
	Score     float64 `json:"score"`
	MatchType string  `json:"match_type"`
}

// StoreResult reports the outcome of a store call. When the backend
// recognizes the content as a duplicate, Duplicate is true and ID is nil.
type StoreResult struct {
	ID        *int64 `json:"id"`
	Duplicate bool   `json:"duplicate"`
}

// Stats is a read-only aggregate snapshot for display.
type Stats struct {
	TotalMemories     int            `json:"total_memories"`
	ByType            map[string]int `json:"by_type"`
	AverageImportance float64        `json:"average_importance"`
	DBSizeMB          float64        `json:"db_size_mb"`
	Namespace         string         `json:"namespace"`
}

// Backend handles storage and retrieval of memory records.
// Implementers talk to a remote memory service (or an in-process stand-in for
// tests) and scope every operation to a single configured namespace.
type Backend interface {
	// Store persists a distilled fact. The backend deduplicates by content
	// hash; a duplicate is reported via the result, not an error.
	Store(ctx context.Context, content string, typ Type, importance int, tags []string) (StoreResult, error)

	// Search returns records relevant to the query, best match first.
	Search(ctx context.Context, query string, limit int) ([]SearchHit, error)

	// Recall returns the highest-priority records at or above minImportance.
	Recall(ctx context.Context, limit, minImportance int) ([]Memory, error)

	// Delete removes a record by id. Returns false if no record existed.
	Delete(ctx context.Context, id int64) (bool, error)

	// Stats returns the aggregate snapshot for the configured namespace.
	Stats(ctx context.Context) (Stats, error)

	// Health reports whether the backend is reachable. It never returns an
	// error; any failure is folded into false.
	Health(ctx context.Context) bool
}
