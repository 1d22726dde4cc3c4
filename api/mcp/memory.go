package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/engram-memory/engram/pkg/memory"
	"github.com/engram-memory/engram/pkg/utils"
)

var (
	storeToolName    = "memory_store"
	storeDescription = "Store a memory in the engram backend. The backend deduplicates automatically by content hash."

	searchToolName    = "memory_search"
	searchDescription = "Search stored memories by free text. Returns the most relevant memories for the query."

	recallToolName    = "memory_recall"
	recallDescription = "Retrieve the highest-priority memories at or above a minimum importance, for context injection."

	forgetToolName    = "memory_forget"
	forgetDescription = "Delete a memory by its ID. Reports whether a record existed."

	statsToolName    = "memory_stats"
	statsDescription = "Get memory statistics: total count, per-type counts, average importance, storage size."
)

const (
	defaultType          = memory.TypeFact
	defaultImportance    = 5
	defaultSearchLimit   = 10
	defaultRecallLimit   = 10
	defaultMinImportance = 5
)

// StoreInput represents the input arguments for the memory_store tool.
type StoreInput struct {
	Content    string   `json:"content" jsonschema:"the memory content to store"`
	Type       string   `json:"type,omitempty" jsonschema:"memory type: fact, preference, decision, error_fix, pattern, workflow, summary, custom (default: fact)"`
	Importance int      `json:"importance,omitempty" jsonschema:"importance 1-10 (default: 5)"`
	Tags       []string `json:"tags,omitempty" jsonschema:"searchable tags"`
}

// StoreOutput represents the structured output of a store.
type StoreOutput struct {
	ID        *int64 `json:"id"`
	Duplicate bool   `json:"duplicate"`
}

func (s *Server) handleStore(ctx context.Context, _ *mcp.CallToolRequest, input StoreInput) (*mcp.CallToolResult, StoreOutput, error) {
	if input.Content == "" {
		return errorResult("content is required"), StoreOutput{}, nil
	}

	if !s.config.Gate.Available(ctx) {
		return unavailable(), StoreOutput{}, nil
	}

	typ := memory.Type(input.Type)
	if typ == "" {
		typ = defaultType
	}

	importance := input.Importance
	if importance == 0 {
		importance = defaultImportance
	}

	result, err := s.config.Backend.Store(ctx, input.Content, typ, importance, input.Tags)
	if err != nil {
		return nil, StoreOutput{}, err
	}

	output := StoreOutput{ID: result.ID, Duplicate: result.Duplicate}

	if result.Duplicate || result.ID == nil {
		return textResult("Already known: the backend recognized this content as a duplicate."), output, nil
	}

	s.config.Logger.Debug("stored memory via MCP",
		zap.Int64p("id", result.ID),
		zap.String("type", string(typ)),
	)

	return textResult(fmt.Sprintf("Stored memory %d (%s, importance %d).", *result.ID, typ, importance)), output, nil
}

// SearchInput represents the input arguments for the memory_search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the search query text"`
	Limit int    `json:"limit,omitempty" jsonschema:"max results to return (default: 10)"`
}

// SearchOutput represents the structured output of a search.
type SearchOutput struct {
	Query   string             `json:"query"`
	Results []memory.SearchHit `json:"results"`
	Count   int                `json:"count"`
}

func (s *Server) handleSearch(ctx context.Context, _ *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
	if input.Query == "" {
		return errorResult("query is required"), SearchOutput{}, nil
	}

	if !s.config.Gate.Available(ctx) {
		return unavailable(), SearchOutput{}, nil
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	hits, err := s.config.Backend.Search(ctx, input.Query, limit)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	if hits == nil {
		hits = []memory.SearchHit{}
	}

	output := SearchOutput{Query: input.Query, Results: hits, Count: len(hits)}

	if len(hits) == 0 {
		return textResult(fmt.Sprintf("No memories match %q.", input.Query)), output, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d memories:\n", len(hits))
	for _, hit := range hits {
		fmt.Fprintf(&b, "- #%d [%s, importance %d] %s\n",
			hit.Memory.ID, hit.Memory.Type, hit.Memory.Importance,
			utils.Truncate(hit.Memory.Content, 200),
		)
	}

	return textResult(b.String()), output, nil
}

// RecallInput represents the input arguments for the memory_recall tool.
type RecallInput struct {
	Limit         int `json:"limit,omitempty" jsonschema:"max memories to recall (default: 10)"`
	MinImportance int `json:"min_importance,omitempty" jsonschema:"minimum importance threshold (default: 5)"`
}

// RecallOutput represents the structured output of a recall.
type RecallOutput struct {
	Memories []memory.Memory `json:"memories"`
	Count    int             `json:"count"`
}

func (s *Server) handleRecall(ctx context.Context, _ *mcp.CallToolRequest, input RecallInput) (*mcp.CallToolResult, RecallOutput, error) {
	if !s.config.Gate.Available(ctx) {
		return unavailable(), RecallOutput{}, nil
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultRecallLimit
	}

	minImportance := input.MinImportance
	if minImportance <= 0 {
		minImportance = defaultMinImportance
	}

	records, err := s.config.Backend.Recall(ctx, limit, minImportance)
	if err != nil {
		return nil, RecallOutput{}, err
	}

	if records == nil {
		records = []memory.Memory{}
	}

	output := RecallOutput{Memories: records, Count: len(records)}

	if len(records) == 0 {
		return textResult(fmt.Sprintf("No memories at or above importance %d.", minImportance)), output, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Top %d memories:\n", len(records))
	for _, rec := range records {
		fmt.Fprintf(&b, "- #%d [%s, importance %d] %s\n",
			rec.ID, rec.Type, rec.Importance,
			utils.Truncate(rec.Content, 200),
		)
	}

	return textResult(b.String()), output, nil
}

// ForgetInput represents the input arguments for the memory_forget tool.
type ForgetInput struct {
	MemoryID int64 `json:"memory_id" jsonschema:"the memory ID to delete"`
}

// ForgetOutput represents the structured output of a forget.
type ForgetOutput struct {
	Deleted bool `json:"deleted"`
}

func (s *Server) handleForget(ctx context.Context, _ *mcp.CallToolRequest, input ForgetInput) (*mcp.CallToolResult, ForgetOutput, error) {
	if input.MemoryID <= 0 {
		return errorResult("memory_id is required"), ForgetOutput{}, nil
	}

	if !s.config.Gate.Available(ctx) {
		return unavailable(), ForgetOutput{}, nil
	}

	deleted, err := s.config.Backend.Delete(ctx, input.MemoryID)
	if err != nil {
		return nil, ForgetOutput{}, err
	}

	output := ForgetOutput{Deleted: deleted}

	if !deleted {
		return textResult(fmt.Sprintf("No memory with ID %d.", input.MemoryID)), output, nil
	}

	return textResult(fmt.Sprintf("Deleted memory %d.", input.MemoryID)), output, nil
}

// StatsInput represents the (empty) input for the memory_stats tool.
type StatsInput struct{}

// StatsOutput represents the structured output of a stats call.
type StatsOutput struct {
	Stats memory.Stats `json:"stats"`
}

func (s *Server) handleStats(ctx context.Context, _ *mcp.CallToolRequest, _ StatsInput) (*mcp.CallToolResult, StatsOutput, error) {
	if !s.config.Gate.Available(ctx) {
		return unavailable(), StatsOutput{}, nil
	}

	stats, err := s.config.Backend.Stats(ctx)
	if err != nil {
		return nil, StatsOutput{}, err
	}

	output := StatsOutput{Stats: stats}

	var b strings.Builder
	fmt.Fprintf(&b, "Namespace %q: %d memories, average importance %.1f, %.2f MB\n",
		stats.Namespace, stats.TotalMemories, stats.AverageImportance, stats.DBSizeMB)
	for typ, count := range stats.ByType {
		fmt.Fprintf(&b, "- %s: %d\n", typ, count)
	}

	return textResult(b.String()), output, nil
}
