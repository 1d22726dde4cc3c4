// Package hooks wires automatic memory recall and capture around a
// conversational turn.
//
// The orchestrator exposes two hook points: [Orchestrator.PreGenerate] runs
// before the agent produces a reply and injects relevant memories into the
// outgoing context; [Orchestrator.PostGenerate] runs after the reply and
// captures durable facts from the exchange. Neither hook ever fails the
// conversation: every downstream failure degrades to a no-op, recorded on the
// returned result so the degrade policy is visible to callers instead of
// hidden in a catch-all.
//
// Ordering within a turn is pre-generate, then generation, then
// post-generate. The hooks hold no mutable state of their own; the only
// process-wide state in the subsystem is the availability gate's cached
// verdict.
package hooks

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/engram-memory/engram/pkg/extraction"
	"github.com/engram-memory/engram/pkg/memory"
	"github.com/engram-memory/engram/pkg/scoring"
)

// Gate is the reachability check the hooks consult before touching the
// backend. *availability.Gate satisfies it.
type Gate interface {
	Available(ctx context.Context) bool
}

// Config holds configuration for the orchestrator.
type Config struct {
	// AutoRecall enables the pre-generation hook.
	AutoRecall bool

	// AutoCapture enables the post-generation hook.
	AutoCapture bool

	// MinImportance is the least importance a recalled memory needs to be
	// injected. 1-10.
	MinImportance int

	// MaxRecallResults caps how many memories one recall may inject.
	MaxRecallResults int
}

// Orchestrator runs the two lifecycle hooks against a backend.
type Orchestrator struct {
	config  Config
	backend memory.Backend
	gate    Gate
	logger  *zap.Logger
}

// New creates an orchestrator.
func New(config Config, backend memory.Backend, gate Gate, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		config:  config,
		backend: backend,
		gate:    gate,
		logger:  logger,
	}
}

// SkipReason says why a hook did nothing.
type SkipReason string

const (
	// SkipNone means the hook ran.
	SkipNone SkipReason = ""

	// SkipDisabled means the relevant toggle is off.
	SkipDisabled SkipReason = "disabled"

	// SkipUnavailable means the gate reported the backend unreachable.
	SkipUnavailable SkipReason = "backend unavailable"
)

// RecallResult is the outcome of the pre-generation hook. Context always
// carries a usable value: the augmented context when memories were injected,
// the input unchanged otherwise.
type RecallResult struct {
	Context  string
	Injected int
	Skipped  SkipReason

	// Err records a swallowed search failure. It is informational; callers
	// are free to ignore it.
	Err error
}

// PreGenerate searches the backend with the incoming human text and, if any
// sufficiently important memories match, appends a formatted block to the
// outgoing system context. It never returns an error and never panics; any
// search failure is logged and treated as "no memories found".
func (o *Orchestrator) PreGenerate(ctx context.Context, humanText, systemContext string) RecallResult {
	if !o.config.AutoRecall {
		return RecallResult{Context: systemContext, Skipped: SkipDisabled}
	}

	if !o.gate.Available(ctx) {
		return RecallResult{Context: systemContext, Skipped: SkipUnavailable}
	}

	turn := uuid.NewString()

	hits, err := o.backend.Search(ctx, humanText, o.config.MaxRecallResults)
	if err != nil {
		o.logger.Warn("memory search failed, continuing without recall",
			zap.String("turn", turn),
			zap.Error(err),
		)
		return RecallResult{Context: systemContext, Err: err}
	}

	relevant := make([]memory.Memory, 0, len(hits))
	for _, hit := range hits {
		if hit.Memory.Importance >= o.config.MinImportance {
			relevant = append(relevant, hit.Memory)
		}
	}

	if len(relevant) == 0 {
		return RecallResult{Context: systemContext}
	}

	o.logger.Debug("injecting recalled memories",
		zap.String("turn", turn),
		zap.Int("count", len(relevant)),
	)

	return RecallResult{
		Context:  systemContext + formatMemoryBlock(relevant),
		Injected: len(relevant),
	}
}

// FactFailure records one candidate fact the capture pass could not store.
type FactFailure struct {
	Fact string
	Err  error
}

// CaptureResult is the outcome of the post-generation hook. Storage is
// isolated per fact: one failing store call does not abandon the remaining
// candidates.
type CaptureResult struct {
	Stored     int
	Duplicates int
	Failures   []FactFailure
	Skipped    SkipReason
}

// PostGenerate extracts candidate facts from the exchange, scores and
// classifies each independently, and stores the survivors. Like PreGenerate
// it never returns an error; failures are logged and collected on the result.
func (o *Orchestrator) PostGenerate(ctx context.Context, humanText, agentText string) CaptureResult {
	if !o.config.AutoCapture {
		return CaptureResult{Skipped: SkipDisabled}
	}

	if !o.gate.Available(ctx) {
		return CaptureResult{Skipped: SkipUnavailable}
	}

	facts := extraction.Extract(humanText, agentText)
	if len(facts) == 0 {
		return CaptureResult{}
	}

	turn := uuid.NewString()

	var result CaptureResult
	for _, fact := range facts {
		// Importance and category are computed fresh per fact, not
		// inherited from the extractor's internal filter score.
		importance := scoring.Score(fact)
		typ := scoring.Classify(fact)

		outcome, err := o.backend.Store(ctx, fact, typ, importance, nil)
		if err != nil {
			o.logger.Warn("memory store failed",
				zap.String("turn", turn),
				zap.Error(err),
			)
			result.Failures = append(result.Failures, FactFailure{Fact: fact, Err: err})
			continue
		}

		if outcome.Duplicate {
			result.Duplicates++
			continue
		}

		result.Stored++
	}

	o.logger.Debug("capture pass finished",
		zap.String("turn", turn),
		zap.Int("stored", result.Stored),
		zap.Int("duplicates", result.Duplicates),
		zap.Int("failures", len(result.Failures)),
	)

	return result
}

// formatMemoryBlock renders recalled memories as a labeled bulleted block
// ready to append to a system context.
func formatMemoryBlock(records []memory.Memory) string {
	var b strings.Builder

	b.WriteString("\n\n## Relevant memories\n")
	for _, rec := range records {
		fmt.Fprintf(&b, "- [%s, importance %d] %s\n", rec.Type, rec.Importance, rec.Content)
	}

	return b.String()
}
