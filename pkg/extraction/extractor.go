// Package extraction distills a conversational exchange into a short list of
// candidate facts worth remembering.
//
// This is a heuristic, lossy summarizer. It is not expected to be complete,
// only to bound noise and repetition before any storage call is made. The
// real deduplication (by content hash, across all stored records) belongs to
// the backend; this package only deduplicates candidates within one pass.
package extraction

import (
	"regexp"
	"strings"

	"github.com/engram-memory/engram/pkg/scoring"
)

const (
	// minLength and maxLength bound accepted candidate sentences, both ends
	// inclusive.
	minLength = 15
	maxLength = 500

	// minImportance is the score a candidate must reach to survive.
	minImportance = 6

	// maxFacts caps how many facts a single pass may produce.
	maxFacts = 5

	// overlapThreshold is the word-overlap fraction above which a later
	// candidate is considered a restatement of an earlier fact.
	overlapThreshold = 0.7
)

// sentence boundaries: terminating punctuation or line breaks.
var sentenceBoundary = regexp.MustCompile(`[.!?\n]+`)

// Extract turns one exchange (the human turn and the agent turn) into at most
// five distinct, importance-filtered candidate facts, in encounter order.
func Extract(humanText, agentText string) []string {
	combined := humanText + "\n" + agentText

	var facts []string
	for _, candidate := range sentenceBoundary.Split(combined, -1) {
		if len(facts) >= maxFacts {
			break
		}

		candidate = strings.TrimSpace(candidate)
		if len(candidate) < minLength || len(candidate) > maxLength {
			continue
		}

		if scoring.Score(candidate) < minImportance {
			continue
		}

		if isDuplicate(facts, candidate) {
			continue
		}

		facts = append(facts, candidate)
	}

	return facts
}

// isDuplicate reports whether candidate restates any already-accepted fact.
// The test is directional: the fraction of the earlier fact's words that
// occur (as substrings) in the later candidate must exceed the threshold.
func isDuplicate(accepted []string, candidate string) bool {
	lowered := strings.ToLower(candidate)

	for _, earlier := range accepted {
		if wordOverlap(earlier, lowered) > overlapThreshold {
			return true
		}
	}

	return false
}

// wordOverlap returns the fraction of earlier's words found anywhere in the
// lower-cased later text. Substring containment, not exact token match, so
// "use" counts against "uses".
func wordOverlap(earlier, loweredLater string) float64 {
	words := strings.Fields(strings.ToLower(earlier))
	if len(words) == 0 {
		return 0
	}

	found := 0
	for _, word := range words {
		if strings.Contains(loweredLater, word) {
			found++
		}
	}

	return float64(found) / float64(len(words))
}
