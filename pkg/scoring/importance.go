// Package scoring approximates importance and category for free text without
// human judgment. Both functions are pure and total so the heuristics can be
// swapped for a learned model later without touching the orchestration layer.
package scoring

import (
	"regexp"
	"strings"
)

const (
	// baseline is the starting score before any pattern class applies.
	baseline = 5

	// MinScore and MaxScore bound every returned importance.
	MinScore = 1
	MaxScore = 10
)

// patternClass is a named group of markers that moves the score by exactly
// one point when any of its markers match. A class contributes at most one
// point no matter how many internal matches it has.
type patternClass struct {
	name string
	re   *regexp.Regexp
}

// Elevating classes, evaluated in fixed order. Markers are word-bounded so
// that e.g. "hi" never fires inside "this".
var elevating = []patternClass{
	{"urgency", regexp.MustCompile(`(?i)\b(always|never|important|critical|remember|don't forget|key point)\b`)},
	{"credential", regexp.MustCompile(`(?i)\b(password|secret|api ?key|credential|token)\b`)},
	{"normative", regexp.MustCompile(`(?i)\b(rule|principle|convention|standard|requirement)\b`)},
	{"deadline", regexp.MustCompile(`(?i)\b(deadline|due date|by \w+ \d+)\b`)},
	{"resolution", regexp.MustCompile(`(?i)\b(decided|agreed|confirmed|approved|rejected)\b`)},
	{"defect", regexp.MustCompile(`(?i)\b(bug|issue|error|fix|workaround|hack)\b`)},
	{"preference", regexp.MustCompile(`(?i)\b(preference|prefer|like|hate|avoid)\b`)},
}

// Depressing classes, evaluated after the elevating ones.
var depressing = []patternClass{
	{"uncertainty", regexp.MustCompile(`(?i)\b(maybe|perhaps|might|could|not sure)\b`)},
	{"dismissal", regexp.MustCompile(`(?i)\b(just testing|ignore|nevermind|scratch that)\b`)},
	{"smalltalk", regexp.MustCompile(`(?i)\b(hello|hi|hey|thanks|ok|sure|yeah)\b`)},
}

const (
	longTextWords  = 50
	shortTextWords = 5
)

// Score estimates how important a piece of text is on a 1-10 scale.
//
// It starts at a baseline of 5, adds one point per matching elevating class,
// subtracts one per matching depressing class, then applies a single length
// adjustment: texts over 50 words gain a point, texts under 5 words lose one.
// The running total is clamped into [1,10] after every step.
func Score(text string) int {
	score := baseline

	for _, class := range elevating {
		if class.re.MatchString(text) {
			score = clamp(score + 1)
		}
	}

	for _, class := range depressing {
		if class.re.MatchString(text) {
			score = clamp(score - 1)
		}
	}

	words := len(strings.Fields(text))
	switch {
	case words > longTextWords:
		score = clamp(score + 1)
	case words < shortTextWords:
		score = clamp(score - 1)
	}

	return score
}

func clamp(score int) int {
	if score > MaxScore {
		return MaxScore
	}
	if score < MinScore {
		return MinScore
	}

	return score
}
