package scoring_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/engram-memory/engram/pkg/scoring"
)

var _ = Describe("Score", func() {
	It("returns the baseline for unremarkable text", func() {
		Expect(scoring.Score("The build finished in about four minutes today")).To(Equal(5))
	})

	It("adds one point for a single urgency marker", func() {
		Expect(scoring.Score("I always use dark mode.")).To(Equal(6))
	})

	It("adds one point for a single defect marker", func() {
		Expect(scoring.Score("Fixed the login bug by adding a null check for safety.")).To(Equal(6))
	})

	It("counts each pattern class at most once", func() {
		// Three urgency markers, still one point.
		Expect(scoring.Score("Remember this, it is important and critical stuff here")).To(Equal(6))
	})

	It("adds one point per distinct elevating class", func() {
		// urgency + credential + normative.
		Expect(scoring.Score("Important rule about the api key rotation process here")).To(Equal(8))
	})

	It("subtracts one point per depressing class", func() {
		Expect(scoring.Score("maybe we should just skip this whole thing for now")).To(Equal(4))
	})

	It("clamps the result at the upper bound", func() {
		text := "Always remember this critical password secret and token rule, a key requirement " +
			"decided and confirmed before the deadline, important bug fix preference we prefer"
		Expect(scoring.Score(text)).To(Equal(10))
	})

	It("clamps the result at the lower bound", func() {
		// All three depressing classes plus the short-text penalty.
		Expect(scoring.Score("maybe ignore this, thanks")).To(Equal(1))
	})

	It("penalizes very short text", func() {
		// Four neutral words, below the short-text cutoff.
		Expect(scoring.Score("builds finished without problems")).To(Equal(4))
	})

	It("rewards long text", func() {
		text := strings.Repeat("the quick brown fox jumped over a lazy dog again ", 6)
		Expect(scoring.Score(text)).To(Equal(6))
	})

	It("matches markers case-insensitively", func() {
		Expect(scoring.Score("NEVER commit directly to the main branch there")).To(Equal(6))
	})

	It("does not match markers inside unrelated words", func() {
		// "hi" inside "this" must not fire the small-talk class.
		Expect(scoring.Score("The team published this release without incident here")).To(Equal(5))
	})

	It("stays within bounds for arbitrary input", func() {
		inputs := []string{
			"",
			"   ",
			"!!!",
			"one",
			strings.Repeat("word ", 200),
			"password password password password password password",
		}
		for _, text := range inputs {
			score := scoring.Score(text)
			Expect(score).To(BeNumerically(">=", scoring.MinScore))
			Expect(score).To(BeNumerically("<=", scoring.MaxScore))
		}
	})
})
