package inmemory_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/engram-memory/engram/pkg/memory"
	"github.com/engram-memory/engram/pkg/memory/inmemory"
)

var _ = Describe("Backend", func() {
	var (
		ctx     context.Context
		backend *inmemory.Backend
	)

	BeforeEach(func() {
		ctx = context.Background()
		backend = inmemory.NewBackend("default")
	})

	Describe("Store", func() {
		It("assigns sequential ids", func() {
			first, err := backend.Store(ctx, "first", memory.TypeFact, 5, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(*first.ID).To(Equal(int64(1)))

			second, err := backend.Store(ctx, "second", memory.TypeFact, 5, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(*second.ID).To(Equal(int64(2)))
		})

		It("deduplicates exact content", func() {
			_, err := backend.Store(ctx, "same content", memory.TypeFact, 5, nil)
			Expect(err).NotTo(HaveOccurred())

			result, err := backend.Store(ctx, "same content", memory.TypePreference, 9, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Duplicate).To(BeTrue())
			Expect(result.ID).To(BeNil())
		})
	})

	Describe("Search", func() {
		It("matches case-insensitive substrings", func() {
			_, err := backend.Store(ctx, "Prefers Tabs over spaces", memory.TypePreference, 7, nil)
			Expect(err).NotTo(HaveOccurred())

			hits, err := backend.Search(ctx, "tabs", 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(hits).To(HaveLen(1))
			Expect(hits[0].MatchType).To(Equal("like"))
		})

		It("honors the limit", func() {
			_, err := backend.Store(ctx, "alpha note one", memory.TypeFact, 5, nil)
			Expect(err).NotTo(HaveOccurred())
			_, err = backend.Store(ctx, "alpha note two", memory.TypeFact, 5, nil)
			Expect(err).NotTo(HaveOccurred())

			hits, err := backend.Search(ctx, "alpha", 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(hits).To(HaveLen(1))
		})
	})

	Describe("Recall", func() {
		It("filters by the importance floor and sorts descending", func() {
			_, err := backend.Store(ctx, "low", memory.TypeFact, 2, nil)
			Expect(err).NotTo(HaveOccurred())
			_, err = backend.Store(ctx, "mid", memory.TypeFact, 6, nil)
			Expect(err).NotTo(HaveOccurred())
			_, err = backend.Store(ctx, "high", memory.TypeFact, 9, nil)
			Expect(err).NotTo(HaveOccurred())

			records, err := backend.Recall(ctx, 10, 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(2))
			Expect(records[0].Content).To(Equal("high"))
			Expect(records[1].Content).To(Equal("mid"))
		})
	})

	Describe("Delete", func() {
		It("reports whether a record existed", func() {
			result, err := backend.Store(ctx, "to delete", memory.TypeFact, 5, nil)
			Expect(err).NotTo(HaveOccurred())

			existed, err := backend.Delete(ctx, *result.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(existed).To(BeTrue())

			existed, err = backend.Delete(ctx, *result.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(existed).To(BeFalse())
		})
	})

	Describe("Stats", func() {
		It("aggregates counts and average importance", func() {
			_, err := backend.Store(ctx, "one", memory.TypeFact, 4, nil)
			Expect(err).NotTo(HaveOccurred())
			_, err = backend.Store(ctx, "two", memory.TypePreference, 8, nil)
			Expect(err).NotTo(HaveOccurred())

			stats, err := backend.Stats(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(stats.TotalMemories).To(Equal(2))
			Expect(stats.ByType).To(HaveKeyWithValue("fact", 1))
			Expect(stats.ByType).To(HaveKeyWithValue("preference", 1))
			Expect(stats.AverageImportance).To(BeNumerically("~", 6.0, 0.001))
			Expect(stats.Namespace).To(Equal("default"))
		})
	})

	Describe("Health", func() {
		It("reflects the SetHealthy override", func() {
			Expect(backend.Health(ctx)).To(BeTrue())
			backend.SetHealthy(false)
			Expect(backend.Health(ctx)).To(BeFalse())
		})
	})
})
