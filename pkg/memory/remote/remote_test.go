package remote_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/engram-memory/engram/pkg/logger"
	"github.com/engram-memory/engram/pkg/memory"
	"github.com/engram-memory/engram/pkg/memory/remote"
)

var _ = Describe("Client", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	newClient := func(host string) *remote.Client {
		return remote.NewClient(remote.Config{
			Host:      host,
			Namespace: "work",
			APIKey:    "test-key",
		}, logger.Nop())
	}

	Describe("Store", func() {
		It("posts the namespaced request with a bearer credential", func() {
			var captured map[string]any
			var authHeader string

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Method).To(Equal(http.MethodPost))
				Expect(r.URL.Path).To(Equal("/v1/memories"))
				authHeader = r.Header.Get("Authorization")
				Expect(json.NewDecoder(r.Body).Decode(&captured)).To(Succeed())

				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]any{"id": 42, "duplicate": false})
			}))
			defer server.Close()

			result, err := newClient(server.URL).Store(ctx, "Prefers tabs", memory.TypePreference, 7, []string{"editor"})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Duplicate).To(BeFalse())
			Expect(result.ID).NotTo(BeNil())
			Expect(*result.ID).To(Equal(int64(42)))

			Expect(authHeader).To(Equal("Bearer test-key"))
			Expect(captured["content"]).To(Equal("Prefers tabs"))
			Expect(captured["type"]).To(Equal("preference"))
			Expect(captured["importance"]).To(BeEquivalentTo(7))
			Expect(captured["namespace"]).To(Equal("work"))
			Expect(captured["tags"]).To(Equal([]any{"editor"}))
		})

		It("reports a backend-side duplicate", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]any{"id": nil, "duplicate": true})
			}))
			defer server.Close()

			result, err := newClient(server.URL).Store(ctx, "Prefers tabs", memory.TypePreference, 7, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Duplicate).To(BeTrue())
			Expect(result.ID).To(BeNil())
		})

		It("sends an empty tag list rather than null", func() {
			var captured map[string]any

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(json.NewDecoder(r.Body).Decode(&captured)).To(Succeed())
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]any{"id": 1, "duplicate": false})
			}))
			defer server.Close()

			_, err := newClient(server.URL).Store(ctx, "content here", memory.TypeFact, 5, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(captured["tags"]).To(Equal([]any{}))
		})

		It("wraps a non-2xx response in a BackendError", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "importance out of range", http.StatusUnprocessableEntity)
			}))
			defer server.Close()

			_, err := newClient(server.URL).Store(ctx, "content here", memory.TypeFact, 99, nil)
			Expect(err).To(HaveOccurred())

			backendErr, ok := memory.AsBackendError(err)
			Expect(ok).To(BeTrue())
			Expect(backendErr.StatusCode).To(Equal(http.StatusUnprocessableEntity))
			Expect(backendErr.Body).To(ContainSubstring("importance out of range"))
		})
	})

	Describe("Search", func() {
		It("decodes hits with their relevance metadata", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Path).To(Equal("/v1/search"))

				var body map[string]any
				Expect(json.NewDecoder(r.Body).Decode(&body)).To(Succeed())
				Expect(body["query"]).To(Equal("tabs"))
				Expect(body["limit"]).To(BeEquivalentTo(5))
				Expect(body["namespace"]).To(Equal("work"))

				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode([]map[string]any{
					{
						"memory": map[string]any{
							"id":          1,
							"content":     "Prefers tabs over spaces",
							"memory_type": "preference",
							"importance":  7,
							"namespace":   "work",
						},
						"score":      0.92,
						"match_type": "fts",
					},
				})
			}))
			defer server.Close()

			hits, err := newClient(server.URL).Search(ctx, "tabs", 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(hits).To(HaveLen(1))
			Expect(hits[0].Memory.Content).To(Equal("Prefers tabs over spaces"))
			Expect(hits[0].Memory.Type).To(Equal(memory.TypePreference))
			Expect(hits[0].Score).To(BeNumerically("~", 0.92, 0.001))
			Expect(hits[0].MatchType).To(Equal("fts"))
		})
	})

	Describe("Recall", func() {
		It("posts the limit and importance floor", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Path).To(Equal("/v1/recall"))

				var body map[string]any
				Expect(json.NewDecoder(r.Body).Decode(&body)).To(Succeed())
				Expect(body["limit"]).To(BeEquivalentTo(3))
				Expect(body["min_importance"]).To(BeEquivalentTo(7))
				Expect(body["namespace"]).To(Equal("work"))

				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode([]map[string]any{
					{"id": 9, "content": "Rotate keys quarterly", "memory_type": "fact", "importance": 8},
				})
			}))
			defer server.Close()

			records, err := newClient(server.URL).Recall(ctx, 3, 7)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(1))
			Expect(records[0].ID).To(Equal(int64(9)))
			Expect(records[0].Importance).To(Equal(8))
		})
	})

	Describe("Delete", func() {
		It("reports a deleted record", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Method).To(Equal(http.MethodDelete))
				Expect(r.URL.Path).To(Equal("/v1/memories/42"))

				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]any{"deleted": true})
			}))
			defer server.Close()

			existed, err := newClient(server.URL).Delete(ctx, 42)
			Expect(err).NotTo(HaveOccurred())
			Expect(existed).To(BeTrue())
		})

		It("treats a 404 as a missing record, not an error", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "not found", http.StatusNotFound)
			}))
			defer server.Close()

			existed, err := newClient(server.URL).Delete(ctx, 42)
			Expect(err).NotTo(HaveOccurred())
			Expect(existed).To(BeFalse())
		})
	})

	Describe("Stats", func() {
		It("queries with the configured namespace", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Path).To(Equal("/v1/stats"))
				Expect(r.URL.Query().Get("namespace")).To(Equal("work"))

				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]any{
					"total_memories":     12,
					"by_type":            map[string]int{"fact": 9, "preference": 3},
					"average_importance": 6.5,
					"db_size_mb":         0.4,
					"namespace":          "work",
				})
			}))
			defer server.Close()

			stats, err := newClient(server.URL).Stats(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(stats.TotalMemories).To(Equal(12))
			Expect(stats.ByType).To(HaveKeyWithValue("fact", 9))
			Expect(stats.AverageImportance).To(BeNumerically("~", 6.5, 0.001))
		})
	})

	Describe("Health", func() {
		It("reports true on a 200", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			Expect(newClient(server.URL).Health(ctx)).To(BeTrue())
		})

		It("folds a server error into false", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "down", http.StatusInternalServerError)
			}))
			defer server.Close()

			Expect(newClient(server.URL).Health(ctx)).To(BeFalse())
		})

		It("folds an unreachable host into false", func() {
			client := newClient("http://127.0.0.1:1")
			Expect(client.Health(ctx)).To(BeFalse())
		})
	})
})
