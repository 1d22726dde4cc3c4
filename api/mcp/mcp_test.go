package mcp_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/engram-memory/engram/api/mcp"
	"github.com/engram-memory/engram/pkg/logger"
	"github.com/engram-memory/engram/pkg/memory/inmemory"
)

type openGate struct{}

func (openGate) Available(_ context.Context) bool { return true }

var _ = Describe("MCP Server", func() {
	var backend *inmemory.Backend

	BeforeEach(func() {
		backend = inmemory.NewBackend("default")
	})

	Describe("NewServer", func() {
		It("returns an error when the backend is nil", func() {
			_, err := mcp.NewServer(mcp.Config{
				Gate:   openGate{},
				Logger: logger.Nop(),
			})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("memory backend is required"))
		})

		It("returns an error when the gate is nil", func() {
			_, err := mcp.NewServer(mcp.Config{
				Backend: backend,
				Logger:  logger.Nop(),
			})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("availability gate is required"))
		})

		It("returns an error when the logger is nil", func() {
			_, err := mcp.NewServer(mcp.Config{
				Backend: backend,
				Gate:    openGate{},
			})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("logger is required"))
		})

		It("skips dependency checks in noop mode", func() {
			server, err := mcp.NewServer(mcp.Config{Noop: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(server).NotTo(BeNil())
			Expect(server.Handler()).NotTo(BeNil())
		})

		It("creates a server with valid config", func() {
			server, err := mcp.NewServer(mcp.Config{
				Backend: backend,
				Gate:    openGate{},
				Logger:  logger.Nop(),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(server).NotTo(BeNil())
			Expect(server.Handler()).NotTo(BeNil())
		})
	})
})
