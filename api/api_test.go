package api

import (
	"context"
	"io"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/engram-memory/engram/api/mcp"
	"github.com/engram-memory/engram/pkg/logger"
	"github.com/engram-memory/engram/pkg/memory/inmemory"
)

type alwaysGate struct{}

func (alwaysGate) Available(_ context.Context) bool { return true }

var _ = Describe("Server", func() {
	var server *Server

	BeforeEach(func() {
		mcps, err := mcp.NewServer(mcp.Config{
			Backend: inmemory.NewBackend("default"),
			Gate:    alwaysGate{},
			Logger:  logger.Nop(),
		})
		Expect(err).NotTo(HaveOccurred())

		server = NewServer(Config{ListenAddr: ":0"}, mcps, logger.Nop())
	})

	It("answers ping", func() {
		req := httptest.NewRequest("GET", "/ping", nil)
		resp, err := server.app.Test(req)
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()

		Expect(resp.StatusCode).To(Equal(200))
		body, err := io.ReadAll(resp.Body)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(body)).To(ContainSubstring(`"status":"ok"`))
	})

	It("mounts the MCP handler", func() {
		// A GET without an MCP session is rejected by the protocol handler,
		// but the route itself must resolve (not fiber's 404).
		req := httptest.NewRequest("GET", "/mcp", nil)
		resp, err := server.app.Test(req)
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()

		Expect(resp.StatusCode).NotTo(Equal(404))
	})
})
