// Package api provides the HTTP server that exposes the engram tool surface.
package api

// Config is the API server configuration.
type Config struct {
	// ListenAddr is the address to listen on (e.g., ":8765")
	ListenAddr string
}
