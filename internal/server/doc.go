// Package server runs the HTTP API and the gRPC health endpoint and shuts
// them down together.
package server
