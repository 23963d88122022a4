package server

import "context"

// Server defines the common lifecycle contract for transport servers managed
// by this package.
//
// Implementations block in [RunServer] until [Shutdown] is called and then
// return nil; any other return value means the server failed.
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer() error

	// Shutdown gracefully stops the server. When ctx expires before in-flight
	// requests finish, remaining connections are closed forcibly.
	Shutdown(ctx context.Context) error
}
