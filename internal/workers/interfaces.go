// Package workers runs background jobs next to the transport servers.
package workers

import "context"

// Worker runs until ctx is cancelled.
type Worker interface {
	Run(ctx context.Context)
}
