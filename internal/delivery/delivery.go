// Package delivery defines the contract every transport adapter satisfies.
package delivery

import "context"

// Delivery is a transport-facing server (HTTP today) managed by the
// application lifecycle.
type Delivery interface {
	// Serve blocks, accepting requests until the server is shut down.
	Serve(ctx context.Context) error
}
