// Package delivery defines the contract every transport implementation
// satisfies, decoupling the application core from how requests arrive.
package delivery

import "context"

// Delivery is a serving transport, such as the HTTP server.
type Delivery interface {
	Serve(ctx context.Context) error
}
