// Package ports defines the core interfaces for the application.
package ports

// Oracle answers whether a module is already installed and available.
// Implementations must be pure queries: no side effects, safe to call
// repeatedly for the same key. Any I/O needed to answer (scanning a module
// tree) happens before the oracle is handed to the resolver.
//
//go:generate go run go.uber.org/mock/mockgen -source=oracle.go -destination=mocks/mock_oracle.go -package=mocks
type Oracle interface {
	// Available reports whether the module (name, version) is provided by
	// the module system.
	Available(name, version string) bool
}
