package ports

import "go.trai.ch/rob/internal/core/domain"

// Locator finds build recipes for dependency references on a search path.
//
//go:generate go run go.uber.org/mock/mockgen -source=locator.go -destination=mocks/mock_locator.go -package=mocks
type Locator interface {
	// Find returns the parsed recipe matching ref under searchPath, or
	// (nil, nil) when no recipe file exists. A non-nil error means the
	// lookup itself failed (unreadable path, malformed recipe) and is
	// distinct from not-found; callers pass it through unchanged.
	Find(ref domain.DependencyRef, searchPath string) (*domain.Recipe, error)
}
