package recipes

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rob/internal/core/ports"
)

// NodeID is the unique identifier for the recipe locator Graft node.
const NodeID graft.ID = "adapter.recipes"

func init() {
	graft.Register(graft.Node[ports.Locator]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Locator, error) {
			return NewFileLocator(), nil
		},
	})
}
