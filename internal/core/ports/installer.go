package ports

import (
	"context"

	"go.trai.ch/rob/internal/core/domain"
)

// Installer performs the build and install of one resolved package.
// The driver invokes it once per descriptor, strictly in resolution order;
// later installs may rely on environment state earlier ones established.
//
//go:generate go run go.uber.org/mock/mockgen -source=installer.go -destination=mocks/mock_installer.go -package=mocks
type Installer interface {
	// Install builds and installs the package described by desc.
	Install(ctx context.Context, desc *domain.Descriptor) error
}
