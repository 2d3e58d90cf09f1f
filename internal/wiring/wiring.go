// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/rob/internal/adapters/config"
	_ "go.trai.ch/rob/internal/adapters/logger"
	_ "go.trai.ch/rob/internal/adapters/recipes"
	_ "go.trai.ch/rob/internal/adapters/shell"
	_ "go.trai.ch/rob/internal/adapters/telemetry/progrock"
	// Register app nodes.
	_ "go.trai.ch/rob/internal/app"
)
