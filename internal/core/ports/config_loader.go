package ports

import (
	"os"
	"strings"
)

// Config holds the site configuration for a build run.
type Config struct {
	// RobotPath lists the directories searched for recipe files, in order.
	RobotPath []string
	// InstallPrefix is the root under which packages are installed, as
	// <prefix>/<name>/<version>.
	InstallPrefix string
	// ModuleRoot is the root of the module tree consulted by the oracle
	// and extended after each successful install.
	ModuleRoot string
	// BuildDir is the scratch directory for build steps.
	BuildDir string
}

// SearchPath joins the robot path entries with the platform list separator
// for collaborators that take a single search-path string. Empty when no
// robot path is configured.
func (c *Config) SearchPath() string {
	return strings.Join(c.RobotPath, string(os.PathListSeparator))
}

// ConfigLoader loads the site configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration from the given path.
	Load(path string) (*Config, error)
}
