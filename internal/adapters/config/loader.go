// Package config provides the site configuration loader for rob.
package config

import (
	"os"
	"path/filepath"

	"go.trai.ch/rob/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*FileConfigLoader)(nil)

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct{}

// Robfile represents the structure of the rob.yaml configuration file.
type Robfile struct {
	Version       string   `yaml:"version"`
	RobotPath     []string `yaml:"robotPath"`
	InstallPrefix string   `yaml:"installPrefix"`
	ModuleRoot    string   `yaml:"moduleRoot"`
	BuildDir      string   `yaml:"buildDir"`
}

// Load reads a configuration file and validates the fields a build needs.
func (l *FileConfigLoader) Load(path string) (*ports.Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read config file")
	}

	var robfile Robfile
	if err := yaml.Unmarshal(data, &robfile); err != nil {
		return nil, zerr.Wrap(err, "failed to parse config file")
	}

	if robfile.InstallPrefix == "" {
		return nil, zerr.New("config is missing installPrefix")
	}
	if robfile.BuildDir == "" {
		robfile.BuildDir = filepath.Join(os.TempDir(), "rob-build")
	}

	return &ports.Config{
		RobotPath:     robfile.RobotPath,
		InstallPrefix: robfile.InstallPrefix,
		ModuleRoot:    robfile.ModuleRoot,
		BuildDir:      robfile.BuildDir,
	}, nil
}
