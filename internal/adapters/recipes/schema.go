package recipes

import (
	"go.trai.ch/rob/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// RecipeDTO mirrors the YAML structure of a recipe file.
type RecipeDTO struct {
	Name          string            `yaml:"name"`
	Version       string            `yaml:"version"`
	Toolchain     string            `yaml:"toolchain"`
	Kind          string            `yaml:"kind"`
	Source        string            `yaml:"source"`
	Dependencies  []DependencyDTO   `yaml:"dependencies"`
	ConfigureOpts []string          `yaml:"configureOpts"`
	InstallOpts   []string          `yaml:"installOpts"`
	Environment   map[string]string `yaml:"environment"`
	Sanity        SanityDTO         `yaml:"sanity"`
}

// DependencyDTO represents one dependency declaration in a recipe file.
type DependencyDTO struct {
	Name      string `yaml:"name"`
	Version   string `yaml:"version"`
	Toolchain string `yaml:"toolchain"`
}

// SanityDTO lists the post-install check paths in a recipe file.
type SanityDTO struct {
	Files []string `yaml:"files"`
	Dirs  []string `yaml:"dirs"`
}

// Parse unmarshals and validates raw recipe file contents.
func Parse(data []byte) (*domain.Recipe, error) {
	var dto RecipeDTO
	if err := yaml.Unmarshal(data, &dto); err != nil {
		return nil, zerr.Wrap(err, "failed to parse recipe file")
	}

	if dto.Name == "" {
		return nil, zerr.New("recipe is missing a name")
	}
	if dto.Version == "" {
		return nil, zerr.With(zerr.New("recipe is missing a version"), "name", dto.Name)
	}

	kind := domain.PackageKind(dto.Kind)
	if dto.Kind == "" {
		kind = domain.KindConfigureMake
	}
	if !kind.Valid() {
		err := zerr.With(domain.ErrUnknownPackageKind, "kind", dto.Kind)
		return nil, zerr.With(err, "name", dto.Name)
	}

	deps := make([]domain.DependencyRef, 0, len(dto.Dependencies))
	for _, d := range dto.Dependencies {
		if d.Name == "" || d.Version == "" {
			err := zerr.New("dependency needs both name and version")
			return nil, zerr.With(err, "recipe", dto.Name)
		}
		deps = append(deps, domain.NewDependencyRef(d.Name, d.Version, d.Toolchain))
	}

	return &domain.Recipe{
		Name:          dto.Name,
		Version:       dto.Version,
		Toolchain:     dto.Toolchain,
		Kind:          kind,
		Source:        dto.Source,
		Dependencies:  deps,
		ConfigureOpts: dto.ConfigureOpts,
		InstallOpts:   dto.InstallOpts,
		Environment:   dto.Environment,
		Sanity: domain.SanityCheck{
			Files: dto.Sanity.Files,
			Dirs:  dto.Sanity.Dirs,
		},
	}, nil
}
