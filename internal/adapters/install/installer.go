// Package install performs the build and install of resolved packages.
//
// Install procedures are tagged variants: each domain.PackageKind maps to a
// plain record that produces the command sequence for a build context. The
// installer runs the commands in order, verifies the recipe's sanity-check
// paths under the install prefix, and publishes the module marker so later
// runs see the package as available.
package install

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"go.trai.ch/rob/internal/core/domain"
	"go.trai.ch/rob/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Installer = (*Installer)(nil)

// ModulePublisher records a freshly installed module so the availability
// oracle sees it within the same run.
type ModulePublisher interface {
	Publish(name, version string)
}

// Installer implements ports.Installer by dispatching on the recipe's
// package kind.
type Installer struct {
	cfg       *ports.Config
	runner    ports.Runner
	logger    ports.Logger
	publisher ModulePublisher
	variants  map[domain.PackageKind]variant
}

// New creates an Installer for the given site configuration. publisher may
// be nil when no module index should be updated (dry runs).
func New(cfg *ports.Config, runner ports.Runner, logger ports.Logger, publisher ModulePublisher) *Installer {
	return &Installer{
		cfg:       cfg,
		runner:    runner,
		logger:    logger,
		publisher: publisher,
		variants:  builtinVariants(),
	}
}

// Install builds and installs one resolved package: prepare the build
// context, run the kind's command sequence, verify sanity paths, publish
// the module marker.
func (i *Installer) Install(ctx context.Context, desc *domain.Descriptor) error {
	recipe := desc.Recipe
	if recipe == nil {
		return zerr.With(zerr.New("descriptor has no recipe"), "package", desc.ID.String())
	}

	v, ok := i.variants[recipe.Kind]
	if !ok {
		err := zerr.With(domain.ErrUnknownPackageKind, "kind", string(recipe.Kind))
		return zerr.With(err, "package", desc.ID.String())
	}

	bc, err := i.newBuildContext(desc)
	if err != nil {
		return err
	}

	cmds, err := v.steps(bc)
	if err != nil {
		return zerr.With(err, "package", desc.ID.String())
	}

	for _, cmd := range cmds {
		if runErr := i.runner.Run(ctx, cmd); runErr != nil {
			wrapped := zerr.With(domain.ErrInstallFailed, "package", desc.ID.String())
			// Join keeps the runner's chain (exit code, wrapped
			// exec error) reachable through errors.Is/As.
			return errors.Join(wrapped, runErr)
		}
	}

	if err := i.sanityCheck(bc); err != nil {
		return err
	}

	if err := i.publish(desc.ID); err != nil {
		return err
	}

	i.logger.Info("installed " + desc.ID.String())
	return nil
}

// buildContext carries the resolved paths and environment for one install.
type buildContext struct {
	recipe     *domain.Recipe
	id         domain.ModuleID
	installDir string
	buildDir   string
	env        []string
}

func (i *Installer) newBuildContext(desc *domain.Descriptor) (*buildContext, error) {
	recipe := desc.Recipe
	installDir := filepath.Join(i.cfg.InstallPrefix, desc.ID.Name.String(), desc.ID.Version.String())
	buildDir := filepath.Join(i.cfg.BuildDir, desc.ID.Name.String()+"-"+desc.ID.Version.String())

	for _, dir := range []string{installDir, buildDir} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to create directory"), "dir", dir)
		}
	}

	env := make([]string, 0, len(recipe.Environment)+2)
	env = append(env, "ROB_INSTALLDIR="+installDir)
	env = append(env, "ROB_BUILDDIR="+buildDir)
	for k, v := range recipe.Environment {
		env = append(env, k+"="+v)
	}

	return &buildContext{
		recipe:     recipe,
		id:         desc.ID,
		installDir: installDir,
		buildDir:   buildDir,
		env:        env,
	}, nil
}

// sanityCheck verifies the recipe's required files and directories exist
// under the install prefix.
func (i *Installer) sanityCheck(bc *buildContext) error {
	for _, rel := range bc.recipe.Sanity.Files {
		info, err := os.Stat(filepath.Join(bc.installDir, rel))
		if err != nil || info.IsDir() {
			err := zerr.With(domain.ErrSanityCheckFailed, "package", bc.id.String())
			return zerr.With(err, "missing_file", rel)
		}
	}
	for _, rel := range bc.recipe.Sanity.Dirs {
		info, err := os.Stat(filepath.Join(bc.installDir, rel))
		if err != nil || !info.IsDir() {
			err := zerr.With(domain.ErrSanityCheckFailed, "package", bc.id.String())
			return zerr.With(err, "missing_dir", rel)
		}
	}
	return nil
}

// publish writes the module marker <moduleRoot>/<name>/<version> and
// updates the in-run module index. The marker contents are owned by the
// module-file generator, which is outside this tool; an empty file is
// enough for availability.
func (i *Installer) publish(id domain.ModuleID) error {
	if i.cfg.ModuleRoot == "" {
		return nil
	}

	dir := filepath.Join(i.cfg.ModuleRoot, id.Name.String())
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create module directory"), "module", id.String())
	}
	marker := filepath.Join(dir, id.Version.String())
	if err := os.WriteFile(marker, nil, 0o644); err != nil { //nolint:gosec // module markers are world-readable
		return zerr.With(zerr.Wrap(err, "failed to write module marker"), "module", id.String())
	}

	if i.publisher != nil {
		i.publisher.Publish(id.Name.String(), id.Version.String())
	}
	return nil
}
