// Package app implements the application layer for rob.
package app

import (
	"context"
	"sort"
	"strings"

	"go.trai.ch/rob/internal/adapters/install" //nolint:depguard // Wired in app layer
	"go.trai.ch/rob/internal/adapters/modules" //nolint:depguard // Wired in app layer
	"go.trai.ch/rob/internal/core/domain"
	"go.trai.ch/rob/internal/core/ports"
	"go.trai.ch/rob/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// App represents the main application logic. The oracle and the installer
// depend on the loaded site configuration, so both are constructed per run
// rather than injected.
type App struct {
	configLoader ports.ConfigLoader
	locator      ports.Locator
	runner       ports.Runner
	logger       ports.Logger
	telemetry    ports.Telemetry
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, locator ports.Locator, runner ports.Runner, logger ports.Logger, telemetry ports.Telemetry) *App {
	return &App{
		configLoader: loader,
		locator:      locator,
		runner:       runner,
		logger:       logger,
		telemetry:    telemetry,
	}
}

// RunOptions carries the per-invocation flags.
type RunOptions struct {
	// ConfigPath is the path to the site configuration file.
	ConfigPath string
}

// Run builds the specified targets: resolve the full dependency order,
// then install each package in turn, skipping those the module system
// already provides.
func (a *App) Run(ctx context.Context, targets []string, opts RunOptions) error {
	order, cfg, oracle, err := a.resolve(targets, opts)
	if err != nil {
		return err
	}
	defer func() { _ = a.telemetry.Close() }()

	installer := install.New(cfg, a.runner, a.logger, oracle)

	for _, desc := range order {
		if err := ctx.Err(); err != nil {
			return zerr.Wrap(err, "build interrupted")
		}

		vctx, vertex := a.telemetry.Record(ctx, "install "+desc.ID.String())
		if oracle.Available(desc.ID.Name.String(), desc.ID.Version.String()) {
			a.report(vertex, desc.ID, domain.StatusAvailable)
			vertex.Cached()
			vertex.Complete(nil)
			continue
		}

		a.report(vertex, desc.ID, domain.StatusInstalling)
		if err := installer.Install(vctx, desc); err != nil {
			a.report(vertex, desc.ID, domain.StatusFailed)
			vertex.Complete(err)
			return err
		}
		a.report(vertex, desc.ID, domain.StatusInstalled)
		vertex.Complete(nil)
	}

	return nil
}

// report records a status transition on the package's vertex. Terminal
// states are echoed to the driver log.
func (a *App) report(vertex ports.Vertex, id domain.ModuleID, status domain.InstallStatus) {
	level := domain.LogLevelInfo
	if status == domain.StatusFailed {
		level = domain.LogLevelError
	}
	vertex.Log(level, string(status))

	if status.IsTerminal() {
		a.logger.Info(id.String() + ": " + string(status))
	}
}

// Plan resolves the install order for the targets without building
// anything and returns the ordered module identities.
func (a *App) Plan(_ context.Context, targets []string, opts RunOptions) ([]string, error) {
	order, _, _, err := a.resolve(targets, opts)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(order))
	for _, desc := range order {
		ids = append(ids, desc.ID.String())
	}
	return ids, nil
}

// Available lists every module the configured module tree provides,
// sorted for stable output.
func (a *App) Available(opts RunOptions) ([]string, error) {
	cfg, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	oracle, err := a.newOracle(cfg)
	if err != nil {
		return nil, err
	}

	ids := oracle.Modules()
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, id.String())
	}
	sort.Strings(names)
	return names, nil
}

// resolve loads the configuration, seeds the target descriptors from their
// recipes and computes the install order.
func (a *App) resolve(targets []string, opts RunOptions) ([]*domain.Descriptor, *ports.Config, *modules.TreeOracle, error) {
	if len(targets) == 0 {
		return nil, nil, nil, domain.ErrNoTargetsSpecified
	}

	cfg, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return nil, nil, nil, zerr.Wrap(err, "failed to load configuration")
	}

	oracle, err := a.newOracle(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	seeds, err := a.seedDescriptors(targets, cfg.SearchPath())
	if err != nil {
		return nil, nil, nil, err
	}

	order, err := resolver.New(oracle, a.locator).Resolve(seeds, cfg.SearchPath())
	if err != nil {
		return nil, nil, nil, err
	}

	return order, cfg, oracle, nil
}

func (a *App) newOracle(cfg *ports.Config) (*modules.TreeOracle, error) {
	if cfg.ModuleRoot == "" {
		return modules.NewTreeOracle()
	}
	return modules.NewTreeOracle(cfg.ModuleRoot)
}

// seedDescriptors locates the recipe for each named target. Targets use
// the module identity syntax "name/version" with an optional "/toolchain"
// segment.
func (a *App) seedDescriptors(targets []string, searchPath string) ([]*domain.Descriptor, error) {
	seeds := make([]*domain.Descriptor, 0, len(targets))
	for _, target := range targets {
		ref, err := parseTarget(target)
		if err != nil {
			return nil, err
		}

		recipe, err := a.locator.Find(ref, searchPath)
		if err != nil {
			return nil, err
		}
		if recipe == nil {
			return nil, zerr.With(domain.ErrMissingRecipe, "package", ref.String())
		}

		seeds = append(seeds, recipe.Descriptor())
	}
	return seeds, nil
}

func parseTarget(target string) (domain.DependencyRef, error) {
	parts := strings.Split(target, "/")
	switch {
	case len(parts) == 2 && parts[0] != "" && parts[1] != "":
		return domain.NewDependencyRef(parts[0], parts[1], ""), nil
	case len(parts) == 3 && parts[0] != "" && parts[1] != "" && parts[2] != "":
		return domain.NewDependencyRef(parts[0], parts[1], parts[2]), nil
	default:
		return domain.DependencyRef{}, zerr.With(zerr.New("invalid target, expected name/version[/toolchain]"), "target", target)
	}
}
