package app_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.trai.ch/rob/internal/app"
	"go.trai.ch/rob/internal/core/domain"
	"go.trai.ch/rob/internal/core/ports"
	"go.trai.ch/rob/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type testHarness struct {
	loader    *mocks.MockConfigLoader
	locator   *mocks.MockLocator
	runner    *mocks.MockRunner
	logger    *mocks.MockLogger
	telemetry *mocks.MockTelemetry
	app       *app.App
}

func newHarness(t *testing.T) *testHarness {
	t.Helper()
	ctrl := gomock.NewController(t)

	h := &testHarness{
		loader:    mocks.NewMockConfigLoader(ctrl),
		locator:   mocks.NewMockLocator(ctrl),
		runner:    mocks.NewMockRunner(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
		telemetry: mocks.NewMockTelemetry(ctrl),
	}
	h.app = app.New(h.loader, h.locator, h.runner, h.logger, h.telemetry)
	h.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	return h
}

func testConfig(t *testing.T) *ports.Config {
	t.Helper()
	base := t.TempDir()
	return &ports.Config{
		RobotPath:     []string{filepath.Join(base, "recipes")},
		InstallPrefix: filepath.Join(base, "software"),
		ModuleRoot:    filepath.Join(base, "modules"),
		BuildDir:      filepath.Join(base, "build"),
	}
}

func recipeFor(name, version string, deps ...domain.DependencyRef) *domain.Recipe {
	return &domain.Recipe{
		Name:         name,
		Version:      version,
		Kind:         domain.KindConfigureMake,
		Source:       name + "-" + version + ".tar.gz",
		Dependencies: deps,
	}
}

func TestApp_Run_NoTargets(t *testing.T) {
	h := newHarness(t)

	err := h.app.Run(context.Background(), nil, app.RunOptions{})
	if !errors.Is(err, domain.ErrNoTargetsSpecified) {
		t.Errorf("expected ErrNoTargetsSpecified, got %v", err)
	}
}

func TestApp_Plan_LinearChain(t *testing.T) {
	h := newHarness(t)
	cfg := testConfig(t)
	h.loader.EXPECT().Load("rob.yaml").Return(cfg, nil)

	zlib := domain.NewDependencyRef("zlib", "1.2.8", "")
	h.locator.EXPECT().
		Find(domain.NewDependencyRef("gzip", "1.4", ""), cfg.SearchPath()).
		Return(recipeFor("gzip", "1.4", zlib), nil).
		Times(1)
	h.locator.EXPECT().
		Find(zlib, cfg.SearchPath()).
		Return(recipeFor("zlib", "1.2.8"), nil).
		Times(1)

	order, err := h.app.Plan(context.Background(), []string{"gzip/1.4"}, app.RunOptions{ConfigPath: "rob.yaml"})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	want := []string{"zlib/1.2.8", "gzip/1.4"}
	if len(order) != len(want) {
		t.Fatalf("expected order %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], order[i])
		}
	}
}

func TestApp_Plan_MissingTargetRecipe(t *testing.T) {
	h := newHarness(t)
	cfg := testConfig(t)
	h.loader.EXPECT().Load(gomock.Any()).Return(cfg, nil)
	h.locator.EXPECT().Find(gomock.Any(), gomock.Any()).Return(nil, nil)

	_, err := h.app.Plan(context.Background(), []string{"gzip/1.4"}, app.RunOptions{})
	if !errors.Is(err, domain.ErrMissingRecipe) {
		t.Errorf("expected ErrMissingRecipe, got %v", err)
	}
}

func TestApp_Plan_InvalidTarget(t *testing.T) {
	h := newHarness(t)
	cfg := testConfig(t)
	h.loader.EXPECT().Load(gomock.Any()).Return(cfg, nil)

	_, err := h.app.Plan(context.Background(), []string{"gzip"}, app.RunOptions{})
	if err == nil {
		t.Errorf("expected error for target without version")
	}
}

func TestApp_Run_InstallsResolvedOrder(t *testing.T) {
	h := newHarness(t)
	cfg := testConfig(t)
	h.loader.EXPECT().Load(gomock.Any()).Return(cfg, nil)

	zlib := domain.NewDependencyRef("zlib", "1.2.8", "")
	h.locator.EXPECT().
		Find(domain.NewDependencyRef("gzip", "1.4", ""), cfg.SearchPath()).
		Return(recipeFor("gzip", "1.4", zlib), nil)
	h.locator.EXPECT().
		Find(zlib, cfg.SearchPath()).
		Return(recipeFor("zlib", "1.2.8"), nil)

	// Two configure-make installs of three commands each.
	h.runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(nil).Times(6)

	ctrl := gomock.NewController(t)
	vertex := mocks.NewMockVertex(ctrl)
	vertex.EXPECT().Log(domain.LogLevelInfo, string(domain.StatusInstalling)).Times(2)
	vertex.EXPECT().Log(domain.LogLevelInfo, string(domain.StatusInstalled)).Times(2)
	vertex.EXPECT().Complete(nil).Times(2)
	h.telemetry.EXPECT().
		Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) (context.Context, ports.Vertex) {
			return ctx, vertex
		}).
		Times(2)
	h.telemetry.EXPECT().Close().Return(nil)

	err := h.app.Run(context.Background(), []string{"gzip/1.4"}, app.RunOptions{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Both installs published their module markers.
	for _, marker := range []string{"zlib/1.2.8", "gzip/1.4"} {
		if _, err := os.Stat(filepath.Join(cfg.ModuleRoot, marker)); err != nil {
			t.Errorf("module marker %s not written: %v", marker, err)
		}
	}
}

func TestApp_Run_SkipsAvailableTarget(t *testing.T) {
	h := newHarness(t)
	cfg := testConfig(t)

	// The module tree already provides gzip/1.4.
	if err := os.MkdirAll(filepath.Join(cfg.ModuleRoot, "gzip"), 0o750); err != nil {
		t.Fatalf("failed to create module dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(cfg.ModuleRoot, "gzip", "1.4"), nil, 0o600); err != nil {
		t.Fatalf("failed to write module marker: %v", err)
	}

	h.loader.EXPECT().Load(gomock.Any()).Return(cfg, nil)
	h.locator.EXPECT().
		Find(domain.NewDependencyRef("gzip", "1.4", ""), cfg.SearchPath()).
		Return(recipeFor("gzip", "1.4"), nil)

	ctrl := gomock.NewController(t)
	vertex := mocks.NewMockVertex(ctrl)
	vertex.EXPECT().Log(domain.LogLevelInfo, string(domain.StatusAvailable))
	vertex.EXPECT().Cached()
	vertex.EXPECT().Complete(nil)
	h.telemetry.EXPECT().
		Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) (context.Context, ports.Vertex) {
			return ctx, vertex
		})
	h.telemetry.EXPECT().Close().Return(nil)

	// No runner expectations: nothing must be executed.
	err := h.app.Run(context.Background(), []string{"gzip/1.4"}, app.RunOptions{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
}

func TestApp_Run_StopsOnInstallFailure(t *testing.T) {
	h := newHarness(t)
	cfg := testConfig(t)
	h.loader.EXPECT().Load(gomock.Any()).Return(cfg, nil)
	h.locator.EXPECT().
		Find(domain.NewDependencyRef("gzip", "1.4", ""), cfg.SearchPath()).
		Return(recipeFor("gzip", "1.4"), nil)

	h.runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(errors.New("exit status 2"))

	ctrl := gomock.NewController(t)
	vertex := mocks.NewMockVertex(ctrl)
	vertex.EXPECT().Log(domain.LogLevelInfo, string(domain.StatusInstalling))
	vertex.EXPECT().Log(domain.LogLevelError, string(domain.StatusFailed))
	vertex.EXPECT().Complete(gomock.Not(gomock.Nil()))
	h.telemetry.EXPECT().
		Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) (context.Context, ports.Vertex) {
			return ctx, vertex
		})
	h.telemetry.EXPECT().Close().Return(nil)

	err := h.app.Run(context.Background(), []string{"gzip/1.4"}, app.RunOptions{})
	if !errors.Is(err, domain.ErrInstallFailed) {
		t.Errorf("expected ErrInstallFailed, got %v", err)
	}
}

func TestApp_Available(t *testing.T) {
	h := newHarness(t)
	cfg := testConfig(t)
	for _, marker := range [][2]string{{"GCC", "4.6.3"}, {"zlib", "1.2.8"}} {
		dir := filepath.Join(cfg.ModuleRoot, marker[0])
		if err := os.MkdirAll(dir, 0o750); err != nil {
			t.Fatalf("failed to create module dir: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, marker[1]), nil, 0o600); err != nil {
			t.Fatalf("failed to write module marker: %v", err)
		}
	}
	h.loader.EXPECT().Load(gomock.Any()).Return(cfg, nil)

	names, err := h.app.Available(app.RunOptions{})
	if err != nil {
		t.Fatalf("Available failed: %v", err)
	}

	want := []string{"GCC/4.6.3", "zlib/1.2.8"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], names[i])
		}
	}
}
