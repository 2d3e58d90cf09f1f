package commands_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"go.trai.ch/rob/cmd/rob/commands"
	"go.trai.ch/rob/internal/app"
	"go.trai.ch/rob/internal/core/domain"
	"go.trai.ch/rob/internal/core/ports"
	"go.trai.ch/rob/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type cliHarness struct {
	loader  *mocks.MockConfigLoader
	locator *mocks.MockLocator
	cli     *commands.CLI
	out     *bytes.Buffer
}

func newCLI(t *testing.T) *cliHarness {
	t.Helper()
	ctrl := gomock.NewController(t)

	h := &cliHarness{
		loader:  mocks.NewMockConfigLoader(ctrl),
		locator: mocks.NewMockLocator(ctrl),
		out:     &bytes.Buffer{},
	}

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()

	a := app.New(h.loader, h.locator, mocks.NewMockRunner(ctrl), logger, mocks.NewMockTelemetry(ctrl))
	h.cli = commands.New(a)
	h.cli.SetOutput(h.out)
	return h
}

func TestVersionCommand(t *testing.T) {
	h := newCLI(t)
	h.cli.SetArgs([]string{"version"})

	if err := h.cli.Execute(context.Background()); err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	if !strings.Contains(h.out.String(), "rob version") {
		t.Errorf("unexpected version output: %q", h.out.String())
	}
}

func TestResolveCommand_PrintsOrder(t *testing.T) {
	h := newCLI(t)
	cfg := &ports.Config{
		RobotPath:     []string{t.TempDir()},
		InstallPrefix: t.TempDir(),
	}
	h.loader.EXPECT().Load("rob.yaml").Return(cfg, nil)

	zlib := domain.NewDependencyRef("zlib", "1.2.8", "")
	h.locator.EXPECT().
		Find(domain.NewDependencyRef("gzip", "1.4", ""), cfg.SearchPath()).
		Return(&domain.Recipe{
			Name:         "gzip",
			Version:      "1.4",
			Kind:         domain.KindConfigureMake,
			Dependencies: []domain.DependencyRef{zlib},
		}, nil)
	h.locator.EXPECT().
		Find(zlib, cfg.SearchPath()).
		Return(&domain.Recipe{Name: "zlib", Version: "1.2.8", Kind: domain.KindConfigureMake}, nil)

	h.cli.SetArgs([]string{"resolve", "gzip/1.4"})
	if err := h.cli.Execute(context.Background()); err != nil {
		t.Fatalf("resolve command failed: %v", err)
	}

	want := "zlib/1.2.8\ngzip/1.4\n"
	if h.out.String() != want {
		t.Errorf("expected output %q, got %q", want, h.out.String())
	}
}

func TestResolveCommand_NoTargetsShowsHelp(t *testing.T) {
	h := newCLI(t)
	h.cli.SetArgs([]string{"resolve"})

	if err := h.cli.Execute(context.Background()); err != nil {
		t.Fatalf("resolve without targets must not fail: %v", err)
	}
	if !strings.Contains(h.out.String(), "Usage:") {
		t.Errorf("expected usage help, got %q", h.out.String())
	}
}

func TestBuildCommand_NoTargetsShowsHelp(t *testing.T) {
	h := newCLI(t)
	h.cli.SetArgs([]string{"build"})

	if err := h.cli.Execute(context.Background()); err != nil {
		t.Fatalf("build without targets must not fail: %v", err)
	}
	if !strings.Contains(h.out.String(), "Usage:") {
		t.Errorf("expected usage help, got %q", h.out.String())
	}
}

func TestAvailCommand(t *testing.T) {
	h := newCLI(t)
	cfg := &ports.Config{
		InstallPrefix: t.TempDir(),
		ModuleRoot:    t.TempDir(),
	}
	h.loader.EXPECT().Load("rob.yaml").Return(cfg, nil)

	h.cli.SetArgs([]string{"avail"})
	if err := h.cli.Execute(context.Background()); err != nil {
		t.Fatalf("avail command failed: %v", err)
	}
	if h.out.String() != "" {
		t.Errorf("expected empty module list, got %q", h.out.String())
	}
}
