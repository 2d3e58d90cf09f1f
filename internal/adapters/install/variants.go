package install

import (
	"os"
	"path/filepath"

	"go.trai.ch/rob/internal/core/domain"
	"go.trai.ch/rob/internal/core/ports"
	"go.trai.ch/zerr"
)

// variant is the install procedure for one package kind: a plain record
// producing the command sequence for a build context.
type variant struct {
	steps func(bc *buildContext) ([]ports.Command, error)
}

func builtinVariants() map[domain.PackageKind]variant {
	return map[domain.PackageKind]variant{
		domain.KindConfigureMake:   {steps: configureMakeSteps},
		domain.KindVendorInstaller: {steps: vendorInstallerSteps},
		domain.KindPythonPackage:   {steps: pythonPackageSteps},
	}
}

// configureMakeSteps is the classic three-step flow. Configure options from
// the recipe come after the prefix so they can override it.
func configureMakeSteps(bc *buildContext) ([]ports.Command, error) {
	configure := append([]string{"./configure", "--prefix=" + bc.installDir}, bc.recipe.ConfigureOpts...)
	installArgs := append([]string{"make", "install"}, bc.recipe.InstallOpts...)

	return []ports.Command{
		{Argv: configure, Dir: bc.buildDir, Env: bc.env},
		{Argv: []string{"make"}, Dir: bc.buildDir, Env: bc.env},
		{Argv: installArgs, Dir: bc.buildDir, Env: bc.env},
	}, nil
}

// vendorInstallerSteps drives a vendor-shipped silent installer: write a
// silent.cfg into the build directory, then run the bundle's install.sh
// against it. Releases from 2017.2.174 on dropped the runtime license
// machinery, so the activation lines are version-gated.
func vendorInstallerSteps(bc *buildContext) ([]ports.Command, error) {
	if bc.recipe.Source == "" {
		return nil, zerr.New("vendor-installer recipe needs a source bundle")
	}

	cfgPath := filepath.Join(bc.buildDir, "silent.cfg")
	if err := os.WriteFile(cfgPath, []byte(silentCfg(bc)), 0o600); err != nil {
		return nil, zerr.Wrap(err, "failed to write silent.cfg")
	}

	argv := []string{
		filepath.Join(bc.recipe.Source, "install.sh"),
		"--silent", cfgPath,
	}
	argv = append(argv, bc.recipe.InstallOpts...)

	return []ports.Command{
		{Argv: argv, Dir: bc.buildDir, Env: bc.env},
	}, nil
}

func silentCfg(bc *buildContext) string {
	cfg := "ACCEPT_EULA=accept\n" +
		"PSET_INSTALL_DIR=" + bc.installDir + "\n" +
		"PSET_MODE=install\n" +
		"CONTINUE_WITH_OPTIONAL_ERROR=yes\n"

	if looseLess(bc.recipe.Version, "2017.2.174") {
		cfg += "ACTIVATION_TYPE=license_file\n" +
			"ACTIVATION_LICENSE_FILE=" + filepath.Join(bc.buildDir, "license.lic") + "\n"
	}
	return cfg
}

// pythonPackageSteps installs via the provided build script in one shot:
// no separate build step, the script configures, builds and installs.
func pythonPackageSteps(bc *buildContext) ([]ports.Command, error) {
	if bc.recipe.Source == "" {
		return nil, zerr.New("python-package recipe needs a build script")
	}

	argv := []string{"python", bc.recipe.Source, "--prefix=" + bc.installDir}
	argv = append(argv, bc.recipe.InstallOpts...)
	argv = append(argv, "--install")

	return []ports.Command{
		{Argv: argv, Dir: bc.buildDir, Env: bc.env},
	}, nil
}
