package domain

// PackageKind selects the install procedure for a recipe. Each kind maps to
// one step variant in the installer; recipes are plain data, the variant
// supplies the commands.
type PackageKind string

const (
	// KindConfigureMake is the classic configure / make / make install flow.
	KindConfigureMake PackageKind = "configure-make"
	// KindVendorInstaller drives a vendor-shipped silent installer
	// (silent.cfg plus install.sh), as used by proprietary compiler and
	// library bundles.
	KindVendorInstaller PackageKind = "vendor-installer"
	// KindPythonPackage installs via a single provided build script with a
	// --prefix argument and no separate build step.
	KindPythonPackage PackageKind = "python-package"
)

// Valid reports whether k names a known install procedure.
func (k PackageKind) Valid() bool {
	switch k {
	case KindConfigureMake, KindVendorInstaller, KindPythonPackage:
		return true
	default:
		return false
	}
}

// SanityCheck lists paths, relative to the install prefix, that must exist
// after a successful install.
type SanityCheck struct {
	Files []string
	Dirs  []string
}

// Recipe is the parsed build recipe for one package version: identity,
// declared dependencies, the install procedure kind and its inputs.
type Recipe struct {
	Name      string
	Version   string
	Toolchain string
	Kind      PackageKind

	// Source is the path or URL of the distribution artifact (tarball,
	// vendor bundle directory, or build script, depending on Kind).
	Source string

	Dependencies []DependencyRef

	// ConfigureOpts and InstallOpts are appended to the variant's configure
	// and install command lines respectively.
	ConfigureOpts []string
	InstallOpts   []string

	// Environment is applied on top of the inherited environment for every
	// command the install runs.
	Environment map[string]string

	Sanity SanityCheck
}

// ModuleID returns the module identity the recipe provides, with the
// toolchain tag folded into the version suffix.
func (r *Recipe) ModuleID() ModuleID {
	version := r.Version
	if r.Toolchain != "" {
		version += "-" + r.Toolchain
	}
	return NewModuleID(r.Name, version)
}

// Descriptor builds a fresh resolution descriptor for the recipe.
func (r *Recipe) Descriptor() *Descriptor {
	deps := make([]DependencyRef, len(r.Dependencies))
	copy(deps, r.Dependencies)
	return &Descriptor{
		ID:           r.ModuleID(),
		Dependencies: deps,
		Recipe:       r,
	}
}
