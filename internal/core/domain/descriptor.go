// Package domain contains the core domain models for package resolution
// and installation.
package domain

// ModuleID identifies a package as the module system sees it: a name plus
// a full version string. The version string carries the toolchain suffix
// when one applies (e.g. "1.4-GCC-4.6.3"), matching the layout of a module
// tree (<root>/gzip/1.4-GCC-4.6.3).
type ModuleID struct {
	Name    InternedString
	Version InternedString
}

// NewModuleID interns name and version into a ModuleID.
func NewModuleID(name, version string) ModuleID {
	return ModuleID{
		Name:    NewInternedString(name),
		Version: NewInternedString(version),
	}
}

// String renders the identity as "name/version".
func (id ModuleID) String() string {
	return id.Name.String() + "/" + id.Version.String()
}

// DependencyRef is a lookup key for one declared dependency: name, version
// and an optional toolchain tag. It is never mutated; satisfying a
// dependency removes the reference from its descriptor instead.
type DependencyRef struct {
	Name      InternedString
	Version   InternedString
	Toolchain InternedString
}

// NewDependencyRef interns the three components of a dependency reference.
// toolchain may be empty.
func NewDependencyRef(name, version, toolchain string) DependencyRef {
	return DependencyRef{
		Name:      NewInternedString(name),
		Version:   NewInternedString(version),
		Toolchain: NewInternedString(toolchain),
	}
}

// ID folds the reference into a module identity. The toolchain tag becomes
// a version suffix so that "gzip 1.4 GCC-4.6.3" and the module
// gzip/1.4-GCC-4.6.3 share one key.
func (r DependencyRef) ID() ModuleID {
	version := r.Version.String()
	if !r.Toolchain.IsZero() && r.Toolchain.String() != "" {
		version += "-" + r.Toolchain.String()
	}
	return NewModuleID(r.Name.String(), version)
}

// String renders the reference like its module identity.
func (r DependencyRef) String() string {
	return r.ID().String()
}

// Descriptor is a package's resolution-time record: its module identity,
// the dependencies still unsatisfied, and the recipe that knows how to
// install it. The Dependencies slice shrinks as the resolver satisfies
// references; a descriptor with an empty slice is ready to be drained.
type Descriptor struct {
	ID           ModuleID
	Dependencies []DependencyRef
	Recipe       *Recipe
}

// Clone returns a deep copy. The resolver clones its input so the caller's
// descriptors are never mutated.
func (d *Descriptor) Clone() *Descriptor {
	deps := make([]DependencyRef, len(d.Dependencies))
	copy(deps, d.Dependencies)
	return &Descriptor{
		ID:           d.ID,
		Dependencies: deps,
		Recipe:       d.Recipe,
	}
}

// Resolved reports whether every dependency has been satisfied.
func (d *Descriptor) Resolved() bool {
	return len(d.Dependencies) == 0
}

// Satisfy removes every dependency reference whose identity matches id.
func (d *Descriptor) Satisfy(id ModuleID) {
	remaining := d.Dependencies[:0]
	for _, ref := range d.Dependencies {
		if ref.ID() != id {
			remaining = append(remaining, ref)
		}
	}
	d.Dependencies = remaining
}
