package domain

import "go.trai.ch/zerr"

var (
	// ErrMissingRecipe is returned when a dependency is neither available as
	// a module nor found as a recipe on the search path.
	ErrMissingRecipe = zerr.New("no recipe found for dependency")

	// ErrUnresolvable is returned when the pending set cannot make progress,
	// which means the dependency specification is circular or permanently
	// blocked.
	ErrUnresolvable = zerr.New("unresolvable dependency specification")

	// ErrNoTargetsSpecified is returned when a build is requested without
	// any target packages.
	ErrNoTargetsSpecified = zerr.New("no targets specified")

	// ErrUnknownPackageKind is returned when a recipe declares an install
	// procedure no variant implements.
	ErrUnknownPackageKind = zerr.New("unknown package kind")

	// ErrSanityCheckFailed is returned when a finished install is missing
	// required files or directories under its prefix.
	ErrSanityCheckFailed = zerr.New("sanity check failed")

	// ErrInstallFailed is returned when an install step exits non-zero.
	ErrInstallFailed = zerr.New("install failed")
)
