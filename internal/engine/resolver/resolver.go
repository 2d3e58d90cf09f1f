// Package resolver implements dependency resolution for package builds.
//
// Resolution is a fixed-point computation: the pending set is expanded by
// looking up recipes for unsatisfied dependencies, then drained by moving
// dependency-free descriptors into the resolved order, until either the
// pending set is empty or a full pass makes no progress.
package resolver

import (
	"go.trai.ch/rob/internal/core/domain"
	"go.trai.ch/rob/internal/core/ports"
	"go.trai.ch/zerr"
)

// Resolver computes a valid installation order for a set of package
// descriptors. It consults the oracle for modules that are already
// available and the locator for recipes of everything else.
type Resolver struct {
	oracle  ports.Oracle
	locator ports.Locator
}

// New creates a Resolver with the given collaborators.
func New(oracle ports.Oracle, locator ports.Locator) *Resolver {
	return &Resolver{
		oracle:  oracle,
		locator: locator,
	}
}

// Resolve expands the dependency graph of the given descriptors and returns
// a linear order in which every dependency precedes its dependents.
// Dependencies the oracle reports as available are satisfied in place and
// never appear in the output. searchPath is handed to the locator verbatim;
// when it is empty the locator is never consulted and every unexpanded
// dependency is reported missing.
//
// The input descriptors are deep-copied, never mutated. On failure no
// partial order is returned.
func (r *Resolver) Resolve(descriptors []*domain.Descriptor, searchPath string) ([]*domain.Descriptor, error) {
	st := newRunState(descriptors)

	for len(st.pending) > 0 {
		added, err := st.expand(r.oracle, r.locator, searchPath)
		if err != nil {
			return nil, err
		}

		drained := st.drain()

		if !drained && added == 0 {
			// No new nodes and nothing drainable: the remainder is a cycle
			// or permanently blocked. Report the first blocked member.
			blocked := st.pending[0]
			err := zerr.With(domain.ErrUnresolvable, "package", blocked.ID.String())
			return nil, zerr.With(err, "blocked_packages", len(st.pending))
		}
	}

	return st.resolved, nil
}

// runState is the working set of one Resolve call. Nothing in it is shared
// across calls.
type runState struct {
	pending  []*domain.Descriptor
	resolved []*domain.Descriptor
	seen     map[domain.ModuleID]bool
}

func newRunState(descriptors []*domain.Descriptor) *runState {
	st := &runState{
		seen: make(map[domain.ModuleID]bool, len(descriptors)),
	}
	for _, d := range descriptors {
		if st.seen[d.ID] {
			continue
		}
		st.seen[d.ID] = true
		st.pending = append(st.pending, d.Clone())
	}
	return st
}

// expand walks every pending descriptor, including ones appended during the
// walk, and settles each dependency reference: satisfied by the oracle,
// deferred to an already-known node, or expanded into a new pending node
// via the locator. It returns the number of nodes added.
func (st *runState) expand(oracle ports.Oracle, locator ports.Locator, searchPath string) (int, error) {
	added := 0

	for i := 0; i < len(st.pending); i++ {
		desc := st.pending[i]

		// Satisfy mutates the slice, so settle against a snapshot.
		refs := make([]domain.DependencyRef, len(desc.Dependencies))
		copy(refs, desc.Dependencies)

		for _, ref := range refs {
			id := ref.ID()

			if oracle.Available(id.Name.String(), id.Version.String()) {
				desc.Satisfy(id)
				continue
			}

			if st.seen[id] {
				// The node is already pending or resolved; the reference
				// clears when it drains.
				continue
			}

			recipe, err := st.locate(locator, ref, searchPath)
			if err != nil {
				return 0, err
			}
			if recipe == nil {
				err := zerr.With(domain.ErrMissingRecipe, "dependency", id.String())
				return 0, zerr.With(err, "required_by", desc.ID.String())
			}

			st.seen[id] = true
			st.pending = append(st.pending, recipe.Descriptor())
			added++
		}
	}

	return added, nil
}

// locate queries the locator unless the search path is empty, in which case
// the reference is treated as not found without any lookup.
func (st *runState) locate(locator ports.Locator, ref domain.DependencyRef, searchPath string) (*domain.Recipe, error) {
	if searchPath == "" {
		return nil, nil
	}
	return locator.Find(ref, searchPath)
}

// drain repeatedly moves dependency-free descriptors from pending to the
// resolved order, in stable first-found order, clearing the drained
// identity from every remaining descriptor's dependency list. It reports
// whether anything drained.
func (st *runState) drain() bool {
	drainedAny := false

	for {
		drained := false
		remaining := make([]*domain.Descriptor, 0, len(st.pending))

		for _, desc := range st.pending {
			if !desc.Resolved() {
				remaining = append(remaining, desc)
				continue
			}

			st.resolved = append(st.resolved, desc)
			st.satisfy(desc.ID)
			drained = true
			drainedAny = true
		}

		st.pending = remaining
		if !drained {
			return drainedAny
		}
	}
}

// satisfy clears id from the dependency lists of every still-pending
// descriptor: the node now appears earlier in the resolved order.
func (st *runState) satisfy(id domain.ModuleID) {
	for _, desc := range st.pending {
		desc.Satisfy(id)
	}
}
