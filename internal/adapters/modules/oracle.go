// Package modules implements the module availability oracle over one or
// more module trees on disk.
//
// A module tree is laid out <root>/<name>/<version>, where the version
// entry is a module file or directory. The whole tree is scanned into an
// in-memory index when the oracle is constructed, so queries are pure map
// lookups and never touch the filesystem.
package modules

import (
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/rob/internal/core/domain"
	"go.trai.ch/rob/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.Oracle = (*TreeOracle)(nil)

// TreeOracle implements ports.Oracle over a snapshot of module trees.
type TreeOracle struct {
	mu    sync.RWMutex
	index map[domain.ModuleID]bool
}

// NewTreeOracle scans the given module roots concurrently and indexes every
// (name, version) pair found. A root that does not exist is skipped; a root
// that exists but cannot be read fails construction.
func NewTreeOracle(roots ...string) (*TreeOracle, error) {
	o := &TreeOracle{
		index: make(map[domain.ModuleID]bool),
	}

	var g errgroup.Group
	for _, root := range roots {
		g.Go(func() error {
			return o.scanRoot(root)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return o, nil
}

func (o *TreeOracle) scanRoot(root string) error {
	names, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, "failed to read module root"), "root", root)
	}

	for _, name := range names {
		if !name.IsDir() {
			continue
		}
		versions, err := os.ReadDir(filepath.Join(root, name.Name()))
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to read module directory"), "module", name.Name())
		}
		for _, version := range versions {
			o.add(name.Name(), version.Name())
		}
	}

	return nil
}

func (o *TreeOracle) add(name, version string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.index[domain.NewModuleID(name, version)] = true
}

// Available reports whether the module was present when the tree was
// scanned. Pure lookup, safe to call repeatedly.
func (o *TreeOracle) Available(name, version string) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.index[domain.NewModuleID(name, version)]
}

// Publish records a freshly installed module in the index so later queries
// in the same run see it without a rescan. The installer calls this after
// writing the module marker.
func (o *TreeOracle) Publish(name, version string) {
	o.add(name, version)
}

// Modules returns every indexed identity, for display purposes. The order
// is unspecified.
func (o *TreeOracle) Modules() []domain.ModuleID {
	o.mu.RLock()
	defer o.mu.RUnlock()

	res := make([]domain.ModuleID, 0, len(o.index))
	for id := range o.index {
		res = append(res, id)
	}
	return res
}
