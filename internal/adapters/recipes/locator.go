// Package recipes implements the file-based recipe locator.
//
// Recipes are YAML files named name-version[-toolchain].yaml, searched on a
// robot-style path: each path entry is probed at its root and under a
// first-letter subdirectory (g/gzip-1.4.yaml).
package recipes

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/rob/internal/core/domain"
	"go.trai.ch/rob/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Locator = (*FileLocator)(nil)

// FileLocator implements ports.Locator over recipe files on disk. Parsed
// recipes are cached by content hash, so repeated expansion passes touching
// the same file never re-parse it.
type FileLocator struct {
	mu    sync.RWMutex
	cache map[uint64]*domain.Recipe
}

// NewFileLocator creates a FileLocator with an empty parse cache.
func NewFileLocator() *FileLocator {
	return &FileLocator{
		cache: make(map[uint64]*domain.Recipe),
	}
}

// Find probes each search path entry for a recipe file matching ref and
// parses the first match. It returns (nil, nil) when no entry has a match;
// unreadable or malformed files are reported as errors, distinct from
// not-found.
func (l *FileLocator) Find(ref domain.DependencyRef, searchPath string) (*domain.Recipe, error) {
	filename := recipeFilename(ref)

	for _, entry := range filepath.SplitList(searchPath) {
		if entry == "" {
			continue
		}
		for _, candidate := range candidatePaths(entry, ref, filename) {
			recipe, err := l.load(candidate, ref)
			if err != nil {
				return nil, err
			}
			if recipe != nil {
				return recipe, nil
			}
		}
	}

	return nil, nil
}

// recipeFilename builds name-version[-toolchain].yaml for the reference.
func recipeFilename(ref domain.DependencyRef) string {
	name := ref.Name.String() + "-" + ref.Version.String()
	if tc := ref.Toolchain.String(); tc != "" {
		name += "-" + tc
	}
	return name + ".yaml"
}

// candidatePaths lists the locations probed under one search path entry:
// the entry itself, then the lowercase first-letter subdirectory.
func candidatePaths(entry string, ref domain.DependencyRef, filename string) []string {
	paths := []string{filepath.Join(entry, filename)}
	if name := ref.Name.String(); name != "" {
		letter := strings.ToLower(name[:1])
		paths = append(paths, filepath.Join(entry, letter, filename))
	}
	return paths
}

// load reads and parses one candidate file. A missing file yields
// (nil, nil); any other failure is an error.
func (l *FileLocator) load(path string, ref domain.DependencyRef) (*domain.Recipe, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is built from the configured search path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read recipe file"), "path", path)
	}

	key := xxhash.Sum64(data)
	l.mu.RLock()
	cached, ok := l.cache[key]
	l.mu.RUnlock()
	if ok {
		return cached, nil
	}

	recipe, err := Parse(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}

	if recipe.ModuleID() != ref.ID() {
		err := zerr.New("recipe identity does not match its filename")
		err = zerr.With(err, "path", path)
		err = zerr.With(err, "declared", recipe.ModuleID().String())
		return nil, zerr.With(err, "expected", ref.ID().String())
	}

	l.mu.Lock()
	l.cache[key] = recipe
	l.mu.Unlock()

	return recipe, nil
}
