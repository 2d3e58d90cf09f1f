package recipes_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rob/internal/adapters/recipes"
	"go.trai.ch/rob/internal/core/domain"
)

func writeRecipe(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFind_AtSearchPathRoot(t *testing.T) {
	dir := t.TempDir()
	writeRecipe(t, dir, "gzip-1.4.yaml", `
name: gzip
version: "1.4"
kind: configure-make
source: gzip-1.4.tar.gz
dependencies:
  - name: zlib
    version: "1.2.8"
sanity:
  files: [bin/gzip]
`)

	l := recipes.NewFileLocator()
	recipe, err := l.Find(domain.NewDependencyRef("gzip", "1.4", ""), dir)
	require.NoError(t, err)
	require.NotNil(t, recipe)

	assert.Equal(t, "gzip", recipe.Name)
	assert.Equal(t, "1.4", recipe.Version)
	assert.Equal(t, domain.KindConfigureMake, recipe.Kind)
	require.Len(t, recipe.Dependencies, 1)
	assert.Equal(t, "zlib/1.2.8", recipe.Dependencies[0].ID().String())
	assert.Equal(t, []string{"bin/gzip"}, recipe.Sanity.Files)
}

func TestFind_LetterSubdirectory(t *testing.T) {
	dir := t.TempDir()
	writeRecipe(t, filepath.Join(dir, "g"), "GCC-4.6.3.yaml", `
name: GCC
version: "4.6.3"
`)

	l := recipes.NewFileLocator()
	recipe, err := l.Find(domain.NewDependencyRef("GCC", "4.6.3", ""), dir)
	require.NoError(t, err)
	require.NotNil(t, recipe)
	assert.Equal(t, "GCC/4.6.3", recipe.ModuleID().String())
	// Omitted kind defaults to configure-make.
	assert.Equal(t, domain.KindConfigureMake, recipe.Kind)
}

func TestFind_ToolchainSuffixFilename(t *testing.T) {
	dir := t.TempDir()
	writeRecipe(t, dir, "gzip-1.4-GCC-4.6.3.yaml", `
name: gzip
version: "1.4"
toolchain: GCC-4.6.3
dependencies:
  - name: GCC
    version: "4.6.3"
`)

	l := recipes.NewFileLocator()
	recipe, err := l.Find(domain.NewDependencyRef("gzip", "1.4", "GCC-4.6.3"), dir)
	require.NoError(t, err)
	require.NotNil(t, recipe)
	assert.Equal(t, "gzip/1.4-GCC-4.6.3", recipe.ModuleID().String())
}

func TestFind_NotFound(t *testing.T) {
	l := recipes.NewFileLocator()
	recipe, err := l.Find(domain.NewDependencyRef("gzip", "1.4", ""), t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, recipe)
}

func TestFind_MultiEntrySearchPath(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeRecipe(t, second, "zlib-1.2.8.yaml", `
name: zlib
version: "1.2.8"
`)

	searchPath := first + string(os.PathListSeparator) + second

	l := recipes.NewFileLocator()
	recipe, err := l.Find(domain.NewDependencyRef("zlib", "1.2.8", ""), searchPath)
	require.NoError(t, err)
	require.NotNil(t, recipe)
	assert.Equal(t, "zlib/1.2.8", recipe.ModuleID().String())
}

func TestFind_MalformedRecipeIsError(t *testing.T) {
	dir := t.TempDir()
	writeRecipe(t, dir, "gzip-1.4.yaml", "kind: [this is not\n  a recipe")

	l := recipes.NewFileLocator()
	_, err := l.Find(domain.NewDependencyRef("gzip", "1.4", ""), dir)
	require.Error(t, err)
}

func TestFind_IdentityMismatchIsError(t *testing.T) {
	dir := t.TempDir()
	writeRecipe(t, dir, "gzip-1.4.yaml", `
name: gzip
version: "1.5"
`)

	l := recipes.NewFileLocator()
	_, err := l.Find(domain.NewDependencyRef("gzip", "1.4", ""), dir)
	require.Error(t, err)
}

func TestFind_CachesByContent(t *testing.T) {
	dir := t.TempDir()
	writeRecipe(t, dir, "zlib-1.2.8.yaml", `
name: zlib
version: "1.2.8"
`)

	l := recipes.NewFileLocator()
	first, err := l.Find(domain.NewDependencyRef("zlib", "1.2.8", ""), dir)
	require.NoError(t, err)
	second, err := l.Find(domain.NewDependencyRef("zlib", "1.2.8", ""), dir)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestParse_MissingNameOrVersion(t *testing.T) {
	_, err := recipes.Parse([]byte("version: \"1.0\"\n"))
	require.Error(t, err)

	_, err = recipes.Parse([]byte("name: gzip\n"))
	require.Error(t, err)
}

func TestParse_UnknownKind(t *testing.T) {
	_, err := recipes.Parse([]byte("name: gzip\nversion: \"1.4\"\nkind: meson\n"))
	require.ErrorIs(t, err, domain.ErrUnknownPackageKind)
}

func TestParse_IncompleteDependency(t *testing.T) {
	_, err := recipes.Parse([]byte(`
name: gzip
version: "1.4"
dependencies:
  - name: zlib
`))
	require.Error(t, err)
}
