// Package pkgcache resolves a package reference to a locally installed
// package root. It is the harness's view of the packaging system: an
// opaque provider that either hands back prebuilt artifacts for the
// requested settings or fails.
package pkgcache

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/packtest/packtest/internal/env"
	"github.com/packtest/packtest/internal/settings"
	"github.com/packtest/packtest/mod/pkgref"
)

// Package is one resolved package: its reference plus the install
// prefix holding include/, lib/ and bin/.
type Package struct {
	Ref  pkgref.Ref
	Root string
}

// Provider resolves package references against build settings.
type Provider interface {
	Resolve(ref pkgref.Ref, s settings.Settings) (Package, error)
}

// ConfigurationError reports a package reference that cannot be
// resolved for the given settings. It is fatal for a verification run.
type ConfigurationError struct {
	Ref      pkgref.Ref
	Settings settings.Settings
	Err      error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("resolve %s for %s: %v", e.Ref, e.Settings, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// Cache resolves references against a local directory of installed
// package roots.
//
// Directory layout:
//
//	dir/
//	  <name>@<version>-<os>-<arch>/   # package root
//	    include/
//	    lib/
//	    bin/
type Cache struct {
	dir string
}

// New returns a Cache rooted at dir.
func New(dir string) *Cache {
	return &Cache{dir: dir}
}

// Default returns a Cache rooted at the user-level packages directory.
func Default() (*Cache, error) {
	dir, err := env.PackagesDir()
	if err != nil {
		return nil, err
	}
	return New(dir), nil
}

// RootDir returns the install prefix a package with the given reference
// and settings is expected at.
func (c *Cache) RootDir(ref pkgref.Ref, s settings.Settings) string {
	return filepath.Join(c.dir, fmt.Sprintf("%s@%s-%s", ref.Name, ref.Version, s))
}

// Resolve looks up the package root for ref under s. A missing or
// non-directory root yields a *ConfigurationError.
func (c *Cache) Resolve(ref pkgref.Ref, s settings.Settings) (Package, error) {
	root := c.RootDir(ref, s)
	info, err := os.Stat(root)
	if err != nil {
		return Package{}, &ConfigurationError{Ref: ref, Settings: s, Err: err}
	}
	if !info.IsDir() {
		return Package{}, &ConfigurationError{
			Ref: ref, Settings: s,
			Err: fmt.Errorf("%s is not a directory", root),
		}
	}
	return Package{Ref: ref, Root: root}, nil
}
