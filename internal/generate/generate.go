// Package generate projects ambient build settings and the package
// under test into generator inputs for the native build tool.
package generate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/packtest/packtest/internal/layout"
	"github.com/packtest/packtest/internal/pkgcache"
	"github.com/packtest/packtest/internal/settings"
	"github.com/packtest/packtest/mod/pkgref"
)

// ToolchainFile is the generator input consumed by the build invoker.
const ToolchainFile = "packtest_toolchain.cmake"

// Inputs is what Project hands to the build invoker: the resolved
// package plus the toolchain file wiring it into the consumer build.
type Inputs struct {
	Package   pkgcache.Package
	Toolchain string
}

// Project resolves ref against the packaging provider, derives the run
// layout for the consumer at sourceDir, and writes the generator input
// files into the build folder. Writing those files is the only
// filesystem mutation in this stage; resolution failures propagate as
// *pkgcache.ConfigurationError.
func Project(p pkgcache.Provider, ref pkgref.Ref, s settings.Settings, sourceDir string) (Inputs, layout.Layout, error) {
	l := layout.Derive(sourceDir, s)

	pkg, err := p.Resolve(ref, s)
	if err != nil {
		return Inputs{}, layout.Layout{}, err
	}

	if err := os.MkdirAll(l.GeneratorsDir, 0o755); err != nil {
		return Inputs{}, layout.Layout{}, err
	}
	toolchain := filepath.Join(l.GeneratorsDir, ToolchainFile)
	if err := os.WriteFile(toolchain, toolchainData(pkg, s), 0o644); err != nil {
		return Inputs{}, layout.Layout{}, fmt.Errorf("generate: write %s: %w", toolchain, err)
	}

	return Inputs{Package: pkg, Toolchain: toolchain}, l, nil
}

// toolchainData renders the CMake toolchain script that makes the
// packaged headers and libraries discoverable by the consumer build.
func toolchainData(pkg pkgcache.Package, s settings.Settings) []byte {
	root := filepath.ToSlash(pkg.Root)

	var b strings.Builder
	fmt.Fprintf(&b, "# Generated by packtest for %s. Do not edit.\n", pkg.Ref)
	if s.BuildType != "" {
		fmt.Fprintf(&b, "set(CMAKE_BUILD_TYPE %q CACHE STRING \"\")\n", s.BuildType)
	}
	if s.Compiler != "" {
		fmt.Fprintf(&b, "set(CMAKE_C_COMPILER %q CACHE FILEPATH \"\")\n", s.Compiler)
	}
	fmt.Fprintf(&b, "list(PREPEND CMAKE_PREFIX_PATH %q)\n", root)
	fmt.Fprintf(&b, "list(PREPEND CMAKE_INCLUDE_PATH %q)\n", root+"/include")
	fmt.Fprintf(&b, "list(PREPEND CMAKE_LIBRARY_PATH %q)\n", root+"/lib")
	return []byte(b.String())
}
