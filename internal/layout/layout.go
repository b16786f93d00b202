// Package layout derives the on-disk folder structure one verification
// run builds in.
package layout

import (
	"path/filepath"

	"github.com/packtest/packtest/internal/settings"
)

// Layout separates the consumer's source folder from the build folder
// and records, in the build tool's own preference order, the candidate
// directories a produced executable may land in. Derived once per run
// and never mutated afterwards.
type Layout struct {
	SourceDir     string
	BuildDir      string
	GeneratorsDir string
	BinDirs       []string
}

// Derive computes the conventional layout for a consumer rooted at
// sourceDir built under s. Single-config generators build straight into
// build/<BuildType>; multi-config generators (Visual Studio on Windows)
// build into build/ and sort outputs into per-config subdirectories,
// which is why the candidate list differs per platform.
func Derive(sourceDir string, s settings.Settings) Layout {
	if s.OS == "windows" {
		buildDir := filepath.Join(sourceDir, "build")
		return Layout{
			SourceDir:     sourceDir,
			BuildDir:      buildDir,
			GeneratorsDir: filepath.Join(buildDir, "generators"),
			BinDirs: []string{
				filepath.Join(buildDir, s.BuildType),
				buildDir,
				filepath.Join(buildDir, "bin"),
			},
		}
	}
	buildDir := filepath.Join(sourceDir, "build", s.BuildType)
	return Layout{
		SourceDir:     sourceDir,
		BuildDir:      buildDir,
		GeneratorsDir: filepath.Join(buildDir, "generators"),
		BinDirs: []string{
			buildDir,
			filepath.Join(buildDir, "bin"),
		},
	}
}
