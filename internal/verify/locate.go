package verify

import (
	"os"
	"path/filepath"

	"github.com/packtest/packtest/internal/layout"
)

// Locate searches the layout's candidate binary directories, in the
// order the build tool reported them, for a regular file named exactly
// name directly inside the directory. No recursion, no extension
// substitution, no PATH lookup. The first match wins; ok is false when
// every candidate is exhausted.
func Locate(l layout.Layout, name string) (path string, ok bool) {
	for _, dir := range l.BinDirs {
		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		return candidate, true
	}
	return "", false
}
