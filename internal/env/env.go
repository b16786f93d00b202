package env

import (
	"os"
	"path/filepath"
)

func WorkDir() (string, error) {
	userCacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userCacheDir, ".packtest"), nil
}

// PackagesDir returns (and creates if needed) the directory holding
// locally installed package roots.
func PackagesDir() (string, error) {
	workDir, err := WorkDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(workDir, "packages")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return dir, nil
}
