package pkgcache

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/packtest/packtest/internal/settings"
	"github.com/packtest/packtest/mod/pkgref"
)

var testSettings = settings.Settings{OS: "linux", Arch: "amd64", BuildType: "Release"}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	ref := pkgref.Ref{Name: "unilink", Version: "1.2.3"}
	root := filepath.Join(dir, "unilink@1.2.3-linux-amd64")
	if err := os.MkdirAll(filepath.Join(root, "lib"), 0o755); err != nil {
		t.Fatal(err)
	}

	pkg, err := New(dir).Resolve(ref, testSettings)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if pkg.Root != root {
		t.Errorf("Root = %q, want %q", pkg.Root, root)
	}
	if pkg.Ref != ref {
		t.Errorf("Ref = %v, want %v", pkg.Ref, ref)
	}
}

func TestResolveMissing(t *testing.T) {
	ref := pkgref.Ref{Name: "unilink", Version: "9.9.9"}

	_, err := New(t.TempDir()).Resolve(ref, testSettings)
	if err == nil {
		t.Fatal("Resolve of missing package succeeded, want error")
	}
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error is %T, want *ConfigurationError", err)
	}
	if cfgErr.Ref != ref {
		t.Errorf("ConfigurationError.Ref = %v, want %v", cfgErr.Ref, ref)
	}
}

func TestResolveRootIsFile(t *testing.T) {
	dir := t.TempDir()
	ref := pkgref.Ref{Name: "unilink", Version: "1.0.0"}
	if err := os.WriteFile(filepath.Join(dir, "unilink@1.0.0-linux-amd64"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	var cfgErr *ConfigurationError
	if _, err := New(dir).Resolve(ref, testSettings); !errors.As(err, &cfgErr) {
		t.Fatalf("error is %T, want *ConfigurationError", err)
	}
}
