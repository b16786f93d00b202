package layout

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/packtest/packtest/internal/settings"
)

func TestDeriveSingleConfig(t *testing.T) {
	s := settings.Settings{OS: "linux", Arch: "amd64", BuildType: "Release"}
	l := Derive("/src/consumer", s)

	if want := filepath.Join("/src/consumer", "build", "Release"); l.BuildDir != want {
		t.Errorf("BuildDir = %q, want %q", l.BuildDir, want)
	}
	if want := filepath.Join(l.BuildDir, "generators"); l.GeneratorsDir != want {
		t.Errorf("GeneratorsDir = %q, want %q", l.GeneratorsDir, want)
	}
	wantBins := []string{l.BuildDir, filepath.Join(l.BuildDir, "bin")}
	if !reflect.DeepEqual(l.BinDirs, wantBins) {
		t.Errorf("BinDirs = %v, want %v", l.BinDirs, wantBins)
	}
}

func TestDeriveMultiConfig(t *testing.T) {
	s := settings.Settings{OS: "windows", Arch: "amd64", BuildType: "Debug"}
	l := Derive(`C:\work\consumer`, s)

	if want := filepath.Join(`C:\work\consumer`, "build"); l.BuildDir != want {
		t.Errorf("BuildDir = %q, want %q", l.BuildDir, want)
	}
	// Per-config output dir is the primary candidate on multi-config generators.
	if want := filepath.Join(l.BuildDir, "Debug"); l.BinDirs[0] != want {
		t.Errorf("BinDirs[0] = %q, want %q", l.BinDirs[0], want)
	}
	if len(l.BinDirs) != 3 {
		t.Errorf("len(BinDirs) = %d, want 3", len(l.BinDirs))
	}
}

func TestDeriveIsDeterministic(t *testing.T) {
	s := settings.Settings{OS: "linux", Arch: "arm64", BuildType: "Release"}
	a := Derive("/src/c", s)
	b := Derive("/src/c", s)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Derive not deterministic: %v vs %v", a, b)
	}
}
