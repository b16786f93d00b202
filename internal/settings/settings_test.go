package settings

import (
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"
)

func TestHost(t *testing.T) {
	t.Setenv("CC", "clang")

	s := Host()
	if s.OS != runtime.GOOS {
		t.Errorf("OS = %q, want %q", s.OS, runtime.GOOS)
	}
	if s.Arch != runtime.GOARCH {
		t.Errorf("Arch = %q, want %q", s.Arch, runtime.GOARCH)
	}
	if s.Compiler != "clang" {
		t.Errorf("Compiler = %q, want %q", s.Compiler, "clang")
	}
	if s.BuildType != "Release" {
		t.Errorf("BuildType = %q, want %q", s.BuildType, "Release")
	}
}

func TestLoadOverlaysHost(t *testing.T) {
	profile := filepath.Join(t.TempDir(), "profile.yaml")
	if err := os.WriteFile(profile, []byte("arch: arm64\nbuild_type: Debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(profile)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Arch != "arm64" {
		t.Errorf("Arch = %q, want %q", s.Arch, "arm64")
	}
	if s.BuildType != "Debug" {
		t.Errorf("BuildType = %q, want %q", s.BuildType, "Debug")
	}
	// Unset fields keep host defaults.
	if s.OS != runtime.GOOS {
		t.Errorf("OS = %q, want host default %q", s.OS, runtime.GOOS)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load of missing file succeeded, want error")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("os: [not, a, scalar"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load of malformed profile succeeded, want error")
	}
}

func TestCanExecuteNative(t *testing.T) {
	t.Setenv(SkipRunEnv, "")
	t.Setenv(RunnerEnv, "")

	if !CanExecute(Host()) {
		t.Error("CanExecute(host settings) = false, want true")
	}
}

func TestCanExecuteCross(t *testing.T) {
	t.Setenv(SkipRunEnv, "")
	t.Setenv(RunnerEnv, "")

	s := Host()
	if runtime.GOARCH == "riscv64" {
		s.Arch = "amd64"
	} else {
		s.Arch = "riscv64"
	}
	if CanExecute(s) {
		t.Error("CanExecute(cross arch) = true, want false")
	}

	s = Host()
	s.OS = "plan9"
	if CanExecute(s) {
		t.Error("CanExecute(cross OS) = true, want false")
	}
}

func TestCanExecuteRunnerEnablesCross(t *testing.T) {
	t.Setenv(SkipRunEnv, "")
	t.Setenv(RunnerEnv, "qemu-riscv64")

	s := Host()
	s.Arch = "riscv64"
	if !CanExecute(s) {
		t.Error("CanExecute with runner configured = false, want true")
	}
	if got := Runner(); !reflect.DeepEqual(got, []string{"qemu-riscv64"}) {
		t.Errorf("Runner() = %v, want %v", got, []string{"qemu-riscv64"})
	}
}

func TestRunnerSplitsArguments(t *testing.T) {
	t.Setenv(RunnerEnv, "qemu-aarch64 -L /usr/aarch64-linux-gnu")

	want := []string{"qemu-aarch64", "-L", "/usr/aarch64-linux-gnu"}
	if got := Runner(); !reflect.DeepEqual(got, want) {
		t.Errorf("Runner() = %v, want %v", got, want)
	}

	t.Setenv(RunnerEnv, "")
	if got := Runner(); got != nil {
		t.Errorf("Runner() with empty env = %v, want nil", got)
	}
}

func TestCanExecuteSkipWins(t *testing.T) {
	t.Setenv(SkipRunEnv, "1")
	t.Setenv(RunnerEnv, "qemu-riscv64")

	if CanExecute(Host()) {
		t.Error("CanExecute with skip flag set = true, want false")
	}
}
