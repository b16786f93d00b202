// Package settings holds the ambient build settings a verification run
// is performed under, and the capability check deciding whether the
// host can execute binaries built for those settings.
package settings

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables consulted by CanExecute and the run step.
const (
	// SkipRunEnv disables run steps entirely when set to any non-empty value.
	SkipRunEnv = "PACKTEST_SKIP_RUN"
	// RunnerEnv names an emulation wrapper able to execute binaries
	// built for a foreign target, with optional arguments
	// (e.g. "qemu-aarch64 -L /usr/aarch64-linux-gnu").
	RunnerEnv = "PACKTEST_RUNNER"
)

// Settings captures the target platform of one verification run.
// Constructed once and passed read-only into every component.
type Settings struct {
	OS        string `yaml:"os"`
	Arch      string `yaml:"arch"`
	Compiler  string `yaml:"compiler"`
	BuildType string `yaml:"build_type"`
}

// Host returns the settings of the current machine: the running
// OS/architecture, the compiler named by $CC (if any) and a Release
// build type.
func Host() Settings {
	return Settings{
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		Compiler:  os.Getenv("CC"),
		BuildType: "Release",
	}
}

// Load reads a YAML profile and overlays it on the host defaults, so a
// profile only needs to set the fields it wants to change.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, err
	}
	s := Host()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("settings: parse profile %s: %w", path, err)
	}
	return s, nil
}

func (s Settings) String() string {
	return s.OS + "-" + s.Arch
}

// CanExecute reports whether a binary built for s can be executed on
// this host. It must be consulted before any attempt to run a produced
// binary; absence of certainty means false, so cross builds skip
// rather than attempt an execution that cannot work.
func CanExecute(s Settings) bool {
	if os.Getenv(SkipRunEnv) != "" {
		return false
	}
	if os.Getenv(RunnerEnv) != "" {
		return true
	}
	return s.OS == runtime.GOOS && s.Arch == runtime.GOARCH
}

// Runner returns the configured emulation wrapper command split into
// its whitespace-separated fields (e.g. "qemu-aarch64 -L /usr/aarch64"
// becomes the command plus two arguments), or nil when binaries are
// expected to run natively.
func Runner() []string {
	return strings.Fields(os.Getenv(RunnerEnv))
}
