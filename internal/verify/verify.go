// Package verify runs one package-consumability verification: build
// the consumer against the packaged library, locate the produced
// executable and, when the environment allows it, run it.
package verify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/qiniu/x/log"

	"github.com/packtest/packtest/internal/layout"
	"github.com/packtest/packtest/internal/pkgcache"
	"github.com/packtest/packtest/internal/settings"
	"github.com/packtest/packtest/pkgs/buildsys"
)

// Kind tags the terminal state of a verification run.
type Kind int

const (
	// Ran: the artifact was built, located and executed; the outcome
	// carries its exit status without reinterpretation.
	Ran Kind = iota
	// Skipped: the environment cannot execute target binaries; the
	// build was never invoked with intent to run its output.
	Skipped
	// BuildFailed: configure or build failed. Always a real defect.
	BuildFailed
	// ArtifactNotFound: the build succeeded but no candidate directory
	// held the expected executable. Warning level, not a build defect.
	ArtifactNotFound
)

func (k Kind) String() string {
	switch k {
	case Ran:
		return "ran"
	case Skipped:
		return "skipped"
	case BuildFailed:
		return "build failed"
	case ArtifactNotFound:
		return "artifact not found"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Outcome is the single terminal result of one verification run.
// Exactly one of the auxiliary fields is meaningful, per Kind.
type Outcome struct {
	Kind       Kind
	ExitStatus int      // Ran
	Reason     string   // Skipped
	Err        error    // BuildFailed
	Searched   []string // ArtifactNotFound
}

func (o Outcome) String() string {
	switch o.Kind {
	case Ran:
		return fmt.Sprintf("ran (exit status %d)", o.ExitStatus)
	case Skipped:
		return "skipped: " + o.Reason
	case BuildFailed:
		return "build failed: " + o.Err.Error()
	case ArtifactNotFound:
		return fmt.Sprintf("artifact not found in %v", o.Searched)
	}
	return o.Kind.String()
}

// SkipReason is the reason recorded on capability-check skips.
const SkipReason = "execution not supported in this environment"

// Runner orchestrates one verification run. All fields are set once
// before Run and never mutated; a Runner is not reused across runs.
type Runner struct {
	Settings settings.Settings
	Layout   layout.Layout
	Builder  buildsys.Builder
	Package  pkgcache.Package
	Artifact string

	// Stdout/Stderr receive the executed artifact's output.
	// Defaults to the process's own streams.
	Stdout io.Writer
	Stderr io.Writer
}

// Run walks the state machine to its terminal outcome:
//
//	Init → Skipped                       capability check fails
//	Init → Building → BuildFailed        configure or build fails
//	Built → ArtifactNotFound             no candidate dir holds the artifact
//	Located → Ran                        artifact executed, status captured
//
// The returned error is reserved for harness-internal failures (the
// located artifact could not be spawned); every expected path is an
// Outcome.
func (r *Runner) Run(ctx context.Context) (Outcome, error) {
	if !settings.CanExecute(r.Settings) {
		log.Info("skipping verification:", SkipReason)
		return Outcome{Kind: Skipped, Reason: SkipReason}, nil
	}

	log.Infof("building consumer in %s", r.Layout.BuildDir)
	if err := r.Builder.Configure(ctx); err != nil {
		return Outcome{Kind: BuildFailed, Err: err}, nil
	}
	if err := r.Builder.Build(ctx); err != nil {
		return Outcome{Kind: BuildFailed, Err: err}, nil
	}

	path, ok := Locate(r.Layout, r.Artifact)
	if !ok {
		searched := append([]string(nil), r.Layout.BinDirs...)
		log.Warnf("artifact %q not found, searched: %v", r.Artifact, searched)
		return Outcome{Kind: ArtifactNotFound, Searched: searched}, nil
	}

	log.Infof("running %s", path)
	status, err := r.execute(ctx, path)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Kind: Ran, ExitStatus: status}, nil
}

// execute runs the located artifact, through the configured emulation
// wrapper when one is set, with the package's library directories on
// the loader path. Returns the artifact's exit status.
func (r *Runner) execute(ctx context.Context, path string) (int, error) {
	var cmd *exec.Cmd
	if wrapper := settings.Runner(); len(wrapper) > 0 {
		cmd = exec.CommandContext(ctx, wrapper[0], append(wrapper[1:], path)...)
	} else {
		cmd = exec.CommandContext(ctx, path)
	}
	buildsys.OwnProcessGroup(cmd)
	cmd.Env = runEnv(os.Environ(), r.Package.Root)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return 0, fmt.Errorf("verify: run %s: %w", path, err)
	}
	return 0, nil
}

// runEnv returns base with the package's lib (and, on Windows, bin)
// directories prepended to the loader search path, so the artifact can
// resolve shared libraries shipped by the package.
func runEnv(base []string, root string) []string {
	if root == "" {
		return base
	}
	if runtime.GOOS == "windows" {
		return prependVar(base, "PATH", filepath.Join(root, "bin"), ";")
	}
	libDir := filepath.Join(root, "lib")
	base = prependVar(base, "LD_LIBRARY_PATH", libDir, ":")
	if runtime.GOOS == "darwin" {
		base = prependVar(base, "DYLD_LIBRARY_PATH", libDir, ":")
	}
	return base
}

// prependVar returns env with dir prepended to the list-valued key.
func prependVar(env []string, key, dir, sep string) []string {
	prefix := key + "="
	for i, kv := range env {
		if len(kv) >= len(prefix) && kv[:len(prefix)] == prefix {
			cur := kv[len(prefix):]
			if cur != "" {
				dir += sep + cur
			}
			out := append([]string(nil), env...)
			out[i] = prefix + dir
			return out
		}
	}
	return append(append([]string(nil), env...), prefix+dir)
}
