// Package autotools drives the classic configure/make workflow for
// consumers that ship a configure script instead of a CMake project.
package autotools

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/packtest/packtest/internal/generate"
	"github.com/packtest/packtest/internal/layout"
	"github.com/packtest/packtest/internal/settings"
	"github.com/packtest/packtest/pkgs/buildsys"
)

// AutoTools builds the consumer at layout.SourceDir inside
// layout.BuildDir. The packaged headers and libraries are injected
// through CPPFLAGS/LDFLAGS rather than a toolchain file.
type AutoTools struct {
	layout   layout.Layout
	inputs   generate.Inputs
	compiler string
	env      map[string]string

	stdout io.Writer
	stderr io.Writer

	makeTool string
}

var _ buildsys.Builder = (*AutoTools)(nil)

// New returns a ready-to-use AutoTools for one verification run.
func New(l layout.Layout, in generate.Inputs, s settings.Settings) *AutoTools {
	a := &AutoTools{
		layout:   l,
		inputs:   in,
		compiler: s.Compiler,
		env:      make(map[string]string),
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		makeTool: "make",
	}
	if root := in.Package.Root; root != "" {
		a.appendFlag("CPPFLAGS", "-I"+filepath.Join(root, "include"))
		a.appendFlag("LDFLAGS", "-L"+filepath.Join(root, "lib"))
	}
	if a.compiler != "" {
		a.env["CC"] = a.compiler
	}
	return a
}

// Env sets key=value for every command spawned later.
func (a *AutoTools) Env(key, value string) {
	a.env[key] = value
}

// SetStdout redirects the tools' standard output.
func (a *AutoTools) SetStdout(w io.Writer) { a.stdout = w }

// SetStderr redirects the tools' standard error.
func (a *AutoTools) SetStderr(w io.Writer) { a.stderr = w }

// Configure runs <sourceDir>/configure inside the build folder.
func (a *AutoTools) Configure(ctx context.Context) error {
	if err := os.MkdirAll(a.layout.BuildDir, 0o755); err != nil {
		return err
	}
	exe := filepath.Join(a.layout.SourceDir, "configure")
	return a.run(ctx, "configure", exe, nil)
}

// Build runs "make" inside the build folder.
func (a *AutoTools) Build(ctx context.Context) error {
	return a.run(ctx, "build", a.makeTool, nil)
}

func (a *AutoTools) run(ctx context.Context, step, name string, args []string) error {
	var diag bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	buildsys.OwnProcessGroup(cmd)
	cmd.Dir = a.layout.BuildDir
	cmd.Stdout = io.MultiWriter(a.stdout, &diag)
	cmd.Stderr = io.MultiWriter(a.stderr, &diag)
	if len(a.env) > 0 {
		cmd.Env = mergeEnv(os.Environ(), a.env)
	}
	if err := cmd.Run(); err != nil {
		return &buildsys.BuildError{Tool: filepath.Base(name), Step: step, Output: diag.String(), Err: err}
	}
	return nil
}

// appendFlag appends a space-separated flag to a tracked env var,
// starting from the process's current value.
func (a *AutoTools) appendFlag(key, flag string) {
	cur, ok := a.env[key]
	if !ok {
		cur = os.Getenv(key)
	}
	if cur != "" {
		flag = cur + " " + flag
	}
	a.env[key] = flag
}

// mergeEnv returns base with every key in overrides replaced or appended.
func mergeEnv(base []string, overrides map[string]string) []string {
	idx := make(map[string]int, len(base))
	for i, kv := range base {
		if k, _, ok := strings.Cut(kv, "="); ok {
			idx[k] = i
		}
	}
	for k, v := range overrides {
		if i, ok := idx[k]; ok {
			base[i] = k + "=" + v
		} else {
			base = append(base, k+"="+v)
		}
	}
	return base
}
