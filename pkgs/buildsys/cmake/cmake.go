// Package cmake drives the CMake configure/build workflow for the
// consumer program.
package cmake

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"sort"

	"github.com/packtest/packtest/internal/generate"
	"github.com/packtest/packtest/internal/layout"
	"github.com/packtest/packtest/internal/settings"
	"github.com/packtest/packtest/pkgs/buildsys"
)

type defineValue struct {
	value    string
	typeName string
}

// CMake builds the consumer at layout.SourceDir into layout.BuildDir
// using the generator inputs projected for the package under test.
type CMake struct {
	layout    layout.Layout
	inputs    generate.Inputs
	buildType string
	generator string
	defines   map[string]defineValue

	stdout io.Writer
	stderr io.Writer

	tool string
}

var _ buildsys.Builder = (*CMake)(nil)

// New returns a ready-to-use CMake for one verification run.
func New(l layout.Layout, in generate.Inputs, s settings.Settings) *CMake {
	return &CMake{
		layout:    l,
		inputs:    in,
		buildType: s.BuildType,
		defines:   make(map[string]defineValue),
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		tool:      "cmake",
	}
}

// Generator sets the CMake generator (e.g. "Ninja", "Unix Makefiles").
func (c *CMake) Generator(name string) { c.generator = name }

// Define adds a -D<key>:STRING=<value> definition.
func (c *CMake) Define(key, value string) {
	c.defines[key] = defineValue{value: value, typeName: "STRING"}
}

// DefineBool adds a -D<key>:BOOL=ON/OFF definition.
func (c *CMake) DefineBool(key string, value bool) {
	v := "OFF"
	if value {
		v = "ON"
	}
	c.defines[key] = defineValue{value: v, typeName: "BOOL"}
}

// SetStdout redirects the tool's standard output.
func (c *CMake) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr redirects the tool's standard error.
func (c *CMake) SetStderr(w io.Writer) { c.stderr = w }

// Configure runs "cmake -S <source> -B <build>" with the projected
// toolchain file and all configured options.
func (c *CMake) Configure(ctx context.Context) error {
	if err := os.MkdirAll(c.layout.BuildDir, 0o755); err != nil {
		return err
	}
	args := []string{"-S", c.layout.SourceDir, "-B", c.layout.BuildDir}
	if c.generator != "" {
		args = append(args, "-G", c.generator)
	}
	if c.inputs.Toolchain != "" {
		c.Define("CMAKE_TOOLCHAIN_FILE", c.inputs.Toolchain)
	}
	if c.buildType != "" {
		c.Define("CMAKE_BUILD_TYPE", c.buildType)
	}
	args = append(args, c.definesArgs()...)
	return c.run(ctx, "configure", args)
}

// Build runs "cmake --build <build>".
func (c *CMake) Build(ctx context.Context) error {
	args := []string{"--build", c.layout.BuildDir}
	if c.buildType != "" {
		args = append(args, "--config", c.buildType)
	}
	return c.run(ctx, "build", args)
}

func (c *CMake) run(ctx context.Context, step string, args []string) error {
	var diag bytes.Buffer
	cmd := exec.CommandContext(ctx, c.tool, args...)
	buildsys.OwnProcessGroup(cmd)
	cmd.Stdout = io.MultiWriter(c.stdout, &diag)
	cmd.Stderr = io.MultiWriter(c.stderr, &diag)
	if err := cmd.Run(); err != nil {
		return &buildsys.BuildError{Tool: c.tool, Step: step, Output: diag.String(), Err: err}
	}
	return nil
}

func (c *CMake) definesArgs() []string {
	if len(c.defines) == 0 {
		return nil
	}
	keys := make([]string, 0, len(c.defines))
	for k := range c.defines {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	args := make([]string, 0, len(keys))
	for _, k := range keys {
		d := c.defines[k]
		args = append(args, "-D"+k+":"+d.typeName+"="+d.value)
	}
	return args
}
