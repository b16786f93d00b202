// Package buildsys defines the interface the verification harness
// drives an external build tool through.
package buildsys

import (
	"context"
	"strings"
)

// Builder captures the shared lifecycle of build helpers (CMake,
// Autotools, etc): configure the consumer against the generated
// settings, then build it. Both calls block until the external tool
// finishes; a cancelled context kills the tool's process tree.
type Builder interface {
	Configure(ctx context.Context) error
	Build(ctx context.Context) error
}

// BuildError reports a failed configure or build step. Output carries
// the external tool's diagnostics verbatim; a BuildError is fatal for
// the run, with no retry.
type BuildError struct {
	Tool   string // e.g. "cmake", "make"
	Step   string // "configure" or "build"
	Output string
	Err    error
}

func (e *BuildError) Error() string {
	msg := e.Tool + " " + e.Step + " failed: " + e.Err.Error()
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += "\n" + out
	}
	return msg
}

func (e *BuildError) Unwrap() error { return e.Err }
