// Package pkgref identifies the packaged library under test.
package pkgref

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// Ref names one packaged library: the package name plus the exact
// version (or channel string) the packaging system published it under.
// Immutable once parsed.
type Ref struct {
	Name    string
	Version string
}

// Parse splits a "name@version" reference. The version is canonicalized
// when it is a valid semantic version; other channel-style strings are
// kept verbatim so the packaging system can interpret them.
func Parse(arg string) (Ref, error) {
	name, version, ok := strings.Cut(arg, "@")
	if !ok || version == "" {
		return Ref{}, fmt.Errorf("pkgref: %q is not of the form name@version", arg)
	}
	if name == "" {
		return Ref{}, fmt.Errorf("pkgref: %q has an empty package name", arg)
	}
	if strings.ContainsAny(name, "/\\") {
		return Ref{}, fmt.Errorf("pkgref: package name %q must not contain path separators", name)
	}
	if c := canonical(version); c != "" {
		version = c
	}
	return Ref{Name: name, Version: version}, nil
}

func (r Ref) String() string {
	return r.Name + "@" + r.Version
}

// canonical returns the canonical semver form of v without the leading
// "v", or "" when v is not semver at all.
func canonical(v string) string {
	withV := v
	if !strings.HasPrefix(v, "v") {
		withV = "v" + v
	}
	if !semver.IsValid(withV) {
		return ""
	}
	return strings.TrimPrefix(semver.Canonical(withV), "v")
}
