// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package module implements spec.md §4.5 "Module coordinator" and §6
// "External loader interface": the per-coordinator cache that turns a
// parsed-or-native module into a singleton Object, keyed by path.
package module

import (
	"strings"

	"golang.org/x/mod/semver"
)

// SplitVersion splits "path@vX.Y.Z" into its base path and canonical
// semver suffix. ok is false when path carries no "@" suffix, or the
// suffix is not valid semver — in which case the whole string is
// returned verbatim as base, and callers should treat it as
// version-less rather than reject it outright (an import path is free
// to contain "@" for reasons unrelated to versioning).
func SplitVersion(path string) (base, version string, ok bool) {
	at := strings.LastIndexByte(path, '@')
	if at < 0 {
		return path, "", false
	}

	v := path[at+1:]
	if !semver.IsValid(v) {
		return path, "", false
	}

	return path[:at], semver.Canonical(v), true
}

// NormalizePath is the module coordinator's cache key (spec.md §4.5:
// "cache the resulting Object under the normalized path"): the base
// path plus its canonical semver suffix, so "foo@v1.2" and "foo@v1.2.0"
// land on the same cache entry instead of silently loading twice.
func NormalizePath(path string) string {
	base, version, ok := SplitVersion(path)
	if !ok {
		return path
	}

	return base + "@" + version
}

// CompareVersions orders two "@vX.Y.Z"-suffixed paths that share a base
// path, for diagnostics reporting that a dialect or import was reached
// at two different versions during one evaluator's lifetime.
func CompareVersions(a, b string) int {
	_, va, _ := SplitVersion(a)
	_, vb, _ := SplitVersion(b)

	return semver.Compare(va, vb)
}
