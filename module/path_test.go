// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package module

import "testing"

func TestSplitVersion(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		wantBase    string
		wantVersion string
		wantOK      bool
	}{
		{name: "no at sign", path: "fmt/strings", wantBase: "fmt/strings", wantOK: false},
		{name: "valid semver", path: "collections@v1.2.3", wantBase: "collections", wantVersion: "v1.2.3", wantOK: true},
		{name: "canonicalizes short form", path: "collections@v1.2", wantBase: "collections", wantVersion: "v1.2.0", wantOK: true},
		{name: "invalid semver falls back", path: "weird@latest", wantBase: "weird@latest", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, version, ok := SplitVersion(tt.path)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}

			if ok && (base != tt.wantBase || version != tt.wantVersion) {
				t.Fatalf("got (%q, %q), want (%q, %q)", base, version, tt.wantBase, tt.wantVersion)
			}
		})
	}
}

func TestNormalizePath(t *testing.T) {
	a := NormalizePath("collections@v1.2")
	b := NormalizePath("collections@v1.2.0")

	if a != b {
		t.Fatalf("expected equivalent semver suffixes to normalize to the same key, got %q and %q", a, b)
	}

	if NormalizePath("plain/path") != "plain/path" {
		t.Fatalf("version-less path should normalize to itself")
	}
}

func TestCompareVersions(t *testing.T) {
	if CompareVersions("m@v1.0.0", "m@v2.0.0") >= 0 {
		t.Fatalf("expected v1.0.0 < v2.0.0")
	}
}
