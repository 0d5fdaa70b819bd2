// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Command hopperi is a thin, unexercised glue binary: it wires a
// filesystem-backed module.Resolver and an empty prelude, then runs one
// file. Filesystem probing, hash-bang skipping and prelude construction
// are explicitly peripheral to the core (spec.md §1) and live only here.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golangee/hopper/module"
	"github.com/golangee/hopper/runtime"
)

func main() {
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: hopperi <file.hopper>")
		os.Exit(2)
	}

	entry := flag.Arg(0)

	source, err := os.ReadFile(entry)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hopperi:", err)
		os.Exit(1)
	}

	coord := module.NewCoordinator(runtime.NewObject(), &fileResolver{root: filepath.Dir(entry)})

	if _, err := coord.Module(entry, stripHashBang(string(source))); err != nil {
		fmt.Fprintln(os.Stderr, "hopperi:", err)
		os.Exit(1)
	}
}

// stripHashBang removes a leading "#!" line so a hopper script can be
// run directly as a Unix executable (spec.md §1 names this among the
// host's peripheral responsibilities, not the core's).
func stripHashBang(src string) string {
	if !strings.HasPrefix(src, "#!") {
		return src
	}

	if nl := strings.IndexByte(src, '\n'); nl >= 0 {
		return src[nl+1:]
	}

	return ""
}

// fileResolver resolves an import or dialect name to a sibling ".hopper"
// file relative to root, the simplest probing strategy that satisfies
// module.Resolver without pretending to a real package manager.
type fileResolver struct {
	root string
}

func (r *fileResolver) Resolve(_ string, name string) (module.Resolved, error) {
	path := filepath.Join(r.root, filepath.FromSlash(name)+".hopper")

	data, err := os.ReadFile(path)
	if err != nil {
		return module.Resolved{}, err
	}

	return module.Resolved{Path: name, Source: string(data)}, nil
}
