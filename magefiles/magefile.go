//go:build mage

// Package main provides build targets for thinobj using Mage.
//
// Usage:
//
//	mage build      Compile the thinobj binary to bin/
//	mage generate   Regenerate the companions of examples/
//	mage check      Fail when a companion under examples/ is stale
//	mage test:all   Run every test
//	mage test:unit  Run the tests of internal/ and pkg/ only
//	mage lint       Run go vet
//	mage clean      Remove build artifacts and generated example companions
//	mage install    Install thinobj to GOPATH/bin
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo       = "go"
	binaryName  = "thinobj"
	binaryDir   = "bin"
	cmdDir      = "./cmd/thinobj"
	examplesDir = "./examples/..."
)

var binaryPath = filepath.Join(binaryDir, binaryName)

// ldflags stamps the version from git, falling back to dev
func ldflags() string {
	v, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || v == "" {
		v = "dev"
	}
	return fmt.Sprintf("-X main.version=%s", v)
}

// Build compiles the thinobj binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-ldflags", ldflags(), "-o", binaryPath, cmdDir)
}

// Generate regenerates the companions of the examples.
func Generate() error {
	mg.Deps(Build)
	return sh.RunV(binaryPath, "generate", "--experimental-inheritance", examplesDir)
}

// Check fails when an example companion is missing or stale.
func Check() error {
	mg.Deps(Build)
	return sh.RunV(binaryPath, "generate", "--check", "--experimental-inheritance", examplesDir)
}

// Test groups test targets.
type Test mg.Namespace

// All runs every test.
func (Test) All() error {
	return sh.RunV(binGo, "test", "./...")
}

// Unit runs the tests of internal/ and pkg/, skipping the CLI and examples.
func (Test) Unit() error {
	pkgs, err := sh.Output(binGo, "list", "./internal/...", "./pkg/...")
	if err != nil {
		return err
	}
	var unitPkgs []string
	for pkg := range strings.SplitSeq(pkgs, "\n") {
		if pkg != "" {
			unitPkgs = append(unitPkgs, pkg)
		}
	}
	if len(unitPkgs) == 0 {
		fmt.Println("No unit test packages found.")
		return nil
	}
	return sh.RunV(binGo, append([]string{"test"}, unitPkgs...)...)
}

// Examples regenerates the examples and runs their tests.
func (Test) Examples() error {
	mg.Deps(Generate)
	return sh.RunV(binGo, "test", "-tags", "examples", examplesDir)
}

// Lint runs go vet.
func Lint() error {
	return sh.RunV(binGo, "vet", "./...")
}

// Clean removes build artifacts and the generated example companions.
func Clean() error {
	if _, err := os.Stat(binaryPath); err == nil {
		if err := sh.RunV(binaryPath, "clean", "-q", examplesDir); err != nil {
			return err
		}
	}
	return os.RemoveAll(binaryDir)
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	return sh.Copy(filepath.Join(gopath, "bin", binaryName), binaryPath)
}
