package utils

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/toyz/thinobj/internal/errors"
)

// FileProcessor finds annotated sources and the companions generated for them
type FileProcessor struct {
	suffix string // companion suffix without .go, e.g. _thin
	header string // first line of every generated companion
}

// NewFileProcessor creates a processor for companions named <file><suffix>.go
// starting with header
func NewFileProcessor(suffix, header string) *FileProcessor {
	return &FileProcessor{suffix: suffix, header: header}
}

// FileFilter defines a function that determines whether a file should be processed
type FileFilter func(path string, info os.DirEntry) bool

// DirectoryFilter defines a function that determines whether a directory should be processed
type DirectoryFilter func(path string, info os.DirEntry) bool

// FileWalkOptions configures file walking behavior
type FileWalkOptions struct {
	FileFilter      FileFilter
	DirectoryFilter DirectoryFilter
	SkipErrors      bool
}

// SourceFilter accepts Go sources, leaving out tests and generated companions
func (fp *FileProcessor) SourceFilter() FileFilter {
	return func(path string, info os.DirEntry) bool {
		if info.IsDir() {
			return false
		}
		name := info.Name()
		return strings.HasSuffix(name, ".go") &&
			!strings.HasSuffix(name, "_test.go") &&
			!fp.IsCompanionName(name)
	}
}

// CompanionFilter accepts generated companions only
func (fp *FileProcessor) CompanionFilter() FileFilter {
	return func(path string, info os.DirEntry) bool {
		return !info.IsDir() && fp.IsCompanionName(info.Name())
	}
}

// IsCompanionName reports whether a file name has the companion suffix
func (fp *FileProcessor) IsCompanionName(name string) bool {
	return strings.HasSuffix(name, fp.suffix+".go")
}

// DefaultDirectoryFilter skips directories that shouldn't contain source code
func DefaultDirectoryFilter() DirectoryFilter {
	skipDirs := map[string]bool{
		"vendor":       true,
		"node_modules": true,
		"testdata":     true,
		"build":        true,
		"dist":         true,
	}

	return func(path string, info os.DirEntry) bool {
		if !info.IsDir() {
			return true
		}
		name := info.Name()
		if strings.HasPrefix(name, ".") && name != "." && name != ".." {
			return false
		}
		if strings.HasPrefix(name, "_") {
			return false
		}
		return !skipDirs[name]
	}
}

// WalkFiles walks a directory tree and returns the files accepted by the filters
func (fp *FileProcessor) WalkFiles(rootDir string, options FileWalkOptions) ([]string, error) {
	var matched []string

	err := filepath.WalkDir(rootDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if options.SkipErrors {
				return nil
			}
			return err
		}

		if d.IsDir() {
			if path != rootDir && options.DirectoryFilter != nil && !options.DirectoryFilter(path, d) {
				return filepath.SkipDir
			}
			return nil
		}

		if options.FileFilter == nil || options.FileFilter(path, d) {
			matched = append(matched, path)
		}
		return nil
	})

	return matched, err
}

// PackageDirs returns the directories under roots holding at least one
// source file, sorted and deduplicated. With recursive false only the
// roots themselves are considered.
func (fp *FileProcessor) PackageDirs(roots []string, recursive bool) ([]string, error) {
	seen := make(map[string]bool)
	var dirs []string

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, errors.WrapFileSystemError("stat", root, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", root)
		}

		opts := FileWalkOptions{FileFilter: fp.SourceFilter(), DirectoryFilter: DefaultDirectoryFilter()}
		if !recursive {
			opts.DirectoryFilter = func(string, os.DirEntry) bool { return false }
		}
		files, err := fp.WalkFiles(root, opts)
		if err != nil {
			return nil, errors.WrapFileSystemError("walk", root, err)
		}
		for _, f := range files {
			dir := filepath.Dir(f)
			if !seen[dir] {
				seen[dir] = true
				dirs = append(dirs, dir)
			}
		}
	}

	sort.Strings(dirs)
	return dirs, nil
}

// IsGenerated reports whether the file at path starts with the generated header
func (fp *FileProcessor) IsGenerated(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && line == "" {
		return false, nil
	}
	return strings.TrimRight(line, "\r\n") == fp.header, nil
}

// Companions lists the generated companions under roots. Files with the
// suffix but without the header are left alone.
func (fp *FileProcessor) Companions(roots []string, recursive bool) ([]string, error) {
	var out []string
	for _, root := range roots {
		opts := FileWalkOptions{FileFilter: fp.CompanionFilter(), DirectoryFilter: DefaultDirectoryFilter(), SkipErrors: true}
		if !recursive {
			opts.DirectoryFilter = func(string, os.DirEntry) bool { return false }
		}
		files, err := fp.WalkFiles(root, opts)
		if err != nil {
			return nil, errors.WrapFileSystemError("walk", root, err)
		}
		for _, f := range files {
			ok, err := fp.IsGenerated(f)
			if err != nil {
				return nil, errors.WrapFileSystemError("read", f, err)
			}
			if ok {
				out = append(out, f)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

// CleanDirectories removes the generated companions under roots and returns
// what was removed
func (fp *FileProcessor) CleanDirectories(roots []string, recursive bool) ([]string, error) {
	files, err := fp.Companions(roots, recursive)
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, f := range files {
		if err := os.Remove(f); err != nil {
			return removed, errors.WrapFileSystemError("remove", f, err)
		}
		removed = append(removed, f)
	}
	return removed, nil
}
