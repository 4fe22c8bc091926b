package cli

import (
	"path/filepath"
	"strings"

	"github.com/toyz/thinobj/internal/errors"
	"github.com/toyz/thinobj/internal/utils"
)

// DirectoryScanner resolves directory arguments into package directories
type DirectoryScanner struct {
	fileProcessor *utils.FileProcessor
}

// NewDirectoryScanner creates a scanner skipping companions built by fp
func NewDirectoryScanner(fp *utils.FileProcessor) *DirectoryScanner {
	return &DirectoryScanner{fileProcessor: fp}
}

// Pattern is a resolved directory argument
type Pattern struct {
	Dir       string
	Recursive bool
}

// ParsePatterns resolves arguments such as ./... or internal/shapes into
// absolute directories. No arguments means the current directory.
func ParsePatterns(args []string) ([]Pattern, error) {
	if len(args) == 0 {
		args = []string{"."}
	}

	var out []Pattern
	for _, arg := range args {
		p := Pattern{Dir: arg}
		if arg == "..." || strings.HasSuffix(arg, "/...") {
			p.Recursive = true
			p.Dir = strings.TrimSuffix(strings.TrimSuffix(arg, "..."), "/")
			if p.Dir == "" {
				p.Dir = "."
			}
		}
		abs, err := filepath.Abs(p.Dir)
		if err != nil {
			return nil, errors.WrapWithOperation("resolve", "path "+p.Dir, err)
		}
		p.Dir = abs
		out = append(out, p)
	}
	return out, nil
}

// ScanDirectories returns the package directories matched by args
func (s *DirectoryScanner) ScanDirectories(args []string) ([]string, error) {
	patterns, err := ParsePatterns(args)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var dirs []string
	for _, p := range patterns {
		found, err := s.fileProcessor.PackageDirs([]string{p.Dir}, p.Recursive)
		if err != nil {
			return nil, err
		}
		for _, d := range found {
			if !seen[d] {
				seen[d] = true
				dirs = append(dirs, d)
			}
		}
	}
	return dirs, nil
}
