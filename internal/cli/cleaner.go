package cli

import (
	"github.com/toyz/thinobj/internal/utils"
)

// Cleaner removes generated companions
type Cleaner struct {
	fileProcessor *utils.FileProcessor
	diagnostics   *utils.DiagnosticSystem
}

// NewCleaner creates a cleaner for companions recognized by fp
func NewCleaner(fp *utils.FileProcessor, diagnostics *utils.DiagnosticSystem) *Cleaner {
	return &Cleaner{fileProcessor: fp, diagnostics: diagnostics}
}

// CleanGeneratedFiles removes the companions under the given directories.
// Files carrying the suffix but not the generated header are kept.
func (c *Cleaner) CleanGeneratedFiles(args []string) ([]string, error) {
	patterns, err := ParsePatterns(args)
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, p := range patterns {
		files, err := c.fileProcessor.CleanDirectories([]string{p.Dir}, p.Recursive)
		removed = append(removed, files...)
		if err != nil {
			return removed, err
		}
	}

	if c.diagnostics != nil {
		for _, f := range removed {
			c.diagnostics.Verbose("removed %s", f)
		}
	}
	return removed, nil
}
