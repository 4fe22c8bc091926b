package server

import (
	"github.com/toyz/thinobj/internal/models"
)

// GenerateRequest is the body of POST /v1/generate
type GenerateRequest struct {
	// Filename names the source; it defaults to source.go
	Filename string `json:"filename"`
	// Source is the Go file to transform
	Source string `json:"source"`
	// ImportPath of the package the file belongs to, when known
	ImportPath string `json:"import_path,omitempty"`
	// Suffix overrides the companion suffix
	Suffix string `json:"suffix,omitempty"`
	// ExperimentalInheritance overrides the server default when set
	ExperimentalInheritance *bool `json:"experimental_inheritance,omitempty"`
}

// GenerateResponse is returned when every annotated interface succeeded
type GenerateResponse struct {
	RequestID  string       `json:"request_id"`
	Path       string       `json:"path,omitempty"`
	Content    string       `json:"content,omitempty"`
	Interfaces []string     `json:"interfaces"`
	Warnings   []Diagnostic `json:"warnings"`
}

// Diagnostic is a positioned message
type Diagnostic struct {
	Code        string   `json:"code,omitempty"`
	Category    string   `json:"category,omitempty"`
	Message     string   `json:"message"`
	File        string   `json:"file,omitempty"`
	Line        int      `json:"line,omitempty"`
	Column      int      `json:"column,omitempty"`
	Interface   string   `json:"interface,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

func warningDiagnostic(w models.Warning) Diagnostic {
	return Diagnostic{
		Message: w.Message,
		File:    w.Loc.File,
		Line:    w.Loc.Line,
		Column:  w.Loc.Column,
	}
}

func errorDiagnostic(ge *models.GeneratorError) Diagnostic {
	return Diagnostic{
		Code:        ge.Type.String(),
		Category:    ge.Type.Category().String(),
		Message:     ge.Message,
		File:        ge.File,
		Line:        ge.Line,
		Column:      ge.Column,
		Interface:   ge.Interface,
		Suggestions: ge.Suggestions,
	}
}
