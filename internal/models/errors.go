package models

import (
	stderrors "errors"
	"fmt"

	"github.com/toyz/thinobj/internal/errors"
)

// GeneratorError represents an error that occurred during code generation
type GeneratorError struct {
	Type        errors.ErrorCode       // type of error
	File        string                 // file where error occurred
	Line        int                    // line number where error occurred
	Column      int                    // column where error occurred
	Interface   string                 // interface being transformed, if any
	Message     string                 // error message
	Cause       error                  // underlying error cause
	Suggestions []string               // hints for fixing the error
	Context     map[string]interface{} // additional context
}

// Error implements the error interface
func (e *GeneratorError) Error() string {
	if e.File != "" && e.Line > 0 {
		if e.Column > 0 {
			return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
		}
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error cause
func (e *GeneratorError) Unwrap() error {
	return e.Cause
}

// NewGeneratorError converts any error into a GeneratorError for reporting.
// Taxonomy errors keep their code, location and hints.
func NewGeneratorError(iface string, err error) *GeneratorError {
	var existing *GeneratorError
	if stderrors.As(err, &existing) {
		return existing
	}

	ge := &GeneratorError{
		Type:      errors.UnknownErrorCode,
		Interface: iface,
		Message:   err.Error(),
		Cause:     err,
	}

	var te errors.ThinError
	if stderrors.As(err, &te) {
		loc := te.Location()
		ge.Type = te.ErrorCode()
		ge.File = loc.File
		ge.Line = loc.Line
		ge.Column = loc.Column
		ge.Suggestions = te.Suggestions()
		ge.Context = te.Context()
		if base, ok := te.(*errors.BaseError); ok {
			ge.Message = base.Message
		}
	}
	return ge
}
