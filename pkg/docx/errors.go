package docx

import (
	"errors"
	"fmt"
	"strings"
)

// SerializationError reports that a document could not be turned into a
// consistent set of package parts. It always indicates a bug in the caller's
// tree or style sheet, never a recoverable runtime condition.
type SerializationError struct {
	Part   string
	Reason string
	Cause  error
}

func (e *SerializationError) Error() string {
	msg := "serialization error"
	if e.Part != "" {
		msg += fmt.Sprintf(" in '%s'", e.Part)
	}
	msg += ": " + e.Reason
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

func (e *SerializationError) Unwrap() error {
	return e.Cause
}

func newSerializationError(part, reason string, cause error) error {
	return &SerializationError{Part: part, Reason: reason, Cause: cause}
}

// PackageError represents an error while reading a package
type PackageError struct {
	Operation string
	Path      string
	Cause     error
}

func (e *PackageError) Error() string {
	if e.Path != "" && e.Cause != nil {
		return fmt.Sprintf("package error during %s of '%s': %v", e.Operation, e.Path, e.Cause)
	} else if e.Path != "" {
		return fmt.Sprintf("package error during %s of '%s'", e.Operation, e.Path)
	} else if e.Cause != nil {
		return fmt.Sprintf("package error during %s: %v", e.Operation, e.Cause)
	}
	return fmt.Sprintf("package error during %s", e.Operation)
}

func (e *PackageError) Unwrap() error {
	return e.Cause
}

// ValidationIssue represents a single validation problem
type ValidationIssue struct {
	Part    string
	Message string
}

// ValidationError represents multiple validation issues
type ValidationError struct {
	Issues []ValidationIssue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "validation error"
	}

	if len(e.Issues) == 1 {
		return fmt.Sprintf("validation error: %s - %s", e.Issues[0].Part, e.Issues[0].Message)
	}

	parts := []string{fmt.Sprintf("%d validation issues:", len(e.Issues))}
	for _, issue := range e.Issues {
		parts = append(parts, fmt.Sprintf("  %s: %s", issue.Part, issue.Message))
	}
	return strings.Join(parts, "\n")
}

// IsSerializationError checks if an error is, or wraps, a serialization error
func IsSerializationError(err error) bool {
	var target *SerializationError
	return errors.As(err, &target)
}

// IsValidationError checks if an error is, or wraps, a validation error
func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}
