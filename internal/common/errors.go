package common

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Common error types used across the application
var (
	// ErrInvalidInput indicates invalid user input
	ErrInvalidInput = errors.New("invalid input")
	// ErrSessionExists indicates a run directory was already present on disk
	ErrSessionExists = errors.New("session directory already exists")
	// ErrInvalidConfiguration indicates configuration issues
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// WrapError wraps an error with additional context information
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// WrapErrorf wraps an error with formatted context information
func WrapErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// InputError is returned when a target URL (or another caller supplied value)
// is malformed. It is raised before any session is created.
type InputError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InputError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// Is lets errors.Is(err, ErrInvalidInput) match any InputError.
func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewInputError creates a new input error
func NewInputError(field, value, reason string) *InputError {
	return &InputError{
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// StorageError describes a failed filesystem operation. Fatal storage errors
// abort a run; non-fatal ones are collected as warnings.
type StorageError struct {
	Op    string
	Path  string
	Fatal bool
	Err   error
}

func (e *StorageError) Error() string {
	severity := "non-fatal"
	if e.Fatal {
		severity = "fatal"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s storage error during %s on '%s': %v", severity, e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s storage error during %s on '%s'", severity, e.Op, e.Path)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError creates a non-fatal storage error
func NewStorageError(op, path string, err error) *StorageError {
	return &StorageError{Op: op, Path: path, Err: err}
}

// NewFatalStorageError creates a storage error that must abort the run
func NewFatalStorageError(op, path string, err error) *StorageError {
	return &StorageError{Op: op, Path: path, Fatal: true, Err: err}
}

// IsFatal reports whether err carries a fatal StorageError anywhere in its chain.
func IsFatal(err error) bool {
	var storageErr *StorageError
	if errors.As(err, &storageErr) {
		return storageErr.Fatal
	}
	return false
}

// IsInputError reports whether err is (or wraps) an InputError.
func IsInputError(err error) bool {
	var inputErr *InputError
	return errors.As(err, &inputErr)
}

// ValidationError represents validation errors with field-specific information
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s': %s (value: %v)", e.Field, e.Message, e.Value)
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// CombineErrors combines multiple errors into a single error with formatted message
func CombineErrors(errs []error) error {
	var messages []string
	for _, err := range errs {
		if err != nil {
			messages = append(messages, err.Error())
		}
	}

	switch len(messages) {
	case 0:
		return nil
	case 1:
		for _, err := range errs {
			if err != nil {
				return err
			}
		}
	}

	return fmt.Errorf("multiple errors occurred: [%s]", strings.Join(messages, "; "))
}

// ErrorCollector collects errors from concurrent workers. The zero value is ready to use.
type ErrorCollector struct {
	mu     sync.Mutex
	errors []error
}

// Add adds an error to the collector
func (ec *ErrorCollector) Add(err error) {
	if err == nil {
		return
	}
	ec.mu.Lock()
	ec.errors = append(ec.errors, err)
	ec.mu.Unlock()
}

// AddWithContext adds an error with additional context
func (ec *ErrorCollector) AddWithContext(err error, context string) {
	ec.Add(WrapError(err, context))
}

// HasErrors returns true if any errors were collected
func (ec *ErrorCollector) HasErrors() bool {
	return ec.Count() > 0
}

// Count returns the number of collected errors
func (ec *ErrorCollector) Count() int {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	return len(ec.errors)
}

// Error returns a combined error from all collected errors
func (ec *ErrorCollector) Error() error {
	return CombineErrors(ec.Errors())
}

// Errors returns a copy of all collected errors
func (ec *ErrorCollector) Errors() []error {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	out := make([]error, len(ec.errors))
	copy(out, ec.errors)
	return out
}

// Messages returns the text of every collected error, in insertion order
func (ec *ErrorCollector) Messages() []string {
	errs := ec.Errors()
	if len(errs) == 0 {
		return nil
	}
	out := make([]string, 0, len(errs))
	for _, err := range errs {
		out = append(out, err.Error())
	}
	return out
}
