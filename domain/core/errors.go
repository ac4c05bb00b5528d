package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input errors
	ErrEmptyDataset     = errors.New("dataset has no rows")
	ErrNoTargetColumns  = errors.New("target column list is empty")
	ErrInvalidThreshold = errors.New("z-score threshold must be positive")

	// Column errors
	ErrColumnNotFound   = errors.New("column not found")
	ErrColumnNotNumeric = errors.New("column is not numeric")

	// File errors
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrNoHeader          = errors.New("file must have at least a header row and one data row")
	ErrNoTimestampColumn = errors.New("no timestamp column detected")
)

// Error constructors with context
func NewColumnNotFoundError(column string) error {
	return fmt.Errorf("%w: %s", ErrColumnNotFound, column)
}

func NewColumnNotNumericError(column string) error {
	return fmt.Errorf("%w: %s", ErrColumnNotNumeric, column)
}

func NewUnsupportedFormatError(path string) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// Error checking helpers
func IsEmptyInputError(err error) bool {
	return errors.Is(err, ErrEmptyDataset) ||
		errors.Is(err, ErrNoTargetColumns)
}

func IsColumnError(err error) bool {
	return errors.Is(err, ErrColumnNotFound) ||
		errors.Is(err, ErrColumnNotNumeric)
}

func IsFileError(err error) bool {
	return errors.Is(err, ErrUnsupportedFormat) ||
		errors.Is(err, ErrNoHeader) ||
		errors.Is(err, ErrNoTimestampColumn)
}
