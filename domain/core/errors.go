package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound          = errors.New("resource not found")
	ErrDatasetNotFound   = fmt.Errorf("%w: dataset", ErrNotFound)
	ErrCollectionMissing = fmt.Errorf("%w: collection", ErrNotFound)

	// Precondition errors
	ErrInvalidInput      = errors.New("invalid input")
	ErrInsufficientData  = errors.New("insufficient data for analysis")
	ErrIncompatibleTypes = errors.New("incompatible member types")
	ErrInvalidBinWidth   = fmt.Errorf("%w: histogram bin width must be positive", ErrInvalidInput)
	ErrInvalidRegion     = fmt.Errorf("%w: region", ErrInvalidInput)
	ErrUnknownAnalysis   = errors.New("unknown analysis kind")

	// Run errors
	ErrCancelled = errors.New("analysis cancelled")
)

// Error constructors with context
func NewNotFoundError(resource string, name string) error {
	return fmt.Errorf("%w: %s %q", ErrNotFound, resource, name)
}

func NewInsufficientDataError(required, got int) error {
	return fmt.Errorf("%w: at least %d data points required, got %d", ErrInsufficientData, required, got)
}

func NewIncompatibleTypesError(left, right string) error {
	return fmt.Errorf("%w: cannot compare %s with %s", ErrIncompatibleTypes, left, right)
}

func NewInvalidRegionError(sequence string, start, end int) error {
	return fmt.Errorf("%w: %s:%d-%d has start after end", ErrInvalidRegion, sequence, start, end)
}

// NewCancelledError keeps the underlying cause (usually a context error) reachable via errors.Is.
func NewCancelledError(cause error) error {
	if cause == nil {
		return ErrCancelled
	}
	return fmt.Errorf("%w: %w", ErrCancelled, cause)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsPreconditionError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInsufficientData) ||
		errors.Is(err, ErrIncompatibleTypes) ||
		errors.Is(err, ErrUnknownAnalysis)
}

func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}
