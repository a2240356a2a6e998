package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input errors
	ErrSchemaMismatch     = errors.New("input schema mismatch")
	ErrGroupOrderMismatch = errors.New("group column disagrees with row-position assignment")
	ErrNonNumericCell     = errors.New("non-numeric cell in measurement column")
	ErrEmptyDataset       = errors.New("dataset contains no data rows")

	// Statistics errors
	ErrInsufficientData = errors.New("insufficient data for analysis")
	ErrZeroVariance     = errors.New("zero variance in paired differences")
	ErrZeroBaseline     = errors.New("zero baseline mean")
	ErrLengthMismatch   = errors.New("paired samples have different lengths")

	// Aggregation errors
	ErrMissingPhase = errors.New("subject missing a phase mean")
)

// Error constructors with context
func NewSchemaError(reason string) error {
	return fmt.Errorf("%w: %s", ErrSchemaMismatch, reason)
}

func NewCellError(row, col int, raw string) error {
	return fmt.Errorf("%w: row %d column %d value %q", ErrNonNumericCell, row, col, raw)
}

func NewGroupOrderError(row int, want, got string) error {
	return fmt.Errorf("%w: row %d expected %s, file says %s", ErrGroupOrderMismatch, row, want, got)
}

// Error checking helpers
func IsInputError(err error) bool {
	return errors.Is(err, ErrSchemaMismatch) ||
		errors.Is(err, ErrGroupOrderMismatch) ||
		errors.Is(err, ErrNonNumericCell) ||
		errors.Is(err, ErrEmptyDataset)
}

func IsStatisticsError(err error) bool {
	return errors.Is(err, ErrInsufficientData) ||
		errors.Is(err, ErrZeroVariance) ||
		errors.Is(err, ErrZeroBaseline) ||
		errors.Is(err, ErrLengthMismatch)
}
