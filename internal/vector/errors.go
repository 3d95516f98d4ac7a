package vector

import "errors"

var (
	// ErrDimensionMismatch is returned when a vector's length disagrees with the
	// store's established dimensionality. The operation fails; existing store
	// content is untouched.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrZeroVector is returned when a vector has zero L2 norm and cannot be
	// normalized. The offending vector is rejected rather than stored as NaN.
	ErrZeroVector = errors.New("zero-norm vector")

	// ErrSnapshot is returned when a snapshot is missing, unreadable, or
	// structurally invalid. The store keeps its previous content.
	ErrSnapshot = errors.New("invalid vector snapshot")

	// ErrInvalidK is returned for non-positive k in Query.
	ErrInvalidK = errors.New("k must be positive")
)
