package mesh

import "errors"

var (
	// Structural refinement errors
	ErrElemHasChildren   = errors.New("elem already has children")
	ErrUninitializedElem = errors.New("elem has unset node or edge slots")
	ErrIncompatibleSplit = errors.New("edge is already split at a different location")
	ErrUnknownElem       = errors.New("unknown elem id")

	// Bounds violations
	ErrMinEdgeLength     = errors.New("h-refinement would shrink a parametric edge below the minimum length")
	ErrMaxPolyOrder      = errors.New("polynomial order exceeds the maximum")
	ErrNegativePolyOrder = errors.New("polynomial order cannot be negative")

	// Load time errors
	ErrMalformedMesh = errors.New("malformed mesh")
)
