package bar

import "errors"

var (
	// ErrInvalidMesh indicates a non-positive bar length or element count.
	ErrInvalidMesh = errors.New("bar: invalid mesh")
	// ErrInvalidElement indicates a degenerate element (non-positive length)
	// or non-positive section/material properties.
	ErrInvalidElement = errors.New("bar: invalid element")
	// ErrSingularSystem indicates the constrained stiffness matrix is not
	// invertible - e.g. the structure is unconstrained or disconnected.
	ErrSingularSystem = errors.New("bar: singular stiffness system")
	// ErrDimensionMismatch indicates vectors and meshes of different sizes
	// were combined.
	ErrDimensionMismatch = errors.New("bar: dimension mismatch")
	// ErrOutOfMesh indicates a point outside the meshed bar.
	ErrOutOfMesh = errors.New("bar: point outside mesh")
	// ErrInvalidConfig indicates loads or supports on nonexistent nodes,
	// duplicate supports, or an unknown solver or constraint method.
	ErrInvalidConfig = errors.New("bar: invalid configuration")
)
