package bar

import (
	"errors"
	"fmt"

	"github.com/rwcarlsen/barfem/sparse"
)

// Solve returns the displacements u satisfying K*u=F.  A stiffness matrix
// without a unique solution results in ErrSingularSystem.
func Solve(s *System, solver sparse.Solver) ([]float64, error) {
	if solver == nil {
		solver = &sparse.GaussJordanSym{}
	}
	u, err := solver.Solve(s.K, s.F)
	switch {
	case errors.Is(err, sparse.ErrSingular):
		return nil, fmt.Errorf("%w: %w", ErrSingularSystem, err)
	case errors.Is(err, sparse.ErrDimension):
		return nil, fmt.Errorf("%w: %w", ErrDimensionMismatch, err)
	case err != nil:
		return nil, err
	}
	return u, nil
}

// Residual returns K*u-F.
func Residual(s *System, u []float64) ([]float64, error) {
	if len(u) != s.Size() {
		return nil, fmt.Errorf("%w: %v values for a %v dof system", ErrDimensionMismatch, len(u), s.Size())
	}
	return sparse.Residual(s.K, u, s.F), nil
}
