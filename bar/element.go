package bar

import (
	"fmt"

	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/mat"
)

// Element is a 2-node linear bar element between nodes Start and End.
type Element struct {
	Index      int
	Start, End int
	// Left and Right are the coordinates of the Start and End nodes.
	Left, Right float64
}

func (e Element) Length() float64   { return e.Right - e.Left }
func (e Element) Midpoint() float64 { return (e.Left + e.Right) / 2 }

func (e Element) Contains(x float64) bool { return e.Left <= x && x <= e.Right }

// ref maps x within the element to the reference coordinate in [-1, 1].
func (e Element) ref(x float64) float64 { return (2*x - e.Left - e.Right) / e.Length() }

// Interpolate returns the displacement at x as the superposition of the
// element's shape functions weighted by the nodal displacements in u.
func (e Element) Interpolate(u []float64, x float64) float64 {
	r := e.ref(x)
	return u[e.Start]*linearShapes[0].Value(r) + u[e.End]*linearShapes[1].Value(r)
}

// Deriv returns du/dx at x within the element.
func (e Element) Deriv(u []float64, x float64) float64 {
	r := e.ref(x)
	dudr := u[e.Start]*linearShapes[0].Deriv(r) + u[e.End]*linearShapes[1].Deriv(r)
	return dudr * 2 / e.Length()
}

// StrainEnergy integrates E*A/2*(du/dx)^2 over the element.
func (e Element) StrainEnergy(u []float64, m Material) float64 {
	fn := func(x float64) float64 {
		strain := e.Deriv(u, x)
		return m.Stiffness() / 2 * strain * strain
	}
	return quad.Fixed(fn, e.Left, e.Right, len(linearShapes), quad.Legendre{}, 0)
}

// LocalStiffness returns the 2x2 stiffness matrix E*A/length*[[1,-1],[-1,1]]
// of a bar element.
func LocalStiffness(length float64, m Material) (*mat.Dense, error) {
	if !positive(length) {
		return nil, fmt.Errorf("%w: element length %v must be > 0", ErrInvalidElement, length)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	k := m.Stiffness() / length
	return mat.NewDense(2, 2, []float64{
		k, -k,
		-k, k,
	}), nil
}
