package bar

// Lagrange1D is a lagrange polynomial shape function over the reference
// element [-1, 1] with Order+1 evenly spaced interpolation points.
type Lagrange1D struct {
	// Index identifies the interpolation point or (virtual) nodes where the
	// shape function is equal to 1.0.
	Index int
	// Polynomial order of the shape function.
	Order int
}

// linearShapes are the shape functions of a 2-node bar element.
var linearShapes = [2]Lagrange1D{{Index: 0, Order: 1}, {Index: 1, Order: 1}}

func (fn Lagrange1D) Value(refx float64) float64 {
	u := 1.0
	xindex := fn.point(fn.Index)
	for i := 0; i < fn.Order+1; i++ {
		if i == fn.Index {
			continue
		}
		x0 := fn.point(i)
		u *= (refx - x0) / (xindex - x0)
	}
	return u
}

// Deriv returns the derivative of the shape function with respect to the
// reference coordinate.
func (fn Lagrange1D) Deriv(refx float64) float64 {
	u, dudx := 1.0, 0.0
	xindex := fn.point(fn.Index)
	for i := 0; i < fn.Order+1; i++ {
		if i == fn.Index {
			continue
		}
		x0 := fn.point(i)
		dudx = 1/(xindex-x0)*u + (refx-x0)/(xindex-x0)*dudx
		u *= (refx - x0) / (xindex - x0)
	}
	return dudx
}

func (fn Lagrange1D) point(i int) float64 { return -1 + float64(i)*2/float64(fn.Order) }
