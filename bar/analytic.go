package bar

// ExactDisplacement returns the closed form displacement F*x/(E*A) at x of a
// uniform bar fixed at x=0 with a force F applied at its free end.
func ExactDisplacement(mat Material, force, x float64) float64 {
	return force * x / mat.Stiffness()
}

// TipDisplacement returns the closed form free end displacement F*L/(E*A) of
// a uniform cantilever bar of length L.
func TipDisplacement(mat Material, force, length float64) float64 {
	return ExactDisplacement(mat, force, length)
}
