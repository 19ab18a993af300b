package bar

import (
	"fmt"
	"math"
)

// Material holds the section and material properties shared by every element.
type Material struct {
	// YoungModulus is the elastic modulus E (Pa).
	YoungModulus float64
	// Area is the cross section area A (m^2).
	Area float64
}

// Stiffness returns the axial rigidity E*A.
func (m Material) Stiffness() float64 { return m.YoungModulus * m.Area }

// Validate returns an error unless E and A are finite and positive.
func (m Material) Validate() error {
	if !positive(m.YoungModulus) {
		return fmt.Errorf("%w: young modulus %v must be > 0", ErrInvalidElement, m.YoungModulus)
	}
	if !positive(m.Area) {
		return fmt.Errorf("%w: cross section area %v must be > 0", ErrInvalidElement, m.Area)
	}
	return nil
}

func positive(v float64) bool { return v > 0 && !math.IsInf(v, 1) }
