package bar

import "fmt"

// ElementResult holds the derived quantities of a solved element.  Strain and
// stress are constant along a linear element.
type ElementResult struct {
	Index        int     `json:"index" yaml:"index"`
	Midpoint     float64 `json:"midpoint" yaml:"midpoint"`
	Strain       float64 `json:"strain" yaml:"strain"`
	Stress       float64 `json:"stress" yaml:"stress"`
	AxialForce   float64 `json:"axial_force" yaml:"axial_force"`
	StrainEnergy float64 `json:"strain_energy" yaml:"strain_energy"`
}

// PostProcess computes strain, stress, axial force and strain energy for
// every element of m in element order.
func PostProcess(m *Mesh, mat Material, u []float64) ([]ElementResult, error) {
	if len(u) != m.NumNodes() {
		return nil, fmt.Errorf("%w: %v displacements for %v nodes", ErrDimensionMismatch, len(u), m.NumNodes())
	}
	if err := mat.Validate(); err != nil {
		return nil, err
	}

	results := make([]ElementResult, 0, len(m.Elems))
	for _, e := range m.Elems {
		strain := (u[e.End] - u[e.Start]) / e.Length()
		stress := mat.YoungModulus * strain
		results = append(results, ElementResult{
			Index:        e.Index,
			Midpoint:     e.Midpoint(),
			Strain:       strain,
			Stress:       stress,
			AxialForce:   stress * mat.Area,
			StrainEnergy: e.StrainEnergy(u, mat),
		})
	}
	return results, nil
}

// Reaction is the support force at a constrained node.
type Reaction struct {
	Node  int     `json:"node" yaml:"node"`
	Force float64 `json:"force" yaml:"force"`
}

// Reactions computes the support reactions (K*u-F) at the constrained nodes.
// s must be the system before constraints were applied.
func Reactions(s *System, u []float64, cs []Constraint) ([]Reaction, error) {
	r, err := Residual(s, u)
	if err != nil {
		return nil, err
	}
	if err := checkConstraints(s.Size(), cs); err != nil {
		return nil, err
	}

	reactions := make([]Reaction, 0, len(cs))
	for _, n := range constrainedNodes(cs) {
		reactions = append(reactions, Reaction{Node: n, Force: r[n]})
	}
	return reactions, nil
}

// TotalStrainEnergy sums the strain energy of results.
func TotalStrainEnergy(results []ElementResult) float64 {
	tot := 0.0
	for _, r := range results {
		tot += r.StrainEnergy
	}
	return tot
}
