package bar

import (
	"fmt"
	"math"

	"github.com/rwcarlsen/barfem/sparse"
)

// PointLoad is a concentrated axial force (N) applied at a node.  Positive
// forces point in the direction of increasing x.
type PointLoad struct {
	Node  int     `json:"node" yaml:"node"`
	Force float64 `json:"force" yaml:"force"`
}

// System is a global stiffness system K*u=F.
type System struct {
	K *sparse.Matrix
	F []float64
}

// Size returns the number of degrees of freedom in the system.
func (s *System) Size() int { return len(s.F) }

// Clone returns a deep copy of s.
func (s *System) Clone() *System {
	return &System{K: s.K.Clone(), F: append([]float64{}, s.F...)}
}

// Assemble builds the global stiffness matrix and load vector for the mesh.
// Each element's local stiffness is added into the entries of its two global
// nodes.  Loads applied to the same node add up.
func Assemble(m *Mesh, mat Material, loads []PointLoad) (*System, error) {
	if err := mat.Validate(); err != nil {
		return nil, err
	}

	size := m.NumNodes()
	sys := &System{K: sparse.New(size), F: make([]float64, size)}
	for _, e := range m.Elems {
		k, err := LocalStiffness(e.Length(), mat)
		if err != nil {
			return nil, fmt.Errorf("element %v: %w", e.Index, err)
		}
		dofs := [2]int{e.Start, e.End}
		for i, gi := range dofs {
			for j, gj := range dofs {
				sys.K.Add(gi, gj, k.At(i, j))
			}
		}
	}

	for _, l := range loads {
		if l.Node < 0 || l.Node >= size {
			return nil, fmt.Errorf("%w: load on node %v of a %v node mesh", ErrInvalidConfig, l.Node, size)
		} else if math.IsNaN(l.Force) || math.IsInf(l.Force, 0) {
			return nil, fmt.Errorf("%w: load %v on node %v", ErrInvalidConfig, l.Force, l.Node)
		}
		sys.F[l.Node] += l.Force
	}
	return sys, nil
}
