package bar

import (
	"fmt"
	"math"
	"sort"

	"github.com/rwcarlsen/barfem/sparse"
)

// Constraint prescribes the displacement of a node (a Dirichlet boundary
// condition).
type Constraint struct {
	Node  int     `json:"node" yaml:"node"`
	Value float64 `json:"value" yaml:"value"`
}

func checkConstraints(size int, cs []Constraint) error {
	seen := make(map[int]bool, len(cs))
	for _, c := range cs {
		if c.Node < 0 || c.Node >= size {
			return fmt.Errorf("%w: support on node %v of a %v node system", ErrInvalidConfig, c.Node, size)
		} else if seen[c.Node] {
			return fmt.Errorf("%w: node %v is constrained twice", ErrInvalidConfig, c.Node)
		} else if math.IsNaN(c.Value) || math.IsInf(c.Value, 0) {
			return fmt.Errorf("%w: prescribed displacement %v on node %v", ErrInvalidConfig, c.Value, c.Node)
		}
		seen[c.Node] = true
	}
	return nil
}

// Constrain returns a new system with the given constraints applied by row
// and column elimination.  Each constrained column is moved to the right hand
// side before its row and column are replaced with the identity, so the
// remaining equations stay symmetric.  s is left unmodified.
func (s *System) Constrain(cs ...Constraint) (*System, error) {
	if err := checkConstraints(s.Size(), cs); err != nil {
		return nil, err
	}

	out := s.Clone()
	for _, c := range cs {
		for _, i := range out.K.NonzeroRows(c.Node) {
			if i != c.Node {
				out.F[i] -= out.K.At(i, c.Node) * c.Value
			}
		}
		out.K.ZeroRow(c.Node)
		out.K.ZeroCol(c.Node)
		out.K.Set(c.Node, c.Node, 1)
		out.F[c.Node] = c.Value
	}
	return out, nil
}

// Reduced is a system with the constrained degrees of freedom struck out.
type Reduced struct {
	*System
	// Free maps each reduced index to its index in the full system.
	Free []int
	// prescribed holds every full system value, with constrained entries set.
	prescribed []float64
}

// Reduce removes the constrained rows and columns from s.  The prescribed
// values are moved to the right hand side of the remaining equations.
func Reduce(s *System, cs ...Constraint) (*Reduced, error) {
	if err := checkConstraints(s.Size(), cs); err != nil {
		return nil, err
	}

	fixed := make(map[int]float64, len(cs))
	for _, c := range cs {
		fixed[c.Node] = c.Value
	}

	r := &Reduced{prescribed: make([]float64, s.Size())}
	newIndex := make([]int, s.Size())
	for i := 0; i < s.Size(); i++ {
		if v, ok := fixed[i]; ok {
			newIndex[i] = -1
			r.prescribed[i] = v
			continue
		}
		newIndex[i] = len(r.Free)
		r.Free = append(r.Free, i)
	}

	r.System = &System{K: sparse.New(len(r.Free)), F: make([]float64, len(r.Free))}
	for ii, i := range r.Free {
		r.F[ii] = s.F[i]
		for _, j := range s.K.NonzeroCols(i) {
			if jj := newIndex[j]; jj >= 0 {
				r.K.Set(ii, jj, s.K.At(i, j))
			} else {
				r.F[ii] -= s.K.At(i, j) * fixed[j]
			}
		}
	}
	return r, nil
}

// Expand maps a solution of the reduced system back onto every node of the
// full system.
func (r *Reduced) Expand(u []float64) ([]float64, error) {
	if len(u) != len(r.Free) {
		return nil, fmt.Errorf("%w: %v values for %v free nodes", ErrDimensionMismatch, len(u), len(r.Free))
	}
	full := append([]float64{}, r.prescribed...)
	for ii, i := range r.Free {
		full[i] = u[ii]
	}
	return full, nil
}

// constrainedNodes returns the constrained node indices in increasing order.
func constrainedNodes(cs []Constraint) []int {
	nodes := make([]int, len(cs))
	for i, c := range cs {
		nodes[i] = c.Node
	}
	sort.Ints(nodes)
	return nodes
}
