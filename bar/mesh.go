package bar

import (
	"fmt"
	"math"
	"sort"
)

// Node is a mesh node on the bar axis.
type Node struct {
	Index int
	// X is the node position along the bar axis (m).
	X float64
}

// Mesh is an ordered chain of 2-node bar elements.  Meshes are built once and
// never modified afterwards.
type Mesh struct {
	Nodes []Node
	Elems []Element
}

// NewUniformMesh creates n elements of equal length spanning [0, length].
func NewUniformMesh(length float64, n int) (*Mesh, error) {
	if !positive(length) {
		return nil, fmt.Errorf("%w: length %v must be > 0", ErrInvalidMesh, length)
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: element count %v must be >= 1", ErrInvalidMesh, n)
	}

	xs := make([]float64, n+1)
	for i := range xs {
		xs[i] = length * (float64(i) / float64(n))
	}
	xs[n] = length
	return NewMesh(xs)
}

// NewMesh creates a simply-connected mesh with nodes at the specified points
// and an element between each pair of consecutive points.
func NewMesh(nodePos []float64) (*Mesh, error) {
	if len(nodePos) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 nodes, got %v", ErrInvalidMesh, len(nodePos))
	}

	m := &Mesh{}
	for i, x := range nodePos {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("%w: node %v at x=%v", ErrInvalidMesh, i, x)
		}
		m.Nodes = append(m.Nodes, Node{Index: i, X: x})
	}
	for i := 0; i < len(nodePos)-1; i++ {
		e := Element{Index: i, Start: i, End: i + 1, Left: nodePos[i], Right: nodePos[i+1]}
		if !(e.Length() > 0) {
			return nil, fmt.Errorf("%w: element %v between x=%v and x=%v has length %v",
				ErrInvalidElement, i, e.Left, e.Right, e.Length())
		}
		m.Elems = append(m.Elems, e)
	}
	return m, nil
}

func (m *Mesh) NumNodes() int { return len(m.Nodes) }
func (m *Mesh) NumElems() int { return len(m.Elems) }

// Coords returns the node coordinates in node order.
func (m *Mesh) Coords() []float64 {
	xs := make([]float64, len(m.Nodes))
	for i, n := range m.Nodes {
		xs[i] = n.X
	}
	return xs
}

// Connectivity returns the (start, end) node pair of every element.
func (m *Mesh) Connectivity() [][2]int {
	conn := make([][2]int, len(m.Elems))
	for i, e := range m.Elems {
		conn[i] = [2]int{e.Start, e.End}
	}
	return conn
}

// Find returns the element enclosing x.  Points on a shared node belong to
// the left element, except the first node.
func (m *Mesh) Find(x float64) (Element, error) {
	i := sort.Search(len(m.Elems), func(i int) bool { return m.Elems[i].Right >= x })
	if i == len(m.Elems) || !m.Elems[i].Contains(x) {
		return Element{}, fmt.Errorf("%w: x=%v outside [%v, %v]", ErrOutOfMesh, x, m.Nodes[0].X, m.Nodes[len(m.Nodes)-1].X)
	}
	return m.Elems[i], nil
}

// Interpolate returns the finite element approximation of the displacement
// field u at x.
func (m *Mesh) Interpolate(u []float64, x float64) (float64, error) {
	if len(u) != m.NumNodes() {
		return 0, fmt.Errorf("%w: %v displacements for %v nodes", ErrDimensionMismatch, len(u), m.NumNodes())
	}
	e, err := m.Find(x)
	if err != nil {
		return 0, err
	}
	return e.Interpolate(u, x), nil
}
