package bar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// unitChain returns the system of two unit stiffness elements with no loads.
func unitChain(t *testing.T) *System {
	t.Helper()
	m, err := NewUniformMesh(2, 2)
	require.NoError(t, err)
	sys, err := Assemble(m, Material{YoungModulus: 1, Area: 1}, nil)
	require.NoError(t, err)
	return sys
}

func TestConstrain_IdentityRowCol(t *testing.T) {
	_, sys := assembleCantilever(t, 10)
	c, err := sys.Constrain(Constraint{Node: 0})
	require.NoError(t, err)

	assert.Equal(t, []int{0}, c.K.NonzeroCols(0))
	assert.Equal(t, []int{0}, c.K.NonzeroRows(0))
	assert.Equal(t, 1.0, c.K.At(0, 0))
	assert.Equal(t, 0.0, c.F[0])
	assert.Equal(t, 1000.0, c.F[10])

	// the rest of the matrix is untouched
	for i := 1; i < 11; i++ {
		for j := 1; j < 11; j++ {
			assert.Equal(t, sys.K.At(i, j), c.K.At(i, j))
		}
	}
	assert.True(t, c.K.IsSymmetric(0))
}

func TestConstrain_ReceiverUnchanged(t *testing.T) {
	_, sys := assembleCantilever(t, 4)
	before := sys.Clone()

	_, err := sys.Constrain(Constraint{Node: 0, Value: 0.25}, Constraint{Node: 2, Value: -1})
	require.NoError(t, err)
	assert.True(t, mat.Equal(before.K, sys.K))
	assert.Equal(t, before.F, sys.F)

	_, err = Reduce(sys, Constraint{Node: 0, Value: 0.25})
	require.NoError(t, err)
	assert.True(t, mat.Equal(before.K, sys.K))
	assert.Equal(t, before.F, sys.F)
}

func TestConstrain_PrescribedValues(t *testing.T) {
	sys := unitChain(t)
	cs := []Constraint{{Node: 0, Value: 0}, {Node: 2, Value: 1}}

	c, err := sys.Constrain(cs...)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 1}, c.F)
	u, err := Solve(c, nil)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 0.5, 1}, u, 1e-15)

	r, err := Reduce(sys, cs...)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, r.Free)
	assert.Equal(t, 1, r.Size())
	assert.Equal(t, 2.0, r.K.At(0, 0))
	assert.Equal(t, []float64{1}, r.F)
	free, err := Solve(r.System, nil)
	require.NoError(t, err)
	full, err := r.Expand(free)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 0.5, 1}, full, 1e-15)
}

func TestConstrain_OrderIndependent(t *testing.T) {
	_, sys := assembleCantilever(t, 6)
	a := Constraint{Node: 0, Value: 0.1}
	b := Constraint{Node: 4, Value: -0.2}

	ab, err := sys.Constrain(a, b)
	require.NoError(t, err)
	ba, err := sys.Constrain(b, a)
	require.NoError(t, err)
	assert.True(t, mat.Equal(ab.K, ba.K))
	assert.Equal(t, ab.F, ba.F)
}

func TestConstrain_Invalid(t *testing.T) {
	sys := unitChain(t)
	tests := []struct {
		name string
		cs   []Constraint
	}{
		{"duplicate", []Constraint{{Node: 1}, {Node: 1, Value: 2}}},
		{"past the end", []Constraint{{Node: 3}}},
		{"negative", []Constraint{{Node: -1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sys.Constrain(tt.cs...)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			_, err = Reduce(sys, tt.cs...)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestReduced_ExpandMismatch(t *testing.T) {
	r, err := Reduce(unitChain(t), Constraint{Node: 0})
	require.NoError(t, err)
	_, err = r.Expand([]float64{1})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}
