package bar

import (
	"math"
	"testing"
)

func TestLagrange1D(t *testing.T) {
	tests := []struct {
		Order   int
		Index   int
		SampleX float64
		Want    float64
	}{
		{Order: 1, Index: 0, SampleX: -1, Want: 1.0},
		{Order: 1, Index: 0, SampleX: 0, Want: 0.5},
		{Order: 1, Index: 0, SampleX: 1, Want: 0.0},
		{Order: 1, Index: 1, SampleX: -1, Want: 0.0},
		{Order: 1, Index: 1, SampleX: 0, Want: 0.5},
		{Order: 1, Index: 1, SampleX: 1, Want: 1.0},
		{Order: 2, Index: 0, SampleX: -1, Want: 1.0},
		{Order: 2, Index: 0, SampleX: 0, Want: 0.0},
		{Order: 2, Index: 0, SampleX: 1, Want: 0.0},
		{Order: 2, Index: 1, SampleX: -1, Want: 0.0},
		{Order: 2, Index: 1, SampleX: 0, Want: 1.0},
		{Order: 2, Index: 1, SampleX: 1, Want: 0.0},
		{Order: 2, Index: 2, SampleX: -1, Want: 0.0},
		{Order: 2, Index: 2, SampleX: 0, Want: 0.0},
		{Order: 2, Index: 2, SampleX: 1, Want: 1.0},
	}

	for i, test := range tests {
		fn := Lagrange1D{Index: test.Index, Order: test.Order}
		y := fn.Value(test.SampleX)
		if y != test.Want {
			t.Errorf("FAIL test %v (order=%v, i=%v): f(%v)=%v, want %v", i+1, test.Order, test.Index, test.SampleX, y, test.Want)
		} else {
			t.Logf("     test %v (order=%v, i=%v): f(%v)=%v", i+1, test.Order, test.Index, test.SampleX, y)
		}
	}
}

func TestLagrange1D_Deriv(t *testing.T) {
	tests := []struct {
		Order   int
		Index   int
		SampleX float64
		Want    float64
	}{
		{Order: 1, Index: 0, SampleX: -1, Want: -0.5},
		{Order: 1, Index: 0, SampleX: 0.3, Want: -0.5},
		{Order: 1, Index: 1, SampleX: 0.7, Want: 0.5},
		// x*(x+1)/2
		{Order: 2, Index: 2, SampleX: 1, Want: 1.5},
		{Order: 2, Index: 2, SampleX: 0, Want: 0.5},
		// 1-x^2
		{Order: 2, Index: 1, SampleX: 0.5, Want: -1},
	}

	for i, test := range tests {
		fn := Lagrange1D{Index: test.Index, Order: test.Order}
		d := fn.Deriv(test.SampleX)
		if d != test.Want {
			t.Errorf("FAIL test %v (order=%v, i=%v): f'(%v)=%v, want %v", i+1, test.Order, test.Index, test.SampleX, d, test.Want)
		}
	}
}

func TestLinearShapes_PartitionOfUnity(t *testing.T) {
	for _, x := range []float64{-1, -0.75, -0.2, 0, 0.1, 0.5, 1} {
		sum := linearShapes[0].Value(x) + linearShapes[1].Value(x)
		if math.Abs(sum-1) > 1e-15 {
			t.Errorf("FAIL x=%v: shape functions sum to %v", x, sum)
		}
	}
}
