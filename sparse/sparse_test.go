package sparse

import (
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestMatrix_Set(t *testing.T) {
	m := New(3)
	m.Set(0, 1, 2)
	m.Add(0, 1, 3)
	m.Set(2, 2, 1)
	if got := m.At(0, 1); got != 5 {
		t.Errorf("At(0,1)=%v, want 5", got)
	}
	if got := m.NNZ(); got != 2 {
		t.Errorf("NNZ=%v, want 2", got)
	}

	m.Add(0, 1, -5)
	if got := m.NNZ(); got != 1 {
		t.Errorf("NNZ after cancel=%v, want 1", got)
	}
	if cols := m.NonzeroCols(0); len(cols) != 0 {
		t.Errorf("row 0 cols=%v, want none", cols)
	}
	if rows := m.NonzeroRows(2); len(rows) != 1 || rows[0] != 2 {
		t.Errorf("col 2 rows=%v, want [2]", rows)
	}
}

func TestMatrix_ZeroRowCol(t *testing.T) {
	m := cantilever(3, 2)
	m.ZeroRow(1)
	m.ZeroCol(1)
	for i := 0; i < 4; i++ {
		if m.At(1, i) != 0 || m.At(i, 1) != 0 {
			t.Errorf("row/col 1 not cleared at %v:\n%v", i, mat.Formatted(m))
		}
	}
	if m.At(2, 2) != 4 || m.At(2, 3) != -2 {
		t.Errorf("unrelated entries changed:\n%v", mat.Formatted(m))
	}
}

func TestMatrix_Mul(t *testing.T) {
	vals := []float64{
		1, 2, 0,
		0, 3, 4,
		5, 0, 6,
	}
	m := makeSparse(3, vals)
	got := m.Mul([]float64{1, 1, 2})
	want := []float64{3, 11, 17}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("FAIL row %v: got %v, want %v", i, got[i], want[i])
		}
	}
	if m.IsSymmetric(0) {
		t.Errorf("nonsymmetric matrix reported symmetric")
	}
	if !cantilever(4, 3).IsSymmetric(0) {
		t.Errorf("stiffness matrix reported nonsymmetric")
	}
}

func TestRCM_Permutation(t *testing.T) {
	size := 35
	nfill := 6
	big := randSparse(size, nfill, 8)
	mapping := RCM(big)

	seen := make([]bool, size)
	for _, inew := range mapping {
		if inew < 0 || inew >= size || seen[inew] {
			t.Fatalf("mapping %v is not a permutation", mapping)
		}
		seen[inew] = true
	}

	permuted := big.Permute(mapping)
	if permuted.NNZ() != big.NNZ() {
		t.Errorf("permuted nnz=%v, want %v", permuted.NNZ(), big.NNZ())
	}
	t.Logf("original=\n% v\n", mat.Formatted(big))
	t.Logf("permuted=\n% v\n", mat.Formatted(permuted))
}

func TestRCM_Bandwidth(t *testing.T) {
	// a chain of dofs numbered in scrambled order has large bandwidth until
	// RCM renumbers it.
	size := 20
	order := rand.New(rand.NewSource(3)).Perm(size)
	chain := New(size)
	for k := 0; k < size; k++ {
		chain.Set(order[k], order[k], 2)
		if k > 0 {
			chain.Set(order[k], order[k-1], -1)
			chain.Set(order[k-1], order[k], -1)
		}
	}

	permuted := chain.Permute(RCM(chain))
	if bw := Bandwidth(permuted); bw != 1 {
		t.Errorf("bandwidth after RCM=%v, want 1 (before=%v)", bw, Bandwidth(chain))
	}
}

func TestBandwidth(t *testing.T) {
	tests := []struct {
		size int
		vals []float64
		want int
	}{
		{size: 2, vals: []float64{1, 0, 0, 1}, want: 0},
		{size: 3, vals: []float64{2, -1, 0, -1, 2, -1, 0, -1, 2}, want: 1},
		// upper triangle only
		{size: 3, vals: []float64{1, 0, 5, 0, 1, 0, 0, 0, 1}, want: 2},
		{size: 0, vals: nil, want: 0},
	}
	for i, test := range tests {
		A := New(test.size)
		if test.size > 0 {
			A = makeSparse(test.size, test.vals)
		}
		if got := Bandwidth(A); got != test.want {
			t.Errorf("FAIL case %v: bandwidth=%v, want %v", i+1, got, test.want)
		}
	}
}
