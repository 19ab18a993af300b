// Package sparse provides a square sparse matrix suited to assembled finite
// element systems along with direct solvers for K*u=f.
package sparse

import (
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a square sparse matrix.  It stores its nonzero entries indexed both
// by row and by column so that row and column sweeps are cheap.  Entries set to
// exactly zero are removed.
type Matrix struct {
	// nonzeroCol is map[row]map[col]val
	nonzeroCol []map[int]float64
	// nonzeroRow is map[col]map[row]val
	nonzeroRow []map[int]float64
	size       int
}

// New returns an all-zero size by size matrix.
func New(size int) *Matrix {
	return &Matrix{
		nonzeroCol: make([]map[int]float64, size),
		nonzeroRow: make([]map[int]float64, size),
		size:       size,
	}
}

// NewFromDense copies the nonzero entries of the square matrix a into a new
// sparse matrix.
func NewFromDense(a mat.Matrix) *Matrix {
	size, _ := a.Dims()
	m := New(size)
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			m.Set(i, j, a.At(i, j))
		}
	}
	return m
}

// Clone returns a deep copy of m.
func (m *Matrix) Clone() *Matrix {
	clone := New(m.size)
	for i, cols := range m.nonzeroCol {
		for j, v := range cols {
			clone.Set(i, j, v)
		}
	}
	return clone
}

func (m *Matrix) T() mat.Matrix       { return mat.Transpose{Matrix: m} }
func (m *Matrix) Dims() (int, int)    { return m.size, m.size }
func (m *Matrix) At(i, j int) float64 { return m.nonzeroCol[i][j] }

func (m *Matrix) Set(i, j int, v float64) {
	if i < 0 || i >= m.size || j < 0 || j >= m.size {
		panic(mat.ErrIndexOutOfRange)
	}
	if v == 0 {
		delete(m.nonzeroCol[i], j)
		delete(m.nonzeroRow[j], i)
		return
	}
	if m.nonzeroCol[i] == nil {
		m.nonzeroCol[i] = make(map[int]float64)
	}
	if m.nonzeroRow[j] == nil {
		m.nonzeroRow[j] = make(map[int]float64)
	}

	m.nonzeroCol[i][j] = v
	m.nonzeroRow[j][i] = v
}

// Add adds v to the entry at (i, j).
func (m *Matrix) Add(i, j int, v float64) { m.Set(i, j, m.At(i, j)+v) }

// NonzeroCols returns the column indices of the nonzero entries in row in
// increasing order.
func (m *Matrix) NonzeroCols(row int) []int { return sortedKeys(m.nonzeroCol[row]) }

// NonzeroRows returns the row indices of the nonzero entries in col in
// increasing order.
func (m *Matrix) NonzeroRows(col int) []int { return sortedKeys(m.nonzeroRow[col]) }

// NNZ returns the number of nonzero entries stored in m.
func (m *Matrix) NNZ() int {
	n := 0
	for _, cols := range m.nonzeroCol {
		n += len(cols)
	}
	return n
}

// ZeroRow removes every entry in row.
func (m *Matrix) ZeroRow(row int) {
	for _, j := range m.NonzeroCols(row) {
		m.Set(row, j, 0)
	}
}

// ZeroCol removes every entry in col.
func (m *Matrix) ZeroCol(col int) {
	for _, i := range m.NonzeroRows(col) {
		m.Set(i, col, 0)
	}
}

// Permute maps i and j indices to new i and j values idendified by the given
// mapping.  Values stored in m.At(i,j) are stored into a newly created sparse
// matrix at new.At(mapping[i], mapping[j]).  The permuted matrix is returned
// and the original remains unmodified.
func (m *Matrix) Permute(mapping []int) *Matrix {
	clone := New(m.size)
	for i, cols := range m.nonzeroCol {
		for j, val := range cols {
			clone.Set(mapping[i], mapping[j], val)
		}
	}
	return clone
}

// Mul returns the matrix-vector product m*b.
func (m *Matrix) Mul(b []float64) []float64 {
	if len(b) != m.size {
		panic(mat.ErrShape)
	}
	result := make([]float64, m.size)
	for i := 0; i < m.size; i++ {
		tot := 0.0
		for _, j := range m.NonzeroCols(i) {
			tot += m.nonzeroCol[i][j] * b[j]
		}
		result[i] = tot
	}
	return result
}

// IsSymmetric reports whether m equals its transpose to within tol relative to
// the magnitude of the compared entries.
func (m *Matrix) IsSymmetric(tol float64) bool {
	for i, cols := range m.nonzeroCol {
		for j, v := range cols {
			vt := m.At(j, i)
			if diff := abs(v - vt); diff > tol*max(abs(v), abs(vt)) {
				return false
			}
		}
	}
	return true
}

// RowCombination adds mult times row pivrow to row dstrow.
func RowCombination(m *Matrix, pivrow, dstrow int, mult float64) {
	for _, col := range m.NonzeroCols(pivrow) {
		m.Add(dstrow, col, m.At(pivrow, col)*mult)
	}
}

func sortedKeys(m map[int]float64) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
