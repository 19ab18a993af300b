package sparse

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrSingular is returned when a matrix has no unique solution - i.e. a
	// usable pivot cannot be found or the factorization is too ill
	// conditioned to trust.
	ErrSingular = errors.New("sparse: singular matrix")
	// ErrDimension is returned when the right hand side length does not match
	// the matrix size.
	ErrDimension = errors.New("sparse: dimension mismatch")
	// ErrNotSymmetric is returned by solvers that require a symmetric matrix.
	ErrNotSymmetric = errors.New("sparse: matrix is not symmetric")
	// ErrUnknownSolver is returned by ByName for unregistered solver names.
	ErrUnknownSolver = errors.New("sparse: unknown solver")
)

// PivotTol is the smallest pivot magnitude, relative to the largest entry of
// the pivot row in the original matrix, that elimination accepts.
const PivotTol = 1e-10

// Solver solves A*x=b.  Implementations leave A and b unmodified.  Status
// describes the most recent solve.
type Solver interface {
	Solve(A *Matrix, b []float64) (soln []float64, err error)
	Status() string
}

// DefaultSolver is the name of the solver used when none is specified.
const DefaultSolver = "rcm"

var solvers = map[string]func() Solver{
	"rcm":          func() Solver { return &GaussJordanSym{} },
	"gauss-jordan": func() Solver { return &GaussJordan{} },
	"lu":           func() Solver { return &DenseLU{} },
	"cholesky":     func() Solver { return &Cholesky{} },
}

// ByName returns a new solver registered under name.  An empty name selects
// DefaultSolver.
func ByName(name string) (Solver, error) {
	if name == "" {
		name = DefaultSolver
	}
	fn, ok := solvers[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %v)", ErrUnknownSolver, name, SolverNames())
	}
	return fn(), nil
}

// SolverNames returns the registered solver names in sorted order.
func SolverNames() []string {
	names := make([]string, 0, len(solvers))
	for name := range solvers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func checkDims(A *Matrix, b []float64) (int, error) {
	size, _ := A.Dims()
	if len(b) != size {
		return size, fmt.Errorf("%w: matrix is %vx%v, rhs has %v entries", ErrDimension, size, size, len(b))
	}
	return size, nil
}

// equilibrate returns the symmetric diagonal scaling d, with
// d[i] = 1/sqrt(|A[i][i]|) (1 for a zero diagonal), along with D*A*D and D*b.
// A solution y of the scaled system maps back to x = D*y.
func equilibrate(A *Matrix, b []float64) (d []float64, scaled *Matrix, sb []float64) {
	size, _ := A.Dims()
	d = make([]float64, size)
	for i := range d {
		d[i] = 1
		if a := abs(A.At(i, i)); a > 0 && !math.IsInf(a, 0) {
			d[i] = 1 / math.Sqrt(a)
		}
	}

	scaled = New(size)
	sb = make([]float64, size)
	for i, cols := range A.nonzeroCol {
		for j, v := range cols {
			scaled.Set(i, j, d[i]*v*d[j])
		}
		sb[i] = d[i] * b[i]
	}
	return d, scaled, sb
}

func unscale(d, y []float64) []float64 {
	x := make([]float64, len(y))
	for i := range y {
		x[i] = d[i] * y[i]
	}
	return x
}

func illConditioned(c float64) bool {
	return math.IsInf(c, 1) || math.IsNaN(c) || c > mat.ConditionTolerance
}

// DenseLU solves the system with gonum's dense LU factorization of the
// equilibrated matrix.
type DenseLU struct {
	// Cond is the condition number estimate of the last factorization.
	Cond float64
}

func (s *DenseLU) Status() string { return fmt.Sprintf("condition number %.3g", s.Cond) }

func (s *DenseLU) Solve(A *Matrix, b []float64) ([]float64, error) {
	size, err := checkDims(A, b)
	if err != nil {
		return nil, err
	} else if size == 0 {
		return []float64{}, nil
	}
	d, scaled, sb := equilibrate(A, b)

	var lu mat.LU
	lu.Factorize(scaled)
	if s.Cond = lu.Cond(); illConditioned(s.Cond) {
		return nil, fmt.Errorf("%w: LU condition number %g", ErrSingular, s.Cond)
	}

	var y mat.VecDense
	if err := lu.SolveVecTo(&y, false, mat.NewVecDense(size, sb)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingular, err)
	}
	return finite(unscale(d, y.RawVector().Data))
}

// Cholesky solves symmetric positive definite systems with gonum's Cholesky
// factorization of the equilibrated matrix.
type Cholesky struct {
	// Cond is the condition number estimate of the last factorization.
	Cond float64
}

func (s *Cholesky) Status() string { return fmt.Sprintf("condition number %.3g", s.Cond) }

func (s *Cholesky) Solve(A *Matrix, b []float64) ([]float64, error) {
	size, err := checkDims(A, b)
	if err != nil {
		return nil, err
	} else if size == 0 {
		return []float64{}, nil
	}
	if !A.IsSymmetric(1e-12) {
		return nil, ErrNotSymmetric
	}
	d, scaled, sb := equilibrate(A, b)

	sym := mat.NewSymDense(size, nil)
	for i := 0; i < size; i++ {
		for _, j := range scaled.NonzeroCols(i) {
			if j >= i {
				sym.SetSym(i, j, scaled.At(i, j))
			}
		}
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(sym); !ok {
		s.Cond = math.Inf(1)
		return nil, fmt.Errorf("%w: matrix is not positive definite", ErrSingular)
	}
	if s.Cond = chol.Cond(); illConditioned(s.Cond) {
		return nil, fmt.Errorf("%w: cholesky condition number %g", ErrSingular, s.Cond)
	}

	var y mat.VecDense
	if err := chol.SolveVecTo(&y, mat.NewVecDense(size, sb)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingular, err)
	}
	return finite(unscale(d, y.RawVector().Data))
}

// GaussJordan performs Gaussian-Jordan elimination on an augmented matrix
// [A|b] to solve the system A*x=b.
type GaussJordan struct {
	// NNZ is the number of nonzeros in the last input matrix and PeakNNZ the
	// largest count reached during elimination (after fill-in).
	NNZ, PeakNNZ int
}

func (s *GaussJordan) Status() string {
	return fmt.Sprintf("nnz %v, peak nnz %v", s.NNZ, s.PeakNNZ)
}

func (s *GaussJordan) Solve(A *Matrix, b []float64) ([]float64, error) {
	size, err := checkDims(A, b)
	if err != nil {
		return nil, err
	} else if size == 0 {
		return []float64{}, nil
	}
	A = A.Clone()
	b = append([]float64{}, b...)
	s.NNZ, s.PeakNNZ = A.NNZ(), A.NNZ()

	scale := make([]float64, size)
	for i := range scale {
		for _, v := range A.nonzeroCol[i] {
			scale[i] = math.Max(scale[i], abs(v))
		}
		if scale[i] == 0 || math.IsNaN(scale[i]) {
			return nil, fmt.Errorf("%w: row %v is empty", ErrSingular, i)
		}
	}

	// Using pivot rows (usually along the diagonal), eliminate all entries
	// below the pivot - doing this choosing a pivot row to eliminate nonzeros
	// in each column.  We only eliminate rows not yet used as pivots on the
	// first pass to reduce fill-in.  The second pass walks the pivot rows in
	// reverse eliminating the remaining nonzeros above the pivots.

	donerows := make([]bool, size)
	pivots := make([]int, size)

	// first pass
	for j := 0; j < size; j++ {
		// choose the unused row with the largest entry in column j relative
		// to the row's scale; ties go to the lowest row index.
		piv, best := -1, 0.0
		for _, i := range A.NonzeroRows(j) {
			if donerows[i] {
				continue
			}
			if rel := abs(A.At(i, j)) / scale[i]; rel > best {
				piv, best = i, rel
			}
		}
		if piv < 0 || best <= PivotTol {
			return nil, fmt.Errorf("%w: no usable pivot in column %v", ErrSingular, j)
		}
		pivots[j] = piv
		donerows[piv] = true

		ApplyPivot(A, b, j, piv, func(i int) bool { return !donerows[i] })
		s.PeakNNZ = max(s.PeakNNZ, A.NNZ())
	}

	// second pass
	for j := size - 1; j >= 0; j-- {
		ApplyPivot(A, b, j, pivots[j], func(int) bool { return true })
	}

	// re-sequence solution based on pivot row indices/order
	x := make([]float64, size)
	for j, i := range pivots {
		x[j] = b[i] / A.At(i, j)
	}
	return finite(x)
}

// GaussJordanSym uses gaussian elimination with the reverse Cuthill-McKee
// algorithm to permute the matrix indices/DOF to have a smaller bandwidth.
type GaussJordanSym struct {
	// Bandwidth and Reordered are the bandwidths of the last input matrix
	// before and after RCM reordering.
	Bandwidth, Reordered int
	elim                 GaussJordan
}

func (s *GaussJordanSym) Status() string {
	return fmt.Sprintf("bandwidth %v -> %v, %v", s.Bandwidth, s.Reordered, s.elim.Status())
}

func (s *GaussJordanSym) Solve(A *Matrix, b []float64) ([]float64, error) {
	size, err := checkDims(A, b)
	if err != nil {
		return nil, err
	} else if size == 0 {
		return []float64{}, nil
	}

	mapping := RCM(A)
	AA := A.Permute(mapping)
	s.Bandwidth, s.Reordered = Bandwidth(A), Bandwidth(AA)
	bb := make([]float64, size)
	for i, inew := range mapping {
		bb[inew] = b[i]
	}

	x, err := s.elim.Solve(AA, bb)
	if err != nil {
		return nil, err
	}

	// re-sequence solution based on RCM permutation/reordering
	xx := make([]float64, size)
	for i, inew := range mapping {
		xx[i] = x[inew]
	}
	return xx, nil
}

// ApplyPivot uses the given pivot row to eliminate col from every other row
// for which include returns true.  The appropriate operations are also
// performed on b to keep it in sync.
func ApplyPivot(A *Matrix, b []float64, col, piv int, include func(row int) bool) {
	pval := A.At(piv, col)
	bval := b[piv]
	for _, i := range A.NonzeroRows(col) {
		if i == piv || !include(i) {
			continue
		}
		mult := -A.At(i, col) / pval
		RowCombination(A, piv, i, mult)
		A.Set(i, col, 0)
		b[i] += bval * mult
	}
}

func finite(x []float64) ([]float64, error) {
	if !allFinite(x) {
		return nil, fmt.Errorf("%w: solution is not finite", ErrSingular)
	}
	return x, nil
}
