package sparse

import (
	"math"
	"sort"
)

func abs(v float64) float64 { return math.Abs(v) }

func vecSub(result, a, b []float64) {
	if len(a) != len(b) {
		panic("inconsistent lengths for vector subtraction")
	}
	for i := range a {
		result[i] = a[i] - b[i]
	}
}

// Residual returns A*x-b.
func Residual(A *Matrix, x, b []float64) []float64 {
	r := A.Mul(x)
	vecSub(r, r, b)
	return r
}

// allFinite reports whether no entry of v is NaN or infinite.
func allFinite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// Bandwidth returns the largest distance |i-j| of a nonzero entry from the
// diagonal.
func Bandwidth(A *Matrix) int {
	bw := 0
	for i, cols := range A.nonzeroCol {
		for j := range cols {
			if d := i - j; d > bw {
				bw = d
			} else if -d > bw {
				bw = -d
			}
		}
	}
	return bw
}

// RCM provides an alternate degree-of-freedom reordering in assembled matrix
// that provides better bandwidth properties for solvers.  The returned slice
// maps each original index to its new index.
func RCM(A *Matrix) []int {
	size, _ := A.Dims()

	degree := make([]int, size)
	degreemap := make([]int, size)
	for i := range degreemap {
		degreemap[i] = i
		degree[i] = len(A.nonzeroCol[i])
	}
	byDegree := func(ii []int) {
		sort.SliceStable(ii, func(a, b int) bool { return degree[ii[a]] < degree[ii[b]] })
	}
	byDegree(degreemap)

	// breadth-first search across adjacency/connections between nodes/dofs
	order := make([]int, 0, size)
	visited := make([]bool, size)
	for _, start := range degreemap {
		if visited[start] {
			// matrix need not represent a fully connected graph - each
			// unvisited lowest degree dof starts a new level structure.
			continue
		}
		visited[start] = true
		level := []int{start}
		for len(level) > 0 {
			order = append(order, level...)
			level = nextRCMLevel(A, visited, level, byDegree)
		}
	}

	mapping := make([]int, size)
	for pos, i := range order {
		mapping[i] = size - 1 - pos
	}
	return mapping
}

func nextRCMLevel(A *Matrix, visited []bool, ii []int, byDegree func([]int)) []int {
	var nextlevel []int
	for _, i := range ii {
		var tmp []int
		for _, j := range A.NonzeroCols(i) {
			if !visited[j] {
				visited[j] = true
				tmp = append(tmp, j)
			}
		}
		// insert neighbors batched by src row in increasing degree order
		byDegree(tmp)
		nextlevel = append(nextlevel, tmp...)
	}
	return nextlevel
}
