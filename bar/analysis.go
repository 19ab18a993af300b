package bar

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/rwcarlsen/barfem/sparse"
)

// Config describes a bar analysis.
type Config struct {
	Length       float64 `json:"length" yaml:"length"`
	YoungModulus float64 `json:"young_modulus" yaml:"young_modulus"`
	Area         float64 `json:"cross_section_area" yaml:"cross_section_area"`
	NumElements  int     `json:"num_elements" yaml:"num_elements"`
	// AppliedForce acts on the last node.
	AppliedForce float64 `json:"applied_force" yaml:"applied_force"`
	// FixedNode is clamped to zero displacement unless Supports is set.
	FixedNode int `json:"fixed_node_index" yaml:"fixed_node_index"`

	// Loads are applied in addition to AppliedForce.
	Loads []PointLoad `json:"loads,omitempty" yaml:"loads,omitempty"`
	// Supports replaces FixedNode when non-empty.
	Supports []Constraint `json:"supports,omitempty" yaml:"supports,omitempty"`
}

// Material returns the section and material properties of c.
func (c Config) Material() Material {
	return Material{YoungModulus: c.YoungModulus, Area: c.Area}
}

// PointLoads returns every load acting on the bar.
func (c Config) PointLoads() []PointLoad {
	loads := []PointLoad{{Node: c.NumElements, Force: c.AppliedForce}}
	return append(loads, c.Loads...)
}

// Constraints returns every support of the bar.
func (c Config) Constraints() []Constraint {
	if len(c.Supports) > 0 {
		return append([]Constraint{}, c.Supports...)
	}
	return []Constraint{{Node: c.FixedNode}}
}

// Method selects how constraints are enforced.
type Method int

const (
	// Elimination zeroes constrained rows and columns in place and puts a 1
	// on the diagonal.
	Elimination Method = iota
	// Reduction strikes constrained rows and columns to form a smaller
	// system.
	Reduction
)

func (m Method) String() string {
	switch m {
	case Elimination:
		return "elimination"
	case Reduction:
		return "reduction"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod returns the method named s.  An empty string selects
// Elimination.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(s) {
	case "", "elimination":
		return Elimination, nil
	case "reduction":
		return Reduction, nil
	}
	return 0, fmt.Errorf("%w: unknown constraint method %q", ErrInvalidConfig, s)
}

type options struct {
	solver string
	method Method
	logger *slog.Logger
}

// Option configures Run.
type Option func(*options)

// WithSolver selects the linear solver by its registered name (see
// sparse.SolverNames).
func WithSolver(name string) Option { return func(o *options) { o.solver = name } }

// WithMethod selects the constraint enforcement technique.
func WithMethod(m Method) Option { return func(o *options) { o.method = m } }

// WithLogger sets the logger receiving per stage debug records.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Result is the output record of a bar analysis.
type Result struct {
	NodeCoordinates []float64       `json:"node_coordinates" yaml:"node_coordinates"`
	Connectivity    [][2]int        `json:"connectivity" yaml:"connectivity"`
	Displacements   []float64       `json:"displacements" yaml:"displacements"`
	Elements        []ElementResult `json:"elements" yaml:"elements"`
	Reactions       []Reaction      `json:"reactions" yaml:"reactions"`
	StrainEnergy    float64         `json:"strain_energy" yaml:"strain_energy"`
	Solver          string          `json:"solver" yaml:"solver"`
	Method          string          `json:"method" yaml:"method"`

	mesh *Mesh
}

// DisplacementAt interpolates the displacement at any x along the bar.
func (r *Result) DisplacementAt(x float64) (float64, error) {
	if r.mesh == nil {
		m, err := NewMesh(r.NodeCoordinates)
		if err != nil {
			return 0, err
		}
		r.mesh = m
	}
	return r.mesh.Interpolate(r.Displacements, x)
}

// MaxStress returns the element with the largest stress magnitude.  Ties go
// to the lowest element index.
func (r *Result) MaxStress() (ElementResult, bool) {
	if len(r.Elements) == 0 {
		return ElementResult{}, false
	}
	best := r.Elements[0]
	for _, e := range r.Elements[1:] {
		if math.Abs(e.Stress) > math.Abs(best.Stress) {
			best = e
		}
	}
	return best, true
}

// Run meshes, assembles, constrains and solves the bar described by cfg and
// post-processes the solution.
func Run(cfg Config, opts ...Option) (*Result, error) {
	o := options{
		solver: sparse.DefaultSolver,
		method: Elimination,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger

	if o.solver == "" {
		o.solver = sparse.DefaultSolver
	}
	solver, err := sparse.ByName(o.solver)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if o.method != Elimination && o.method != Reduction {
		return nil, fmt.Errorf("%w: unknown constraint method %v", ErrInvalidConfig, o.method)
	}

	mesh, err := NewUniformMesh(cfg.Length, cfg.NumElements)
	if err != nil {
		return nil, err
	}
	log.Debug("mesh generated", "nodes", mesh.NumNodes(), "elements", mesh.NumElems(), "length", cfg.Length)

	mat := cfg.Material()
	sys, err := Assemble(mesh, mat, cfg.PointLoads())
	if err != nil {
		return nil, err
	}
	log.Debug("system assembled", "dofs", sys.Size(), "nnz", sys.K.NNZ())

	cs := cfg.Constraints()
	var u []float64
	switch o.method {
	case Elimination:
		constrained, err := sys.Constrain(cs...)
		if err != nil {
			return nil, err
		}
		log.Debug("constraints applied", "method", o.method, "supports", len(cs))
		if u, err = Solve(constrained, solver); err != nil {
			return nil, err
		}
	case Reduction:
		reduced, err := Reduce(sys, cs...)
		if err != nil {
			return nil, err
		}
		log.Debug("constraints applied", "method", o.method, "supports", len(cs), "free", len(reduced.Free))
		free, err := Solve(reduced.System, solver)
		if err != nil {
			return nil, err
		}
		if u, err = reduced.Expand(free); err != nil {
			return nil, err
		}
	}
	log.Debug("system solved", "solver", o.solver, "status", solver.Status())

	elems, err := PostProcess(mesh, mat, u)
	if err != nil {
		return nil, err
	}
	reactions, err := Reactions(sys, u, cs)
	if err != nil {
		return nil, err
	}
	energy := TotalStrainEnergy(elems)
	log.Debug("post-processed", "elements", len(elems), "strain_energy", energy)

	return &Result{
		NodeCoordinates: mesh.Coords(),
		Connectivity:    mesh.Connectivity(),
		Displacements:   u,
		Elements:        elems,
		Reactions:       reactions,
		StrainEnergy:    energy,
		Solver:          o.solver,
		Method:          o.method.String(),
		mesh:            mesh,
	}, nil
}
