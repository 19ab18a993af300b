// Command barfem runs a static finite element analysis of an axially loaded
// bar and reports nodal displacements, element strains and stresses.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/rwcarlsen/barfem/bar"
	"github.com/rwcarlsen/barfem/sparse"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
)

// Exit codes.
const (
	exitOK       = 0
	exitConfig   = 2
	exitModel    = 3
	exitInternal = 4
)

var errUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "barfem: %v\n", err)
		return exitCode(err)
	}
	return exitOK
}

// exitCode maps configuration problems to 2, ill-posed models to 3 and
// everything else to 4.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUsage),
		errors.Is(err, bar.ErrInvalidConfig),
		errors.Is(err, bar.ErrInvalidMesh),
		errors.Is(err, bar.ErrInvalidElement),
		errors.Is(err, bar.ErrOutOfMesh):
		return exitConfig
	case errors.Is(err, bar.ErrSingularSystem):
		return exitModel
	default:
		return exitInternal
	}
}

type app struct {
	stdout, stderr io.Writer
	log            logConfig
	logger         *slog.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}
	env := logConfigFromEnv()

	root := &cobra.Command{
		Use:           "barfem",
		Short:         "Static analysis of an axially loaded bar",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
			}
			return cmd.Help()
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.logger = newLogger(a.stderr, a.log)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", errUsage, err)
	})
	root.PersistentFlags().StringVar(&a.log.Level, "log-level", orDefault(env.Level, "info"), "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.log.Format, "log-format", orDefault(env.Format, "text"), "log format (text, json)")

	root.AddCommand(a.newSolveCmd(), a.newStiffnessCmd(), a.newSolversCmd())
	return root
}

func (a *app) newSolveCmd() *cobra.Command {
	var (
		model   modelFlags
		solver  string
		method  string
		format  string
		plotDir string
	)
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve the bar and print displacements, strains and stresses",
		Long: `Mesh the bar into linear elements, assemble and constrain the global
stiffness system, solve it and post-process element strains and stresses.

Examples:
  barfem solve
  barfem solve --elements 50 --force=-2500 --format json
  barfem solve --config bar.yaml --plot-dir plots`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := model.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			m, err := bar.ParseMethod(method)
			if err != nil {
				return err
			}

			log := a.logger.With("cmd", "solve")
			log.Info("solving bar", "length", cfg.Length, "elements", cfg.NumElements, "force", cfg.AppliedForce)
			res, err := bar.Run(cfg, bar.WithSolver(solver), bar.WithMethod(m), bar.WithLogger(log))
			if err != nil {
				return err
			}

			if plotDir != "" {
				if err := writePlots(plotDir, res); err != nil {
					return err
				}
				log.Info("plots written", "dir", plotDir, "files", plotFiles)
			}
			return writeResult(a.stdout, format, cfg, res)
		},
	}
	model.register(cmd.Flags())
	cmd.Flags().StringVar(&solver, "solver", sparse.DefaultSolver, "linear solver ("+strings.Join(sparse.SolverNames(), ", ")+")")
	cmd.Flags().StringVar(&method, "method", bar.Elimination.String(), "constraint method (elimination, reduction)")
	cmd.Flags().StringVarP(&format, "format", "o", "table", "output format ("+strings.Join(formats, ", ")+")")
	cmd.Flags().StringVar(&plotDir, "plot-dir", "", "write displacement, strain and stress plots into this directory")
	return cmd
}

func (a *app) newStiffnessCmd() *cobra.Command {
	var (
		model       modelFlags
		constrained bool
	)
	cmd := &cobra.Command{
		Use:   "stiffness",
		Short: "Print the assembled global stiffness matrix and load vector",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := model.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			mesh, err := bar.NewUniformMesh(cfg.Length, cfg.NumElements)
			if err != nil {
				return err
			}
			sys, err := bar.Assemble(mesh, cfg.Material(), cfg.PointLoads())
			if err != nil {
				return err
			}
			if constrained {
				if sys, err = sys.Constrain(cfg.Constraints()...); err != nil {
					return err
				}
			}
			a.logger.Debug("system assembled", "dofs", sys.Size(), "nnz", sys.K.NNZ(), "constrained", constrained)

			fmt.Fprintf(a.stdout, "K =\n%v\n\n", mat.Formatted(sys.K, mat.Squeeze()))
			fmt.Fprintf(a.stdout, "F =\n%v\n", mat.Formatted(mat.NewVecDense(sys.Size(), sys.F), mat.Squeeze()))
			return nil
		},
	}
	model.register(cmd.Flags())
	cmd.Flags().BoolVar(&constrained, "constrained", false, "apply the supports before printing")
	return cmd
}

func (a *app) newSolversCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "solvers",
		Short: "List the available linear solvers",
		Args:  usageArgs(cobra.NoArgs),
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range sparse.SolverNames() {
				suffix := ""
				if name == sparse.DefaultSolver {
					suffix = " (default)"
				}
				fmt.Fprintf(a.stdout, "%v%v\n", name, suffix)
			}
		},
	}
}

func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", errUsage, err)
		}
		return nil
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
