package chanvese

import (
	"io"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

// Result describes the outcome of a solve.
type Result struct {
	// Iterations is the iteration at which the stop condition first held,
	// or MaxIter if it never held.
	Iterations int

	// Converged is true when the solve stopped on the RMS test rather than
	// by exhausting MaxIter.
	Converged bool

	// RMS is the root mean square change of the last executed sweep.
	RMS float64

	// C1 and C2 are the region averages recomputed from the final Phi.
	C1, C2 float64

	// Energy is the functional evaluated on the final partition.
	Energy EnergyTerms

	// Phi is the level set, mutated in place. It is the same matrix that
	// was passed to Solve.
	Phi *mat.Dense
}

// Solver runs the Chan-Vese iteration for a fixed set of parameters.
// A Solver holds no per-solve state and may be reused, but a single Phi must
// not be solved concurrently.
type Solver struct {
	params Params
	logger *logrus.Logger
}

// NewSolver creates a solver with the given parameters. Logging is disabled
// until SetLogger is called.
func NewSolver(params Params) *Solver {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &Solver{
		params: params,
		logger: logger,
	}
}

// SetLogger routes progress messages to logger. Per-iteration progress is
// logged at debug level.
func (s *Solver) SetLogger(logger *logrus.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Params returns the solver parameters.
func (s *Solver) Params() Params {
	return s.params
}

// Solve segments img starting from the level set phi, which is updated in
// place. img and phi must have the same dimensions; Solve does not check.
func (s *Solver) Solve(img mat.Matrix, phi *mat.Dense) Result {
	p := s.params
	width, height := phi.Dims()
	mon := monitor{tol: p.Tol, maxIter: p.MaxIter}

	c1, c2 := RegionAverages(phi, img)
	res := Result{Phi: phi}

	for iter := 1; iter <= mon.maxIter; iter++ {
		sumSq := sweep(phi, img, &p, regions{c1: c1, c2: c2})
		res.RMS = rmsNorm(sumSq, width*height)
		c1, c2 = RegionAverages(phi, img)

		if s.logger.IsLevelEnabled(logrus.DebugLevel) {
			s.logger.WithFields(logrus.Fields{
				"iteration": iter,
				"rms":       res.RMS,
				"c1":        c1,
				"c2":        c2,
			}).Debug("Chan-Vese sweep")
		}

		if mon.done(iter, res.RMS) {
			res.Iterations = iter
			res.Converged = true
			break
		}
	}
	if !res.Converged {
		res.Iterations = p.MaxIter
	}

	res.C1, res.C2 = c1, c2
	res.Energy = Energy(phi, img, c1, c2, &p)

	s.logger.WithFields(logrus.Fields{
		"iterations": res.Iterations,
		"converged":  res.Converged,
		"rms":        res.RMS,
		"energy":     res.Energy.Total(),
	}).Info("Chan-Vese segmentation finished")

	return res
}

// Solve runs a silent solver with params and returns the number of
// iterations executed together with the updated phi.
func Solve(img mat.Matrix, phi *mat.Dense, params Params) (int, *mat.Dense) {
	res := NewSolver(params).Solve(img, phi)
	return res.Iterations, res.Phi
}
