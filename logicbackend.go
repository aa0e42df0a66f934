package gochroma

import (
	"context"
	"fmt"
	"strconv"

	"github.com/xDarkicex/logic/sat"
)

// A LogicBackend wraps github.com/xDarkicex/logic/sat's CDCL solver. Unlike
// [GophersatBackend] it is genuinely incremental: clauses accumulate in a
// single [sat.CNF] across calls to Solve, so learned structure (in
// particular the clauses the Zykov propagator injects between solves) is
// never thrown away. This is the backend behind the config's "CaDiCaL"
// slot and the only one the Zykov encoding's configuration validation
// accepts.
type LogicBackend struct {
	cnf       *sat.CNF
	solver    *sat.CDCLSolver
	nbVars    int
	assumed   []Lit
	propCheck func(model []bool) error
}

var _ PropagatorBackend = (*LogicBackend)(nil)

// ConnectPropagator attaches check to run against every satisfying model.
func (b *LogicBackend) ConnectPropagator(check func(model []bool) error) {
	b.propCheck = check
}

// NewLogicBackend returns an empty [LogicBackend].
func NewLogicBackend() *LogicBackend {
	return &LogicBackend{cnf: sat.NewCNF(), solver: sat.NewCDCLSolver()}
}

// litName returns the variable name this backend's CNF uses for the
// gochroma variable v (1-based).
func litName(v int) string { return "x" + strconv.Itoa(v) }

func toLiteral(l Lit) sat.Literal {
	return sat.Literal{Variable: litName(l.Var()), Negated: !l.IsPositive()}
}

func (b *LogicBackend) NewVars(n int) int {
	first := b.nbVars + 1
	b.nbVars += n
	return first
}

func (b *LogicBackend) NumVars() int { return b.nbVars }

func (b *LogicBackend) AddClause(lits ...Lit) error {
	for _, l := range lits {
		if l.Var() < 1 || l.Var() > b.nbVars {
			return fmt.Errorf("%w: literal %d out of range [1,%d]", ErrCapacity, l, b.nbVars)
		}
	}
	satLits := make([]sat.Literal, len(lits))
	for i, l := range lits {
		satLits[i] = toLiteral(l)
	}
	b.cnf.AddClause(sat.NewClause(satLits...))
	return nil
}

func (b *LogicBackend) Assume(lits ...Lit) {
	b.assumed = append(b.assumed, lits...)
}

func (b *LogicBackend) Incremental() bool { return true }

func (b *LogicBackend) Reset() {
	b.cnf = sat.NewCNF()
	b.solver.Reset()
	b.nbVars = 0
	b.assumed = nil
	b.propCheck = nil
}

func (b *LogicBackend) Solve(ctx context.Context) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{Status: Unknown}, err
	}
	cnf := b.cnf
	if len(b.assumed) > 0 {
		// Assumptions are pinned for this call only: solve a throwaway CNF
		// that is the accumulated clauses plus one unit clause per
		// assumption, leaving b.cnf untouched for the next call.
		cnf = sat.NewCNF()
		for _, c := range b.cnf.Clauses {
			cnf.AddClause(c)
		}
		for _, a := range b.assumed {
			cnf.AddClause(sat.NewClause(toLiteral(a)))
		}
	}
	b.assumed = nil
	res := b.solver.Solve(cnf)
	if res.Error != nil {
		return Result{Status: Unknown}, fmt.Errorf("%w: %v", ErrBackend, res.Error)
	}
	if !res.Satisfiable {
		return Result{Status: Unsat}, nil
	}
	model := make([]bool, b.nbVars+1)
	for v := 1; v <= b.nbVars; v++ {
		model[v] = res.Assignment[litName(v)]
	}
	if b.propCheck != nil {
		if err := b.propCheck(model); err != nil {
			return Result{Status: Unknown}, err
		}
	}
	return Result{Status: Sat, Model: model}, nil
}

// Statistics returns the underlying solver's decision/propagation/conflict
// counters, available only for this
// backend since gophersat's [solver.Solver] does not expose them.
func (b *LogicBackend) Statistics() sat.SolverStatistics {
	return b.solver.GetStatistics()
}
