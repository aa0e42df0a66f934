package gochroma

import (
	"context"
	"fmt"

	"github.com/crillab/gophersat/solver"
)

// A GophersatBackend wraps github.com/crillab/gophersat/solver. gophersat's
// [solver.Solver] keeps no usable state across calls to Solve beyond what
// was true at construction time, so this backend keeps its own clause
// accumulator and builds a fresh [solver.Solver] on every call to Solve.
// This is the backend behind the config's "Glucose" slot.
type GophersatBackend struct {
	nbVars  int
	clauses [][]int
	assumed []Lit
}

var _ Backend = (*GophersatBackend)(nil)

// NewGophersatBackend returns an empty [GophersatBackend].
func NewGophersatBackend() *GophersatBackend {
	return &GophersatBackend{}
}

func (b *GophersatBackend) NewVars(n int) int {
	first := b.nbVars + 1
	b.nbVars += n
	return first
}

func (b *GophersatBackend) NumVars() int { return b.nbVars }

func (b *GophersatBackend) AddClause(lits ...Lit) error {
	for _, l := range lits {
		if l.Var() < 1 || l.Var() > b.nbVars {
			return fmt.Errorf("%w: literal %d out of range [1,%d]", ErrCapacity, l, b.nbVars)
		}
	}
	ints := make([]int, len(lits))
	for i, l := range lits {
		ints[i] = int(l)
	}
	b.clauses = append(b.clauses, ints)
	return nil
}

func (b *GophersatBackend) Assume(lits ...Lit) {
	b.assumed = append(b.assumed, lits...)
}

func (b *GophersatBackend) Incremental() bool { return false }

func (b *GophersatBackend) Reset() {
	b.nbVars = 0
	b.clauses = nil
	b.assumed = nil
}

func (b *GophersatBackend) Solve(ctx context.Context) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{Status: Unknown}, err
	}
	constrs := make([]solver.PBConstr, 0, len(b.clauses)+len(b.assumed))
	for _, c := range b.clauses {
		constrs = append(constrs, solver.PropClause(c...))
	}
	for _, a := range b.assumed {
		constrs = append(constrs, solver.PropClause(int(a)))
	}
	b.assumed = nil
	prob := solver.ParsePBConstrs(constrs)
	s := solver.New(prob)
	switch s.Solve() {
	case solver.Sat:
		model := s.Model()
		out := make([]bool, len(model)+1)
		copy(out[1:], model)
		return Result{Status: Sat, Model: out}, nil
	case solver.Unsat:
		return Result{Status: Unsat}, nil
	default:
		return Result{Status: Unknown}, fmt.Errorf("%w: gophersat returned an indeterminate status", ErrBackend)
	}
}
