package gochroma

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

// A CNFRecorder implements [Backend] by recording clauses without ever
// solving, backing the write-cnf-only sink: an encoder is run
// against it and the accumulated formula is then written out as DIMACS
// CNF. Assumptions are recorded as unit clauses, matching how a
// non-incremental solve would pin them.
type CNFRecorder struct {
	nbVars  int
	clauses [][]Lit
}

var _ Backend = (*CNFRecorder)(nil)

// NewCNFRecorder returns an empty [CNFRecorder].
func NewCNFRecorder() *CNFRecorder {
	return &CNFRecorder{}
}

func (r *CNFRecorder) NewVars(n int) int {
	first := r.nbVars + 1
	r.nbVars += n
	return first
}

func (r *CNFRecorder) NumVars() int { return r.nbVars }

func (r *CNFRecorder) AddClause(lits ...Lit) error {
	for _, l := range lits {
		if l.Var() < 1 || l.Var() > r.nbVars {
			return fmt.Errorf("%w: literal %d out of range [1,%d]", ErrCapacity, l, r.nbVars)
		}
	}
	r.clauses = append(r.clauses, append([]Lit(nil), lits...))
	return nil
}

func (r *CNFRecorder) Assume(lits ...Lit) {
	for _, l := range lits {
		r.clauses = append(r.clauses, []Lit{l})
	}
}

func (r *CNFRecorder) Incremental() bool { return true }

func (r *CNFRecorder) Reset() {
	r.nbVars = 0
	r.clauses = nil
}

// Solve always fails: a recorder has no solving capability.
func (r *CNFRecorder) Solve(context.Context) (Result, error) {
	return Result{Status: Unknown}, fmt.Errorf("%w: CNFRecorder cannot solve", ErrBackend)
}

// NumClauses returns the number of clauses recorded so far.
func (r *CNFRecorder) NumClauses() int { return len(r.clauses) }

// WriteDIMACS writes the recorded formula to w in DIMACS CNF format.
func (r *CNFRecorder) WriteDIMACS(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "p cnf %d %d\n", r.nbVars, len(r.clauses))
	for _, cl := range r.clauses {
		for _, l := range cl {
			fmt.Fprintf(bw, "%d ", int(l))
		}
		fmt.Fprintln(bw, "0")
	}
	return bw.Flush()
}
