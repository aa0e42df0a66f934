package gochroma

import (
	"context"
	"fmt"
)

// CEGAREncoding drives counterexample-guided abstraction refinement over
// the Assignment variables: the initial
// abstraction keeps only the per-vertex at-least-one clauses and the
// seed-clique symmetry breaking, leaving every edge constraint out. Each
// tentative model is then checked for monochromatic edges; the configured
// [Checker] turns every violation into refinement clauses, and the loop
// re-solves until the model is a proper coloring or the abstraction
// becomes unsatisfiable (at which point the concrete problem is too,
// since refinement only ever adds clauses the concrete problem implies).
type CEGAREncoding struct {
	b       Backend
	g       *Graph
	k       int
	checker Checker
	x       [][]Lit // x[v][i], as in AssignmentEncoding

	// Rounds counts refinement iterations; Refinements counts clauses
	// added by the checker across all rounds.
	Rounds      int
	Refinements int
}

// NewCEGAREncoding builds the abstraction for k colors over g on b, seeded
// with the clique q.
func NewCEGAREncoding(b Backend, g *Graph, k int, q []int, checker Checker) (*CEGAREncoding, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", ErrConfig, k)
	}
	e := &CEGAREncoding{b: b, g: g, k: k, checker: checker}
	e.x = make([][]Lit, g.N())
	for v := 0; v < g.N(); v++ {
		first := b.NewVars(k)
		row := make([]Lit, k)
		for i := 0; i < k; i++ {
			row[i] = Lit(first + i)
		}
		e.x[v] = row
		if err := b.AddClause(row...); err != nil {
			return nil, err
		}
	}
	for i, qv := range q {
		if i >= k {
			break
		}
		if err := b.AddClause(e.x[qv][i]); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Solve runs the refinement loop to completion.
func (e *CEGAREncoding) Solve(ctx context.Context) (Result, Coloring, error) {
	for {
		e.Rounds++
		res, err := e.b.Solve(ctx)
		if err != nil {
			return Result{}, nil, err
		}
		if res.Status != Sat {
			return res, nil, nil
		}
		c := e.decode(res.Model)
		violated := monochromaticEdges(e.g, c)
		if len(violated) == 0 {
			return res, c, nil
		}
		for _, edge := range violated {
			if err := e.refine(edge, c[edge.a]); err != nil {
				return Result{}, nil, err
			}
		}
	}
}

// decode reads a tentative coloring out of an abstraction model. Unlike
// [AssignmentEncoding.Decode] multiple color literals may be true for one
// vertex (the abstraction carries no at-most-one); the lowest is taken.
func (e *CEGAREncoding) decode(model []bool) Coloring {
	c := make(Coloring, e.g.N())
	for v := range c {
		for i, lit := range e.x[v] {
			if model[lit.Var()] {
				c[v] = i
				break
			}
		}
	}
	return c
}

func monochromaticEdges(g *Graph, c Coloring) []pairKey {
	var out []pairKey
	for u := 0; u < g.N(); u++ {
		for v := range g.Neighbors(u).Range {
			if v > u && c[u] == c[v] {
				out = append(out, makePair(u, v))
			}
		}
	}
	return out
}

// refine adds the checker's clauses ruling out the monochromatic edge
// {edge.a, edge.b} at color i.
func (e *CEGAREncoding) refine(edge pairKey, i int) error {
	u, v := edge.a, edge.b
	addExcl := func(a, b, col int) error {
		e.Refinements++
		return e.b.AddClause(e.x[a][col].Negate(), e.x[b][col].Negate())
	}
	switch e.checker {
	case Naive:
		return addExcl(u, v, i)
	case SparseTriangles:
		if err := addExcl(u, v, i); err != nil {
			return err
		}
		common := e.g.Neighbors(u).Clone().And(e.g.Neighbors(v))
		for w := range common.Range {
			if err := addExcl(u, w, i); err != nil {
				return err
			}
			if err := addExcl(v, w, i); err != nil {
				return err
			}
		}
		return nil
	case Paper:
		for col := 0; col < e.k; col++ {
			if err := addExcl(u, v, col); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown checker %v", ErrConfig, e.checker)
	}
}
