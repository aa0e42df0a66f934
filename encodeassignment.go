package gochroma

import "fmt"

// AssignmentEncoding builds the Assignment CNF: x[v,i] means "v
// takes color i". One at-least-one clause per vertex, one exclusion clause
// per edge per color, an optional pairwise at-most-one per vertex, and a
// seed-clique symmetry breaking assertion.
type AssignmentEncoding struct {
	b Backend
	g *Graph
	k int
	x [][]Lit // x[v][i]
}

// NewAssignmentEncoding builds the encoding for k colors over g on b, seeded
// with the clique q (q[i] is asserted color i for i < len(q) and i < k).
func NewAssignmentEncoding(b Backend, g *Graph, k int, q []int, amo bool) (*AssignmentEncoding, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", ErrConfig, k)
	}
	e := &AssignmentEncoding{b: b, g: g, k: k}
	e.x = make([][]Lit, g.N())
	for v := 0; v < g.N(); v++ {
		first := b.NewVars(k)
		row := make([]Lit, k)
		for i := 0; i < k; i++ {
			row[i] = Lit(first + i)
		}
		e.x[v] = row
	}
	for v := 0; v < g.N(); v++ {
		if err := b.AddClause(e.x[v]...); err != nil {
			return nil, err
		}
		if amo {
			for i := 0; i < k; i++ {
				for j := i + 1; j < k; j++ {
					if err := b.AddClause(e.x[v][i].Negate(), e.x[v][j].Negate()); err != nil {
						return nil, err
					}
				}
			}
		}
	}
	for u := 0; u < g.N(); u++ {
		for v := range g.Neighbors(u).Range {
			if v <= u {
				continue
			}
			for i := 0; i < k; i++ {
				if err := b.AddClause(e.x[u][i].Negate(), e.x[v][i].Negate()); err != nil {
					return nil, err
				}
			}
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

// Decode turns a satisfying [Result.Model] into a [Coloring].
func (e *AssignmentEncoding) Decode(model []bool) (Coloring, error) {
	c := make(Coloring, e.g.N())
	for v := range c {
		c[v] = -1
		for i, lit := range e.x[v] {
			if model[lit.Var()] {
				c[v] = i
				break
			}
		}
		if c[v] == -1 {
			return nil, fmt.Errorf("%w: vertex %d has no true color literal in the model", ErrInvariant, v)
		}
	}
	return c, nil
}

// AssumeColoring returns unit assumptions that pin the model to exactly the
// given coloring, so a decoded solution can be checked by re-solving.
func (e *AssignmentEncoding) AssumeColoring(c Coloring) []Lit {
	lits := make([]Lit, len(c))
	for v, col := range c {
		lits[v] = e.x[v][col]
	}
	return lits
}
