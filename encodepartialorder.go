package gochroma

import "fmt"

// PartialOrderEncoding builds the Partial-Order CNF: y[v,i]
// means "color(v) <= i" for i in [0,k-2]. By convention y[v,-1] is the
// constant false and y[v,k-1] is the constant true; both are handled
// without materializing a literal for them.
type PartialOrderEncoding struct {
	b Backend
	g *Graph
	k int
	y [][]Lit // y[v][i], i in [0,k-2]; len(y[v]) == k-1
}

// NewPartialOrderEncoding builds the encoding for k colors over g on b,
// seeded with the clique q (q[j] is asserted color j for j < len(q) and
// j < k).
func NewPartialOrderEncoding(b Backend, g *Graph, k int, q []int) (*PartialOrderEncoding, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", ErrConfig, k)
	}
	e := &PartialOrderEncoding{b: b, g: g, k: k}
	width := k - 1
	e.y = make([][]Lit, g.N())
	for v := 0; v < g.N(); v++ {
		row := make([]Lit, width)
		if width > 0 {
			first := b.NewVars(width)
			for i := range row {
				row[i] = Lit(first + i)
			}
		}
		e.y[v] = row
	}
	// Monotonicity: y[v,i] => y[v,i+1] for i < k-2.
	for v := 0; v < g.N(); v++ {
		for i := 0; i+1 < width; i++ {
			if err := b.AddClause(e.y[v][i].Negate(), e.y[v][i+1]); err != nil {
				return nil, err
			}
		}
	}
	// Edge constraints: for every edge {u,v} and every color i in [0,k),
	// not both u and v may be exactly color i.
	for u := 0; u < g.N(); u++ {
		for v := range g.Neighbors(u).Range {
			if v <= u {
				continue
			}
			for i := 0; i < k; i++ {
				cl := []Lit{}
				if lit, ok := e.leAt(u, i); ok {
					cl = append(cl, lit.Negate())
				}
				if lit, ok := e.leAt(u, i-1); ok {
					cl = append(cl, lit)
				}
				if lit, ok := e.leAt(v, i); ok {
					cl = append(cl, lit.Negate())
				}
				if lit, ok := e.leAt(v, i-1); ok {
					cl = append(cl, lit)
				}
				if len(cl) == 0 {
					// Every literal was a boundary constant, so the
					// constraint reduced to the empty clause: both
					// endpoints are pinned to the same color (only
					// reachable at k=1 with an edge present). Encode
					// the contradiction explicitly.
					f := Lit(b.NewVars(1))
					if err := b.AddClause(f); err != nil {
						return nil, err
					}
					if err := b.AddClause(f.Negate()); err != nil {
						return nil, err
					}
					continue
				}
				if err := b.AddClause(cl...); err != nil {
					return nil, err
				}
			}
		}
	}
	for j, qv := range q {
		if j >= k {
			break
		}
		if lit, ok := e.leAt(qv, j); ok {
			if err := b.AddClause(lit); err != nil {
				return nil, err
			}
		}
		if lit, ok := e.leAt(qv, j-1); ok {
			if err := b.AddClause(lit.Negate()); err != nil {
				return nil, err
			}
		}
	}
	return e, nil
}

// leAt returns the literal for "color(v) <= i", and false if i is out of
// [0,k-2] (i.e. the boundary constant applies and no literal is needed: i <
// 0 never holds so its "assert" is a no-op handled by the caller, i >= k-1
// always holds so its "assert" is also a no-op).
func (e *PartialOrderEncoding) leAt(v, i int) (Lit, bool) {
	if i < 0 || i >= e.k-1 {
		return 0, false
	}
	return e.y[v][i], true
}

// Decode turns a satisfying [Result.Model] into a [Coloring].
func (e *PartialOrderEncoding) Decode(model []bool) (Coloring, error) {
	c := make(Coloring, e.g.N())
	for v := range c {
		col := e.k - 1
		for i := 0; i < e.k-1; i++ {
			if model[e.y[v][i].Var()] {
				col = i
				break
			}
		}
		c[v] = col
	}
	return c, nil
}
