package gochroma

import (
	"context"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

// A MycielskyOracle decides, given a graph and a clique lower bound already
// established, whether a Mycielskian extension certifies clique_lb+1 as a
// valid chromatic lower bound. The default
// implementation lives in internal/mycielsky; gochroma only depends on this
// interface and treats the constructor as an opaque bound oracle.
type MycielskyOracle interface {
	// RaiseBound reports whether g, given a clique of size cliqueLB, can be
	// shown to need cliqueLB+1 colors via a Mycielskian extension, and if
	// so the vertex set certifying it.
	RaiseBound(g *Graph, cliqueLB int) (raised bool, witness []int)
}

// A FractionalOracle returns a fractional chromatic number lower bound for
// g. This is an external collaborator (an LP solve); gochroma depends only
// on this interface and never reimplements the LP itself. The return is a
// float64 throughout: callers take lb = ceil(frac).
type FractionalOracle interface {
	FractionalLowerBound(g *Graph) (frac float64, err error)
}

// DefaultFractionalOracle is a stand-in for the external fractional-χ LP
// routine. It returns the largest of 2, the greedy clique size (χf >= ω)
// and, for non-bipartite graphs, 2.5. The value 2.5 is χf(C5) and exceeds
// χf of longer odd cycles (7/3 for C7), so it is not a lower bound on χf
// for every non-bipartite graph; its ceiling, 3, is a valid lower bound on
// χ for all of them, and callers only use the ceiling.
type DefaultFractionalOracle struct{}

func (DefaultFractionalOracle) FractionalLowerBound(g *Graph) (float64, error) {
	if g.N() == 0 {
		return 0, nil
	}
	if g.NumEdges() == 0 {
		return 1, nil
	}
	candidates := []float64{2, float64(len(greedySeedClique(g)))}
	if !isBipartite(g) {
		candidates = append(candidates, 2.5)
	}
	return floats.Max(candidates), nil
}

// isBipartite BFS-2-colors every component of g.
func isBipartite(g *Graph) bool {
	side := make([]int, g.N())
	for i := range side {
		side[i] = -1
	}
	for s := 0; s < g.N(); s++ {
		if side[s] != -1 {
			continue
		}
		side[s] = 0
		queue := []int{s}
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			for v := range g.Neighbors(u).Range {
				if side[v] == -1 {
					side[v] = 1 - side[u]
					queue = append(queue, v)
				} else if side[v] == side[u] {
					return false
				}
			}
		}
	}
	return true
}

// GreedyUpperBound colors g with the welsh-Powell greedy heuristic (highest
// degree first) and returns the resulting [Coloring]; its
// [Coloring.NumColors] is an upper bound on χ(g).
func GreedyUpperBound(g *Graph) Coloring {
	order := make([]int, g.N())
	for v := range order {
		order[v] = v
	}
	for i := range order {
		best := i
		for j := i + 1; j < len(order); j++ {
			if g.Degree(order[j]) > g.Degree(order[best]) {
				best = j
			}
		}
		order[i], order[best] = order[best], order[i]
	}
	c := make(Coloring, g.N())
	for v := range c {
		c[v] = -1
	}
	for _, v := range order {
		used := NewBitset(g.N())
		for u := range g.Neighbors(v).Range {
			if c[u] >= 0 {
				used.Set(c[u])
			}
		}
		col := 0
		for used.Test(col) {
			col++
		}
		c[v] = col
	}
	return c
}

// Bounds holds the [lb, ub] window a solve starts from.
type Bounds struct {
	LB             int
	UB             int
	UpperColoring  Coloring
	MycielskyBoost bool
}

// ComputeBounds runs the fractional lower bound, the Mycielsky lower bound
// (if cfg.MycielskyLB), and the greedy upper bound concurrently. cliqueLB
// is the largest clique already known (typically the preprocessing seed
// clique's size).
func ComputeBounds(ctx context.Context, g *Graph, cliqueLB int, cfg Config, frac FractionalOracle, myc MycielskyOracle) (Bounds, error) {
	var b Bounds
	var fracLB int
	var upperColoring Coloring
	eg, _ := errgroup.WithContext(ctx)
	eg.Go(func() error {
		f, err := frac.FractionalLowerBound(g)
		if err != nil {
			return err
		}
		fracLB = int(ceilFloat(f))
		return nil
	})
	eg.Go(func() error {
		upperColoring = GreedyUpperBound(g)
		return nil
	})
	var mycRaised bool
	if cfg.MycielskyLB {
		eg.Go(func() error {
			raised, _ := myc.RaiseBound(g, cliqueLB)
			mycRaised = raised
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return Bounds{}, err
	}
	b.UpperColoring = upperColoring
	b.UB = upperColoring.NumColors()
	b.LB = cliqueLB
	if fracLB > b.LB {
		b.LB = fracLB
	}
	if mycRaised {
		b.LB = max(b.LB, cliqueLB+1)
		b.MycielskyBoost = true
	}
	if b.UB < b.LB {
		b.UB = b.LB
	}
	return b, nil
}

func ceilFloat(f float64) float64 {
	i := float64(int64(f))
	if f > i {
		return i + 1
	}
	return i
}
