package gochroma

import (
	"context"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat/combin"
)

// ZykovSolveStats counts the propagator-side work of one
// [ZykovEncoding.SolveWithPropagator] call.
type ZykovSolveStats struct {
	Decisions             int
	Propagations          int
	CliqueExplanations    int
	MycielskyExplanations int
}

// smallCliqueLimit bounds the exhaustive clique search: up to it the
// subset space is tiny enough to enumerate outright.
const smallCliqueLimit = 12

// exactSmallClique finds a maximum clique of a tiny graph by enumerating
// vertex subsets largest-first.
func exactSmallClique(g *Graph) []int {
	n := g.N()
	for size := n; size >= 1; size-- {
		gen := combin.NewCombinationGenerator(n, size)
		for gen.Next() {
			subset := gen.Combination(nil)
			isClique := true
		pairs:
			for i, u := range subset {
				for _, v := range subset[i+1:] {
					if !g.HasEdge(u, v) {
						isClique = false
						break pairs
					}
				}
			}
			if isClique {
				return subset
			}
		}
	}
	return nil
}

// mntsClique finds a large clique of g: exhaustively for tiny graphs,
// greedily when mntsLength is zero, and via a greedy + [RunMNTS] tabu
// pass over the complement otherwise (a clique of g is an independent set
// of Ḡ).
func mntsClique(g *Graph, cfg Config) []int {
	if g.N() == 0 {
		return nil
	}
	if g.N() <= smallCliqueLimit {
		return exactSmallClique(g)
	}
	greedy := greedySeedClique(g)
	if cfg.MntsLength <= 0 {
		return greedy
	}
	weights := make([]int, g.N())
	for i := range weights {
		weights[i] = 1
	}
	lenImprove := cfg.MntsDepth
	if lenImprove <= 0 {
		lenImprove = 8
	}
	res := RunMNTS(g.Complement(), weights, g.N()+1, cfg.MntsLength, lenImprove, cfg.Seed)
	if len(res.Set) > len(greedy) {
		return res.Set
	}
	return greedy
}

// greedyCommonClique builds a clique inside N(u) ∩ N(v), largest degree
// first. Every member is adjacent to both u and v by construction.
func greedyCommonClique(g *Graph, u, v int) []int {
	candidates := g.Neighbors(u).Clone().And(g.Neighbors(v))
	var clique []int
	var order []int
	for w := range candidates.Range {
		order = append(order, w)
	}
	sort.Slice(order, func(i, j int) bool { return g.Degree(order[i]) > g.Degree(order[j]) })
	for _, w := range order {
		if !candidates.Test(w) {
			continue
		}
		clique = append(clique, w)
		candidates.And(g.Neighbors(w).Clone())
	}
	return clique
}

// mergeLits collects the positive s[u,v] literals of every non-adjacent
// pair within verts ("at least one of these merges must happen"); pairs
// that are g-edges carry no variable and can never merge, so they
// contribute nothing.
func (e *ZykovEncoding) mergeLits(verts []int) []Lit {
	var lits []Lit
	for i, u := range verts {
		for _, v := range verts[i+1:] {
			if lit, isEdge := sClass(e.s, e.g, u, v); !isEdge {
				lits = append(lits, lit)
			}
		}
	}
	return lits
}

// SolveWithPropagator runs one k-colorability decision through the Zykov
// propagator. The trail hooks proper cannot be interleaved
// with either backend's search, so the propagator participates at the two
// points the backends allow: before the solve, where its level-0 bounding
// (clique explanations, Mycielsky explanations, positive/negative
// pruning, the IteratedSEQ upper-bound refresh and the BagSize branching
// decision) is injected as clauses and assumptions; and after it, where
// the model is replayed through the contraction journal and checked
// before decoding. Every injected clause carries the cardinality bound's
// activation literal, so it stays valid across the k-sequence of an
// incremental strategy.
func (e *ZykovEncoding) SolveWithPropagator(ctx context.Context, k int, cfg Config, myc MycielskyOracle) (Result, Coloring, ZykovSolveStats, error) {
	var st ZykovSolveStats
	act, bounded := e.card.AtMostLit(k) // "at least k+1 classes", the escape literal

	// conflict asserts that at least one pair of verts must merge (or the
	// bound's escape literal hold). An empty merge set refutes k outright.
	conflict := func(verts []int) (refuted bool, err error) {
		lits := e.mergeLits(verts)
		refuted = len(lits) == 0
		if bounded {
			lits = append(lits, act)
		}
		if len(lits) > 0 {
			err = e.b.AddClause(lits...)
		}
		return refuted, err
	}

	clique := mntsClique(e.g, cfg)
	if len(clique) > k {
		st.CliqueExplanations++
		refuted, err := conflict(clique)
		if err != nil {
			return Result{}, nil, st, err
		}
		if refuted {
			// The clique survives every contraction: k is refuted
			// without consulting the backend at all.
			return Result{Status: Unsat}, nil, st, nil
		}
	}

	if cfg.MycielskyExplain && myc != nil && k-len(clique) < cfg.MycielskyThresh {
		if raised, witness := myc.RaiseBound(e.g, len(clique)); raised && len(clique)+1 > k {
			st.MycielskyExplanations++
			refuted, err := conflict(witness)
			if err != nil {
				return Result{}, nil, st, err
			}
			if refuted {
				return Result{Status: Unsat}, nil, st, nil
			}
		}
	}

	if bounded && (cfg.PositivePruning || cfg.NegativePruning) {
		if err := e.prunePairs(k, act, cfg, &st); err != nil {
			return Result{}, nil, st, err
		}
	}

	if cfg.ColoringAlg == IteratedSEQ {
		if c := GreedyUpperBound(e.g); c.NumColors() <= k {
			return Result{Status: Sat}, c, st, nil
		}
	}

	if cfg.ZykovBranch == BagSize {
		if u, v, ok := e.bagSizePair(); ok {
			// One Zykov branch at the top of the tree: try the merge
			// side first, fall through to the unconstrained solve on
			// refutation.
			st.Decisions++
			if bounded {
				e.b.Assume(act.Negate())
			}
			e.b.Assume(e.s[makePair(u, v)])
			res, err := e.b.Solve(ctx)
			if err != nil {
				return Result{}, nil, st, err
			}
			if res.Status == Sat {
				c, err := e.decodeChecked(res.Model, k)
				return res, c, st, err
			}
		}
	}

	if bounded {
		e.b.Assume(act.Negate())
	}
	res, err := e.b.Solve(ctx)
	if err != nil {
		return Result{}, nil, st, err
	}
	if res.Status != Sat {
		return res, nil, st, nil
	}
	c, err := e.decodeChecked(res.Model, k)
	st.Propagations += len(e.s)
	return res, c, st, err
}

// pruneLimit bounds how many pruning clauses one call may inject.
func pruneLimit(cfg Config) int {
	if cfg.PropCliqueLimit > 0 {
		return cfg.PropCliqueLimit
	}
	return 64
}

// prunePairs scans non-adjacent pairs for merges that a common-neighbor
// clique already decides. A common
// clique C ⊆ N(u) ∩ N(v) of size >= k makes merging u and v a (k+1)-clique,
// so s[u,v] is forced false; of size exactly k-1 it leaves u no class
// apart from v's under the bound, so s[u,v] is forced true.
func (e *ZykovEncoding) prunePairs(k int, act Lit, cfg Config, st *ZykovSolveStats) error {
	budget := pruneLimit(cfg)
	for u := 0; u < e.g.N() && budget > 0; u++ {
		for v := u + 1; v < e.g.N() && budget > 0; v++ {
			lit, isEdge := sClass(e.s, e.g, u, v)
			if isEdge {
				continue
			}
			common := greedyCommonClique(e.g, u, v)
			switch {
			case cfg.PositivePruning && len(common) >= k:
				if err := e.b.AddClause(act, lit.Negate()); err != nil {
					return err
				}
				st.Propagations++
				budget--
			case cfg.NegativePruning && len(common) == k-1:
				if err := e.b.AddClause(act, lit); err != nil {
					return err
				}
				st.Propagations++
				budget--
			}
		}
	}
	return nil
}

// bagSizePair returns the non-adjacent pair whose closed neighborhoods
// intersect the most, the merge-or-separate question that yields the most
// information either way.
func (e *ZykovEncoding) bagSizePair() (int, int, bool) {
	bestU, bestV, bestScore := -1, -1, -1
	for u := 0; u < e.g.N(); u++ {
		closedU := e.g.Neighbors(u).Clone()
		closedU.Set(u)
		for v := u + 1; v < e.g.N(); v++ {
			if e.g.HasEdge(u, v) {
				continue
			}
			closedV := e.g.Neighbors(v).Clone()
			closedV.Set(v)
			score := closedV.And(closedU).Count()
			if score > bestScore {
				bestU, bestV, bestScore = u, v, score
			}
		}
	}
	return bestU, bestV, bestU != -1
}

// replayDecode replays every s assignment of the model through a
// journaled [ZykovPropagator], one level per assignment, and verifies the
// decoded classes form a proper coloring. This is the check a
// [PropagatorBackend] runs on every model (see NewZykovEncoding); a
// violation is an InvariantError, since the static clauses should make it
// unreachable.
func (e *ZykovEncoding) replayDecode(model []bool) (Coloring, error) {
	p := NewZykovPropagator(e.g)
	pairs := make([]pairKey, 0, len(e.s))
	for pair := range e.s {
		pairs = append(pairs, pair)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].a != pairs[j].a {
			return pairs[i].a < pairs[j].a
		}
		return pairs[i].b < pairs[j].b
	})
	for level, pair := range pairs {
		p.Assign(pair.a, pair.b, model[e.s[pair].Var()], level+1)
	}
	c := p.Decode()
	if err := c.Verify(e.g); err != nil {
		return nil, err
	}
	return c, nil
}

// decodeChecked is replayDecode plus the cardinality-bound check for the
// k the model was solved under.
func (e *ZykovEncoding) decodeChecked(model []bool, k int) (Coloring, error) {
	c, err := e.replayDecode(model)
	if err != nil {
		return nil, err
	}
	if got := c.NumColors(); got > k {
		return nil, fmt.Errorf("%w: zykov model decodes to %d classes under an at-most-%d bound", ErrInvariant, got, k)
	}
	return c, nil
}
