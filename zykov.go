package gochroma

import "fmt"

// pairKey canonicalizes an unordered vertex pair for map-based storage.
type pairKey struct{ a, b int }

func makePair(u, v int) pairKey {
	if u > v {
		u, v = v, u
	}
	return pairKey{u, v}
}

// A ZykovUnionFind is the contraction state the Zykov propagator owns: a
// union-find over V whose roots
// are the active vertices, plus an edge relation over roots induced by the
// original E and every s[u,v]=false assignment. The invariant merging two
// roots is forbidden iff an edge already exists between them is enforced
// by [ZykovUnionFind.Merge].
type ZykovUnionFind struct {
	parent      []int
	inducedEdge map[pairKey]bool
}

// NewZykovUnionFind returns a union-find with every vertex its own root
// and g's edges preloaded as induced edges.
func NewZykovUnionFind(g *Graph) *ZykovUnionFind {
	u := &ZykovUnionFind{
		parent:      make([]int, g.N()),
		inducedEdge: make(map[pairKey]bool),
	}
	for i := range u.parent {
		u.parent[i] = i
	}
	for v := 0; v < g.N(); v++ {
		for w := range g.Neighbors(v).Range {
			if w > v {
				u.inducedEdge[makePair(v, w)] = true
			}
		}
	}
	return u
}

// Find returns the root of x's class, with path halving.
func (u *ZykovUnionFind) Find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

// Merge unions the classes of a and b. It panics wrapping [ErrInvariant]
// if an induced edge already connects their roots, since that would mean
// the caller is attempting to assign the same color to two vertices the
// propagator has already separated.
func (u *ZykovUnionFind) Merge(a, b int) {
	ra, rb := u.Find(a), u.Find(b)
	if ra == rb {
		return
	}
	if u.inducedEdge[makePair(ra, rb)] {
		panic(fmt.Errorf("%w: zykov merge of roots %d,%d with an induced edge between them", ErrInvariant, ra, rb))
	}
	// Migrate rb's induced edges onto ra so later Find(rb) callers still
	// see them; edges are keyed by root pair, so every edge touching rb
	// must be re-keyed.
	for k, v := range u.inducedEdge {
		if !v {
			continue
		}
		switch rb {
		case k.a:
			delete(u.inducedEdge, k)
			u.inducedEdge[makePair(ra, k.b)] = true
		case k.b:
			delete(u.inducedEdge, k)
			u.inducedEdge[makePair(ra, k.a)] = true
		}
	}
	u.parent[rb] = ra
}

// HasInducedEdge reports whether an edge connects the current roots of a
// and b (so merging them is currently forbidden).
func (u *ZykovUnionFind) HasInducedEdge(a, b int) bool {
	ra, rb := u.Find(a), u.Find(b)
	if ra == rb {
		return false
	}
	return u.inducedEdge[makePair(ra, rb)]
}

// Roots returns the distinct active roots, in increasing order.
func (u *ZykovUnionFind) Roots() []int {
	seen := make(map[int]bool)
	var roots []int
	for i := range u.parent {
		r := u.Find(i)
		if !seen[r] {
			seen[r] = true
			roots = append(roots, r)
		}
	}
	return roots
}

// A ZykovPropagator replays a tentative SAT model into a [ZykovUnionFind],
// checks the contraction invariants, and decodes it into a [Coloring].
// Neither backend exposes an attachable IPASIR-UP style trail, so the
// assign/unassign hooks are driven by full-model replay: the journal
// suffices to reconstruct the active root set and induced edges by replay
// from level 0.
type ZykovPropagator struct {
	g       *Graph
	uf      *ZykovUnionFind
	journal []zykovEvent
}

// zykovEvent is one journal entry: a single s[u,v] assignment and the
// decision level it arrived at.
type zykovEvent struct {
	u, v  int
	same  bool
	level int
}

// NewZykovPropagator returns a propagator over g with no contractions yet.
func NewZykovPropagator(g *Graph) *ZykovPropagator {
	return &ZykovPropagator{g: g, uf: NewZykovUnionFind(g)}
}

// Assign processes one s[u,v] assignment at the given decision level:
// true unions u and v's roots, false records an induced edge between them
// (mirroring an assign(lit, level) trail callback). The event is journaled
// so
// [ZykovPropagator.Unassign] can return to any earlier level. It panics
// wrapping [ErrInvariant] via [ZykovUnionFind.Merge] if the assignment is
// inconsistent with an already-recorded edge.
func (p *ZykovPropagator) Assign(u, v int, same bool, level int) {
	p.journal = append(p.journal, zykovEvent{u: u, v: v, same: same, level: level})
	p.apply(u, v, same)
}

func (p *ZykovPropagator) apply(u, v int, same bool) {
	if same {
		p.uf.Merge(u, v)
		return
	}
	ru, rv := p.uf.Find(u), p.uf.Find(v)
	if ru != rv {
		p.uf.inducedEdge[makePair(ru, rv)] = true
	}
}

// Unassign restores the state at levelUpTo, mirroring an
// unassign(level_up_to) trail callback: journal entries above that level
// are dropped and the survivors replayed from g's base state.
func (p *ZykovPropagator) Unassign(levelUpTo int) {
	kept := p.journal[:0]
	for _, ev := range p.journal {
		if ev.level <= levelUpTo {
			kept = append(kept, ev)
		}
	}
	p.journal = kept
	p.uf = NewZykovUnionFind(p.g)
	for _, ev := range p.journal {
		p.apply(ev.u, ev.v, ev.same)
	}
}

// Replay resets the propagator and applies every s[u,v]=true pair in
// merges, in order, as level-0 events.
func (p *ZykovPropagator) Replay(merges []pairKey) {
	p.journal = p.journal[:0]
	p.uf = NewZykovUnionFind(p.g)
	for _, m := range merges {
		p.Assign(m.a, m.b, true, 0)
	}
}

// Roots returns the active roots after the last replay; this count is the
// coloring's color count and is always >= ω(induced graph) >= ω(g).
func (p *ZykovPropagator) Roots() []int { return p.uf.Roots() }

// Decode assigns each active root a distinct color index (by increasing
// root id) and returns the resulting [Coloring]. Soundness follows
// directly from [ZykovUnionFind.Merge]'s invariant: no two vertices that
// ever shared a root were ever connected by a g-edge, because g's edges
// are preloaded as induced edges at construction.
func (p *ZykovPropagator) Decode() Coloring {
	roots := p.uf.Roots()
	colorOf := make(map[int]int, len(roots))
	for i, r := range roots {
		colorOf[r] = i
	}
	c := make(Coloring, p.g.N())
	for v := range c {
		c[v] = colorOf[p.uf.Find(v)]
	}
	return c
}

// sClass returns the literal representing "u and v are in the same color
// class" for u != v, or (0, true) if {u,v} is already an edge of g (in
// which case the pair can never be merged and no SAT variable is
// allocated for it; the caller should treat it as a hard-false literal).
func sClass(vars map[pairKey]Lit, g *Graph, u, v int) (lit Lit, isEdge bool) {
	if g.HasEdge(u, v) {
		return 0, true
	}
	return vars[makePair(u, v)], false
}

// A ZykovEncoding builds the Zykov contraction CNF: one s[u,v]
// variable per non-adjacent pair, transitivity clauses closing the
// same-class relation, and an at-most-k bound over a derived "class
// representative" indicator per vertex (r[v] true iff v is the
// lowest-indexed vertex in its class), encoded with a [Totalizer].
// Dominated-vertex decisions are realized as unit clauses
// asserted up front, since a safe dominated merge never needs to be
// reconsidered.
type ZykovEncoding struct {
	b    Backend
	g    *Graph
	k    int
	s    map[pairKey]Lit
	rep  []Lit
	card *Totalizer
}

// NewZykovEncoding builds the encoding for k colors over g on b. cfg
// controls whether dominated-vertex pre-assertion runs (cfg.DominatedDecide).
func NewZykovEncoding(b Backend, g *Graph, k int, cfg Config) (*ZykovEncoding, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", ErrConfig, k)
	}
	e := &ZykovEncoding{b: b, g: g, k: k, s: make(map[pairKey]Lit)}

	for u := 0; u < g.N(); u++ {
		for v := u + 1; v < g.N(); v++ {
			if g.HasEdge(u, v) {
				continue
			}
			e.s[makePair(u, v)] = Lit(b.NewVars(1))
		}
	}

	// Transitivity, all three orientations per triple a<b<c: any two of
	// {S(a,b), S(b,c), S(a,c)} imply the third. An orientation whose
	// antecedent contains a graph edge is skipped (the antecedent is
	// structurally false); one whose conclusion is a graph edge shrinks
	// to a binary clause forbidding the antecedent.
	for a := 0; a < g.N(); a++ {
		for bV := a + 1; bV < g.N(); bV++ {
			for c := bV + 1; c < g.N(); c++ {
				ab, abEdge := sClass(e.s, g, a, bV)
				bc, bcEdge := sClass(e.s, g, bV, c)
				ac, acEdge := sClass(e.s, g, a, c)
				type orient struct {
					p1, p2, concl    Lit
					p1E, p2E, conclE bool
				}
				for _, o := range []orient{
					{ab, bc, ac, abEdge, bcEdge, acEdge},
					{ab, ac, bc, abEdge, acEdge, bcEdge},
					{ac, bc, ab, acEdge, bcEdge, abEdge},
				} {
					if o.p1E || o.p2E {
						continue
					}
					clause := []Lit{o.p1.Negate(), o.p2.Negate()}
					if !o.conclE {
						clause = append(clause, o.concl)
					}
					if err := b.AddClause(clause...); err != nil {
						return nil, err
					}
				}
			}
		}
	}

	// nonRep[v] marks representative indicators a dominated merge has
	// already decided: once s[u,v] is unit-asserted with u < v, v can
	// never be the lowest member of its class.
	nonRep := make([]bool, g.N())
	if cfg.DominatedDecide {
		for v := 0; v < g.N(); v++ {
			for u := 0; u < g.N(); u++ {
				if u == v || g.HasEdge(u, v) {
					continue
				}
				closedU := g.Neighbors(u).Clone()
				closedU.Set(u)
				if g.Neighbors(v).Subset(closedU) {
					if err := b.AddClause(e.s[makePair(u, v)]); err != nil {
						return nil, err
					}
					nonRep[max(u, v)] = true
					break
				}
			}
		}
	}

	// Representative indicators: rep[v] <=> no u<v shares v's class.
	e.rep = make([]Lit, g.N())
	for v := 0; v < g.N(); v++ {
		r := Lit(b.NewVars(1))
		e.rep[v] = r
		var sameAsSmaller []Lit
		for u := 0; u < v; u++ {
			lit, isEdge := sClass(e.s, g, u, v)
			if isEdge {
				continue
			}
			sameAsSmaller = append(sameAsSmaller, lit)
			if err := b.AddClause(r.Negate(), lit.Negate()); err != nil {
				return nil, err
			}
		}
		clause := append([]Lit{r}, sameAsSmaller...)
		if err := b.AddClause(clause...); err != nil {
			return nil, err
		}
	}

	inputs := e.rep
	if cfg.RemoveCj {
		// Indicators already forced false contribute nothing to the
		// class count, so their cardinality clauses are dropped by
		// excluding them from the totalizer's inputs.
		inputs = nil
		for v, r := range e.rep {
			if nonRep[v] {
				if err := b.AddClause(r.Negate()); err != nil {
					return nil, err
				}
				continue
			}
			inputs = append(inputs, r)
		}
	}
	card, err := NewTotalizer(b, inputs)
	if err != nil {
		return nil, err
	}
	e.card = card
	if pb, ok := b.(PropagatorBackend); ok {
		pb.ConnectPropagator(func(model []bool) error {
			_, err := e.replayDecode(model)
			return err
		})
	}
	// The at-most-k bound itself is never asserted permanently; the
	// driver pins it per solve via [Totalizer.AtMostLit] and
	// [Backend.Assume], so the same encoding serves every k of an
	// incremental BottomUp or TopDown sequence.
	return e, nil
}

// Decode turns a satisfying [Result.Model] into a [Coloring] by replaying
// every true s[u,v] pair through a [ZykovPropagator].
func (e *ZykovEncoding) Decode(model []bool) Coloring {
	p := NewZykovPropagator(e.g)
	var merges []pairKey
	for pair, lit := range e.s {
		if model[lit.Var()] {
			merges = append(merges, pair)
		}
	}
	p.Replay(merges)
	return p.Decode()
}

// CliqueBound finds a large clique of g (see mntsClique) and returns its
// size, honoring cfg.MntsLength/MntsDepth as the iteration budget and
// per-restart length. A clique of size c proves χ(g) >= c, so every
// k < c is infeasible.
func CliqueBound(g *Graph, cfg Config) int {
	if g.N() == 0 {
		return 0
	}
	if cfg.MntsLength <= 0 {
		cfg.MntsLength = 1000
	}
	return len(mntsClique(g, cfg))
}
