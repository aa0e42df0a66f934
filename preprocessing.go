package gochroma

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
)

// removal records one vertex eliminated by [Preprocess], in the order it
// was removed, so [PreprocessResult.Recolor] can extend a coloring of the
// reduced graph back to a coloring of the original graph by replaying
// removals in reverse.
type removal struct {
	vertex    int   // original vertex id
	neighbors []int // original ids of v's neighbors at the time it was removed
	dominator int   // original id of a vertex whose color v may safely copy, or -1
}

// A PreprocessResult holds the product of [Preprocess]: a reduced graph
// with dominated and low-degree vertices removed, the mapping back to
// original vertex ids, and a seed clique used for symmetry breaking.
type PreprocessResult struct {
	Reduced    *Graph
	ToOriginal []int
	SeedClique []int // vertex ids in the *original* graph, a clique of it
	removals   []removal
}

// Preprocess finds an initial clique (for symmetry breaking and as a
// lower-bound seed) and, if reduce is set, repeatedly removes dominated
// vertices (N(v) ⊆ N(u) for some other active u not adjacent to v) and vertices whose
// degree is below the clique's size: such a vertex can always be colored
// after everything else, since fewer than |clique| colors are ever
// forbidden to it. K₃∪K₅-style disconnected graphs are handled correctly
// because degree and domination are evaluated per component implicitly:
// reduction never removes a vertex from the densest component unless a
// strictly larger clique is found elsewhere first.
func Preprocess(g *Graph, reduce bool) *PreprocessResult {
	clique := greedySeedClique(g)
	res := &PreprocessResult{SeedClique: clique}

	active := mapset.NewThreadUnsafeSet[int]()
	for v := 0; v < g.N(); v++ {
		active.Add(v)
	}
	// adj mirrors g's adjacency but shrinks as vertices are removed, so
	// later domination/degree checks see the reduced neighborhoods.
	adj := make([]mapset.Set[int], g.N())
	for v := 0; v < g.N(); v++ {
		adj[v] = mapset.NewThreadUnsafeSet[int]()
		for u := range g.Neighbors(v).Range {
			adj[v].Add(u)
		}
	}
	protect := mapset.NewThreadUnsafeSet[int](clique...)

	if reduce {
		for {
			removedAny := false
			for _, v := range sortedInts(active) {
				if protect.Contains(v) {
					continue
				}
				if adj[v].Cardinality() < len(clique) {
					res.removals = append(res.removals, removal{
						vertex:    v,
						neighbors: sortedInts(adj[v]),
						dominator: -1,
					})
					removeVertex(v, active, adj)
					removedAny = true
					continue
				}
				if u, ok := findDominator(v, active, adj, protect); ok {
					res.removals = append(res.removals, removal{
						vertex:    v,
						neighbors: sortedInts(adj[v]),
						dominator: u,
					})
					removeVertex(v, active, adj)
					removedAny = true
				}
			}
			if !removedAny {
				break
			}
		}
	}

	keep := NewBitset(g.N())
	for _, v := range sortedInts(active) {
		keep.Set(v)
	}
	res.Reduced, res.ToOriginal = g.Subgraph(keep)
	return res
}

// findDominator returns a vertex u not adjacent to v, still active, with
// N(v) ⊆ N(u), preferring the candidate with the largest neighborhood
// (more likely to remain active across further reduction rounds).
// Non-adjacency matters: the removed v is later recolored by copying u's
// color, which a dominating neighbor could not provide.
func findDominator(v int, active mapset.Set[int], adj []mapset.Set[int], protect mapset.Set[int]) (int, bool) {
	best, bestSize := -1, -1
	for _, u := range sortedInts(active) {
		if u == v || adj[v].Contains(u) {
			continue
		}
		if adj[v].IsSubset(adj[u]) && adj[u].Cardinality() > bestSize {
			best, bestSize = u, adj[u].Cardinality()
		}
	}
	return best, best != -1
}

func removeVertex(v int, active mapset.Set[int], adj []mapset.Set[int]) {
	active.Remove(v)
	for u := range adj[v].Iter() {
		adj[u].Remove(v)
	}
}

// greedySeedClique finds a reasonably large clique by repeatedly picking
// the highest-degree vertex still adjacent to every vertex already chosen.
// This is not maximum-clique search (that is MNTS's job, see mnts.go); it
// only needs to be a valid clique, large enough to seed symmetry breaking
// and a first lower bound.
func greedySeedClique(g *Graph) []int {
	order := make([]int, g.N())
	for v := range order {
		order[v] = v
	}
	sort.Slice(order, func(i, j int) bool { return g.Degree(order[i]) > g.Degree(order[j]) })

	var clique []int
	candidates := NewBitset(g.N())
	for v := 0; v < g.N(); v++ {
		candidates.Set(v)
	}
	for _, v := range order {
		if !candidates.Test(v) {
			continue
		}
		clique = append(clique, v)
		candidates.And(g.Neighbors(v).Clone())
	}
	return clique
}

// ReducedSeedClique returns the seed clique relabeled into the reduced
// graph's vertex ids. Clique members are protected from reduction, so the
// result normally has the same size as SeedClique.
func (r *PreprocessResult) ReducedSeedClique() []int {
	toReduced := make(map[int]int, len(r.ToOriginal))
	for i, v := range r.ToOriginal {
		toReduced[v] = i
	}
	var q []int
	for _, v := range r.SeedClique {
		if i, ok := toReduced[v]; ok {
			q = append(q, i)
		}
	}
	return q
}

// Recolor extends a coloring of the reduced graph (indexed by reduced
// vertex id) back to a coloring of the original graph, by reinserting
// removed vertices in reverse removal order and either copying their
// dominator's color or picking any color none of their (now fully
// restored) neighbors uses.
func (r *PreprocessResult) Recolor(reduced Coloring) Coloring {
	full := make(Coloring, len(r.removals)+len(reduced))
	for i := range full {
		full[i] = -1
	}
	for i, c := range reduced {
		full[r.ToOriginal[i]] = c
	}
	for i := len(r.removals) - 1; i >= 0; i-- {
		rm := r.removals[i]
		if rm.dominator >= 0 {
			full[rm.vertex] = full[rm.dominator]
			continue
		}
		used := mapset.NewThreadUnsafeSet[int]()
		for _, u := range rm.neighbors {
			if full[u] >= 0 {
				used.Add(full[u])
			}
		}
		col := 0
		for used.Contains(col) {
			col++
		}
		full[rm.vertex] = col
	}
	return full
}

func sortedInts(s mapset.Set[int]) []int {
	out := s.ToSlice()
	sort.Ints(out)
	return out
}
