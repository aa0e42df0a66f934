package gochroma

import "math/bits"

// A Bitset is a fixed-width bit vector used to hold one vertex's adjacency
// row, or any other vertex subset (a clique, an independent set, the active
// roots of a Zykov contraction). Indices run 0..width-1; width is not stored
// on the Bitset itself, callers are expected to know it from the owning
// [Graph].
type Bitset []uint64

// NewBitset returns a zeroed [Bitset] wide enough to hold n bits.
func NewBitset(n int) Bitset {
	return make(Bitset, (n+63)/64)
}

// Set sets bit i.
func (b Bitset) Set(i int) { b[i/64] |= 1 << uint(i%64) }

// Clear clears bit i.
func (b Bitset) Clear(i int) { b[i/64] &^= 1 << uint(i%64) }

// Test reports whether bit i is set.
func (b Bitset) Test(i int) bool { return b[i/64]&(1<<uint(i%64)) != 0 }

// Count returns the number of set bits.
func (b Bitset) Count() int {
	n := 0
	for _, w := range b {
		n += bits.OnesCount64(w)
	}
	return n
}

// Clone returns an independent copy of b.
func (b Bitset) Clone() Bitset {
	c := make(Bitset, len(b))
	copy(c, b)
	return c
}

// And sets b to the bitwise AND of b and o, returning b.
func (b Bitset) And(o Bitset) Bitset {
	for i := range b {
		b[i] &= o[i]
	}
	return b
}

// AndNot sets b to b &^ o, returning b.
func (b Bitset) AndNot(o Bitset) Bitset {
	for i := range b {
		b[i] &^= o[i]
	}
	return b
}

// Or sets b to the bitwise OR of b and o, returning b.
func (b Bitset) Or(o Bitset) Bitset {
	for i := range b {
		b[i] |= o[i]
	}
	return b
}

// Empty reports whether no bit is set.
func (b Bitset) Empty() bool {
	for _, w := range b {
		if w != 0 {
			return false
		}
	}
	return true
}

// Subset reports whether every bit set in b is also set in o (b ⊆ o).
func (b Bitset) Subset(o Bitset) bool {
	for i := range b {
		if b[i]&^o[i] != 0 {
			return false
		}
	}
	return true
}

// Range calls yield for every set bit in b, in increasing order, stopping
// early if yield returns false.
func (b Bitset) Range(yield func(int) bool) {
	for wi, w := range b {
		for w != 0 {
			j := bits.TrailingZeros64(w)
			if !yield(wi*64 + j) {
				return
			}
			w &^= 1 << uint(j)
		}
	}
}

// A Graph is an undirected, loopless graph on vertices {0,...,n-1}, held as
// n adjacency bitsets of width n. It is immutable after construction;
// [Preprocess] and the Zykov propagator build derived graphs rather than
// mutate one in place.
type Graph struct {
	n    int
	adj  []Bitset
	comp []Bitset // lazily built complement; nil until first Complement call
}

// NewGraph returns an edgeless graph on n vertices.
func NewGraph(n int) *Graph {
	adj := make([]Bitset, n)
	for v := range adj {
		adj[v] = NewBitset(n)
	}
	return &Graph{n: n, adj: adj}
}

// N returns the number of vertices.
func (g *Graph) N() int { return g.n }

// AddEdge adds the undirected edge {u,v}. u == v is a no-op (no self-loops).
func (g *Graph) AddEdge(u, v int) {
	if u == v {
		return
	}
	g.adj[u].Set(v)
	g.adj[v].Set(u)
	g.comp = nil
}

// HasEdge reports whether {u,v} is an edge.
func (g *Graph) HasEdge(u, v int) bool { return g.adj[u].Test(v) }

// Neighbors returns u's adjacency row. The caller must not mutate it.
func (g *Graph) Neighbors(u int) Bitset { return g.adj[u] }

// Degree returns the number of neighbors of u.
func (g *Graph) Degree(u int) int { return g.adj[u].Count() }

// NumEdges returns the number of edges in g.
func (g *Graph) NumEdges() int {
	m := 0
	for v := 0; v < g.n; v++ {
		m += g.adj[v].Count()
	}
	return m / 2
}

// Complement returns the complement graph Ḡ, where {u,v} is an edge iff it
// is not an edge of g and u != v. The result is cached.
func (g *Graph) Complement() []Bitset {
	if g.comp != nil {
		return g.comp
	}
	comp := make([]Bitset, g.n)
	all := NewBitset(g.n)
	for i := 0; i < g.n; i++ {
		all.Set(i)
	}
	for v := 0; v < g.n; v++ {
		row := all.Clone()
		row.AndNot(g.adj[v])
		row.Clear(v)
		comp[v] = row
	}
	g.comp = comp
	return comp
}

// Subgraph returns the induced subgraph on the vertices in keep, relabeled
// densely in increasing order of their original index. It also returns the
// relabeling: newToOld[i] is the original vertex id of new vertex i.
func (g *Graph) Subgraph(keep Bitset) (sub *Graph, newToOld []int) {
	for v := range keep.Range {
		newToOld = append(newToOld, v)
	}
	oldToNew := make(map[int]int, len(newToOld))
	for i, v := range newToOld {
		oldToNew[v] = i
	}
	sub = NewGraph(len(newToOld))
	for i, u := range newToOld {
		for v := range g.adj[u].Range {
			if j, ok := oldToNew[v]; ok && j > i {
				sub.AddEdge(i, j)
			}
		}
	}
	return sub, newToOld
}
