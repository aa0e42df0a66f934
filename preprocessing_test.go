package gochroma_test

import (
	"sort"
	"testing"

	. "github.com/rhansen/gochroma"
)

func TestPreprocessSeedClique(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		desc string
		g    *Graph
		want int
	}{
		{"K4", complete(4), 4},
		{"C5", cycle(5), 2},
		{"Petersen", petersen(), 2},
		{"Grotzsch", grotzsch(), 2},
		{"K3uK5", k3unionK5(), 5},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()
			pre := Preprocess(tc.g, false)
			if got := len(pre.SeedClique); got != tc.want {
				t.Errorf("seed clique size = %d, want %d", got, tc.want)
			}
			// The seed must actually be a clique.
			for i, u := range pre.SeedClique {
				for _, v := range pre.SeedClique[i+1:] {
					if !tc.g.HasEdge(u, v) {
						t.Errorf("seed clique pair {%d,%d} is not an edge", u, v)
					}
				}
			}
		})
	}
}

func TestPreprocessReductionKeepsDenseComponent(t *testing.T) {
	t.Parallel()
	pre := Preprocess(k3unionK5(), true)
	// The K5 vertices (3..7) must all survive; the K3 vertices have
	// degree 2 < 5 and may go.
	kept := make(map[int]bool)
	for _, v := range pre.ToOriginal {
		kept[v] = true
	}
	for v := 3; v < 8; v++ {
		if !kept[v] {
			t.Errorf("reduction removed K5 vertex %d", v)
		}
	}
	if pre.Reduced.N() != 5 {
		t.Errorf("reduced graph has %d vertices, want 5 (K5 only)", pre.Reduced.N())
	}
}

func TestPreprocessRecolor(t *testing.T) {
	t.Parallel()
	// K4 with a pendant vertex: the pendant has degree 1 < 4 and is
	// removed, then recolored from its restored neighborhood.
	g := NewGraph(5)
	for u := 0; u < 4; u++ {
		for v := u + 1; v < 4; v++ {
			g.AddEdge(u, v)
		}
	}
	g.AddEdge(0, 4)
	pre := Preprocess(g, true)
	if pre.Reduced.N() != 4 {
		t.Fatalf("reduced graph has %d vertices, want 4", pre.Reduced.N())
	}
	reduced := Coloring{0, 1, 2, 3}
	full := pre.Recolor(reduced)
	if err := full.Verify(g); err != nil {
		t.Errorf("recolored coloring is improper: %v", err)
	}
}

func TestPreprocessDominatedRemoval(t *testing.T) {
	t.Parallel()
	// 4-cycle 0-1-2-3-0: every vertex has degree 2, equal to the seed
	// clique's size, so none goes by the low-degree rule at first. Vertex 2
	// is outside the clique {0,1}, N(2) = {1,3} ⊆ N(0) = {1,3} and 0, 2 are
	// non-adjacent, so 2 is removed as dominated; 3 then drops to degree 1.
	g := NewGraph(4)
	g.AddEdge(0, 1)
	g.AddEdge(1, 2)
	g.AddEdge(2, 3)
	g.AddEdge(3, 0)
	pre := Preprocess(g, true)
	if pre.Reduced.N() >= 3 {
		t.Errorf("dominated vertex not removed from the 4-cycle, reduced n = %d", pre.Reduced.N())
	}
	full := pre.Recolor(GreedyUpperBound(pre.Reduced))
	if err := full.Verify(g); err != nil {
		t.Errorf("recolored coloring is improper: %v", err)
	}
}

func TestReducedSeedClique(t *testing.T) {
	t.Parallel()
	pre := Preprocess(k3unionK5(), true)
	q := pre.ReducedSeedClique()
	if len(q) != len(pre.SeedClique) {
		t.Fatalf("relabeled clique has %d members, want %d", len(q), len(pre.SeedClique))
	}
	sort.Ints(q)
	for _, v := range q {
		if v < 0 || v >= pre.Reduced.N() {
			t.Errorf("relabeled clique member %d out of reduced range [0,%d)", v, pre.Reduced.N())
		}
	}
	for i, u := range q {
		for _, v := range q[i+1:] {
			if !pre.Reduced.HasEdge(u, v) {
				t.Errorf("relabeled pair {%d,%d} is not an edge of the reduced graph", u, v)
			}
		}
	}
}
