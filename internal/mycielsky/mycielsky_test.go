package mycielsky_test

import (
	"testing"

	"github.com/rhansen/gochroma"
	"github.com/rhansen/gochroma/internal/mycielsky"
)

func k2() *gochroma.Graph {
	g := gochroma.NewGraph(2)
	g.AddEdge(0, 1)
	return g
}

func cycle(n int) *gochroma.Graph {
	g := gochroma.NewGraph(n)
	for v := 0; v < n; v++ {
		g.AddEdge(v, (v+1)%n)
	}
	return g
}

func petersen() *gochroma.Graph {
	g := gochroma.NewGraph(10)
	for v := 0; v < 5; v++ {
		g.AddEdge(v, (v+1)%5)
		g.AddEdge(v, v+5)
		g.AddEdge(5+v, 5+(v+2)%5)
	}
	return g
}

func TestConstructK2IsC5(t *testing.T) {
	t.Parallel()
	// M(K2) is the 5-cycle.
	m := mycielsky.Construct(k2())
	if m.N() != 5 {
		t.Fatalf("N() = %d, want 5", m.N())
	}
	if m.NumEdges() != 5 {
		t.Fatalf("NumEdges() = %d, want 5", m.NumEdges())
	}
	for v := 0; v < 5; v++ {
		if m.Degree(v) != 2 {
			t.Errorf("Degree(%d) = %d, want 2", v, m.Degree(v))
		}
	}
}

func TestConstructC5IsGrotzsch(t *testing.T) {
	t.Parallel()
	m := mycielsky.Construct(cycle(5))
	if m.N() != 11 {
		t.Fatalf("N() = %d, want 11", m.N())
	}
	if m.NumEdges() != 20 {
		t.Fatalf("NumEdges() = %d, want 20", m.NumEdges())
	}
	// The Mycielskian of a triangle-free graph is triangle-free.
	for u := 0; u < m.N(); u++ {
		for v := u + 1; v < m.N(); v++ {
			if !m.HasEdge(u, v) {
				continue
			}
			for w := v + 1; w < m.N(); w++ {
				if m.HasEdge(u, w) && m.HasEdge(v, w) {
					t.Fatalf("triangle {%d,%d,%d} in M(C5)", u, v, w)
				}
			}
		}
	}
}

func TestOracleRaisesOddHoleGraphs(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		desc string
		g    *gochroma.Graph
		want bool
	}{
		{"C5", cycle(5), true},
		{"C7", cycle(7), true},
		{"Petersen", petersen(), true},
		{"C4", cycle(4), false}, // bipartite, no odd hole
		{"C6", cycle(6), false},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()
			raised, witness := mycielsky.Oracle{}.RaiseBound(tc.g, 2)
			if raised != tc.want {
				t.Fatalf("RaiseBound = %v, want %v", raised, tc.want)
			}
			if !raised {
				return
			}
			if len(witness) < 5 || len(witness)%2 == 0 {
				t.Fatalf("witness length %d, want odd >= 5", len(witness))
			}
			// Consecutive witness vertices must be adjacent, closing a cycle.
			for i, u := range witness {
				v := witness[(i+1)%len(witness)]
				if !tc.g.HasEdge(u, v) {
					t.Errorf("witness edge {%d,%d} missing", u, v)
				}
			}
		})
	}
}

func TestOracleDeclinesLargerCliques(t *testing.T) {
	t.Parallel()
	// Only the triangle-free (clique bound 2) case is certified.
	if raised, _ := (mycielsky.Oracle{}).RaiseBound(petersen(), 3); raised {
		t.Error("RaiseBound certified a raise it cannot prove")
	}
}
