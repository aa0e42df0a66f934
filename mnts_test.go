package gochroma_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/rhansen/gochroma"
)

const testSeed = 12345

func unitWeights(n int) []int {
	w := make([]int, n)
	for i := range w {
		w[i] = 1
	}
	return w
}

func TestRunMNTSIndependentSet(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		desc    string
		g       *Graph
		alpha   int // independence number
		minWant int // MNTS must reach at least this
	}{
		{"C5", cycle(5), 2, 2},
		// Every maximal independent set of Petersen has 3 or 4 members,
		// so even a single greedy fill reaches 3.
		{"Petersen", petersen(), 4, 3},
		{"K4", complete(4), 1, 1},
		{"K33", completeBipartite(3, 3), 3, 3},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()
			adj := make([]Bitset, tc.g.N())
			for v := 0; v < tc.g.N(); v++ {
				adj[v] = tc.g.Neighbors(v)
			}
			res := RunMNTS(adj, unitWeights(tc.g.N()), tc.g.N()+1, 1000, 8, testSeed)
			require.GreaterOrEqual(t, len(res.Set), tc.minWant)
			assert.LessOrEqual(t, len(res.Set), tc.alpha)
			assert.Equal(t, len(res.Set), res.Weight, "unit weights: weight equals cardinality")
			for i, u := range res.Set {
				for _, v := range res.Set[i+1:] {
					assert.False(t, tc.g.HasEdge(u, v), "returned set has edge {%d,%d}", u, v)
				}
			}
		})
	}
}

func TestRunMNTSWeighted(t *testing.T) {
	t.Parallel()
	// A triangle with one heavy vertex: the best independent set is the
	// single heavy vertex, not either light one.
	g := complete(3)
	adj := []Bitset{g.Neighbors(0), g.Neighbors(1), g.Neighbors(2)}
	res := RunMNTS(adj, []int{1, 10, 1}, 100, 200, 8, testSeed)
	require.Equal(t, 10, res.Weight)
	require.Equal(t, []int{1}, res.Set)
}

func TestRunMNTSDeterministic(t *testing.T) {
	t.Parallel()
	g := petersen()
	adj := make([]Bitset, g.N())
	for v := 0; v < g.N(); v++ {
		adj[v] = g.Neighbors(v)
	}
	a := RunMNTS(adj, unitWeights(g.N()), g.N()+1, 500, 8, testSeed)
	b := RunMNTS(adj, unitWeights(g.N()), g.N()+1, 500, 8, testSeed)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed, different result (-first +second):\n%s", diff)
	}
}

func TestRunMNTSEmpty(t *testing.T) {
	t.Parallel()
	res := RunMNTS(nil, nil, 1, 10, 2, testSeed)
	assert.Empty(t, res.Set)
	assert.Zero(t, res.Weight)
}

func TestCliqueBound(t *testing.T) {
	t.Parallel()
	cfg := ZykovColorPreset()
	for _, tc := range []struct {
		desc string
		g    *Graph
		want int
	}{
		{"K4", complete(4), 4},
		{"C5", cycle(5), 2},
		{"Petersen", petersen(), 2}, // ω(Petersen) = 2
		{"K3uK5", k3unionK5(), 5},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, CliqueBound(tc.g, cfg))
		})
	}
}
