package gochroma_test

import (
	. "github.com/rhansen/gochroma"
)

// Graph builders shared by the package tests. Vertex numbering follows the
// usual constructions so failures are easy to reason about.

func complete(n int) *Graph {
	g := NewGraph(n)
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			g.AddEdge(u, v)
		}
	}
	return g
}

func cycle(n int) *Graph {
	g := NewGraph(n)
	for v := 0; v < n; v++ {
		g.AddEdge(v, (v+1)%n)
	}
	return g
}

// petersen is the Petersen graph: outer 5-cycle 0..4, inner pentagram
// 5..9, spokes v -> v+5.
func petersen() *Graph {
	g := NewGraph(10)
	for v := 0; v < 5; v++ {
		g.AddEdge(v, (v+1)%5)
		g.AddEdge(v, v+5)
		g.AddEdge(5+v, 5+(v+2)%5)
	}
	return g
}

// grotzsch is the Grötzsch graph, the Mycielskian of C5: outer cycle 0..4,
// shadows 5..9 (shadow 5+v adjacent to v's cycle neighbors), apex 10.
func grotzsch() *Graph {
	g := NewGraph(11)
	for v := 0; v < 5; v++ {
		g.AddEdge(v, (v+1)%5)
		g.AddEdge(5+v, (v+1)%5)
		g.AddEdge(5+v, (v+4)%5)
		g.AddEdge(5+v, 10)
	}
	return g
}

func completeBipartite(a, b int) *Graph {
	g := NewGraph(a + b)
	for u := 0; u < a; u++ {
		for v := 0; v < b; v++ {
			g.AddEdge(u, a+v)
		}
	}
	return g
}

// k3unionK5 is the disjoint union K3 ∪ K5: triangle on 0..2, K5 on 3..7.
func k3unionK5() *Graph {
	g := NewGraph(8)
	for u := 0; u < 3; u++ {
		for v := u + 1; v < 3; v++ {
			g.AddEdge(u, v)
		}
	}
	for u := 3; u < 8; u++ {
		for v := u + 1; v < 8; v++ {
			g.AddEdge(u, v)
		}
	}
	return g
}
