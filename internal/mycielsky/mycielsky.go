// Package mycielsky builds Mycielskian graphs and provides the default
// [gochroma.MycielskyOracle] bound oracle.
package mycielsky

import "github.com/rhansen/gochroma"

// Construct returns the Mycielskian M(g): for every vertex v of g a shadow
// vertex v' adjacent to N(v) (not to v itself), plus one apex vertex
// adjacent to every shadow. χ(M(g)) = χ(g)+1 for any g, and M(g) is
// triangle-free whenever g is (Grötzsch's construction).
func Construct(g *gochroma.Graph) *gochroma.Graph {
	n := g.N()
	m := gochroma.NewGraph(2*n + 1)
	apex := 2 * n
	for v := 0; v < n; v++ {
		shadow := n + v
		for u := range g.Neighbors(v).Range {
			if u > v {
				m.AddEdge(v, u)
			}
			m.AddEdge(shadow, u)
		}
		m.AddEdge(shadow, apex)
	}
	return m
}

// Oracle is the default [gochroma.MycielskyOracle]. It looks for an induced
// odd hole (a chordless odd cycle of length >= 5), the combinatorial
// signature a Mycielskian of an edge (M(K2) = C5) or of a longer odd cycle
// leaves behind: any graph containing one needs clique_lb+1 colors whenever
// clique_lb is 2, since an odd hole's clique number is 2 but its chromatic
// number is 3.
type Oracle struct{}

func (Oracle) RaiseBound(g *gochroma.Graph, cliqueLB int) (bool, []int) {
	if cliqueLB != 2 {
		// Certifying a raise for a larger seed clique requires locating a
		// generalized Mycielski extension of that clique as an induced
		// subgraph, which is not implemented; the oracle only certifies
		// the triangle-free (odd-hole) case.
		return false, nil
	}
	if cycle, ok := shortestOddHole(g); ok {
		return true, cycle
	}
	return false, nil
}

// shortestOddHole finds an induced odd cycle of length >= 5 in g. It BFS's
// from each vertex in index order and stops at the first root that yields a
// candidate, returning the shortest candidate from that root; a shorter hole
// reachable only from a later root is not found. A non-tree edge {u,v} with
// equal BFS depth closes an odd cycle of length 2*depth+1 through the root. Candidates are
// accepted only once verified chordless and of length >= 5, since a
// triangle (cliqueLB would already be >= 3) or a chorded cycle is not a
// witness for the odd-hole property the Mycielskian bound relies on.
func shortestOddHole(g *gochroma.Graph) (cycle []int, ok bool) {
	n := g.N()
	var best []int
	for s := 0; s < n; s++ {
		dist := make([]int, n)
		parent := make([]int, n)
		for i := range dist {
			dist[i] = -1
		}
		dist[s] = 0
		parent[s] = -1
		queue := []int{s}
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			for v := range g.Neighbors(u).Range {
				if dist[v] == -1 {
					dist[v] = dist[u] + 1
					parent[v] = u
					queue = append(queue, v)
				}
			}
		}
		for u := 0; u < n; u++ {
			if dist[u] < 0 {
				continue
			}
			for v := range g.Neighbors(u).Range {
				if v <= u || dist[v] != dist[u] {
					continue
				}
				c := reconstructCycle(u, v, parent)
				if len(c) >= 5 && len(c)%2 == 1 && isChordless(g, c) {
					if best == nil || len(c) < len(best) {
						best = c
					}
				}
			}
		}
		if best != nil {
			break
		}
	}
	return best, best != nil
}

// reconstructCycle walks both u and v up their BFS parent chains to the
// root and splices the two paths together through the closing edge {u,v}.
func reconstructCycle(u, v int, parent []int) []int {
	var pu []int
	for x := u; x != -1; x = parent[x] {
		pu = append(pu, x)
	}
	var pv []int
	for x := v; x != -1; x = parent[x] {
		pv = append(pv, x)
	}
	// Require vertex-disjoint paths (other than the shared root) so the
	// splice is a simple cycle.
	seen := make(map[int]bool, len(pu))
	for _, x := range pu {
		seen[x] = true
	}
	for i, x := range pv {
		if i == len(pv)-1 {
			continue // the shared root
		}
		if seen[x] {
			return nil
		}
	}
	cycle := append([]int{}, pu...)
	for i := len(pv) - 2; i >= 0; i-- {
		cycle = append(cycle, pv[i])
	}
	return cycle
}

func isChordless(g *gochroma.Graph, cycle []int) bool {
	n := len(cycle)
	for i := 0; i < n; i++ {
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue // the closing edge, not a chord
			}
			if g.HasEdge(cycle[i], cycle[j]) {
				return false
			}
		}
	}
	return true
}
