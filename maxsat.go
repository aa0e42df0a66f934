package gochroma

import (
	"bufio"
	"fmt"
	"io"
)

// WriteMaxSAT emits the full weighted-CNF encoding of the chromatic number
// optimization over g to w. gochroma never solves the result; it only
// writes the standard WCNF format an external MaxSAT solver consumes.
//
// The encoding allots maxColors color slots (a known upper bound, e.g.
// from [GreedyUpperBound]): hard clauses assert a proper coloring over
// assignment variables x[v,i] plus used[i] indicators, the seed clique q
// pins its vertices to distinct colors, and one unit soft clause of
// weight 1 per color slot asks for used[i] to be false, so the optimum
// leaves exactly χ(g) soft clauses violated.
func WriteMaxSAT(w io.Writer, g *Graph, maxColors int, q []int) error {
	if maxColors <= 0 {
		return fmt.Errorf("%w: FullMaxSAT needs a positive color budget, got %d", ErrConfig, maxColors)
	}
	n := g.N()
	// Variable layout: x[v,i] = v*maxColors + i + 1, used[i] follows.
	x := func(v, i int) int { return v*maxColors + i + 1 }
	used := func(i int) int { return n*maxColors + i + 1 }
	nbVars := n*maxColors + maxColors

	var hard [][]int
	for v := 0; v < n; v++ {
		cl := make([]int, maxColors)
		for i := range cl {
			cl[i] = x(v, i)
		}
		hard = append(hard, cl)
	}
	for u := 0; u < n; u++ {
		for v := range g.Neighbors(u).Range {
			if v <= u {
				continue
			}
			for i := 0; i < maxColors; i++ {
				hard = append(hard, []int{-x(u, i), -x(v, i)})
			}
		}
	}
	for v := 0; v < n; v++ {
		for i := 0; i < maxColors; i++ {
			hard = append(hard, []int{-x(v, i), used(i)})
		}
	}
	// Symmetry breaking on the used indicators: colors are used in order.
	for i := 1; i < maxColors; i++ {
		hard = append(hard, []int{-used(i), used(i - 1)})
	}
	for i, qv := range q {
		if i >= maxColors {
			break
		}
		hard = append(hard, []int{x(qv, i)})
	}

	top := maxColors + 1 // exceeds any sum of soft weights
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "p wcnf %d %d %d\n", nbVars, len(hard)+maxColors, top)
	for _, cl := range hard {
		fmt.Fprintf(bw, "%d", top)
		for _, l := range cl {
			fmt.Fprintf(bw, " %d", l)
		}
		fmt.Fprintln(bw, " 0")
	}
	for i := 0; i < maxColors; i++ {
		fmt.Fprintf(bw, "1 %d 0\n", -used(i))
	}
	return bw.Flush()
}
