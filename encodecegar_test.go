package gochroma_test

import (
	"context"
	"testing"

	. "github.com/rhansen/gochroma"
)

func cegarSolveK(t *testing.T, g *Graph, k int, checker Checker) (Status, Coloring, int) {
	t.Helper()
	b := NewGophersatBackend()
	enc, err := NewCEGAREncoding(b, g, k, nil, checker)
	if err != nil {
		t.Fatal(err)
	}
	res, c, err := enc.Solve(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return res.Status, c, enc.Rounds
}

func TestCEGAREncoding(t *testing.T) {
	t.Parallel()
	for _, checker := range []Checker{Naive, SparseTriangles, Paper} {
		t.Run(checker.String(), func(t *testing.T) {
			t.Parallel()
			for _, tc := range []struct {
				desc string
				g    *Graph
				k    int
				want Status
			}{
				{"K4 at 3", complete(4), 3, Unsat},
				{"K4 at 4", complete(4), 4, Sat},
				{"C5 at 2", cycle(5), 2, Unsat},
				{"C5 at 3", cycle(5), 3, Sat},
				{"K33 at 2", completeBipartite(3, 3), 2, Sat},
			} {
				status, c, rounds := cegarSolveK(t, tc.g, tc.k, checker)
				if status != tc.want {
					t.Errorf("%s: status %v, want %v", tc.desc, status, tc.want)
					continue
				}
				if rounds < 1 {
					t.Errorf("%s: no refinement rounds recorded", tc.desc)
				}
				if status == Sat {
					if err := c.Verify(tc.g); err != nil {
						t.Errorf("%s: improper coloring: %v", tc.desc, err)
					}
					if got := c.NumColors(); got > tc.k {
						t.Errorf("%s: coloring uses %d colors, want <= %d", tc.desc, got, tc.k)
					}
				}
			}
		})
	}
}

func TestCEGARRefinementCounts(t *testing.T) {
	t.Parallel()
	// The first abstraction of a nontrivial graph cannot be proper (all
	// vertices may take color 0), so at least one refinement happens.
	b := NewGophersatBackend()
	enc, err := NewCEGAREncoding(b, petersen(), 3, nil, Naive)
	if err != nil {
		t.Fatal(err)
	}
	res, c, err := enc.Solve(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != Sat {
		t.Fatalf("status %v, want Sat", res.Status)
	}
	if err := c.Verify(petersen()); err != nil {
		t.Fatal(err)
	}
	if enc.Refinements < 1 {
		t.Error("no refinement clauses were ever added")
	}
}
