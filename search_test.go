package gochroma_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	. "github.com/rhansen/gochroma"
	"github.com/rhansen/gochroma/internal/mycielsky"
)

func solve(t *testing.T, g *Graph, cfg Config) SolveResult {
	t.Helper()
	res, err := Solve(context.Background(), g, cfg, DefaultFractionalOracle{}, mycielsky.Oracle{})
	if err != nil {
		t.Fatal(err)
	}
	return res
}

// TestSolveChromaticNumbers checks known chromatic numbers across all
// three solving encodings and both directional strategies.
func TestSolveChromaticNumbers(t *testing.T) {
	t.Parallel()
	graphs := []struct {
		desc string
		g    *Graph
		chi  int
	}{
		{"K4", complete(4), 4},
		{"C5", cycle(5), 3},
		{"Petersen", petersen(), 3},
		{"Grotzsch", grotzsch(), 4},
		{"K33", completeBipartite(3, 3), 2},
		{"K3uK5", k3unionK5(), 5},
	}
	configs := []struct {
		desc string
		cfg  Config
	}{
		{"assignment/bottom-up", AssignmentPreset()},
		{"partial-order/bottom-up", PartialOrderPreset()},
		{"zykov/bottom-up", ZykovColorPreset()},
		{"assignment/top-down", func() Config {
			c := AssignmentPreset()
			c.Strategy = TopDown
			return c
		}()},
		{"partial-order/top-down", func() Config {
			c := PartialOrderPreset()
			c.Strategy = TopDown
			return c
		}()},
	}
	for _, gc := range graphs {
		for _, cc := range configs {
			t.Run(gc.desc+"/"+cc.desc, func(t *testing.T) {
				t.Parallel()
				res := solve(t, gc.g, cc.cfg)
				if res.Status != Sat {
					t.Fatalf("status %v, want Sat", res.Status)
				}
				if res.K != gc.chi {
					t.Errorf("chi = %d, want %d", res.K, gc.chi)
				}
				if err := res.Coloring.Verify(gc.g); err != nil {
					t.Errorf("returned coloring is improper: %v", err)
				}
			})
		}
	}
}

func TestSolveSingleK(t *testing.T) {
	t.Parallel()
	// K4 is Unsat at 3, Sat at 4; K33 is Unsat at 1. Colorability is
	// monotone in k.
	for _, tc := range []struct {
		desc string
		g    *Graph
		k    int
		want Status
	}{
		{"K4 at 3", complete(4), 3, Unsat},
		{"K4 at 4", complete(4), 4, Sat},
		{"K4 at 5", complete(4), 5, Sat},
		{"C5 at 2", cycle(5), 2, Unsat},
		{"C5 at 3", cycle(5), 3, Sat},
		{"K33 at 1", completeBipartite(3, 3), 1, Unsat},
		{"K33 at 2", completeBipartite(3, 3), 2, Sat},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()
			cfg := AssignmentPreset()
			cfg.Strategy = SingleK
			cfg.NumColors = tc.k
			res := solve(t, tc.g, cfg)
			if res.Status != tc.want {
				t.Errorf("status %v, want %v", res.Status, tc.want)
			}
			if res.Status == Sat {
				if err := res.Coloring.Verify(tc.g); err != nil {
					t.Errorf("returned coloring is improper: %v", err)
				}
			}
		})
	}
}

func TestSolveCEGAR(t *testing.T) {
	t.Parallel()
	// All three checkers must agree with the other encodings.
	for _, checker := range []Checker{Naive, SparseTriangles, Paper} {
		t.Run(checker.String(), func(t *testing.T) {
			t.Parallel()
			cfg := AssignmentPreset()
			cfg.Encoding = CEGAR
			cfg.Checker = checker
			for _, gc := range []struct {
				desc string
				g    *Graph
				chi  int
			}{
				{"K4", complete(4), 4},
				{"C5", cycle(5), 3},
				{"Petersen", petersen(), 3},
			} {
				res := solve(t, gc.g, cfg)
				if res.Status != Sat || res.K != gc.chi {
					t.Errorf("%s: status %v chi %d, want Sat %d", gc.desc, res.Status, res.K, gc.chi)
				}
				if err := res.Coloring.Verify(gc.g); err != nil {
					t.Errorf("%s: improper coloring: %v", gc.desc, err)
				}
			}
		})
	}
}

func TestSolveZykovNonIncremental(t *testing.T) {
	t.Parallel()
	cfg := ZykovColorPreset()
	cfg.NonIncremental = true
	res := solve(t, petersen(), cfg)
	if res.Status != Sat || res.K != 3 {
		t.Fatalf("status %v chi %d, want Sat 3", res.Status, res.K)
	}
}

func TestSolveIdempotent(t *testing.T) {
	t.Parallel()
	// Solving twice with the same seed is deterministic.
	cfg := ZykovColorPreset()
	a := solve(t, petersen(), cfg)
	b := solve(t, petersen(), cfg)
	if a.K != b.K {
		t.Errorf("two identical solves disagree on chi: %d vs %d", a.K, b.K)
	}
	if diff := cmp.Diff(a.Coloring, b.Coloring); diff != "" {
		t.Errorf("two identical solves disagree on the coloring:\n%s", diff)
	}
}

func TestSolveWithoutPreprocessing(t *testing.T) {
	t.Parallel()
	cfg := AssignmentPreset()
	cfg.Preprocessing = false
	res := solve(t, k3unionK5(), cfg)
	if res.Status != Sat || res.K != 5 {
		t.Fatalf("status %v chi %d, want Sat 5", res.Status, res.K)
	}
	if err := res.Coloring.Verify(k3unionK5()); err != nil {
		t.Errorf("returned coloring is improper: %v", err)
	}
}

func TestSolveStatsPopulated(t *testing.T) {
	t.Parallel()
	res := solve(t, petersen(), AssignmentPreset())
	if res.Stats.KFound != res.K {
		t.Errorf("Stats.KFound = %d, want %d", res.Stats.KFound, res.K)
	}
	if res.Stats.LBInitial < 2 || res.Stats.LBInitial > res.K {
		t.Errorf("Stats.LBInitial = %d, want in [2,%d]", res.Stats.LBInitial, res.K)
	}
	if res.Stats.UBInitial < res.K {
		t.Errorf("Stats.UBInitial = %d, want >= %d", res.Stats.UBInitial, res.K)
	}
	if res.Stats.SolveTime <= 0 {
		t.Error("Stats.SolveTime not recorded")
	}
}

func TestSolveFullMaxSAT(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "out.wcnf")
	cfg := Config{
		Encoding:       FullMaxSAT,
		Solver:         Glucose,
		Preprocessing:  true,
		GraphReduction: true,
		WCNFPath:       path,
	}
	res := solve(t, petersen(), cfg)
	if res.Status != Unknown {
		t.Errorf("FullMaxSAT solve status %v, want Unknown (nothing is solved)", res.Status)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if !strings.HasPrefix(lines[0], "p wcnf ") {
		t.Errorf("first line %q, want a WCNF problem line", lines[0])
	}
	for _, ln := range lines[1:] {
		if !strings.HasSuffix(ln, " 0") {
			t.Errorf("clause line %q not zero-terminated", ln)
		}
	}
}

func TestSolveInvalidConfig(t *testing.T) {
	t.Parallel()
	cfg := ZykovColorPreset()
	cfg.Solver = Glucose
	_, err := Solve(context.Background(), cycle(5), cfg, DefaultFractionalOracle{}, mycielsky.Oracle{})
	if err == nil {
		t.Fatal("invalid configuration accepted")
	}
}
