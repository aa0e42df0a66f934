package gochroma

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/rhansen/gochroma/internal/itertools"
)

// SolveStats captures the counters the statistics sink appends to CSV via
// internal/statscsv.
type SolveStats struct {
	KFound                int
	LBInitial             int
	UBInitial             int
	SolveTime             time.Duration
	Conflicts             int
	Decisions             int
	Propagations          int
	CliqueExplanations    int
	MycielskyExplanations int
}

// A SolveResult is what [Solve] returns.
type SolveResult struct {
	// Coloring is the best coloring found, or nil if none was (for
	// SingleK, absence means the requested k is infeasible).
	Coloring Coloring
	// Status reports the final outcome relative to the strategy: for
	// BottomUp/SingleK, Sat means a coloring at K was found; for TopDown,
	// Sat reports the smallest K found colorable, with its Coloring.
	Status Status
	K      int
	Stats  SolveStats
}

func newBackend(cfg Config) Backend {
	if cfg.Solver == CaDiCaL {
		return NewLogicBackend()
	}
	return NewGophersatBackend()
}

// Solve drives cfg.Strategy over g using cfg.Encoding/cfg.Solver. frac and
// myc provide the external bound oracles.
func Solve(ctx context.Context, g *Graph, cfg Config, frac FractionalOracle, myc MycielskyOracle) (SolveResult, error) {
	if err := cfg.Validate(); err != nil {
		return SolveResult{}, err
	}
	start := time.Now()

	if cfg.Encoding == FullMaxSAT {
		return writeFullMaxSAT(g, cfg, start)
	}

	var pre *PreprocessResult
	if cfg.Preprocessing {
		pre = Preprocess(g, cfg.GraphReduction)
	} else {
		pre = &PreprocessResult{Reduced: g, ToOriginal: identityPerm(g.N())}
		if cfg.SeedCliqueOrder {
			pre.SeedClique = greedySeedClique(g)
		}
	}
	reduced := pre.Reduced

	bounds, err := ComputeBounds(ctx, reduced, len(pre.SeedClique), cfg, frac, myc)
	if err != nil {
		return SolveResult{}, err
	}
	slog.DebugContext(ctx, "bounds computed", "lb", bounds.LB, "ub", bounds.UB,
		"reduced", reduced.N(), "original", g.N(), "seedClique", len(pre.SeedClique))

	var res SolveResult
	switch cfg.Strategy {
	case BottomUp:
		res, err = bottomUp(ctx, reduced, pre, cfg, bounds, myc)
	case TopDown:
		res, err = topDown(ctx, reduced, pre, cfg, bounds, myc)
	case SingleK:
		res, err = singleK(ctx, reduced, pre, cfg, cfg.NumColors, myc)
	default:
		return SolveResult{}, fmt.Errorf("%w: unknown strategy %v", ErrConfig, cfg.Strategy)
	}
	if err != nil {
		return SolveResult{}, err
	}
	if res.Coloring != nil {
		res.Coloring = pre.Recolor(res.Coloring)
	}
	res.Stats.KFound = res.K
	res.Stats.LBInitial = bounds.LB
	res.Stats.UBInitial = bounds.UB
	if bounds.MycielskyBoost {
		res.Stats.MycielskyExplanations++
	}
	res.Stats.SolveTime = time.Since(start)
	return res, nil
}

func identityPerm(n int) []int {
	return slices.Collect(itertools.Range(0, n))
}

// kAttempt is the per-k encode-and-solve step shared by all three
// strategies. zyk, when non-nil, is an already-built [ZykovEncoding] to
// reuse incrementally through the totalizer's activation literals;
// the cardinality bound for this call is always pinned via
// [Backend.Assume] rather than a permanent clause, so it composes with
// either a growing (BottomUp) or shrinking (TopDown) k sequence.
func kAttempt(ctx context.Context, b Backend, g *Graph, q []int, k int, cfg Config, zyk *ZykovEncoding, myc MycielskyOracle, stats *SolveStats) (Result, Coloring, *ZykovEncoding, error) {
	switch cfg.Encoding {
	case Assignment:
		enc, err := NewAssignmentEncoding(b, g, k, q, cfg.AssignmentAMO)
		if err != nil {
			return Result{}, nil, nil, err
		}
		res, err := b.Solve(ctx)
		if err != nil {
			return Result{}, nil, nil, err
		}
		if res.Status != Sat {
			return res, nil, nil, nil
		}
		c, err := enc.Decode(res.Model)
		return res, c, nil, err

	case PartialOrder:
		enc, err := NewPartialOrderEncoding(b, g, k, q)
		if err != nil {
			return Result{}, nil, nil, err
		}
		res, err := b.Solve(ctx)
		if err != nil {
			return Result{}, nil, nil, err
		}
		if res.Status != Sat {
			return res, nil, nil, nil
		}
		c, err := enc.Decode(res.Model)
		return res, c, nil, err

	case CEGAR:
		enc, err := NewCEGAREncoding(b, g, k, q, cfg.Checker)
		if err != nil {
			return Result{}, nil, nil, err
		}
		res, c, err := enc.Solve(ctx)
		if err != nil {
			return Result{}, nil, nil, err
		}
		if stats != nil {
			stats.Propagations += enc.Refinements
			stats.Decisions += enc.Rounds
		}
		return res, c, nil, nil

	case ZykovPropagator:
		if zyk == nil {
			enc, err := NewZykovEncoding(b, g, k, cfg)
			if err != nil {
				return Result{}, nil, nil, err
			}
			zyk = enc
		}
		res, c, zst, err := zyk.SolveWithPropagator(ctx, k, cfg, myc)
		if stats != nil {
			stats.Decisions += zst.Decisions
			stats.Propagations += zst.Propagations
			stats.CliqueExplanations += zst.CliqueExplanations
			stats.MycielskyExplanations += zst.MycielskyExplanations
		}
		if err != nil {
			return Result{}, nil, zyk, err
		}
		return res, c, zyk, nil

	default:
		return Result{}, nil, nil, fmt.Errorf("%w: unknown encoding %v", ErrConfig, cfg.Encoding)
	}
}

// reusable reports whether a single [Backend]+[ZykovEncoding] pair may be
// kept alive across the whole k-sequence of a strategy: only the Zykov
// encoding's variable set is independent of k, and only an incremental
// backend can accept [Backend.Assume] calls meaningfully across solves.
func reusable(cfg Config, b Backend) bool {
	return cfg.Encoding == ZykovPropagator && !cfg.NonIncremental && b.Incremental()
}

// harvestBackend folds the backend's own CDCL counters into stats, when
// the backend exposes them (only [LogicBackend] does). With
// cfg.BacktrackStats the restart and learned-clause counters are logged
// as well.
func harvestBackend(b Backend, cfg Config, stats *SolveStats) {
	lb, ok := b.(*LogicBackend)
	if !ok {
		return
	}
	s := lb.Statistics()
	stats.Conflicts += int(s.Conflicts)
	stats.Decisions += int(s.Decisions)
	stats.Propagations += int(s.Propagations)
	if cfg.BacktrackStats {
		slog.Debug("backtracking detail",
			"restarts", s.Restarts, "learned", s.LearnedClauses, "deleted", s.DeletedClauses)
	}
}

func bottomUp(ctx context.Context, g *Graph, pre *PreprocessResult, cfg Config, bounds Bounds, myc MycielskyOracle) (SolveResult, error) {
	k := bounds.LB
	if k < 1 {
		k = 1
	}
	var stats SolveStats
	b := newBackend(cfg)
	var zyk *ZykovEncoding
	canReuse := reusable(cfg, b)
	for ; k <= bounds.UB; k++ {
		if !canReuse {
			b = newBackend(cfg)
			zyk = nil
		}
		slog.DebugContext(ctx, "attempting k", "k", k, "encoding", cfg.Encoding.String())
		res, coloring, nextZyk, err := kAttempt(ctx, b, g, pre.ReducedSeedClique(), k, cfg, zyk, myc, &stats)
		if err != nil {
			return SolveResult{}, err
		}
		zyk = nextZyk
		switch res.Status {
		case Sat:
			harvestBackend(b, cfg, &stats)
			return SolveResult{Coloring: coloring, Status: Sat, K: k, Stats: stats}, nil
		case Unknown:
			return SolveResult{}, fmt.Errorf("%w: backend returned Unknown at k=%d", ErrBackend, k)
		}
	}
	harvestBackend(b, cfg, &stats)
	return SolveResult{Status: Unsat, K: bounds.UB, Stats: stats}, nil
}

func topDown(ctx context.Context, g *Graph, pre *PreprocessResult, cfg Config, bounds Bounds, myc MycielskyOracle) (SolveResult, error) {
	best := SolveResult{Status: Unsat}
	var stats SolveStats
	b := newBackend(cfg)
	var zyk *ZykovEncoding
	canReuse := reusable(cfg, b)
	lo := bounds.LB
	if lo < 1 {
		lo = 1
	}
	for k := bounds.UB; k >= lo; k-- {
		if !canReuse {
			b = newBackend(cfg)
			zyk = nil
		}
		slog.DebugContext(ctx, "attempting k", "k", k, "encoding", cfg.Encoding.String())
		res, coloring, nextZyk, err := kAttempt(ctx, b, g, pre.ReducedSeedClique(), k, cfg, zyk, myc, &stats)
		if err != nil {
			return SolveResult{}, err
		}
		zyk = nextZyk
		switch res.Status {
		case Sat:
			best = SolveResult{Coloring: coloring, Status: Sat, K: k}
		case Unknown:
			return SolveResult{}, fmt.Errorf("%w: backend returned Unknown at k=%d", ErrBackend, k)
		case Unsat:
			harvestBackend(b, cfg, &stats)
			best.Stats = stats
			return best, nil
		}
	}
	harvestBackend(b, cfg, &stats)
	best.Stats = stats
	return best, nil
}

func singleK(ctx context.Context, g *Graph, pre *PreprocessResult, cfg Config, k int, myc MycielskyOracle) (SolveResult, error) {
	if k <= 0 {
		return SolveResult{}, fmt.Errorf("%w: SingleK requires a positive k, got %d", ErrConfig, k)
	}
	var stats SolveStats
	b := newBackend(cfg)
	res, coloring, _, err := kAttempt(ctx, b, g, pre.ReducedSeedClique(), k, cfg, nil, myc, &stats)
	if err != nil {
		return SolveResult{}, err
	}
	harvestBackend(b, cfg, &stats)
	switch res.Status {
	case Sat:
		return SolveResult{Coloring: coloring, Status: Sat, K: k, Stats: stats}, nil
	case Unsat:
		return SolveResult{Status: Unsat, K: k, Stats: stats}, nil
	default:
		return SolveResult{}, fmt.Errorf("%w: backend returned Unknown at k=%d", ErrBackend, k)
	}
}

// writeFullMaxSAT is the FullMaxSAT short-circuit in [Solve]: the weighted
// CNF is written to cfg.WCNFPath and no solve is attempted.
func writeFullMaxSAT(g *Graph, cfg Config, start time.Time) (SolveResult, error) {
	pre := Preprocess(g, cfg.GraphReduction)
	ub := GreedyUpperBound(pre.Reduced).NumColors()
	f, err := os.Create(cfg.WCNFPath)
	if err != nil {
		return SolveResult{}, fmt.Errorf("%w: %v", ErrInput, err)
	}
	defer f.Close()
	var q []int
	if cfg.SeedCliqueOrder {
		// Seed clique relabeled into the reduced graph's vertex ids.
		toReduced := make(map[int]int, len(pre.ToOriginal))
		for i, v := range pre.ToOriginal {
			toReduced[v] = i
		}
		for _, v := range pre.SeedClique {
			if i, ok := toReduced[v]; ok {
				q = append(q, i)
			}
		}
	}
	if err := WriteMaxSAT(f, pre.Reduced, ub, q); err != nil {
		return SolveResult{}, err
	}
	res := SolveResult{Status: Unknown}
	res.Stats.UBInitial = ub
	res.Stats.SolveTime = time.Since(start)
	return res, nil
}
