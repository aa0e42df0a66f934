// Command gochroma decides k-colorability of a DIMACS graph and searches
// for its chromatic number.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"maps"
	"os"
	"runtime/debug"
	"slices"
	"strings"

	"github.com/amterp/color"
	"github.com/rhansen/gochroma"
	"github.com/rhansen/gochroma/internal/dimacs"
	"github.com/rhansen/gochroma/internal/logging"
	"github.com/rhansen/gochroma/internal/mycielsky"
	"github.com/rhansen/gochroma/internal/statscsv"
)

var (
	cyanf   = color.New(color.FgCyan).SprintfFunc()
	hicyanf = color.New(color.FgHiCyan).SprintfFunc()
)

func ver() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi.Main.Version == "(devel)" {
		return ""
	}
	return bi.Main.Version
}

var presets = map[string]func() gochroma.Config{
	"zykov-color":   gochroma.ZykovColorPreset,
	"assignment":    gochroma.AssignmentPreset,
	"partial-order": gochroma.PartialOrderPreset,
}

var encodingChoices = map[string]gochroma.Encoding{
	"assignment":    gochroma.Assignment,
	"partial-order": gochroma.PartialOrder,
	"zykov":         gochroma.ZykovPropagator,
	"full-maxsat":   gochroma.FullMaxSAT,
	"cegar":         gochroma.CEGAR,
}

var checkerChoices = map[string]gochroma.Checker{
	"naive":            gochroma.Naive,
	"sparse-triangles": gochroma.SparseTriangles,
	"paper":            gochroma.Paper,
}

var zykovStrategyChoices = map[string]gochroma.ZykovStrategy{
	"cadical-zykov": gochroma.CadicalZykov,
	"bag-size":      gochroma.BagSize,
}

var coloringAlgChoices = map[string]gochroma.ColoringAlgorithm{
	"none":         gochroma.NoColoring,
	"iterated-seq": gochroma.IteratedSEQ,
}

var strategyChoices = map[string]gochroma.Strategy{
	"bottom-up": gochroma.BottomUp,
	"top-down":  gochroma.TopDown,
	"single-k":  gochroma.SingleK,
}

var solverChoices = map[string]gochroma.SolverKind{
	"glucose": gochroma.Glucose,
	"cadical": gochroma.CaDiCaL,
}

func choiceFlag[T any](p *T, name string, choices map[string]T, dflt string, usage string) {
	cstr := strings.Join(slices.Sorted(maps.Keys(choices)), ", ")
	var ok bool
	if *p, ok = choices[dflt]; !ok {
		panic(fmt.Errorf("invalid default for %v option: %v", name, dflt))
	}
	usage += fmt.Sprintf(" (one of: %v; default: %v)", cstr, dflt)
	flag.Func(name, usage, func(arg string) error {
		if arg == "" {
			arg = dflt
		}
		v, ok := choices[arg]
		if !ok {
			return fmt.Errorf("expected one of: %v", cstr)
		}
		*p = v
		return nil
	})
}

var slogLevel = func() *slog.LevelVar {
	lvl := &slog.LevelVar{}
	lvl.Set(logging.LevelNormal)
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(h))
	return lvl
}()

type cliOptions struct {
	preset   string
	cfg      gochroma.Config
	statsCSV string
}

func parseFlags() (*cliOptions, string) {
	opts := &cliOptions{}
	flag.StringVar(&opts.preset, "preset", "", "Use a validated default configuration (one of: zykov-color, assignment, partial-order); it replaces every other configuration flag given.")

	cfg := gochroma.AssignmentPreset()
	choiceFlag(&cfg.Encoding, "encoding", encodingChoices, "assignment", "SAT encoding of k-colorability.")
	choiceFlag(&cfg.Checker, "checker", checkerChoices, "naive", "Checker algorithm for the CEGAR encoding.")
	choiceFlag(&cfg.Strategy, "strategy", strategyChoices, "bottom-up", "k-search strategy.")
	choiceFlag(&cfg.Solver, "solver", solverChoices, "glucose", "SAT backend.")
	choiceFlag(&cfg.ZykovBranch, "zykov-strategy", zykovStrategyChoices, "cadical-zykov", "Zykov branching heuristic.")
	choiceFlag(&cfg.ColoringAlg, "coloring-algorithm", coloringAlgChoices, "none", "Experimental in-propagator upper-bound refresh.")

	flag.BoolVar(&cfg.Preprocessing, "preprocessing", true, "Remove dominated/low-degree vertices and compute a seed clique before solving.")
	flag.BoolVar(&cfg.GraphReduction, "graph-reduction", true, "Actually remove vertices during preprocessing (vs. only computing a seed clique).")
	flag.BoolVar(&cfg.SeedCliqueOrder, "seed-clique", true, "Break label symmetry using the preprocessing seed clique.")
	flag.BoolVar(&cfg.MycielskyLB, "mycielsky-lb", false, "Attempt to raise the lower bound via a Mycielskian witness.")
	flag.BoolVar(&cfg.RemoveCj, "remove-cj", false, "Drop cardinality clauses for indicator literals forced false by preprocessing.")
	flag.BoolVar(&cfg.AssignmentAMO, "assignment-amo", false, "Add pairwise at-most-one clauses to the Assignment encoding.")
	flag.BoolVar(&cfg.CliqueExplain, "clique-explain", false, "Enable clique-bound conflict explanations in the Zykov encoding.")
	flag.BoolVar(&cfg.MycielskyExplain, "mycielsky-explain", false, "Enable Mycielsky-bound conflict explanations (requires -clique-explain).")
	flag.BoolVar(&cfg.DominatedDecide, "dominated-decide", false, "Pre-assert dominated-vertex merges in the Zykov encoding.")
	flag.BoolVar(&cfg.PositivePruning, "positive-pruning", false, "Enable positive pruning in the Zykov propagator.")
	flag.BoolVar(&cfg.NegativePruning, "negative-pruning", false, "Enable negative pruning in the Zykov propagator.")
	flag.BoolVar(&cfg.NonIncremental, "non-incremental", false, "Reset the SAT backend between every k instead of reusing learned clauses.")
	flag.BoolVar(&cfg.BacktrackStats, "backtrack-stats", false, "Collect detailed backtracking statistics.")
	flag.BoolVar(&cfg.WriteCNFOnly, "write-cnf-only", false, "Write the Partial-Order CNF to -cnf-path and exit without solving.")
	flag.StringVar(&cfg.CNFPath, "cnf-path", "", "CNF output path, used with -write-cnf-only.")
	flag.StringVar(&cfg.WCNFPath, "wcnf-path", "", "WCNF output path, required for -encoding=full-maxsat.")
	flag.IntVar(&cfg.NumColors, "k", 0, "Number of colors, required for -strategy=single-k.")
	flag.IntVar(&cfg.PropCliqueLimit, "prop-clique-limit", 64, "Max pruning clauses added per Zykov solve; the clique-bound search is not limited by it.")
	flag.IntVar(&cfg.MycielskyThresh, "mycielsky-threshold", 2, "Gap between current k and the clique bound below which the Mycielsky bound is attempted.")
	flag.IntVar(&cfg.MntsLength, "mnts-length", 1000, "Total MNTS tabu search iteration budget.")
	flag.IntVar(&cfg.MntsDepth, "mnts-depth", 8, "MNTS iterations per restart.")
	flag.Int64Var(&cfg.Seed, "seed", 12345, "Deterministic RNG seed for MNTS tie-breaking.")

	flag.StringVar(&opts.statsCSV, "stats-csv", "", "Append one row of solve statistics to this CSV file.")

	flag.Func("verbosity", "Log verbosity (one of: quiet, normal, debug).", func(arg string) error {
		lvl, err := logging.StringToLevel(arg)
		if err != nil {
			return err
		}
		slogLevel.Set(lvl)
		switch lvl {
		case logging.LevelQuiet:
			cfg.Verbosity = gochroma.Quiet
		case logging.LevelDebug:
			cfg.Verbosity = gochroma.Debug
		default:
			cfg.Verbosity = gochroma.Normal
		}
		return nil
	})
	flag.BoolFunc("v", "Increase log verbosity.", func(string) error {
		slogLevel.Set(logging.BumpLevel(slogLevel.Level(), true))
		return nil
	})
	flag.BoolFunc("q", "Decrease log verbosity.", func(string) error {
		slogLevel.Set(logging.BumpLevel(slogLevel.Level(), false))
		return nil
	})
	flag.BoolFunc("version", "Print the version and exit.", func(string) error {
		v := ver()
		if v == "" {
			log.Fatal("the Go build information is unavailable; try passing -buildvcs=true")
		}
		fmt.Println(v)
		os.Exit(0)
		return nil
	})

	flag.Parse()

	if opts.preset != "" {
		preset, ok := presets[opts.preset]
		if !ok {
			log.Fatalf("unknown preset %q", opts.preset)
		}
		// Named presets overwrite every other option, matching their
		// "validated default" contract.
		cfg = preset()
	}
	opts.cfg = cfg

	args := flag.Args()
	if len(args) != 1 {
		log.Fatal("exactly one input DIMACS graph path is required")
	}
	return opts, args[0]
}

func run(ctx context.Context, opts *cliOptions, path string) int {
	f, err := os.Open(path)
	if err != nil {
		slog.ErrorContext(ctx, "failed to open input", "error", err)
		return 2
	}
	defer f.Close()
	g, err := dimacs.Read(f)
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse input", "error", err)
		return 2
	}

	if err := opts.cfg.Validate(); err != nil {
		slog.ErrorContext(ctx, "invalid configuration", "error", err)
		return 1
	}

	if opts.cfg.WriteCNFOnly {
		rec := gochroma.NewCNFRecorder()
		pre := gochroma.Preprocess(g, opts.cfg.GraphReduction)
		k := opts.cfg.NumColors
		if k <= 0 {
			k = gochroma.GreedyUpperBound(pre.Reduced).NumColors()
		}
		if _, err := gochroma.NewPartialOrderEncoding(rec, pre.Reduced, k, pre.ReducedSeedClique()); err != nil {
			slog.ErrorContext(ctx, "failed to build CNF", "error", err)
			return 3
		}
		out, err := os.Create(opts.cfg.CNFPath)
		if err != nil {
			slog.ErrorContext(ctx, "failed to create CNF output", "error", err)
			return 3
		}
		defer out.Close()
		if err := rec.WriteDIMACS(out); err != nil {
			slog.ErrorContext(ctx, "failed to write CNF", "error", err)
			return 3
		}
		slog.InfoContext(ctx, "CNF written", "path", opts.cfg.CNFPath, "vars", rec.NumVars(), "clauses", rec.NumClauses())
		return 0
	}

	res, err := gochroma.Solve(ctx, g, opts.cfg, gochroma.DefaultFractionalOracle{}, mycielsky.Oracle{})
	if err != nil {
		slog.ErrorContext(ctx, "solve failed", "error", err)
		return 3
	}

	if opts.cfg.Encoding == gochroma.FullMaxSAT {
		slog.InfoContext(ctx, "WCNF written", "path", opts.cfg.WCNFPath)
		return 0
	}

	if opts.statsCSV != "" {
		if err := statscsv.Append(opts.statsCSV, res.Stats.Row(path, opts.cfg)); err != nil {
			slog.ErrorContext(ctx, "failed to append statistics", "error", err)
		}
	}

	if res.Status != gochroma.Sat {
		fmt.Println(hicyanf("UNSAT at k=%d", res.K))
		if opts.cfg.Strategy == gochroma.SingleK {
			return 20
		}
		return 3
	}

	for v, c := range res.Coloring {
		fmt.Printf("%d -> %d\n", v, c)
	}
	fmt.Println(cyanf("chi=%d colors=%d solve_time=%s lb=%d ub=%d decisions=%d conflicts=%d propagations=%d",
		res.K, res.Coloring.NumColors(), res.Stats.SolveTime, res.Stats.LBInitial, res.Stats.UBInitial,
		res.Stats.Decisions, res.Stats.Conflicts, res.Stats.Propagations))

	if opts.cfg.Strategy == gochroma.SingleK {
		return 10
	}
	return 0
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	opts, path := parseFlags()
	os.Exit(run(ctx, opts, path))
}
