package gochroma

import "fmt"

// Encoding selects which SAT encoding of k-colorability to use.
type Encoding int

const (
	Assignment Encoding = iota
	PartialOrder
	ZykovPropagator
	// FullMaxSAT emits a weighted CNF encoding of the whole optimization
	// problem to a file and never solves it: gochroma emits weighted CNF
	// but is not a MaxSAT optimizer.
	FullMaxSAT
	// CEGAR starts from an abstraction of the Assignment encoding with
	// the edge constraints left out and refines it: each SAT model is
	// checked for monochromatic edges by the configured [Checker], whose
	// counterexamples are added as clauses before re-solving.
	CEGAR
)

func (e Encoding) String() string {
	switch e {
	case Assignment:
		return "assignment"
	case PartialOrder:
		return "partial-order"
	case ZykovPropagator:
		return "zykov"
	case FullMaxSAT:
		return "full-maxsat"
	case CEGAR:
		return "cegar"
	default:
		return "unknown"
	}
}

// Checker selects how CEGAR locates constraints violated by a tentative
// model (meaningful only when Encoding == CEGAR).
type Checker int

const (
	// Naive adds one exclusion clause per monochromatic edge found.
	Naive Checker = iota
	// SparseTriangles additionally strengthens each counterexample with
	// the exclusion clauses of every triangle through the violated edge,
	// so one refinement round rules out whole families of near-identical
	// models.
	SparseTriangles
	// Paper refines with all-color exclusion clauses per violated edge,
	// the configuration closest to the original CEGAR paper.
	Paper
)

func (c Checker) String() string {
	switch c {
	case Naive:
		return "naive"
	case SparseTriangles:
		return "sparse-triangles"
	case Paper:
		return "paper"
	default:
		return "unknown"
	}
}

// ZykovStrategy selects the Zykov branching heuristic.
type ZykovStrategy int

const (
	// CadicalZykov delegates branching to the backend's own heuristic.
	CadicalZykov ZykovStrategy = iota
	// BagSize prefers merging the pair of roots whose closed
	// neighborhoods intersect the most, maximizing the information a
	// merge or separation yields.
	BagSize
)

func (z ZykovStrategy) String() string {
	switch z {
	case CadicalZykov:
		return "cadical-zykov"
	case BagSize:
		return "bag-size"
	default:
		return "unknown"
	}
}

// ColoringAlgorithm selects the experimental in-propagator upper-bound
// refresh.
type ColoringAlgorithm int

const (
	// NoColoring disables the hook.
	NoColoring ColoringAlgorithm = iota
	// IteratedSEQ runs one sequential greedy coloring of the whole graph
	// before each Zykov solve and returns it if it uses at most k colors; it
	// is not rerun over the current roots during propagation.
	IteratedSEQ
)

func (c ColoringAlgorithm) String() string {
	switch c {
	case NoColoring:
		return "none"
	case IteratedSEQ:
		return "iterated-seq"
	default:
		return "unknown"
	}
}

// Strategy selects a k-search strategy.
type Strategy int

const (
	BottomUp Strategy = iota
	TopDown
	SingleK
)

func (s Strategy) String() string {
	switch s {
	case BottomUp:
		return "bottom-up"
	case TopDown:
		return "top-down"
	case SingleK:
		return "single-k"
	default:
		return "unknown"
	}
}

// SolverKind selects a SAT backend. ZykovPropagator requires CaDiCaL.
type SolverKind int

const (
	Glucose SolverKind = iota
	CaDiCaL
)

// Verbosity controls how much the solve pipeline logs.
type Verbosity int

const (
	Quiet Verbosity = iota
	Normal
	Debug
)

// Config parameterizes a solve: which encoding, which strategy, which
// backend, and the Boolean/integer toggles of the solve pipeline.
type Config struct {
	Encoding    Encoding
	Checker     Checker // CEGAR only
	Strategy    Strategy
	Solver      SolverKind
	Verbosity   Verbosity
	ZykovBranch ZykovStrategy
	ColoringAlg ColoringAlgorithm

	// Boolean toggles.
	Preprocessing    bool
	GraphReduction   bool
	SeedCliqueOrder  bool
	MycielskyLB      bool
	RemoveCj         bool
	AssignmentAMO    bool
	CliqueExplain    bool
	MycielskyExplain bool
	DominatedDecide  bool
	PositivePruning  bool
	NegativePruning  bool
	NonIncremental   bool
	BacktrackStats   bool
	WriteCNFOnly     bool

	// Integers.
	NumColors       int // only meaningful for SingleK
	PropCliqueLimit int
	MycielskyThresh int
	MntsLength      int
	MntsDepth       int

	// CNF file sink path, only honored when WriteCNFOnly is set.
	CNFPath string

	// WCNF file sink path, required by the FullMaxSAT encoding.
	WCNFPath string

	// Deterministic seed for the MNTS tabu search and any other
	// randomized tie-breaking.
	Seed int64
}

// ZykovColorPreset returns the validated default configuration for the
// Zykov external-propagator encoding.
func ZykovColorPreset() Config {
	return Config{
		Encoding:         ZykovPropagator,
		Strategy:         BottomUp,
		Solver:           CaDiCaL,
		Preprocessing:    true,
		GraphReduction:   true,
		SeedCliqueOrder:  true,
		MycielskyLB:      true,
		CliqueExplain:    true,
		MycielskyExplain: true,
		DominatedDecide:  true,
		PositivePruning:  true,
		PropCliqueLimit:  1 << 20,
		MycielskyThresh:  1,
		MntsLength:       200,
		MntsDepth:        25,
		Seed:             12345,
	}
}

// AssignmentPreset returns the validated default configuration for the
// Assignment encoding.
func AssignmentPreset() Config {
	return Config{
		Encoding:        Assignment,
		Strategy:        BottomUp,
		Solver:          Glucose,
		Preprocessing:   true,
		GraphReduction:  true,
		SeedCliqueOrder: true,
		MycielskyLB:     true,
		AssignmentAMO:   true,
		Seed:            12345,
	}
}

// PartialOrderPreset returns the validated default configuration for the
// Partial-Order encoding.
func PartialOrderPreset() Config {
	return Config{
		Encoding:        PartialOrder,
		Strategy:        BottomUp,
		Solver:          Glucose,
		Preprocessing:   true,
		GraphReduction:  true,
		SeedCliqueOrder: true,
		MycielskyLB:     true,
		Seed:            12345,
	}
}

// Validate checks for invalid or conflicting options, returning an error
// wrapping [ErrConfig] if any are found.
func (c Config) Validate() error {
	if c.Encoding == ZykovPropagator && c.Solver != CaDiCaL {
		return fmt.Errorf("%w: ZykovPropagator requires the CaDiCaL solver slot", ErrConfig)
	}
	if c.Strategy == SingleK && c.NumColors <= 0 {
		return fmt.Errorf("%w: SingleK strategy requires a positive NumColors", ErrConfig)
	}
	if c.WriteCNFOnly && c.Encoding != PartialOrder {
		return fmt.Errorf("%w: write-cnf-only is only supported for the PartialOrder encoding", ErrConfig)
	}
	if c.WriteCNFOnly && c.CNFPath == "" {
		return fmt.Errorf("%w: write-cnf-only requires a CNF output path", ErrConfig)
	}
	if c.MycielskyExplain && !c.CliqueExplain {
		return fmt.Errorf("%w: Mycielsky explanations require clique explanations to also be enabled", ErrConfig)
	}
	if c.Encoding == FullMaxSAT && c.WCNFPath == "" {
		return fmt.Errorf("%w: the FullMaxSAT encoding only writes a WCNF file and requires a WCNF output path", ErrConfig)
	}
	if c.Checker != Naive && c.Encoding != CEGAR {
		return fmt.Errorf("%w: a checker algorithm is only meaningful for the CEGAR encoding", ErrConfig)
	}
	if c.PropCliqueLimit < 0 || c.MntsLength < 0 || c.MntsDepth < 0 {
		return fmt.Errorf("%w: integer options must be nonnegative", ErrConfig)
	}
	return nil
}
