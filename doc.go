// Package gochroma decides k-colorability of an undirected graph and
// searches for its chromatic number by reducing the question to a sequence
// of Boolean satisfiability problems.
//
// Five encodings of k-colorability are provided: [Assignment],
// [PartialOrder], a Zykov contraction encoding driven by an
// external-propagator-style search (see
// [ZykovEncoding.SolveWithPropagator]), a [CEGAR] refinement loop, and a
// write-only [FullMaxSAT] weighted-CNF emitter. A [Config] selects the
// encoding, the k-search [Strategy], and the SAT [Backend], then [Solve]
// drives the chosen strategy to either a coloring or a proof that none
// exists at the requested bound.
package gochroma
