// Package dimacs reads DIMACS-format graph files for cmd/gochroma.
package dimacs

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rhansen/gochroma"
)

// Read parses a DIMACS "p edge n m" graph file from r: comment lines start
// with 'c', the problem line is "p edge <n> <m>", and each edge line is
// "e <u> <v>" with 1-based vertex ids.
func Read(r io.Reader) (*gochroma.Graph, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	var g *gochroma.Graph
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == 'c' {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "p":
			if len(fields) < 3 {
				return nil, fmt.Errorf("%w: line %d: malformed problem line %q", gochroma.ErrInput, lineNo, line)
			}
			if fields[1] != "edge" && fields[1] != "col" {
				return nil, fmt.Errorf("%w: line %d: unsupported format %q, want \"edge\" or \"col\"", gochroma.ErrInput, lineNo, fields[1])
			}
			n, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: bad vertex count %q: %v", gochroma.ErrInput, lineNo, fields[2], err)
			}
			g = gochroma.NewGraph(n)
		case "e":
			if g == nil {
				return nil, fmt.Errorf("%w: line %d: edge line before problem line", gochroma.ErrInput, lineNo)
			}
			if len(fields) < 3 {
				return nil, fmt.Errorf("%w: line %d: malformed edge line %q", gochroma.ErrInput, lineNo, line)
			}
			u, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: bad endpoint %q: %v", gochroma.ErrInput, lineNo, fields[1], err)
			}
			v, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: bad endpoint %q: %v", gochroma.ErrInput, lineNo, fields[2], err)
			}
			if u < 1 || u > g.N() || v < 1 || v > g.N() {
				return nil, fmt.Errorf("%w: line %d: edge endpoint out of range [1,%d]", gochroma.ErrInput, lineNo, g.N())
			}
			g.AddEdge(u-1, v-1)
		default:
			// Unrecognized line kinds (n, d, v, x, ...) are part of the
			// broader DIMACS family but carry no adjacency information
			// this reader needs; skip rather than error.
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", gochroma.ErrInput, err)
	}
	if g == nil {
		return nil, fmt.Errorf("%w: no problem line found", gochroma.ErrInput)
	}
	return g, nil
}
