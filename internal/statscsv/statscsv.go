// Package statscsv appends one solve's statistics as a row of a CSV sink.
package statscsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Columns is the fixed column order of the statistics sink.
var Columns = []string{
	"instance", "encoding", "strategy", "k_found", "lb_initial", "ub_initial",
	"solve_time", "conflicts", "decisions", "propagations",
	"clique_explanations", "mycielsky_explanations",
}

// Row holds one solve's worth of statistics, named after the columns above.
type Row struct {
	Instance              string
	Encoding              string
	Strategy              string
	KFound                int
	LBInitial             int
	UBInitial             int
	SolveTimeSeconds      float64
	Conflicts             int
	Decisions             int
	Propagations          int
	CliqueExplanations    int
	MycielskyExplanations int
}

func (r Row) record() []string {
	return []string{
		r.Instance,
		r.Encoding,
		r.Strategy,
		strconv.Itoa(r.KFound),
		strconv.Itoa(r.LBInitial),
		strconv.Itoa(r.UBInitial),
		strconv.FormatFloat(r.SolveTimeSeconds, 'f', 6, 64),
		strconv.Itoa(r.Conflicts),
		strconv.Itoa(r.Decisions),
		strconv.Itoa(r.Propagations),
		strconv.Itoa(r.CliqueExplanations),
		strconv.Itoa(r.MycielskyExplanations),
	}
}

// Append writes row to path, creating the file and its header if it does
// not already exist, or appending a bare data row if it does.
func Append(path string, row Row) error {
	_, err := os.Stat(path)
	needsHeader := os.IsNotExist(err)
	if err != nil && !needsHeader {
		return fmt.Errorf("statscsv: stat %s: %w", path, err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("statscsv: open %s: %w", path, err)
	}
	defer f.Close()
	return write(f, row, needsHeader)
}

func write(w io.Writer, row Row, header bool) error {
	cw := csv.NewWriter(w)
	if header {
		if err := cw.Write(Columns); err != nil {
			return fmt.Errorf("statscsv: write header: %w", err)
		}
	}
	if err := cw.Write(row.record()); err != nil {
		return fmt.Errorf("statscsv: write row: %w", err)
	}
	cw.Flush()
	return cw.Error()
}
