package gochroma

import "github.com/rhansen/gochroma/internal/statscsv"

// Row converts s into a [statscsv.Row] ready for [statscsv.Append], naming
// instance and the configuration's encoding/strategy for the CSV columns.
func (s SolveStats) Row(instance string, cfg Config) statscsv.Row {
	return statscsv.Row{
		Instance:              instance,
		Encoding:              cfg.Encoding.String(),
		Strategy:              cfg.Strategy.String(),
		KFound:                s.KFound,
		LBInitial:             s.LBInitial,
		UBInitial:             s.UBInitial,
		SolveTimeSeconds:      s.SolveTime.Seconds(),
		Conflicts:             s.Conflicts,
		Decisions:             s.Decisions,
		Propagations:          s.Propagations,
		CliqueExplanations:    s.CliqueExplanations,
		MycielskyExplanations: s.MycielskyExplanations,
	}
}
