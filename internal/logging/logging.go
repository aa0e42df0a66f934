// Package logging maps the three verbosities gochroma's [Config] exposes
// (Quiet, Normal, Debug) onto [log/slog] levels.
package logging

import (
	"fmt"
	"log/slog"
	"strings"
)

const (
	LevelQuiet  = slog.LevelWarn + 4 // only fatal/summary output
	LevelNormal = slog.LevelInfo
	LevelDebug  = slog.LevelDebug
)

var tiers = []slog.Level{LevelQuiet, LevelNormal, LevelDebug}

var validLevels = []string{"quiet", "normal", "debug"}

// BumpLevel moves lvl one tier up (raise=true, towards Debug) or down
// (raise=false, towards Quiet) among the three verbosities, clamping at
// either end.
func BumpLevel(lvl slog.Level, raise bool) slog.Level {
	idx := 0
	for i, t := range tiers {
		if t == lvl {
			idx = i
			break
		}
	}
	if raise {
		idx++
	} else {
		idx--
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(tiers) {
		idx = len(tiers) - 1
	}
	return tiers[idx]
}

// StringToLevel parses one of "quiet", "normal", "debug" (case-insensitive)
// into its [slog.Level].
func StringToLevel(arg string) (slog.Level, error) {
	switch strings.ToLower(arg) {
	case "quiet":
		return LevelQuiet, nil
	case "normal":
		return LevelNormal, nil
	case "debug":
		return LevelDebug, nil
	default:
		return 0, fmt.Errorf("invalid verbosity %q; expected one of: %s", arg, strings.Join(validLevels, ", "))
	}
}
