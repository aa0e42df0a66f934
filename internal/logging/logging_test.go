package logging_test

import (
	"testing"

	"github.com/rhansen/gochroma/internal/logging"
)

func TestBumpLevel(t *testing.T) {
	t.Parallel()
	if got := logging.BumpLevel(logging.LevelNormal, true); got != logging.LevelDebug {
		t.Errorf("bump up from normal = %v, want debug", got)
	}
	if got := logging.BumpLevel(logging.LevelNormal, false); got != logging.LevelQuiet {
		t.Errorf("bump down from normal = %v, want quiet", got)
	}
	// Clamped at both ends.
	if got := logging.BumpLevel(logging.LevelDebug, true); got != logging.LevelDebug {
		t.Errorf("bump up from debug = %v, want debug", got)
	}
	if got := logging.BumpLevel(logging.LevelQuiet, false); got != logging.LevelQuiet {
		t.Errorf("bump down from quiet = %v, want quiet", got)
	}
}

func TestStringToLevel(t *testing.T) {
	t.Parallel()
	lvl, err := logging.StringToLevel("Debug")
	if err != nil || lvl != logging.LevelDebug {
		t.Errorf("StringToLevel(Debug) = %v, %v", lvl, err)
	}
	lvl, err = logging.StringToLevel("quiet")
	if err != nil || lvl != logging.LevelQuiet {
		t.Errorf("StringToLevel(quiet) = %v, %v", lvl, err)
	}
	if _, err := logging.StringToLevel("loud"); err == nil {
		t.Error("invalid verbosity accepted")
	}
}
