package gochroma_test

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	. "github.com/rhansen/gochroma"
)

func TestWriteMaxSAT(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := WriteMaxSAT(&buf, complete(3), 3, []int{0, 1, 2}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

	header := strings.Fields(lines[0])
	if len(header) != 5 || header[0] != "p" || header[1] != "wcnf" {
		t.Fatalf("malformed problem line %q", lines[0])
	}
	nbVars, _ := strconv.Atoi(header[2])
	nbClauses, _ := strconv.Atoi(header[3])
	top, _ := strconv.Atoi(header[4])
	if nbVars != 3*3+3 {
		t.Errorf("declared %d variables, want 12 (9 assignment + 3 used)", nbVars)
	}
	if got := len(lines) - 1; got != nbClauses {
		t.Errorf("declared %d clauses, emitted %d", nbClauses, got)
	}

	soft := 0
	for _, ln := range lines[1:] {
		fields := strings.Fields(ln)
		if fields[len(fields)-1] != "0" {
			t.Fatalf("clause %q not zero-terminated", ln)
		}
		w, err := strconv.Atoi(fields[0])
		if err != nil {
			t.Fatalf("clause %q has no leading weight", ln)
		}
		switch w {
		case top:
		case 1:
			soft++
		default:
			t.Errorf("clause %q has weight %d, want %d (hard) or 1 (soft)", ln, w, top)
		}
	}
	// One soft clause per color slot: the optimum violates exactly χ of
	// them.
	if soft != 3 {
		t.Errorf("%d soft clauses, want 3", soft)
	}
	if top <= 3 {
		t.Errorf("top weight %d does not dominate the soft sum", top)
	}
}

func TestWriteMaxSATRejectsNonPositiveBudget(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := WriteMaxSAT(&buf, complete(3), 0, nil); err == nil {
		t.Error("zero color budget accepted")
	}
}
