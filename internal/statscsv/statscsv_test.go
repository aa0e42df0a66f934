package statscsv_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rhansen/gochroma/internal/statscsv"
)

func TestAppendCreatesHeaderOnce(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "stats.csv")
	row := statscsv.Row{
		Instance:         "petersen.col",
		Encoding:         "assignment",
		Strategy:         "bottom-up",
		KFound:           3,
		LBInitial:        3,
		UBInitial:        4,
		SolveTimeSeconds: 0.25,
		Conflicts:        7,
		Decisions:        12,
		Propagations:     99,
	}
	if err := statscsv.Append(path, row); err != nil {
		t.Fatal(err)
	}
	row.KFound = 4
	if err := statscsv.Append(path, row); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("%d records, want header + 2 rows", len(records))
	}
	if diff := cmp.Diff(statscsv.Columns, records[0]); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
	if records[1][0] != "petersen.col" || records[1][3] != "3" {
		t.Errorf("first data row %v", records[1])
	}
	if records[2][3] != "4" {
		t.Errorf("second data row %v", records[2])
	}
}
