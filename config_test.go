package gochroma_test

import (
	"errors"
	"testing"

	. "github.com/rhansen/gochroma"
)

func TestPresetsValidate(t *testing.T) {
	t.Parallel()
	for desc, preset := range map[string]func() Config{
		"zykov-color":   ZykovColorPreset,
		"assignment":    AssignmentPreset,
		"partial-order": PartialOrderPreset,
	} {
		t.Run(desc, func(t *testing.T) {
			t.Parallel()
			if err := preset().Validate(); err != nil {
				t.Errorf("preset does not validate: %v", err)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()
	type testCase struct {
		desc   string
		mutate func(*Config)
	}
	for _, tc := range []testCase{
		{"zykov requires cadical", func(c *Config) {
			c.Encoding = ZykovPropagator
			c.Solver = Glucose
		}},
		{"single-k requires k", func(c *Config) {
			c.Strategy = SingleK
			c.NumColors = 0
		}},
		{"write-cnf-only requires partial-order", func(c *Config) {
			c.Encoding = Assignment
			c.WriteCNFOnly = true
			c.CNFPath = "out.cnf"
		}},
		{"write-cnf-only requires a path", func(c *Config) {
			c.Encoding = PartialOrder
			c.WriteCNFOnly = true
			c.CNFPath = ""
		}},
		{"mycielsky explanations require clique explanations", func(c *Config) {
			c.MycielskyExplain = true
			c.CliqueExplain = false
		}},
		{"full-maxsat requires a wcnf path", func(c *Config) {
			c.Encoding = FullMaxSAT
			c.WCNFPath = ""
		}},
		{"checker only with cegar", func(c *Config) {
			c.Encoding = Assignment
			c.Checker = Paper
		}},
		{"negative integer option", func(c *Config) {
			c.MntsLength = -1
		}},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()
			cfg := Config{Encoding: Assignment, Strategy: BottomUp, Solver: Glucose}
			tc.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrConfig) {
				t.Errorf("Validate() = %v, want an ErrConfig", err)
			}
		})
	}
}

func TestEnumStrings(t *testing.T) {
	t.Parallel()
	for got, want := range map[string]string{
		Assignment.String():      "assignment",
		PartialOrder.String():    "partial-order",
		ZykovPropagator.String(): "zykov",
		FullMaxSAT.String():      "full-maxsat",
		CEGAR.String():           "cegar",
		BottomUp.String():        "bottom-up",
		TopDown.String():         "top-down",
		SingleK.String():         "single-k",
		Naive.String():           "naive",
		SparseTriangles.String(): "sparse-triangles",
		Paper.String():           "paper",
		CadicalZykov.String():    "cadical-zykov",
		BagSize.String():         "bag-size",
		NoColoring.String():      "none",
		IteratedSEQ.String():     "iterated-seq",
	} {
		if got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
