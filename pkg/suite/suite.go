// Package suite loads munge scenario suites from TOML files and runs them
// through the driver variants. A suite gives a record description and its
// test scenarios an on-disk literal form, so corpora can live next to the
// code they exercise.
package suite

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/chazu/bitmunge/pkg/munge"
)

// Suite is one TOML suite file: a shared record description plus the
// scenarios run against it.
type Suite struct {
	Name       string     `toml:"name"`
	Terminator uint64     `toml:"terminator"`
	Records    []uint64   `toml:"records"`
	Scenarios  []Scenario `toml:"scenario"`
}

// Scenario is one driver run over the suite's description.
type Scenario struct {
	Name   string `toml:"name"`
	Driver string `toml:"driver"` // write, objdump, parse, compress

	Edits []uint64 `toml:"edits"`

	TryToRecover        bool `toml:"try-to-recover"`
	WriteBadAbbrevIndex bool `toml:"write-bad-abbrev-index"`

	// WantSuccess is the expected driver result.
	WantSuccess bool `toml:"want-success"`

	// WantSubstrings must each appear on some line of the captured output.
	WantSubstrings []string `toml:"want-substrings"`
}

// Result reports one scenario run.
type Result struct {
	Scenario string
	Passed   bool
	Failures []string
	Output   string
}

// Load parses a suite from a TOML file.
func Load(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var s Suite
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	for i, sc := range s.Scenarios {
		switch sc.Driver {
		case "write", "objdump", "parse", "compress":
		default:
			return nil, fmt.Errorf("%s: scenario %d (%q): unknown driver %q", path, i, sc.Name, sc.Driver)
		}
	}
	return &s, nil
}

// Run executes every scenario and reports per-scenario results.
func (s *Suite) Run() []Result {
	results := make([]Result, 0, len(s.Scenarios))
	for _, sc := range s.Scenarios {
		results = append(results, s.runScenario(sc))
	}
	return results
}

func (s *Suite) runScenario(sc Scenario) Result {
	res := Result{Scenario: sc.Name, Passed: true}

	edits := sc.Edits

	var ok bool
	var output string
	switch sc.Driver {
	case "write":
		m := munge.NewWriteMunger(s.Records, s.Terminator)
		applyFlags(&m.Munger, sc)
		ok = m.RunTest(edits)
		output = m.TestResults()
	case "objdump":
		m := munge.NewObjDumpMunger(s.Records, s.Terminator)
		applyFlags(&m.Munger, sc)
		ok = m.RunTest(edits)
		output = m.TestResults()
	case "parse":
		m := munge.NewParseMunger(s.Records, s.Terminator)
		applyFlags(&m.Munger, sc)
		ok = m.RunTest(edits, false)
		output = m.TestResults()
	case "compress":
		m := munge.NewCompressMunger(s.Records, s.Terminator)
		applyFlags(&m.Munger, sc)
		ok = m.RunTest(edits)
		output = m.TestResults()
	}
	res.Output = output

	if ok != sc.WantSuccess {
		res.Passed = false
		res.Failures = append(res.Failures,
			fmt.Sprintf("driver returned %v, want %v", ok, sc.WantSuccess))
	}
	for _, sub := range sc.WantSubstrings {
		if !containsLine(output, sub) {
			res.Passed = false
			res.Failures = append(res.Failures,
				fmt.Sprintf("output has no line containing %q", sub))
		}
	}
	return res
}

func applyFlags(m *munge.Munger, sc Scenario) {
	m.SetTryToRecoverOnWrite(sc.TryToRecover)
	m.SetWriteBadAbbrevIndex(sc.WriteBadAbbrevIndex)
}

func containsLine(output, substring string) bool {
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, substring) {
			return true
		}
	}
	return false
}
