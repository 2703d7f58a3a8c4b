package munge

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/chazu/bitmunge/pkg/bitcode"
)

// noResults is the sentinel returned by TestResults before any run finishes.
const noResults = "Error: No previous dump results!\n"

// Munger is the shared state of the driver variants. It owns the working
// record sequence, the encoded stream, and the diagnostic capture for the
// most recent run. A munger is reusable: every setup rebuilds the sequence
// from the original description, so runs are independent of each other.
type Munger struct {
	description []uint64
	terminator  uint64
	bitcode     *MungedBitcode
	results     string
	stream      []byte
	dump        *bytes.Buffer
	foundErrors bool
	writeFlags  bitcode.WriteFlags
	deathTest   bool
}

func newMunger(description []uint64, terminator uint64) Munger {
	desc := make([]uint64, len(description))
	copy(desc, description)
	return Munger{
		description: desc,
		terminator:  terminator,
		// Validate the description now, so a bad literal fails at
		// construction rather than on first run.
		bitcode: NewMungedBitcode(desc, terminator),
		results: noResults,
	}
}

// RunAsDeathTest returns whether diagnostics are routed to stderr.
func (m *Munger) RunAsDeathTest() bool { return m.deathTest }

// SetRunAsDeathTest routes diagnostics to the process error stream instead
// of the in-memory buffer, so a framework observing a dying child process
// can match against them.
func (m *Munger) SetRunAsDeathTest(v bool) { m.deathTest = v }

// SetTryToRecoverOnWrite enables encoder error recovery for the next run.
func (m *Munger) SetTryToRecoverOnWrite(v bool) { m.writeFlags.SetTryToRecover(v) }

// SetWriteBadAbbrevIndex makes the encoder emit a bad abbreviation index
// during the next run.
func (m *Munger) SetWriteBadAbbrevIndex(v bool) { m.writeFlags.SetWriteBadAbbrevIndex(v) }

// Bitcode returns the working record sequence of the current run.
func (m *Munger) Bitcode() *MungedBitcode { return m.bitcode }

// Munge applies edits to the working record sequence.
func (m *Munger) Munge(edits []uint64) { m.bitcode.Munge(edits) }

// Stream returns the encoded stream produced by the last setup.
func (m *Munger) Stream() []byte { return m.stream }

// SetupTest rebuilds the record sequence from the original description,
// applies the given edits, and encodes the result into the owned stream
// buffer. When addHeader is set the canonical header record is prepended
// first. Returns false if the encoder refused and recovery was not enabled.
func (m *Munger) SetupTest(edits []uint64, addHeader bool) bool {
	m.dump = &bytes.Buffer{}
	m.foundErrors = false
	m.bitcode = NewMungedBitcode(m.description, m.terminator)
	m.bitcode.Munge(edits)

	records := m.bitcode.Records()
	if addHeader {
		records = append([]bitcode.Record{bitcode.HeaderRecord()}, records...)
	}

	w := bitcode.NewWriter(m.writeFlags, m.dumpStream())
	stream, err := w.Write(records)
	if err != nil {
		io.WriteString(m.Error(), "Unable to generate bitcode stream due to write errors\n")
		return false
	}
	m.stream = stream
	return true
}

// CleanupTest finalizes the diagnostic capture into the results string and
// reports whether the run found no errors. In death-test mode the results
// string is left untouched, since diagnostics went to stderr.
func (m *Munger) CleanupTest() bool {
	if !m.deathTest && m.dump != nil {
		m.results = m.dump.String()
	}
	m.dump = nil
	return !m.foundErrors
}

// TestResults returns the diagnostic text captured by the last run.
func (m *Munger) TestResults() string { return m.results }

// LinesWithSubstring returns the lines of TestResults containing the given
// substring, newline-joined.
func (m *Munger) LinesWithSubstring(substring string) string {
	return m.linesWithTextMatch(substring, false)
}

// LinesWithPrefix returns the lines of TestResults starting with the given
// prefix, newline-joined.
func (m *Munger) LinesWithPrefix(prefix string) string {
	return m.linesWithTextMatch(prefix, true)
}

func (m *Munger) linesWithTextMatch(text string, mustBePrefix bool) string {
	var sb strings.Builder
	lines := strings.Split(m.results, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	for _, line := range lines {
		match := strings.Contains(line, text)
		if mustBePrefix {
			match = strings.HasPrefix(line, text)
		}
		if match {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Error records that the run found an error and returns the diagnostic sink
// with an "error: " prefix already written, ready for the message.
func (m *Munger) Error() io.Writer {
	m.foundErrors = true
	w := m.dumpStream()
	io.WriteString(w, "error: ")
	return w
}

// dumpStream returns the sink for the current run. Death tests write to
// stderr so the diagnostics survive the dying process; everything else is
// buffered for TestResults.
func (m *Munger) dumpStream() io.Writer {
	if m.deathTest {
		return os.Stderr
	}
	if m.dump == nil {
		return os.Stderr
	}
	return m.dump
}
