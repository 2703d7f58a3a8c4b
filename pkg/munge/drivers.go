package munge

import (
	"github.com/chazu/bitmunge/pkg/bitcode"
	"github.com/chazu/bitmunge/pkg/compress"
	"github.com/chazu/bitmunge/pkg/objdump"
)

// WriteMunger runs the raw encoder with no downstream consumer.
type WriteMunger struct {
	Munger
}

// NewWriteMunger creates a write driver over the given flat description.
func NewWriteMunger(description []uint64, terminator uint64) *WriteMunger {
	return &WriteMunger{newMunger(description, terminator)}
}

// RunTest encodes the munged record sequence, capturing any encoder
// diagnostics. A nil edit array applies no edits. Returns true if the
// encoder succeeded under the current write flags.
func (m *WriteMunger) RunTest(edits []uint64) bool {
	m.SetupTest(edits, false)
	return m.CleanupTest()
}

// ObjDumpMunger runs the object-dump tool on the encoded stream.
type ObjDumpMunger struct {
	Munger
}

// NewObjDumpMunger creates an object-dump driver over the given flat
// description.
func NewObjDumpMunger(description []uint64, terminator uint64) *ObjDumpMunger {
	return &ObjDumpMunger{newMunger(description, terminator)}
}

// RunTestWithFlags encodes the munged record sequence and dumps it.
// AddHeader assumes the description carries no header record and prepends
// the canonical one. NoRecords and NoAssembly are passed through to the
// dumper. Returns true if the dump produced no errors.
func (m *ObjDumpMunger) RunTestWithFlags(edits []uint64, addHeader, noRecords, noAssembly bool) bool {
	if !m.SetupTest(edits, addHeader) {
		return m.CleanupTest()
	}
	opts := objdump.Options{NoRecords: noRecords, NoAssembly: noAssembly}
	if err := objdump.Dump(m.dumpStream(), m.Stream(), opts); err != nil {
		m.foundErrors = true
	}
	return m.CleanupTest()
}

// RunTest dumps with a header added and both the record listing and the
// assembly enabled.
func (m *ObjDumpMunger) RunTest(edits []uint64) bool {
	return m.RunTestWithFlags(edits, true, false, false)
}

// RunTestForAssembly dumps only the assembly and any errors.
func (m *ObjDumpMunger) RunTestForAssembly(edits []uint64) bool {
	return m.RunTestWithFlags(edits, true, true, false)
}

// RunTestForErrors dumps only the errors.
func (m *ObjDumpMunger) RunTestForErrors(edits []uint64) bool {
	return m.RunTestWithFlags(edits, true, true, true)
}

// RunTestNamed is RunTest with the retired test-name parameter.
//
// Deprecated: test names are no longer used; the name is ignored.
func (m *ObjDumpMunger) RunTestNamed(_ string, edits []uint64) bool {
	return m.RunTest(edits)
}

// ParseMunger runs the stream parser on the encoded stream.
type ParseMunger struct {
	Munger
}

// NewParseMunger creates a parse driver over the given flat description.
func NewParseMunger(description []uint64, terminator uint64) *ParseMunger {
	return &ParseMunger{newMunger(description, terminator)}
}

// RunTest encodes the munged record sequence with a header added, then
// parses it back, capturing parse diagnostics. The verboseErrors parameter
// is retained for compatibility and is ignored. Returns true if the parse
// produced no errors.
func (m *ParseMunger) RunTest(edits []uint64, verboseErrors bool) bool {
	_ = verboseErrors // no longer consulted
	if !m.SetupTest(edits, true) {
		return m.CleanupTest()
	}
	if _, err := bitcode.Parse(m.Stream(), m.dumpStream()); err != nil {
		m.foundErrors = true
	}
	return m.CleanupTest()
}

// CompressMunger runs the compressor on the encoded stream.
type CompressMunger struct {
	Munger
}

// NewCompressMunger creates a compress driver over the given flat
// description.
func NewCompressMunger(description []uint64, terminator uint64) *CompressMunger {
	return &CompressMunger{newMunger(description, terminator)}
}

// RunTest encodes the munged record sequence with a header added, then
// compresses it, capturing diagnostics. Returns true if compression
// produced no errors.
func (m *CompressMunger) RunTest(edits []uint64) bool {
	if !m.SetupTest(edits, true) {
		return m.CleanupTest()
	}
	if _, err := compress.Compress(m.Stream(), m.dumpStream()); err != nil {
		m.foundErrors = true
	}
	return m.CleanupTest()
}
