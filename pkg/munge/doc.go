// Package munge is a test harness for generating bitcode streams from flat
// record descriptions, optionally editing ("munging") the record sequence,
// and running downstream tools against the encoded bytes while capturing
// their diagnostics.
//
// Records and edits are described as flat uint64 arrays so tests can be
// written as literals. A record is laid out as
//
//	abbrev, code, operand..., terminator
//
// and an edit as
//
//	target-index, action, abbrev, code, operand..., terminator
//
// where the terminator is a caller-chosen sentinel that delimits entries and
// must not occur as an operand. Edits apply immediately and in order, so a
// later edit sees the sequence as left by its predecessors.
//
// Generally any legal or illegal record sequence can be generated. When the
// harness itself cannot make sense of a description or edit array, the Fatal
// channel is invoked and execution does not continue.
//
// Four driver variants wrap the downstream tools: WriteMunger (encoder
// only), ObjDumpMunger, ParseMunger, and CompressMunger. Each follows the
// same lifecycle: set up (munge and encode), invoke the tool, then clean
// up and report success as the absence of captured errors.
package munge
