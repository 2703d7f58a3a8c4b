// Package bitcode models bitcode records and the binary stream they are
// serialized into. It is the substrate for the munge test harness: records
// are plain values, and the Writer/Parse pair gives tests a real encoder and
// reader to exercise, including deliberate fault injection on the write side.
//
// The stream format is designed for:
//   - Compact representation (varint-encoded record bodies)
//   - Simple decoding (a flat sequence of records behind a fixed preamble)
//   - Deterministic output (the same records always produce the same bytes)
//
// # Stream layout
//
// A stream starts with a 4-byte magic ("BCM0") and a big-endian uint16
// format version. Each record follows as:
//
//	[abbrev_index:uvarint] [code:uvarint] [value_count:uvarint] [values:uvarint...]
//
// Abbreviation indices below FirstUserAbbrev are reserved for structural
// records (block enter/exit, abbreviation definitions, unabbreviated
// records). User indices refer to abbreviations declared earlier in the
// stream by define-abbrev records; writing or reading an index with no such
// declaration is an error.
//
// # Fault injection
//
// WriteFlags lets tests point the encoder at reader error paths: recovery
// mode demotes records with illegal abbreviation indices to unabbreviated
// form instead of refusing, and bad-index mode deliberately emits an
// out-of-range abbreviation index so the reader has something to choke on.
package bitcode
