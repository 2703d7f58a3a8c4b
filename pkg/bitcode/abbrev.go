package bitcode

import "fmt"

// Reserved abbreviation indices. Indices at or above FirstUserAbbrev refer
// to abbreviations declared earlier in the stream: user index i selects the
// (i - FirstUserAbbrev)'th declared abbreviation.
const (
	// AbbrevEndBlock terminates the innermost open block.
	AbbrevEndBlock uint32 = 0

	// AbbrevEnterBlock opens a nested block.
	AbbrevEnterBlock uint32 = 1

	// AbbrevDefine declares a new abbreviation for later records.
	AbbrevDefine uint32 = 2

	// AbbrevUnabbrev marks a record encoded without an abbreviation.
	AbbrevUnabbrev uint32 = 3

	// FirstUserAbbrev is the first index available to declared abbreviations.
	FirstUserAbbrev uint32 = 4
)

// AbbrevName returns a mnemonic for a reserved abbreviation index, or a
// generic "abbrev(N)" form for user indices.
func AbbrevName(index uint32) string {
	switch index {
	case AbbrevEndBlock:
		return "end-block"
	case AbbrevEnterBlock:
		return "enter-block"
	case AbbrevDefine:
		return "define-abbrev"
	case AbbrevUnabbrev:
		return "unabbrev"
	default:
		return fmt.Sprintf("abbrev(%d)", index)
	}
}

// CodeHeader is the record code of the canonical header record. The header
// must be the first record of a well-formed stream.
const CodeHeader uint64 = 17

// headerValues are the operands of the canonical header record: the classic
// bitcode wrapper magic.
var headerValues = []uint64{'B', 'C', 0xC0, 0xDE}

// HeaderRecord returns the canonical header record. Its abbreviation index
// carries no meaning; the writer ignores it.
func HeaderRecord() Record {
	return NewRecord(AbbrevUnabbrev, CodeHeader, headerValues...)
}

// IsHeaderRecord reports whether r matches the canonical header record,
// ignoring the abbreviation index.
func IsHeaderRecord(r Record) bool {
	if r.Code != CodeHeader || len(r.Values) != len(headerValues) {
		return false
	}
	for i, v := range headerValues {
		if r.Values[i] != v {
			return false
		}
	}
	return true
}
