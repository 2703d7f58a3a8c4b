package bitcode

import (
	"fmt"
	"strings"
)

// Record is a single bitcode record: an abbreviation index selecting the
// encoding template, a record code, and an ordered list of operand values.
// Records are plain values; copying one is safe and comparison is by content.
type Record struct {
	// AbbrevIndex selects the abbreviation governing the encoding. For
	// records that have no abbreviation (notably the header record) the
	// field still exists and its value is ignored.
	AbbrevIndex uint32

	// Code identifies what the record describes.
	Code uint64

	// Values are the record operands, in order. May be empty.
	Values []uint64
}

// NewRecord creates a record from its three fields.
func NewRecord(abbrev uint32, code uint64, values ...uint64) Record {
	r := Record{AbbrevIndex: abbrev, Code: code}
	if len(values) > 0 {
		r.Values = make([]uint64, len(values))
		copy(r.Values, values)
	}
	return r
}

// Equal reports whether two records have the same abbreviation index, code,
// and operand sequence.
func (r Record) Equal(o Record) bool {
	if r.AbbrevIndex != o.AbbrevIndex || r.Code != o.Code || len(r.Values) != len(o.Values) {
		return false
	}
	for i, v := range r.Values {
		if v != o.Values[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the record with its own operand storage.
func (r Record) Clone() Record {
	return NewRecord(r.AbbrevIndex, r.Code, r.Values...)
}

// String renders the record in the {abbrev, code, operands...} form used
// throughout the test corpus.
func (r Record) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "{%d, %d", r.AbbrevIndex, r.Code)
	for _, v := range r.Values {
		fmt.Fprintf(&sb, ", %d", v)
	}
	sb.WriteString("}")
	return sb.String()
}
