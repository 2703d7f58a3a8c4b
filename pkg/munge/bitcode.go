package munge

import (
	"math"

	"github.com/chazu/bitmunge/pkg/bitcode"
)

// MungedBitcode holds a working sequence of bitcode records, built from a
// flat terminator-delimited description and mutable through Munge. The
// sequence is always fully formed: a description or edit the interpreter
// cannot decode is reported through Fatal rather than leaving partial state.
type MungedBitcode struct {
	records    []bitcode.Record
	terminator uint64
}

// NewMungedBitcode parses a flat description array into a record sequence.
// Each record is laid out as abbrev, code, operand..., terminator. A
// description that ends before its final terminator is fatal.
func NewMungedBitcode(description []uint64, terminator uint64) *MungedBitcode {
	m := &MungedBitcode{terminator: terminator}
	pos := 0
	for pos < len(description) {
		rec, next, ok := readRecord(description, pos, terminator)
		if !ok {
			Fatal("truncated record description at index %d", pos)
			return m
		}
		m.records = append(m.records, rec)
		pos = next
	}
	return m
}

// readRecord decodes one abbrev, code, operand..., terminator group starting
// at pos. The abbrev and code fields are read positionally, so they may hold
// any value; only operands are scanned against the terminator.
func readRecord(tokens []uint64, pos int, terminator uint64) (bitcode.Record, int, bool) {
	if pos+2 > len(tokens) {
		return bitcode.Record{}, 0, false
	}
	abbrev := tokens[pos]
	code := tokens[pos+1]
	if abbrev > math.MaxUint32 {
		Fatal("abbreviation index %d at index %d does not fit in 32 bits", abbrev, pos)
		return bitcode.Record{}, 0, false
	}
	pos += 2

	var values []uint64
	for {
		if pos >= len(tokens) {
			return bitcode.Record{}, 0, false
		}
		v := tokens[pos]
		pos++
		if v == terminator {
			break
		}
		values = append(values, v)
	}
	return bitcode.NewRecord(uint32(abbrev), code, values...), pos, true
}

// Size returns the current record count.
func (m *MungedBitcode) Size() int {
	return len(m.records)
}

// Record returns the record at position i.
func (m *MungedBitcode) Record(i int) bitcode.Record {
	return m.records[i]
}

// Records returns the current records in order. The returned slice is a
// copy; mutating it does not affect the sequence.
func (m *MungedBitcode) Records() []bitcode.Record {
	out := make([]bitcode.Record, len(m.records))
	copy(out, m.records)
	return out
}
