package bitcode

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Parse decodes a bitcode stream back into records. Every problem found is
// reported as an "Error: " prefixed line on the diagnostic sink; parsing
// continues past recoverable problems (bad abbreviation indices, unbalanced
// blocks) and stops at structural ones (bad magic, truncation). The records
// decoded so far are returned alongside a non-nil error when any diagnostic
// was emitted.
func Parse(data []byte, diag io.Writer) ([]Record, error) {
	if diag == nil {
		diag = io.Discard
	}
	errs := 0
	errorf := func(format string, args ...any) {
		errs++
		fmt.Fprintf(diag, "Error: "+format+"\n", args...)
	}
	fail := func(records []Record) ([]Record, error) {
		return records, fmt.Errorf("bitcode: %d error(s) parsing stream", errs)
	}

	if len(data) < 6 || !bytes.Equal(data[:4], StreamMagic) {
		errorf("Not a bitcode stream: bad magic.")
		return fail(nil)
	}
	if version := binary.BigEndian.Uint16(data[4:6]); version > StreamVersion {
		errorf("Stream version %d is newer than supported version %d.", version, StreamVersion)
		return fail(nil)
	}

	var records []Record
	pos := 6
	declared := uint32(0)
	depth := 0

	read := func(what string) (uint64, bool) {
		v, n := binary.Uvarint(data[pos:])
		if n <= 0 {
			errorf("Truncated stream reading %s for record %d at offset %d.", what, len(records), pos)
			return 0, false
		}
		pos += n
		return v, true
	}

	for pos < len(data) {
		idx, ok := read("abbreviation index")
		if !ok {
			return fail(records)
		}
		code, ok := read("code")
		if !ok {
			return fail(records)
		}
		count, ok := read("value count")
		if !ok {
			return fail(records)
		}
		// Each value takes at least one byte, so the count bounds the alloc.
		if count > uint64(len(data)-pos) {
			errorf("Truncated stream: record %d claims %d values at offset %d.", len(records), count, pos)
			return fail(records)
		}
		values := make([]uint64, 0, count)
		for j := uint64(0); j < count; j++ {
			v, ok := read("value")
			if !ok {
				return fail(records)
			}
			values = append(values, v)
		}

		if idx > math.MaxUint32 {
			errorf("Abbreviation index %d of record %d out of range.", idx, len(records))
			idx = uint64(AbbrevUnabbrev)
		}
		abbrev := uint32(idx)
		switch {
		case abbrev == AbbrevEndBlock:
			if depth == 0 {
				errorf("Record %d ends a block, but no block is open.", len(records))
			} else {
				depth--
			}
		case abbrev == AbbrevEnterBlock:
			depth++
		case abbrev == AbbrevDefine:
			declared++
		case abbrev >= FirstUserAbbrev && abbrev-FirstUserAbbrev >= declared:
			errorf("Invalid abbreviation index %d for record %d.", abbrev, len(records))
		}

		records = append(records, NewRecord(abbrev, code, values...))
	}

	if depth > 0 {
		errorf("Stream ends with %d unterminated block(s).", depth)
	}
	if len(records) == 0 || !IsHeaderRecord(records[0]) {
		errorf("Missing or corrupt header record.")
	}

	if errs > 0 {
		return fail(records)
	}
	return records, nil
}
