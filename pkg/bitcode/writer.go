package bitcode

import (
	"encoding/binary"
	"fmt"
	"io"
)

// StreamVersion is the current stream format version.
// Increment when making incompatible changes to the format.
const StreamVersion uint16 = 1

// StreamMagic identifies a bitcode munge stream: "BCM0".
var StreamMagic = []byte{'B', 'C', 'M', '0'}

// WriteFlags configures encoder-side fault injection and recovery. The zero
// value disables both switches.
type WriteFlags struct {
	tryToRecover        bool
	writeBadAbbrevIndex bool
}

// SetTryToRecover controls whether the writer emits a best-effort stream
// when it detects ill-formed input, instead of refusing.
func (f *WriteFlags) SetTryToRecover(v bool) { f.tryToRecover = v }

// TryToRecover returns the recovery switch.
func (f *WriteFlags) TryToRecover() bool { return f.tryToRecover }

// SetWriteBadAbbrevIndex controls whether the writer deliberately emits an
// out-of-range abbreviation index, to exercise reader error paths.
func (f *WriteFlags) SetWriteBadAbbrevIndex(v bool) { f.writeBadAbbrevIndex = v }

// WriteBadAbbrevIndex returns the bad-index switch.
func (f *WriteFlags) WriteBadAbbrevIndex() bool { return f.writeBadAbbrevIndex }

// Writer encodes record sequences into bitcode streams. Diagnostics are
// written to the supplied sink as "Error: " prefixed lines.
type Writer struct {
	flags WriteFlags
	diag  io.Writer
}

// NewWriter creates a writer with the given flags. A nil diagnostic sink
// discards diagnostics.
func NewWriter(flags WriteFlags, diag io.Writer) *Writer {
	if diag == nil {
		diag = io.Discard
	}
	return &Writer{flags: flags, diag: diag}
}

// Write encodes the record sequence and returns the stream bytes. A record
// whose abbreviation index names an undeclared abbreviation aborts the write
// unless recovery is enabled, in which case it is demoted to an
// unabbreviated record and the write continues.
func (w *Writer) Write(records []Record) ([]byte, error) {
	buf := make([]byte, 0, 6+16*len(records))
	buf = append(buf, StreamMagic...)
	buf = binary.BigEndian.AppendUint16(buf, StreamVersion)

	declared := uint32(0) // abbreviations defined so far
	injected := false

	for i, r := range records {
		idx := r.AbbrevIndex
		switch {
		case i == 0 && IsHeaderRecord(r):
			// The header has no abbreviation; its index is ignored.
			idx = AbbrevUnabbrev
		case w.flags.writeBadAbbrevIndex && !injected:
			// Emit the first invalid index at this point in the stream.
			idx = FirstUserAbbrev + declared
			injected = true
		case idx >= FirstUserAbbrev && idx-FirstUserAbbrev >= declared:
			if !w.flags.tryToRecover {
				fmt.Fprintf(w.diag, "Error: Record %d uses illegal abbreviation index %d. Unable to continue.\n", i, idx)
				return nil, fmt.Errorf("bitcode: record %d uses illegal abbreviation index %d", i, idx)
			}
			fmt.Fprintf(w.diag, "Error: Record %d uses illegal abbreviation index %d. Converting to unabbreviated record.\n", i, idx)
			idx = AbbrevUnabbrev
		}

		buf = binary.AppendUvarint(buf, uint64(idx))
		buf = binary.AppendUvarint(buf, r.Code)
		buf = binary.AppendUvarint(buf, uint64(len(r.Values)))
		for _, v := range r.Values {
			buf = binary.AppendUvarint(buf, v)
		}

		if r.AbbrevIndex == AbbrevDefine {
			declared++
		}
	}

	return buf, nil
}
