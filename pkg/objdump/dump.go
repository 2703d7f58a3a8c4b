// Package objdump renders bitcode streams as human-readable listings for
// test assertions: a record section in the {abbrev, code, operands...}
// literal form, and an assembly-like section with one mnemonic line per
// record.
package objdump

import (
	"fmt"
	"io"

	"github.com/chazu/bitmunge/pkg/bitcode"
)

// Options controls which sections of the listing are produced. Parse
// diagnostics are always written regardless.
type Options struct {
	// NoRecords suppresses the record listing.
	NoRecords bool

	// NoAssembly suppresses the assembly rendering.
	NoAssembly bool
}

// Dump parses the stream and writes the listing to w. Parse diagnostics
// appear first, as "Error: " prefixed lines. Returns a non-nil error when
// the stream did not parse cleanly.
func Dump(w io.Writer, data []byte, opts Options) error {
	records, err := bitcode.Parse(data, w)

	if !opts.NoRecords {
		fmt.Fprintf(w, "; Bitcode Stream v%d\n", bitcode.StreamVersion)
		fmt.Fprintf(w, "; Records:\n")
		for i, r := range records {
			fmt.Fprintf(w, ";   [%3d] %s\n", i, r)
		}
	}

	if !opts.NoAssembly {
		if !opts.NoRecords {
			fmt.Fprintf(w, "\n")
		}
		for i, r := range records {
			fmt.Fprintf(w, "%4d  %s\n", i, assemble(r))
		}
	}

	return err
}

// assemble renders one record as a mnemonic line.
func assemble(r bitcode.Record) string {
	if bitcode.IsHeaderRecord(r) {
		return fmt.Sprintf("HEADER 'BC' 0x%02X 0x%02X", r.Values[2], r.Values[3])
	}
	switch r.AbbrevIndex {
	case bitcode.AbbrevEndBlock:
		return "END_BLOCK"
	case bitcode.AbbrevEnterBlock:
		return fmt.Sprintf("ENTER_BLOCK code=%d %v", r.Code, r.Values)
	case bitcode.AbbrevDefine:
		return fmt.Sprintf("DEFINE_ABBREV code=%d %v", r.Code, r.Values)
	case bitcode.AbbrevUnabbrev:
		return fmt.Sprintf("UNABBREV code=%d %v", r.Code, r.Values)
	default:
		return fmt.Sprintf("ABBREV(%d) code=%d %v", r.AbbrevIndex, r.Code, r.Values)
	}
}
