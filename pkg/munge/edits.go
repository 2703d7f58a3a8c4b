package munge

import (
	"fmt"
	"slices"
)

// EditAction selects the effect of one edit on the working record sequence.
// The numeric values are part of the description-array contract and must
// not be reordered.
type EditAction uint64

const (
	// InsertBefore shifts the record at the target index and all records
	// after it right by one, and places the new record at the target index.
	InsertBefore EditAction = 0

	// InsertAfter places the new record at target index + 1.
	InsertAfter EditAction = 1

	// Remove deletes the record at the target index. The record fields of
	// the edit are ignored but must still be present and terminated.
	Remove EditAction = 2

	// Replace overwrites the record at the target index.
	Replace EditAction = 3
)

// String returns a human-readable name for the action.
func (a EditAction) String() string {
	switch a {
	case InsertBefore:
		return "insert-before"
	case InsertAfter:
		return "insert-after"
	case Remove:
		return "remove"
	case Replace:
		return "replace"
	default:
		return fmt.Sprintf("EditAction(%d)", uint64(a))
	}
}

// Munge applies a flat edit array to the record sequence. Each edit is laid
// out as target-index, action, abbrev, code, operand..., terminator, and is
// applied as soon as it is decoded: later edits see the indices as shifted
// by earlier ones. A truncated edit, an out-of-range target, or an unknown
// action is fatal. A nil array, or one holding a single terminator token,
// is a no-op.
func (m *MungedBitcode) Munge(edits []uint64) {
	pos := 0
	for pos < len(edits) {
		// A lone trailing terminator marks an empty remainder.
		if pos+1 == len(edits) && edits[pos] == m.terminator {
			return
		}
		start := pos
		if pos+2 > len(edits) {
			Fatal("truncated edit at index %d", start)
			return
		}
		target := edits[pos]
		action := EditAction(edits[pos+1])
		rec, next, ok := readRecord(edits, pos+2, m.terminator)
		if !ok {
			Fatal("edit at index %d is not terminated", start)
			return
		}
		pos = next

		size := uint64(len(m.records))
		switch action {
		case InsertBefore:
			if target > size {
				Fatal("insert-before index %d out of range (sequence has %d records)", target, size)
				return
			}
			m.records = slices.Insert(m.records, int(target), rec)
		case InsertAfter:
			if target >= size {
				Fatal("insert-after index %d out of range (sequence has %d records)", target, size)
				return
			}
			m.records = slices.Insert(m.records, int(target)+1, rec)
		case Remove:
			if target >= size {
				Fatal("remove index %d out of range (sequence has %d records)", target, size)
				return
			}
			m.records = slices.Delete(m.records, int(target), int(target)+1)
		case Replace:
			if target >= size {
				Fatal("replace index %d out of range (sequence has %d records)", target, size)
				return
			}
			m.records[int(target)] = rec
		default:
			Fatal("unknown edit action %d at index %d", uint64(action), start)
			return
		}
	}
}
