package munge

import (
	"strings"
	"testing"

	"github.com/chazu/bitmunge/pkg/bitcode"
)

func TestMungeReplace(t *testing.T) {
	m := NewMungedBitcode(twoRecords, term)
	m.Munge([]uint64{1, uint64(Replace), 3, 9, 42, term})

	if m.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", m.Size())
	}
	if want := bitcode.NewRecord(3, 9, 42); !m.Record(1).Equal(want) {
		t.Errorf("Record(1) = %s, want %s", m.Record(1), want)
	}
	if want := bitcode.NewRecord(3, 1); !m.Record(0).Equal(want) {
		t.Errorf("Record(0) = %s, want %s (replace touched the wrong record)", m.Record(0), want)
	}
}

func TestMungeInsertBefore(t *testing.T) {
	m := NewMungedBitcode(twoRecords, term)
	m.Munge([]uint64{0, uint64(InsertBefore), 3, 5, term})

	if m.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", m.Size())
	}
	if want := bitcode.NewRecord(3, 5); !m.Record(0).Equal(want) {
		t.Errorf("Record(0) = %s, want %s", m.Record(0), want)
	}
	if want := bitcode.NewRecord(3, 1); !m.Record(1).Equal(want) {
		t.Errorf("Record(1) = %s, want %s", m.Record(1), want)
	}
}

func TestMungeInsertBeforeAtEnd(t *testing.T) {
	// insert-before accepts target == size: an append.
	m := NewMungedBitcode(twoRecords, term)
	m.Munge([]uint64{2, uint64(InsertBefore), 3, 5, term})

	if m.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", m.Size())
	}
	if want := bitcode.NewRecord(3, 5); !m.Record(2).Equal(want) {
		t.Errorf("Record(2) = %s, want %s", m.Record(2), want)
	}
}

func TestMungeInsertAfter(t *testing.T) {
	m := NewMungedBitcode(twoRecords, term)
	m.Munge([]uint64{0, uint64(InsertAfter), 3, 5, term})

	if m.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", m.Size())
	}
	if want := bitcode.NewRecord(3, 5); !m.Record(1).Equal(want) {
		t.Errorf("Record(1) = %s, want %s", m.Record(1), want)
	}
}

func TestMungeRemove(t *testing.T) {
	m := NewMungedBitcode(twoRecords, term)
	// The record fields of a remove edit are ignored but must be present.
	m.Munge([]uint64{0, uint64(Remove), 0, 0, term})

	if m.Size() != 1 {
		t.Fatalf("Size() = %d, want 1", m.Size())
	}
	if want := bitcode.NewRecord(3, 2, 7); !m.Record(0).Equal(want) {
		t.Errorf("Record(0) = %s, want %s", m.Record(0), want)
	}
}

func TestMungeInsertThenRemove(t *testing.T) {
	// Each edit applies immediately: the remove sees indices as shifted by
	// the preceding insert.
	m := NewMungedBitcode(twoRecords, term)
	m.Munge([]uint64{
		0, uint64(InsertBefore), 3, 0, term,
		1, uint64(Remove), 0, 0, term,
	})

	if m.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", m.Size())
	}
	if want := bitcode.NewRecord(3, 0); !m.Record(0).Equal(want) {
		t.Errorf("Record(0) = %s, want inserted record %s", m.Record(0), want)
	}
	// The remove targeted index 1, which after the insert held the record
	// originally at index 0.
	if want := bitcode.NewRecord(3, 2, 7); !m.Record(1).Equal(want) {
		t.Errorf("Record(1) = %s, want %s", m.Record(1), want)
	}
}

func TestMungeLinearity(t *testing.T) {
	// Applying the whole edit array at once matches applying the edits one
	// at a time.
	edits := [][]uint64{
		{1, uint64(Replace), 3, 9, 42, term},
		{0, uint64(InsertAfter), 3, 5, term},
		{2, uint64(Remove), 0, 0, term},
	}

	all := NewMungedBitcode(twoRecords, term)
	var flat []uint64
	for _, e := range edits {
		flat = append(flat, e...)
	}
	all.Munge(flat)

	stepped := NewMungedBitcode(twoRecords, term)
	for _, e := range edits {
		stepped.Munge(e)
	}

	if all.Size() != stepped.Size() {
		t.Fatalf("sizes differ: %d vs %d", all.Size(), stepped.Size())
	}
	for i := 0; i < all.Size(); i++ {
		if !all.Record(i).Equal(stepped.Record(i)) {
			t.Errorf("record %d differs: %s vs %s", i, all.Record(i), stepped.Record(i))
		}
	}
}

func TestMungeEmptyEditArray(t *testing.T) {
	for _, edits := range [][]uint64{nil, {term}} {
		m := NewMungedBitcode(twoRecords, term)
		m.Munge(edits)

		if m.Size() != 2 {
			t.Fatalf("Munge(%v): Size() = %d, want 2", edits, m.Size())
		}
		orig := NewMungedBitcode(twoRecords, term)
		for i := 0; i < m.Size(); i++ {
			if !m.Record(i).Equal(orig.Record(i)) {
				t.Errorf("Munge(%v): record %d = %s, want %s", edits, i, m.Record(i), orig.Record(i))
			}
		}
	}
}

func TestMungeOutOfRange(t *testing.T) {
	tests := []struct {
		name  string
		edits []uint64
	}{
		{"replace past end", []uint64{5, uint64(Replace), 3, 0, term}},
		{"replace at size", []uint64{2, uint64(Replace), 3, 0, term}},
		{"insert-before past size", []uint64{3, uint64(InsertBefore), 3, 0, term}},
		{"insert-after at size", []uint64{2, uint64(InsertAfter), 3, 0, term}},
		{"remove at size", []uint64{2, uint64(Remove), 0, 0, term}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMungedBitcode(twoRecords, term)
			msg, fired := captureFatal(t, func() {
				m.Munge(tt.edits)
			})
			if !fired {
				t.Fatal("out-of-range edit did not invoke Fatal")
			}
			if !strings.Contains(msg, "out of range") {
				t.Errorf("Fatal message = %q, want out-of-range complaint", msg)
			}
		})
	}
}

func TestMungeUnknownAction(t *testing.T) {
	m := NewMungedBitcode(twoRecords, term)
	msg, fired := captureFatal(t, func() {
		m.Munge([]uint64{0, 9, 3, 0, term})
	})
	if !fired {
		t.Fatal("unknown action did not invoke Fatal")
	}
	if !strings.Contains(msg, "unknown edit action 9") {
		t.Errorf("Fatal message = %q, want unknown-action complaint", msg)
	}
}

func TestMungeTruncatedEdit(t *testing.T) {
	tests := []struct {
		name  string
		edits []uint64
	}{
		{"target only", []uint64{1, term}},
		{"no record fields", []uint64{1, uint64(Replace)}},
		{"unterminated record", []uint64{1, uint64(Replace), 3, 9, 42}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMungedBitcode(twoRecords, term)
			if _, fired := captureFatal(t, func() { m.Munge(tt.edits) }); !fired {
				t.Fatal("truncated edit did not invoke Fatal")
			}
		})
	}
}

func TestEditActionValues(t *testing.T) {
	// The numeric assignments are an external contract.
	if InsertBefore != 0 || InsertAfter != 1 || Remove != 2 || Replace != 3 {
		t.Errorf("action codes = %d,%d,%d,%d, want 0,1,2,3",
			InsertBefore, InsertAfter, Remove, Replace)
	}
}

func TestEditActionString(t *testing.T) {
	tests := []struct {
		action EditAction
		want   string
	}{
		{InsertBefore, "insert-before"},
		{InsertAfter, "insert-after"},
		{Remove, "remove"},
		{Replace, "replace"},
		{EditAction(9), "EditAction(9)"},
	}
	for _, tt := range tests {
		if got := tt.action.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
