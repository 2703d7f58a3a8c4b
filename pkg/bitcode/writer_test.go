package bitcode

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteParseRoundTrip(t *testing.T) {
	records := []Record{
		HeaderRecord(),
		NewRecord(AbbrevUnabbrev, 1),
		NewRecord(AbbrevUnabbrev, 2, 7, 8, 9),
	}

	w := NewWriter(WriteFlags{}, nil)
	stream, err := w.Write(records)
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	var diag bytes.Buffer
	got, err := Parse(stream, &diag)
	if err != nil {
		t.Fatalf("Parse() error: %v\ndiagnostics:\n%s", err, diag.String())
	}
	if len(got) != len(records) {
		t.Fatalf("Parse() returned %d records, want %d", len(got), len(records))
	}
	for i := range records {
		if !got[i].Equal(records[i]) {
			t.Errorf("record %d = %s, want %s", i, got[i], records[i])
		}
	}
	if diag.Len() != 0 {
		t.Errorf("diagnostics = %q, want empty", diag.String())
	}
}

func TestWriteDeterministic(t *testing.T) {
	records := []Record{HeaderRecord(), NewRecord(AbbrevUnabbrev, 2, 7)}

	a, err := NewWriter(WriteFlags{}, nil).Write(records)
	if err != nil {
		t.Fatalf("first Write() error: %v", err)
	}
	b, err := NewWriter(WriteFlags{}, nil).Write(records)
	if err != nil {
		t.Fatalf("second Write() error: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Errorf("streams differ:\n% x\n% x", a, b)
	}
}

func TestWriteIllegalAbbrevIndexRefuses(t *testing.T) {
	records := []Record{HeaderRecord(), NewRecord(7, 5, 1)}

	var diag bytes.Buffer
	_, err := NewWriter(WriteFlags{}, &diag).Write(records)
	if err == nil {
		t.Fatal("Write() succeeded, want refusal")
	}
	if !strings.Contains(diag.String(), "illegal abbreviation index 7") {
		t.Errorf("diagnostics = %q, want mention of illegal abbreviation index 7", diag.String())
	}
}

func TestWriteIllegalAbbrevIndexRecovers(t *testing.T) {
	records := []Record{HeaderRecord(), NewRecord(7, 5, 1)}

	var flags WriteFlags
	flags.SetTryToRecover(true)

	var diag bytes.Buffer
	stream, err := NewWriter(flags, &diag).Write(records)
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if !strings.Contains(diag.String(), "Converting to unabbreviated record") {
		t.Errorf("diagnostics = %q, want recovery notice", diag.String())
	}

	got, err := Parse(stream, nil)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	want := NewRecord(AbbrevUnabbrev, 5, 1)
	if !got[1].Equal(want) {
		t.Errorf("recovered record = %s, want %s", got[1], want)
	}
}

func TestWriteDeclaredAbbrevIsLegal(t *testing.T) {
	records := []Record{
		HeaderRecord(),
		NewRecord(AbbrevDefine, 2, 8),
		NewRecord(FirstUserAbbrev, 5, 1),
	}

	var diag bytes.Buffer
	stream, err := NewWriter(WriteFlags{}, &diag).Write(records)
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if _, err := Parse(stream, &diag); err != nil {
		t.Fatalf("Parse() error: %v\ndiagnostics:\n%s", err, diag.String())
	}
}

func TestWriteBadAbbrevIndexInjection(t *testing.T) {
	records := []Record{HeaderRecord(), NewRecord(AbbrevUnabbrev, 2, 7)}

	var flags WriteFlags
	flags.SetWriteBadAbbrevIndex(true)

	var wdiag bytes.Buffer
	stream, err := NewWriter(flags, &wdiag).Write(records)
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if wdiag.Len() != 0 {
		t.Errorf("write diagnostics = %q, want empty (injection is intentional)", wdiag.String())
	}

	var pdiag bytes.Buffer
	if _, err := Parse(stream, &pdiag); err == nil {
		t.Fatal("Parse() succeeded on injected bad abbreviation index")
	}
	if !strings.Contains(pdiag.String(), "abbreviation") {
		t.Errorf("parse diagnostics = %q, want mention of abbreviation", pdiag.String())
	}
}

func TestWriteHeaderAbbrevIndexIgnored(t *testing.T) {
	// The header record carries an arbitrary abbreviation index; the writer
	// must not validate it.
	h := HeaderRecord()
	h.AbbrevIndex = 4096

	stream, err := NewWriter(WriteFlags{}, nil).Write([]Record{h})
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	got, err := Parse(stream, nil)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if !IsHeaderRecord(got[0]) {
		t.Errorf("record 0 = %s, want header record", got[0])
	}
}
