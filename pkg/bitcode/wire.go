package bitcode

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// cborEncMode uses canonical options so the same records always marshal to
// the same bytes, which keeps fixture files diffable.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("bitcode: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// MarshalRecords serializes a record sequence to canonical CBOR bytes.
func MarshalRecords(records []Record) ([]byte, error) {
	return cborEncMode.Marshal(records)
}

// UnmarshalRecords deserializes a record sequence from CBOR bytes.
func UnmarshalRecords(data []byte) ([]Record, error) {
	var records []Record
	if err := cbor.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("bitcode: unmarshal records: %w", err)
	}
	return records, nil
}
