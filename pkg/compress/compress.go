// Package compress validates and compresses bitcode streams. Compression is
// zstd; a stream must parse cleanly before it is compressed, so a malformed
// stream surfaces as parse diagnostics rather than a silently compressed
// blob.
package compress

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/chazu/bitmunge/pkg/bitcode"
)

// Package-level codec pair, concurrent-safe, built once.
var (
	zstdEnc *zstd.Encoder
	zstdDec *zstd.Decoder
)

func init() {
	var err error
	zstdEnc, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("compress: init encoder: " + err.Error())
	}
	zstdDec, err = zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	if err != nil {
		panic("compress: init decoder: " + err.Error())
	}
}

// Compress parse-validates the bitcode stream and returns its zstd
// compressed form. Validation diagnostics are written to the sink; a stream
// with diagnostics is not compressed.
func Compress(data []byte, diag io.Writer) ([]byte, error) {
	if _, err := bitcode.Parse(data, diag); err != nil {
		return nil, fmt.Errorf("compress: invalid bitcode stream: %w", err)
	}
	return zstdEnc.EncodeAll(data, make([]byte, 0, len(data))), nil
}

// Decompress returns the original bitcode stream bytes.
func Decompress(data []byte) ([]byte, error) {
	out, err := zstdDec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("compress: decompress stream: %w", err)
	}
	return out, nil
}
