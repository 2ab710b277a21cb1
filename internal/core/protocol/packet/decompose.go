// This file splits a packet body into its entries. Compressed bodies
// hold a concatenated batch of complete packets, one level deep at
// most.

package packet

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zlib"
)

// ErrDecompress marks a compressed body that did not inflate.
var ErrDecompress = errors.New("packet decompression failed")

// Entry is one packet recovered from a frame, either the frame itself
// or a member of its compressed batch.
type Entry struct {
	Header Header
	Body   []byte
}

// Decompose expands a packet body into its entries. Plain and integer
// bodies yield the packet itself. Zlib and brotli bodies are inflated
// and split into the complete packets they contain; a batch member may
// not itself claim a compressed encoding.
func Decompose(h Header, body []byte) ([]Entry, error) {
	switch h.Encoding {
	case EncodingPlain, EncodingInteger:
		return []Entry{{Header: h, Body: body}}, nil
	case EncodingZlib:
		raw, err := inflateZlib(body)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecompress, err)
		}
		return splitBatch(raw)
	case EncodingBrotli:
		raw, err := inflateBrotli(body)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecompress, err)
		}
		return splitBatch(raw)
	default:
		return nil, fmt.Errorf("%w: unknown encoding %d", ErrFrame, uint16(h.Encoding))
	}
}

// splitBatch walks an inflated buffer holding complete packets back to
// back and returns them in wire order. Leftover bytes too short for a
// packet fail the whole batch.
func splitBatch(buf []byte) ([]Entry, error) {
	var entries []Entry
	rest := buf
	for len(rest) > 0 {
		h, body, next, err := Parse(rest)
		if err != nil {
			return nil, err
		}
		if h.Encoding == EncodingZlib || h.Encoding == EncodingBrotli {
			return nil, fmt.Errorf("%w: nested compressed packet", ErrFrame)
		}
		entries = append(entries, Entry{Header: h, Body: body})
		rest = next
	}
	return entries, nil
}

// inflateZlib decompresses a zlib stream.
func inflateZlib(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// inflateBrotli decompresses a brotli stream.
func inflateBrotli(data []byte) ([]byte, error) {
	return io.ReadAll(brotli.NewReader(bytes.NewReader(data)))
}
