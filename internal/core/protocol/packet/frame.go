// This file implements packet header parsing and encoding. Every feed
// packet starts with a 16-byte big-endian header describing its length,
// body encoding and operation.

package packet

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrFrame marks a packet that violates the header layout.
var ErrFrame = errors.New("malformed packet frame")

// Header is the fixed 16-byte prefix of every feed packet. All fields
// are big-endian on the wire.
type Header struct {
	TotalLength  uint32
	HeaderLength uint16
	Encoding     Encoding
	Operation    Operation
	SequenceID   uint32
}

// Parse reads one packet from the front of buf. It returns the header,
// the packet body and the unconsumed remainder of buf.
func Parse(buf []byte) (Header, []byte, []byte, error) {
	if len(buf) < HeaderSize {
		return Header{}, nil, nil, fmt.Errorf("%w: %d bytes is too short for a header", ErrFrame, len(buf))
	}
	h := Header{
		TotalLength:  binary.BigEndian.Uint32(buf[0:4]),
		HeaderLength: binary.BigEndian.Uint16(buf[4:6]),
		Encoding:     Encoding(binary.BigEndian.Uint16(buf[6:8])),
		Operation:    Operation(binary.BigEndian.Uint32(buf[8:12])),
		SequenceID:   binary.BigEndian.Uint32(buf[12:16]),
	}
	if h.HeaderLength != HeaderSize {
		return Header{}, nil, nil, fmt.Errorf("%w: header length %d", ErrFrame, h.HeaderLength)
	}
	if h.TotalLength < HeaderSize {
		return Header{}, nil, nil, fmt.Errorf("%w: total length %d is smaller than the header", ErrFrame, h.TotalLength)
	}
	if int(h.TotalLength) > len(buf) {
		return Header{}, nil, nil, fmt.Errorf("%w: total length %d exceeds %d buffered bytes", ErrFrame, h.TotalLength, len(buf))
	}
	return h, buf[HeaderSize:h.TotalLength], buf[h.TotalLength:], nil
}

// ParseExact reads one packet that must span the whole buffer. The feed
// transport is message-oriented, so trailing bytes after a packet mean
// the peer and client disagree about framing.
func ParseExact(buf []byte) (Header, []byte, error) {
	h, body, rest, err := Parse(buf)
	if err != nil {
		return Header{}, nil, err
	}
	if len(rest) != 0 {
		return Header{}, nil, fmt.Errorf("%w: %d trailing bytes after packet", ErrFrame, len(rest))
	}
	return h, body, nil
}

// Encode serializes a packet with the given body. TotalLength and
// HeaderLength are filled in, the other header fields are taken as
// given.
func Encode(h Header, body []byte) []byte {
	h.TotalLength = uint32(HeaderSize + len(body))
	h.HeaderLength = HeaderSize
	out := make([]byte, HeaderSize+len(body))
	binary.BigEndian.PutUint32(out[0:4], h.TotalLength)
	binary.BigEndian.PutUint16(out[4:6], h.HeaderLength)
	binary.BigEndian.PutUint16(out[6:8], uint16(h.Encoding))
	binary.BigEndian.PutUint32(out[8:12], uint32(h.Operation))
	binary.BigEndian.PutUint32(out[12:16], h.SequenceID)
	copy(out[HeaderSize:], body)
	return out
}
